package cache

import (
	"os"
	"path/filepath"
)

// FileStore 把每个 key 存为目录下的一个 JSON 文件
type FileStore struct {
	Dir string
}

var _ Store = (*FileStore)(nil)

// Get 读取 key 对应的文件，文件不存在按未命中处理
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set 写入 key 对应的文件，目录不存在时自动创建
func (s *FileStore) Set(key string, value []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path(key), value, 0o644)
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.Dir, key+".json")
}

// MemoryStore 是进程内的 Store 实现，主要用于测试
type MemoryStore struct {
	entries map[string][]byte
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	value, ok := s.entries[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	s.entries[key] = value
	return nil
}
