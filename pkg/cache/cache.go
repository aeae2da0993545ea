package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"

	"github.com/jimyag/one-inventory/pkg/logger"
	"github.com/jimyag/one-inventory/pkg/record"
)

// Store 是宿主环境提供的持久化 KV 存储。
// Manager 只定义什么时候读写，不负责存储本身。
type Store interface {
	// Get 返回 key 对应的值；key 不存在时 ok 为 false，不是错误
	Get(key string) (value []byte, ok bool, err error)
	// Set 写入 key 对应的值
	Set(key string, value []byte) error
}

// Key 从 inventory 配置源路径派生确定性的缓存 key，
// 把缓存结果的作用域限定在这个源上
func Key(path string) string {
	sum := sha1.Sum([]byte(path))
	return "one_" + hex.EncodeToString(sum[:])
}

// Manager 管理上一次成功查询结果的缓存
type Manager struct {
	store Store
	log   *logger.Logger
}

// NewManager 创建缓存管理器
func NewManager(store Store, log *logger.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// Get 读取缓存的记录序列。缓存未命中不是错误，表示需要重新查询；
// 无法解析的缓存内容按未命中处理。
func (m *Manager) Get(key string) ([]record.Record, bool) {
	data, ok, err := m.store.Get(key)
	if err != nil {
		m.log.Warnf("failed to read cache entry %s: %v", key, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var records []record.Record
	if err := json.Unmarshal(data, &records); err != nil {
		m.log.Warnf("discarding unreadable cache entry %s: %v", key, err)
		return nil, false
	}
	return records, true
}

// Put 把记录序列整体写入缓存，替换旧的记录集
func (m *Manager) Put(key string, records []record.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return m.store.Set(key, data)
}
