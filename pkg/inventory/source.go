package inventory

import (
	"github.com/jimyag/one-inventory/pkg/cache"
	"github.com/jimyag/one-inventory/pkg/logger"
	"github.com/jimyag/one-inventory/pkg/one"
	"github.com/jimyag/one-inventory/pkg/record"
)

// SourceOptions 是一次 inventory 运行的选项
type SourceOptions struct {
	// Cache 为 true 时启用缓存读写
	Cache bool
	// HostnamePreference 是主机名策略（fqdn 或 name）
	HostnamePreference string
	// Strict 决定 constructed 规则求值失败是中止还是告警
	Strict bool

	Compose     map[string]string
	Groups      map[string]string
	KeyedGroups []KeyedGroup
}

// Source 是 inventory 生成的入口，串起缓存策略、慢路径查询和主机注册
type Source struct {
	client one.Client
	cache  *cache.Manager
	opts   SourceOptions
	log    *logger.Logger
}

// NewSource 创建 inventory 源。cacheMgr 可以为 nil，表示没有可用的缓存存储。
func NewSource(client one.Client, cacheMgr *cache.Manager, opts SourceOptions, log *logger.Logger) *Source {
	return &Source{
		client: client,
		cache:  cacheMgr,
		opts:   opts,
		log:    log,
	}
}

// Parse 生成整个 inventory。
// path 只用于派生缓存 key；useCache 为 false 表示调用方要求强制刷新。
// 读缓存的条件：启用了缓存且本次允许使用缓存；
// 写缓存的条件：启用了缓存且（强制刷新或读缓存未命中），
// 即只要启用缓存，每次慢路径查询的结果都会被持久化。
func (s *Source) Parse(path string, useCache bool) (*Inventory, error) {
	caching := s.opts.Cache && s.cache != nil
	key := cache.Key(path)

	attemptRead := caching && useCache
	needsUpdate := caching && !useCache

	var records []record.Record
	haveRecords := false

	if attemptRead {
		if cached, ok := s.cache.Get(key); ok {
			s.log.Vf(2, "using %d cached records for %s", len(cached), path)
			records = cached
			haveRecords = true
		} else {
			needsUpdate = true
		}
	}

	if !haveRecords {
		queried, err := record.NewBuilder(s.client, s.log).BuildAll()
		if err != nil {
			return nil, err
		}
		records = queried
	}

	if needsUpdate {
		if err := s.cache.Put(key, records); err != nil {
			s.log.Warnf("failed to update cache for %s: %v", path, err)
		}
	}

	resolver := record.NewResolver(s.client, s.opts.HostnamePreference, s.log)
	constructed := NewConstructed(s.opts.Compose, s.opts.Groups, s.opts.KeyedGroups, s.opts.Strict, s.log)
	populator := NewPopulator(resolver, constructed, s.log)

	inv := NewInventory()
	if err := populator.Populate(inv, records); err != nil {
		return nil, err
	}
	return inv, nil
}
