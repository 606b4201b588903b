package types

import (
	"github.com/bluele/gcache"

	"github.com/hogfinance/hogpool/common"
)

// DataCacheSize bounds the number of loader reads kept in memory
var DataCacheSize = 4096

// contextCache sits between the context stack and the loader.
// It holds every write applied by finished contexts that the loader has not stored yet.
type contextCache struct {
	loader    Loader
	lru       gcache.Cache
	committed *StringBytesMap
	deleted   *StringBytesMap
	contracts map[common.Address]Contract
	journal   []*Event
}

func newContextCache(loader Loader) *contextCache {
	return &contextCache{
		loader:    loader,
		lru:       gcache.New(DataCacheSize).LRU().Build(),
		committed: NewStringBytesMap(),
		deleted:   NewStringBytesMap(),
		contracts: map[common.Address]Contract{},
	}
}

// Data returns the data
func (cc *contextCache) Data(key string) []byte {
	if cc.deleted.Has(key) {
		return nil
	}
	if value, has := cc.committed.Get(key); has {
		return value
	}
	if v, err := cc.lru.Get(key); err == nil {
		return v.([]byte)
	}
	value := cc.loader.Data(key)
	cc.lru.Set(key, value)
	return value
}

// apply folds the base layer of a finished context into the cache
func (cc *contextCache) apply(ctd *ContextData) {
	ctd.DataMap.EachAll(func(key string, value []byte) bool {
		cc.deleted.Delete(key)
		cc.committed.Put(key, value)
		cc.lru.Remove(key)
		return true
	})
	ctd.DeletedDataMap.EachAll(func(key string, _ []byte) bool {
		cc.committed.Delete(key)
		cc.deleted.Put(key, nil)
		cc.lru.Remove(key)
		return true
	})
	cc.journal = append(cc.journal, ctd.Events...)
}

// reset drops pending writes after the loader has stored them
func (cc *contextCache) reset() {
	cc.committed = NewStringBytesMap()
	cc.deleted = NewStringBytesMap()
	cc.journal = nil
	cc.lru.Purge()
}
