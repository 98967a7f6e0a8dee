package db

import (
	"log"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
)

// The option lists behind the filter widgets change rarely, so they get a
// short TTL cache. Keys are tracked so a bulk update can clear them all.
const filterOptionCacheTTL = 5 * time.Minute

var (
	Cache                 *ristretto.Cache
	FilterOptionCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
)

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func SetFilterOptionCache(cacheKey string, value interface{}) {
	FilterOptionCacheKeys.Lock()
	FilterOptionCacheKeys.m[cacheKey] = struct{}{}
	FilterOptionCacheKeys.Unlock()
	Cache.SetWithTTL(cacheKey, value, 1, filterOptionCacheTTL)
}

func ClearAllFilterOptionCaches() {
	FilterOptionCacheKeys.Lock()
	for key := range FilterOptionCacheKeys.m {
		Cache.Del(key)
	}
	FilterOptionCacheKeys.m = make(map[string]struct{})
	FilterOptionCacheKeys.Unlock()
}
