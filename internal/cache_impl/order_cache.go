package cache_impl

import (
	"github.com/streamworks/order_pipeline/internal/domain/models"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

type CacheI[K comparable, V any] interface {
	Get(key K) (value V, ok bool)
	Add(key K, value V) (evicted bool)
}

// Cache fronts the order repository on the query path. Backed by an
// expirable LRU, so entries age out and a stale read falls through to the
// store.
type Cache struct {
	cache CacheI[string, *models.Order]
	log   logger.Logger
}

func NewCache(
	cache CacheI[string, *models.Order],
	log logger.Logger,
) *Cache {
	return &Cache{
		cache: cache,
		log:   log,
	}
}

func (c *Cache) Add(key string, value *models.Order) (evicted bool) {
	return c.cache.Add(key, value)
}

func (c *Cache) Get(key string) (value *models.Order, ok bool) {
	return c.cache.Get(key)
}
