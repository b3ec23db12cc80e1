package repository

import (
	"context"

	"github.com/bradfitz/gomemcache/memcache"
)

// PageCache keeps rendered public pages in memcached so anonymous traffic
// does not hit postgres on every view. Publish invalidates the entry.
type PageCache struct {
	mc  *memcache.Client
	ttl int32
}

func NewPageCache(mc *memcache.Client, ttlSeconds int32) *PageCache {
	if ttlSeconds <= 0 {
		ttlSeconds = 300
	}
	return &PageCache{mc: mc, ttl: ttlSeconds}
}

func pageKey(storeID string) string {
	return "page:" + storeID
}

func (c *PageCache) Get(ctx context.Context, storeID string) ([]byte, bool) {
	item, err := c.mc.Get(pageKey(storeID))
	if err != nil {
		return nil, false
	}
	return item.Value, true
}

func (c *PageCache) Set(ctx context.Context, storeID string, page []byte) error {
	return c.mc.Set(&memcache.Item{
		Key:        pageKey(storeID),
		Value:      page,
		Expiration: c.ttl,
	})
}

func (c *PageCache) Invalidate(ctx context.Context, storeID string) error {
	err := c.mc.Delete(pageKey(storeID))
	if err == memcache.ErrCacheMiss {
		return nil
	}
	return err
}
