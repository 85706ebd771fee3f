package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache memoizes successful translations of another provider. Unavailable
// results are never stored, so a failed call is retried next time.
type Cache struct {
	next  Provider
	cache *ristretto.Cache[string, string]
	ttl   time.Duration
}

func NewCache(next Provider, maxItems int64, ttl time.Duration) (*Cache, error) {
	if maxItems <= 0 {
		maxItems = 1
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: maxItems * 10,
		MaxCost:     maxItems,
		BufferItems: 64,
		// Cost counts entries, not bytes.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create translation cache: %w", err)
	}
	return &Cache{next: next, cache: c, ttl: ttl}, nil
}

func (c *Cache) Translate(ctx context.Context, text string) string {
	key := strings.TrimSpace(text)
	if value, found := c.cache.Get(key); found {
		return value
	}

	value := c.next.Translate(ctx, text)
	if value == Unavailable {
		return value
	}
	if c.ttl > 0 {
		c.cache.SetWithTTL(key, value, 1, c.ttl)
	} else {
		c.cache.Set(key, value, 1)
	}
	return value
}

// Wait blocks until pending writes are visible to Get.
func (c *Cache) Wait() {
	c.cache.Wait()
}

func (c *Cache) Close() {
	c.cache.Close()
}
