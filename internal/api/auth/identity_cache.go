package auth

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/realestate-ads/internal/types"
)

var _ IdentityStore = (*IdentityCache)(nil)

// IdentityCache memoizes successful subject lookups for a short TTL so that
// a burst of requests with the same token hits the database once. Misses and
// errors are never cached.
type IdentityCache struct {
	store IdentityStore
	cache *cache.Cache
}

// NewIdentityCache wraps store. A non-positive ttl returns store unchanged.
func NewIdentityCache(store IdentityStore, ttl time.Duration) IdentityStore {
	if ttl <= 0 {
		return store
	}
	return &IdentityCache{
		store: store,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *IdentityCache) FindBySubject(ctx context.Context, subject string) (*types.Identity, error) {
	key := normalizeEmail(subject)
	if v, ok := c.cache.Get(key); ok {
		id := *v.(*types.Identity)
		return &id, nil
	}

	id, err := c.store.FindBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	stored := *id
	c.cache.SetDefault(key, &stored)
	return id, nil
}

// evict drops subject so the next lookup reads through.
func (c *IdentityCache) evict(subject string) {
	c.cache.Delete(normalizeEmail(subject))
}
