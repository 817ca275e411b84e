package cache

import (
	"time"

	"github.com/hearthside/hearthside-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
)

const linkCacheName = "presigned_links"

// LinkCache memoizes presigned storage links so repeated dispatches within
// the expiry window reuse them. Entries expire before the underlying link
// does, so a cached value is always still fetchable.
type LinkCache struct {
	cache *gocache.Cache
}

// NewLinkCache creates a link cache whose entries expire at 80% of the
// presign TTL.
func NewLinkCache(presignTTL time.Duration) *LinkCache {
	ttl := presignTTL * 4 / 5
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &LinkCache{
		cache: gocache.New(ttl, 10*time.Minute),
	}
}

// Get returns the cached link for a storage key, if present.
func (lc *LinkCache) Get(key string) (string, bool) {
	v, found := lc.cache.Get(key)
	if !found {
		metrics.CacheMisses.WithLabelValues(linkCacheName).Inc()
		return "", false
	}

	link, ok := v.(string)
	if !ok {
		lc.cache.Delete(key)
		metrics.CacheMisses.WithLabelValues(linkCacheName).Inc()
		return "", false
	}

	metrics.CacheHits.WithLabelValues(linkCacheName).Inc()
	return link, true
}

// Set stores a resolved link under its storage key.
func (lc *LinkCache) Set(key, link string) {
	lc.cache.SetDefault(key, link)
}
