package geocode

import (
	"context"
	"sync"

	"eventlens-backend/application/ports"
	"eventlens-backend/pkg/observability"
)

const defaultCacheCapacity = 1000

type cachedCoords struct {
	lat, lon float64
	ok       bool
}

// CachingGeocoder wraps a Geocoder with a fixed-capacity in-memory cache.
// Failed lookups are cached too, so an unresolvable place name is only
// ever sent upstream once. When the capacity is reached the oldest entry
// is evicted.
type CachingGeocoder struct {
	inner    ports.Geocoder
	capacity int
	metrics  *observability.Metrics

	mu    sync.Mutex
	items map[string]cachedCoords
	order []string
}

func NewCachingGeocoder(inner ports.Geocoder, capacity int, metrics *observability.Metrics) *CachingGeocoder {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	return &CachingGeocoder{
		inner:    inner,
		capacity: capacity,
		metrics:  metrics,
		items:    make(map[string]cachedCoords, capacity),
		order:    make([]string, 0, capacity),
	}
}

func (c *CachingGeocoder) Geocode(ctx context.Context, name, country string) (float64, float64, bool) {
	key := cacheKey(name, country)

	c.mu.Lock()
	if cached, exists := c.items[key]; exists {
		c.mu.Unlock()
		c.metrics.GeocodeCacheHits.Inc()
		return cached.lat, cached.lon, cached.ok
	}
	c.mu.Unlock()

	c.metrics.GeocodeCacheMisses.Inc()
	lat, lon, ok := c.inner.Geocode(ctx, name, country)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists {
		if len(c.order) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.items, oldest)
		}
		c.items[key] = cachedCoords{lat: lat, lon: lon, ok: ok}
		c.order = append(c.order, key)
	}

	return lat, lon, ok
}

// Len reports the number of cached entries.
func (c *CachingGeocoder) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
