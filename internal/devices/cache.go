package devices

import (
	"context"
	"strconv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

const aggregateKey = "devices"

// aggregateCache is a read-through cache for the joined device list.
// Concurrent misses share one fetch. A fetch that began before an
// invalidation returns its result to its callers but is never stored.
type aggregateCache struct {
	mu      sync.Mutex
	gen     uint64
	entries *lru.Cache[string, []Device]
	group   singleflight.Group
}

func newAggregateCache() *aggregateCache {
	entries, err := lru.New[string, []Device](1)
	if err != nil {
		panic(err)
	}
	return &aggregateCache{entries: entries}
}

func (c *aggregateCache) get(ctx context.Context, fetch func(context.Context) ([]Device, error)) ([]Device, error) {
	if devices, ok := c.entries.Get(aggregateKey); ok {
		return cloneDevices(devices), nil
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	v, err, _ := c.group.Do(aggregateKey+":"+strconv.FormatUint(gen, 10), func() (any, error) {
		devices, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.gen == gen {
			c.entries.Add(aggregateKey, devices)
		}
		c.mu.Unlock()

		return devices, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneDevices(v.([]Device)), nil
}

func (c *aggregateCache) invalidate() {
	c.mu.Lock()
	c.gen++
	c.entries.Purge()
	c.mu.Unlock()
}
