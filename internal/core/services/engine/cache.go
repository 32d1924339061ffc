package engine

import (
	"context"
	"sync"

	"github.com/bei612/meraki-workflows/internal/core/domain"
)

type floorPlanKey struct {
	networkID   string
	floorPlanID string
}

// FloorPlanCache deduplicates floor-plan lookups within one report run.
// Entries are write-once: populated on first miss, read on every later hit,
// never mutated after insertion. Failures are not cached, so a transient
// fetch error does not poison later lookups.
type FloorPlanCache struct {
	mu      sync.Mutex
	entries map[floorPlanKey]domain.FloorPlan
	pending map[floorPlanKey]chan struct{}
}

// NewFloorPlanCache returns an empty per-run cache.
func NewFloorPlanCache() *FloorPlanCache {
	return &FloorPlanCache{
		entries: make(map[floorPlanKey]domain.FloorPlan),
		pending: make(map[floorPlanKey]chan struct{}),
	}
}

// Get returns the cached plan or fetches it once. Concurrent callers for the
// same key share a single fetch.
func (c *FloorPlanCache) Get(ctx context.Context, networkID, floorPlanID string, fetch func(context.Context) (domain.FloorPlan, error)) (domain.FloorPlan, error) {
	key := floorPlanKey{networkID: networkID, floorPlanID: floorPlanID}

	for {
		c.mu.Lock()
		if plan, ok := c.entries[key]; ok {
			c.mu.Unlock()
			return plan, nil
		}
		if wait, ok := c.pending[key]; ok {
			c.mu.Unlock()
			select {
			case <-ctx.Done():
				return domain.FloorPlan{}, ctx.Err()
			case <-wait:
				continue // re-check: either cached now, or the fetch failed
			}
		}
		done := make(chan struct{})
		c.pending[key] = done
		c.mu.Unlock()

		plan, err := fetch(ctx)

		c.mu.Lock()
		delete(c.pending, key)
		if err == nil {
			c.entries[key] = plan
		}
		c.mu.Unlock()
		close(done)

		return plan, err
	}
}

// Len reports how many plans are cached.
func (c *FloorPlanCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
