package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bei612/meraki-workflows/internal/core/domain"
)

func TestFloorPlanCacheSharesFetches(t *testing.T) {
	cache := NewFloorPlanCache()
	var fetches int32

	fetch := func(context.Context) (domain.FloorPlan, error) {
		atomic.AddInt32(&fetches, 1)
		return domain.FloorPlan{FloorPlanID: "fp-1", Name: "Floor 1"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			plan, err := cache.Get(context.Background(), "net-hq", "fp-1", fetch)
			assert.NoError(t, err)
			assert.Equal(t, "Floor 1", plan.Name)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
	assert.Equal(t, 1, cache.Len())
}

func TestFloorPlanCacheDoesNotCacheFailures(t *testing.T) {
	cache := NewFloorPlanCache()
	calls := 0

	_, err := cache.Get(context.Background(), "net-hq", "fp-1", func(context.Context) (domain.FloorPlan, error) {
		calls++
		return domain.FloorPlan{}, fmt.Errorf("fetch: boom")
	})
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len())

	plan, err := cache.Get(context.Background(), "net-hq", "fp-1", func(context.Context) (domain.FloorPlan, error) {
		calls++
		return domain.FloorPlan{FloorPlanID: "fp-1"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fp-1", plan.FloorPlanID)
	assert.Equal(t, 2, calls)
}

func TestFloorPlanCacheKeysByNetworkAndPlan(t *testing.T) {
	cache := NewFloorPlanCache()

	fetchNamed := func(name string) func(context.Context) (domain.FloorPlan, error) {
		return func(context.Context) (domain.FloorPlan, error) {
			return domain.FloorPlan{Name: name}, nil
		}
	}

	a, err := cache.Get(context.Background(), "net-hq", "fp-1", fetchNamed("HQ Floor 1"))
	require.NoError(t, err)
	b, err := cache.Get(context.Background(), "net-branch", "fp-1", fetchNamed("Branch Floor 1"))
	require.NoError(t, err)

	assert.Equal(t, "HQ Floor 1", a.Name)
	assert.Equal(t, "Branch Floor 1", b.Name)
	assert.Equal(t, 2, cache.Len())

	// A repeated lookup must not re-fetch.
	cached, err := cache.Get(context.Background(), "net-hq", "fp-1", func(context.Context) (domain.FloorPlan, error) {
		t.Fatal("fetch must not run for a cached plan")
		return domain.FloorPlan{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "HQ Floor 1", cached.Name)
}
