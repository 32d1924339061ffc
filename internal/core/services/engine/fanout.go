package engine

import (
	"context"
	"sync"

	"github.com/bei612/meraki-workflows/internal/core/domain"
	"github.com/bei612/meraki-workflows/internal/telemetry"
)

// DefaultFanoutLimit bounds in-flight parent calls so a large organization
// does not trip the remote service's rate limits. A limit of 1 reproduces
// strictly sequential behavior.
const DefaultFanoutLimit = 10

// Result is one parent's slot in the aggregate output. Exactly one of
// Value/Err is meaningful; Err carries the parent attribution.
type Result[T any] struct {
	ParentID string
	Value    T
	Err      error
}

// Failed reports whether this parent's call failed.
func (r Result[T]) Failed() bool { return r.Err != nil }

// Aggregate is the combined output of a fan-out. Results preserves the
// input order of parents regardless of completion order, so downstream
// "first N" truncation stays deterministic.
type Aggregate[T any] struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []Result[T]
}

// FailedParents returns the ids of parents whose calls failed, in input order.
func (a *Aggregate[T]) FailedParents() []string {
	ids := make([]string, 0, a.Failed)
	for _, r := range a.Results {
		if r.Failed() {
			ids = append(ids, r.ParentID)
		}
	}
	return ids
}

// Sum folds a numeric projection over the successful results.
func (a *Aggregate[T]) Sum(f func(T) float64) float64 {
	var total float64
	for _, r := range a.Results {
		if !r.Failed() {
			total += f(r.Value)
		}
	}
	return total
}

// MaxBy returns the successful result with the maximum key, ties broken by
// input order. ok is false when no parent succeeded.
func (a *Aggregate[T]) MaxBy(key func(T) float64) (Result[T], bool) {
	var best Result[T]
	bestKey := 0.0
	found := false
	for _, r := range a.Results {
		if r.Failed() {
			continue
		}
		k := key(r.Value)
		if !found || k > bestKey {
			best, bestKey, found = r, k, true
		}
	}
	return best, found
}

// ZeroOrFailed returns the parents that failed or whose projection is zero,
// in input order.
func (a *Aggregate[T]) ZeroOrFailed(f func(T) float64) []string {
	var ids []string
	for _, r := range a.Results {
		if r.Failed() || f(r.Value) == 0 {
			ids = append(ids, r.ParentID)
		}
	}
	return ids
}

// FanOut invokes op once per parent with at most limit calls in flight.
// Per-parent failures are isolated: a failing parent occupies its slot with
// an error annotation and the batch continues. Two failures abort the whole
// run instead: context cancellation and authentication errors. A failed run
// yields no partial aggregate.
func FanOut[P any, T any](ctx context.Context, parents []P, id func(P) string, op func(context.Context, P) (T, error), limit int) (*Aggregate[T], error) {
	if limit <= 0 {
		limit = DefaultFanoutLimit
	}

	agg := &Aggregate[T]{
		Total:   len(parents),
		Results: make([]Result[T], len(parents)),
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, parent := range parents {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, parent P) {
			defer wg.Done()
			defer func() { <-sem }()

			value, err := op(ctx, parent)
			agg.Results[i] = Result[T]{ParentID: id(parent), Value: value, Err: err}
		}(i, parent)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		// A canceled run produces no partial aggregate.
		return nil, err
	}

	// An auth failure means every remaining call would fail the same way;
	// isolation would just mask a dead credential.
	for _, r := range agg.Results {
		if r.Failed() && domain.IsAuthError(r.Err) {
			return nil, r.Err
		}
	}

	for _, r := range agg.Results {
		if r.Failed() {
			agg.Failed++
			telemetry.FanoutFailures.Inc()
		} else {
			agg.Succeeded++
		}
	}
	return agg, nil
}
