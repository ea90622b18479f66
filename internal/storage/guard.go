package storage

import (
	"context"

	"github.com/mbellotti/go-visit-counter/pkg/circuitbreaker"
	"github.com/mbellotti/go-visit-counter/pkg/retry"
)

// Guarded decorates a Store with a circuit breaker on every call and a retry
// policy on writes. Reads fail fast so pages can degrade instead of hang.
type Guarded struct {
	next    Store
	breaker circuitbreaker.CircuitBreaker[any]
	retry   retry.Retry
}

func NewGuarded(next Store, breaker circuitbreaker.CircuitBreaker[any], r retry.Retry) *Guarded {
	return &Guarded{next: next, breaker: breaker, retry: r}
}

func (g *Guarded) RecordVisit(ctx context.Context, path string) (int64, error) {
	var total int64
	err := g.retry.Execute(ctx, func() error {
		v, err := g.breaker.Execute(func() (any, error) {
			return g.next.RecordVisit(ctx, path)
		})
		if err != nil {
			return err
		}
		total = v.(int64)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (g *Guarded) Total(ctx context.Context) (int64, error) {
	v, err := g.breaker.Execute(func() (any, error) {
		return g.next.Total(ctx)
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (g *Guarded) PathCounts(ctx context.Context) (map[string]int64, error) {
	v, err := g.breaker.Execute(func() (any, error) {
		return g.next.PathCounts(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]int64), nil
}

func (g *Guarded) Ping(ctx context.Context) error {
	_, err := g.breaker.Execute(func() (any, error) {
		return nil, g.next.Ping(ctx)
	})
	return err
}

func (g *Guarded) Close() error {
	return g.next.Close()
}
