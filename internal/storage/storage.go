package storage

import (
	"context"
	"errors"
)

// Store persists visit counts in one of the demo backends.
type Store interface {
	// RecordVisit counts one visit to path and returns the backend's total
	// visit count after the increment.
	RecordVisit(ctx context.Context, path string) (int64, error)
	Total(ctx context.Context) (int64, error)
	PathCounts(ctx context.Context) (map[string]int64, error)
	Ping(ctx context.Context) error
	Close() error
}

var ErrUnknownBackend = errors.New("storage: unknown backend")
