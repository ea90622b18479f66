package memory

import (
	"context"
	"sync"
)

// Store keeps visit counts in process memory. Counts reset on restart.
type Store struct {
	mu     sync.Mutex
	total  int64
	counts map[string]int64
}

func New() *Store {
	return &Store{counts: make(map[string]int64)}
}

func (s *Store) RecordVisit(_ context.Context, path string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	s.counts[path]++
	return s.total, nil
}

func (s *Store) Total(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total, nil
}

func (s *Store) PathCounts(_ context.Context) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int64, len(s.counts))
	for path, n := range s.counts {
		out[path] = n
	}
	return out, nil
}

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) Close() error { return nil }
