package visit

import (
	"context"

	"github.com/mbellotti/go-visit-counter/internal/storage"
	"github.com/mbellotti/go-visit-counter/pkg/telemetry"
)

// Service records visits into the in-process counter and the configured
// store. The in-process counter is the source of truth for the pages this
// demo serves; a store failure is logged and the request carries on.
type Service struct {
	counter *Counter
	store   storage.Store
	log     telemetry.Logger
}

func NewService(counter *Counter, store storage.Store, log telemetry.Logger) *Service {
	return &Service{counter: counter, store: store, log: log}
}

// Record counts one visit to path and returns the in-process total after the
// increment.
func (s *Service) Record(ctx context.Context, path string) int64 {
	total := s.counter.IncrementTotal()
	s.counter.IncrementPath(path)

	if s.store != nil {
		if _, err := s.store.RecordVisit(ctx, path); err != nil {
			s.log.Warn("failed to persist visit",
				telemetry.Err(err),
				telemetry.String("path", path),
			)
		}
	}
	return total
}

func (s *Service) Total() int64 {
	return s.counter.Total()
}

func (s *Service) Snapshot() map[string]int64 {
	return s.counter.Snapshot()
}

func (s *Service) ExpositionText() string {
	return s.counter.ExpositionText()
}

// Healthy reports whether the backing store is reachable.
func (s *Service) Healthy(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Ping(ctx)
}
