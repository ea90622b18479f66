package implementation

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mbellotti/go-visit-counter/pkg/telemetry"
)

type spanTracer struct {
	exporter telemetry.SpanExporter
}

func NewTracer(exporter telemetry.SpanExporter) telemetry.Tracer {
	return &spanTracer{exporter: exporter}
}

func (t *spanTracer) Start(ctx context.Context, name string) (context.Context, telemetry.Span) {
	s := &span{
		traceID:  newTraceID(),
		spanID:   newSpanID(),
		name:     name,
		start:    time.Now(),
		exporter: t.exporter,
	}
	if parent, ok := ctx.Value(spanContextKey{}).(*span); ok {
		s.traceID = parent.traceID
	}
	return contextWithSpan(ctx, s), s
}

type span struct {
	traceID  string
	spanID   string
	name     string
	start    time.Time
	exporter telemetry.SpanExporter

	mu    sync.Mutex
	attrs []telemetry.Label
	ended bool
}

func (s *span) SetAttribute(key, value string) {
	s.mu.Lock()
	if !s.ended {
		s.attrs = append(s.attrs, telemetry.Label{Key: key, Value: value})
	}
	s.mu.Unlock()
}

// End emits the span record exactly once. The record is exported after the
// span lock is released so the exporter may block or log freely.
func (s *span) End() {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true
	duration := time.Since(s.start)
	attrs := make([]telemetry.Label, len(s.attrs))
	copy(attrs, s.attrs)
	s.mu.Unlock()

	if s.exporter != nil {
		s.exporter.Export(telemetry.SpanRecord{
			TraceID:    s.traceID,
			SpanID:     s.spanID,
			Name:       s.name,
			Duration:   duration,
			Attributes: attrs,
		})
	}
}

type spanContextKey struct{}

func contextWithSpan(ctx context.Context, s *span) context.Context {
	return context.WithValue(ctx, spanContextKey{}, s)
}

// SpanFromContext returns the innermost span started under ctx, if any.
func SpanFromContext(ctx context.Context) (telemetry.Span, bool) {
	s, ok := ctx.Value(spanContextKey{}).(*span)
	if !ok {
		return nil, false
	}
	return s, true
}

func newTraceID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

func newSpanID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
