package telemetry

import (
	"context"
	"time"
)

type Tracer interface {
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span is a timed unit of work. End is idempotent; SetAttribute calls made
// after the first End are dropped.
type Span interface {
	SetAttribute(key, value string)
	End()
}

// SpanRecord is the structured record a span emits exactly once, on End.
type SpanRecord struct {
	TraceID    string
	SpanID     string
	Name       string
	Duration   time.Duration
	Attributes []Label
}

// SpanExporter receives finished span records. Implementations must be safe
// for concurrent use.
type SpanExporter interface {
	Export(rec SpanRecord)
}
