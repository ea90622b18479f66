package implementation

import (
	"github.com/mbellotti/go-visit-counter/pkg/telemetry"
)

// logExporter writes one structured log line per finished span, the
// append-only sink of this in-process tracer.
type logExporter struct {
	log telemetry.Logger
}

func NewLogExporter(log telemetry.Logger) telemetry.SpanExporter {
	return &logExporter{log: log}
}

func (e *logExporter) Export(rec telemetry.SpanRecord) {
	fields := make([]telemetry.Field, 0, 4+len(rec.Attributes))
	fields = append(fields,
		telemetry.String("trace_id", rec.TraceID),
		telemetry.String("span_id", rec.SpanID),
		telemetry.String("span", rec.Name),
		telemetry.Int64("duration_ms", rec.Duration.Milliseconds()),
	)
	for _, attr := range rec.Attributes {
		fields = append(fields, telemetry.String(attr.Key, attr.Value))
	}
	e.log.Info("span ended", fields...)
}
