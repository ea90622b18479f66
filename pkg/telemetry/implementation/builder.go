package implementation

import (
	"github.com/mbellotti/go-visit-counter/pkg/telemetry"
)

type Config struct {
	ServiceName string
	MetricsAddr string
	Development bool
}

func NewTelemetry(cfg Config) (telemetry.Telemetry, error) {
	log, err := NewZapLogger(cfg.Development)
	if err != nil {
		return nil, err
	}
	log = log.With(telemetry.String("service", cfg.ServiceName))

	meter := NewRegistryMeter()
	tracer := NewTracer(NewLogExporter(log))

	return &telemetryImplementation{
		log:         log,
		meter:       meter,
		tracer:      tracer,
		metricsAddr: cfg.MetricsAddr,
	}, nil
}
