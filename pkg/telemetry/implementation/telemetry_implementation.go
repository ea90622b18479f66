package implementation

import (
	"context"
	"net/http"

	"github.com/mbellotti/go-visit-counter/pkg/telemetry"
)

type telemetryImplementation struct {
	log    telemetry.Logger
	meter  telemetry.Meter
	tracer telemetry.Tracer

	metricsAddr   string
	metricsServer *http.Server
}

func (t *telemetryImplementation) Close(ctx context.Context) error {
	var err error
	if t.metricsServer != nil {
		err = t.metricsServer.Shutdown(ctx)
	}
	if zl, ok := t.log.(*zapLogger); ok {
		zl.sync()
	}
	return err
}

func (t *telemetryImplementation) Logger() telemetry.Logger { return t.log }

func (t *telemetryImplementation) Meter() telemetry.Meter { return t.meter }

func (t *telemetryImplementation) Start(ctx context.Context) error {
	if t.metricsAddr != "" {
		t.metricsServer = StartMetricsServer(t.metricsAddr, t.meter)
	}
	return nil
}

func (t *telemetryImplementation) Tracer() telemetry.Tracer { return t.tracer }
