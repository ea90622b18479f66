package implementation

import (
	"io"
	"net/http"

	"github.com/mbellotti/go-visit-counter/pkg/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StartMetricsServer serves the hand-built registry exposition at /metrics
// and the Go runtime/process collectors at /metrics/runtime.
func StartMetricsServer(addr string, meter telemetry.Meter) *http.Server {
	runtimeReg := prometheus.NewRegistry()
	runtimeReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", ExpositionHandler(meter))
	mux.Handle("/metrics/runtime", promhttp.HandlerFor(runtimeReg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() { _ = srv.ListenAndServe() }()

	return srv
}

// ExpositionHandler answers a Prometheus scrape with the meter's text
// exposition.
func ExpositionHandler(meter telemetry.Meter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = io.WriteString(w, meter.Expose())
	})
}
