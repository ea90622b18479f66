package implementation_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mbellotti/go-visit-counter/pkg/telemetry"
	"github.com/mbellotti/go-visit-counter/pkg/telemetry/implementation"
	"github.com/stretchr/testify/assert"
)

func TestExpositionHandler(t *testing.T) {
	meter := implementation.NewRegistryMeter()
	meter.Counter("c", telemetry.MetricOpt{Help: "d"}).Add(5)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	implementation.ExpositionHandler(meter).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "# HELP c d\n# TYPE c counter\nc 5\n", w.Body.String())
}
