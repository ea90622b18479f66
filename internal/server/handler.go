package server

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mbellotti/go-visit-counter/internal/visit"
	"github.com/mbellotti/go-visit-counter/pkg/telemetry"
)

const contentTypeExposition = "text/plain; version=0.0.4; charset=utf-8"

type Handler struct {
	visits *visit.Service
	meter  telemetry.Meter
	log    telemetry.Logger
}

func NewHandler(visits *visit.Service, meter telemetry.Meter, log telemetry.Logger) *Handler {
	return &Handler{visits: visits, meter: meter, log: log}
}

func (h *Handler) Home(c *gin.Context) {
	total := h.visits.Record(c.Request.Context(), "/")
	h.logVisit(c, "/", total)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(homePage(total)))
}

func (h *Handler) Stats(c *gin.Context) {
	total := h.visits.Record(c.Request.Context(), "/stats")
	h.logVisit(c, "/stats", total)

	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte(statsPage(h.visits.Total(), h.visits.Snapshot())))
}

// Metrics answers a Prometheus scrape with the full registry exposition. The
// scrape itself counts as a visit, like every other endpoint.
func (h *Handler) Metrics(c *gin.Context) {
	total := h.visits.Record(c.Request.Context(), "/metrics")
	h.logVisit(c, "/metrics", total)

	c.Data(http.StatusOK, contentTypeExposition, []byte(h.meter.Expose()))
}

func (h *Handler) Traces(c *gin.Context) {
	total := h.visits.Record(c.Request.Context(), "/traces")
	h.logVisit(c, "/traces", total)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(tracesPage()))
}

func (h *Handler) Health(c *gin.Context) {
	components := gin.H{"storage": "healthy"}
	status := http.StatusOK

	if err := h.visits.Healthy(c.Request.Context()); err != nil {
		components["storage"] = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "components": components})
}

func (h *Handler) logVisit(c *gin.Context, path string, total int64) {
	h.log.Info("visit",
		telemetry.String("remote_ip", c.ClientIP()),
		telemetry.String("path", path),
		telemetry.Int64("total_visits", total),
	)
}

func homePage(total int64) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><title>Visit Counter</title><meta charset="UTF-8"></head><body>`)
	b.WriteString("<h1>Visit counter</h1>")
	fmt.Fprintf(&b, "<p>This page has been visited <strong>%d</strong> times.</p>", total)
	b.WriteString(`<p><a href="/stats">Stats</a> | <a href="/metrics">Prometheus metrics</a> | <a href="/traces">Traces</a></p>`)
	b.WriteString("</body></html>")
	return b.String()
}

func statsPage(total int64, counts map[string]int64) string {
	paths := make([]string, 0, len(counts))
	for path := range counts {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><title>Visit Stats</title><meta charset="UTF-8"></head><body>`)
	b.WriteString("<h1>Detailed statistics</h1>")
	fmt.Fprintf(&b, "<p>Total visits: <strong>%d</strong></p>", total)
	b.WriteString("<table><tr><th>Path</th><th>Visits</th></tr>")
	for _, path := range paths {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td></tr>", path, counts[path])
	}
	b.WriteString("</table>")
	b.WriteString(`<p><a href="/">Back to home</a></p>`)
	b.WriteString("</body></html>")
	return b.String()
}

func tracesPage() string {
	return `<!DOCTYPE html><html><head><title>Traces</title><meta charset="UTF-8"></head><body>` +
		"<h1>Traces</h1>" +
		"<p>This server traces every request with an in-process span implementation. " +
		"Finished spans are written to the structured log as <code>span ended</code> records " +
		"carrying the trace id, span id, duration and request attributes.</p>" +
		`<p><a href="/">Back to home</a></p>` +
		"</body></html>"
}
