package visit

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mbellotti/go-visit-counter/pkg/telemetry"
)

const (
	totalMetricName = "visits_total"
	totalMetricHelp = "Total number of visits served"
)

// Counter tracks the process-wide visit total and per-path visit counts,
// mirroring both into counters obtained from the meter. The total and the
// per-path map are synchronized independently: a reader racing with in-flight
// requests can see the two momentarily disagree, and they converge once all
// requests complete.
type Counter struct {
	meter       telemetry.Meter
	totalMetric telemetry.Counter

	total atomic.Int64

	mu          sync.Mutex
	pathCounts  map[string]int64
	pathMetrics map[string]telemetry.Counter
}

func NewCounter(meter telemetry.Meter) *Counter {
	return &Counter{
		meter:       meter,
		totalMetric: meter.Counter(totalMetricName, telemetry.MetricOpt{Help: totalMetricHelp}),
		pathCounts:  make(map[string]int64),
		pathMetrics: make(map[string]telemetry.Counter),
	}
}

// IncrementTotal bumps the overall visit count and returns the value after
// the increment.
func (c *Counter) IncrementTotal() int64 {
	n := c.total.Add(1)
	c.totalMetric.Add(1)
	return n
}

// IncrementPath bumps the count for one path, creating and caching its
// backing metric on first sight. The metric Add runs after the map lock is
// released.
func (c *Counter) IncrementPath(path string) {
	c.mu.Lock()
	c.pathCounts[path]++
	handle, ok := c.pathMetrics[path]
	if !ok {
		handle = c.meter.Counter(metricNameForPath(path), telemetry.MetricOpt{
			Help: "Visits to path " + path,
		})
		c.pathMetrics[path] = handle
	}
	c.mu.Unlock()

	handle.Add(1, telemetry.Label{Key: "path", Value: path})
}

func (c *Counter) Total() int64 {
	return c.total.Load()
}

// Snapshot returns a copy of the per-path counts, taken under the same lock
// IncrementPath mutates under.
func (c *Counter) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]int64, len(c.pathCounts))
	for path, n := range c.pathCounts {
		out[path] = n
	}
	return out
}

// ExpositionText renders the total metric followed by every per-path metric,
// ordered by metric name, blank lines between blocks.
func (c *Counter) ExpositionText() string {
	c.mu.Lock()
	names := make([]string, 0, len(c.pathMetrics))
	handles := make(map[string]telemetry.Counter, len(c.pathMetrics))
	for path, handle := range c.pathMetrics {
		name := metricNameForPath(path)
		names = append(names, name)
		handles[name] = handle
	}
	c.mu.Unlock()
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(c.totalMetric.Expose())
	for _, name := range names {
		b.WriteByte('\n')
		b.WriteString(handles[name].Expose())
	}
	return b.String()
}

// metricNameForPath derives a stable metric name from a request path:
// "/" becomes path_root_visits, everything else has its slashes folded to
// underscores.
func metricNameForPath(path string) string {
	if path == "/" {
		return "path_root_visits"
	}
	name := strings.Trim(path, "/")
	name = strings.ReplaceAll(name, "/", "_")
	return "path_" + name + "_visits"
}
