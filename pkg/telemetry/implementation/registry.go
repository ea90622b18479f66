package implementation

import (
	"sort"
	"strings"
	"sync"

	"github.com/mbellotti/go-visit-counter/pkg/telemetry"
)

// registryMeter is the process-wide counter catalog. It owns every metric it
// hands out; nothing else constructs a metric directly.
type registryMeter struct {
	mu      sync.Mutex
	metrics map[string]*metric
}

func NewRegistryMeter() telemetry.Meter {
	return &registryMeter{metrics: make(map[string]*metric)}
}

// Counter returns the metric registered under name, creating it on first
// use. The help text of the first registration sticks; later registrations
// with a different help text get the existing metric unchanged.
func (r *registryMeter) Counter(name string, opts ...telemetry.MetricOpt) telemetry.Counter {
	opt := firstOpt(opts)

	r.mu.Lock()
	m, ok := r.metrics[name]
	if !ok {
		m = newMetric(name, opt.Help)
		r.metrics[name] = m
	}
	r.mu.Unlock()
	return m
}

// Expose serializes every registered metric ordered by name, one blank line
// between blocks. The registry lock guards only the snapshot of handles; it
// is released before any per-metric lock is taken.
func (r *registryMeter) Expose() string {
	r.mu.Lock()
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	ms := make([]*metric, len(names))
	for i, name := range names {
		ms[i] = r.metrics[name]
	}
	r.mu.Unlock()

	var b strings.Builder
	for i, m := range ms {
		if i > 0 {
			b.WriteByte('\n')
		}
		m.writeTo(&b)
	}
	return b.String()
}

func firstOpt(opts []telemetry.MetricOpt) telemetry.MetricOpt {
	if len(opts) == 0 {
		return telemetry.MetricOpt{}
	}
	return opts[0]
}
