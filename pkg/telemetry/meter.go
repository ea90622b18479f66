package telemetry

// Meter hands out named counters with create-or-get semantics: the first
// registration of a name wins and every later call for the same name returns
// a handle to the same underlying metric, whatever help text it carries.
type Meter interface {
	Counter(name string, opts ...MetricOpt) Counter
	Expose() string
}

// Counter is a monotonic counter with per-label-set accumulators.
type Counter interface {
	Add(delta int64, labels ...Label)
	Expose() string
}
