package telemetry

type Label struct {
	Key   string
	Value string
}

type MetricOpt struct {
	Help string
}
