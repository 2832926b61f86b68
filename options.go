package vector

// Option configures a Vector at construction.
type Option func(*options)

type options struct {
	name    string
	metrics *Metrics
}

// WithName sets the name used as the "vector" label on exported metrics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithMetrics reports reallocations, element transfers and failed
// operations to m. A single Metrics may be shared by many vectors.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		o.name = "default"
	}
	return o
}
