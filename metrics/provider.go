// Package metrics defines the instruments a thread pool reports through.
//
// The pool only depends on Provider; plug in BasicProvider for in-process
// inspection or an adapter over a real telemetry SDK.
package metrics

// Provider hands out named instruments. The same name yields the same instrument.
// Implementations must be safe for concurrent use.
type Provider interface {
	Counter(name string, opts ...InstrumentOption) Counter
	UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter
	Histogram(name string, opts ...InstrumentOption) Histogram
}

// Counter accumulates a monotonic count (jobs submitted, jobs panicked).
type Counter interface {
	Add(n int64)
}

// UpDownCounter tracks a level that moves both ways (queued jobs, busy workers).
type UpDownCounter interface {
	Add(n int64)
}

// Histogram records a distribution, such as job durations in seconds.
type Histogram interface {
	Record(v float64)
}

// InstrumentConfig is advisory metadata attached to an instrument.
type InstrumentConfig struct {
	Description string
	Unit        string
	Attributes  map[string]string
}

// InstrumentOption mutates InstrumentConfig.
type InstrumentOption func(*InstrumentConfig)

// WithDescription sets a human readable description.
func WithDescription(desc string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Description = desc }
}

// WithUnit sets the unit ("1", "seconds").
func WithUnit(unit string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Unit = unit }
}

// WithAttributes attaches static attributes. The map is copied.
func WithAttributes(attrs map[string]string) InstrumentOption {
	return func(c *InstrumentConfig) {
		if len(attrs) == 0 {
			return
		}
		if c.Attributes == nil {
			c.Attributes = make(map[string]string, len(attrs))
		}
		for k, v := range attrs {
			c.Attributes[k] = v
		}
	}
}

func buildConfig(opts []InstrumentOption) InstrumentConfig {
	var cfg InstrumentConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}
