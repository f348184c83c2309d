package threadpool

import (
	"log/slog"
	"strconv"

	"github.com/ygrebnov/errorc"

	"github.com/Hellaeh/thread-pool/metrics"
)

// config holds Pool configuration.
type config struct {
	// Capacity is the fixed number of workers.
	// Default: SuggestedCapacity().
	Capacity int

	// capacitySet distinguishes an explicit WithCapacity(0) from the default.
	capacitySet bool

	// Name identifies the pool in logs and worker pprof labels.
	// Default: "pool".
	Name string

	// Logger receives worker lifecycle and panic records.
	// Default: slog.Default().
	Logger *slog.Logger

	// Metrics provides the pool instruments.
	// Default: metrics.NoopProvider.
	Metrics metrics.Provider

	// PanicHandler is chained after the panicking bit is raised.
	// Default: nil (the pool logs the panic value and stack).
	PanicHandler PanicHandler

	// LockOSThread wires every worker to its own OS thread for its whole life.
	// Default: true.
	LockOSThread bool
}

// defaultConfig centralizes default values for config. Capacity is resolved in New.
func defaultConfig() config {
	return config{
		Name:         "pool",
		Logger:       slog.Default(),
		Metrics:      metrics.NewNoopProvider(),
		LockOSThread: true,
	}
}

// validateConfig checks invariants that individual options cannot see.
func validateConfig(cfg *config) error {
	if !cfg.capacitySet {
		cfg.Capacity = SuggestedCapacity()
	}
	if cfg.Capacity < 0 || cfg.Capacity > MaxThreads {
		return errorc.With(
			ErrInvalidConfig,
			errorc.String("capacity", strconv.Itoa(cfg.Capacity)+" is outside [0, "+strconv.Itoa(MaxThreads)+"]"),
		)
	}
	return nil
}

// Option configures a Pool. Invalid input is reported by New.
type Option func(*config) error

// WithCapacity fixes the number of workers. n must be in [0, MaxThreads].
// A pool of capacity 0 accepts jobs but never runs them.
func WithCapacity(n int) Option {
	return func(cfg *config) error {
		cfg.Capacity = n
		cfg.capacitySet = true
		return nil
	}
}

// WithName sets the pool name used in logs and worker labels.
func WithName(name string) Option {
	return func(cfg *config) error {
		if name == "" {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithName requires a non-empty name"))
		}
		cfg.Name = name
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithLogger requires a non-nil logger"))
		}
		cfg.Logger = l
		return nil
	}
}

// WithMetrics sets the metrics provider.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}

// WithPanicHandler chains h after the pool records a worker panic.
// h runs on the panicking worker, right before that worker terminates.
func WithPanicHandler(h PanicHandler) Option {
	return func(cfg *config) error { cfg.PanicHandler = h; return nil }
}

// WithThreadLock controls whether workers are locked to dedicated OS threads.
func WithThreadLock(enabled bool) Option {
	return func(cfg *config) error { cfg.LockOSThread = enabled; return nil }
}
