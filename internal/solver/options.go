package solver

import (
	"io"
	"log/slog"
	"runtime"

	"gonum.org/v1/gonum/mat"
)

// Options controls an analysis run
type Options struct {
	// Workers bounds the goroutines used for per-element matrix computation.
	// 1 computes serially.
	Workers int

	// ConditionLimit is the largest accepted condition number of the free-DOF block.
	ConditionLimit float64

	Logger *slog.Logger
}

// Option modifies Options
type Option func(*Options)

// WithWorkers sets the number of element workers (n < 1 means GOMAXPROCS)
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.Workers = n
	}
}

// WithLogger sets the logger used for debug records
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithConditionLimit overrides the condition number above which the system is singular
func WithConditionLimit(c float64) Option {
	return func(o *Options) {
		if c > 0 {
			o.ConditionLimit = c
		}
	}
}

func newOptions(opts []Option) Options {
	o := Options{
		Workers:        1,
		ConditionLimit: mat.ConditionTolerance,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
