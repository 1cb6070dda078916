package timer

import (
	"log/slog"
	"time"
)

// DefaultInterval is the tick period used when StartOptions.Interval is not positive.
const DefaultInterval = 100 * time.Millisecond

// IntervalFunc receives the scope given to New along with the elapsed and
// remaining time of the current run.
type IntervalFunc func(scope any, elapsed, remaining time.Duration)

// CompletedFunc receives the scope given to New once a run finishes.
type CompletedFunc func(scope any)

func noopInterval(any, time.Duration, time.Duration) {}

func noopCompleted(any) {}

// StartOptions configures a single run of a Controller.
type StartOptions struct {
	// Duration is the total run length. Zero means the run never completes on
	// its own and only reports interval ticks. A negative duration completes
	// on the first tick.
	Duration time.Duration

	// Interval is the tick period. Defaults to DefaultInterval.
	Interval time.Duration

	OnCompleted CompletedFunc
	OnInterval  IntervalFunc
}

// Option configures a Controller
type Option func(*Controller)

// WithClock replaces SystemClock, mostly for tests.
func WithClock(clock Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithLogger sets the logger used for lifecycle diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}
