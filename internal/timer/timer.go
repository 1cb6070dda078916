// Package timer implements a pausable countdown controller that reports
// elapsed and remaining time on a fixed interval and signals completion.
package timer

import (
	"log/slog"
	"sync"
	"time"
)

// Controller drives a repeating tick for one countdown at a time. The zero
// value is not usable; construct one with New. A Controller can be started
// again after it stops or completes.
//
// Callbacks run on the clock's goroutine without the controller lock held,
// so they may call any Controller method.
type Controller struct {
	mu     sync.Mutex
	scope  any
	clock  Clock
	logger *slog.Logger

	started bool
	active  bool
	paused  bool

	duration   time.Duration
	interval   time.Duration
	startTime  time.Time
	pausedTime time.Time
	elapsed    time.Duration
	remaining  time.Duration

	onInterval  IntervalFunc
	onCompleted CompletedFunc

	handle Handle
	// gen identifies the live registration. Ticks carrying an older value
	// come from a cancelled registration and are dropped.
	gen uint64
}

// New creates an idle Controller. scope is handed, uninterpreted, to every
// callback.
func New(scope any, opts ...Option) *Controller {
	c := &Controller{
		scope:       scope,
		clock:       SystemClock,
		logger:      slog.Default(),
		onInterval:  noopInterval,
		onCompleted: noopCompleted,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins a new run, stopping and clearing any previous one first.
func (c *Controller) Start(o StartOptions) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started && c.active {
		c.stopLocked()
	}
	c.resetLocked()

	c.started = true
	c.active = true
	c.paused = false
	if o.Duration != 0 {
		c.duration = o.Duration
		c.remaining = o.Duration
	}
	c.interval = o.Interval
	if c.interval <= 0 {
		c.interval = DefaultInterval
	}
	if o.OnCompleted != nil {
		c.onCompleted = o.OnCompleted
	}
	if o.OnInterval != nil {
		c.onInterval = o.OnInterval
	}
	c.startTime = c.clock.Now()

	c.logger.Debug("timer started", "duration", c.duration, "interval", c.interval)
	c.scheduleLocked()
}

// Pause suspends a running timer. It does nothing unless the timer is running.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started || !c.active || c.paused {
		c.logger.Debug("pause ignored", "state", c.stateLocked())
		return
	}
	c.pausedTime = c.clock.Now()
	c.cancelLocked()
	c.active = false
	c.paused = true
	c.logger.Debug("timer paused", "elapsed", c.elapsed)
}

// Resume continues a paused timer. The time spent paused does not count
// toward elapsed time. It does nothing unless the timer is paused.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started || c.active || !c.paused {
		c.logger.Debug("resume ignored", "state", c.stateLocked())
		return
	}
	c.active = true
	c.paused = false
	var gap time.Duration
	if !c.pausedTime.IsZero() {
		gap = c.clock.Now().Sub(c.pausedTime)
	}
	c.startTime = c.startTime.Add(gap)
	c.logger.Debug("timer resumed", "paused_for", gap)
	c.scheduleLocked()
}

// Stop halts a running timer without completing it. A paused timer is not
// affected; use Reset to discard it.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started || !c.active {
		c.logger.Debug("stop ignored", "state", c.stateLocked())
		return
	}
	c.stopLocked()
}

// Reset cancels any live registration and returns the controller to its
// idle state with no-op callbacks.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// IsActive reports whether ticks are currently being delivered.
func (c *Controller) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// HasStarted reports whether Start was called since the last Reset.
func (c *Controller) HasStarted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Elapsed returns the elapsed time computed on the most recent tick.
func (c *Controller) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// Remaining returns the remaining time computed on the most recent tick.
// It is zero when the run has no duration.
func (c *Controller) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Duration returns the configured run length, or zero for an unbounded run.
func (c *Controller) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

// Interval returns the configured tick period, or zero when idle.
func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// ToReadable formats d as H:MM:SS. See the package-level ToReadable.
func (c *Controller) ToReadable(d time.Duration) string {
	return ToReadable(d)
}

func (c *Controller) stateLocked() State {
	switch {
	case !c.started:
		return StateIdle
	case c.active:
		return StateRunning
	case c.paused:
		return StatePaused
	default:
		return StateStopped
	}
}

func (c *Controller) stopLocked() {
	c.startTime = c.clock.Now()
	c.cancelLocked()
	c.pausedTime = time.Time{}
	c.active = false
	c.paused = false
	c.logger.Debug("timer stopped", "elapsed", c.elapsed)
}

func (c *Controller) resetLocked() {
	c.cancelLocked()
	c.onInterval = noopInterval
	c.onCompleted = noopCompleted
	c.duration = 0
	c.remaining = 0
	c.elapsed = 0
	c.pausedTime = time.Time{}
	c.interval = 0
	c.paused = false
	c.active = false
	c.started = false
}

func (c *Controller) scheduleLocked() {
	c.gen++
	gen := c.gen
	c.handle = c.clock.Schedule(c.interval, func() { c.tick(gen) })
}

func (c *Controller) cancelLocked() {
	if c.handle == nil {
		return
	}
	c.handle.Cancel()
	c.handle = nil
	c.gen++
}

// tick recomputes elapsed and remaining from the start time rather than by
// counting ticks, so late or dropped ticks do not cause drift.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || !c.active {
		c.mu.Unlock()
		return
	}

	scope := c.scope
	onInterval := c.onInterval
	c.elapsed = c.clock.Now().Sub(c.startTime)

	if c.duration == 0 {
		c.remaining = 0
		elapsed := c.elapsed
		c.mu.Unlock()
		onInterval(scope, elapsed, 0)
		return
	}

	c.remaining = c.duration - c.elapsed
	if c.remaining > 0 {
		elapsed, remaining := c.elapsed, c.remaining
		c.mu.Unlock()
		onInterval(scope, elapsed, remaining)
		return
	}

	c.remaining = 0
	duration := c.duration
	onCompleted := c.onCompleted
	c.stopLocked()
	c.logger.Debug("timer completed", "duration", duration)
	c.mu.Unlock()

	onInterval(scope, duration, 0)
	onCompleted(scope)
}
