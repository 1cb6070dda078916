package timer

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tickCall struct {
	scope     any
	elapsed   time.Duration
	remaining time.Duration
}

// recorder collects callback invocations.
type recorder struct {
	ticks     []tickCall
	completed []any
	at        time.Time
	clock     *fakeClock
}

func (r *recorder) options(duration, interval time.Duration) StartOptions {
	return StartOptions{
		Duration: duration,
		Interval: interval,
		OnInterval: func(scope any, elapsed, remaining time.Duration) {
			r.ticks = append(r.ticks, tickCall{scope: scope, elapsed: elapsed, remaining: remaining})
		},
		OnCompleted: func(scope any) {
			r.completed = append(r.completed, scope)
			if r.clock != nil {
				r.at = r.clock.Now()
			}
		},
	}
}

func newTestController(scope any) (*Controller, *fakeClock, *recorder) {
	clock := newFakeClock()
	return New(scope, WithClock(clock)), clock, &recorder{clock: clock}
}

func TestStartCompletesOnce(t *testing.T) {
	c, clock, rec := newTestController("scope")
	start := clock.Now()

	c.Start(rec.options(time.Second, 100*time.Millisecond))
	assert.True(t, c.IsActive())
	assert.True(t, c.HasStarted())
	assert.Equal(t, StateRunning, c.State())

	clock.Advance(time.Second)

	require.Len(t, rec.completed, 1)
	assert.Equal(t, "scope", rec.completed[0])
	assert.Equal(t, start.Add(time.Second), rec.at)

	require.Len(t, rec.ticks, 10)
	assert.Equal(t, tickCall{scope: "scope", elapsed: 100 * time.Millisecond, remaining: 900 * time.Millisecond}, rec.ticks[0])
	last := rec.ticks[len(rec.ticks)-1]
	assert.Equal(t, time.Second, last.elapsed)
	assert.Equal(t, time.Duration(0), last.remaining)

	clock.Advance(5 * time.Second)
	assert.Len(t, rec.completed, 1)
	assert.Len(t, rec.ticks, 10)

	assert.False(t, c.IsActive())
	assert.True(t, c.HasStarted())
	assert.Equal(t, StateStopped, c.State())
	assert.Equal(t, 0, clock.live())
}

func TestElapsedPlusRemainingEqualsDuration(t *testing.T) {
	c, clock, rec := newTestController(nil)
	duration := 250 * time.Millisecond

	c.Start(rec.options(duration, 100*time.Millisecond))
	clock.Advance(time.Second)

	require.Len(t, rec.ticks, 3)
	for _, call := range rec.ticks[:len(rec.ticks)-1] {
		assert.Equal(t, duration, call.elapsed+call.remaining)
	}
	assert.Equal(t, tickCall{elapsed: duration, remaining: 0}, rec.ticks[2])

	// completion lands on the first tick at or past the duration
	require.Len(t, rec.completed, 1)
	assert.Equal(t, 300*time.Millisecond, c.Elapsed())
	assert.Equal(t, time.Duration(0), c.Remaining())
}

func TestPauseResumeExcludesPausedTime(t *testing.T) {
	c, clock, rec := newTestController(nil)
	start := clock.Now()

	c.Start(rec.options(5000*time.Millisecond, 10*time.Millisecond))
	clock.Advance(1000 * time.Millisecond)

	c.Pause()
	assert.False(t, c.IsActive())
	assert.Equal(t, StatePaused, c.State())
	assert.Equal(t, 0, clock.live())
	ticksAtPause := len(rec.ticks)

	clock.Advance(2000 * time.Millisecond)
	assert.Len(t, rec.ticks, ticksAtPause)

	c.Resume()
	assert.True(t, c.IsActive())
	assert.Equal(t, 1000*time.Millisecond, c.Elapsed())

	// 4000ms of the run are left once it resumes at 3000ms
	clock.Advance(3990 * time.Millisecond)
	assert.Empty(t, rec.completed)

	clock.Advance(10 * time.Millisecond)
	require.Len(t, rec.completed, 1)
	assert.Equal(t, start.Add(7000*time.Millisecond), rec.at)
}

func TestUnboundedRunNeverCompletes(t *testing.T) {
	c, clock, rec := newTestController(nil)

	c.Start(rec.options(0, 100*time.Millisecond))
	clock.Advance(time.Second)

	require.Len(t, rec.ticks, 10)
	for i, call := range rec.ticks {
		assert.Equal(t, time.Duration(i+1)*100*time.Millisecond, call.elapsed)
		assert.Equal(t, time.Duration(0), call.remaining)
	}

	clock.Advance(time.Minute)
	assert.Empty(t, rec.completed)
	assert.True(t, c.IsActive())
	assert.Equal(t, time.Duration(0), c.Duration())
}

func TestNegativeDurationCompletesOnFirstTick(t *testing.T) {
	c, clock, rec := newTestController("scope")

	c.Start(rec.options(-time.Second, 100*time.Millisecond))
	assert.Equal(t, -time.Second, c.Duration())

	clock.Advance(time.Second)

	require.Len(t, rec.completed, 1)
	require.Len(t, rec.ticks, 1)
	assert.Equal(t, tickCall{scope: "scope", elapsed: -time.Second, remaining: 0}, rec.ticks[0])
	assert.Equal(t, clock.Now().Add(-900*time.Millisecond), rec.at)
	assert.Equal(t, StateStopped, c.State())
	assert.Equal(t, 0, clock.live())
}

func TestDefaultInterval(t *testing.T) {
	c, clock, _ := newTestController(nil)

	c.Start(StartOptions{Duration: time.Second})
	assert.Equal(t, DefaultInterval, c.Interval())

	// nil callbacks are safe to invoke through completion
	clock.Advance(2 * time.Second)
	assert.Equal(t, StateStopped, c.State())
}

func TestGuardsAreNoops(t *testing.T) {
	c, clock, rec := newTestController(nil)

	c.Pause()
	c.Resume()
	c.Stop()
	assert.False(t, c.IsActive())
	assert.False(t, c.HasStarted())
	assert.Equal(t, StateIdle, c.State())

	c.Start(rec.options(time.Second, 100*time.Millisecond))
	c.Resume()
	assert.Equal(t, StateRunning, c.State())
	assert.Equal(t, 1, clock.live())

	c.Pause()
	c.Pause()
	c.Stop()
	assert.Equal(t, StatePaused, c.State())
	assert.Equal(t, 0, clock.live())
}

func TestStartWhileActiveCancelsPreviousRun(t *testing.T) {
	c, clock, first := newTestController(nil)
	second := &recorder{clock: clock}

	c.Start(first.options(time.Second, 100*time.Millisecond))
	clock.Advance(250 * time.Millisecond)
	require.Len(t, first.ticks, 2)

	c.Start(second.options(time.Second, 100*time.Millisecond))
	assert.Equal(t, 1, clock.live())

	clock.Advance(2 * time.Second)
	assert.Len(t, first.ticks, 2)
	assert.Empty(t, first.completed)
	assert.Len(t, second.completed, 1)
}

func TestStaleTickIsIgnored(t *testing.T) {
	c, clock, rec := newTestController(nil)

	c.Start(rec.options(time.Second, 100*time.Millisecond))
	require.Len(t, clock.schedules, 1)
	stale := clock.schedules[0].f

	c.Stop()
	stale()
	assert.Empty(t, rec.ticks)

	c.Start(rec.options(time.Second, 100*time.Millisecond))
	stale()
	assert.Empty(t, rec.ticks)
}

func TestStopThenRestart(t *testing.T) {
	c, clock, rec := newTestController(nil)

	c.Start(rec.options(time.Second, 100*time.Millisecond))
	clock.Advance(300 * time.Millisecond)
	c.Stop()
	assert.Equal(t, StateStopped, c.State())
	assert.True(t, c.HasStarted())

	clock.Advance(time.Second)
	assert.Len(t, rec.ticks, 3)

	c.Start(rec.options(time.Second, 100*time.Millisecond))
	clock.Advance(time.Second)
	assert.Len(t, rec.completed, 1)
	assert.Len(t, rec.ticks, 13)
}

func TestResetIsIdempotent(t *testing.T) {
	c, clock, rec := newTestController(nil)

	c.Start(rec.options(time.Second, 100*time.Millisecond))
	clock.Advance(300 * time.Millisecond)

	snapshot := func() []any {
		return []any{c.State(), c.IsActive(), c.HasStarted(), c.Duration(), c.Interval(), c.Elapsed(), c.Remaining()}
	}

	c.Reset()
	once := snapshot()
	c.Reset()
	assert.Equal(t, once, snapshot())
	assert.Equal(t, []any{StateIdle, false, false, time.Duration(0), time.Duration(0), time.Duration(0), time.Duration(0)}, once)
	assert.Equal(t, 0, clock.live())

	clock.Advance(time.Second)
	assert.Len(t, rec.ticks, 3)
}

func TestCallbackMayCallController(t *testing.T) {
	clock := newFakeClock()
	c := New("scope", WithClock(clock))
	calls := 0

	c.Start(StartOptions{
		Duration: time.Second,
		Interval: 100 * time.Millisecond,
		OnInterval: func(scope any, elapsed, remaining time.Duration) {
			calls++
			if elapsed >= 300*time.Millisecond {
				c.Pause()
			}
		},
	})
	clock.Advance(time.Second)

	assert.Equal(t, 3, calls)
	assert.Equal(t, StatePaused, c.State())
}

func TestGuardPathsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := New(nil, WithClock(newFakeClock()), WithLogger(logger))

	c.Pause()
	assert.Contains(t, buf.String(), "pause ignored")
	assert.Contains(t, buf.String(), "state=idle")
}

func TestSystemClockSchedule(t *testing.T) {
	ticks := make(chan struct{}, 10)
	h := SystemClock.Schedule(5*time.Millisecond, func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	})
	defer h.Cancel()

	for i := 0; i < 2; i++ {
		select {
		case <-ticks:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for tick")
		}
	}

	h.Cancel()
	h.Cancel()
}
