package timer

import (
	"sync"
	"time"
)

// Handle is a live repeating-timer registration.
type Handle interface {
	// Cancel stops future invocations. It is safe to call more than once.
	Cancel()
}

// Clock abstracts time operations to allow testing.
type Clock interface {
	Now() time.Time

	// Schedule invokes f every period until the returned Handle is cancelled.
	Schedule(period time.Duration, f func()) Handle
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func (c *realClock) Schedule(period time.Duration, f func()) Handle {
	h := &tickerHandle{
		ticker: time.NewTicker(period),
		done:   make(chan struct{}),
	}
	go h.loop(f)
	return h
}

type tickerHandle struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (h *tickerHandle) loop(f func()) {
	for {
		select {
		case <-h.done:
			return
		case <-h.ticker.C:
			f()
		}
	}
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.done)
	})
}

// SystemClock is the default clock implementation.
var SystemClock Clock = &realClock{}
