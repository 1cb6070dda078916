package timer

import (
	"sync"
	"time"
)

// fakeClock fires scheduled callbacks synchronously from Advance.
type fakeClock struct {
	mu        sync.Mutex
	now       time.Time
	schedules []*fakeSchedule
}

type fakeSchedule struct {
	clock     *fakeClock
	period    time.Duration
	next      time.Time
	f         func()
	cancelled bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Schedule(period time.Duration, f func()) Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := &fakeSchedule{clock: c, period: period, next: c.now.Add(period), f: f}
	c.schedules = append(c.schedules, s)
	return s
}

func (s *fakeSchedule) Cancel() {
	s.clock.mu.Lock()
	defer s.clock.mu.Unlock()
	s.cancelled = true
}

// live counts registrations that have not been cancelled.
func (c *fakeClock) live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, s := range c.schedules {
		if !s.cancelled {
			n++
		}
	}
	return n
}

// Advance moves time forward by d, firing due callbacks in time order.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		var due *fakeSchedule
		for _, s := range c.schedules {
			if s.cancelled || s.next.After(target) {
				continue
			}
			if due == nil || s.next.Before(due.next) {
				due = s
			}
		}
		if due == nil {
			break
		}
		c.now = due.next
		due.next = due.next.Add(due.period)
		c.mu.Unlock()
		due.f()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}
