package sched

import (
	"sync"
	"time"
)

// Manual is a Scheduler for tests. Time stands still until Advance is
// called; due tasks then run synchronously on the calling goroutine, in
// due-time order with scheduling order breaking ties. Callbacks may
// schedule further tasks; Advance keeps draining until the target instant.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	due     time.Time
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

// NewManual returns a manual scheduler starting at an arbitrary fixed instant.
func NewManual() *Manual {
	return &Manual{now: time.Unix(0, 0)}
}

// Now returns the scheduler's current instant.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// After schedules fn to run once d after the current instant.
func (m *Manual) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTask{due: m.now.Add(d), seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return &manualHandle{m: m, t: t}
}

// Pending returns the number of tasks that have neither fired nor been stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running every task that comes due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	for {
		next := m.nextDueLocked(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		if next.due.After(m.now) {
			m.now = next.due
		}
		next.fired = true
		fn := next.fn
		m.mu.Unlock()
		fn()
		m.mu.Lock()
	}
}

// nextDueLocked picks the earliest pending task due at or before target.
func (m *Manual) nextDueLocked(target time.Time) *manualTask {
	var best *manualTask
	for _, t := range m.tasks {
		if t.stopped || t.fired || t.due.After(target) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

type manualHandle struct {
	m *Manual
	t *manualTask
}

func (h *manualHandle) Stop() bool {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	if h.t.stopped || h.t.fired {
		return false
	}
	h.t.stopped = true
	return true
}

var _ Scheduler = (*Manual)(nil)
