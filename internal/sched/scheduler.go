// Package sched provides a cancellable delayed-task scheduler. The order
// flow schedules every simulated delay through it, so reset and cancel can
// deterministically invalidate in-flight timers, and tests can drive time
// by hand.
package sched

import "time"

// Handle is a single scheduled task.
type Handle interface {
	// Stop cancels the task. It reports whether the task was still pending;
	// stopping an already-fired or already-stopped task is a no-op.
	Stop() bool
}

// Scheduler runs a callback once after a delay.
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
}

// Timers is the production Scheduler backed by time.AfterFunc.
type Timers struct{}

// NewTimers returns the real-time scheduler.
func NewTimers() Timers { return Timers{} }

// After schedules fn to run once after d.
func (Timers) After(d time.Duration, fn func()) Handle {
	return timerHandle{t: time.AfterFunc(d, fn)}
}

type timerHandle struct {
	t *time.Timer
}

func (h timerHandle) Stop() bool {
	return h.t.Stop()
}

var _ Scheduler = Timers{}
