// Task handle: a cheap, cloneable live view onto a scheduled task, backed
// by atomics shared with the task's driver goroutine.

package calsched_internal

import (
	"sync/atomic"
	"time"
)

// TaskHandle is returned by ThreadScheduler.Schedule and
// AsyncScheduler.Schedule (and their ScheduleManyRules) and lets a caller observe
// and control a scheduled task without synchronizing with its driver.
// Copies of a TaskHandle (it is safe to copy by value) share the same
// underlying state.
type TaskHandle struct {
	name      string
	nextFrom  func(time.Time) (time.Time, bool)
	isRunning *atomic.Bool
	isStopped *atomic.Bool
	isRemoved *atomic.Bool
	lastRun   *atomic.Pointer[time.Time]
}

// newTaskHandle creates a handle over a fresh set of shared atomics.
// nextFrom computes the task's next fire time, e.g. a single rule's
// NextFrom or the earliest across several rules (ScheduleManyRules). It
// is called once per task by the scheduler substrates at submission time.
func newTaskHandle(name string, nextFrom func(time.Time) (time.Time, bool)) *TaskHandle {
	return &TaskHandle{
		name:      name,
		nextFrom:  nextFrom,
		isRunning: new(atomic.Bool),
		isStopped: new(atomic.Bool),
		isRemoved: new(atomic.Bool),
		lastRun:   new(atomic.Pointer[time.Time]),
	}
}

// Name returns the task's name, as given at submission.
func (h *TaskHandle) Name() string { return h.name }

// IsRunning reports whether the task's action is currently executing.
func (h *TaskHandle) IsRunning() bool { return h.isRunning.Load() }

// IsStopped reports whether the task is paused: it remains scheduled but
// skips its fires until Resume is called.
func (h *TaskHandle) IsStopped() bool { return h.isStopped.Load() }

// IsRemoved reports whether the task has been removed from the scheduler.
// A removed handle's driver has exited or is about to.
func (h *TaskHandle) IsRemoved() bool { return h.isRemoved.Load() }

// IsActive reports whether the task will fire on its next match: neither
// stopped nor removed.
func (h *TaskHandle) IsActive() bool {
	return !h.IsStopped() && !h.IsRemoved()
}

// GetLastRun returns the time the task's action last started, and true,
// or the zero time and false if it has never run.
func (h *TaskHandle) GetLastRun() (time.Time, bool) {
	p := h.lastRun.Load()
	if p == nil {
		return time.Time{}, false
	}
	return *p, true
}

// GetNextRun returns the next time the task is scheduled to fire, and
// true, or false if the task is inactive or its rule can never fire again.
func (h *TaskHandle) GetNextRun() (time.Time, bool) {
	if !h.IsActive() {
		return time.Time{}, false
	}
	return h.nextFrom(time.Now())
}

func (h *TaskHandle) setLastRun(t time.Time) {
	tt := t
	h.lastRun.Store(&tt)
}
