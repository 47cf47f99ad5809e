// Tests for task_handle.go

package calsched_internal

import (
	"testing"
	"time"
)

func TestTaskHandleInitialState(t *testing.T) {
	rule := OnceRule(time.Now().Add(time.Hour))
	h := newTaskHandle("job", rule.NextFrom)

	if h.Name() != "job" {
		t.Fatalf("want name job, got %s", h.Name())
	}
	if h.IsRunning() || h.IsStopped() || h.IsRemoved() {
		t.Fatal("want a fresh handle to be not running, not stopped and not removed")
	}
	if !h.IsActive() {
		t.Fatal("want a fresh handle to be active")
	}
	if _, ok := h.GetLastRun(); ok {
		t.Fatal("want no last run on a fresh handle")
	}
}

func TestTaskHandleSharesStateAcrossCopies(t *testing.T) {
	rule := OnceRule(time.Now().Add(time.Hour))
	h := newTaskHandle("job", rule.NextFrom)
	copy := *h

	h.isStopped.Store(true)
	if !copy.IsStopped() {
		t.Fatal("want a copy of TaskHandle to observe state changes on the original")
	}
}

func TestTaskHandleSetLastRun(t *testing.T) {
	rule := OnceRule(time.Now().Add(time.Hour))
	h := newTaskHandle("job", rule.NextFrom)

	now := time.Now()
	h.setLastRun(now)

	got, ok := h.GetLastRun()
	if !ok || !got.Equal(now) {
		t.Fatalf("GetLastRun() = (%v, %v), want (%v, true)", got, ok, now)
	}
}

func TestTaskHandleInactiveHasNoNextRun(t *testing.T) {
	rule := OnceRule(time.Now().Add(time.Hour))
	h := newTaskHandle("job", rule.NextFrom)
	h.isRemoved.Store(true)

	if _, ok := h.GetNextRun(); ok {
		t.Fatal("want no next run for a removed handle")
	}
}
