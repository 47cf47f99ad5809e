// Tests for scheduler_thread.go

package calsched_internal

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestThreadSchedulerRunsOnceTask(t *testing.T) {
	s := NewThreadScheduler()
	var ran atomic.Bool
	done := make(chan struct{})

	h, err := s.Schedule("once-task", func() {
		ran.Store(true)
		close(done)
	}, OnceRule(time.Now().Add(20*time.Millisecond)))
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run in time")
	}
	time.Sleep(10 * time.Millisecond)

	if !ran.Load() {
		t.Fatal("want task to have run")
	}
	if _, ok := h.GetLastRun(); !ok {
		t.Fatal("want a last run to be recorded")
	}
}

func TestThreadSchedulerRejectsDuplicateName(t *testing.T) {
	s := NewThreadScheduler()
	_, err := s.Schedule("dup", func() {}, OnceRule(time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	_, err = s.Schedule("dup", func() {}, OnceRule(time.Now().Add(time.Hour)))
	if !errors.Is(err, ErrTaskAlreadyExists) {
		t.Fatalf("want ErrTaskAlreadyExists, got %v", err)
	}
}

func TestThreadSchedulerRejectsRuleThatNeverFires(t *testing.T) {
	s := NewThreadScheduler()
	_, err := s.Schedule("past", func() {}, OnceRule(time.Now().Add(-time.Hour)))
	if !errors.Is(err, ErrRuleNeverFires) {
		t.Fatalf("want ErrRuleNeverFires, got %v", err)
	}
	// The rejected name must not be stuck in the registry: re-submitting it
	// should succeed rather than fail with ErrTaskAlreadyExists.
	_, err = s.Schedule("past", func() {}, OnceRule(time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("re-Schedule after rejection: %v", err)
	}
}

func TestThreadSchedulerStopSkipsFires(t *testing.T) {
	s := NewThreadScheduler()
	var runs atomic.Int64

	h, err := s.Schedule("stoppable", func() {
		runs.Add(1)
	}, OnceRule(time.Now().Add(30*time.Millisecond)))
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if err := s.Stop("stoppable"); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if !h.IsStopped() {
		t.Fatal("want handle to report stopped")
	}

	time.Sleep(100 * time.Millisecond)
	if runs.Load() != 0 {
		t.Fatal("want stopped task not to run")
	}
}

func TestThreadSchedulerUnknownNameErrors(t *testing.T) {
	s := NewThreadScheduler()
	if err := s.Stop("missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("Stop: want ErrTaskNotFound, got %v", err)
	}
	if err := s.Resume("missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("Resume: want ErrTaskNotFound, got %v", err)
	}
	if err := s.Remove("missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("Remove: want ErrTaskNotFound, got %v", err)
	}
}

func TestThreadSchedulerRemoveUnregistersTask(t *testing.T) {
	s := NewThreadScheduler()
	var runs atomic.Int64

	rs := NewRecurrenceRuleSet().AtSecond(0)
	_, err := s.Schedule("removable", func() {
		runs.Add(1)
	}, RecurRule(rs))
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if err := s.Remove("removable"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s.Remove("removable"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("second Remove: want ErrTaskNotFound, got %v", err)
	}
}

func TestThreadSchedulerPanicRecovery(t *testing.T) {
	s := NewThreadScheduler()
	done := make(chan struct{})

	h, err := s.Schedule("panicky", func() {
		defer close(done)
		panic("boom")
	}, OnceRule(time.Now().Add(10*time.Millisecond)))
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run in time")
	}
	time.Sleep(20 * time.Millisecond)

	if h.IsRunning() {
		t.Fatal("want task to have finished running despite the panic")
	}
}
