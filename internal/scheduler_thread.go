// Scheduler (thread substrate): one dedicated goroutine per scheduled
// task, each sleeping until its own next occurrence and invoking a plain
// blocking action.

package calsched_internal

import (
	"sync"
	"time"

	"github.com/huandu/go-clone"
)

var threadSchedulerLog = NewCompLogger("scheduler_thread")

// ThreadAction is a blocking callable invoked on a task's own goroutine.
type ThreadAction func()

type threadTask struct {
	handle *TaskHandle
	rules  []SchedulingRule
	action ThreadAction
}

// ThreadScheduler runs each scheduled task on its own goroutine, matching
// spec.md's thread-based substrate. Rules are deep-cloned on submission,
// so a caller mutating a builder after Schedule returns cannot affect the
// already-scheduled task.
type ThreadScheduler struct {
	mu    sync.Mutex
	tasks map[string]*threadTask
}

// NewThreadScheduler creates an empty thread-substrate scheduler.
func NewThreadScheduler() *ThreadScheduler {
	return &ThreadScheduler{tasks: make(map[string]*threadTask)}
}

// Schedule registers action under name, fired according to rule, and
// starts its driver goroutine immediately.
func (s *ThreadScheduler) Schedule(name string, action ThreadAction, rule SchedulingRule) (*TaskHandle, error) {
	return s.ScheduleManyRules(name, action, []SchedulingRule{rule})
}

// ScheduleManyRules registers action under name, fired at the earliest
// occurrence across all of rules.
func (s *ThreadScheduler) ScheduleManyRules(name string, action ThreadAction, rules []SchedulingRule) (*TaskHandle, error) {
	s.mu.Lock()
	if _, exists := s.tasks[name]; exists {
		s.mu.Unlock()
		return nil, errTaskAlreadyExists(name)
	}

	clonedRules := clone.Clone(rules).([]SchedulingRule)
	if _, ok := nextRunTime(clonedRules, time.Now()); !ok {
		s.mu.Unlock()
		return nil, errRuleNeverFires(name)
	}

	handle := newTaskHandle(name, func(from time.Time) (time.Time, bool) {
		return nextRunTime(clonedRules, from)
	})
	task := &threadTask{handle: handle, rules: clonedRules, action: action}
	s.tasks[name] = task
	s.mu.Unlock()

	go s.driveTask(task)
	return handle, nil
}

// Stop pauses a scheduled task: it remains registered but skips fires
// until Resume is called.
func (s *ThreadScheduler) Stop(name string) error {
	s.mu.Lock()
	task, ok := s.tasks[name]
	s.mu.Unlock()
	if !ok {
		return errTaskNotFound(name)
	}
	task.handle.isStopped.Store(true)
	return nil
}

// Resume un-pauses a stopped task.
func (s *ThreadScheduler) Resume(name string) error {
	s.mu.Lock()
	task, ok := s.tasks[name]
	s.mu.Unlock()
	if !ok {
		return errTaskNotFound(name)
	}
	task.handle.isStopped.Store(false)
	return nil
}

// Remove unregisters a task and signals its driver goroutine to exit
// after its current sleep or run completes. It returns ErrTaskNotFound if
// name is not registered.
func (s *ThreadScheduler) Remove(name string) error {
	s.mu.Lock()
	task, ok := s.tasks[name]
	if ok {
		delete(s.tasks, name)
	}
	s.mu.Unlock()

	if !ok {
		return errTaskNotFound(name)
	}
	task.handle.isRemoved.Store(true)
	return nil
}

// driveTask is the per-task loop: compute the next occurrence, sleep
// until then (or run immediately if already due), run the action if the
// task is active, and repeat until the rules are exhausted or the task is
// removed.
func (s *ThreadScheduler) driveTask(task *threadTask) {
	from := time.Now()
	for {
		next, ok := nextRunTime(task.rules, from)
		if !ok {
			threadSchedulerLog.WithField("task", task.handle.Name()).Debug("rules exhausted, driver exiting")
			s.mu.Lock()
			if s.tasks[task.handle.Name()] == task {
				delete(s.tasks, task.handle.Name())
			}
			s.mu.Unlock()
			return
		}

		if d := time.Until(next); d > 0 {
			timer := time.NewTimer(d)
			<-timer.C
		}

		if task.handle.IsRemoved() {
			return
		}
		if task.handle.IsActive() {
			s.runAction(task, next)
		}
		from = next
	}
}

// runAction invokes the task's action with panic recovery, updating
// last-run bookkeeping around the call.
func (s *ThreadScheduler) runAction(task *threadTask, firedAt time.Time) {
	task.handle.setLastRun(firedAt)
	task.handle.isRunning.Store(true)
	defer task.handle.isRunning.Store(false)

	defer func() {
		if r := recover(); r != nil {
			threadSchedulerLog.WithField("task", task.handle.Name()).Errorf("action panicked: %v", r)
		}
	}()

	task.action()
}

// nextRunTime returns the earliest occurrence across rules strictly after
// from, or false if none of them will ever fire again.
func nextRunTime(rules []SchedulingRule, from time.Time) (time.Time, bool) {
	var best time.Time
	found := false
	for _, r := range rules {
		next, ok := r.NextFrom(from)
		if !ok {
			continue
		}
		if !found || next.Before(best) {
			best = next
			found = true
		}
	}
	return best, found
}
