// Scheduler (async substrate): a single dispatcher goroutine holding a
// min-heap of pending tasks ordered by next occurrence, feeding a bounded
// worker pool. This is the teacher's periodic-task scheduler
// architecture (Next Task Heap + Dispatcher + Task/TODO queues + Worker
// Pool) repurposed to drive calendar-rule occurrences instead of fixed
// intervals: where the original recomputed "next = now + interval" on
// every re-queue, this one asks the task's SchedulingRule for its next
// occurrence.
//
//             +------------------+
//             |  Next Task Heap  |
//             +------------------+
//                       ^
//                       | task
//                       v
//             +------------------+
//             |     Dispatcher   |
//             +------------------+
//               ^              | task
//               | task         v
//        +------------+ +------------+
//        | Task Queue | | TODO Queue |
//        +------------+ +------------+
//            ^  ^              |
//   new task |  |              v
//   ---------+  |       +------------+
//           +---+       | WorkerPool |
//           |           +------------+
//           |             | task     | task       | task
//           |             v          v            v
//           |        +--------+ +--------+   +--------+
//           |        | Worker | | Worker |...| Worker |
//           |        +--------+ +--------+   +--------+
//           |             | task     | task       | task
//           +-------------+----------+--- ... ----+
//
// Only the dispatcher goroutine ever touches the heap, so it needs no
// lock; the name registry is the only state shared with callers and it is
// guarded by mu. The TODO queue feeds the actual execution engine,
// internal/worker_pool.go's WorkerPool, rather than a scheduler-private
// pool of goroutines.

package calsched_internal

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/huandu/go-clone"
)

const (
	AsyncSchedulerTaskQLen          = 64
	AsyncSchedulerTodoQLen          = 64
	AsyncSchedulerMaxWorkers        = 8
	AsyncSchedulerNumWorkersDefault = -1
)

var asyncSchedulerLog = NewCompLogger("scheduler_async")

// AsyncAction is a cooperative action run on a worker pool goroutine. It
// should not block for long periods; long blocking work belongs on the
// thread substrate (ThreadScheduler) instead.
type AsyncAction func()

// AsyncFuture is a bare future: calling it starts cooperative work and the
// returned channel is closed when that work completes.
type AsyncFuture func() <-chan struct{}

type asyncTask struct {
	handle *TaskHandle
	rules  []SchedulingRule
	action AsyncAction
	nextTs time.Time
}

// AsyncSchedulerConfig configures the async substrate's worker pool.
type AsyncSchedulerConfig struct {
	// NumWorkers is the number of worker goroutines. -1 (the default)
	// matches the CPU-affinity-aware available core count, capped at
	// AsyncSchedulerMaxWorkers.
	NumWorkers int `yaml:"num_workers"`
}

// DefaultAsyncSchedulerConfig returns the config used when none is given
// to NewAsyncScheduler.
func DefaultAsyncSchedulerConfig() *AsyncSchedulerConfig {
	return &AsyncSchedulerConfig{NumWorkers: AsyncSchedulerNumWorkersDefault}
}

type asyncSchedulerState int

const (
	asyncSchedulerStateCreated asyncSchedulerState = iota
	asyncSchedulerStateRunning
	asyncSchedulerStateStopped
)

// AsyncScheduler is the cooperative, worker-pool-backed scheduling
// substrate.
type AsyncScheduler struct {
	// Next Task Heap, owned exclusively by the dispatcher goroutine.
	tasks []*asyncTask

	taskQ, todoQ chan *asyncTask
	numWorkers   int
	pool         *WorkerPool

	mu     sync.Mutex
	byName map[string]*asyncTask
	state  asyncSchedulerState

	ctx      context.Context
	cancelFn context.CancelFunc
	wg       sync.WaitGroup
}

// NewAsyncScheduler creates a scheduler in the Created state; call Start
// to begin dispatching.
func NewAsyncScheduler(cfg *AsyncSchedulerConfig) *AsyncScheduler {
	if cfg == nil {
		cfg = DefaultAsyncSchedulerConfig()
	}
	numWorkers := resolveNumWorkers(cfg.NumWorkers, AsyncSchedulerMaxWorkers)

	ctx, cancelFn := context.WithCancel(context.Background())
	return &AsyncScheduler{
		tasks:      make([]*asyncTask, 0),
		taskQ:      make(chan *asyncTask, AsyncSchedulerTaskQLen),
		todoQ:      make(chan *asyncTask, AsyncSchedulerTodoQLen),
		numWorkers: numWorkers,
		byName:     make(map[string]*asyncTask),
		state:      asyncSchedulerStateCreated,
		ctx:        ctx,
		cancelFn:   cancelFn,
	}
}

// sort.Interface, heap.Interface: the dispatcher goroutine is the sole
// caller of these.

func (s *AsyncScheduler) Len() int { return len(s.tasks) }

func (s *AsyncScheduler) Less(i, j int) bool {
	return s.tasks[i].nextTs.Before(s.tasks[j].nextTs)
}

func (s *AsyncScheduler) Swap(i, j int) {
	s.tasks[i], s.tasks[j] = s.tasks[j], s.tasks[i]
}

func (s *AsyncScheduler) Push(x any) {
	if task, ok := x.(*asyncTask); ok {
		s.tasks = append(s.tasks, task)
	}
}

func (s *AsyncScheduler) Pop() any {
	newLen := len(s.tasks) - 1
	task := s.tasks[newLen]
	s.tasks = s.tasks[:newLen]
	return task
}

// Schedule registers action under name, fired according to rule.
func (s *AsyncScheduler) Schedule(name string, action AsyncAction, rule SchedulingRule) (*TaskHandle, error) {
	return s.ScheduleManyRules(name, action, []SchedulingRule{rule})
}

// ScheduleManyRules registers action under name, fired at the earliest
// occurrence across all of rules.
func (s *AsyncScheduler) ScheduleManyRules(name string, action AsyncAction, rules []SchedulingRule) (*TaskHandle, error) {
	s.mu.Lock()
	if _, exists := s.byName[name]; exists {
		s.mu.Unlock()
		return nil, errTaskAlreadyExists(name)
	}

	clonedRules := clone.Clone(rules).([]SchedulingRule)
	next, ok := nextRunTime(clonedRules, time.Now())
	if !ok {
		s.mu.Unlock()
		return nil, errRuleNeverFires(name)
	}

	handle := newTaskHandle(name, func(from time.Time) (time.Time, bool) {
		return nextRunTime(clonedRules, from)
	})
	task := &asyncTask{handle: handle, rules: clonedRules, action: action, nextTs: next}
	s.byName[name] = task
	s.mu.Unlock()

	s.taskQ <- task
	return handle, nil
}

// ScheduleFut registers future under name, fired according to rule: it
// wraps the bare future as an AsyncAction that starts it and waits for its
// completion channel to close before considering that fire done.
func (s *AsyncScheduler) ScheduleFut(name string, future AsyncFuture, rule SchedulingRule) (*TaskHandle, error) {
	return s.Schedule(name, func() { <-future() }, rule)
}

// Stop pauses a scheduled task: the dispatcher keeps advancing it through
// its occurrences, but the worker skips invoking its action until Resume.
func (s *AsyncScheduler) Stop(name string) error {
	task, err := s.lookup(name)
	if err != nil {
		return err
	}
	task.handle.isStopped.Store(true)
	return nil
}

// Resume un-pauses a stopped task.
func (s *AsyncScheduler) Resume(name string) error {
	task, err := s.lookup(name)
	if err != nil {
		return err
	}
	task.handle.isStopped.Store(false)
	return nil
}

// Remove unregisters a task. Its next dispatch (whether already in the
// heap, the TODO queue, or running) is the last one: the worker observes
// IsRemoved and does not re-queue it.
func (s *AsyncScheduler) Remove(name string) error {
	s.mu.Lock()
	task, ok := s.byName[name]
	if ok {
		delete(s.byName, name)
	}
	s.mu.Unlock()

	if !ok {
		return errTaskNotFound(name)
	}
	task.handle.isRemoved.Store(true)
	return nil
}

func (s *AsyncScheduler) lookup(name string) (*asyncTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.byName[name]
	if !ok {
		return nil, errTaskNotFound(name)
	}
	return task, nil
}

// Start launches the dispatcher, the TODO-queue feeder and the worker
// pool. It is a no-op if the scheduler is not in the Created state.
func (s *AsyncScheduler) Start() {
	s.mu.Lock()
	canStart := s.state == asyncSchedulerStateCreated
	if canStart {
		s.state = asyncSchedulerStateRunning
	}
	s.mu.Unlock()
	if !canStart {
		return
	}

	// numWorkers is resolved via resolveNumWorkers, which floors at 1, so
	// NewWorkerPool cannot fail here.
	s.pool, _ = NewWorkerPool(s.numWorkers)

	s.wg.Add(1)
	go s.dispatcherLoop()
	s.wg.Add(1)
	go s.feedWorkerPool()
}

// Shutdown cancels the dispatcher and the TODO-queue feeder, waits for
// them to exit, then joins the worker pool. It is a no-op if already
// stopped.
func (s *AsyncScheduler) Shutdown() {
	s.mu.Lock()
	alreadyStopped := s.state == asyncSchedulerStateStopped
	s.state = asyncSchedulerStateStopped
	s.mu.Unlock()
	if alreadyStopped {
		return
	}
	s.cancelFn()
	s.wg.Wait()
	if s.pool != nil {
		s.pool.Join()
	}
}

func (s *AsyncScheduler) dispatcherLoop() {
	defer s.wg.Done()

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	activeTimer := false
	defer func() {
		if activeTimer && !timer.Stop() {
			<-timer.C
		}
	}()

	for {
		if !activeTimer && len(s.tasks) > 0 {
			timer.Reset(time.Until(s.tasks[0].nextTs))
			activeTimer = true
		}

		select {
		case <-s.ctx.Done():
			return
		case task := <-s.taskQ:
			heap.Push(s, task)
			if activeTimer {
				if !timer.Stop() {
					<-timer.C
				}
				activeTimer = false
			}
		case <-timer.C:
			activeTimer = false
			task := heap.Pop(s).(*asyncTask)
			s.todoQ <- task
		}
	}
}

// feedWorkerPool drains the TODO queue and hands each task to the worker
// pool for execution, decoupling the dispatcher's timer-driven pop from
// however long the pool takes to free up a worker.
func (s *AsyncScheduler) feedWorkerPool() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case task := <-s.todoQ:
			s.pool.Execute(func() { s.runTask(task) })
		}
	}
}

// runTask runs one fired occurrence of task and, unless its rules are now
// exhausted or it was removed, re-queues it for its next occurrence.
func (s *AsyncScheduler) runTask(task *asyncTask) {
	if task.handle.IsRemoved() {
		return
	}
	if task.handle.IsActive() {
		s.runAction(task)
	}

	next, ok := nextRunTime(task.rules, task.nextTs)
	if !ok || task.handle.IsRemoved() {
		s.mu.Lock()
		delete(s.byName, task.handle.Name())
		s.mu.Unlock()
		return
	}
	task.nextTs = next
	s.taskQ <- task
}

func (s *AsyncScheduler) runAction(task *asyncTask) {
	firedAt := task.nextTs
	task.handle.setLastRun(firedAt)
	task.handle.isRunning.Store(true)
	defer task.handle.isRunning.Store(false)

	defer func() {
		if r := recover(); r != nil {
			asyncSchedulerLog.WithField("task", task.handle.Name()).Errorf("action panicked: %v", r)
		}
	}()

	task.action()
}
