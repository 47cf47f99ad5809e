// Worker pool: a bounded, fixed-size pool of goroutines draining a single
// FIFO job queue, with atomic counters tracking queued and active work.

package calsched_internal

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ErrWorkerPoolZeroCapacity is returned by NewWorkerPool when asked to
// create a pool with no workers.
var ErrWorkerPoolZeroCapacity = errors.New("worker pool capacity must be >= 1")

// Job is a unit of work submitted to a WorkerPool.
type Job func()

// WorkerPool runs submitted jobs on a fixed number of goroutines. It does
// not buffer excess work: Execute blocks until a worker is free to take
// the job. It is the async scheduler substrate's execution engine.
type WorkerPool struct {
	jobs     chan Job
	wg       sync.WaitGroup
	queued   atomic.Int64
	active   atomic.Int64
	size     int
	joinOnce sync.Once
}

// NewWorkerPool creates a pool with the given number of worker goroutines.
// It returns ErrWorkerPoolZeroCapacity if capacity is not positive.
func NewWorkerPool(capacity int) (*WorkerPool, error) {
	if capacity <= 0 {
		return nil, ErrWorkerPoolZeroCapacity
	}
	wp := &WorkerPool{
		jobs: make(chan Job),
		size: capacity,
	}
	for i := 0; i < capacity; i++ {
		wp.wg.Add(1)
		go wp.workerLoop()
	}
	return wp, nil
}

// NewDefaultWorkerPool creates a pool sized to the CPU-affinity-aware
// available core count.
func NewDefaultWorkerPool() (*WorkerPool, error) {
	return NewWorkerPool(resolveNumWorkers(WorkerPoolConfigNumWorkersDefault, 0))
}

// WorkerPoolConfigNumWorkersDefault requests the CPU-affinity-aware
// available core count.
const WorkerPoolConfigNumWorkersDefault = -1

// WorkerPoolConfig configures a standalone WorkerPool.
type WorkerPoolConfig struct {
	// The number of workers. If <= 0 it matches the number of available
	// cores.
	NumWorkers int `yaml:"num_workers"`
}

// DefaultWorkerPoolConfig returns the config used when none is given to
// NewWorkerPoolFromConfig.
func DefaultWorkerPoolConfig() *WorkerPoolConfig {
	return &WorkerPoolConfig{NumWorkers: WorkerPoolConfigNumWorkersDefault}
}

// NewWorkerPoolFromConfig creates a pool sized per cfg (nil for defaults).
func NewWorkerPoolFromConfig(cfg *WorkerPoolConfig) (*WorkerPool, error) {
	if cfg == nil {
		cfg = DefaultWorkerPoolConfig()
	}
	return NewWorkerPool(resolveNumWorkers(cfg.NumWorkers, 0))
}

// resolveNumWorkers applies the "<=0 means CPU-affinity-aware core count"
// convention shared by WorkerPool and the async scheduler substrate's
// internal pool, optionally capped at max (0 meaning uncapped), with a
// floor of 1.
func resolveNumWorkers(configured, max int) int {
	n := configured
	if n <= 0 {
		n = GetAvailableCPUCount()
	}
	if max > 0 && n > max {
		n = max
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (wp *WorkerPool) workerLoop() {
	defer wp.wg.Done()
	for job := range wp.jobs {
		wp.queued.Add(-1)
		wp.active.Add(1)
		job()
		wp.active.Add(-1)
	}
}

// Execute submits job to the pool. It blocks until a worker picks it up
// (the queue has no bound beyond the channel's unbuffered handoff), so
// QueuedJobs briefly counts a job that hasn't yet been handed to a
// worker.
func (wp *WorkerPool) Execute(job Job) {
	wp.queued.Add(1)
	wp.jobs <- job
}

// QueuedJobs returns the number of jobs submitted but not yet picked up by
// a worker.
func (wp *WorkerPool) QueuedJobs() int64 { return wp.queued.Load() }

// ActiveJobs returns the number of jobs currently running.
func (wp *WorkerPool) ActiveJobs() int64 { return wp.active.Load() }

// PoolSize returns the fixed number of worker goroutines.
func (wp *WorkerPool) PoolSize() int { return wp.size }

// HasWork reports whether any job is queued or running.
func (wp *WorkerPool) HasWork() bool {
	return wp.QueuedJobs() > 0 || wp.ActiveJobs() > 0
}

// Join closes the pool to further submissions and waits for all workers to
// drain the queue and exit. Calling Execute after Join panics, matching a
// send on a closed channel.
func (wp *WorkerPool) Join() {
	wp.joinOnce.Do(func() {
		close(wp.jobs)
	})
	wp.wg.Wait()
}

func (wp *WorkerPool) String() string {
	return fmt.Sprintf(
		"WorkerPool{pool_size: %d, queued_jobs: %d, active_jobs: %d}",
		wp.PoolSize(), wp.QueuedJobs(), wp.ActiveJobs(),
	)
}
