// Tests for worker_pool.go

package calsched_internal

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolZeroCapacity(t *testing.T) {
	_, err := NewWorkerPool(0)
	if !errors.Is(err, ErrWorkerPoolZeroCapacity) {
		t.Fatalf("want ErrWorkerPoolZeroCapacity, got %v", err)
	}
}

func TestWorkerPoolExecutesAllJobs(t *testing.T) {
	wp, err := NewWorkerPool(4)
	if err != nil {
		t.Fatalf("NewWorkerPool: %v", err)
	}

	const n = 50
	var count atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		wp.Execute(func() {
			defer wg.Done()
			count.Add(1)
		})
	}
	wg.Wait()

	if got := count.Load(); got != n {
		t.Fatalf("want %d jobs run, got %d", n, got)
	}
	wp.Join()
}

func TestWorkerPoolPoolSize(t *testing.T) {
	wp, err := NewWorkerPool(3)
	if err != nil {
		t.Fatalf("NewWorkerPool: %v", err)
	}
	defer wp.Join()
	if wp.PoolSize() != 3 {
		t.Fatalf("want pool size 3, got %d", wp.PoolSize())
	}
}

func TestWorkerPoolHasWorkDuringExecution(t *testing.T) {
	wp, err := NewWorkerPool(1)
	if err != nil {
		t.Fatalf("NewWorkerPool: %v", err)
	}

	started := make(chan struct{})
	release := make(chan struct{})
	wp.Execute(func() {
		close(started)
		<-release
	})
	<-started

	if !wp.HasWork() {
		t.Fatal("want HasWork true while a job is running")
	}
	if wp.ActiveJobs() != 1 {
		t.Fatalf("want 1 active job, got %d", wp.ActiveJobs())
	}

	close(release)
	wp.Join()

	if wp.HasWork() {
		t.Fatal("want HasWork false after Join")
	}
}

func TestWorkerPoolDefaultCapacityAtLeastOne(t *testing.T) {
	wp, err := NewDefaultWorkerPool()
	if err != nil {
		t.Fatalf("NewDefaultWorkerPool: %v", err)
	}
	defer wp.Join()
	if wp.PoolSize() < 1 {
		t.Fatalf("want pool size >= 1, got %d", wp.PoolSize())
	}
}

func TestWorkerPoolString(t *testing.T) {
	wp, err := NewWorkerPool(2)
	if err != nil {
		t.Fatalf("NewWorkerPool: %v", err)
	}
	defer wp.Join()
	// Just confirm it doesn't panic and is non-empty; the exact format is
	// a debugging aid, not a contract.
	if s := wp.String(); s == "" {
		t.Fatal("want non-empty String()")
	}
	time.Sleep(time.Millisecond)
}
