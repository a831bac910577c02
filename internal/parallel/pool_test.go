package parallel

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_RunsEveryTask(t *testing.T) {
	t.Parallel()
	pool := NewWorkerPool(4, nil)
	defer pool.Close()

	// Reuse the same pool for several rounds, like consecutive frames.
	for round := range 5 {
		var count atomic.Int64
		var wg sync.WaitGroup
		const tasks = 100
		wg.Add(tasks)
		for range tasks {
			if err := pool.Submit(func() {
				defer wg.Done()
				count.Add(1)
			}); err != nil {
				t.Fatalf("round %d: Submit: %v", round, err)
			}
		}
		wg.Wait()
		if count.Load() != tasks {
			t.Errorf("round %d: ran %d tasks, want %d", round, count.Load(), tasks)
		}
	}
	if pool.Executed() != 500 {
		t.Errorf("Executed() = %d, want 500", pool.Executed())
	}
}

func TestWorkerPool_DefaultWorkers(t *testing.T) {
	t.Parallel()
	pool := NewWorkerPool(0, nil)
	defer pool.Close()
	if pool.Workers() <= 0 {
		t.Errorf("Workers() = %d, want > 0", pool.Workers())
	}
}

func TestWorkerPool_SubmitAfterClose(t *testing.T) {
	t.Parallel()
	pool := NewWorkerPool(2, nil)
	pool.Close()
	pool.Close() // idempotent

	if pool.IsRunning() {
		t.Error("IsRunning() should be false after Close")
	}
	if err := pool.Submit(func() {}); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Submit after Close = %v, want ErrPoolClosed", err)
	}
	if err := pool.Submit(nil); err != nil {
		t.Errorf("Submit(nil) = %v, want nil", err)
	}
}

func TestWorkerPool_CloseDrainsQueuedTasks(t *testing.T) {
	t.Parallel()
	pool := NewWorkerPool(1, nil)
	var count atomic.Int64
	for range 6 {
		if err := pool.Submit(func() { count.Add(1) }); err != nil {
			t.Fatal(err)
		}
	}
	pool.Close()
	if count.Load() != 6 {
		t.Errorf("ran %d tasks before shutdown, want 6", count.Load())
	}
}

func TestWorkerPool_RecoversPanics(t *testing.T) {
	t.Parallel()
	pool := NewWorkerPool(2, nil)
	defer pool.Close()

	var ec ErrorCollector
	recovered := make(chan struct{})
	err := pool.SubmitWithRecover(func() {
		panic("bad row")
	}, func(err error) {
		ec.SetError(err)
		close(recovered)
	})
	if err != nil {
		t.Fatal(err)
	}
	<-recovered

	var perr *PanicError
	if !errors.As(ec.Err(), &perr) || perr.Value != "bad row" {
		t.Fatalf("collected error = %v, want PanicError(bad row)", ec.Err())
	}
	if len(perr.Stack) == 0 {
		t.Error("PanicError should carry a stack trace")
	}
	if pool.Panics() != 1 {
		t.Errorf("Panics() = %d, want 1", pool.Panics())
	}

	// The worker survives the panic.
	done := make(chan struct{})
	if err := pool.Submit(func() { close(done) }); err != nil {
		t.Fatal(err)
	}
	<-done
}
