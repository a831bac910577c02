package parallel

import (
	"errors"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/agbru/fractal/internal/logging"
)

// ErrPoolClosed is returned by Submit once the pool has been closed.
var ErrPoolClosed = errors.New("worker pool is closed")

// WorkerPool is a fixed set of goroutines created once and reused for every
// frame. Tasks are fire-and-collect: callers submit closures and gather
// their results through their own channels.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	tasks   chan task
	done    chan struct{}
	wg      sync.WaitGroup

	running   atomic.Bool
	closeOnce sync.Once
	submitMu  sync.RWMutex

	executed atomic.Uint64
	panics   atomic.Uint64
	logger   logging.Logger
}

type task struct {
	fn      func()
	onPanic func(error)
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int, logger logging.Logger) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = logging.Nop()
	}

	queueSize := max(workers*4, 8)
	p := &WorkerPool{
		workers: workers,
		tasks:   make(chan task, queueSize),
		done:    make(chan struct{}),
		logger:  logger,
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	logger.Debug("worker pool started", logging.Int("workers", workers))
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			p.drain()
			return
		case t := <-p.tasks:
			p.run(t)
		}
	}
}

// drain runs whatever is still queued so no accepted task is lost.
func (p *WorkerPool) drain() {
	for {
		select {
		case t := <-p.tasks:
			p.run(t)
		default:
			return
		}
	}
}

func (p *WorkerPool) run(t task) {
	defer func() {
		if r := recover(); r != nil {
			p.panics.Add(1)
			err := &PanicError{Value: r, Stack: debug.Stack()}
			p.logger.Error("worker task panicked", err)
			if t.onPanic != nil {
				t.onPanic(err)
			}
		}
	}()
	t.fn()
	p.executed.Add(1)
}

// Submit queues fn for execution. It blocks while the queue is full and
// returns ErrPoolClosed if the pool is closed.
func (p *WorkerPool) Submit(fn func()) error {
	return p.SubmitWithRecover(fn, nil)
}

// SubmitWithRecover is Submit with a callback invoked with a *PanicError when
// fn panics. The callback runs on the worker goroutine.
func (p *WorkerPool) SubmitWithRecover(fn func(), onPanic func(error)) error {
	if fn == nil {
		return nil
	}
	p.submitMu.RLock()
	defer p.submitMu.RUnlock()
	if !p.running.Load() {
		return ErrPoolClosed
	}
	p.tasks <- task{fn: fn, onPanic: onPanic}
	return nil
}

// Close stops accepting work, runs the queued tasks and waits for the
// workers to exit. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.closeOnce.Do(func() {
		p.submitMu.Lock()
		p.running.Store(false)
		p.submitMu.Unlock()

		close(p.done)
		p.wg.Wait()
		p.logger.Debug("worker pool stopped",
			logging.Uint64("executed", p.executed.Load()),
			logging.Uint64("panics", p.panics.Load()))
	})
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int { return p.workers }

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool) IsRunning() bool { return p.running.Load() }

// Executed returns the number of tasks that completed without panicking.
func (p *WorkerPool) Executed() uint64 { return p.executed.Load() }

// Panics returns the number of recovered task panics.
func (p *WorkerPool) Panics() uint64 { return p.panics.Load() }
