// Package parallel runs independent work items on a bounded pool of
// goroutines.
package parallel

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/dd0wney/cluso-genenet/pkg/logging"
)

// MaxWorkers caps the pool size so the queue buffer cannot overflow
const MaxWorkers = math.MaxInt / 2

// ErrTooManyWorkers is returned by NewWorkerPool for sizes above MaxWorkers
var ErrTooManyWorkers = errors.New("worker count exceeds maximum")

// PoolOption configures a WorkerPool
type PoolOption func(*WorkerPool)

// WithLogger reports recovered task panics to l
func WithLogger(l logging.Logger) PoolOption {
	return func(wp *WorkerPool) {
		wp.logger = l
	}
}

// WorkerPool runs submitted tasks on a fixed set of goroutines. The queue
// holds two tasks per worker; Submit blocks while it is full.
type WorkerPool struct {
	size   int
	queue  chan func()
	logger logging.Logger

	running sync.WaitGroup
	closeMu sync.RWMutex // held for reading while sending on queue
	closed  bool
	stop    sync.Once
}

// NewWorkerPool starts a pool of workers goroutines. Sizes below one are
// raised to one.
func NewWorkerPool(workers int, opts ...PoolOption) (*WorkerPool, error) {
	switch {
	case workers < 1:
		workers = 1
	case workers > MaxWorkers:
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}

	wp := &WorkerPool{
		size:   workers,
		queue:  make(chan func(), 2*workers),
		logger: logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(wp)
	}

	wp.running.Add(workers)
	for range workers {
		go wp.loop()
	}
	return wp, nil
}

// Workers returns the number of worker goroutines
func (wp *WorkerPool) Workers() int {
	return wp.size
}

func (wp *WorkerPool) loop() {
	defer wp.running.Done()
	for task := range wp.queue {
		wp.run(task)
	}
}

// run executes one task, keeping the worker alive if it panics
func (wp *WorkerPool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			wp.logger.Error("worker panic recovered", logging.Any("panic", r))
		}
	}()
	task()
}

// Submit queues task and reports whether the pool accepted it. A closed pool
// accepts nothing.
func (wp *WorkerPool) Submit(task func()) bool {
	wp.closeMu.RLock()
	defer wp.closeMu.RUnlock()
	if wp.closed {
		return false
	}
	wp.queue <- task
	return true
}

// Close stops accepting tasks and returns once every queued task has run.
// It is safe to call more than once.
func (wp *WorkerPool) Close() {
	wp.stop.Do(func() {
		wp.closeMu.Lock()
		defer wp.closeMu.Unlock()
		wp.closed = true
		close(wp.queue)
	})
	wp.running.Wait()
}

// Wait drains the pool. It is Close under the name callers use after a
// batch of submissions.
func (wp *WorkerPool) Wait() {
	wp.Close()
}
