package parallel

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrTaskPanic wraps a panic raised by a Map function
var ErrTaskPanic = errors.New("task panicked")

// Map applies fn to every item on a fresh pool of workers and returns the
// results in input order. Items not yet started when ctx is cancelled are
// skipped; their slots stay zero and ctx's error is returned. Errors from fn
// are joined in input order.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) (R, error), opts ...PoolOption) ([]R, error) {
	pool, err := NewWorkerPool(min(workers, max(len(items), 1)), opts...)
	if err != nil {
		return nil, err
	}

	results := make([]R, len(items))
	errs := make([]error, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("%w: item %d: %v", ErrTaskPanic, i, r)
				}
			}()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = fn(ctx, item)
		}
		if !pool.Submit(task) {
			wg.Done()
		}
	}
	wg.Wait()
	pool.Close()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, errors.Join(errs...)
}
