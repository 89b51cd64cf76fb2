// Package workqueue bounds the number of outstanding chunk-decompress-and-
// scan tasks in flight by their total byte cost, then hands admitted tasks
// to a fixed-size worker pool. Admission is the backpressure mechanism:
// a slow consumer (or large chunks) throttles the producer rather than
// letting memory grow without bound.
package workqueue

import (
	"context"
	"runtime"
	"sync"

	"github.com/oarkflow/gopool"
	"golang.org/x/sync/semaphore"
)

// IdealWorkerCount returns a worker count derived from the host CPU
// count, used as the default parallelism for a Queue.
func IdealWorkerCount() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}

	return n
}

// Queue is a bounded-in-flight-bytes work queue. Push blocks until the
// requested cost fits within the configured byte budget, then the task
// runs on one of a fixed number of worker goroutines. Tasks may complete
// out of submission order; callers that need ordering build it on top
// (see internal/output).
type Queue struct {
	sem  *semaphore.Weighted
	pool gopool.GoPool

	mu   sync.Mutex
	errs []error
}

// New creates a Queue with workers goroutines and a total in-flight-bytes
// budget of maxBytes.
func New(workers int, maxBytes int64) *Queue {
	q := &Queue{
		sem: semaphore.NewWeighted(maxBytes),
	}

	q.pool = gopool.NewGoPool(workers,
		gopool.WithErrorCallback(func(err error) {
			q.mu.Lock()
			q.errs = append(q.errs, err)
			q.mu.Unlock()
		}),
	)

	return q
}

// Push blocks until cost bytes of budget are available, then submits fn
// to run on a worker. The budget is released automatically once fn
// returns, regardless of error.
func (q *Queue) Push(ctx context.Context, cost int64, fn func() error) error {
	if err := q.sem.Acquire(ctx, cost); err != nil {
		return err
	}

	q.pool.AddTask(func() (any, error) {
		defer q.sem.Release(cost)
		return nil, fn()
	})

	return nil
}

// Wait blocks until every submitted task has completed, then returns the
// first error recorded by the pool's error callback, if any.
func (q *Queue) Wait() error {
	q.pool.Wait()
	q.pool.Release()

	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.errs) == 0 {
		return nil
	}

	return q.errs[0]
}
