package taskpool

import "context"

// Future is the result of a task spawned via Spawn. Get blocks until the
// task completes; this is the pool's only suspension point outside
// semaphore acquisition, matching "suspension points: only at future.get()
// ... and at mutex acquisition" (SPEC_FULL.md 5).
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Get blocks until the task's function has returned, or until the task is
// dropped because the pool's context was cancelled before it got a worker
// slot; in that case it returns the context's error.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.val, f.err
}

// Spawn posts fn to pool and returns a handle to its eventual result. The
// caller must have already drawn fn's seed from the parent config via
// Config.RandPositive before constructing fn's closure — Spawn itself
// performs no draw (SPEC_FULL.md 9: "always derive a child seed from the
// parent ... before spawning the task").
func Spawn[T any](pool *Pool, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	pool.g.Go(func() error {
		defer close(f.done)
		if err := pool.sem.Acquire(pool.ctx, 1); err != nil {
			f.err = err
			return err
		}
		defer pool.sem.Release(1)
		v, err := fn(pool.ctx)
		f.val = v
		f.err = err
		return err
	})
	return f
}
