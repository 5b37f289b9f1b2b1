// Package taskpool realizes SPEC_FULL.md 4.2/5's task pipeline: a bounded
// pool of workers draining posted work, with stage boundaries blocking on
// futures. The original hand-rolls a FIFO queue, spinning consumer
// threads, and a chain-of-sentinels shutdown; Go expresses the same
// externally observable contract (single producer, fresh per-task seed
// drawn before spawn, first error wins, deterministic drain) with a
// bounded semaphore plus errgroup.Group instead — cancelling the shared
// context already gives every goroutine the same "stop" signal a sentinel
// chain hand-rolls in C++.
package taskpool

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Pool bounds concurrent in-flight tasks to PG::CONSUMERS. The
// orchestrator is the single producer; tasks never spawn further tasks.
type Pool struct {
	sem *semaphore.Weighted
	g   *errgroup.Group
	ctx context.Context
}

// New builds a pool with the given worker count (PG::CONSUMERS) bound to
// ctx; cancelling ctx or any task's first error stops admitting new work.
func New(ctx context.Context, consumers int) *Pool {
	if consumers < 1 {
		consumers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	return &Pool{sem: semaphore.NewWeighted(int64(consumers)), g: g, ctx: gctx}
}

// Go posts a unit of work and returns at once; the work's goroutine waits
// for a worker slot before running fn, and skips fn if the pool's context
// is cancelled first. Never call Go again after Wait has been called.
func (p *Pool) Go(fn func(ctx context.Context) error) {
	p.g.Go(func() error {
		if err := p.sem.Acquire(p.ctx, 1); err != nil {
			return err
		}
		defer p.sem.Release(1)
		return fn(p.ctx)
	})
}

// Wait drains the pool and returns the first task error, if any — the Go
// analogue of joining workers after the sentinel chain has propagated.
func (p *Pool) Wait() error {
	return p.g.Wait()
}
