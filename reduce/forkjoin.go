package reduce

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// ForkJoin reduces agents by recursive bisection.
//
// Algorithm:
//  1. If end-start ≤ threshold, scan the range directly.
//  2. Otherwise split at mid = start + (end-start)/2, fork [start,mid),
//     compute [mid,end) on the calling goroutine, join the fork.
//  3. Merge: keep left unless right is strictly greater.
//
// Forks run on a pool bounded by opts.Parallelism: when every slot is busy
// the forked half runs inline, so goroutine count never exceeds the bound
// and joins never deadlock.
//
// The first failure cancels the remaining leaves; the reported error is an
// agent failure, never the cancellation it triggered in sibling leaves.
// Complexity: O(n/threshold) tasks, O(log(n/threshold)) recursion depth.
func ForkJoin[R Runner](ctx context.Context, agents []R, opts ForkJoinOptions) (Result, error) {
	n := len(agents)
	if n == 0 {
		return Result{}, ErrNoAgents
	}
	p := opts.Parallelism
	if p < 1 {
		p = runtime.GOMAXPROCS(0)
	}
	threshold := opts.Threshold
	if threshold <= 0 {
		to := DefaultThresholdOptions()
		to.Parallelism = p
		threshold = ComputeOptimalThreshold(n, to)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fj := &forkJoin[R]{
		agents:    agents,
		threshold: threshold,
		pool:      newPool(p - 1), // the caller occupies one slot
		cancel:    cancel,
	}
	return fj.compute(ctx, 0, n)
}

type forkJoin[R Runner] struct {
	agents    []R
	threshold int
	pool      *pool
	cancel    context.CancelFunc
}

func (fj *forkJoin[R]) compute(ctx context.Context, start, end int) (Result, error) {
	if end-start <= fj.threshold {
		r, err := scan(ctx, fj.agents, start, end)
		if err != nil {
			fj.cancel()
		}
		return r, err
	}

	mid := start + (end-start)/2
	left := fj.pool.fork(func() (Result, error) {
		return fj.compute(ctx, start, mid)
	})
	right, rerr := fj.compute(ctx, mid, end)
	lres, lerr := left.join()

	if err := firstFailure(lerr, rerr); err != nil {
		return Result{}, err
	}
	return merge(lres, right), nil
}

// firstFailure prefers a real failure over the cancellation it triggered,
// and the left range over the right one.
func firstFailure(left, right error) error {
	switch {
	case left == nil:
		return right
	case right == nil:
		return left
	case errors.Is(left, context.Canceled) && !errors.Is(right, context.Canceled):
		return right
	default:
		return left
	}
}

// pool bounds the number of concurrently forked subtasks.
type pool struct {
	sem *semaphore.Weighted
}

func newPool(slots int) *pool {
	if slots < 1 {
		return &pool{}
	}
	return &pool{sem: semaphore.NewWeighted(int64(slots))}
}

// task is a forked unit of work awaiting join.
type task struct {
	done chan struct{}
	res  Result
	err  error
}

// fork starts fn on a new goroutine when a slot is free, otherwise runs it
// inline. A panic in fn becomes an ErrPanic failure of the task.
func (p *pool) fork(fn func() (Result, error)) *task {
	t := &task{done: make(chan struct{})}
	if p.sem == nil || !p.sem.TryAcquire(1) {
		t.run(fn)
		return t
	}
	go func() {
		defer p.sem.Release(1)
		t.run(fn)
	}()
	return t
}

func (t *task) run(fn func() (Result, error)) {
	defer close(t.done)
	defer func() {
		if r := recover(); r != nil {
			t.res, t.err = Result{}, &TaskFailedError{Index: -1, Err: panicError(r)}
		}
	}()
	t.res, t.err = fn()
}

// join blocks until the task completes.
func (t *task) join() (Result, error) {
	<-t.done
	return t.res, t.err
}
