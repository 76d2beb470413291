package reduce

import (
	"context"
	"fmt"
)

// Sequential runs every agent in index order and keeps the first strict
// maximum. It is the baseline the parallel strategies must match.
//
// Returns ErrNoAgents for empty input, ctx.Err() if ctx is done between
// agents, or a *TaskFailedError.
// Complexity: Σ agent cost, no extra memory.
func Sequential[R Runner](ctx context.Context, agents []R) (Result, error) {
	if len(agents) == 0 {
		return Result{}, ErrNoAgents
	}
	return scan(ctx, agents, 0, len(agents))
}

// scan runs agents[start:end) in ascending order. Replacing only on `>`
// keeps the earliest index among equal maxima.
func scan[R Runner](ctx context.Context, agents []R, start, end int) (Result, error) {
	best := none
	for i := start; i < end; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		v, err := runOne(agents[i], i)
		if err != nil {
			return Result{}, err
		}
		if v > best.Max {
			best = Result{Max: v, Finder: i}
		}
	}
	return best, nil
}

// runOne runs a single agent, converting errors and panics into a
// *TaskFailedError.
func runOne(r Runner, i int) (v int, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &TaskFailedError{Index: i, Err: panicError(p)}
		}
	}()
	v, err = r.Run()
	if err != nil {
		return 0, &TaskFailedError{Index: i, Err: err}
	}
	return v, nil
}

// panicError wraps a recovered value with ErrPanic, keeping error values
// reachable through errors.Is/As.
func panicError(p any) error {
	if e, ok := p.(error); ok {
		return fmt.Errorf("%w: %w", ErrPanic, e)
	}
	return fmt.Errorf("%w: %v", ErrPanic, p)
}

// merge combines adjacent ranges: left covers lower indices, so it is kept
// unless right is strictly greater.
func merge(left, right Result) Result {
	if right.Max > left.Max {
		return right
	}
	return left
}
