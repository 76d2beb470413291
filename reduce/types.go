package reduce

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for reductions.
var (
	// ErrNoAgents indicates an empty agent slice.
	ErrNoAgents = errors.New("reduce: no agents to reduce")
	// ErrPanic marks a task failure caused by a recovered panic.
	ErrPanic = errors.New("reduce: task panicked")
)

// Runner is one search. Run is called exactly once per reduction.
type Runner interface {
	Run() (int, error)
}

// Result is the outcome of a reduction: the best value and the index of the
// agent that produced it. Finder is -1 only for the empty range.
type Result struct {
	Max    int
	Finder int
}

// none is the identity element of the merge.
var none = Result{Max: math.MinInt, Finder: -1}

// TaskFailedError reports the agent whose search failed.
type TaskFailedError struct {
	Index int
	Err   error
}

func (e *TaskFailedError) Error() string {
	return fmt.Sprintf("reduce: agent %d failed: %v", e.Index, e.Err)
}

func (e *TaskFailedError) Unwrap() error { return e.Err }

// ThresholdOptions configures ComputeOptimalThreshold.
//   - Override:        >0 forces the threshold (clamped to [1,n]).
//   - Parallelism:     P; <=0 means runtime.GOMAXPROCS(0).
//   - TasksPerWorker:  T; 0 means 8; clamped to [4,16].
//   - SmallWorkFactor: F; 0 means 2; clamped to [1,4].
type ThresholdOptions struct {
	Override        int
	Parallelism     int
	TasksPerWorker  int
	SmallWorkFactor int
}

const (
	defaultTasksPerWorker  = 8
	defaultSmallWorkFactor = 2
)

// DefaultThresholdOptions returns T=8, F=2 and Parallelism from GOMAXPROCS.
func DefaultThresholdOptions() ThresholdOptions {
	return ThresholdOptions{
		TasksPerWorker:  defaultTasksPerWorker,
		SmallWorkFactor: defaultSmallWorkFactor,
	}
}

// ForkJoinOptions configures ForkJoin.
//   - Threshold:   leaf size; <=0 means ComputeOptimalThreshold(n, ...).
//   - Parallelism: concurrently running subtasks incl. the caller;
//     <=0 means runtime.GOMAXPROCS(0).
type ForkJoinOptions struct {
	Threshold   int
	Parallelism int
}

// DefaultForkJoinOptions returns zero values: computed threshold and
// GOMAXPROCS parallelism.
func DefaultForkJoinOptions() ForkJoinOptions {
	return ForkJoinOptions{}
}
