package reduce

import "runtime"

// ComputeOptimalThreshold returns the fork-join leaf size for n agents.
//
// Policy:
//   - opts.Override > 0 ⇒ Override clamped to [1, n].
//   - n ≤ P·F          ⇒ n (a single leaf, no splitting).
//   - otherwise        ⇒ ceil(n / (P·T)) clamped to [1, n].
//
// The result is always in [1, max(n,1)].
// Complexity: O(1).
func ComputeOptimalThreshold(n int, opts ThresholdOptions) int {
	if n < 1 {
		return 1
	}
	if opts.Override > 0 {
		return clamp(opts.Override, 1, n)
	}

	p := opts.Parallelism
	if p < 1 {
		p = runtime.GOMAXPROCS(0)
	}
	t := opts.TasksPerWorker
	if t == 0 {
		t = defaultTasksPerWorker
	}
	t = clamp(t, 4, 16)
	f := opts.SmallWorkFactor
	if f == 0 {
		f = defaultSmallWorkFactor
	}
	f = clamp(f, 1, 4)

	if n <= p*f {
		return n
	}
	leaves := p * t
	return clamp((n+leaves-1)/leaves, 1, n)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
