// Package reduce runs an array of independent searches and combines their
// results into a single (max, finder) pair.
//
// Three strategies are provided, all producing the same Result for the same
// input:
//
//   - Sequential:      left-to-right scan, replacing the running best only
//     on strict improvement.
//   - StaticPartition: n agents split into `workers` contiguous, near-equal
//     blocks (the first n%workers blocks get one extra); each block is
//     scanned on its own goroutine, then the per-block partials are
//     combined in block order.
//   - ForkJoin:        recursive bisection of [start,end). Ranges of at most
//     `threshold` agents are scanned directly; larger ranges fork the left
//     half onto a bounded pool, compute the right half inline, join, then
//     merge.
//
// Tie-break:
//
//	Every strategy keeps the earliest agent index among equal maxima. The
//	scans and the static combine do so because they replace only on `>`;
//	the fork-join merge keeps the left half unless the right half is
//	strictly greater. All three therefore agree with the sequential scan
//	even when the maximum is reached by several agents.
//
// Failures:
//
//	An agent error or panic fails the whole reduction with a
//	*TaskFailedError naming the agent index; no partial Result is returned.
//	Panics are wrapped with ErrPanic (and the panic value when it is an
//	error, so errors.Is sees through to it).
//
// Threshold:
//
//	ComputeOptimalThreshold picks the fork-join leaf size from the available
//	parallelism P, a tasks-per-worker factor T∈[4,16] and a small-work
//	factor F∈[1,4]: n ≤ P·F ⇒ one leaf, otherwise ceil(n/(P·T)), so the
//	number of leaves stays near P·T independent of n.
package reduce
