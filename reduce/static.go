package reduce

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Block is a contiguous agent range [Start, End).
type Block struct {
	Start, End int
}

// Len returns End-Start.
func (b Block) Len() int { return b.End - b.Start }

// Partition splits n items into `workers` contiguous blocks. The first
// n%workers blocks hold one extra item. workers is clamped to [1, max(n,1)].
//
// Complexity: O(workers).
func Partition(n, workers int) []Block {
	if workers < 1 {
		workers = 1
	}
	if n > 0 && workers > n {
		workers = n
	}
	base, rem := n/workers, n%workers
	blocks := make([]Block, workers)
	start := 0
	for w := range blocks {
		size := base
		if w < rem {
			size++
		}
		blocks[w] = Block{Start: start, End: start + size}
		start += size
	}
	return blocks
}

// StaticPartition scans Partition(len(agents), workers) blocks on one
// goroutine each, waits for all of them, then combines the partials in
// block order keeping the first strict maximum. workers<=0 means
// runtime.GOMAXPROCS(0).
//
// The first failing agent cancels the remaining blocks; the reduction then
// returns that agent's *TaskFailedError.
// Complexity: O(n/workers) agent runs per goroutine, O(workers) combine.
func StaticPartition[R Runner](ctx context.Context, agents []R, workers int) (Result, error) {
	if len(agents) == 0 {
		return Result{}, ErrNoAgents
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	blocks := Partition(len(agents), workers)
	partials := make([]Result, len(blocks))

	g, gctx := errgroup.WithContext(ctx)
	for w, b := range blocks {
		g.Go(func() error {
			r, err := scan(gctx, agents, b.Start, b.End)
			partials[w] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	best := partials[0]
	for _, p := range partials[1:] {
		if p.Max > best.Max {
			best = p
		}
	}
	return best, nil
}
