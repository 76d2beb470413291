package reduce_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/manahunt/reduce"
)

// stub is a Runner returning a fixed value, optionally failing or panicking.
type stub struct {
	v     int
	err   error
	panic any
	delay time.Duration

	runs     atomic.Int32
	inflight *atomic.Int32
	peak     *atomic.Int32
}

func (s *stub) Run() (int, error) {
	s.runs.Add(1)
	if s.inflight != nil {
		cur := s.inflight.Add(1)
		defer s.inflight.Add(-1)
		for {
			old := s.peak.Load()
			if cur <= old || s.peak.CompareAndSwap(old, cur) {
				break
			}
		}
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.panic != nil {
		panic(s.panic)
	}
	return s.v, s.err
}

func stubs(values ...int) []*stub {
	out := make([]*stub, len(values))
	for i, v := range values {
		out[i] = &stub{v: v}
	}
	return out
}

// strategy adapts each reduction to one signature for table tests.
type strategy struct {
	name string
	run  func(ctx context.Context, agents []*stub) (reduce.Result, error)
}

func strategies(workers, threshold int) []strategy {
	return []strategy{
		{"sequential", func(ctx context.Context, a []*stub) (reduce.Result, error) {
			return reduce.Sequential(ctx, a)
		}},
		{fmt.Sprintf("static/w=%d", workers), func(ctx context.Context, a []*stub) (reduce.Result, error) {
			return reduce.StaticPartition(ctx, a, workers)
		}},
		{fmt.Sprintf("forkjoin/t=%d", threshold), func(ctx context.Context, a []*stub) (reduce.Result, error) {
			return reduce.ForkJoin(ctx, a, reduce.ForkJoinOptions{Threshold: threshold, Parallelism: workers})
		}},
	}
}

// ReduceSuite exercises every strategy against the sequential baseline.
type ReduceSuite struct {
	suite.Suite
}

func TestReduceSuite(t *testing.T) {
	suite.Run(t, new(ReduceSuite))
}

// TestUniqueMaximum checks the obvious case on all strategies.
func (s *ReduceSuite) TestUniqueMaximum() {
	for _, st := range strategies(3, 2) {
		res, err := st.run(context.Background(), stubs(3, 9, 1, 4, 7, 2, 8))
		require.NoError(s.T(), err, st.name)
		require.Equal(s.T(), reduce.Result{Max: 9, Finder: 1}, res, st.name)
	}
}

// TestTieBreakIsUniform asserts the single tie-break rule: among equal
// maxima the earliest index wins, for every strategy and split shape.
func (s *ReduceSuite) TestTieBreakIsUniform() {
	values := []int{1, 5, 2, 9, 3, 9, 9, 0, 9, 4, 9}
	for workers := 1; workers <= len(values)+1; workers++ {
		for threshold := 1; threshold <= len(values); threshold++ {
			for _, st := range strategies(workers, threshold) {
				res, err := st.run(context.Background(), stubs(values...))
				require.NoError(s.T(), err, st.name)
				require.Equal(s.T(), reduce.Result{Max: 9, Finder: 3}, res, st.name)
			}
		}
	}

	// All-equal input: finder is always agent 0.
	flat := make([]int, 64)
	for _, st := range strategies(8, 1) {
		res, err := st.run(context.Background(), stubs(flat...))
		require.NoError(s.T(), err, st.name)
		require.Equal(s.T(), 0, res.Finder, st.name)
	}
}

// TestRandomEquivalence compares strategies on random inputs with heavy
// duplication.
func (s *ReduceSuite) TestRandomEquivalence() {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(120)
		values := make([]int, n)
		for i := range values {
			values[i] = rng.Intn(6) - 3
		}
		want, err := reduce.Sequential(context.Background(), stubs(values...))
		require.NoError(s.T(), err)

		workers := 1 + rng.Intn(12)
		threshold := rng.Intn(n + 1) // 0 ⇒ computed
		for _, st := range strategies(workers, threshold) {
			got, err := st.run(context.Background(), stubs(values...))
			require.NoError(s.T(), err, st.name)
			require.Equal(s.T(), want, got, "%s n=%d values=%v", st.name, n, values)
		}
	}
}

// TestEachAgentRunsOnce verifies no agent is skipped or run twice.
func (s *ReduceSuite) TestEachAgentRunsOnce() {
	for _, st := range strategies(4, 3) {
		agents := stubs(make([]int, 37)...)
		_, err := st.run(context.Background(), agents)
		require.NoError(s.T(), err, st.name)
		for i, a := range agents {
			require.Equal(s.T(), int32(1), a.runs.Load(), "%s agent %d", st.name, i)
		}
	}
}

// TestAgentErrorFailsReduction verifies a failing agent surfaces with its
// index instead of silently producing a max from incomplete data.
func (s *ReduceSuite) TestAgentErrorFailsReduction() {
	cause := errors.New("lost worker")
	for _, st := range strategies(3, 2) {
		agents := stubs(1, 2, 3, 4, 5, 100, 7, 8)
		agents[5].err = cause

		_, err := st.run(context.Background(), agents)
		require.Error(s.T(), err, st.name)
		require.ErrorIs(s.T(), err, cause, st.name)
		var tf *reduce.TaskFailedError
		require.ErrorAs(s.T(), err, &tf, st.name)
		require.Equal(s.T(), 5, tf.Index, st.name)
	}
}

// TestAgentPanicFailsReduction verifies panics are recovered into errors and
// error panic values stay reachable.
func (s *ReduceSuite) TestAgentPanicFailsReduction() {
	defect := errors.New("nan in field")
	for _, st := range strategies(2, 1) {
		agents := stubs(1, 2, 3, 4)
		agents[2].panic = defect

		_, err := st.run(context.Background(), agents)
		require.ErrorIs(s.T(), err, reduce.ErrPanic, st.name)
		require.ErrorIs(s.T(), err, defect, st.name)

		agents = stubs(1, 2)
		agents[0].panic = "plain string"
		_, err = st.run(context.Background(), agents)
		require.ErrorIs(s.T(), err, reduce.ErrPanic, st.name)
	}
}

// TestEmptyInput verifies ErrNoAgents.
func (s *ReduceSuite) TestEmptyInput() {
	for _, st := range strategies(2, 1) {
		_, err := st.run(context.Background(), nil)
		require.ErrorIs(s.T(), err, reduce.ErrNoAgents, st.name)
	}
}

// TestCanceledContext verifies a done context stops the reduction.
func (s *ReduceSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, st := range strategies(2, 1) {
		_, err := st.run(ctx, stubs(1, 2, 3))
		require.ErrorIs(s.T(), err, context.Canceled, st.name)
	}
}

// TestForkJoinBoundsConcurrency verifies no more than Parallelism agents run
// at the same time.
func (s *ReduceSuite) TestForkJoinBoundsConcurrency() {
	var inflight, peak atomic.Int32
	agents := make([]*stub, 64)
	for i := range agents {
		agents[i] = &stub{v: i, delay: time.Millisecond, inflight: &inflight, peak: &peak}
	}
	res, err := reduce.ForkJoin(context.Background(), agents, reduce.ForkJoinOptions{Threshold: 1, Parallelism: 3})
	require.NoError(s.T(), err)
	require.Equal(s.T(), reduce.Result{Max: 63, Finder: 63}, res)
	require.LessOrEqual(s.T(), peak.Load(), int32(3))
	require.GreaterOrEqual(s.T(), peak.Load(), int32(1))
}

// TestStaticRunsBlocksInParallel verifies blocks really overlap in time.
func (s *ReduceSuite) TestStaticRunsBlocksInParallel() {
	var inflight, peak atomic.Int32
	agents := make([]*stub, 8)
	for i := range agents {
		agents[i] = &stub{v: i, delay: 20 * time.Millisecond, inflight: &inflight, peak: &peak}
	}
	_, err := reduce.StaticPartition(context.Background(), agents, 4)
	require.NoError(s.T(), err)
	require.LessOrEqual(s.T(), peak.Load(), int32(4))
	require.Greater(s.T(), peak.Load(), int32(1))
}
