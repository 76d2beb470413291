package dungeon

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/manahunt/field"
	"github.com/katalvlaran/manahunt/hunt"
	"github.com/katalvlaran/manahunt/reduce"
)

// Run is one prepared hunt: a field plus agents whose start cells were all
// drawn before any parallel work. A Run executes at most once; afterwards
// Field, Agents and Paths expose the finished state for rendering.
type Run struct {
	id      uuid.UUID
	cfg     Config
	seed    int64
	workers int

	field  *field.Field
	agents []*hunt.Agent

	opts     options
	executed atomic.Bool
}

// NewRun validates cfg, resolves the seed, builds the field and places the
// agents. Configuration errors are returned before any state is created.
func NewRun(cfg Config, opts ...Option) (*Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed, err := resolveSeed(cfg.Seed)
	if err != nil {
		return nil, err
	}

	fopts := field.DefaultOptions()
	fopts.Seed = seed
	f, err := field.New(field.Square(cfg.GateSize), fopts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	hopts := hunt.Options{Conn: cfg.Connectivity, MaxSteps: cfg.MaxSteps, RecordPath: cfg.RecordPaths}
	agents := placeAgents(f, AgentCount(cfg.GateSize, cfg.Density), seed, hopts)

	return &Run{
		id:      uuid.New(),
		cfg:     cfg,
		seed:    seed,
		workers: workers,
		field:   f,
		agents:  agents,
		opts:    newOptions(opts),
	}, nil
}

// placeAgents draws every start cell from one generator, row then column,
// so placement depends only on the seed. Agent IDs start at 1.
func placeAgents(f *field.Field, n int, seed int64, opts hunt.Options) []*hunt.Agent {
	rng := rand.New(rand.NewSource(seed))
	agents := make([]*hunt.Agent, n)
	for i := range agents {
		row := rng.Intn(f.Rows())
		col := rng.Intn(f.Columns())
		agents[i] = hunt.New(i+1, row, col, f, opts)
	}
	return agents
}

// resolveSeed returns seed unchanged when positive and a fresh non-zero
// entropy seed for 0.
func resolveSeed(seed int64) (int64, error) {
	if seed > 0 {
		return seed, nil
	}
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("dungeon: read entropy: %w", err)
	}
	s := int64(binary.LittleEndian.Uint64(buf[:]) &^ (1 << 63))
	if s == 0 {
		s = 1
	}
	return s, nil
}

// Execute dispatches the configured reduction and returns the typed report.
// Elapsed covers dispatch to completion only.
//
// Returns ErrAlreadyExecuted on a second call and an error wrapping
// ErrReduction if any agent fails.
func (r *Run) Execute(ctx context.Context) (*Report, error) {
	if !r.executed.CompareAndSwap(false, true) {
		return nil, ErrAlreadyExecuted
	}

	strategy := r.cfg.Strategy
	ctx, span := r.opts.tracer.Start(ctx, "dungeon.Execute", trace.WithAttributes(
		attribute.String("run.id", r.id.String()),
		attribute.String("run.strategy", strategy.String()),
		attribute.Int("run.gate_size", r.cfg.GateSize),
		attribute.Int("run.agents", len(r.agents)),
		attribute.Int("run.workers", r.workers),
		attribute.Int64("run.seed", r.seed),
	))
	defer span.End()

	log := r.opts.logger.With("run_id", r.id.String(), "strategy", strategy.String())
	log.Info("hunt starting",
		"gate_size", r.cfg.GateSize,
		"rows", r.field.Rows(),
		"cols", r.field.Columns(),
		"agents", len(r.agents),
		"workers", r.workers,
		"seed", r.seed,
	)

	threshold := r.threshold()
	start := time.Now()
	res, err := r.reduce(ctx, strategy, threshold)
	elapsed := time.Since(start)

	if err != nil {
		r.opts.metrics.observeFailure(strategy, elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "reduction failed")
		log.Error("hunt failed", "elapsed", elapsed, "error", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrReduction, strategy, err)
	}

	rep, steps := r.report(res, elapsed, threshold)
	r.opts.metrics.observeReport(rep, steps)
	r.logAgents(ctx, log)

	span.SetAttributes(
		attribute.Int("result.mana", rep.Mana),
		attribute.Int("result.finder", rep.Finder),
		attribute.Int64("result.evaluated", rep.Evaluated),
	)
	span.SetStatus(codes.Ok, "")
	log.Info("hunt finished",
		"elapsed", elapsed,
		"mana", rep.ManaValue(),
		"finder", rep.FinderID,
		"x", rep.X,
		"y", rep.Y,
		"evaluated", rep.Evaluated,
		"coverage", rep.Coverage,
	)
	return rep, nil
}

// threshold returns the fork-join leaf size, or 0 for other strategies.
func (r *Run) threshold() int {
	if r.cfg.Strategy != ForkJoin {
		return 0
	}
	topts := reduce.DefaultThresholdOptions()
	topts.Override = r.cfg.Threshold
	topts.Parallelism = r.workers
	return reduce.ComputeOptimalThreshold(len(r.agents), topts)
}

func (r *Run) reduce(ctx context.Context, s Strategy, threshold int) (reduce.Result, error) {
	switch s {
	case Sequential:
		return reduce.Sequential(ctx, r.agents)
	case Static:
		return reduce.StaticPartition(ctx, r.agents, r.workers)
	case ForkJoin:
		return reduce.ForkJoin(ctx, r.agents, reduce.ForkJoinOptions{
			Threshold:   threshold,
			Parallelism: r.workers,
		})
	}
	return reduce.Result{}, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
}

func (r *Run) report(res reduce.Result, elapsed time.Duration, threshold int) (*Report, []int) {
	winner := r.agents[res.Finder].Position()
	steps := make([]int, len(r.agents))
	for i, a := range r.agents {
		steps[i] = a.Steps()
	}
	return &Report{
		RunID:         r.id.String(),
		Strategy:      r.cfg.Strategy,
		Seed:          r.cfg.Seed,
		EffectiveSeed: r.seed,
		GateSize:      r.cfg.GateSize,
		Density:       r.cfg.Density,
		Rows:          r.field.Rows(),
		Columns:       r.field.Columns(),
		Bounds:        r.field.Bounds(),
		Agents:        len(r.agents),
		Workers:       r.workers,
		Threshold:     threshold,
		Elapsed:       elapsed,
		Evaluated:     r.field.Evaluated(),
		Coverage:      r.field.CoverageFraction(),
		Mana:          res.Max,
		Finder:        res.Finder,
		FinderID:      r.agents[res.Finder].ID(),
		Row:           winner.Row,
		Col:           winner.Col,
		X:             r.field.XOf(winner.Row),
		Y:             r.field.YOf(winner.Col),
		Steps:         stepStats(steps),
	}, steps
}

func (r *Run) logAgents(ctx context.Context, log *slog.Logger) {
	if !log.Enabled(ctx, slog.LevelDebug) {
		return
	}
	for _, a := range r.agents {
		p := a.Position()
		log.DebugContext(ctx, "agent finished",
			"agent", a.ID(),
			"start_row", a.Start().Row,
			"start_col", a.Start().Col,
			"row", p.Row,
			"col", p.Col,
			"steps", a.Steps(),
			"mana", a.Best(),
		)
	}
}

// ID returns the run identifier carried into the report.
func (r *Run) ID() string { return r.id.String() }

// Config returns the validated configuration.
func (r *Run) Config() Config { return r.cfg }

// Seed returns the effective seed (never 0).
func (r *Run) Seed() int64 { return r.seed }

// Workers returns the resolved worker count.
func (r *Run) Workers() int { return r.workers }

// Field returns the run's field. Render only after Execute has returned.
func (r *Run) Field() *field.Field { return r.field }

// Agents returns the agents in start-draw order.
func (r *Run) Agents() []*hunt.Agent { return r.agents }

// Paths returns each agent's recorded path; entries are nil unless
// Config.RecordPaths was set.
func (r *Run) Paths() [][]hunt.Position {
	out := make([][]hunt.Position, len(r.agents))
	for i, a := range r.agents {
		out[i] = a.Path()
	}
	return out
}

// Hunt is NewRun followed by Execute.
func Hunt(ctx context.Context, cfg Config, opts ...Option) (*Report, error) {
	r, err := NewRun(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return r.Execute(ctx)
}
