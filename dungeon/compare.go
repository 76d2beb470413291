package dungeon

import (
	"context"
	"fmt"
)

// Comparison holds one report per strategy for a shared seed. Reports are
// in Strategies() order, so Reports[0] is the sequential baseline.
type Comparison struct {
	Seed       int64
	Reports    []*Report
	Agree      bool
	Mismatches []string
}

// Compare runs every strategy on a fresh Run with cfg and the same
// effective seed, then checks mana, finder, winning cell and coverage
// against the sequential baseline.
func Compare(ctx context.Context, cfg Config, opts ...Option) (*Comparison, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed, err := resolveSeed(cfg.Seed)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{Seed: seed, Agree: true}
	for _, s := range Strategies() {
		c := cfg
		c.Seed = seed
		c.Strategy = s
		rep, err := Hunt(ctx, c, opts...)
		if err != nil {
			return nil, err
		}
		// Keep the caller's seed visible; the effective seed is shared.
		rep.Seed = cfg.Seed
		cmp.Reports = append(cmp.Reports, rep)
	}

	base := cmp.Reports[0]
	for _, rep := range cmp.Reports[1:] {
		cmp.check(base, rep, "mana", base.Mana, rep.Mana)
		cmp.check(base, rep, "finder", base.Finder, rep.Finder)
		cmp.check(base, rep, "row", base.Row, rep.Row)
		cmp.check(base, rep, "col", base.Col, rep.Col)
		cmp.check(base, rep, "evaluated", base.Evaluated, rep.Evaluated)
	}
	return cmp, nil
}

func (c *Comparison) check(base, rep *Report, what string, want, got any) {
	if want == got {
		return
	}
	c.Agree = false
	c.Mismatches = append(c.Mismatches,
		fmt.Sprintf("%s: %s=%v, %s=%v", what, base.Strategy, want, rep.Strategy, got))
}
