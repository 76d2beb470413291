// Package manahunt finds the strongest peak of a rugged, seeded mana field
// by scattering greedy hill-climbing agents over it and reducing their
// local maxima in parallel.
//
// Packages:
//
//	field/        deterministic mana surface on a discrete grid; lock-free
//	              per-cell memo with an exactly-once coverage counter
//	hunt/         one greedy ascent (Conn8 or Conn4) to a local maximum
//	reduce/       Sequential, StaticPartition and ForkJoin reductions to
//	              (max, finder) with earliest-index tie-breaking everywhere
//	dungeon/      orchestration: config, seeding, dispatch, typed Report,
//	              strategy comparison and timing sweeps
//	render/       PNG rendering of explored cells and agent paths
//	cmd/manahunt  command-line front end (run, compare, profile)
//
// Quick start:
//
//	cfg := dungeon.DefaultConfig()
//	cfg.GateSize, cfg.Density, cfg.Seed = 10, 0.05, 42
//	rep, err := dungeon.Hunt(ctx, cfg)
//	// rep.Mana, rep.X, rep.Y, rep.Coverage ...
//
// A positive seed makes every strategy and worker count report the same
// maximum, finder and coverage.
package manahunt
