// Package dungeon orchestrates a complete hunt: it validates a Config,
// builds the mana field, places every search agent from one seeded
// generator, dispatches the chosen reduction strategy and returns a typed
// Report.
//
// Reproducibility:
//
//	A positive seed fixes the field and all agent start positions. Start
//	positions are drawn before any parallel work, so the same Config yields
//	the same Report values (mana, finder, coordinates, coverage) for every
//	strategy and worker count. Seed 0 draws a fresh seed from crypto/rand;
//	the drawn value is reported as EffectiveSeed so the run can be replayed.
//
// Timing:
//
//	Elapsed covers dispatch to completion of the reduction only and lives in
//	the Report; there is no process-wide timer state.
//
// Ambient concerns:
//
//   - Logging through a caller-supplied *slog.Logger (WithLogger).
//   - Prometheus metrics through an optional *Metrics (WithMetrics).
//   - An OpenTelemetry span per Execute (WithTracer).
//
// Errors:
//
//   - ErrInvalidConfig (via *ConfigError): rejected before any state exists.
//   - ErrReduction: an agent failed or panicked; the run is abandoned.
//   - ErrAlreadyExecuted: a Run is single-use.
package dungeon
