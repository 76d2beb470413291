// Package field generates and serves the mana field: a deterministic,
// many-peaked scalar surface over a square continuous domain, discretised
// into a rows×columns grid.
//
// What:
//
//   - Field maps grid cells (row, col) to fixed-point mana values.
//   - Values are a pure function of (row, col, seed, bounds); the first
//     caller of ValueAt for a cell pays the evaluation cost, every later
//     caller (from any goroutine) observes the memoised value.
//   - A coverage counter tracks how many distinct cells were ever evaluated.
//
// Concurrency:
//
//   - Each cell is a single atomic word holding an "evaluated" bit and the
//     32-bit fixed-point value. The first writer publishes with a
//     compare-and-swap; only the winning CAS increments the coverage
//     counter, so racing first evaluations never double count.
//   - Losing writers computed the same value (the function is pure), so
//     the published value is consistent whichever writer wins.
//
// Complexity:
//
//   - New:      O(rows×cols) memory for the memo (8 bytes per cell).
//   - ValueAt:  O(1); one closed-form evaluation per distinct cell.
//
// Errors:
//
//   - ErrEmptyDomain: bounds do not describe a non-empty rectangle.
//   - ErrResolution:  resolution below 1 cell per unit length.
//   - ErrNonFinite:   (panic) evaluation produced NaN/Inf or left the
//     fixed-point range. This is a defect, never a recoverable value.
//   - ErrOutOfRange:  (panic) a cell outside the grid was requested.
package field
