// Package hunt implements a single greedy hill-climbing search ("hunt")
// over a discretised surface.
//
// An Agent starts at a grid cell, repeatedly evaluates its neighbours and
// moves to the strictly best improving one. When no neighbour strictly
// improves on the current value the agent stands on a local maximum and
// stops. Ties between equally good neighbours resolve to the first one in
// neighbour-offset order, so a run is fully deterministic.
//
// Connectivity is fixed per agent: Conn4 (N, E, S, W) or Conn8 (adds the
// diagonals). Many agents may share one Surface; an agent only mutates its
// own position, step counter and path.
//
// Complexity: O(steps×d) surface reads, d = 4 or 8. Because the ascent is
// strictly monotone over a finite grid, steps < rows×cols.
//
// Errors:
//
//   - ErrStepLimit:  the step guard tripped (a defect in the surface, since
//     a strict ascent on a finite grid cannot cycle).
//   - ErrAlreadyRan: Run was called on an agent that already finished.
package hunt
