package hunt

import "fmt"

// Agent is one greedy local search. It is owned by a single goroutine while
// running and read-only once Run has returned.
type Agent struct {
	id      int
	surface Surface
	opts    Options
	offsets [][2]int

	start Position
	pos   Position
	steps int
	best  int
	path  []Position
	done  bool
}

// New creates an agent with identity id starting at (row, col) on s.
// The start cell must lie inside s.
func New(id, row, col int, s Surface, opts Options) *Agent {
	a := &Agent{
		id:      id,
		surface: s,
		opts:    opts,
		offsets: opts.Conn.offsets(),
		start:   Position{Row: row, Col: col},
		pos:     Position{Row: row, Col: col},
	}
	if opts.RecordPath {
		a.path = []Position{a.pos}
	}
	return a
}

// Run climbs from the current position to a local maximum and returns the
// value there. The returned value is never below the start value.
//
// Returns ErrAlreadyRan on a second call and an error wrapping ErrStepLimit
// if the guard trips. Panics raised by the surface propagate to the caller;
// the agent is frozen either way and never resumes.
// Complexity: O(steps×d).
func (a *Agent) Run() (int, error) {
	if a.done {
		return a.best, ErrAlreadyRan
	}
	defer func() { a.done = true }()

	limit := a.opts.MaxSteps
	if limit <= 0 {
		limit = a.surface.Rows() * a.surface.Columns()
	}

	cur := a.surface.ValueAt(a.pos.Row, a.pos.Col)
	for {
		next, v, ok := a.bestNeighbour(cur)
		if !ok {
			break
		}
		if a.steps >= limit {
			a.best = cur
			return cur, fmt.Errorf("%w: agent %d after %d steps at (%d,%d)",
				ErrStepLimit, a.id, a.steps, a.pos.Row, a.pos.Col)
		}
		a.pos, cur = next, v
		a.steps++
		if a.opts.RecordPath {
			a.path = append(a.path, next)
		}
	}

	a.best = cur
	return cur, nil
}

// bestNeighbour returns the in-bounds neighbour with the largest value
// strictly greater than cur. The first such neighbour in offset order wins
// ties.
func (a *Agent) bestNeighbour(cur int) (Position, int, bool) {
	rows, cols := a.surface.Rows(), a.surface.Columns()
	var (
		best  Position
		bestV = cur
		found bool
	)
	for _, d := range a.offsets {
		r, c := a.pos.Row+d[0], a.pos.Col+d[1]
		if r < 0 || r >= rows || c < 0 || c >= cols {
			continue
		}
		if v := a.surface.ValueAt(r, c); v > bestV {
			best, bestV, found = Position{Row: r, Col: c}, v, true
		}
	}
	return best, bestV, found
}

// ID returns the agent identity.
func (a *Agent) ID() int { return a.id }

// Start returns the start cell.
func (a *Agent) Start() Position { return a.start }

// Position returns the current (after Run, terminal) cell.
func (a *Agent) Position() Position { return a.pos }

// Steps returns the number of moves made.
func (a *Agent) Steps() int { return a.steps }

// Best returns the value at the terminal cell; zero before Run.
func (a *Agent) Best() int { return a.best }

// Done reports whether Run has completed.
func (a *Agent) Done() bool { return a.done }

// Path returns a copy of the visited cells, start first. It is nil unless
// Options.RecordPath was set.
func (a *Agent) Path() []Position {
	if a.path == nil {
		return nil
	}
	out := make([]Position, len(a.path))
	copy(out, a.path)
	return out
}
