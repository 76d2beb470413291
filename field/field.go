package field

import (
	"fmt"
	"sync/atomic"
)

// evaluatedBit marks a memo word as published. The low 32 bits carry the
// fixed-point value.
const evaluatedBit uint64 = 1 << 32

// Field is a memoised, concurrency-safe mana field.
// Dimensions, bounds and seed are immutable after New; the memo and the
// coverage counter are the only mutable state.
type Field struct {
	bounds     Bounds
	resolution int
	seed       int64
	rows, cols int
	surf       surface

	cells     []atomic.Uint64 // row-major memo: evaluatedBit | uint32(value)
	evaluated atomic.Int64    // distinct cells ever published
}

// New constructs a Field over b with opts.
// rows = int(width×resolution), cols = int(height×resolution).
//
// Returns ErrEmptyDomain if b is degenerate or yields an empty grid,
// ErrResolution if opts.Resolution < 1.
// Complexity: O(rows×cols) memory.
func New(b Bounds, opts Options) (*Field, error) {
	if opts.Resolution < 1 {
		return nil, ErrResolution
	}
	if !(b.XMax > b.XMin) || !(b.YMax > b.YMin) {
		return nil, ErrEmptyDomain
	}
	rows := int(b.Width() * float64(opts.Resolution))
	cols := int(b.Height() * float64(opts.Resolution))
	if rows < 1 || cols < 1 {
		return nil, ErrEmptyDomain
	}

	return &Field{
		bounds:     b,
		resolution: opts.Resolution,
		seed:       opts.Seed,
		rows:       rows,
		cols:       cols,
		surf:       newSurface(opts.Seed, b),
		cells:      make([]atomic.Uint64, rows*cols),
	}, nil
}

// Rows returns the number of grid rows (the x axis).
func (f *Field) Rows() int { return f.rows }

// Columns returns the number of grid columns (the y axis).
func (f *Field) Columns() int { return f.cols }

// Cells returns rows×cols.
func (f *Field) Cells() int { return f.rows * f.cols }

// Bounds returns the continuous domain.
func (f *Field) Bounds() Bounds { return f.bounds }

// Seed returns the seed the surface was derived from.
func (f *Field) Seed() int64 { return f.seed }

// Resolution returns the cells-per-unit factor.
func (f *Field) Resolution() int { return f.resolution }

// InBounds reports whether (row, col) lies inside the grid.
func (f *Field) InBounds(row, col int) bool {
	return row >= 0 && row < f.rows && col >= 0 && col < f.cols
}

// XOf maps a row index to its x coordinate.
func (f *Field) XOf(row int) float64 {
	return f.bounds.XMin + (f.bounds.Width()/float64(f.rows))*float64(row)
}

// YOf maps a column index to its y coordinate.
func (f *Field) YOf(col int) float64 {
	return f.bounds.YMin + (f.bounds.Height()/float64(f.cols))*float64(col)
}

// ValueAt returns the fixed-point mana at (row, col), evaluating and
// publishing it on first access. Safe for concurrent use.
//
// Panics with an error wrapping ErrOutOfRange for cells outside the grid and
// with *NonFiniteError when the surface is not finite at the cell.
// Complexity: O(1).
func (f *Field) ValueAt(row, col int) int {
	i := f.index(row, col)
	if w := f.cells[i].Load(); w&evaluatedBit != 0 {
		return unpack(w)
	}

	v := f.evaluate(row, col)
	// Only the winning publisher counts the cell; losers computed the same v.
	if f.cells[i].CompareAndSwap(0, pack(v)) {
		f.evaluated.Add(1)
	}
	return v
}

// Peek returns the memoised value at (row, col) without evaluating it.
// ok is false for cells never evaluated or outside the grid.
func (f *Field) Peek(row, col int) (v int, ok bool) {
	if !f.InBounds(row, col) {
		return 0, false
	}
	w := f.cells[row*f.cols+col].Load()
	if w&evaluatedBit == 0 {
		return 0, false
	}
	return unpack(w), true
}

// Evaluated returns the number of distinct cells evaluated so far.
func (f *Field) Evaluated() int64 { return f.evaluated.Load() }

// CoverageFraction returns Evaluated()/Cells().
func (f *Field) CoverageFraction() float64 {
	return float64(f.Evaluated()) / float64(f.Cells())
}

// evaluate computes the fixed-point value at (row, col) without touching
// the memo.
func (f *Field) evaluate(row, col int) int {
	x, y := f.XOf(row), f.YOf(col)
	raw := f.surf.mana(x, y)
	v, ok := fixedPoint(raw)
	if !ok {
		panic(&NonFiniteError{Row: row, Col: col, X: x, Y: y, Raw: raw})
	}
	return v
}

// index maps (row, col) to the row-major memo index.
func (f *Field) index(row, col int) int {
	if !f.InBounds(row, col) {
		panic(fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfRange, row, col, f.rows, f.cols))
	}
	return row*f.cols + col
}

func pack(v int) uint64 { return evaluatedBit | uint64(uint32(int32(v))) }

func unpack(w uint64) int { return int(int32(uint32(w))) }
