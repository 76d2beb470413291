package field

import (
	"errors"
	"fmt"
)

const (
	// Resolution is the default number of grid cells per unit length.
	Resolution = 5

	// Precision scales the continuous mana value into its fixed-point form.
	Precision = 10000
)

// Sentinel errors for field construction and evaluation.
var (
	// ErrEmptyDomain indicates bounds with XMax<=XMin or YMax<=YMin.
	ErrEmptyDomain = errors.New("field: bounds must describe a non-empty domain")
	// ErrResolution indicates a resolution below 1.
	ErrResolution = errors.New("field: resolution must be at least 1")
	// ErrNonFinite indicates the mana function produced NaN, ±Inf or a value
	// outside the fixed-point range.
	ErrNonFinite = errors.New("field: non-finite mana value")
	// ErrOutOfRange indicates a cell outside [0,rows)×[0,cols).
	ErrOutOfRange = errors.New("field: cell out of range")
)

// NonFiniteError carries the cell and raw value that failed evaluation.
// It is the panic value raised by ValueAt and unwraps to ErrNonFinite.
type NonFiniteError struct {
	Row, Col int
	X, Y     float64
	Raw      float64
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("field: non-finite mana %g at cell (%d,%d) [x=%g y=%g]", e.Raw, e.Row, e.Col, e.X, e.Y)
}

func (e *NonFiniteError) Unwrap() error { return ErrNonFinite }

// Bounds is the continuous domain covered by the grid.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Square returns the bounds [-half, half]×[-half, half].
func Square(half int) Bounds {
	h := float64(half)
	return Bounds{XMin: -h, XMax: h, YMin: -h, YMax: h}
}

// Width returns XMax-XMin.
func (b Bounds) Width() float64 { return b.XMax - b.XMin }

// Height returns YMax-YMin.
func (b Bounds) Height() float64 { return b.YMax - b.YMin }

// Options configures a Field.
//   - Resolution: cells per unit length (default Resolution).
//   - Seed:       parameterises the surface; equal seeds give equal fields.
type Options struct {
	Resolution int
	Seed       int64
}

// DefaultOptions returns Options{Resolution: Resolution, Seed: 0}.
func DefaultOptions() Options {
	return Options{Resolution: Resolution}
}
