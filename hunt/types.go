package hunt

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for agent runs.
var (
	// ErrStepLimit indicates the ascent exceeded Options.MaxSteps.
	ErrStepLimit = errors.New("hunt: step limit exceeded")
	// ErrAlreadyRan indicates Run was invoked twice on the same agent.
	ErrAlreadyRan = errors.New("hunt: agent already ran")
	// ErrConnectivity indicates an unknown connectivity name.
	ErrConnectivity = errors.New("hunt: unknown connectivity")
)

// Surface is the read/evaluate view of a field an agent climbs.
// ValueAt must be safe for concurrent use and deterministic.
type Surface interface {
	ValueAt(row, col int) int
	Rows() int
	Columns() int
}

// Connectivity selects neighbour connectivity: orthogonal (Conn4) or
// including diagonals (Conn8).
type Connectivity int

const (
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8 Connectivity = iota
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4
)

// String returns "conn8" or "conn4".
func (c Connectivity) String() string {
	switch c {
	case Conn8:
		return "conn8"
	case Conn4:
		return "conn4"
	default:
		return fmt.Sprintf("Connectivity(%d)", int(c))
	}
}

// ParseConnectivity accepts "conn4"/"4" and "conn8"/"8" (case-insensitive).
// The empty string is rejected; the zero Connectivity is already Conn8.
func ParseConnectivity(s string) (Connectivity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "conn8", "8":
		return Conn8, nil
	case "conn4", "4":
		return Conn4, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrConnectivity, s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Connectivity) MarshalText() ([]byte, error) {
	if c != Conn4 && c != Conn8 {
		return nil, fmt.Errorf("%w: %d", ErrConnectivity, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Connectivity) UnmarshalText(b []byte) error {
	v, err := ParseConnectivity(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// offsets returns the (dRow, dCol) neighbour offsets in clockwise order
// starting north.
func (c Connectivity) offsets() [][2]int {
	if c == Conn4 {
		return conn4Offsets
	}
	return conn8Offsets
}

var (
	conn4Offsets = [][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
	conn8Offsets = [][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}
)

// Position is a grid cell.
type Position struct {
	Row, Col int
}

// Options configures an Agent.
//   - Conn:       neighbour connectivity (default Conn8).
//   - MaxSteps:   guard on moves; <=0 means rows×cols.
//   - RecordPath: keep every visited position (for visualisation).
type Options struct {
	Conn       Connectivity
	MaxSteps   int
	RecordPath bool
}

// DefaultOptions returns Options{Conn: Conn8}.
func DefaultOptions() Options {
	return Options{Conn: Conn8}
}
