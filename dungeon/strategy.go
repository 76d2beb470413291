package dungeon

import (
	"fmt"
	"strings"
)

// Strategy selects the reduction used to combine agent results.
type Strategy int

const (
	// ForkJoin uses adaptive recursive bisection.
	ForkJoin Strategy = iota
	// Static uses fixed contiguous blocks, one goroutine each.
	Static
	// Sequential uses a single left-to-right scan.
	Sequential
)

// Strategies lists every strategy in a stable order.
func Strategies() []Strategy { return []Strategy{Sequential, Static, ForkJoin} }

// String returns the canonical name.
func (s Strategy) String() string {
	switch s {
	case ForkJoin:
		return "forkjoin"
	case Static:
		return "static"
	case Sequential:
		return "sequential"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

func (s Strategy) valid() bool { return s >= ForkJoin && s <= Sequential }

// ParseStrategy accepts canonical names plus common aliases. Empty names
// are rejected; defaults come from DefaultConfig.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "forkjoin", "fork-join", "fj":
		return ForkJoin, nil
	case "static", "partition", "threads":
		return Static, nil
	case "sequential", "serial", "seq":
		return Sequential, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
