package dungeon

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/manahunt/field"
	"github.com/katalvlaran/manahunt/hunt"
)

// Config holds the inputs of one hunt.
//
// GateSize is the half-width of the square domain [-g,g]×[-g,g]; Density
// scales the agent count (see AgentCount); Seed 0 means "fresh entropy".
// Workers and Threshold of 0 mean "derive from GOMAXPROCS".
type Config struct {
	GateSize     int               `yaml:"gate_size" json:"gate_size" validate:"gt=0"`
	Density      float64           `yaml:"density" json:"density" validate:"gt=0"`
	Seed         int64             `yaml:"seed" json:"seed" validate:"gte=0"`
	Strategy     Strategy          `yaml:"strategy" json:"strategy"`
	Workers      int               `yaml:"workers" json:"workers" validate:"gte=0"`
	Threshold    int               `yaml:"threshold" json:"threshold" validate:"gte=0"`
	Connectivity hunt.Connectivity `yaml:"connectivity" json:"connectivity"`
	MaxSteps     int               `yaml:"max_steps" json:"max_steps" validate:"gte=0"`
	RecordPaths  bool              `yaml:"record_paths" json:"record_paths"`
}

// DefaultConfig returns a small reproducible-by-choice hunt:
// gate 10, density 0.2, seed 0, fork-join, Conn8.
func DefaultConfig() Config {
	return Config{
		GateSize:     10,
		Density:      0.2,
		Strategy:     ForkJoin,
		Connectivity: hunt.Conn8,
	}
}

// Size ceilings enforced by Validate. The memo costs 8 bytes per cell and
// each agent holds its own state, so these bound a run to a few GiB.
const (
	MaxCells  = 1 << 26
	MaxAgents = 1 << 22
)

// AgentCount returns int(density × (2·gate)² × field.Resolution).
// Callers must validate the Config first; the result is only meaningful
// up to MaxAgents.
func AgentCount(gate int, density float64) int {
	return int(agents(gate, density))
}

func agents(gate int, density float64) float64 {
	side := 2 * float64(gate)
	return density * side * side * field.Resolution
}

func cells(gate int) float64 {
	side := 2 * float64(gate) * field.Resolution
	return side * side
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate reports the first invalid field as a *ConfigError.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) && len(ves) > 0 {
			return &ConfigError{Field: ves[0].Field(), Reason: describe(ves[0])}
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if math.IsInf(c.Density, 0) {
		return &ConfigError{Field: "density", Reason: "must be finite"}
	}
	if !c.Strategy.valid() {
		return &ConfigError{Field: "strategy", Reason: fmt.Sprintf("unknown value %d", int(c.Strategy))}
	}
	if c.Connectivity != hunt.Conn4 && c.Connectivity != hunt.Conn8 {
		return &ConfigError{Field: "connectivity", Reason: fmt.Sprintf("unknown value %d", int(c.Connectivity))}
	}
	if cells(c.GateSize) > MaxCells {
		return &ConfigError{Field: "gate_size", Reason: fmt.Sprintf("grid exceeds %d cells", MaxCells)}
	}
	n := agents(c.GateSize, c.Density)
	if math.IsNaN(n) || math.IsInf(n, 0) || n > MaxAgents {
		return &ConfigError{Field: "density", Reason: fmt.Sprintf("yields more than %d search agents", MaxAgents)}
	}
	if n < 1 {
		return &ConfigError{Field: "density", Reason: "yields no search agents for this gate size"}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// LoadConfig reads a YAML config file over DefaultConfig and validates it.
// Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("dungeon: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
