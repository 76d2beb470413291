package dungeon

import (
	"errors"
	"fmt"
)

// Sentinel errors for orchestration.
var (
	// ErrInvalidConfig indicates a Config that failed validation.
	ErrInvalidConfig = errors.New("dungeon: invalid config")
	// ErrReduction indicates the reduction strategy failed.
	ErrReduction = errors.New("dungeon: reduction failed")
	// ErrAlreadyExecuted indicates Execute was called twice on one Run.
	ErrAlreadyExecuted = errors.New("dungeon: run already executed")
	// ErrUnknownStrategy indicates an unrecognised strategy name.
	ErrUnknownStrategy = errors.New("dungeon: unknown strategy")
)

// ConfigError names the offending configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dungeon: invalid config: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }
