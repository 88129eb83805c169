package core

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned for any coordinate outside the grid extents.
	ErrOutOfBounds = errors.New("cell out of bounds")

	// ErrInvalidConfig is returned when an engine or grid cannot be built
	// from the supplied configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// BoundsError reports the offending cell and the grid extents.
type BoundsError struct {
	Cell    Cell
	Rows    int
	Columns int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: %v outside %dx%d grid", ErrOutOfBounds, e.Cell, e.Rows, e.Columns)
}

// Is makes errors.Is(err, ErrOutOfBounds) succeed.
func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// ConfigError names the configuration field that failed validation.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidConfig, e.Field, e.Message)
}

// Is makes errors.Is(err, ErrInvalidConfig) succeed.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
