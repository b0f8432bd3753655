package config

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError represents a single invalid configuration value.
type ValidationError struct {
	Field   string // dotted config path, e.g. "solver.workers"
	Value   any
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation failures.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Validate checks the Config and returns every invalid value found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.Grid.Size < 3 {
		errs = append(errs, ValidationError{
			Field: "grid.size", Value: c.Grid.Size,
			Message: "must be at least 3",
		})
	}
	if !isFinite(c.Grid.Initial) {
		errs = append(errs, ValidationError{
			Field: "grid.initial", Value: c.Grid.Initial,
			Message: "must be a finite number",
		})
	}
	for _, edge := range []struct {
		field string
		value float64
	}{
		{"grid.boundary.top", c.Grid.Boundary.Top},
		{"grid.boundary.bottom", c.Grid.Boundary.Bottom},
		{"grid.boundary.left", c.Grid.Boundary.Left},
		{"grid.boundary.right", c.Grid.Boundary.Right},
	} {
		if !isFinite(edge.value) {
			errs = append(errs, ValidationError{
				Field: edge.field, Value: edge.value,
				Message: "must be a finite number",
			})
		}
	}

	if c.Solver.Workers < 1 {
		errs = append(errs, ValidationError{
			Field: "solver.workers", Value: c.Solver.Workers,
			Message: "must be at least 1",
		})
	}
	if c.Solver.Iterations < 0 {
		errs = append(errs, ValidationError{
			Field: "solver.iterations", Value: c.Solver.Iterations,
			Message: "must not be negative",
		})
	}
	if c.Solver.Tolerance < 0 || !isFinite(c.Solver.Tolerance) {
		errs = append(errs, ValidationError{
			Field: "solver.tolerance", Value: c.Solver.Tolerance,
			Message: "must be a non-negative finite number",
		})
	}
	if c.Solver.SpinPause < 0 {
		errs = append(errs, ValidationError{
			Field: "solver.spin_pause", Value: c.Solver.SpinPause,
			Message: "must not be negative",
		})
	}

	if c.Logging.Verbosity < 0 {
		errs = append(errs, ValidationError{
			Field: "logging.verbosity", Value: c.Logging.Verbosity,
			Message: "must not be negative",
		})
	}

	return errs
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
