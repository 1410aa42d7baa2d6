package engine

import (
	"errors"
	"fmt"
)

// ErrInternal marks invariant violations inside the engine. These indicate
// programming errors, not bad input, and are never silently coerced.
var ErrInternal = errors.New("engine: internal invariant violation")

// InvalidInputError reports malformed input. The caller must fix the series
// before retrying; short-but-valid histories are not an error.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func invalidInputf(format string, a ...interface{}) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, a...)}
}
