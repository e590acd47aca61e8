package transition

import (
	"errors"
	"fmt"
)

// ConfigError reports an invalid Group configuration detected at
// construction. Construction fails fast: a zero or negative duration makes
// the activation/settle ordering ill-defined, so it is never accepted.
type ConfigError struct {
	// Field names the offending Config field.
	Field string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("transition config: %s: %s", e.Field, e.Message)
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
