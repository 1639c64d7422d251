// Package issue defines the user-facing error types shared by the command
// tree and the packages it delegates to.
package issue

import (
	"errors"
	"fmt"
	"strings"
)

// BadParameterError reports a user-supplied value that cannot be used, such
// as a run target that is neither an existing file nor a fetchable URL.
type BadParameterError struct {
	// Param names the offending parameter (e.g., "target"). Optional.
	Param string
	// Message is the user-facing description, including the offending value.
	Message string
	// Cause is the underlying failure, if any.
	Cause error
	// Missing marks a required argument that was not supplied at all.
	Missing bool
}

// MissingArgument reports a required positional argument that was not given.
func MissingArgument(name string) *BadParameterError {
	return &BadParameterError{Param: name, Missing: true}
}

// BadParameter creates a BadParameterError with a formatted message.
func BadParameter(format string, args ...any) *BadParameterError {
	return &BadParameterError{Message: fmt.Sprintf(format, args...)}
}

// WithParam sets the parameter name and returns the error for chaining.
func (e *BadParameterError) WithParam(param string) *BadParameterError {
	e.Param = param
	return e
}

// Wrap records the underlying cause and returns the error for chaining.
func (e *BadParameterError) Wrap(cause error) *BadParameterError {
	e.Cause = cause
	return e
}

func (e *BadParameterError) Error() string {
	if e.Missing {
		return fmt.Sprintf("Missing argument '%s'.", strings.ToUpper(e.Param))
	}
	if e.Param == "" {
		return "Invalid value: " + e.Message
	}
	return fmt.Sprintf("Invalid value for %q: %s", e.Param, e.Message)
}

func (e *BadParameterError) Unwrap() error {
	return e.Cause
}

// IsBadParameter reports whether err is or wraps a BadParameterError.
func IsBadParameter(err error) bool {
	var bp *BadParameterError
	return errors.As(err, &bp)
}
