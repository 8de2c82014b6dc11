// Package apperrors defines the error types that decide mosp's exit status.
package apperrors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the mosp binary.
const (
	ExitSuccess      = 0
	ExitErrorGeneric = 1
	ExitErrorUsage   = 2
)

// ConfigError reports invalid command-line, environment or file settings.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// OutputError reports a failed append to the results file. It is fatal:
// rows are never silently dropped.
type OutputError struct {
	Path  string
	Cause error
}

func (e OutputError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Cause)
}

func (e OutputError) Unwrap() error { return e.Cause }

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cfgErr ConfigError
	if errors.As(err, &cfgErr) {
		return ExitErrorUsage
	}
	return ExitErrorGeneric
}
