// Package derrors provides the typed errors of cmdsuggest.
// Each error carries a stable code and unwraps to its cause, so callers can
// branch with errors.As while the display text stays readable.
package derrors

import (
	"fmt"
)

// Error is the base interface for all cmdsuggest errors
type Error interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all cmdsuggest errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		if e.message == "" {
			return e.cause.Error()
		}
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ProviderError is a fault raised while fetching suggestions for a command
type ProviderError struct {
	baseError
	Command string
}

// NewProviderError creates a new provider error
func NewProviderError(command string, message string, cause error) *ProviderError {
	return &ProviderError{
		baseError: baseError{
			code:    "PROVIDER_ERROR",
			message: message,
			cause:   cause,
		},
		Command: command,
	}
}

// AcceptError is a fault raised by a suggestion's accept hook
type AcceptError struct {
	baseError
	ID string
}

// NewAcceptError creates a new accept error
func NewAcceptError(id string, message string, cause error) *AcceptError {
	return &AcceptError{
		baseError: baseError{
			code:    "ACCEPT_ERROR",
			message: message,
			cause:   cause,
		},
		ID: id,
	}
}

// HandlerError is a fault raised by a command handler
type HandlerError struct {
	baseError
	Command string
}

// NewHandlerError creates a new handler error
func NewHandlerError(command string, message string, cause error) *HandlerError {
	return &HandlerError{
		baseError: baseError{
			code:    "HANDLER_ERROR",
			message: message,
			cause:   cause,
		},
		Command: command,
	}
}

// UnknownCommandError is returned when no handler is registered for a command
type UnknownCommandError struct {
	baseError
	Command string
}

// NewUnknownCommandError creates a new unknown command error
func NewUnknownCommandError(command string) *UnknownCommandError {
	return &UnknownCommandError{
		baseError: baseError{
			code:    "UNKNOWN_COMMAND",
			message: fmt.Sprintf("unknown command: %q", command),
		},
		Command: command,
	}
}

// ConfigurationError represents errors in configuration files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ValidationError represents errors during validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// ExecutionError represents errors while running an external command
type ExecutionError struct {
	baseError
	Command string
}

// NewExecutionError creates a new execution error
func NewExecutionError(command string, message string, cause error) *ExecutionError {
	return &ExecutionError{
		baseError: baseError{
			code:    "EXEC_ERROR",
			message: message,
			cause:   cause,
		},
		Command: command,
	}
}

// FromPanic converts a recovered panic value into an error
func FromPanic(v any) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", v)
}
