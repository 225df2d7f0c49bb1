package derrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderError(t *testing.T) {
	cause := fmt.Errorf("backend down")
	err := NewProviderError("deploy", "suggestion provider failed", cause)

	assert.Equal(t, "PROVIDER_ERROR", err.Code())
	assert.Equal(t, "deploy", err.Command)
	assert.Equal(t, "suggestion provider failed: backend down", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestProviderError_EmptyMessageShowsCause(t *testing.T) {
	err := NewProviderError("deploy", "", fmt.Errorf("backend down"))
	assert.Equal(t, "backend down", err.Error())
}

func TestAcceptError(t *testing.T) {
	cause := fmt.Errorf("vault sealed")
	err := NewAcceptError("token", "accept hook failed", cause)

	assert.Equal(t, "ACCEPT_ERROR", err.Code())
	assert.Equal(t, "token", err.ID)
	assert.Contains(t, err.Error(), "vault sealed")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestHandlerError(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := NewHandlerError("build", "command failed", cause)

	assert.Equal(t, "HANDLER_ERROR", err.Code())
	assert.Equal(t, "build", err.Command)
	assert.Contains(t, err.Error(), "command failed")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestUnknownCommandError(t *testing.T) {
	err := NewUnknownCommandError("nope")

	assert.Equal(t, "UNKNOWN_COMMAND", err.Code())
	assert.Equal(t, `unknown command: "nope"`, err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestConfigurationError(t *testing.T) {
	cause := fmt.Errorf("invalid YAML")
	err := NewConfigurationError("/path/to/config.yml", "failed to parse config", cause)

	assert.Equal(t, "CONFIG_ERROR", err.Code())
	assert.Equal(t, "/path/to/config.yml", err.Path)
	assert.Contains(t, err.Error(), "invalid YAML")
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("window_size", "must be positive", nil)

	assert.Equal(t, "VALIDATION_ERROR", err.Code())
	assert.Equal(t, "window_size", err.Field)
	assert.Equal(t, "must be positive", err.Error())
}

func TestExecutionError(t *testing.T) {
	cause := fmt.Errorf("command not found")
	err := NewExecutionError("ls", "failed to execute", cause)

	assert.Equal(t, "EXEC_ERROR", err.Code())
	assert.Equal(t, "ls", err.Command)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestErrorInterface(t *testing.T) {
	var errs []Error = []Error{
		NewProviderError("a", "m", nil),
		NewAcceptError("a", "m", nil),
		NewHandlerError("a", "m", nil),
		NewUnknownCommandError("a"),
		NewConfigurationError("a", "m", nil),
		NewValidationError("a", "m", nil),
		NewExecutionError("a", "m", nil),
	}
	for _, err := range errs {
		assert.NotEmpty(t, err.Code())
		assert.NotEmpty(t, err.Error())
	}
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewHandlerError("build", "command failed", nil))

	var handlerErr *HandlerError
	assert.True(t, errors.As(wrapped, &handlerErr))
	assert.Equal(t, "build", handlerErr.Command)
}

func TestFromPanic(t *testing.T) {
	cause := errors.New("nil map")
	err := FromPanic(cause)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "panic: nil map", err.Error())

	assert.Equal(t, "panic: 42", FromPanic(42).Error())
}
