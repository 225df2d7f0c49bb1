package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_NoConfig(t *testing.T) {
	isolate(t)

	// Should not error with no config, the defaults apply
	out, err := captureStdout(t, func() error { return Status("") })
	require.NoError(t, err)
	assert.Contains(t, out, "Version")
	assert.Contains(t, out, "No configuration file found")
	assert.Contains(t, out, "help")
}

func TestStatus_WithConfig(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "config.yml", testConfig+"history_size: 42\n")

	out, err := captureStdout(t, func() error { return Status(path) })
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "greet <who>")
}

func TestStatus_MissingConfig(t *testing.T) {
	isolate(t)

	err := Status("/nonexistent/config.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to collect status data")
}
