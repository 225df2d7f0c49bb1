package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	path := writeConfig(t, "config.yml", testConfig)

	out, err := captureStdout(t, func() error { return Validate(path) })
	require.NoError(t, err)
	assert.Contains(t, out, "Validating: "+path)
	assert.Contains(t, out, "Configuration is valid")
}

func TestValidate_SchemaError(t *testing.T) {
	path := writeConfig(t, "config.yml", "window_size: 0\nunknown_key: true\n")

	out, err := captureStdout(t, func() error { return Validate(path) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, out, "Configuration has errors")
}

func TestValidate_SemanticError(t *testing.T) {
	path := writeConfig(t, "config.yml", `commands:
  help:
    description: shadows the built-in
`)

	out, err := captureStdout(t, func() error { return Validate(path) })
	require.Error(t, err)
	assert.Contains(t, out, "[commands/help]")
	assert.Contains(t, out, "Found 1 error(s)")
}

func TestValidate_TOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `window_size = 5

[commands.deploy]
description = "Ship it"

[[commands.deploy.args]]
name = "env"
values = ["prod", "staging"]
`)

	_, err := captureStdout(t, func() error { return Validate(path) })
	require.NoError(t, err)
}

func TestValidate_DefaultLocation(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cmdsuggest"), 0755))
	path := filepath.Join(dir, "cmdsuggest", "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))

	out, err := captureStdout(t, func() error { return Validate("") })
	require.NoError(t, err)
	assert.Contains(t, out, path)
}

func TestValidate_NoConfigFound(t *testing.T) {
	isolate(t)

	err := Validate("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config file found")
}

func TestValidate_Unreadable(t *testing.T) {
	err := Validate("/nonexistent/config.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
