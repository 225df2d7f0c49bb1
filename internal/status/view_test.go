package status

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleData() *Data {
	return &Data{
		Version:         "1.0.0",
		ConfigPath:      "/home/user/.config/cmdsuggest/config.yml",
		ConfigFound:     true,
		LogLevel:        "warn",
		HistorySize:     100,
		WindowSize:      9,
		SpinnerInterval: 100 * time.Millisecond,
		Commands: []CommandInfo{
			{
				Name:        "deploy",
				Description: "Deploy a service",
				Args: []ArgInfo{
					{Name: "env", Source: "values", Detail: "prod, staging"},
					{Name: "service", Source: "exec", Detail: "ls /srv"},
					{Name: "token", Source: "values", Detail: "***", Masked: true, OnAccept: true},
					{Name: "reason", Source: "free"},
				},
			},
			Builtins[1],
		},
	}
}

func TestRender(t *testing.T) {
	output := Render(sampleData())

	assert.Contains(t, output, "Version:")
	assert.Contains(t, output, "1.0.0")
	assert.Contains(t, output, "/home/user/.config/cmdsuggest/config.yml")
	assert.Contains(t, output, "Session:")
	assert.Contains(t, output, "(discarded)")
	assert.Contains(t, output, "100 entries, navigation off")
	assert.Contains(t, output, "100ms")
	assert.Contains(t, output, "Commands:")
	assert.Contains(t, output, "deploy <env> <service> <token> <reason>")
}

func TestRender_NoConfig(t *testing.T) {
	data := sampleData()
	data.ConfigFound = false
	data.ConfigPath = ""
	data.HistoryNavigation = true
	data.LogFile = "/tmp/session.log"

	output := Render(data)

	assert.Contains(t, output, "No configuration file found")
	assert.Contains(t, output, "navigation Left/Right")
	assert.Contains(t, output, "/tmp/session.log")
}

func TestRenderCommand(t *testing.T) {
	output := RenderCommand(sampleData().Commands[0])

	assert.Contains(t, output, "Deploy a service")
	assert.Contains(t, output, "env: ")
	assert.Contains(t, output, "prod, staging")
	assert.Contains(t, output, "$(ls /srv)")
	assert.Contains(t, output, "[masked, rewritten on accept]")
	assert.Contains(t, output, "any value")
}

func TestRenderCommands(t *testing.T) {
	output := RenderCommands(sampleData().Commands)

	lines := strings.Split(output, "\n")
	assert.Contains(t, lines[0], "deploy")
	assert.Contains(t, output, "exit")
	assert.Contains(t, output, "(built-in)")

	assert.Contains(t, RenderCommands(nil), "No commands configured")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
}
