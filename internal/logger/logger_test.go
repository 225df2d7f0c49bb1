package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	levels := []string{"debug", "info", "warn", "error", "invalid", "", "DEBUG"}

	for _, level := range levels {
		t.Run(level, func(t *testing.T) {
			l := New(level, &bytes.Buffer{})
			require.NotNil(t, l)
			require.NotNil(t, l.log)
		})
	}
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	l := New("loud", &bytes.Buffer{})
	assert.True(t, l.Enabled("info"))
	assert.False(t, l.Enabled("debug"))
}

func TestNew_NilOutput(t *testing.T) {
	l := New("info", nil)
	require.NotNil(t, l)
	require.NotNil(t, l.log)
}

func TestNop(t *testing.T) {
	l := Nop()
	assert.False(t, l.Enabled("error"))
	l.Error().Str("k", "v").Msg("dropped")
}

func TestLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New("debug", buf)

	l.Debug().Msg("debug message")
	l.Info().Msg("info message")
	l.Warn().Msg("warn message")
	l.Error().Msg("error message")

	output := buf.String()
	for _, msg := range []string{"debug message", "info message", "warn message", "error message"} {
		assert.Contains(t, output, msg)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		log       func(*Logger)
		shouldLog bool
	}{
		{"debug with debug level", "debug", func(l *Logger) { l.Debug().Msg("debug") }, true},
		{"debug with info level", "info", func(l *Logger) { l.Debug().Msg("debug") }, false},
		{"info with warn level", "warn", func(l *Logger) { l.Info().Msg("info") }, false},
		{"warn with warn level", "warn", func(l *Logger) { l.Warn().Msg("warn") }, true},
		{"error with error level", "error", func(l *Logger) { l.Error().Msg("error") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.log(New(tt.logLevel, buf))
			assert.Equal(t, tt.shouldLog, buf.Len() > 0)
		})
	}
}

func TestEntry_Fields(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New("info", buf)

	l.Info().
		Str("command", "deploy").
		Strs("args", []string{"deploy", "prod"}).
		Int("suggestions", 42).
		Bool("done", false).
		Err(errors.New("chain error")).
		Msg("chained message")

	output := buf.String()
	assert.Contains(t, output, "chained message")
	assert.Contains(t, output, "command=deploy")
	assert.Contains(t, output, `args="deploy,prod"`)
	assert.Contains(t, output, "suggestions=42")
	assert.Contains(t, output, "done=false")
	assert.Contains(t, output, "chain error")
}

func TestEntry_Err_Nil(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New("error", buf)

	l.Error().Err(nil).Msg("no error")

	assert.Contains(t, buf.String(), "no error")
	assert.NotContains(t, buf.String(), "error=")
}

func TestEntry_Dur(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New("info", buf)

	l.Info().Dur("elapsed", 1500*time.Microsecond).Msg("fetched")

	assert.Contains(t, buf.String(), "elapsed=1.5")
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	base := New("info", buf)
	child := base.With("component", "console")

	child.Info().Msg("from child")
	base.Info().Msg("from base")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "component=console")
	assert.NotContains(t, lines[1], "component=console")
}
