package completion

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/NikitaCOEUR/cmdsuggest/internal/derrors"
)

const (
	// DefaultCommandTimeout is the default timeout for value commands
	DefaultCommandTimeout = 3 * time.Second
	// MaxOutputSize is the maximum size of command output (1MB)
	MaxOutputSize = 1024 * 1024
)

// ExecWithTimeout runs tool and returns its standard output.
// If env is nil, the command inherits the current process environment.
// A non-positive timeout uses DefaultCommandTimeout.
func ExecWithTimeout(ctx context.Context, timeout time.Duration, env []string, tool string, args ...string) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, tool, args...)
	if env != nil {
		cmd.Env = env
	}

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, derrors.NewExecutionError(tool, fmt.Sprintf("timeout after %v", timeout), err)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if stderr := strings.TrimSpace(string(exitErr.Stderr)); stderr != "" {
				return nil, derrors.NewExecutionError(tool, stderr, err)
			}
		}
		return nil, derrors.NewExecutionError(tool, "", err)
	}

	if len(output) > MaxOutputSize {
		return output[:MaxOutputSize], nil
	}
	return output, nil
}

// ParseOutput turns command output into suggestions, one per non-blank line.
// A tab splits a line into ID and label. The result is never nil.
func ParseOutput(output []byte) []Suggestion {
	suggestions := []Suggestion{}

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		id, label, found := strings.Cut(line, "\t")
		if !found || strings.TrimSpace(label) == "" {
			label = id
		}
		suggestions = append(suggestions, Suggestion{ID: id, Label: strings.TrimSpace(label)})
	}

	return suggestions
}
