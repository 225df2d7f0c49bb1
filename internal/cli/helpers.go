package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/cmdsuggest/internal/config"
	"github.com/NikitaCOEUR/cmdsuggest/internal/logger"
)

// loadConfig resolves and loads the configuration. The returned path is ""
// when no file was found and the defaults are in use.
func loadConfig(explicit string) (string, *config.Config, error) {
	path, err := config.Resolve(explicit)
	if err != nil {
		return "", nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return "", nil, err
	}
	cfg.ExpandPaths()

	return path, cfg, nil
}

// checkConfig fails with a summary when cfg does not validate
func checkConfig(path string, cfg *config.Config) error {
	result := cfg.Validate()
	if result.Valid {
		return nil
	}

	fields := make([]string, 0, len(result.Errors))
	for _, validationErr := range result.Errors {
		fields = append(fields, validationErr.Field)
	}
	if path == "" {
		path = "environment"
	}
	return fmt.Errorf("invalid configuration in %s (%s), run 'cmdsuggest validate' for details",
		path, strings.Join(fields, ", "))
}

// sessionLogger opens the session log. The terminal is in raw mode while a
// session runs, so entries go to the log file or nowhere.
func sessionLogger(level, path string) (*logger.Logger, io.Closer, error) {
	if path == "" {
		return logger.New(level, io.Discard), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logger.New(level, f), f, nil
}
