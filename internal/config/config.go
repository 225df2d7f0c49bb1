// Package config handles loading and parsing of cmdsuggest configuration files.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/cmdsuggest/internal/derrors"
)

//go:embed defaults.yml
var defaultsYAML []byte

const (
	// AppName is the directory name under the user config home
	AppName = "cmdsuggest"
	// ConfigName is the name of the default config file
	ConfigName = "config.yml"
	// DefaultEnvPrefix is the prefix of environment overrides
	DefaultEnvPrefix = "CMDSUGGEST_"
)

// SupportedExtensions lists the config formats, by file extension
var SupportedExtensions = []string{".yml", ".yaml", ".toml", ".json"}

// ArgConfig describes one positional argument of a command
type ArgConfig struct {
	Name       string   `koanf:"name"`
	Values     []string `koanf:"values"`      // Static values
	Exec       string   `koanf:"exec"`        // Shell command printing one value per line
	Masked     bool     `koanf:"masked"`      // Values are drawn as '*'
	ShowAlways bool     `koanf:"show_always"` // Values are never filtered out
	OnAccept   string   `koanf:"on_accept"`   // Template rewriting the accepted value
}

// Free reports whether the argument takes any input
func (a ArgConfig) Free() bool {
	return len(a.Values) == 0 && a.Exec == ""
}

// CommandConfig describes a session command
type CommandConfig struct {
	Description string      `koanf:"description"`
	Args        []ArgConfig `koanf:"args"`
	Output      string      `koanf:"output"` // Template printed when the command runs
}

// Config represents a cmdsuggest configuration
type Config struct {
	LogLevel          string                   `koanf:"log_level"`
	LogFile           string                   `koanf:"log_file"`
	HistorySize       int                      `koanf:"history_size"`
	WindowSize        int                      `koanf:"window_size"`
	SpinnerInterval   time.Duration            `koanf:"spinner_interval"`
	HistoryNavigation bool                     `koanf:"history_navigation"`
	Commands          map[string]CommandConfig `koanf:"commands"`

	// ConfigDir is the directory of the loaded file, empty without one
	ConfigDir string `koanf:"-"`
}

// Loader reads the configuration layers: embedded defaults, then the file,
// then environment overrides.
type Loader struct {
	envPrefix string
}

// Option configures a Loader
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// New creates a new config loader
func New(opts ...Option) *Loader {
	l := &Loader{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load builds the configuration. An empty path loads the defaults and the
// environment only.
func (l *Loader) Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configDir := ""
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, derrors.NewConfigurationError(path, "", err)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, derrors.NewConfigurationError(path, "config file not found", err)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, derrors.NewConfigurationError(path, "failed to load config", err)
		}
		if abs, err := filepath.Abs(path); err == nil {
			configDir = filepath.Dir(abs)
		}
	}

	// CMDSUGGEST_LOG_LEVEL -> log_level
	prefix := l.envPrefix
	transform := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, prefix))
	}
	if err := k.Load(env.Provider(prefix, ".", transform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := &Config{
		Commands: make(map[string]CommandConfig),
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to unmarshal config", err)
	}
	cfg.ConfigDir = configDir

	return cfg, nil
}

// Load reads path with the default loader
func Load(path string) (*Config, error) {
	return New().Load(path)
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// DefaultPath returns the path of the user config file
func DefaultPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, AppName, ConfigName), nil
}

// Resolve picks the file to load: explicit when set, else the default path
// when that file exists. It returns "" when there is nothing to load.
func Resolve(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	path, err := DefaultPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return path, nil
}

// CommandNames returns the configured command names, sorted
func (c *Config) CommandNames() []string {
	names := make([]string, 0, len(c.Commands))
	for name := range c.Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
