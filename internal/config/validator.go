package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Names of the commands every session provides
const (
	HelpCommand = "help"
	ExitCommand = "exit"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) addError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Validate loads a config file and checks its content
func Validate(path string) (*ValidationResult, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg, err := New().Load(path)
	if err != nil {
		result := &ValidationResult{Valid: true, Errors: []ValidationError{}}
		result.addError("syntax", fmt.Sprintf("Failed to parse config: %v", err))
		return result, nil
	}

	return cfg.Validate(), nil
}

// Validate checks the settings and the command definitions
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		result.addError("log_level", fmt.Sprintf("Unknown log level %q", c.LogLevel))
	}
	if c.HistorySize < 1 {
		result.addError("history_size", "Must be at least 1")
	}
	if c.WindowSize < 1 {
		result.addError("window_size", "Must be at least 1")
	}
	if c.SpinnerInterval <= 0 {
		result.addError("spinner_interval", "Must be a positive duration")
	}

	for _, name := range c.CommandNames() {
		field := "commands/" + name
		if name == HelpCommand || name == ExitCommand {
			result.addError(field, fmt.Sprintf("Name conflict: '%s' is a built-in command", name))
		}
		if strings.ContainsAny(name, " \".") {
			result.addError(field, "Command name contains a space, a quote or a dot")
		}

		cmd := c.Commands[name]
		if _, err := ParseTemplate(name, cmd.Output); err != nil {
			result.addError(field+"/output", err.Error())
		}
		validateArgs(result, field, cmd.Args)
	}

	return result
}

func validateArgs(result *ValidationResult, field string, args []ArgConfig) {
	seen := make(map[string]bool, len(args))
	freeAt := -1

	for i, arg := range args {
		argField := fmt.Sprintf("%s/args/%d", field, i)

		if strings.TrimSpace(arg.Name) == "" {
			result.addError(argField, "Argument name is empty")
		} else if seen[arg.Name] {
			result.addError(argField, fmt.Sprintf("Duplicate argument name '%s'", arg.Name))
		}
		seen[arg.Name] = true

		if freeAt >= 0 {
			result.addError(argField, fmt.Sprintf("Unreachable: argument %d takes free input and ends the line", freeAt))
		}
		if arg.Free() && freeAt < 0 {
			freeAt = i
		}

		if len(arg.Values) > 0 && arg.Exec != "" {
			result.addError(argField, "values and exec are mutually exclusive")
		}
		for j, v := range arg.Values {
			if strings.TrimSpace(v) == "" {
				result.addError(fmt.Sprintf("%s/values/%d", argField, j), "Value is empty")
			}
		}
		if arg.Exec != "" {
			if strings.TrimSpace(arg.Exec) == "" {
				result.addError(argField+"/exec", "Shell command is empty")
			}
			if strings.Contains(arg.Exec, "\n") {
				result.addError(argField+"/exec", "Shell command contains newlines (multiline commands not supported)")
			}
			if _, err := ParseTemplate(arg.Name, arg.Exec); err != nil {
				result.addError(argField+"/exec", err.Error())
			}
		}
		if arg.OnAccept != "" {
			if arg.Free() {
				result.addError(argField+"/on_accept", "on_accept needs values or exec")
			}
			if _, err := ParseTemplate(arg.Name, arg.OnAccept); err != nil {
				result.addError(argField+"/on_accept", err.Error())
			}
		}
	}
}
