// Package status collects and displays what a cmdsuggest session offers:
// the loaded configuration and its commands.
package status

import (
	"strings"

	"github.com/NikitaCOEUR/cmdsuggest/internal/config"
	"github.com/NikitaCOEUR/cmdsuggest/pkg/version"
)

// Builtins describes the commands every session provides
var Builtins = []CommandInfo{
	{
		Name:        config.HelpCommand,
		Description: "List the commands, or describe one",
		Args:        []ArgInfo{{Name: "command", Source: "values", Detail: "command names"}},
		Builtin:     true,
	},
	{
		Name:        config.ExitCommand,
		Description: "End the session",
		Builtin:     true,
	},
}

// Collect gathers the status of cfg, loaded from path ("" when no file was
// found)
func Collect(path string, cfg *config.Config) *Data {
	data := &Data{
		Version:           version.Version,
		ConfigPath:        path,
		ConfigFound:       path != "",
		LogLevel:          cfg.LogLevel,
		LogFile:           cfg.LogFile,
		HistorySize:       cfg.HistorySize,
		WindowSize:        cfg.WindowSize,
		SpinnerInterval:   cfg.SpinnerInterval,
		HistoryNavigation: cfg.HistoryNavigation,
	}
	data.Commands = CollectCommands(cfg)
	return data
}

// CollectCommands lists the configured commands, sorted, followed by the
// built-in ones
func CollectCommands(cfg *config.Config) []CommandInfo {
	commands := make([]CommandInfo, 0, len(cfg.Commands)+len(Builtins))

	for _, name := range cfg.CommandNames() {
		cmd := cfg.Commands[name]
		info := CommandInfo{
			Name:        name,
			Description: cmd.Description,
			Args:        make([]ArgInfo, 0, len(cmd.Args)),
		}
		for _, arg := range cmd.Args {
			info.Args = append(info.Args, collectArg(arg))
		}
		commands = append(commands, info)
	}

	return append(commands, Builtins...)
}

func collectArg(arg config.ArgConfig) ArgInfo {
	info := ArgInfo{
		Name:       arg.Name,
		Masked:     arg.Masked,
		ShowAlways: arg.ShowAlways,
		OnAccept:   arg.OnAccept != "",
	}

	switch {
	case arg.Exec != "":
		info.Source = "exec"
		info.Detail = arg.Exec
	case len(arg.Values) > 0:
		info.Source = "values"
		if arg.Masked {
			info.Detail = strings.Repeat("*", 3)
		} else {
			info.Detail = strings.Join(arg.Values, ", ")
		}
	default:
		info.Source = "free"
	}
	return info
}
