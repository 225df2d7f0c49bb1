// Package main is the entry point for the cmdsuggest CLI application.
package main

import (
	"context"
	"fmt"
	"os"

	sgcli "github.com/NikitaCOEUR/cmdsuggest/internal/cli"
	"github.com/NikitaCOEUR/cmdsuggest/internal/trace"
	"github.com/NikitaCOEUR/cmdsuggest/pkg/version"
	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	run := func(ctx context.Context, cmd *cli.Command) error {
		return sgcli.Run(ctx, sgcli.RunParams{
			ConfigPath: cmd.String("config"),
			LogLevel:   cmd.String("log-level"),
		})
	}

	return &cli.Command{
		Name:                  "cmdsuggest",
		Usage:                 "Interactive command prompt with live argument suggestions",
		Version:               version.String(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error), overrides the config",
				Sources: cli.EnvVars("CMDSUGGEST_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (default: $XDG_CONFIG_HOME/cmdsuggest/config.yml)",
				Sources: cli.EnvVars("CMDSUGGEST_CONFIG"),
			},
		},
		Action: run,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Start an interactive session (default)",
				Action: run,
			},
			{
				Name:  "commands",
				Usage: "List the commands offered at the prompt",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return sgcli.Commands(cmd.String("config"))
				},
			},
			{
				Name:  "status",
				Usage: "Show the resolved configuration",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return sgcli.Status(cmd.String("config"))
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := cmd.String("config")
					if cmd.Args().Len() > 0 {
						configPath = cmd.Args().Get(0)
					}
					return sgcli.Validate(configPath)
				},
			},
			{
				Name:  "schema",
				Usage: "Display or export the JSON Schema for configuration files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the schema to this file instead of stdout",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return sgcli.Schema(outputPath)
				},
			},
		},
	}
}

func main() {
	stopTrace := trace.Init()

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		stopTrace()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	stopTrace()
}
