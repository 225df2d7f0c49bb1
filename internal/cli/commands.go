package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/NikitaCOEUR/cmdsuggest/internal/commands"
	"github.com/NikitaCOEUR/cmdsuggest/internal/console"
	"github.com/NikitaCOEUR/cmdsuggest/internal/status"
	"github.com/NikitaCOEUR/cmdsuggest/internal/terminal"
)

// Host is a terminal that pumps its own input until the session ends
type Host interface {
	terminal.Terminal
	Run(ctx context.Context) error
}

// RunParams contains parameters for the Run command
type RunParams struct {
	ConfigPath string
	LogLevel   string
}

// Run starts an interactive session on the process terminal
func Run(ctx context.Context, params RunParams) error {
	tty, err := terminal.Open()
	if err != nil {
		return err
	}
	defer func() { _ = tty.Close() }()

	return Session(ctx, params, tty)
}

// Session runs the prompt on host until the input ends or the exit command
// is accepted
func Session(ctx context.Context, params RunParams, host Host) error {
	path, cfg, err := loadConfig(params.ConfigPath)
	if err != nil {
		return err
	}
	if params.LogLevel != "" {
		cfg.LogLevel = params.LogLevel
	}
	if err := checkConfig(path, cfg); err != nil {
		return err
	}

	log, closer, err := sessionLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	log = log.With("session", fmt.Sprintf("%d-%d", os.Getpid(), time.Now().Unix()))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	set, err := commands.New(cfg, log, cancel)
	if err != nil {
		return err
	}

	log.Info().Str("config", path).Strs("commands", set.Names()).Msg("Session started")

	ctrl := console.New(set.Options())
	detach := ctrl.Activate(ctx, host)
	runErr := host.Run(ctx)
	detach()
	ctrl.Wait()

	host.Writeln("")
	log.Info().Strs("history", ctrl.History()).Msg("Session ended")

	return runErr
}

// Commands lists the commands of the configuration
func Commands(configPath string) error {
	_, cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	fmt.Println(status.RenderCommands(status.CollectCommands(cfg)))
	return nil
}
