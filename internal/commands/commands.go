// Package commands builds the handlers and suggestion providers of a session
// from the configured command definitions.
package commands

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/NikitaCOEUR/cmdsuggest/internal/completion"
	"github.com/NikitaCOEUR/cmdsuggest/internal/config"
	"github.com/NikitaCOEUR/cmdsuggest/internal/console"
	"github.com/NikitaCOEUR/cmdsuggest/internal/derrors"
	"github.com/NikitaCOEUR/cmdsuggest/internal/logger"
	"github.com/NikitaCOEUR/cmdsuggest/internal/status"
	"github.com/NikitaCOEUR/cmdsuggest/internal/terminal"
)

// Shell runs the exec value sources
var Shell = []string{"sh", "-c"}

// Set holds the handlers and providers built from a configuration
type Set struct {
	cfg  *config.Config
	log  *logger.Logger
	exit func()

	outputs   map[string]*template.Template
	handlers  map[string]console.Handler
	providers map[string]completion.Provider
	infos     []status.CommandInfo
}

// New builds the command set of cfg. exit is called by the exit command.
func New(cfg *config.Config, log *logger.Logger, exit func()) (*Set, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &Set{
		cfg:       cfg,
		log:       log,
		exit:      exit,
		outputs:   make(map[string]*template.Template),
		handlers:  make(map[string]console.Handler),
		providers: make(map[string]completion.Provider),
		infos:     status.CollectCommands(cfg),
	}

	for _, name := range cfg.CommandNames() {
		cmd := cfg.Commands[name]
		if cmd.Output != "" {
			tmpl, err := config.ParseTemplate(name, cmd.Output)
			if err != nil {
				return nil, derrors.NewValidationError("commands/"+name+"/output", "", err)
			}
			s.outputs[name] = tmpl
		}
		s.handlers[name] = s.handler(name)
		if len(cmd.Args) > 0 {
			s.providers[name] = s.provider(name, cmd)
		}
	}

	s.handlers[config.HelpCommand] = s.help
	s.providers[config.HelpCommand] = completion.Strings(s.helpValues)
	s.handlers[config.ExitCommand] = s.exitSession

	log.Debug().Strs("commands", s.Names()).Msg("Command set built")
	return s, nil
}

// Names returns every command name, sorted
func (s *Set) Names() []string {
	return completion.CommandNames(s.handlers)
}

// Options returns the console options of the session
func (s *Set) Options() console.Options {
	return console.Options{
		Commands:          s.handlers,
		Suggestions:       s.providers,
		HistorySize:       s.cfg.HistorySize,
		HistoryNavigation: s.cfg.HistoryNavigation,
		WindowSize:        s.cfg.WindowSize,
		SpinnerInterval:   s.cfg.SpinnerInterval,
		Logger:            s.log,
	}
}

// data returns the template variables for the line held by args
func (s *Set) data(args *completion.Args) map[string]any {
	data := s.cfg.TemplateVars()
	cmd := s.cfg.Commands[args.Command()]

	values := make([]string, 0, args.Len())
	named := make(map[string]string, len(cmd.Args))
	ids := make(map[string]string, len(cmd.Args))
	args.Each(func(i int, arg completion.Argument) {
		if i == 0 || (i == args.Len()-1 && arg.Label == "") {
			return
		}
		values = append(values, arg.Label)
		if i-1 < len(cmd.Args) {
			name := cmd.Args[i-1].Name
			named[name] = arg.Label
			ids[name] = arg.ID
			if arg.ID == "" {
				ids[name] = arg.Label
			}
		}
	})

	data["Command"] = args.Command()
	data["Args"] = values
	data["Named"] = named
	data["IDs"] = ids
	return data
}

func (s *Set) handler(name string) console.Handler {
	return func(_ context.Context, args *completion.Args, term terminal.Terminal) error {
		tmpl, ok := s.outputs[name]
		if !ok {
			writeLines(term, displayLine(args))
			return nil
		}

		var b strings.Builder
		if err := tmpl.Execute(&b, s.data(args)); err != nil {
			return derrors.NewHandlerError(name, "failed to render output", err)
		}
		writeLines(term, b.String())
		return nil
	}
}

// displayLine returns the arguments after the command as drawn, secrets
// masked
func displayLine(args *completion.Args) string {
	parts := make([]string, 0, args.Len())
	args.Each(func(i int, arg completion.Argument) {
		if i > 0 && arg.Label != "" {
			parts = append(parts, arg.Display())
		}
	})
	return strings.Join(parts, " ")
}

// writeLines writes text line by line, the raw terminal needing explicit
// line breaks
func writeLines(term terminal.Terminal, text string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		term.Writeln(line)
	}
}

func (s *Set) provider(name string, cmd config.CommandConfig) completion.Provider {
	return func(ctx context.Context, args *completion.Args, _ terminal.Terminal) ([]completion.Suggestion, error) {
		pos := args.Len() - 2
		if pos >= len(cmd.Args) {
			return nil, nil
		}
		arg := cmd.Args[pos]

		list, err := s.values(ctx, name, arg, args)
		if err != nil || list == nil {
			return nil, err
		}

		for i := range list {
			list[i].Masked = arg.Masked
			list[i].ShowAlways = arg.ShowAlways
			if arg.OnAccept != "" {
				list[i].OnAccept = s.onAccept(name, arg, list[i], args)
			}
		}
		return list, nil
	}
}

// values returns the candidate values of arg, nil when it takes free input
func (s *Set) values(ctx context.Context, command string, arg config.ArgConfig, args *completion.Args) ([]completion.Suggestion, error) {
	if arg.Exec == "" {
		if len(arg.Values) == 0 {
			return nil, nil
		}
		return completion.FromStrings(append([]string(nil), arg.Values...)), nil
	}

	script, err := config.Render(arg.Name, arg.Exec, s.data(args))
	if err != nil {
		return nil, err
	}

	cmdline := append(append([]string(nil), Shell[1:]...), script)
	output, err := completion.ExecWithTimeout(ctx, completion.DefaultCommandTimeout, nil, Shell[0], cmdline...)
	if err != nil {
		s.log.Debug().Str("command", command).Str("arg", arg.Name).Err(err).Msg("Value command failed")
		return nil, err
	}

	list := completion.ParseOutput(output)
	s.log.Debug().Str("command", command).Str("arg", arg.Name).Int("values", len(list)).Msg("Value command executed")
	return list, nil
}

func (s *Set) onAccept(command string, arg config.ArgConfig, accepted completion.Suggestion, args *completion.Args) func(context.Context) (*completion.Suggestion, error) {
	return func(context.Context) (*completion.Suggestion, error) {
		data := s.data(args)
		data["Value"] = accepted.Label
		data["ID"] = accepted.ID

		out, err := config.Render(arg.Name, arg.OnAccept, data)
		if err != nil {
			return nil, err
		}
		out = strings.TrimSpace(out)
		if out == "" {
			return nil, fmt.Errorf("%s %s: accepted value rewritten to nothing", command, arg.Name)
		}
		return &completion.Suggestion{ID: accepted.ID, Label: out, Masked: arg.Masked}, nil
	}
}
