package commands

import (
	"context"

	"github.com/NikitaCOEUR/cmdsuggest/internal/completion"
	"github.com/NikitaCOEUR/cmdsuggest/internal/derrors"
	"github.com/NikitaCOEUR/cmdsuggest/internal/status"
	"github.com/NikitaCOEUR/cmdsuggest/internal/terminal"
)

func (s *Set) help(_ context.Context, args *completion.Args, term terminal.Terminal) error {
	name := args.At(1).Label
	if name == "" {
		writeLines(term, status.RenderCommands(s.infos))
		return nil
	}

	for _, info := range s.infos {
		if info.Name == name {
			writeLines(term, status.RenderCommand(info))
			return nil
		}
	}
	return derrors.NewUnknownCommandError(name)
}

// helpValues suggests the command names for the first argument of help
func (s *Set) helpValues(_ context.Context, args *completion.Args, _ terminal.Terminal) ([]string, error) {
	if args.Len() > 2 {
		return nil, nil
	}
	return s.Names(), nil
}

func (s *Set) exitSession(context.Context, *completion.Args, terminal.Terminal) error {
	if s.exit != nil {
		s.exit()
	}
	return nil
}
