// Package completion holds the argument buffer of the line being typed and
// the engine that fetches, filters and pages suggestions for its last
// argument.
package completion

import (
	"context"

	"github.com/NikitaCOEUR/cmdsuggest/internal/terminal"
)

// Suggestion is a candidate value for the active argument.
// A non-empty Error marks a fault surfaced as a pseudo-suggestion.
type Suggestion struct {
	ID         string
	Label      string // Defaults to ID
	Error      string
	Masked     bool // Displayed as '*' while filtering uses the real label
	ShowAlways bool // Kept whatever the search text

	// OnAccept is called when the suggestion is accepted and may return a
	// revised suggestion; nil keeps the original
	OnAccept func(ctx context.Context) (*Suggestion, error)

	// Extra carries application fields copied onto the accepted argument
	Extra map[string]any
}

// Text returns what a dropdown row shows: the error if any, else the label
func (s Suggestion) Text() string {
	if s.Error != "" {
		return s.Error
	}
	return s.Label
}

// Provider returns the suggestions for the last argument of args.
// Returning a nil slice with a nil error means the argument takes free-form
// input and is not validated; an empty non-nil slice means nothing matches.
type Provider func(ctx context.Context, args *Args, term terminal.Terminal) ([]Suggestion, error)

// CommandLister returns the names of the available commands
type CommandLister func(ctx context.Context) ([]string, error)

// FromStrings wraps plain values as suggestions. A nil input stays nil.
func FromStrings(values []string) []Suggestion {
	if values == nil {
		return nil
	}
	suggestions := make([]Suggestion, 0, len(values))
	for _, v := range values {
		suggestions = append(suggestions, Suggestion{ID: v, Label: v})
	}
	return suggestions
}

// Strings adapts a provider of plain values
func Strings(fn func(ctx context.Context, args *Args, term terminal.Terminal) ([]string, error)) Provider {
	return func(ctx context.Context, args *Args, term terminal.Terminal) ([]Suggestion, error) {
		values, err := fn(ctx, args, term)
		if err != nil {
			return nil, err
		}
		return FromStrings(values), nil
	}
}

// StaticCommands returns a lister for a fixed set of names
func StaticCommands(names ...string) CommandLister {
	return func(context.Context) ([]string, error) {
		out := make([]string, len(names))
		copy(out, names)
		return out, nil
	}
}
