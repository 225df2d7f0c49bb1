package completion

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/NikitaCOEUR/cmdsuggest/internal/derrors"
)

// Argument is one token of the input line plus its edit and validation state
type Argument struct {
	Label   string
	Length  int // Rune count of Label
	InQuote bool
	Quoted  bool // Set once a quote is seen or an accepted value contains a space

	ID     string
	Masked bool
	Error  string
	Extra  map[string]any
}

// Serialize returns the argument as typed on the line
func (a Argument) Serialize() string {
	if a.Quoted {
		return `"` + a.Label + `"`
	}
	return a.Label
}

// Display returns the argument as drawn: masked with '*' when Masked
func (a Argument) Display() string {
	label := a.Label
	if a.Masked {
		label = strings.Repeat("*", utf8.RuneCountInString(label))
	}
	if a.Quoted {
		return `"` + label + `"`
	}
	return label
}

// withMetadata returns a fresh record for re-parsing that keeps the
// validation metadata of a.
func (a Argument) withMetadata() Argument {
	return Argument{
		ID:     a.ID,
		Masked: a.Masked,
		Error:  a.Error,
		Extra:  a.Extra,
	}
}

// merge applies an accepted suggestion onto a.
//
//	ID         non-empty value from s wins
//	Error      always taken from s, a successful accept clears it
//	Label      always taken from s
//	Masked     true wins, false keeps the previous value
//	Extra      key-wise, keys from s win
//	Quoted     never goes back to false
//	InQuote    reset
func (a *Argument) merge(s Suggestion) {
	if s.ID != "" {
		a.ID = s.ID
	}
	a.Error = s.Error
	a.Label = s.Label
	a.Masked = a.Masked || s.Masked
	if len(s.Extra) > 0 {
		extra := make(map[string]any, len(a.Extra)+len(s.Extra))
		for k, v := range a.Extra {
			extra[k] = v
		}
		for k, v := range s.Extra {
			extra[k] = v
		}
		a.Extra = extra
	}
	a.InQuote = false
	a.Quoted = a.Quoted || strings.Contains(a.Label, " ")
	a.Length = utf8.RuneCountInString(a.Label)
}

// Args is the tokenized view of the input line. The last argument is the one
// being edited and suggested for.
type Args struct {
	args []Argument
}

// NewArgs creates an empty buffer
func NewArgs() *Args {
	return &Args{}
}

// ParseArgs creates a buffer holding the tokens of text
func ParseArgs(text string) *Args {
	a := NewArgs()
	a.Parse(text)
	return a
}

// Len returns the number of arguments, the command included
func (a *Args) Len() int {
	return len(a.args)
}

// Command returns the label of the first argument
func (a *Args) Command() string {
	return a.At(0).Label
}

// Search returns the lowercase label of the last argument
func (a *Args) Search() string {
	return strings.ToLower(a.Last().Label)
}

// HasInput reports whether the last argument has text
func (a *Args) HasInput() bool {
	return a.Last().Label != ""
}

// InQuote reports whether the last argument has an unclosed quote
func (a *Args) InQuote() bool {
	return a.Last().InQuote
}

// Quoted reports whether the last argument is quoted
func (a *Args) Quoted() bool {
	return a.Last().Quoted
}

// At returns a copy of the argument at index, or the zero Argument when out
// of range
func (a *Args) At(index int) Argument {
	if index < 0 || index >= len(a.args) {
		return Argument{}
	}
	return a.args[index]
}

// Last returns a copy of the active argument
func (a *Args) Last() Argument {
	return a.At(len(a.args) - 1)
}

// Labels returns the labels of all arguments
func (a *Args) Labels() []string {
	labels := make([]string, len(a.args))
	for i, arg := range a.args {
		labels[i] = arg.Label
	}
	return labels
}

// Each calls fn for every argument in order
func (a *Args) Each(fn func(index int, arg Argument)) {
	for i, arg := range a.args {
		fn(i, arg)
	}
}

// Parse tokenizes text on spaces outside double quotes, replacing the buffer.
// The trailing token is always kept, even when empty. Tokens inherit the
// metadata of the argument previously at their position.
func (a *Args) Parse(text string) {
	args := make([]Argument, 0, len(a.args)+1)
	arg := a.At(0).withMetadata()
	for _, c := range text {
		switch {
		case c == '"':
			arg.InQuote = !arg.InQuote
			arg.Quoted = true
		case c == ' ' && !arg.InQuote:
			args = append(args, arg)
			arg = a.At(len(args)).withMetadata()
		default:
			arg.Label += string(c)
			arg.Length++
		}
	}
	a.args = append(args, arg)
}

// Replace overwrites the active argument with an accepted suggestion and
// returns the new line. A failing OnAccept turns the suggestion into an error
// suggestion. The line ends with a space unless the result is an error.
func (a *Args) Replace(ctx context.Context, s Suggestion) string {
	if s.OnAccept != nil {
		revised, err := accept(ctx, s)
		switch {
		case err != nil:
			s = Suggestion{ID: s.ID, Error: err.Error()}
		case revised != nil:
			s = *revised
		}
	}
	if s.Label == "" {
		s.Label = s.Error
		if s.Label == "" {
			s.Label = "Error"
		}
	}

	if len(a.args) == 0 {
		a.args = []Argument{{}}
	}
	a.args[len(a.args)-1].merge(s)

	if s.Error != "" {
		return a.String()
	}
	return a.String() + " "
}

func accept(ctx context.Context, s Suggestion) (revised *Suggestion, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = derrors.NewAcceptError(s.ID, "", derrors.FromPanic(r))
		}
	}()
	return s.OnAccept(ctx)
}

// RemoveLast deletes one logical unit: the active argument's text, or, when
// it is already empty, the argument and its predecessor. At least one
// argument always remains.
func (a *Args) RemoveLast() string {
	count := 1
	if !a.HasInput() {
		count = 2
	}
	for i := 0; i < count; i++ {
		if len(a.args) > 1 {
			a.args = a.args[:len(a.args)-1]
		} else {
			a.args = []Argument{{}}
		}
	}

	if a.Last().Length > 0 {
		return a.String() + " "
	}
	return a.String()
}

// String returns the arguments joined as they would be typed
func (a *Args) String() string {
	parts := make([]string, len(a.args))
	for i, arg := range a.args {
		parts[i] = arg.Serialize()
	}
	return strings.Join(parts, " ")
}
