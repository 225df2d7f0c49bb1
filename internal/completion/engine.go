package completion

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/NikitaCOEUR/cmdsuggest/internal/derrors"
	"github.com/NikitaCOEUR/cmdsuggest/internal/terminal"
)

// clearing is emitted before each fetch so the display blanks out while the
// provider runs.
var clearing = Suggestion{Label: " "}

// Engine fetches and filters the suggestions for the last argument of a
// buffer and tracks the selected one. Every change of selection is emitted to
// the subscribers.
//
// Engine is driven by a single goroutine at a time; the mutex only guards the
// state read by renderers.
type Engine struct {
	mu        sync.RWMutex
	commands  CommandLister
	providers map[string]Provider
	listeners []func(*Suggestion)

	list   []Suggestion
	free   bool
	index  int
	masked bool
}

// NewEngine creates an engine listing commands with lister and fetching
// argument suggestions from providers, keyed by command name
func NewEngine(lister CommandLister, providers map[string]Provider) *Engine {
	if lister == nil {
		lister = StaticCommands()
	}
	if providers == nil {
		providers = make(map[string]Provider)
	}
	return &Engine{
		commands:  lister,
		providers: providers,
		list:      []Suggestion{},
	}
}

// Subscribe registers fn to receive the selected suggestion (nil when
// nothing is selectable) after every change
func (e *Engine) Subscribe(fn func(*Suggestion)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) emit(s *Suggestion) {
	e.mu.RLock()
	listeners := e.listeners
	e.mu.RUnlock()
	for _, fn := range listeners {
		fn(s)
	}
}

// Done reports whether the last argument is free-form: no provider applied,
// so any input is accepted as is
func (e *Engine) Done() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.free
}

// Current returns a copy of the selected suggestion, or nil
func (e *Engine) Current() *Suggestion {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current()
}

func (e *Engine) current() *Suggestion {
	if e.index < 0 || e.index >= len(e.list) {
		return nil
	}
	s := e.list[e.index]
	return &s
}

// Masked reports whether any fetched suggestion is masked
func (e *Engine) Masked() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.masked
}

// Len returns the number of suggestions left after filtering
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.list)
}

// Index returns the selection cursor
func (e *Engine) Index() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index
}

// Suggestions returns a copy of the filtered suggestions, nil in the free
// state
func (e *Engine) Suggestions() []Suggestion {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.free {
		return nil
	}
	out := make([]Suggestion, len(e.list))
	copy(out, e.list)
	return out
}

// Suggest replaces the suggestions with those for the last argument of args.
// While the command name is typed the commands are listed; after that the
// provider of the command is asked. Faults never escape: they become a single
// error suggestion.
func (e *Engine) Suggest(ctx context.Context, args *Args, term terminal.Terminal) {
	e.mu.Lock()
	e.list = []Suggestion{}
	e.free = false
	e.mu.Unlock()

	c := clearing
	e.emit(&c)

	list, err := e.fetch(ctx, args, term)

	e.mu.Lock()
	if err != nil {
		list = []Suggestion{{ID: "error", Error: err.Error(), Masked: e.masked}}
	} else {
		e.masked = false
		for _, s := range list {
			if s.Masked {
				e.masked = true
				break
			}
		}
	}

	if list == nil {
		e.free = true
		e.list = nil
	} else {
		e.list = filter(list, args.Search())
		e.index = min(max(0, len(e.list)-1), e.index)
	}
	current := e.current()
	e.mu.Unlock()

	e.emit(current)
}

func (e *Engine) fetch(ctx context.Context, args *Args, term terminal.Terminal) (list []Suggestion, err error) {
	command := args.Command()
	defer func() {
		if r := recover(); r != nil {
			list, err = nil, derrors.NewProviderError(command, "", derrors.FromPanic(r))
		}
	}()

	if args.Len() < 2 {
		names, err := e.commands(ctx)
		if err != nil {
			return nil, derrors.NewProviderError(command, "", err)
		}
		if names == nil {
			names = []string{}
		}
		return FromStrings(names), nil
	}

	provider, ok := e.providers[command]
	if !ok || provider == nil {
		return nil, nil
	}
	list, err = provider(ctx, args, term)
	if err != nil {
		return nil, derrors.NewProviderError(command, "", err)
	}
	for i := range list {
		if list[i].Label == "" {
			list[i].Label = list[i].ID
		}
	}
	return list, nil
}

// filter keeps suggestions matching search, plus errors and ShowAlways
// entries. The result is never nil.
func filter(list []Suggestion, search string) []Suggestion {
	out := make([]Suggestion, 0, len(list))
	for _, s := range list {
		if search == "" || s.ShowAlways || s.Error != "" ||
			strings.Contains(strings.ToLower(s.Label), search) {
			out = append(out, s)
		}
	}
	return out
}

// Prev moves the selection up, wrapping around
func (e *Engine) Prev() {
	e.move(-1)
}

// Next moves the selection down, wrapping around
func (e *Engine) Next() {
	e.move(1)
}

func (e *Engine) move(delta int) {
	e.mu.Lock()
	n := len(e.list)
	if n == 0 {
		e.mu.Unlock()
		return
	}
	e.index = ((e.index+delta)%n + n) % n
	current := e.current()
	e.mu.Unlock()

	e.emit(current)
}

// CommandNames returns the sorted keys of a handler or provider map
func CommandNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
