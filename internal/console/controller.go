// Package console turns raw keystrokes into an edited command line with a
// live suggestion dropdown, and runs the command once every argument is
// valid.
package console

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NikitaCOEUR/cmdsuggest/internal/ansi"
	"github.com/NikitaCOEUR/cmdsuggest/internal/completion"
	"github.com/NikitaCOEUR/cmdsuggest/internal/derrors"
	"github.com/NikitaCOEUR/cmdsuggest/internal/history"
	"github.com/NikitaCOEUR/cmdsuggest/internal/logger"
	"github.com/NikitaCOEUR/cmdsuggest/internal/spinner"
	"github.com/NikitaCOEUR/cmdsuggest/internal/terminal"
	"github.com/NikitaCOEUR/cmdsuggest/internal/timing"
	"github.com/NikitaCOEUR/cmdsuggest/internal/trace"
)

// Handler runs a validated command line
type Handler func(ctx context.Context, args *completion.Args, term terminal.Terminal) error

// Options configures a Controller
type Options struct {
	// Commands maps command names to their handlers
	Commands map[string]Handler
	// SuggestCommands lists the command names; defaults to the sorted keys
	// of Commands
	SuggestCommands completion.CommandLister
	// Suggestions maps command names to argument providers
	Suggestions map[string]completion.Provider

	HistorySize int
	// HistoryNavigation binds Left and Right to the history
	HistoryNavigation bool
	WindowSize        int
	SpinnerInterval   time.Duration
	Logger            *logger.Logger
}

// Controller owns the line being typed. It is driven by keystrokes and
// redraws the prompt after each of them.
type Controller struct {
	commands   map[string]Handler
	engine     *completion.Engine
	history    *history.History
	spinner    *spinner.Spinner
	windowSize int
	navigate   bool
	log        *logger.Logger

	term *lockedTerminal
	args *completion.Args

	// current is the raw line; shadow keeps it while browsing history
	current  string
	shadow   string
	browsing bool

	busy atomic.Bool
	wg   sync.WaitGroup

	// spun is set once a frame was drawn since the spinner started
	spun atomic.Bool
}

// New creates a controller. It does nothing until activated.
func New(opts Options) *Controller {
	commands := opts.Commands
	if commands == nil {
		commands = make(map[string]Handler)
	}
	lister := opts.SuggestCommands
	if lister == nil {
		lister = completion.StaticCommands(completion.CommandNames(commands)...)
	}
	windowSize := opts.WindowSize
	if windowSize <= 0 {
		windowSize = completion.DefaultWindowSize
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	c := &Controller{
		commands:   commands,
		engine:     completion.NewEngine(lister, opts.Suggestions),
		history:    history.New(opts.HistorySize),
		windowSize: windowSize,
		navigate:   opts.HistoryNavigation,
		log:        log,
		args:       completion.NewArgs(),
	}
	c.spinner = spinner.New(opts.SpinnerInterval, c.drawFrame)
	c.engine.Subscribe(c.render)
	return c
}

// Activate attaches the controller to term, draws the first prompt and
// starts listening for keystrokes. Keystrokes arriving while a previous one
// is still processed are dropped. The returned function detaches it.
func (c *Controller) Activate(ctx context.Context, term terminal.Terminal) func() {
	c.term = &lockedTerminal{term: term}

	c.busy.Store(true)
	c.suggest(ctx)
	c.busy.Store(false)

	return term.OnData(func(data string) {
		if !c.busy.CompareAndSwap(false, true) {
			c.log.Debug().Str("data", data).Msg("Input dropped while busy")
			return
		}
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			defer c.busy.Store(false)
			c.process(ctx, data)
		}()
	})
}

// HandleData processes one keystroke synchronously. It returns false when
// the keystroke was dropped because another one is in flight or the
// controller is not active.
func (c *Controller) HandleData(ctx context.Context, data string) bool {
	if c.term == nil {
		return false
	}
	if !c.busy.CompareAndSwap(false, true) {
		c.log.Debug().Str("data", data).Msg("Input dropped while busy")
		return false
	}
	defer c.busy.Store(false)

	c.process(ctx, data)
	return true
}

// Wait blocks until the keystrokes dispatched by the terminal are processed
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Busy reports whether a keystroke is being processed
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// Line returns the raw line as typed
func (c *Controller) Line() string {
	return c.current
}

// History returns the submitted lines, oldest first
func (c *Controller) History() []string {
	return c.history.Entries()
}

func (c *Controller) process(ctx context.Context, data string) {
	key := ansi.ParseKey(data)
	c.log.Debug().Str("key", key.String()).Msg("Key received")
	defer trace.Region(ctx, "key:"+key.String())()

	switch key {
	case ansi.KeyEnter:
		timer := timing.NewTimer()
		c.accept(ctx)
		timer.Mark("accept")
		ran := c.trigger(ctx)
		timer.Mark("command")
		if ran {
			c.current = ""
			c.shadow = ""
			c.browsing = false
			c.suggest(ctx)
			timer.Mark("suggest")
		}
		if c.log.Enabled("debug") {
			c.log.Debug().Bool("ran", ran).Str("timings", timer.Summary()).Msg("Line submitted")
		}
		return
	case ansi.KeyTab:
		c.accept(ctx)
		return
	case ansi.KeyEscape:
		return
	case ansi.KeyLeft:
		if !c.navigate {
			return
		}
		if !c.browsing {
			c.shadow = c.current
			c.browsing = true
		}
		if entry, ok := c.history.Previous(); ok {
			c.current = entry
		}
	case ansi.KeyRight:
		if !c.navigate || !c.browsing {
			return
		}
		if entry, ok := c.history.Next(); ok {
			c.current = entry
		} else {
			c.current = c.shadow
			c.browsing = false
		}
	case ansi.KeyUp:
		c.engine.Prev()
		return
	case ansi.KeyDown:
		c.engine.Next()
		return
	case ansi.KeyBackspace:
		if runes := []rune(c.current); len(runes) > 0 {
			c.current = string(runes[:len(runes)-1])
		}
	case ansi.KeyDelete:
		c.current = c.args.RemoveLast()
	default:
		if c.engine.Done() {
			return
		}
		switch data {
		case " ":
			if !c.args.InQuote() && !c.args.Quoted() {
				c.accept(ctx)
				return
			}
		case `"`:
			if c.args.InQuote() {
				c.accept(ctx)
				return
			}
			if c.args.HasInput() && !c.args.Quoted() {
				return
			}
		}
		c.current += data
	}

	c.suggest(ctx)
}

// suggest re-parses the line and refreshes the suggestions
func (c *Controller) suggest(ctx context.Context) {
	defer trace.Region(ctx, "suggest")()
	c.args.Parse(c.current)

	start := time.Now()
	c.startSpinner()
	c.engine.Suggest(ctx, c.args, c.term)
	c.stopSpinner()

	c.log.Debug().
		Str("command", c.args.Command()).
		Int("suggestions", c.engine.Len()).
		Bool("done", c.engine.Done()).
		Dur("duration", time.Since(start)).
		Msg("Suggestions fetched")
	if s := c.engine.Current(); s != nil && s.Error != "" {
		c.log.Warn().Str("command", c.args.Command()).Str("error", s.Error).Msg("Suggestion provider failed")
	}
}

// accept replaces the active argument with the selected suggestion
func (c *Controller) accept(ctx context.Context) {
	s := c.engine.Current()
	if s == nil || s.Error != "" {
		return
	}

	c.startSpinner()
	c.current = c.args.Replace(ctx, *s)
	c.stopSpinner()

	if last := c.args.Last(); last.Error != "" {
		c.log.Warn().Str("id", s.ID).Str("error", last.Error).Msg("Accept hook failed")
	}
	c.suggest(ctx)
}

// trigger runs the handler of the line when it is complete. It reports
// whether the handler was run.
func (c *Controller) trigger(ctx context.Context) bool {
	if !c.engine.Done() {
		return false
	}

	command := c.args.Command()
	defer trace.Region(ctx, "command")()
	trace.Log(ctx, "command", command)
	c.term.Write(ansi.CursorNextLine)
	c.history.Push(strings.TrimSpace(c.current))

	start := time.Now()
	c.startSpinner()
	err := c.run(ctx, command)
	c.spinner.Stop()

	if err != nil {
		c.log.Warn().Str("command", command).Err(err).Msg("Command failed")
		c.term.Writeln(ansi.Colorize(err.Error(), ansi.FgRed))
	} else {
		c.log.Debug().Str("command", command).Dur("duration", time.Since(start)).Msg("Command executed")
	}
	return true
}

func (c *Controller) run(ctx context.Context, command string) (err error) {
	handler, ok := c.commands[command]
	if !ok || handler == nil {
		return derrors.NewUnknownCommandError(command)
	}

	defer func() {
		if r := recover(); r != nil {
			err = derrors.NewHandlerError(command, "", derrors.FromPanic(r))
		}
	}()
	return handler(ctx, c.args, c.term)
}

func (c *Controller) startSpinner() {
	c.spun.Store(false)
	c.spinner.Start()
}

// stopSpinner halts the spinner and redraws over the last frame if one was
// drawn
func (c *Controller) stopSpinner() {
	c.spinner.Stop()
	if c.spun.Load() {
		c.render(c.engine.Current())
	}
}

func (c *Controller) drawFrame(frame string) {
	c.spun.Store(true)
	c.term.Write(ansi.Colorize(frame, ansi.FgLightGreen) + ansi.CursorBackward(1))
}
