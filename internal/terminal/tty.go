package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

const (
	ctrlC = 0x03
	ctrlD = 0x04
)

// ErrNotTerminal is returned by Open when stdin is not a TTY
var ErrNotTerminal = errors.New("stdin is not a terminal")

// TTY is a Terminal reading raw keystrokes from an input file and writing to
// an output stream. Ctrl-C and Ctrl-D end Run.
type TTY struct {
	in       *os.File
	out      io.Writer
	mu       sync.Mutex
	nextID   int
	handlers map[int]func(string)
	state    *term.State
}

// Open puts stdin in raw mode and returns a TTY writing to stdout
func Open() (*TTY, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enable raw mode: %w", err)
	}

	t := NewTTY(os.Stdin, os.Stdout)
	t.state = state
	return t, nil
}

// NewTTY creates a TTY over the given streams without touching terminal modes
func NewTTY(in *os.File, out io.Writer) *TTY {
	return &TTY{
		in:       in,
		out:      out,
		handlers: make(map[int]func(string)),
	}
}

// Write implements Terminal
func (t *TTY) Write(data string) {
	_, _ = io.WriteString(t.out, data)
}

// Writeln implements Terminal. Raw mode does not translate \n, so lines end
// with \r\n.
func (t *TTY) Writeln(data string) {
	t.Write(data + "\r\n")
}

// OnData implements Terminal
func (t *TTY) OnData(fn func(data string)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++
	t.handlers[id] = fn

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.handlers, id)
	}
}

func (t *TTY) dispatch(data string) {
	t.mu.Lock()
	handlers := make([]func(string), 0, len(t.handlers))
	for _, h := range t.handlers {
		handlers = append(handlers, h)
	}
	t.mu.Unlock()

	for _, h := range handlers {
		h(data)
	}
}

// Run reads input chunks and dispatches them to listeners until ctx is done,
// the input ends, or Ctrl-C / Ctrl-D is pressed. A blocked read is abandoned
// when ctx is cancelled.
func (t *TTY) Run(ctx context.Context) error {
	chunks := make(chan string)
	errs := make(chan error, 1)

	go func() {
		buf := make([]byte, 1024)
		for {
			n, err := t.in.Read(buf)
			if n > 0 {
				select {
				case chunks <- string(buf[:n]):
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				errs <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		case data := <-chunks:
			if data[0] == ctrlC || data[0] == ctrlD {
				return nil
			}
			t.dispatch(data)
		}
	}
}

// Close restores the terminal mode saved by Open
func (t *TTY) Close() error {
	if t.state == nil {
		return nil
	}
	state := t.state
	t.state = nil
	if err := term.Restore(int(t.in.Fd()), state); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	return nil
}
