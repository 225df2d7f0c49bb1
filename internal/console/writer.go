package console

import (
	"sync"

	"github.com/NikitaCOEUR/cmdsuggest/internal/terminal"
)

// lockedTerminal serializes writes from the key handler and the spinner
type lockedTerminal struct {
	mu   sync.Mutex
	term terminal.Terminal
}

func (t *lockedTerminal) Write(data string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.term.Write(data)
}

func (t *lockedTerminal) Writeln(data string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.term.Writeln(data)
}

func (t *lockedTerminal) OnData(fn func(data string)) func() {
	return t.term.OnData(fn)
}
