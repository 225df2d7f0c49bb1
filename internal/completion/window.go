package completion

import (
	"github.com/NikitaCOEUR/cmdsuggest/internal/ansi"
)

// DefaultWindowSize is the number of dropdown rows
const DefaultWindowSize = 9

// minColumnWidth is the narrowest dropdown column
const minColumnWidth = 5

// Window is the slice of suggestions shown in the dropdown
type Window struct {
	Suggestions []Suggestion
	// MaxLength is the column width fitting every suggestion, 0 when none
	// has text
	MaxLength int
	// Selected is the row of the selection, -1 when it is not shown
	Selected int
}

// Around returns a window of exactly size rows around the selection.
// When fewer than size suggestions can be shown (masked ones are hidden
// unless they are errors) they are listed in order and padded with empty
// rows. Otherwise the window is centred on the selection and wraps around
// both ends of the list.
func (e *Engine) Around(size int) Window {
	if size <= 0 {
		size = DefaultWindowSize
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	selected := -1
	rows := make([]Suggestion, 0, size)
	for i, s := range e.list {
		if s.Error != "" || !s.Masked {
			if i == e.index {
				selected = len(rows)
			}
			rows = append(rows, s)
		}
	}

	if len(rows) < size {
		for len(rows) < size {
			rows = append(rows, Suggestion{})
		}
	} else {
		all := len(e.list)
		before := (size - 1) / 2
		selected = before
		rows = rows[:0]
		for i := e.index - before; i < e.index-before+size; i++ {
			rows = append(rows, e.list[((i%all)+all)%all])
		}
	}

	widest := 0
	measured := e.list
	if measured == nil {
		measured = rows
	}
	for _, s := range measured {
		widest = max(widest, ansi.Width(s.Error), ansi.Width(s.Label))
	}

	maxLength := 0
	if widest > 0 {
		maxLength = max(widest+1, minColumnWidth)
	}
	return Window{Suggestions: rows, MaxLength: maxLength, Selected: selected}
}
