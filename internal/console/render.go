package console

import (
	"strings"
	"unicode"

	"github.com/NikitaCOEUR/cmdsuggest/internal/ansi"
	"github.com/NikitaCOEUR/cmdsuggest/internal/completion"
)

// render redraws the prompt line and the dropdown below it for the selected
// suggestion s. The cursor is left at the end of the typed text.
func (c *Controller) render(s *completion.Suggestion) {
	if c.term == nil {
		return
	}

	var b strings.Builder
	b.WriteString(ansi.ClearLine + ansi.Prompt)

	last := c.args.Len() - 1
	c.args.Each(func(ix int, arg completion.Argument) {
		if ix > 0 {
			b.WriteString(" ")
		}
		if ix == last {
			c.renderActive(&b, arg, s)
			return
		}
		b.WriteString(arg.Display())
	})

	c.term.Write(b.String())
}

func (c *Controller) renderActive(b *strings.Builder, arg completion.Argument, s *completion.Suggestion) {
	var label string
	var masked, showAlways bool
	if s != nil {
		label, masked, showAlways = s.Label, s.Masked, s.ShowAlways
	}
	underscore := ansi.Underscore
	if masked {
		underscore = ""
	}
	hide := func(text string) string {
		if masked {
			return ansi.Mask(text)
		}
		return text
	}

	window := c.engine.Around(c.windowSize)
	textLength := ansi.Width(label)
	if label == "" || showAlways {
		textLength = ansi.Width(arg.Label)
	}

	quoted := arg.Quoted || (label != " " && strings.Contains(label, " "))
	quoteWidth := 0
	if quoted {
		quoteWidth = 1
		if arg.Quoted {
			b.WriteString(ansi.Colorize(`"`, ansi.Reset))
		} else {
			b.WriteString(ansi.Colorize(`"`, ansi.Dim))
		}
	}

	// Dropdown, one row below the other, cursor back in the input column
	listWidth := max(window.MaxLength, textLength)
	for i, row := range window.Suggestions {
		b.WriteString(ansi.CursorDown(1) + ansi.EraseLine)
		text := row.Text()
		if text == "" {
			continue
		}
		if row.Masked && row.Error == "" {
			text = ansi.Mask(text)
		}
		colors := []ansi.Color{ansi.BgBlack}
		switch {
		case row.Error != "":
			colors = []ansi.Color{ansi.BgRed, ansi.FgLightRed, ansi.Bright}
		case s != nil && i == window.Selected:
			colors = []ansi.Color{ansi.BgGreen, ansi.FgLightGreen, ansi.Bright}
		}
		b.WriteString(ansi.Colorize(ansi.PadEnd(text, listWidth), colors...) + ansi.CursorBackward(listWidth))
	}
	b.WriteString(ansi.CursorUp(len(window.Suggestions)))

	done := c.engine.Done()
	if label == "" {
		if done {
			b.WriteString(ansi.Colorize(hide(arg.Label), ansi.Reset))
		} else {
			b.WriteString(ansi.Colorize(hide(arg.Label), underscore, ansi.FgRed))
		}
	} else {
		mark := label
		if showAlways {
			mark = arg.Label
		}
		b.WriteString(ansi.Colorize(hide(mark), underscore, ansi.Dim))
	}

	if quoted {
		colors := []ansi.Color{ansi.Dim}
		if arg.Quoted && !arg.InQuote {
			colors = []ansi.Color{ansi.Reset}
		}
		if label != "" {
			colors = append(colors, underscore)
		}
		b.WriteString(ansi.Colorize(`"`, colors...))
	}

	// Underline the rest of the column
	if length := window.MaxLength - (textLength + quoteWidth); length > 0 {
		b.WriteString(ansi.Colorize(strings.Repeat(" ", length), ansi.Reset, underscore))
		b.WriteString(ansi.CursorBackward(length))
	}

	if !showAlways {
		b.WriteString(ansi.CursorBackward(ansi.Width(label) + quoteWidth))
	}

	// Redraw the typed part of the suggestion in plain text
	if arg.Length > 0 && label != "" && !showAlways {
		prev := 0
		for _, m := range matches(label, arg.Label) {
			b.WriteString(ansi.CursorForward(ansi.Width(label[prev:m[0]])))
			b.WriteString(ansi.Colorize(hide(label[m[0]:m[1]]), ansi.Reset, underscore))
			prev = m[1]
		}
	}

	if arg.Quoted && !arg.InQuote {
		b.WriteString(ansi.CursorForward(1))
	}
	if done {
		b.WriteString("✓" + ansi.CursorBackward(1))
	}
}

// matches returns the byte ranges of the non-overlapping case-insensitive
// occurrences of search in text
func matches(text, search string) [][2]int {
	needle := []rune(search)
	if len(needle) == 0 {
		return nil
	}

	type pos struct {
		r   rune
		off int
	}
	hay := make([]pos, 0, len(text))
	for off, r := range text {
		hay = append(hay, pos{r, off})
	}
	end := func(i int) int {
		if i < len(hay) {
			return hay[i].off
		}
		return len(text)
	}

	var out [][2]int
	for i := 0; i+len(needle) <= len(hay); {
		found := true
		for j, r := range needle {
			if unicode.ToLower(hay[i+j].r) != unicode.ToLower(r) {
				found = false
				break
			}
		}
		if !found {
			i++
			continue
		}
		out = append(out, [2]int{hay[i].off, end(i + len(needle))})
		i += len(needle)
	}
	return out
}
