// Package ansi produces the escape sequences used to draw the prompt and the
// suggestion dropdown, and classifies raw keystroke data into logical keys.
package ansi

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	esc = "\x1b["

	// EraseLine erases the whole current line
	EraseLine = esc + "2K"
	// CursorNextLine moves the cursor to the start of the next line
	CursorNextLine = esc + "E"
	// CursorPrevLine moves the cursor to the start of the previous line
	CursorPrevLine = esc + "F"
	// ClearLine returns to column 0 and erases to the end of the line
	ClearLine = "\r" + esc + "K"
	// Clear resets the terminal
	Clear = "\x1bc"
	// Prompt is written at the start of every redraw
	Prompt = "$ "
)

// Color is an SGR color or style sequence
type Color string

// SGR sequences
const (
	Reset      Color = "\x1b[0m"
	Bright     Color = "\x1b[1m"
	Dim        Color = "\x1b[2m"
	Underscore Color = "\x1b[4m"
	Blink      Color = "\x1b[5m"
	Reverse    Color = "\x1b[7m"
	Hidden     Color = "\x1b[8m"

	FgBlack   Color = "\x1b[30m"
	FgRed     Color = "\x1b[31m"
	FgGreen   Color = "\x1b[32m"
	FgYellow  Color = "\x1b[33m"
	FgBlue    Color = "\x1b[34m"
	FgMagenta Color = "\x1b[35m"
	FgCyan    Color = "\x1b[36m"
	FgWhite   Color = "\x1b[37m"
	FgDefault Color = "\x1b[38m"

	FgLightBlack   Color = "\x1b[90m"
	FgLightRed     Color = "\x1b[91m"
	FgLightGreen   Color = "\x1b[92m"
	FgLightYellow  Color = "\x1b[93m"
	FgLightBlue    Color = "\x1b[94m"
	FgLightMagenta Color = "\x1b[95m"
	FgLightCyan    Color = "\x1b[96m"
	FgLightWhite   Color = "\x1b[97m"

	BgBlack   Color = "\x1b[40m"
	BgRed     Color = "\x1b[41m"
	BgGreen   Color = "\x1b[42m"
	BgYellow  Color = "\x1b[43m"
	BgBlue    Color = "\x1b[44m"
	BgMagenta Color = "\x1b[45m"
	BgCyan    Color = "\x1b[46m"
	BgWhite   Color = "\x1b[47m"
	BgDefault Color = "\x1b[48m"

	BgLightBlack   Color = "\x1b[100m"
	BgLightRed     Color = "\x1b[101m"
	BgLightGreen   Color = "\x1b[102m"
	BgLightYellow  Color = "\x1b[103m"
	BgLightBlue    Color = "\x1b[104m"
	BgLightMagenta Color = "\x1b[105m"
	BgLightCyan    Color = "\x1b[106m"
	BgLightWhite   Color = "\x1b[107m"
)

func move(count int, code byte) string {
	if count < 1 {
		return ""
	}
	return esc + strconv.Itoa(count) + string(code)
}

// CursorUp moves the cursor up by count rows
func CursorUp(count int) string {
	return move(count, 'A')
}

// CursorDown moves the cursor down by count rows
func CursorDown(count int) string {
	return move(count, 'B')
}

// CursorForward moves the cursor right by count columns
func CursorForward(count int) string {
	return move(count, 'C')
}

// CursorBackward moves the cursor left by count columns
func CursorBackward(count int) string {
	return move(count, 'D')
}

// Colorize wraps text in the given colors followed by a Reset.
// Empty colors are skipped.
func Colorize(text string, colors ...Color) string {
	var b strings.Builder
	for _, c := range colors {
		b.WriteString(string(c))
	}
	b.WriteString(text)
	b.WriteString(string(Reset))
	return b.String()
}

// Mask replaces every rune of s with '*'
func Mask(s string) string {
	return strings.Repeat("*", len([]rune(s)))
}

// Width returns the number of terminal columns s occupies
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// PadEnd pads s with spaces up to width columns
func PadEnd(s string, width int) string {
	if w := Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
