// Package terminal defines the host surface the console draws on and
// provides a raw-mode implementation backed by the process TTY.
package terminal

// Terminal is the host surface: it delivers raw keystroke data and accepts
// escape-sequence output.
type Terminal interface {
	// Write sends raw text or escape sequences to the display
	Write(data string)
	// Writeln writes data followed by a line break
	Writeln(data string)
	// OnData registers a listener for raw input chunks and returns a function
	// removing it
	OnData(fn func(data string)) (unsubscribe func())
}
