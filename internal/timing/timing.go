// Package timing measures the steps of a keystroke for debug logging.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Mark is a named checkpoint, measured from the previous one
type Mark struct {
	Label    string
	Duration time.Duration
}

// Timer records checkpoints in order
type Timer struct {
	start time.Time
	last  time.Time
	marks []Mark
}

// NewTimer creates a timer started now
func NewTimer() *Timer {
	now := time.Now()
	return &Timer{start: now, last: now}
}

// Mark records the time spent since the previous checkpoint
func (t *Timer) Mark(label string) time.Duration {
	now := time.Now()
	d := now.Sub(t.last)
	t.last = now
	t.marks = append(t.marks, Mark{Label: label, Duration: d})
	return d
}

// Elapsed returns the time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Get returns the duration of the first checkpoint named label
func (t *Timer) Get(label string) (time.Duration, bool) {
	for _, m := range t.marks {
		if m.Label == label {
			return m.Duration, true
		}
	}
	return 0, false
}

// Marks returns the checkpoints in the order they were recorded
func (t *Timer) Marks() []Mark {
	return append([]Mark(nil), t.marks...)
}

// Summary formats the total and every checkpoint in milliseconds, e.g.
// "total=1.200ms accept=0.300ms command=0.900ms"
func (t *Timer) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "total=%s", ms(t.Elapsed()))
	for _, m := range t.marks {
		fmt.Fprintf(&b, " %s=%s", m.Label, ms(m.Duration))
	}
	return b.String()
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000.0)
}
