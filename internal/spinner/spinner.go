// Package spinner draws a busy indicator while a fetch or a command runs.
package spinner

import (
	"sync"
	"time"
)

// DefaultInterval is the delay between two frames
const DefaultInterval = 100 * time.Millisecond

// Frames is the glyph sequence cycled by the spinner
var Frames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Spinner calls a render function with the next frame on every tick.
// Start and Stop are idempotent.
type Spinner struct {
	mu       sync.Mutex
	interval time.Duration
	render   func(frame string)
	stop     chan struct{}
	done     chan struct{}
}

// New creates a spinner that calls render every interval
func New(interval time.Duration, render func(frame string)) *Spinner {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Spinner{
		interval: interval,
		render:   render,
	}
}

// Running reports whether the ticker is active
func (s *Spinner) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

// Start begins the animation from the first frame
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(s.stop, s.done)
}

// Stop halts the animation. No frame is rendered after Stop returns.
func (s *Spinner) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (s *Spinner) run(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// A tick racing with Stop must not draw
			select {
			case <-stop:
				return
			default:
			}
			if s.render != nil {
				s.render(Frames[i%len(Frames)])
			}
		}
	}
}
