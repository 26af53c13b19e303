package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

var defaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerOptions configures spinner behavior.
type SpinnerOptions struct {
	Message string
	NoColor bool

	// Interval between frames. Default: 100ms
	Interval time.Duration

	// Animate draws frames while running. Disable it when the writer is not a terminal.
	Animate bool
}

// Spinner shows an indeterminate operation and ends with a status line.
type Spinner struct {
	writer   io.Writer
	frames   []string
	interval time.Duration
	animate  bool

	green  *color.Color
	yellow *color.Color
	red    *color.Color
	cyan   *color.Color

	mu      sync.Mutex
	message string
	active  bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer, opts SpinnerOptions) *Spinner {
	interval := opts.Interval
	if interval == 0 {
		interval = 100 * time.Millisecond
	}

	s := &Spinner{
		writer:   w,
		message:  opts.Message,
		frames:   defaultFrames,
		interval: interval,
		animate:  opts.Animate,
		green:    color.New(color.FgGreen, color.Bold),
		yellow:   color.New(color.FgYellow, color.Bold),
		red:      color.New(color.FgRed, color.Bold),
		cyan:     color.New(color.FgCyan),
	}
	if opts.NoColor {
		for _, c := range []*color.Color{s.green, s.yellow, s.red, s.cyan} {
			c.DisableColor()
		}
	}
	return s
}

// Start begins the spinner.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	if !s.animate {
		return
	}
	s.done = make(chan struct{})
	s.wg.Add(1)
	go s.run(s.done)
}

// Stop halts the spinner and clears its line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	done := s.done
	s.done = nil
	s.mu.Unlock()

	if done != nil {
		close(done)
		s.wg.Wait()
		fmt.Fprint(s.writer, "\r\033[K")
	}
}

// UpdateMessage changes the spinner message.
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Success stops the spinner and prints a success line.
func (s *Spinner) Success(message string) {
	s.Stop()
	s.green.Fprintf(s.writer, "✓ %s\n", message)
}

// Warn stops the spinner and prints a warning line.
func (s *Spinner) Warn(message string) {
	s.Stop()
	s.yellow.Fprintf(s.writer, "⚠ %s\n", message)
}

// Fail stops the spinner and prints a failure line.
func (s *Spinner) Fail(message string) {
	s.Stop()
	s.red.Fprintf(s.writer, "✗ %s\n", message)
}

func (s *Spinner) run(done <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()
			msg := s.message
			s.mu.Unlock()
			s.cyan.Fprintf(s.writer, "\r%s %s", s.frames[frame], msg)
			frame = (frame + 1) % len(s.frames)
		}
	}
}
