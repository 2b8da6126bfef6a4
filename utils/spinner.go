package utils

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"
)

const spinnerFrames = "⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏"

// Spinner is a progress indicator redrawn in place on a single terminal line.
type Spinner struct {
	// StopMsg is printed in place of the spinner once it stopped.
	StopMsg string

	mu         sync.Mutex
	w          io.Writer
	frames     []rune
	delay      time.Duration
	message    string
	hideCursor bool
	stop, done chan struct{}
}

// NewSpinner creates a progress indicator writing to w every d.
func NewSpinner(w io.Writer, msg string, d time.Duration, hideCursor bool) *Spinner {
	if d <= 0 {
		d = 100 * time.Millisecond
	}
	return &Spinner{
		w:          w,
		frames:     []rune(spinnerFrames),
		delay:      d,
		message:    msg,
		hideCursor: hideCursor,
	}
}

// SetMessage replaces the text shown in front of the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = msg
}

// Start starts the spinner. Starting a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		return
	}
	s.stop, s.done = make(chan struct{}), make(chan struct{})
	if s.hideCursor {
		s.cursor(false)
	}
	go s.run(s.stop, s.done)
}

func (s *Spinner) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for i := 0; ; i++ {
		s.mu.Lock()
		fmt.Fprintf(s.w, "\r\033[K%s%s %c%s", s.message, SuccessColor, s.frames[i%len(s.frames)], DefaultColor)
		s.mu.Unlock()

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

// Stop stops the spinner, clears its line and prints StopMsg.
// Stopping a stopped spinner does nothing.
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

	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprint(s.w, "\r\033[K")
	s.RestoreCursor()
	if s.StopMsg != "" {
		fmt.Fprint(s.w, s.StopMsg)
	}
}

// RestoreCursor makes the cursor visible again if the spinner hid it.
func (s *Spinner) RestoreCursor() {
	if s.hideCursor {
		s.cursor(true)
	}
}

func (s *Spinner) cursor(visible bool) {
	if runtime.GOOS == "windows" {
		return
	}
	if visible {
		fmt.Fprint(s.w, "\033[?25h")
	} else {
		fmt.Fprint(s.w, "\033[?25l")
	}
}
