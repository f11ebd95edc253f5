package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Spinner shows activity while a request is in flight. It stays silent when
// stdout is not a terminal so piped output remains clean.
type Spinner struct {
	frames []string
	prefix string
	writer io.Writer

	mu     sync.Mutex
	active bool
	done   chan struct{}
}

func NewSpinner(prefix string) *Spinner {
	return &Spinner{
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		prefix: prefix,
		writer: os.Stderr,
	}
}

func (s *Spinner) Start() {
	if !isTerminal() {
		return
	}
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		frame := 0
		for {
			select {
			case <-done:
				fmt.Fprint(s.writer, "\r\033[K")
				return
			case <-ticker.C:
				fmt.Fprintf(s.writer, "\r%s %s", s.frames[frame%len(s.frames)], s.prefix)
				frame++
			}
		}
	}()
}

func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.active = false
	close(s.done)
}
