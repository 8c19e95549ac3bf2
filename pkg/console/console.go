// Package console puts the controlling terminal into cbreak mode so
// that a running program sees key presses as they are typed, as a
// CP/M console would, rather than a line at a time.
package console

import (
	"fmt"
	"sync"

	"github.com/pkg/term"
)

// DefaultDevice is the controlling terminal.
const DefaultDevice = "/dev/tty"

// Terminal is a terminal in cbreak mode. It implements io.Reader and
// is usually handed to the machine console as its input.
type Terminal struct {
	t *term.Term

	mu     sync.Mutex
	closed bool
}

// Open opens the terminal device and puts it into cbreak mode:
// input is delivered a byte at a time, without waiting for a newline,
// while signals such as ^C still work.
func Open(device string) (*Terminal, error) {
	t, err := term.Open(device)
	if err != nil {
		return nil, fmt.Errorf("console: opening %s: %w", device, err)
	}
	if err := t.SetCbreak(); err != nil {
		t.Close()
		return nil, fmt.Errorf("console: entering cbreak mode: %w", err)
	}
	return &Terminal{t: t}, nil
}

// Read reads input typed at the terminal. Newlines arrive as '\r',
// as a CP/M program expects from its console.
func (pt *Terminal) Read(p []byte) (int, error) {
	n, err := pt.t.Read(p)
	for i := 0; i < n; i++ {
		if p[i] == '\n' {
			p[i] = '\r'
		}
	}
	return n, err
}

// Close restores the terminal to the mode it was opened in.
func (pt *Terminal) Close() error {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	if pt.closed {
		return nil
	}
	pt.closed = true
	if err := pt.t.Restore(); err != nil {
		pt.t.Close()
		return err
	}
	return pt.t.Close()
}
