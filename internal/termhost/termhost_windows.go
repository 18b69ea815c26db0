//go:build windows

// termhost_windows.go - raw-mode stdin reader for Windows consoles

package termhost

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// TerminalHost is the Windows twin of the POSIX reader: Windows consoles
// have no non-blocking read primitive reachable through syscall in the same
// way, so this version reads with a plain blocking os.Stdin.Read instead. It
// decodes bytes into Commands the same way the POSIX reader does.
type TerminalHost struct {
	onCommand func(Command)
	decoder   decoder

	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	oldTermState *term.State
}

// NewTerminalHost builds a host that calls onCommand for every Command
// decoded from stdin once Start is running.
func NewTerminalHost(onCommand func(Command)) *TerminalHost {
	return &TerminalHost{
		onCommand: onCommand,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start puts stdin into raw mode and begins reading in a goroutine.
func (h *TerminalHost) Start() error {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		close(h.done)
		return fmt.Errorf("termhost: set raw mode: %w", err)
	}
	h.oldTermState = oldState

	go func() {
		defer close(h.done)
		buf := make([]byte, 1)

		for {
			select {
			case <-h.stopCh:
				return
			default:
			}

			n, err := os.Stdin.Read(buf)
			if n > 0 {
				if cmd := h.decoder.feed(buf[0]); cmd != CommandNone {
					h.onCommand(cmd)
				}
			}
			if err != nil {
				return
			}
			if n == 0 {
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()
	return nil
}

// Stop terminates the reading goroutine and restores the console's prior
// mode.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}
