//go:build !windows

// termhost.go - raw-mode stdin reader driving live demo controls

package termhost

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// TerminalHost puts stdin into raw mode and decodes every byte typed into a
// Command delivered to onCommand, for live keyboard control of a running
// simulation (nudging the listener, snapshotting diagnostics, quitting)
// without restarting the process. Only instantiated by cmd/dwmsim's
// interactive mode — never in tests.
type TerminalHost struct {
	onCommand func(Command)
	decoder   decoder

	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	nonblockSet  bool
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

// Start puts stdin into raw, non-blocking mode and begins reading in a
// goroutine. Call Stop to restore stdin before the process exits.
func (h *TerminalHost) Start() error {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		close(h.done)
		return fmt.Errorf("termhost: set raw mode: %w", err)
	}
	h.oldTermState = oldState

	if err := syscall.SetNonblock(h.fd, true); err != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
		close(h.done)
		return fmt.Errorf("termhost: set nonblocking stdin: %w", err)
	}
	h.nonblockSet = true

	go func() {
		defer close(h.done)
		buf := make([]byte, 1)

		for {
			select {
			case <-h.stopCh:
				return
			default:
			}

			n, err := syscall.Read(h.fd, buf)
			if n > 0 {
				if cmd := h.decoder.feed(buf[0]); cmd != CommandNone {
					h.onCommand(cmd)
				}
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
				time.Sleep(5 * time.Millisecond)
				continue
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

// Stop terminates the reading goroutine and restores stdin to its prior
// blocking, cooked mode.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.nonblockSet {
		_ = syscall.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}
