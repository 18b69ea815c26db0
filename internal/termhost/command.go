// command.go - decodes raw terminal bytes into demo-level controls

package termhost

// Command is a control the terminal reader recognizes once a raw byte (or
// short escape sequence) has been decoded — callers never see the bytes
// themselves.
type Command int

const (
	// CommandNone means the byte(s) fed to the decoder so far don't (yet)
	// resolve to a recognized command.
	CommandNone Command = iota
	CommandQuit
	CommandSnapshot
	CommandNudgeXNeg
	CommandNudgeXPos
	CommandNudgeYNeg
	CommandNudgeYPos
)

// decoder folds a stream of raw stdin bytes into Commands. It recognizes
// 'q'/'Q'/Ctrl-C as quit, 'c'/'C' as a diagnostics snapshot, and ANSI cursor
// escape sequences (ESC '[' A/B/C/D) as listener nudges — buffering across
// calls to feed since a terminal emulator may deliver an escape sequence's
// three bytes across more than one Read.
type decoder struct {
	escState int // 0 = idle, 1 = saw ESC, 2 = saw ESC '['
}

// feed consumes one byte and returns the Command it completes, or
// CommandNone if b is plain text, the start of an escape sequence still in
// progress, or unrecognized.
func (d *decoder) feed(b byte) Command {
	switch d.escState {
	case 1:
		d.escState = 0
		if b == '[' {
			d.escState = 2
		}
		return CommandNone
	case 2:
		d.escState = 0
		switch b {
		case 'A':
			return CommandNudgeYPos
		case 'B':
			return CommandNudgeYNeg
		case 'C':
			return CommandNudgeXPos
		case 'D':
			return CommandNudgeXNeg
		}
		return CommandNone
	}

	switch b {
	case 0x1b:
		d.escState = 1
		return CommandNone
	case 'q', 'Q', 0x03:
		return CommandQuit
	case 'c', 'C':
		return CommandSnapshot
	}
	return CommandNone
}
