// command_test.go - raw-byte-to-Command decoding

package termhost

import "testing"

func TestDecoderRecognizesPlainCommands(t *testing.T) {
	cases := []struct {
		b    byte
		want Command
	}{
		{'q', CommandQuit},
		{'Q', CommandQuit},
		{0x03, CommandQuit},
		{'c', CommandSnapshot},
		{'C', CommandSnapshot},
		{'x', CommandNone},
	}
	for _, c := range cases {
		var d decoder
		if got := d.feed(c.b); got != c.want {
			t.Errorf("feed(%q) = %v, want %v", c.b, got, c.want)
		}
	}
}

func TestDecoderRecognizesCursorEscapeSequences(t *testing.T) {
	cases := []struct {
		final byte
		want  Command
	}{
		{'A', CommandNudgeYPos},
		{'B', CommandNudgeYNeg},
		{'C', CommandNudgeXPos},
		{'D', CommandNudgeXNeg},
	}
	for _, c := range cases {
		var d decoder
		if got := d.feed(0x1b); got != CommandNone {
			t.Fatalf("feed(ESC) = %v, want CommandNone", got)
		}
		if got := d.feed('['); got != CommandNone {
			t.Fatalf("feed('[') = %v, want CommandNone", got)
		}
		if got := d.feed(c.final); got != c.want {
			t.Errorf("feed(%q) after ESC '[' = %v, want %v", c.final, got, c.want)
		}
	}
}

func TestDecoderResetsAfterAnIncompleteEscapeSequence(t *testing.T) {
	var d decoder
	d.feed(0x1b)
	if got := d.feed('q'); got != CommandNone {
		t.Errorf("feed('q') right after a bare ESC = %v, want CommandNone", got)
	}
	// The decoder should be back in its idle state, not stuck mid-sequence.
	if got := d.feed('q'); got != CommandQuit {
		t.Errorf("feed('q') after an aborted escape sequence = %v, want CommandQuit", got)
	}
}

func TestDecoderFeedsAcrossMultipleCalls(t *testing.T) {
	var d decoder
	// Simulate an escape sequence split across two Read calls.
	if got := d.feed(0x1b); got != CommandNone {
		t.Fatalf("feed(ESC) = %v, want CommandNone", got)
	}
	if got := d.feed('['); got != CommandNone {
		t.Fatalf("feed('[') = %v, want CommandNone", got)
	}
	if got := d.feed('A'); got != CommandNudgeYPos {
		t.Errorf("feed('A') = %v, want CommandNudgeYPos", got)
	}
}
