// Package termhost reads raw keystrokes from stdin for interactive control
// of a running demo (nudging the listener, taking a diagnostics snapshot,
// quitting), without requiring a GUI window to have keyboard focus.
package termhost
