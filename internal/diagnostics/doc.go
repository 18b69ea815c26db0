// Package diagnostics captures a short text snapshot of a running mesh's
// pressure field (frame count, RMS, peak magnitude) and copies it to the OS
// clipboard on demand, the same clipboard-on-keypress convention the
// cross-section window already uses.
package diagnostics
