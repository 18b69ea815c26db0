//go:build headless

// tap_headless.go - no-op output tap for CI / server builds

package audiotap

import "github.com/intuitionamiga/kdwm-mesh/dwm"

// SceneState mirrors the oto-backed tap's SceneState so callers don't need
// a build-tag switch of their own just to construct one.
type SceneState struct {
	Params               dwm.BoundaryParamSet
	ListenerL, ListenerR [3]float32
}

// OtoTap is a headless stand-in: it still runs the driver (so diagnostics
// and tests stay meaningful) but discards the generated audio instead of
// opening a real output device.
type OtoTap struct {
	driver  *dwm.RealtimeDriver
	state   *SceneState
	started bool
	scratch []float32
}

// NewOtoTap returns a tap that drives driver but produces no audible output.
func NewOtoTap(sampleRate int, driver *dwm.RealtimeDriver) (*OtoTap, error) {
	return &OtoTap{driver: driver, scratch: make([]float32, dwm.BlockSize*2)}, nil
}

func (t *OtoTap) SetState(s *SceneState) {
	t.state = s
}

// Read generates and discards one block per call, matching the oto-backed
// tap's side effects (mesh advances, sources are consumed) without touching
// any audio device.
func (t *OtoTap) Read(p []byte) (n int, err error) {
	if t.state != nil {
		t.driver.ProcessBlock(t.state.Params, t.state.ListenerL, t.state.ListenerR, t.scratch, 2)
	}
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func (t *OtoTap) Start() { t.started = true }
func (t *OtoTap) Stop()  { t.started = false }
func (t *OtoTap) Close() { t.started = false }

func (t *OtoTap) IsStarted() bool { return t.started }
