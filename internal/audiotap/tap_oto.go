//go:build !headless

// tap_oto.go - oto v3 realtime stereo output tap

package audiotap

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"

	"github.com/intuitionamiga/kdwm-mesh/dwm"
)

// SceneState is the per-block input a RealtimeDriver needs: the six
// boundary parameter records and both ear positions. The scene driver (or a
// static CLI configuration) publishes a fresh SceneState with SetState once
// per block; Read loads it lock-free from its realtime-priority goroutine.
type SceneState struct {
	Params               dwm.BoundaryParamSet
	ListenerL, ListenerR [3]float32
}

// OtoTap drives an oto.Player by pulling BlockSize-sample stereo blocks out
// of a RealtimeDriver on demand. Read is the only method oto calls from its
// internal mixing goroutine; it never allocates once the tap is built.
type OtoTap struct {
	ctx    *oto.Context
	player *oto.Player
	driver *dwm.RealtimeDriver

	state atomic.Pointer[SceneState] // lock-free: no mutex on the hot Read path

	block []float32 // interleaved stereo, len == dwm.BlockSize*2
	pos   int        // byte offset into block already delivered to oto

	started bool
	mutex   sync.Mutex // setup/control operations only
}

// NewOtoTap opens an oto context at sampleRate and wires it to driver. The
// tap starts silent: Read returns zeros until the first SetState call.
func NewOtoTap(sampleRate int, driver *dwm.RealtimeDriver) (*OtoTap, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	t := &OtoTap{
		ctx:    ctx,
		driver: driver,
		block:  make([]float32, dwm.BlockSize*2),
	}
	t.pos = len(t.block) * 4 // force a fill on the first Read
	t.player = ctx.NewPlayer(t)
	return t, nil
}

// SetState publishes the boundary parameters and listener ear positions the
// next generated blocks should use.
func (t *OtoTap) SetState(s *SceneState) {
	t.state.Store(s)
}

// Read implements io.Reader for oto's player, refilling its interleaved
// stereo block whenever the previous one has been fully delivered.
func (t *OtoTap) Read(p []byte) (n int, err error) {
	state := t.state.Load()
	if state == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	blockBytes := (*[1 << 30]byte)(unsafe.Pointer(&t.block[0]))[: len(t.block)*4 : len(t.block)*4]

	written := 0
	for written < len(p) {
		if t.pos >= len(blockBytes) {
			t.driver.ProcessBlock(state.Params, state.ListenerL, state.ListenerR, t.block, 2)
			t.pos = 0
		}
		c := copy(p[written:], blockBytes[t.pos:])
		t.pos += c
		written += c
	}
	return written, nil
}

// Start begins playback.
func (t *OtoTap) Start() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if !t.started {
		t.player.Play()
		t.started = true
	}
}

// Stop pauses playback without releasing the underlying player.
func (t *OtoTap) Stop() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.started {
		t.player.Pause()
		t.started = false
	}
}

// Close releases the player and its oto context.
func (t *OtoTap) Close() {
	t.Stop()
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.player != nil {
		t.player.Close()
		t.player = nil
	}
}

// IsStarted reports whether playback is currently active.
func (t *OtoTap) IsStarted() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.started
}
