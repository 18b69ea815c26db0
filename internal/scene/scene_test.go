// scene_test.go - Lua scene script parsing and per-block evaluation

package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/intuitionamiga/kdwm-mesh/dwm"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.lua")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write scene script: %v", err)
	}
	return path
}

const twoKeyframeScript = `
keyframes = {
  {t = 0.0, source_index = 0, x = 0.2, y = 0.5, z = 0.5, gain_db = -6.0},
  {t = 1.0, source_index = 0, x = 0.8, y = 0.5, z = 0.5, gain_db = -6.0},
}

boundary = {
  xp = {kind = "admittance", admittance = 0.5, cutoff = 0.3},
  xn = {kind = "anechoic"},
  yp = {kind = "anechoic"},
  yn = {kind = "anechoic"},
  zp = {kind = "anechoic"},
  zn = {kind = "anechoic"},
}
`

func TestLoadParsesKeyframesAndBoundary(t *testing.T) {
	path := writeScript(t, twoKeyframeScript)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(s.keyframes) != 2 {
		t.Fatalf("len(keyframes) = %d, want 2", len(s.keyframes))
	}
	if s.Duration() != 1.0 {
		t.Errorf("Duration() = %v, want 1.0", s.Duration())
	}

	faces := s.Faces()
	if faces.Xp != dwm.KindAdmittanceLowpass {
		t.Errorf("faces.Xp = %v, want KindAdmittanceLowpass", faces.Xp)
	}
	if faces.Xn != dwm.KindAnechoic {
		t.Errorf("faces.Xn = %v, want KindAnechoic", faces.Xn)
	}
}

func TestTickInterpolatesPositionAtMidpoint(t *testing.T) {
	path := writeScript(t, twoKeyframeScript)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	table := dwm.NewSourceTable()
	raw := map[int][]float32{0: make([]float32, dwm.BlockSize)}
	raw[0][0] = 1

	s.Tick(0.5, table, raw)

	snap := table.Snapshot(0)
	wantX := float32(0.5) // midpoint between 0.2 and 0.8
	if diff := snap.PX - wantX; diff > 1e-4 || diff < -1e-4 {
		t.Errorf("source 0 x = %v, want ~%v", snap.PX, wantX)
	}
	if !snap.Active {
		t.Error("WriteSource via Tick should mark the record active")
	}

	wantGain := dwm.DBToLinear(-6)
	if diff := snap.Buf0 - wantGain; diff > 1e-4 || diff < -1e-4 {
		t.Errorf("source 0 buf[0] = %v, want raw(1)*gain(-6dB) = %v", snap.Buf0, wantGain)
	}
}

func TestTickHoldsBeforeFirstAndAfterLastKeyframe(t *testing.T) {
	path := writeScript(t, twoKeyframeScript)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	table := dwm.NewSourceTable()
	raw := map[int][]float32{0: make([]float32, dwm.BlockSize)}

	s.Tick(-1, table, raw)
	if got := table.Snapshot(0).PX; got != 0.2 {
		t.Errorf("before timeline start: x = %v, want 0.2", got)
	}

	s.Tick(10, table, raw)
	if got := table.Snapshot(0).PX; got != 0.8 {
		t.Errorf("after timeline end: x = %v, want 0.8", got)
	}
}

func TestTickSkipsSourcesWithoutRawBuffer(t *testing.T) {
	path := writeScript(t, twoKeyframeScript)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	table := dwm.NewSourceTable()
	s.Tick(0.5, table, map[int][]float32{}) // no raw buffer for source 0

	if table.Snapshot(0).Active {
		t.Error("source with no raw buffer should not become active")
	}
}

func TestLoadDefaultsMissingBoundaryToAnechoic(t *testing.T) {
	path := writeScript(t, `keyframes = {}`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	faces := s.Faces()
	if faces != (dwm.SixFaces{}) {
		t.Errorf("faces = %+v, want all-zero (anechoic) SixFaces", faces)
	}
}

func TestLoadRejectsMalformedKeyframeEntry(t *testing.T) {
	path := writeScript(t, `keyframes = {1, 2, 3}`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load should reject non-table keyframe entries")
	}
}
