// scene.go - Lua-scripted source keyframes and boundary knobs

package scene

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/intuitionamiga/kdwm-mesh/dwm"
)

// Keyframe is one scripted point on a source's trajectory: at time T
// (seconds since the scene began) source SourceIndex should sit at
// (X,Y,Z) with gain GainDB.
type Keyframe struct {
	T           float64
	SourceIndex int
	X, Y, Z     float32
	GainDB      float32
}

// FaceSpec is one face's filter configuration as parsed from the script's
// boundary table.
type FaceSpec struct {
	Kind               dwm.FilterKind
	Admittance, Cutoff float32
}

const (
	faceXp = iota
	faceXn
	faceYp
	faceYn
	faceZp
	faceZn
	faceCount
)

var faceNames = [faceCount]string{"xp", "xn", "yp", "yn", "zp", "zn"}

// SceneScript holds a scene's parsed keyframes and per-face boundary
// configuration. The Lua state that produced it is closed once loading
// finishes; nothing here keeps an interpreter alive, so Tick is cheap and
// allocation is limited to its own per-call buffers.
type SceneScript struct {
	keyframes []Keyframe
	faces     [faceCount]FaceSpec
}

// Load parses a Lua scene script exposing two optional globals:
//
//   - keyframes: an array of tables {t, source_index, x, y, z, gain_db}
//     describing one or more sources' trajectories.
//   - boundary: a table keyed "xp","xn","yp","yn","zp","zn", each a table
//     {kind="anechoic"|"admittance", admittance, cutoff}.
//
// Faces left unset default to anechoic. A script with no keyframes table
// is valid: it only tunes the boundaries.
func Load(path string) (*SceneScript, error) {
	ls := lua.NewState()
	defer ls.Close()

	if err := ls.DoFile(path); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	s := &SceneScript{}
	for i := range s.faces {
		s.faces[i] = FaceSpec{Kind: dwm.KindAnechoic}
	}

	if err := s.loadKeyframes(ls); err != nil {
		return nil, err
	}
	s.loadBoundary(ls)

	sort.Slice(s.keyframes, func(i, j int) bool { return s.keyframes[i].T < s.keyframes[j].T })
	return s, nil
}

func (s *SceneScript) loadKeyframes(ls *lua.LState) error {
	tbl, ok := ls.GetGlobal("keyframes").(*lua.LTable)
	if !ok {
		return nil
	}

	var rowErr error
	tbl.ForEach(func(_, value lua.LValue) {
		if rowErr != nil {
			return
		}
		row, ok := value.(*lua.LTable)
		if !ok {
			rowErr = fmt.Errorf("scene: keyframes entries must be tables")
			return
		}
		s.keyframes = append(s.keyframes, Keyframe{
			T:           float64(lua.LVAsNumber(row.RawGetString("t"))),
			SourceIndex: int(lua.LVAsNumber(row.RawGetString("source_index"))),
			X:           float32(lua.LVAsNumber(row.RawGetString("x"))),
			Y:           float32(lua.LVAsNumber(row.RawGetString("y"))),
			Z:           float32(lua.LVAsNumber(row.RawGetString("z"))),
			GainDB:      float32(lua.LVAsNumber(row.RawGetString("gain_db"))),
		})
	})
	return rowErr
}

func (s *SceneScript) loadBoundary(ls *lua.LState) {
	tbl, ok := ls.GetGlobal("boundary").(*lua.LTable)
	if !ok {
		return
	}
	for i, name := range faceNames {
		row, ok := tbl.RawGetString(name).(*lua.LTable)
		if !ok {
			continue
		}
		spec := FaceSpec{
			Admittance: float32(lua.LVAsNumber(row.RawGetString("admittance"))),
			Cutoff:     float32(lua.LVAsNumber(row.RawGetString("cutoff"))),
		}
		if lua.LVAsString(row.RawGetString("kind")) == "admittance" {
			spec.Kind = dwm.KindAdmittanceLowpass
		} else {
			spec.Kind = dwm.KindAnechoic
		}
		s.faces[i] = spec
	}
}

// Faces returns the six per-face filter kinds the script configured, in
// Mesh3D's SixFaces order, for use at mesh construction time.
func (s *SceneScript) Faces() dwm.SixFaces {
	return dwm.SixFaces{
		Xp: s.faces[faceXp].Kind,
		Xn: s.faces[faceXn].Kind,
		Yp: s.faces[faceYp].Kind,
		Yn: s.faces[faceYn].Kind,
		Zp: s.faces[faceZp].Kind,
		Zn: s.faces[faceZn].Kind,
	}
}

// BoundaryParams builds the six boundary parameter records Mesh3D.Step
// expects from the script's admittance/cutoff knobs. Faces configured as
// anechoic get NoParams{}; the filter ignores it regardless.
func (s *SceneScript) BoundaryParams() dwm.BoundaryParamSet {
	build := func(f FaceSpec) dwm.BoundaryParams {
		if f.Kind == dwm.KindAdmittanceLowpass {
			return dwm.NewAdmittanceLowpassParams(f.Admittance, f.Cutoff)
		}
		return dwm.NoParams{}
	}
	return dwm.BoundaryParamSet{
		Xp: build(s.faces[faceXp]),
		Xn: build(s.faces[faceXn]),
		Yp: build(s.faces[faceYp]),
		Yn: build(s.faces[faceYn]),
		Zp: build(s.faces[faceZp]),
		Zn: build(s.faces[faceZn]),
	}
}

// Duration returns the timestamp of the script's last keyframe, or 0 if it
// has none.
func (s *SceneScript) Duration() float64 {
	if len(s.keyframes) == 0 {
		return 0
	}
	return s.keyframes[len(s.keyframes)-1].T
}

// Tick evaluates the script at blockStart (seconds since the scene began)
// and writes each scripted source's interpolated position and gain-scaled
// samples into table. raw supplies each scripted source's dry mono samples
// for the block (e.g. an impulse or tone generator); sources in raw with no
// keyframes of their own are left untouched. Tick is meant to run on a
// non-realtime scene-ticker goroutine, once per block; it is not on
// Mesh3D's allocation-free hot path.
func (s *SceneScript) Tick(blockStart float64, table *dwm.SourceTable, raw map[int][]float32) {
	bySource := make(map[int][]Keyframe, len(raw))
	for _, kf := range s.keyframes {
		bySource[kf.SourceIndex] = append(bySource[kf.SourceIndex], kf)
	}

	for idx, frames := range bySource {
		buf, ok := raw[idx]
		if !ok || len(frames) == 0 {
			continue
		}
		x, y, z, gainDB := interpolate(frames, blockStart)
		gain := dwm.DBToLinear(gainDB)

		scaled := make([]float32, len(buf))
		for i, v := range buf {
			scaled[i] = v * gain
		}
		table.WriteSource(idx, x, y, z, scaled, 1)
	}
}

// interpolate linearly blends a sorted keyframe list's position and gain at
// time t, holding the first keyframe before the timeline starts and the
// last keyframe after it ends.
func interpolate(frames []Keyframe, t float64) (x, y, z, gainDB float32) {
	first := frames[0]
	if t <= first.T {
		return first.X, first.Y, first.Z, first.GainDB
	}
	last := frames[len(frames)-1]
	if t >= last.T {
		return last.X, last.Y, last.Z, last.GainDB
	}
	for i := 0; i < len(frames)-1; i++ {
		a, b := frames[i], frames[i+1]
		if t < a.T || t > b.T {
			continue
		}
		var frac float32
		if span := b.T - a.T; span > 0 {
			frac = float32((t - a.T) / span)
		}
		x = a.X + (b.X-a.X)*frac
		y = a.Y + (b.Y-a.Y)*frac
		z = a.Z + (b.Z-a.Z)*frac
		gainDB = a.GainDB + (b.GainDB-a.GainDB)*frac
		return
	}
	return last.X, last.Y, last.Z, last.GainDB
}
