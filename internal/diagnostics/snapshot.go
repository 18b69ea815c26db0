// snapshot.go - coarse field sweep and clipboard-copyable text report

package diagnostics

import (
	"fmt"
	"math"

	"golang.design/x/clipboard"

	"github.com/intuitionamiga/kdwm-mesh/dwm"
)

// sampleGrid is the number of ReadValue taps per axis in a diagnostic
// sweep: coarse enough to stay cheap on a UI goroutine, fine enough to
// catch gross energy trends. Never run on the realtime audio thread —
// sampleGrid^3 ReadValue calls is far beyond a per-sample budget.
const sampleGrid = 12

// Snapshot summarizes a mesh's current pressure field at the moment it was
// captured.
type Snapshot struct {
	FrameCount    uint64
	RMS           float32
	Peak          float32
	PerFaceEnergy [6]float32 // Xp, Xn, Yp, Yn, Zp, Zn, mesh.FaceEnergy order
}

// Capture sweeps a sampleGrid x sampleGrid x sampleGrid lattice of
// ReadValue taps across mesh's volume and summarizes the field as RMS and
// peak magnitude, tagging the result with frameCount (the caller's own
// notion of how many blocks have played so far).
func Capture(mesh *dwm.Mesh3D, frameCount uint64) Snapshot {
	width, height, depth := mesh.Extent()

	var sumSq float64
	var peak float32
	n := 0

	for xi := 0; xi < sampleGrid; xi++ {
		x := width * float32(xi) / float32(sampleGrid-1)
		for yi := 0; yi < sampleGrid; yi++ {
			y := height * float32(yi) / float32(sampleGrid-1)
			for zi := 0; zi < sampleGrid; zi++ {
				z := depth * float32(zi) / float32(sampleGrid-1)

				p := mesh.ReadValue(x, y, z)
				sumSq += float64(p) * float64(p)
				if abs := float32(math.Abs(float64(p))); abs > peak {
					peak = abs
				}
				n++
			}
		}
	}

	return Snapshot{
		FrameCount:    frameCount,
		RMS:           float32(math.Sqrt(sumSq / float64(n))),
		Peak:          peak,
		PerFaceEnergy: mesh.FaceEnergy(),
	}
}

// Report renders the snapshot as the short text block CopyToClipboard and
// CopyTo copy verbatim.
func (s Snapshot) Report() string {
	f := s.PerFaceEnergy
	return fmt.Sprintf(
		"kdwm-mesh diagnostics\nframe %d\nrms %.6f\npeak %.6f\nface energy xp=%.6f xn=%.6f yp=%.6f yn=%.6f zp=%.6f zn=%.6f\n",
		s.FrameCount, s.RMS, s.Peak, f[0], f[1], f[2], f[3], f[4], f[5],
	)
}

// Recorder is the destination a report is copied to. The real clipboard
// satisfies it via clipboardRecorder; tests can supply a fake to capture
// the report without touching the OS clipboard.
type Recorder interface {
	Write(format clipboard.Format, data []byte)
}

type clipboardRecorder struct{}

func (clipboardRecorder) Write(format clipboard.Format, data []byte) {
	clipboard.Write(format, data)
}

var clipboardReady bool

// CopyToClipboard writes s's report to the OS clipboard via
// golang.design/x/clipboard, initializing it on first use.
func CopyToClipboard(s Snapshot) error {
	if !clipboardReady {
		if err := clipboard.Init(); err != nil {
			return err
		}
		clipboardReady = true
	}
	CopyTo(clipboardRecorder{}, s)
	return nil
}

// CopyTo writes s's report to an arbitrary Recorder.
func CopyTo(rec Recorder, s Snapshot) {
	rec.Write(clipboard.FmtText, []byte(s.Report()))
}
