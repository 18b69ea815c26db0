// driver.go - realtime per-block glue between sources, mesh and output

package dwm

import "math"

// BoundaryParamSet bundles the six per-face boundary parameter records a
// RealtimeDriver passes to Mesh3D.Step every sample.
type BoundaryParamSet struct {
	Xp, Xn BoundaryParams
	Yp, Yn BoundaryParams
	Zp, Zn BoundaryParams
}

// RealtimeDriver is the glue between a SourceTable, a Mesh3D and an output
// block: per sample it injects every active source, advances the mesh, taps
// it at one or two listener positions, and writes the result into an
// interleaved output buffer.
type RealtimeDriver struct {
	mesh    *Mesh3D
	sources *SourceTable
	rawGain float32
}

// NewRealtimeDriver wires a mesh to a source table with unity raw gain.
func NewRealtimeDriver(mesh *Mesh3D, sources *SourceTable) *RealtimeDriver {
	return &RealtimeDriver{mesh: mesh, sources: sources, rawGain: 1}
}

// DBToLinear linearizes a decibel gain: g = 10^(db/20).
func DBToLinear(db float32) float32 {
	return float32(math.Pow(10, float64(db)*0.05))
}

// SetRawGainDB sets the linear gain applied to every source sample before
// injection, from a decibel value.
func (d *RealtimeDriver) SetRawGainDB(db float32) {
	d.rawGain = DBToLinear(db)
}

// ProcessBlock drives BlockSize samples through the mesh: injecting active
// sources, stepping the mesh, and tapping listenerL/listenerR into an
// interleaved output buffer of outChannels channels (channels beyond the
// first two are zeroed). It clears every source's active flag once the
// block is done.
func (d *RealtimeDriver) ProcessBlock(params BoundaryParamSet, listenerL, listenerR [3]float32, out []float32, outChannels int) {
	mesh := d.mesh
	gain := d.rawGain

	for n := 0; n < BlockSize; n++ {
		d.sources.consumeSample(n, func(rec *SourceRecord, sample float32) {
			mesh.WriteValue(rec.PX, rec.PY, rec.PZ, sample*gain)
		})

		mesh.Step(params.Xp, params.Xn, params.Yp, params.Yn, params.Zp, params.Zn)

		l := mesh.ReadValue(listenerL[0], listenerL[1], listenerL[2])
		r := mesh.ReadValue(listenerR[0], listenerR[1], listenerR[2])

		base := n * outChannels
		if outChannels > 0 {
			out[base] = l
		}
		if outChannels > 1 {
			out[base+1] = r
		}
		for ch := 2; ch < outChannels; ch++ {
			out[base+ch] = 0
		}
	}

	d.sources.clearActive()
}

// ListenerFromViewMatrix derives the listener's world position and ear
// positions from a column-major 4x4 view matrix (as delivered by a host's
// spatializer callback) and the distance between ears. The listener
// position is p = -R^T*t, with R the matrix's rotation part (columns 0-2)
// and t its translation column (m[12], m[13], m[14]); ears sit at
// p +/- (R*X-hat)*earsDistance.
func ListenerFromViewMatrix(m [16]float32, earsDistance float32) (left, right [3]float32) {
	lx := -(m[0]*m[12] + m[1]*m[13] + m[2]*m[14])
	ly := -(m[4]*m[12] + m[5]*m[13] + m[6]*m[14])
	lz := -(m[8]*m[12] + m[9]*m[13] + m[10]*m[14])

	rx := m[0] * earsDistance
	ry := m[4] * earsDistance
	rz := m[8] * earsDistance

	left = [3]float32{lx - rx, ly - ry, lz - rz}
	right = [3]float32{lx + rx, ly + ry, lz + rz}
	return left, right
}
