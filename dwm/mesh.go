// mesh.go - 3-D rectilinear K-DWM mesh

package dwm

import "math"

// SixFaces configures the filter kind for each of the mesh's six faces.
// Each face is independently typed: nothing ties, say, Zp and Zn together.
type SixFaces struct {
	Xp, Xn FilterKind
	Yp, Yn FilterKind
	Zp, Zn FilterKind
}

// Mesh3D is a 3-D rectilinear K-DWM mesh: a lattice of scattering junctions
// over a continuous [0,W]x[0,H]x[0,D] volume, terminated on all six faces by
// BoundaryJunctions. Step, ReadValue and WriteValue are allocation-free and
// safe to call from a realtime audio callback; only NewMesh3D allocates.
type Mesh3D struct {
	width, height, depth float32
	density              float32
	nx, ny, nz           int

	pCur, pPrev []float32

	faceXp, faceXn []BoundaryJunction // size ny*nz, indexed z*ny+y
	faceYp, faceYn []BoundaryJunction // size nx*nz, indexed z*nx+x
	faceZp, faceZn []BoundaryJunction // size nx*ny, indexed y*nx+x

	faces SixFaces
}

// NewMesh3D builds a mesh spanning width x height x depth meters, sampled at
// fs Hz, with the given per-face boundary filter kinds. It fails only if
// width, height, depth or fs is not strictly positive.
func NewMesh3D(width, height, depth, fs float32, faces SixFaces) (*Mesh3D, error) {
	if width <= 0 || height <= 0 || depth <= 0 || fs <= 0 {
		return nil, ErrInvalidGeometry
	}

	density := fs / (float32(math.Sqrt(3)) * SpeedOfSound)
	nx := junctionCount(width, density)
	ny := junctionCount(height, density)
	nz := junctionCount(depth, density)

	m := &Mesh3D{
		width:   width,
		height:  height,
		depth:   depth,
		density: density,
		nx:      nx,
		ny:      ny,
		nz:      nz,
		faces:   faces,

		pCur:  make([]float32, nx*ny*nz),
		pPrev: make([]float32, nx*ny*nz),

		faceXp: newJunctions(faces.Xp, ny*nz),
		faceXn: newJunctions(faces.Xn, ny*nz),
		faceYp: newJunctions(faces.Yp, nx*nz),
		faceYn: newJunctions(faces.Yn, nx*nz),
		faceZp: newJunctions(faces.Zp, nx*ny),
		faceZn: newJunctions(faces.Zn, nx*ny),
	}
	return m, nil
}

func junctionCount(size, density float32) int {
	n := int(math.Ceil(float64(size * density)))
	if n < 1 {
		return 1
	}
	return n
}

func newJunctions(kind FilterKind, n int) []BoundaryJunction {
	js := make([]BoundaryJunction, n)
	for i := range js {
		js[i] = BoundaryJunction{filter: newFilter(kind)}
	}
	return js
}

// Dimensions returns the mesh's junction counts along x, y and z.
func (m *Mesh3D) Dimensions() (nx, ny, nz int) {
	return m.nx, m.ny, m.nz
}

// Extent returns the mesh's physical size in meters along x, y and z, as
// given to NewMesh3D. Useful for mapping a mesh onto screen or world space
// without needing to know the junction density.
func (m *Mesh3D) Extent() (width, height, depth float32) {
	return m.width, m.height, m.depth
}

// FaceEnergy returns the mean reflected energy across each face's
// junctions, in SixFaces order (Xp, Xn, Yp, Yn, Zp, Zn). It is a coarse
// diagnostic, not part of the realtime recurrence: safe to call
// concurrently with Step for a snapshot view, same caveat as ReadValue.
func (m *Mesh3D) FaceEnergy() [6]float32 {
	return [6]float32{
		faceMeanEnergy(m.faceXp),
		faceMeanEnergy(m.faceXn),
		faceMeanEnergy(m.faceYp),
		faceMeanEnergy(m.faceYn),
		faceMeanEnergy(m.faceZp),
		faceMeanEnergy(m.faceZn),
	}
}

func faceMeanEnergy(js []BoundaryJunction) float32 {
	if len(js) == 0 {
		return 0
	}
	var sum float32
	for i := range js {
		sum += js[i].ReflectedEnergy()
	}
	return sum / float32(len(js))
}

// Reset zero-fills both pressure buffers and reinitializes every boundary
// junction (and its embedded filter) to its zero state.
func (m *Mesh3D) Reset() {
	for i := range m.pCur {
		m.pCur[i] = 0
	}
	for i := range m.pPrev {
		m.pPrev[i] = 0
	}
	for i := range m.faceXp {
		m.faceXp[i].Reset()
		m.faceXn[i].Reset()
	}
	for i := range m.faceYp {
		m.faceYp[i].Reset()
		m.faceYn[i].Reset()
	}
	for i := range m.faceZp {
		m.faceZp[i].Reset()
		m.faceZn[i].Reset()
	}
}

func (m *Mesh3D) linear(x, y, z int) int {
	return (z*m.ny+y)*m.nx + x
}

func clampFloat32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// interp maps a world coordinate to its eight surrounding junction indices
// and the three fractional blend weights between them, clamping the
// coordinate into the mesh's volume first.
func (m *Mesh3D) interp(x, y, z float32) (i000, i100, i010, i110, i001, i101, i011, i111 int, px, py, pz float32) {
	xs := clampFloat32(x, 0, m.width) * m.density
	ys := clampFloat32(y, 0, m.height) * m.density
	zs := clampFloat32(z, 0, m.depth) * m.density

	x0 := clampInt(int(math.Floor(float64(xs))), 0, m.nx-1)
	y0 := clampInt(int(math.Floor(float64(ys))), 0, m.ny-1)
	z0 := clampInt(int(math.Floor(float64(zs))), 0, m.nz-1)
	x1 := clampInt(int(math.Ceil(float64(xs))), 0, m.nx-1)
	y1 := clampInt(int(math.Ceil(float64(ys))), 0, m.ny-1)
	z1 := clampInt(int(math.Ceil(float64(zs))), 0, m.nz-1)

	px = xs - float32(math.Floor(float64(xs)))
	py = ys - float32(math.Floor(float64(ys)))
	pz = zs - float32(math.Floor(float64(zs)))

	i000 = m.linear(x0, y0, z0)
	i100 = m.linear(x1, y0, z0)
	i010 = m.linear(x0, y1, z0)
	i110 = m.linear(x1, y1, z0)
	i001 = m.linear(x0, y0, z1)
	i101 = m.linear(x1, y0, z1)
	i011 = m.linear(x0, y1, z1)
	i111 = m.linear(x1, y1, z1)
	return
}

// ReadValue samples the trilinear interpolation of the eight junctions
// surrounding the world coordinate (x,y,z), clamping out-of-range
// coordinates to the mesh's volume. It never mutates mesh state.
func (m *Mesh3D) ReadValue(x, y, z float32) float32 {
	i000, i100, i010, i110, i001, i101, i011, i111, px, py, pz := m.interp(x, y, z)
	p := m.pCur

	c00 := lerp(p[i000], p[i100], px)
	c10 := lerp(p[i010], p[i110], px)
	c01 := lerp(p[i001], p[i101], px)
	c11 := lerp(p[i011], p[i111], px)

	c0 := lerp(c00, c10, py)
	c1 := lerp(c01, c11, py)
	return lerp(c0, c1, pz)
}

// WriteValue blends v into the eight junctions surrounding world coordinate
// (x,y,z), weighted by trilinear proximity. This is a weighted overwrite,
// not an additive injection: writing v=0 at full weight mutes that corner.
func (m *Mesh3D) WriteValue(x, y, z, v float32) {
	i000, i100, i010, i110, i001, i101, i011, i111, px, py, pz := m.interp(x, y, z)
	p := m.pCur

	p[i000] = lerp(p[i000], v, (1-px)*(1-py)*(1-pz))
	p[i100] = lerp(p[i100], v, px*(1-py)*(1-pz))
	p[i010] = lerp(p[i010], v, (1-px)*py*(1-pz))
	p[i110] = lerp(p[i110], v, px*py*(1-pz))
	p[i001] = lerp(p[i001], v, (1-px)*(1-py)*pz)
	p[i101] = lerp(p[i101], v, px*(1-py)*pz)
	p[i011] = lerp(p[i011], v, (1-px)*py*pz)
	p[i111] = lerp(p[i111], v, px*py*pz)
}

// Step advances the mesh by one sample, given the current boundary
// parameters for each of the six faces. It visits junctions in linearized
// order (x fastest, then y, then z), which fixes the order each face array
// is consumed in and matches each face's declared 2-D layout.
func (m *Mesh3D) Step(pxp, pxn, pyp, pyn, pzp, pzn BoundaryParams) {
	nx, ny, nz := m.nx, m.ny, m.nz
	stride := nx * ny

	i := 0
	ixp, ixn, iyp, iyn, izp, izn := 0, 0, 0, 0, 0, 0

	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				cur := m.pCur[i]

				var xp, xn, yp, yn, zp, zn float32

				if x < nx-1 {
					xp = m.pCur[i+1]
				} else {
					xp = m.faceXp[ixp].Update(pxp, cur)
					ixp++
				}
				if x > 0 {
					xn = m.pCur[i-1]
				} else {
					xn = m.faceXn[ixn].Update(pxn, cur)
					ixn++
				}

				if y < ny-1 {
					yp = m.pCur[i+nx]
				} else {
					yp = m.faceYp[iyp].Update(pyp, cur)
					iyp++
				}
				if y > 0 {
					yn = m.pCur[i-nx]
				} else {
					yn = m.faceYn[iyn].Update(pyn, cur)
					iyn++
				}

				if z < nz-1 {
					zp = m.pCur[i+stride]
				} else {
					zp = m.faceZp[izp].Update(pzp, cur)
					izp++
				}
				if z > 0 {
					zn = m.pCur[i-stride]
				} else {
					zn = m.faceZn[izn].Update(pzn, cur)
					izn++
				}

				m.pPrev[i] = (xp+xn+yp+yn+zp+zn)/3 - m.pPrev[i]
				i++
			}
		}
	}

	m.pCur, m.pPrev = m.pPrev, m.pCur
}
