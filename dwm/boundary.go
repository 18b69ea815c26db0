// boundary.go - 1-D K-DWM terminating boundary junction

package dwm

// BoundaryJunction represents one cell of a mesh face: it wraps a
// BoundaryFilter and tracks the two delay samples the K-DWM boundary
// recurrence needs on top of the filter's own state.
type BoundaryJunction struct {
	filter     BoundaryFilter
	pPlusPrev  float32
	pMinusPrev float32
}

// NewBoundaryJunction builds a boundary cell around the given filter. The
// junction takes ownership of the filter instance; callers should not share
// one filter between two junctions.
func NewBoundaryJunction(filter BoundaryFilter) *BoundaryJunction {
	return &BoundaryJunction{filter: filter}
}

// Update advances the boundary's state by one sample and returns the
// reflected K-value the adjacent interior junction will see as its "virtual
// neighbor" at the next timestep.
func (j *BoundaryJunction) Update(params BoundaryParams, kIn float32) float32 {
	pPlus := kIn - j.pMinusPrev
	pOut := j.filter.Process(params, pPlus)

	j.pMinusPrev = pOut - j.pPlusPrev
	j.pPlusPrev = pPlus

	return pOut
}

// Reset zeroes the junction's delay state and its embedded filter.
func (j *BoundaryJunction) Reset() {
	j.pPlusPrev = 0
	j.pMinusPrev = 0
	j.filter.Reset()
}

// ReflectedEnergy returns the squared magnitude of the junction's last
// outgoing reflected sample — a coarse, non-realtime measure of how much
// energy this cell is currently sending back into the interior.
func (j *BoundaryJunction) ReflectedEnergy() float32 {
	return j.pMinusPrev * j.pMinusPrev
}
