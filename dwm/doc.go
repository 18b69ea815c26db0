// doc.go - package overview

// Package dwm implements a realtime 3-D rectilinear digital waveguide mesh
// (K-DWM, Kelloniemi 2006) for acoustic simulation. A rectangular volume of
// air is discretized into a lattice of scattering junctions connected by
// unit-delay waveguides; Mesh3D.Step advances every junction by one sample,
// accepting energy injected through WriteValue and emitting pressure through
// ReadValue. The six faces of the volume terminate in independently
// parameterized frequency-dependent boundary filters.
//
// Every exported method on Mesh3D that is documented as part of the realtime
// path (Step, ReadValue, WriteValue) is allocation-free and performs no I/O,
// so it is safe to call from an audio callback. Mesh construction is the only
// place that allocates or can fail.
package dwm
