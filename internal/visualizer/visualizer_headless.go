//go:build headless

// visualizer_headless.go - no-op cross-section viewer for headless builds

package visualizer

import "github.com/intuitionamiga/kdwm-mesh/dwm"

// MeshVisualizer is a headless stand-in: Start/Stop are no-ops so
// cmd/dwmsim can wire it unconditionally regardless of build tag.
type MeshVisualizer struct {
	mesh *dwm.Mesh3D
}

// NewMeshVisualizer returns a visualizer that never opens a window.
func NewMeshVisualizer(mesh *dwm.Mesh3D, widthPx, heightPx int) *MeshVisualizer {
	return &MeshVisualizer{mesh: mesh}
}

func (v *MeshVisualizer) Start() error { return nil }
func (v *MeshVisualizer) Stop() error  { return nil }
