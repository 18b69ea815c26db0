// Package visualizer renders a live heatmap of one horizontal slice of a
// dwm.Mesh3D in an ebiten window, for watching a simulation run rather than
// only hearing it. A headless build tag swaps in a no-op twin.
package visualizer
