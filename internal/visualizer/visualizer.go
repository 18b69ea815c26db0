//go:build !headless

// visualizer.go - ebiten window painting a live cross-section of the mesh

package visualizer

import (
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"
	ximagedraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/intuitionamiga/kdwm-mesh/dwm"
)

// MeshVisualizer is an ebiten.Game that paints the mesh's z-mid-plane pressure
// field as a heatmap, redrawn once per display refresh from whatever state
// the realtime driver last left in the mesh. It never touches the mesh's hot
// path itself: Draw only calls Mesh3D.ReadValue, which is allocation-free and
// safe to call concurrently with Step for a snapshot view (the usual DWM
// caveat applies: a frame may straddle a single Step call, which is
// inconsequential for a visualization).
type MeshVisualizer struct {
	mesh *dwm.Mesh3D

	width, height int
	frameBuffer   []byte
	bufferMutex   sync.RWMutex
	running       bool
	frameCount    uint64
	vsyncChan     chan struct{}

	clipboardOnce sync.Once
	clipboardOK   bool
}

// NewMeshVisualizer builds a visualizer for mesh with a widthPx x heightPx
// window.
func NewMeshVisualizer(mesh *dwm.Mesh3D, widthPx, heightPx int) *MeshVisualizer {
	return &MeshVisualizer{
		mesh:        mesh,
		width:       widthPx,
		height:      heightPx,
		frameBuffer: make([]byte, widthPx*heightPx*4),
		vsyncChan:   make(chan struct{}, 1),
	}
}

// Start opens the window and begins rendering in its own goroutine. It
// blocks until the first frame has been drawn.
func (v *MeshVisualizer) Start() error {
	if v.running {
		return nil
	}
	v.running = true
	ebiten.SetWindowSize(v.width, v.height)
	ebiten.SetWindowTitle("kdwm-mesh — cross-section")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	go func() {
		if err := ebiten.RunGame(v); err != nil {
			fmt.Printf("visualizer: %v\n", err)
		}
	}()

	<-v.vsyncChan
	return nil
}

// Stop signals the running game loop to terminate on its next Update.
func (v *MeshVisualizer) Stop() error {
	v.running = false
	return nil
}

// Update implements ebiten.Game: it renders the current mesh slice into the
// frame buffer and handles the one diagnostic hotkey (Ctrl+Shift+C to copy a
// one-line text summary, the mesh extent and frame count, to the clipboard).
func (v *MeshVisualizer) Update() error {
	if ebiten.IsWindowBeingClosed() {
		v.running = false
		return ebiten.Termination
	}
	if !v.running {
		return ebiten.Termination
	}

	v.renderSlice()

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		v.copySliceToClipboard()
	}
	return nil
}

// renderSlice samples the mesh's z = depth/2 plane on a width x height pixel
// grid and writes an RGBA heatmap (blue = negative pressure, red = positive,
// black = zero) into the frame buffer.
func (v *MeshVisualizer) renderSlice() {
	w, h, d := v.mesh.Extent()
	zMid := d * 0.5

	v.bufferMutex.Lock()
	for py := 0; py < v.height; py++ {
		wy := (float32(py) / float32(v.height-1)) * h
		row := py * v.width * 4
		for px := 0; px < v.width; px++ {
			wx := (float32(px) / float32(v.width-1)) * w
			p := v.mesh.ReadValue(wx, wy, zMid)
			r, g, b := heatmapColor(p)
			off := row + px*4
			v.frameBuffer[off] = r
			v.frameBuffer[off+1] = g
			v.frameBuffer[off+2] = b
			v.frameBuffer[off+3] = 0xFF
		}
	}
	v.bufferMutex.Unlock()
	v.frameCount++
}

// heatmapColor maps a pressure value clamped to [-1,1] onto a blue-black-red
// diverging color ramp.
func heatmapColor(p float32) (r, g, b byte) {
	if p > 1 {
		p = 1
	}
	if p < -1 {
		p = -1
	}
	if p >= 0 {
		return byte(p * 255), 0, 0
	}
	return 0, 0, byte(-p * 255)
}

// Draw implements ebiten.Game.
func (v *MeshVisualizer) Draw(screen *ebiten.Image) {
	frame := image.NewRGBA(image.Rect(0, 0, v.width, v.height))
	v.bufferMutex.RLock()
	copy(frame.Pix, v.frameBuffer)
	v.bufferMutex.RUnlock()

	v.drawAxisTicks(frame)
	drawLabel(frame, fmt.Sprintf("frame %d", v.frameCount), 4, 16)

	window := ebiten.NewImageFromImage(frame)
	screen.DrawImage(window, nil)

	select {
	case v.vsyncChan <- struct{}{}:
	default:
	}
}

// axisTickCount is how many labeled gridlines are drawn along each edge of
// the rendered slice, not counting the 0 origin tick.
const axisTickCount = 4

// drawAxisTicks labels the slice's bottom and left edges with the world
// coordinates (in meters) each pixel column/row corresponds to, the same
// "rasterize a short string, composite it onto the frame" shape drawLabel
// already uses for the frame counter.
func (v *MeshVisualizer) drawAxisTicks(dst stddraw.Image) {
	w, h, _ := v.mesh.Extent()

	for i := 0; i <= axisTickCount; i++ {
		frac := float32(i) / float32(axisTickCount)

		px := int(frac * float32(v.width-1))
		label := fmt.Sprintf("%.2f", frac*w)
		drawLabel(dst, label, clampLabelX(px, v.width), v.height-14)

		py := int(frac * float32(v.height-1))
		label = fmt.Sprintf("%.2f", frac*h)
		drawLabel(dst, label, 2, clampLabelY(py, v.height))
	}
}

func clampLabelX(px, width int) int {
	if px > width-28 {
		return width - 28
	}
	return px
}

func clampLabelY(py, height int) int {
	if py > height-12 {
		return height - 12
	}
	if py < 12 {
		return 12
	}
	return py
}

// drawLabel rasterizes text with the basicfont face into a small RGBA image,
// then composites it onto dst at (x,y) with golang.org/x/image/draw — the
// same "rasterize glyphs, draw.Draw them onto the frame" shape the engine
// uses for its own overlay text. Allocating a fresh label image per frame is
// fine here — Draw runs on the display refresh goroutine, not the realtime
// audio path.
func drawLabel(dst stddraw.Image, text string, x, y int) {
	face := basicfont.Face7x13
	bounds, _ := font.BoundString(face, text)
	w := (bounds.Max.X - bounds.Min.X).Ceil() + 2
	h := face.Metrics().Height.Ceil() + 2
	if w <= 0 || h <= 0 {
		return
	}

	label := image.NewRGBA(image.Rect(0, 0, w, h))
	drawer := font.Drawer{
		Dst:  label,
		Src:  image.NewUniform(color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}),
		Face: face,
		Dot:  fixed.P(1, face.Metrics().Ascent.Ceil()),
	}
	drawer.DrawString(text)

	dstRect := image.Rect(x, y, x+w, y+h)
	ximagedraw.Draw(dst, dstRect, label, image.Point{}, ximagedraw.Over)
}

// Layout implements ebiten.Game.
func (v *MeshVisualizer) Layout(_, _ int) (int, int) {
	return v.width, v.height
}

func (v *MeshVisualizer) copySliceToClipboard() {
	v.clipboardOnce.Do(func() {
		v.clipboardOK = clipboard.Init() == nil
	})
	if !v.clipboardOK {
		return
	}
	w, h, d := v.mesh.Extent()
	report := fmt.Sprintf("kdwm-mesh cross-section: %.3fx%.3fx%.3fm, frame %d\n", w, h, d, v.frameCount)
	clipboard.Write(clipboard.FmtText, []byte(report))
}
