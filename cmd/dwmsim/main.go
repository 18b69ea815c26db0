// main.go - kdwm-mesh demo host: realtime audio, cross-section view, scene scripting

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/intuitionamiga/kdwm-mesh/dwm"
	"github.com/intuitionamiga/kdwm-mesh/internal/audiotap"
	"github.com/intuitionamiga/kdwm-mesh/internal/diagnostics"
	"github.com/intuitionamiga/kdwm-mesh/internal/scene"
	"github.com/intuitionamiga/kdwm-mesh/internal/termhost"
	"github.com/intuitionamiga/kdwm-mesh/internal/visualizer"
)

func boilerPlate() {
	fmt.Println("kdwm-mesh — realtime 3-D rectilinear digital waveguide mesh")
	fmt.Println("q: quit   c: snapshot diagnostics to clipboard   arrow keys: nudge listener")
}

type config struct {
	width, height, depth float32
	sampleRate           float32
	scenePath            string
}

func defaultConfig() config {
	return config{width: 2, height: 2, depth: 2, sampleRate: 48000}
}

// nudgeStep is how far, in meters, a single arrow-key press moves the
// listener pair.
const nudgeStep = 0.02

// listenerRig tracks both ear positions under a mutex, since nudges arrive
// on the terminal-reader goroutine but are published to the realtime tap
// from there directly.
type listenerRig struct {
	mutex  sync.Mutex
	l, r   [3]float32
	params dwm.BoundaryParamSet
}

func newListenerRig(cfg config, params dwm.BoundaryParamSet) *listenerRig {
	return &listenerRig{
		l:      [3]float32{cfg.width*0.5 - 0.05, cfg.height * 0.5, cfg.depth * 0.5},
		r:      [3]float32{cfg.width*0.5 + 0.05, cfg.height * 0.5, cfg.depth * 0.5},
		params: params,
	}
}

func (rig *listenerRig) snapshot() audiotap.SceneState {
	rig.mutex.Lock()
	defer rig.mutex.Unlock()
	return audiotap.SceneState{Params: rig.params, ListenerL: rig.l, ListenerR: rig.r}
}

// nudge offsets both ears by (dx,dy,dz) and returns the resulting state for
// publishing to the tap. Mesh3D clamps out-of-bounds coordinates itself, so
// this never needs to know the mesh's extent.
func (rig *listenerRig) nudge(dx, dy, dz float32) audiotap.SceneState {
	rig.mutex.Lock()
	defer rig.mutex.Unlock()
	rig.l[0] += dx
	rig.l[1] += dy
	rig.l[2] += dz
	rig.r[0] += dx
	rig.r[1] += dy
	rig.r[2] += dz
	return audiotap.SceneState{Params: rig.params, ListenerL: rig.l, ListenerR: rig.r}
}

// parseArgs reads positional/flag-style arguments in the same spirit as the
// teacher's main.go: no flag-parsing library, just os.Args scanned by hand.
// Recognized: -w, -h, -d (meters), -fs (Hz), -scene <path.lua>.
func parseArgs(args []string) (config, error) {
	cfg := defaultConfig()

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-w", "-h", "-d", "-fs":
			if i+1 >= len(args) {
				return cfg, fmt.Errorf("missing value for %s", args[i])
			}
			v, err := strconv.ParseFloat(args[i+1], 32)
			if err != nil {
				return cfg, fmt.Errorf("%s: %w", args[i], err)
			}
			switch args[i] {
			case "-w":
				cfg.width = float32(v)
			case "-h":
				cfg.height = float32(v)
			case "-d":
				cfg.depth = float32(v)
			case "-fs":
				cfg.sampleRate = float32(v)
			}
			i++
		case "-scene":
			if i+1 >= len(args) {
				return cfg, fmt.Errorf("missing path for -scene")
			}
			cfg.scenePath = args[i+1]
			i++
		default:
			return cfg, fmt.Errorf("unrecognized argument %q", args[i])
		}
	}
	return cfg, nil
}

func main() {
	boilerPlate()

	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "kdwm-mesh: %v\n", err)
		os.Exit(1)
	}

	faces := dwm.SixFaces{
		Xp: dwm.KindAdmittanceLowpass, Xn: dwm.KindAdmittanceLowpass,
		Yp: dwm.KindAdmittanceLowpass, Yn: dwm.KindAdmittanceLowpass,
		Zp: dwm.KindAdmittanceLowpass, Zn: dwm.KindAdmittanceLowpass,
	}
	params := dwm.BoundaryParamSet{
		Xp: dwm.NewAdmittanceLowpassParams(0.6, 0.3), Xn: dwm.NewAdmittanceLowpassParams(0.6, 0.3),
		Yp: dwm.NewAdmittanceLowpassParams(0.6, 0.3), Yn: dwm.NewAdmittanceLowpassParams(0.6, 0.3),
		Zp: dwm.NewAdmittanceLowpassParams(0.6, 0.3), Zn: dwm.NewAdmittanceLowpassParams(0.6, 0.3),
	}

	var sc *scene.SceneScript
	if cfg.scenePath != "" {
		sc, err = scene.Load(cfg.scenePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "kdwm-mesh: %v\n", err)
			os.Exit(1)
		}
		faces = sc.Faces()
		params = sc.BoundaryParams()
	}

	mesh, err := dwm.NewMesh3D(cfg.width, cfg.height, cfg.depth, cfg.sampleRate, faces)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kdwm-mesh: %v\n", err)
		os.Exit(1)
	}

	sources := dwm.NewSourceTable()
	driver := dwm.NewRealtimeDriver(mesh, sources)

	tap, err := audiotap.NewOtoTap(int(cfg.sampleRate), driver)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kdwm-mesh: audio device: %v\n", err)
		os.Exit(1)
	}

	rig := newListenerRig(cfg, params)
	state := rig.snapshot()
	tap.SetState(&state)
	tap.Start()
	defer tap.Close()

	vis := visualizer.NewMeshVisualizer(mesh, 640, 480)
	if err := vis.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "kdwm-mesh: visualizer: %v\n", err)
	}
	defer vis.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)
	var frameCount atomic.Uint64
	quit := make(chan struct{})
	var closeQuitOnce sync.Once
	closeQuit := func() { closeQuitOnce.Do(func() { close(quit) }) }

	host := termhost.NewTerminalHost(func(cmd termhost.Command) {
		switch cmd {
		case termhost.CommandQuit:
			closeQuit()
		case termhost.CommandSnapshot:
			snap := diagnostics.Capture(mesh, frameCount.Load())
			if err := diagnostics.CopyToClipboard(snap); err != nil {
				fmt.Fprintf(os.Stderr, "kdwm-mesh: clipboard: %v\n", err)
			} else {
				fmt.Println(snap.Report())
			}
		case termhost.CommandNudgeXNeg:
			state := rig.nudge(-nudgeStep, 0, 0)
			tap.SetState(&state)
		case termhost.CommandNudgeXPos:
			state := rig.nudge(nudgeStep, 0, 0)
			tap.SetState(&state)
		case termhost.CommandNudgeYNeg:
			state := rig.nudge(0, -nudgeStep, 0)
			tap.SetState(&state)
		case termhost.CommandNudgeYPos:
			state := rig.nudge(0, nudgeStep, 0)
			tap.SetState(&state)
		}
	})
	if err := host.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "kdwm-mesh: terminal: %v\n", err)
	} else {
		defer host.Stop()
	}

	group.Go(func() error {
		return countFrames(ctx, cfg.sampleRate, &frameCount)
	})

	if sc != nil {
		group.Go(func() error {
			return runScene(ctx, sc, sources, cfg.sampleRate, closeQuit)
		})
	}

	group.Go(func() error {
		select {
		case <-ctx.Done():
			return nil
		case <-quit:
			cancel()
			return nil
		}
	})

	_ = group.Wait()
	fmt.Println("kdwm-mesh: shutting down")
}

// countFrames increments frameCount once per block duration, giving the
// diagnostics snapshot a rough idea of how many blocks have played, without
// the audio callback itself needing to touch anything outside Mesh3D.
func countFrames(ctx context.Context, sampleRate float32, frameCount *atomic.Uint64) error {
	blockDuration := time.Duration(float64(dwm.BlockSize) / float64(sampleRate) * float64(time.Second))
	ticker := time.NewTicker(blockDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			frameCount.Add(1)
		}
	}
}

// runScene ticks sc once per block (BlockSize samples at cfg sample rate)
// against an impulse-on-first-block dry source, so the demo's scripted
// trajectory is audible without a real upstream source plugin. It never
// touches Mesh3D directly; it only writes into the SourceTable the
// realtime audio callback later drains.
func runScene(ctx context.Context, sc *scene.SceneScript, sources *dwm.SourceTable, sampleRate float32, closeQuit func()) error {
	blockDuration := time.Duration(float64(dwm.BlockSize) / float64(sampleRate) * float64(time.Second))
	ticker := time.NewTicker(blockDuration)
	defer ticker.Stop()

	raw := map[int][]float32{0: make([]float32, dwm.BlockSize)}
	raw[0][0] = 1 // one-shot impulse; scripted position/gain shape where it lands

	block := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		blockStart := float64(block) * blockDuration.Seconds()
		sc.Tick(blockStart, sources, raw)
		raw[0][0] = 0 // impulse fires once; subsequent blocks are silent
		block++

		if sc.Duration() > 0 && blockStart > sc.Duration() {
			closeQuit()
			return nil
		}
	}
}
