// Package viewer implements the interactive terrain viewer loop.
package viewer

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/skyfell/terrascape/internal/config"
	"github.com/skyfell/terrascape/internal/engine/camera"
	"github.com/skyfell/terrascape/internal/engine/input"
	"github.com/skyfell/terrascape/internal/engine/renderer"
	"github.com/skyfell/terrascape/internal/engine/window"
	"github.com/skyfell/terrascape/internal/logger"
	"github.com/skyfell/terrascape/internal/scene"
	"github.com/skyfell/terrascape/internal/terrain"
	"github.com/skyfell/terrascape/pkg/math"
)

// Projection constants, shared by every frame.
const (
	fovDegrees = 45.0
	zNear      = 0.1
	zFar       = 8000.0
)

// movesPerSecond converts held-key movement to ticks; the camera step is
// tuned for roughly 60 ticks a second.
const movesPerSecond = 60.0

// Viewer is the interactive application instance.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.FlyCamera

	mesh      *terrain.Mesh
	landscape *renderer.Landscape
	caps      terrain.RenderCaps
	record    *scene.Record
	proj      math.Mat4
}

// New creates the viewer: restores the scene record if one exists, opens
// the window and GL context, and generates the first terrain.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		caps:   terrain.DefaultRenderCaps(),
		record: scene.Default(),
	}

	if cfg.Scene.File != "" {
		rec, err := scene.Load(cfg.Scene.File)
		switch {
		case err == nil:
			v.record = rec
			v.caps = terrain.UnpackRenderCaps(rec.Flags)
			logger.Info("scene record restored",
				zap.String("file", cfg.Scene.File),
				zap.Uint32("seed", rec.Seed),
			)
		case errors.Is(err, fs.ErrNotExist):
			logger.Info("no scene record, starting fresh",
				zap.String("file", cfg.Scene.File))
		default:
			return nil, err
		}
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "Terrascape",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	v.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()
	v.camera = camera.NewFlyCamera()
	v.camera.Restore(v.record)
	v.setProjection(cfg.Graphics.Width, cfg.Graphics.Height)

	// The record's seed (possibly zero for "fresh") drives the first map.
	if err := v.regenerate(v.record.Seed); err != nil {
		v.Close()
		return nil, err
	}

	return v, nil
}

// regenerate builds a new terrain and swaps it in only once it is complete,
// so a failed generation leaves the current landscape on screen.
func (v *Viewer) regenerate(seed uint32) error {
	params := v.cfg.ToParams()
	params.Seed = seed

	start := time.Now()
	mesh, err := terrain.Generate(params)
	if err != nil {
		return fmt.Errorf("terrain generation failed: %w", err)
	}
	logger.Info("terrain generated",
		zap.Uint32("seed", mesh.Seed),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Duration("took", time.Since(start)),
	)

	v.renderer.Release(v.landscape)
	v.mesh = mesh
	v.landscape = v.renderer.Upload(mesh)
	v.record.Seed = mesh.Seed
	v.saveScene()
	return nil
}

// saveScene writes the current pose and toggles next to the terrain seed.
func (v *Viewer) saveScene() {
	if v.cfg.Scene.File == "" {
		return
	}
	v.camera.Store(v.record)
	v.record.Flags = v.caps.Pack()
	if err := scene.Save(v.cfg.Scene.File, v.record); err != nil {
		logger.Warn("failed to save scene record", zap.Error(err))
	}
}

func (v *Viewer) setProjection(width, height int) {
	aspect := float32(width) / float32(height)
	v.proj = math.Perspective(math.Radians(fovDegrees), aspect, zNear, zFar)
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true
	lastTime := time.Now()

	logger.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			break
		}

		for _, event := range v.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				v.renderer.Resize(event.Width, event.Height)
				v.setProjection(event.Width, event.Height)
			case input.EventKeyDown:
				if err := v.handleKey(event.Key); err != nil {
					return err
				}
			}
		}

		v.update(dt)
		v.render()
		v.window.SwapBuffers()
	}

	v.saveScene()
	return nil
}

// handleKey reacts to the single-shot key bindings.
func (v *Viewer) handleKey(key sdl.Scancode) error {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_SPACE:
		// New map: a zero seed makes generation pick a fresh one.
		return v.regenerate(0)
	case sdl.SCANCODE_RETURN:
		v.camera.Reset()
	case sdl.SCANCODE_X:
		v.caps.Fill = !v.caps.Fill
	case sdl.SCANCODE_C:
		v.caps.Shaded = !v.caps.Shaded
	case sdl.SCANCODE_V:
		v.caps.Textured = !v.caps.Textured
	case sdl.SCANCODE_B:
		v.caps.Colored = !v.caps.Colored
	case sdl.SCANCODE_N:
		v.caps.Objects = !v.caps.Objects
	}
	return nil
}

// update advances the camera from held keys and mouse dragging.
func (v *Viewer) update(dt float64) {
	var forward, right float32
	if v.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if forward != 0 || right != 0 {
		scale := float32(dt * movesPerSecond)
		v.camera.Move(forward*scale, right*scale)
		if v.mesh != nil {
			v.camera.Wrap(v.mesh.Extent)
		}
	}

	if dx, dy := v.input.DragDelta(); dx != 0 || dy != 0 {
		v.camera.HandleDrag(float32(dx), float32(dy))
	}
}

// render draws the current frame.
func (v *Viewer) render() {
	v.renderer.Begin()
	v.renderer.Draw(v.landscape, v.caps, v.proj, v.camera.ViewMatrix(), v.record.LightDir)
}

// Close tears everything down in reverse creation order.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Release(v.landscape)
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
