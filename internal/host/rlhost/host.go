// Package rlhost runs scenes in a raylib window.
package rlhost

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"go-canvimation/internal/canvas"
	"go-canvimation/internal/event"
)

// Surface is the raylib window.
type Surface struct {
	offsetW, offsetH   float64
	backingW, backingH int
	ctx                *Context
}

var _ canvas.Surface = (*Surface)(nil)

func (s *Surface) OffsetSize() (float64, float64) { return s.offsetW, s.offsetH }
func (s *Surface) BackingSize() (int, int)        { return s.backingW, s.backingH }
func (s *Surface) Context2D() canvas.Context      { return s.ctx }

func (s *Surface) SetBackingSize(width, height int) {
	s.backingW, s.backingH = width, height
}

// Host implements canvas.Host over a raylib window.
type Host struct {
	canvasID string
	surface  *Surface
	frames   canvas.FrameScheduler
	events   *event.Dispatcher
	err      error
}

var _ canvas.Host = (*Host)(nil)

// New opens the window. Raylib needs a live window before the scene can read
// its size or scale, so the host is created first and closed by Close.
func New(canvasID string, width, height int, title string, background color.Color) *Host {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), title)
	fps := rl.GetMonitorRefreshRate(rl.GetCurrentMonitor())
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(int32(fps))

	h := &Host{
		canvasID: canvasID,
		surface: &Surface{
			offsetW: float64(rl.GetScreenWidth()),
			offsetH: float64(rl.GetScreenHeight()),
			ctx:     newContext(toRL(background)),
		},
		events: event.NewDispatcher(),
	}
	h.events.Subscribe(event.LoopStopped, h)
	return h
}

func (h *Host) Surface(id string) (canvas.Surface, error) {
	if id != h.canvasID {
		return nil, fmt.Errorf("surface %q: %w", id, canvas.ErrSurfaceNotFound)
	}
	return h.surface, nil
}

func (h *Host) DevicePixelRatio() float64 {
	if dpi := rl.GetWindowScaleDPI(); dpi.X > 0 {
		return float64(dpi.X)
	}
	return 1
}

func (h *Host) RequestAnimationFrame(cb func()) canvas.FrameHandle {
	return h.frames.Request(cb)
}

func (h *Host) CancelAnimationFrame(handle canvas.FrameHandle) {
	h.frames.Cancel(handle)
}

func (h *Host) Events() *event.Dispatcher { return h.events }

// OnEvent ends the run when the scene reports that its loop stopped.
func (h *Host) OnEvent(e event.Event) {
	if e.Type == event.LoopStopped && e.Err != nil {
		h.fail(e.Err)
	}
}

// fail ends Run after the current frame.
func (h *Host) fail(err error) {
	if h.err == nil {
		h.err = err
	}
}

// Run drives frames until the window is closed or a frame fails.
func (h *Host) Run() error {
	for !rl.WindowShouldClose() && h.err == nil {
		if rl.IsWindowResized() {
			h.resize()
		}
		h.syncScreen()

		rl.BeginDrawing()
		h.frames.RunFrame()
		rl.EndDrawing()
	}
	return h.err
}

// Close closes the window.
func (h *Host) Close() {
	rl.CloseWindow()
}

func (h *Host) resize() {
	w, hh := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	h.surface.offsetW, h.surface.offsetH = w, hh
	h.events.Resized(w, hh)
}

// syncScreen updates the backing-to-screen factor. Raylib draws in screen
// units and applies the DPI scale itself.
func (h *Host) syncScreen() {
	ctx := h.surface.ctx
	ctx.screenW, ctx.screenH = float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	ctx.toScreen = screenFactor(ctx.screenW, h.surface.backingW)
}

func screenFactor(screenW float64, backingW int) float64 {
	if backingW <= 0 || screenW <= 0 {
		return 1
	}
	return screenW / float64(backingW)
}
