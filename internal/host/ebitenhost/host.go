// Package ebitenhost runs scenes in a desktop (or browser, via wasm) window
// driven by ebiten. Draw is the repaint callback, Layout reports resizes and
// the monitor scale factor is the device pixel ratio.
package ebitenhost

import (
	"errors"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"go-canvimation/internal/canvas"
	"go-canvimation/internal/event"
	"go-canvimation/internal/ui"
)

// Surface is the window's drawing area.
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

// StatsFunc supplies the overlay contents each frame.
type StatsFunc func() ui.Stats

// Host implements canvas.Host and ebiten.Game.
type Host struct {
	canvasID string
	surface  *Surface
	frames   canvas.FrameScheduler
	events   *event.Dispatcher
	ratio    float64

	overlay  *ui.StatsOverlay
	stats    StatsFunc
	statsOff bool

	err error
}

var (
	_ canvas.Host = (*Host)(nil)
	_ ebiten.Game = (*Host)(nil)
)

// New creates a host with one surface named canvasID whose container starts
// at width x height.
func New(canvasID string, width, height int) *Host {
	h := &Host{
		canvasID: canvasID,
		surface: &Surface{
			offsetW: float64(width),
			offsetH: float64(height),
			ctx:     newContext(),
		},
		events: event.NewDispatcher(),
	}
	h.events.Subscribe(event.LoopStopped, h)
	return h
}

// ShowStats enables the stats overlay.
func (h *Host) ShowStats(overlay *ui.StatsOverlay, stats StatsFunc) {
	h.overlay, h.stats = overlay, stats
}

func (h *Host) Surface(id string) (canvas.Surface, error) {
	if id != h.canvasID {
		return nil, fmt.Errorf("surface %q: %w", id, canvas.ErrSurfaceNotFound)
	}
	return h.surface, nil
}

func (h *Host) DevicePixelRatio() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
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

// fail makes the next Update return err, which ends RunGame.
func (h *Host) fail(err error) {
	if h.err == nil {
		h.err = err
	}
}

// Update ends the game on a failure or Escape. F9 toggles the overlay.
func (h *Host) Update() error {
	if h.err != nil {
		return h.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		h.statsOff = !h.statsOff
	}
	return nil
}

func (h *Host) Draw(screen *ebiten.Image) {
	h.surface.ctx.target = screen
	h.frames.RunFrame()
	if h.overlay != nil && h.stats != nil && !h.statsOff {
		if err := h.overlay.Draw(screen, h.stats(), h.ratio); err != nil {
			h.fail(fmt.Errorf("draw overlay: %w", err))
		}
	}
	h.surface.ctx.target = nil
}

// Layout turns outside size or scale factor changes into resize
// notifications and returns the backing store size chosen by the scene.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, hh := float64(outsideWidth), float64(outsideHeight)
	ratio := h.DevicePixelRatio()
	if w != h.surface.offsetW || hh != h.surface.offsetH || ratio != h.ratio {
		h.surface.offsetW, h.surface.offsetH = w, hh
		h.ratio = ratio
		h.events.Resized(w, hh)
	}
	return screenSize(h.surface, outsideWidth, outsideHeight)
}

// screenSize falls back to the outside size until a scene has sized the
// backing store.
func screenSize(s *Surface, outsideWidth, outsideHeight int) (int, int) {
	if s.backingW <= 0 || s.backingH <= 0 {
		return int(math.Max(1, float64(outsideWidth))), int(math.Max(1, float64(outsideHeight)))
	}
	return s.backingW, s.backingH
}

// TPS reports the measured update rate.
func (h *Host) TPS() float64 { return ebiten.ActualTPS() }

// FPS reports the measured frame rate.
func (h *Host) FPS() float64 { return ebiten.ActualFPS() }

// Run opens the window and blocks until it is closed or a frame fails.
func (h *Host) Run(title string) error {
	ebiten.SetWindowSize(int(h.surface.offsetW), int(h.surface.offsetH))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// the scene clears its own surface every tick
	ebiten.SetScreenClearedEveryFrame(false)
	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
