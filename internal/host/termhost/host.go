// Package termhost runs scenes in a terminal through tcell. Every cell holds
// a braille rune, so one cell shows a 2x4 block of logical pixels.
package termhost

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"go-canvimation/internal/canvas"
	"go-canvimation/internal/config"
	"go-canvimation/internal/event"
)

// Surface is the whole terminal window.
type Surface struct {
	offsetW, offsetH float64
	raster           *Raster
}

var _ canvas.Surface = (*Surface)(nil)

func (s *Surface) OffsetSize() (float64, float64) { return s.offsetW, s.offsetH }
func (s *Surface) BackingSize() (int, int)        { return s.raster.Size() }
func (s *Surface) Context2D() canvas.Context      { return s.raster }

func (s *Surface) SetBackingSize(width, height int) {
	s.raster.Resize(width, height)
}

// Host implements canvas.Host on a tcell screen.
type Host struct {
	screen   tcell.Screen
	canvasID string
	surface  *Surface
	frames   canvas.FrameScheduler
	events   *event.Dispatcher
	interval time.Duration
	err      error
}

var _ canvas.Host = (*Host)(nil)

// New wraps an initialized screen. frameRate is the number of repaints per second.
func New(screen tcell.Screen, canvasID string, frameRate int) *Host {
	if frameRate <= 0 {
		frameRate = config.TermFrameRate
	}
	h := &Host{
		screen:   screen,
		canvasID: canvasID,
		surface:  &Surface{raster: NewRaster(0, 0)},
		events:   event.NewDispatcher(),
		interval: time.Second / time.Duration(frameRate),
	}
	h.surface.offsetW, h.surface.offsetH = logicalSize(screen.Size())
	h.events.Subscribe(event.LoopStopped, h)
	return h
}

func logicalSize(cols, rows int) (float64, float64) {
	return float64(cols * config.CellWidth), float64(rows * config.CellHeight)
}

func (h *Host) Surface(id string) (canvas.Surface, error) {
	if id != h.canvasID {
		return nil, fmt.Errorf("surface %q: %w", id, canvas.ErrSurfaceNotFound)
	}
	return h.surface, nil
}

// DevicePixelRatio is 1, a dot is the smallest addressable unit.
func (h *Host) DevicePixelRatio() float64 { return 1 }

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

// fail ends Run with err.
func (h *Host) fail(err error) {
	if h.err == nil {
		h.err = err
	}
}

// Frame runs one repaint and shows it.
func (h *Host) Frame() {
	h.frames.RunFrame()
	h.surface.raster.Flush(h.screen)
	h.screen.Show()
}

func (h *Host) resize() {
	h.screen.Sync()
	w, hh := logicalSize(h.screen.Size())
	if w == h.surface.offsetW && hh == h.surface.offsetH {
		return
	}
	h.surface.offsetW, h.surface.offsetH = w, hh
	h.events.Resized(w, hh)
}

// quit reports whether ev asks to leave.
func quit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// Run repaints until ctx is done, a quit key is pressed or a frame fails.
// Events are polled on a separate goroutine and handled here, so frames and
// resizes never overlap.
func (h *Host) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				h.resize()
			case *tcell.EventKey:
				if quit(ev) {
					return nil
				}
			}
		case <-ticker.C:
			h.Frame()
		}
		if h.err != nil {
			return h.err
		}
	}
}
