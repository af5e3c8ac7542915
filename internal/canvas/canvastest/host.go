package canvastest

import (
	"fmt"

	"go-canvimation/internal/canvas"
	"go-canvimation/internal/event"
)

// Surface is an in-memory canvas.Surface backed by a Recorder.
type Surface struct {
	Width, Height float64
	backingW      int
	backingH      int
	Recorder      *Recorder
	// BackingSets counts SetBackingSize calls.
	BackingSets int
}

var _ canvas.Surface = (*Surface)(nil)

// NewSurface creates a surface whose container measures width x height.
func NewSurface(width, height float64) *Surface {
	return &Surface{Width: width, Height: height, Recorder: NewRecorder()}
}

func (s *Surface) OffsetSize() (float64, float64) { return s.Width, s.Height }
func (s *Surface) BackingSize() (int, int)        { return s.backingW, s.backingH }
func (s *Surface) Context2D() canvas.Context      { return s.Recorder }

func (s *Surface) SetBackingSize(width, height int) {
	s.backingW, s.backingH = width, height
	s.BackingSets++
}

// Host is a canvas.Host whose frames advance only when Frame is called.
type Host struct {
	Ratio    float64
	surfaces map[string]*Surface
	frames   canvas.FrameScheduler
	events   *event.Dispatcher
	// Requests counts RequestAnimationFrame calls.
	Requests int
}

var _ canvas.Host = (*Host)(nil)

// NewHost creates a host with pixel ratio 1 and no surfaces.
func NewHost() *Host {
	return &Host{
		Ratio:    1,
		surfaces: make(map[string]*Surface),
		events:   event.NewDispatcher(),
	}
}

// AddSurface registers s under id.
func (h *Host) AddSurface(id string, s *Surface) *Surface {
	h.surfaces[id] = s
	return s
}

func (h *Host) Surface(id string) (canvas.Surface, error) {
	s, ok := h.surfaces[id]
	if !ok {
		return nil, fmt.Errorf("surface %q: %w", id, canvas.ErrSurfaceNotFound)
	}
	return s, nil
}

func (h *Host) DevicePixelRatio() float64 { return h.Ratio }

func (h *Host) RequestAnimationFrame(cb func()) canvas.FrameHandle {
	h.Requests++
	return h.frames.Request(cb)
}

func (h *Host) CancelAnimationFrame(handle canvas.FrameHandle) {
	h.frames.Cancel(handle)
}

func (h *Host) Events() *event.Dispatcher { return h.events }

// Frame runs one repaint and returns the number of callbacks invoked.
func (h *Host) Frame() int {
	return h.frames.RunFrame()
}

// Pending returns the number of queued frame callbacks.
func (h *Host) Pending() int {
	return h.frames.Pending()
}

// Resize changes the container size of surface id and notifies subscribers.
func (h *Host) Resize(id string, width, height float64) {
	s := h.surfaces[id]
	s.Width, s.Height = width, height
	h.events.Resized(width, height)
}
