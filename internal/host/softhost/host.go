// Package softhost renders scenes offscreen into an image through a software
// implementation of the HTML canvas API. Frames and resizes happen only when
// the caller asks for them.
package softhost

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	tcanvas "github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"

	"go-canvimation/internal/canvas"
	"go-canvimation/internal/event"
)

// Context forwards to the software canvas of its surface.
type Context struct {
	cv    *tcanvas.Canvas
	alpha float64
	fill  string
}

var _ canvas.Context = (*Context)(nil)

func (c *Context) FillRect(x, y, w, h float64)  { c.cv.FillRect(x, y, w, h) }
func (c *Context) ClearRect(x, y, w, h float64) { c.cv.ClearRect(x, y, w, h) }
func (c *Context) BeginPath()                   { c.cv.BeginPath() }
func (c *Context) Fill()                        { c.cv.Fill() }

func (c *Context) Arc(x, y, r, startAngle, endAngle float64) {
	c.cv.Arc(x, y, r, startAngle, endAngle, false)
}

func (c *Context) GlobalAlpha() float64 { return c.alpha }

func (c *Context) SetGlobalAlpha(alpha float64) {
	if alpha < 0 || alpha > 1 || math.IsNaN(alpha) {
		return
	}
	c.alpha = alpha
	c.cv.SetGlobalAlpha(alpha)
}

func (c *Context) SetFillColor(fill color.Color) {
	c.fill = hexColor(fill)
	c.cv.SetFillStyle(c.fill)
}

func (c *Context) Scale(sx, sy float64) { c.cv.Scale(sx, sy) }
func (c *Context) ResetTransform()      { c.cv.SetTransform(1, 0, 0, 1, 0, 0) }

// hexColor formats the opaque part of c as #rrggbb.
func hexColor(c color.Color) string {
	rgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// Surface owns a software backend sized to its backing store.
type Surface struct {
	offsetW, offsetH float64
	backend          *softwarebackend.SoftwareBackend
	ctx              *Context
}

var _ canvas.Surface = (*Surface)(nil)

func newSurface(width, height float64) *Surface {
	s := &Surface{offsetW: width, offsetH: height, ctx: &Context{alpha: 1, fill: "#000000"}}
	s.SetBackingSize(int(width), int(height))
	return s
}

func (s *Surface) OffsetSize() (float64, float64) { return s.offsetW, s.offsetH }
func (s *Surface) Context2D() canvas.Context      { return s.ctx }

func (s *Surface) BackingSize() (int, int) {
	b := s.backend.Image.Bounds()
	return b.Dx(), b.Dy()
}

// SetBackingSize replaces the backend. Like an HTML canvas whose width is
// assigned, the context state starts over; the fill color is carried along.
func (s *Surface) SetBackingSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s.backend = softwarebackend.New(width, height)
	s.ctx.cv = tcanvas.New(s.backend)
	s.ctx.alpha = 1
	s.ctx.cv.SetFillStyle(s.ctx.fill)
}

// Image returns the backing store. It is overwritten by the next frame.
func (s *Surface) Image() *image.RGBA {
	return s.backend.Image
}

// Host implements canvas.Host over one offscreen surface.
type Host struct {
	canvasID string
	ratio    float64
	surface  *Surface
	frames   canvas.FrameScheduler
	events   *event.Dispatcher
	err      error
}

var _ canvas.Host = (*Host)(nil)

// New creates a host whose surface measures width x height logical pixels,
// rendered at the given pixel ratio.
func New(canvasID string, width, height int, ratio float64) *Host {
	h := &Host{
		canvasID: canvasID,
		ratio:    ratio,
		surface:  newSurface(float64(width), float64(height)),
		events:   event.NewDispatcher(),
	}
	h.events.Subscribe(event.LoopStopped, h)
	return h
}

// OnEvent records the error of a stopped loop.
func (h *Host) OnEvent(e event.Event) {
	if e.Type == event.LoopStopped && h.err == nil {
		h.err = e.Err
	}
}

// Err returns the error that stopped the scene, if any.
func (h *Host) Err() error { return h.err }

func (h *Host) Surface(id string) (canvas.Surface, error) {
	if id != h.canvasID {
		return nil, fmt.Errorf("surface %q: %w", id, canvas.ErrSurfaceNotFound)
	}
	return h.surface, nil
}

func (h *Host) DevicePixelRatio() float64 { return h.ratio }

func (h *Host) RequestAnimationFrame(cb func()) canvas.FrameHandle {
	return h.frames.Request(cb)
}

func (h *Host) CancelAnimationFrame(handle canvas.FrameHandle) {
	h.frames.Cancel(handle)
}

func (h *Host) Events() *event.Dispatcher { return h.events }

// Step runs one frame and reports whether any callback ran.
func (h *Host) Step() bool {
	return h.frames.RunFrame() > 0
}

// Resize changes the logical size and notifies subscribers.
func (h *Host) Resize(width, height int) {
	h.surface.offsetW, h.surface.offsetH = float64(width), float64(height)
	h.events.Resized(float64(width), float64(height))
}

// Snapshot composites the current frame over bg into a new image.
func (h *Host) Snapshot(bg color.Color) *image.RGBA {
	src := h.surface.Image()
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Over)
	return dst
}
