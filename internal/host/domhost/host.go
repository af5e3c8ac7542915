//go:build js && !wasm

// Package domhost runs scenes on an HTML canvas element when compiled with
// GopherJS. The browser supplies the frame loop, resize events and pixel
// ratio directly.
package domhost

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/gopherjs/gopherjs/js"
	"honnef.co/go/js/dom"

	"go-canvimation/internal/canvas"
	"go-canvimation/internal/event"
)

// Context forwards to a CanvasRenderingContext2D.
type Context struct {
	ctx *dom.CanvasRenderingContext2D
}

var _ canvas.Context = (*Context)(nil)

func (c *Context) FillRect(x, y, w, h float64)  { c.ctx.FillRect(x, y, w, h) }
func (c *Context) ClearRect(x, y, w, h float64) { c.ctx.ClearRect(x, y, w, h) }
func (c *Context) BeginPath()                   { c.ctx.BeginPath() }
func (c *Context) Fill()                        { c.ctx.Fill() }

func (c *Context) Arc(x, y, r, startAngle, endAngle float64) {
	c.ctx.Arc(x, y, r, startAngle, endAngle, false)
}

func (c *Context) GlobalAlpha() float64 { return c.ctx.GlobalAlpha }

func (c *Context) SetGlobalAlpha(alpha float64) {
	if alpha < 0 || alpha > 1 || math.IsNaN(alpha) {
		return
	}
	c.ctx.GlobalAlpha = alpha
}

func (c *Context) SetFillColor(fill color.Color) {
	n := color.NRGBAModel.Convert(fill).(color.NRGBA)
	c.ctx.FillStyle = fmt.Sprintf("rgba(%d, %d, %d, %.3f)", n.R, n.G, n.B, float64(n.A)/255)
}

func (c *Context) Scale(sx, sy float64) { c.ctx.Scale(sx, sy) }
func (c *Context) ResetTransform()      { c.ctx.SetTransform(1, 0, 0, 1, 0, 0) }

// Surface wraps a canvas element.
type Surface struct {
	el  *dom.HTMLCanvasElement
	ctx *Context
}

var _ canvas.Surface = (*Surface)(nil)

func (s *Surface) OffsetSize() (float64, float64) { return s.el.OffsetWidth(), s.el.OffsetHeight() }
func (s *Surface) BackingSize() (int, int)        { return s.el.Width, s.el.Height }
func (s *Surface) Context2D() canvas.Context      { return s.ctx }

func (s *Surface) SetBackingSize(width, height int) {
	s.el.Width, s.el.Height = width, height
}

// Host implements canvas.Host over the browser window.
type Host struct {
	window   dom.Window
	events   *event.Dispatcher
	surfaces map[string]*Surface
	remove   func(*js.Object)
}

var _ canvas.Host = (*Host)(nil)

// New creates a host bound to the current window and starts forwarding its
// resize events.
func New() *Host {
	h := &Host{
		window:   dom.GetWindow(),
		events:   event.NewDispatcher(),
		surfaces: make(map[string]*Surface),
	}
	h.events.Subscribe(event.LoopStopped, h)
	h.remove = h.window.AddEventListener("resize", false, func(dom.Event) {
		h.events.Resized(float64(h.window.InnerWidth()), float64(h.window.InnerHeight()))
	})
	return h
}

// Surface looks up a canvas element by id.
func (h *Host) Surface(id string) (canvas.Surface, error) {
	if s, ok := h.surfaces[id]; ok {
		return s, nil
	}
	el, ok := h.window.Document().GetElementByID(id).(*dom.HTMLCanvasElement)
	if !ok || el == nil {
		return nil, fmt.Errorf("surface %q: %w", id, canvas.ErrSurfaceNotFound)
	}
	s := &Surface{el: el, ctx: &Context{ctx: el.GetContext2d()}}
	h.surfaces[id] = s
	return s, nil
}

func (h *Host) DevicePixelRatio() float64 {
	if r := js.Global.Get("devicePixelRatio"); r != js.Undefined {
		return r.Float()
	}
	return 1
}

func (h *Host) RequestAnimationFrame(cb func()) canvas.FrameHandle {
	return canvas.FrameHandle(h.window.RequestAnimationFrame(func(time.Duration) { cb() }))
}

func (h *Host) CancelAnimationFrame(handle canvas.FrameHandle) {
	h.window.CancelAnimationFrame(int(handle))
}

func (h *Host) Events() *event.Dispatcher { return h.events }

// WhenReady runs fn once the document has been parsed, immediately when the
// script loads after that.
func WhenReady(fn func()) {
	document := dom.GetWindow().Document()
	if loaded(document.ReadyState()) {
		fn()
		return
	}
	document.AddEventListener("DOMContentLoaded", false, func(dom.Event) {
		fn()
	})
}

// OnEvent logs a failed loop and detaches from the window.
func (h *Host) OnEvent(e event.Event) {
	if e.Type == event.LoopStopped {
		log.Printf("domhost: loop stopped: %v", e.Err)
		h.Close()
	}
}

// Close stops forwarding resize events.
func (h *Host) Close() {
	if h.remove != nil {
		h.window.RemoveEventListener("resize", false, h.remove)
		h.remove = nil
	}
}
