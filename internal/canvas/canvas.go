// Package canvas defines the drawing boundary between the animation core and
// the environment hosting it: a 2D context, the surface owning it, and the
// host primitives for frame scheduling, pixel density and resize notices.
package canvas

import (
	"errors"
	"image/color"

	"go-canvimation/internal/event"
)

// ErrSurfaceNotFound is returned by Host.Surface for unknown identifiers.
var ErrSurfaceNotFound = errors.New("surface not found")

// Context is the 2D drawing API consumed by render objects.
// Coordinates are logical pixels, mapped through the current transform.
type Context interface {
	FillRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)
	BeginPath()
	// Arc adds a clockwise arc around (x, y) to the current path.
	Arc(x, y, r, startAngle, endAngle float64)
	Fill()
	GlobalAlpha() float64
	SetGlobalAlpha(alpha float64)
	SetFillColor(c color.Color)
	// Scale multiplies the current transform.
	Scale(sx, sy float64)
	ResetTransform()
}

// Surface is a drawing target with a logical size set by its container and a
// backing store measured in physical pixels.
type Surface interface {
	OffsetSize() (width, height float64)
	BackingSize() (width, height int)
	SetBackingSize(width, height int)
	Context2D() Context
}

// FrameHandle identifies a pending frame request. Zero is never issued.
type FrameHandle int

// Host is the environment a scene runs in.
type Host interface {
	// Surface looks a surface up by id. Unknown ids yield an error wrapping
	// ErrSurfaceNotFound.
	Surface(id string) (Surface, error)
	DevicePixelRatio() float64
	// RequestAnimationFrame runs cb once before the next repaint.
	RequestAnimationFrame(cb func()) FrameHandle
	CancelAnimationFrame(h FrameHandle)
	// Events delivers event.SurfaceResized notifications.
	Events() *event.Dispatcher
}
