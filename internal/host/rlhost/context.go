package rlhost

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"go-canvimation/internal/canvas"
)

// Context draws with raylib immediate mode. Coordinates arrive in backing
// store pixels and are mapped to raylib screen units by toScreen.
type Context struct {
	transform  canvas.Transform
	alpha      float64
	fill       rl.Color
	background rl.Color
	path       canvas.Path
	toScreen   float64
	screenW    float64
	screenH    float64
}

var _ canvas.Context = (*Context)(nil)

func newContext(background rl.Color) *Context {
	return &Context{
		transform:  canvas.Identity(),
		alpha:      1,
		fill:       rl.White,
		background: background,
		toScreen:   1,
	}
}

func (c *Context) paint() rl.Color {
	return rl.Fade(c.fill, float32(c.alpha))
}

// rect maps a logical rectangle to raylib screen units.
func (c *Context) rect(x, y, w, h float64) rl.Rectangle {
	x0, y0 := c.transform.Apply(x, y)
	x1, y1 := c.transform.Apply(x+w, y+h)
	return rl.NewRectangle(
		float32(math.Min(x0, x1)*c.toScreen), float32(math.Min(y0, y1)*c.toScreen),
		float32(math.Abs(x1-x0)*c.toScreen), float32(math.Abs(y1-y0)*c.toScreen),
	)
}

func (c *Context) FillRect(x, y, w, h float64) {
	rl.DrawRectangleRec(c.rect(x, y, w, h), c.paint())
}

func (c *Context) ClearRect(x, y, w, h float64) {
	r := c.rect(x, y, w, h)
	if r.X <= 0 && r.Y <= 0 && float64(r.X+r.Width) >= c.screenW && float64(r.Y+r.Height) >= c.screenH {
		rl.ClearBackground(c.background)
		return
	}
	rl.DrawRectangleRec(r, c.background)
}

func (c *Context) BeginPath() {
	c.path.Reset()
}

func (c *Context) Arc(x, y, r, startAngle, endAngle float64) {
	cx, cy := c.transform.Apply(x, y)
	c.path.Arc(cx, cy, c.transform.ApplyLength(r), startAngle, endAngle)
}

func (c *Context) Fill() {
	col := c.paint()
	for _, a := range c.path.Arcs() {
		center, radius, start, end := sector(a, c.toScreen)
		if a.Full() {
			rl.DrawCircleV(center, radius, col)
			continue
		}
		rl.DrawCircleSector(center, radius, start, end, 0, col)
	}
}

// sector converts an arc to raylib screen units with angles in degrees.
// Both measure angles clockwise on screen.
func sector(a canvas.ArcSegment, factor float64) (center rl.Vector2, radius, start, end float32) {
	center = rl.NewVector2(float32(a.X*factor), float32(a.Y*factor))
	radius = float32(a.R * factor)
	start = float32(a.Start * rl.Rad2deg)
	end = float32(a.End() * rl.Rad2deg)
	return center, radius, start, end
}

func (c *Context) GlobalAlpha() float64 { return c.alpha }

func (c *Context) SetGlobalAlpha(alpha float64) {
	if alpha < 0 || alpha > 1 || math.IsNaN(alpha) {
		return
	}
	c.alpha = alpha
}

func (c *Context) SetFillColor(fill color.Color) {
	c.fill = toRL(fill)
}

// toRL converts any color into a straight-alpha raylib color.
func toRL(c color.Color) rl.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return rl.NewColor(n.R, n.G, n.B, n.A)
}

func (c *Context) Scale(sx, sy float64) { c.transform.Scale(sx, sy) }
func (c *Context) ResetTransform()      { c.transform.Reset() }
