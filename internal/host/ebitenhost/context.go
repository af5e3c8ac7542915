package ebitenhost

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-canvimation/internal/canvas"
)

// Context draws onto the ebiten screen of the current frame.
type Context struct {
	target    *ebiten.Image
	transform canvas.Transform
	alpha     float64
	fill      color.RGBA
	path      vector.Path
	fillImg   *ebiten.Image
	fillVs    []ebiten.Vertex
	fillIs    []uint16
}

var _ canvas.Context = (*Context)(nil)

func newContext() *Context {
	fillImg := ebiten.NewImage(1, 1)
	fillImg.Fill(color.White)
	return &Context{
		transform: canvas.Identity(),
		alpha:     1,
		fill:      color.RGBA{255, 255, 255, 255},
		fillImg:   fillImg,
		fillVs:    make([]ebiten.Vertex, 0, 64),
		fillIs:    make([]uint16, 0, 96),
	}
}

// paint returns the fill color with the global alpha applied.
func (c *Context) paint() color.RGBA {
	return scaleAlpha(c.fill, c.alpha)
}

// scaleAlpha returns the premultiplied color of fill at opacity alpha.
func scaleAlpha(fill color.RGBA, alpha float64) color.RGBA {
	a := float64(fill.A) * alpha / 255
	return color.RGBA{
		R: uint8(math.Round(float64(fill.R) * a)),
		G: uint8(math.Round(float64(fill.G) * a)),
		B: uint8(math.Round(float64(fill.B) * a)),
		A: uint8(math.Round(float64(fill.A) * alpha)),
	}
}

func (c *Context) FillRect(x, y, w, h float64) {
	if c.target == nil {
		return
	}
	x0, y0 := c.transform.Apply(x, y)
	sw, sh := c.transform.Apply(w, h)
	vector.DrawFilledRect(c.target, float32(x0), float32(y0), float32(sw), float32(sh), c.paint(), false)
}

func (c *Context) ClearRect(x, y, w, h float64) {
	if c.target == nil {
		return
	}
	r := clearBounds(&c.transform, x, y, w, h).Intersect(c.target.Bounds())
	if r.Empty() {
		return
	}
	if r == c.target.Bounds() {
		c.target.Clear()
		return
	}
	c.target.SubImage(r).(*ebiten.Image).Clear()
}

// clearBounds converts a logical rectangle into the pixel rectangle it touches.
func clearBounds(t *canvas.Transform, x, y, w, h float64) image.Rectangle {
	x0, y0 := t.Apply(x, y)
	x1, y1 := t.Apply(x+w, y+h)
	return image.Rect(
		int(math.Floor(math.Min(x0, x1))), int(math.Floor(math.Min(y0, y1))),
		int(math.Ceil(math.Max(x0, x1))), int(math.Ceil(math.Max(y0, y1))),
	)
}

func (c *Context) BeginPath() {
	c.path = vector.Path{}
}

func (c *Context) Arc(x, y, r, startAngle, endAngle float64) {
	cx, cy := c.transform.Apply(x, y)
	c.path.Arc(float32(cx), float32(cy), float32(c.transform.ApplyLength(r)),
		float32(startAngle), float32(endAngle), vector.Clockwise)
}

func (c *Context) Fill() {
	if c.target == nil {
		return
	}
	c.fillVs, c.fillIs = c.path.AppendVerticesAndIndicesForFilling(c.fillVs[:0], c.fillIs[:0])
	if len(c.fillIs) == 0 {
		return
	}
	fill := c.fill
	for i := range c.fillVs {
		c.fillVs[i].SrcX, c.fillVs[i].SrcY = 0.5, 0.5
		c.fillVs[i].ColorR = float32(fill.R) / 255
		c.fillVs[i].ColorG = float32(fill.G) / 255
		c.fillVs[i].ColorB = float32(fill.B) / 255
		c.fillVs[i].ColorA = float32(fill.A) / 255 * float32(c.alpha)
	}
	c.target.DrawTriangles(c.fillVs, c.fillIs, c.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

func (c *Context) GlobalAlpha() float64 { return c.alpha }

func (c *Context) SetGlobalAlpha(alpha float64) {
	if alpha < 0 || alpha > 1 || math.IsNaN(alpha) {
		return
	}
	c.alpha = alpha
}

func (c *Context) SetFillColor(fill color.Color) {
	r, g, b, a := fill.RGBA()
	if a == 0 {
		c.fill = color.RGBA{}
		return
	}
	// un-premultiply
	c.fill = color.RGBA{
		R: uint8(r * 0xffff / a >> 8),
		G: uint8(g * 0xffff / a >> 8),
		B: uint8(b * 0xffff / a >> 8),
		A: uint8(a >> 8),
	}
}

func (c *Context) Scale(sx, sy float64) { c.transform.Scale(sx, sy) }
func (c *Context) ResetTransform()      { c.transform.Reset() }
