package termhost

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/vector"

	"go-canvimation/internal/canvas"
	"go-canvimation/internal/config"
)

// litThreshold is the coverage above which a braille dot is raised.
const litThreshold = 0.25

// Raster is a canvas.Context over a grid of braille dots, CellWidth x
// CellHeight dots per terminal cell. Shapes are rasterized with area coverage
// and composited source-over.
type Raster struct {
	w, h  int
	px    []colorful.Color
	cover []float64

	transform canvas.Transform
	alpha     float64
	fill      colorful.Color
	path      canvas.Path
	z         vector.Rasterizer
	mask      *image.Alpha
}

var _ canvas.Context = (*Raster)(nil)

// NewRaster creates a w x h dot grid.
func NewRaster(w, h int) *Raster {
	r := &Raster{transform: canvas.Identity(), alpha: 1, fill: colorful.Color{R: 1, G: 1, B: 1}}
	r.Resize(w, h)
	return r
}

// Resize reallocates the grid, dropping its contents.
func (r *Raster) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	r.w, r.h = w, h
	r.px = make([]colorful.Color, w*h)
	r.cover = make([]float64, w*h)
}

// Size returns the grid size in dots.
func (r *Raster) Size() (w, h int) { return r.w, r.h }

// At returns the color and coverage of dot (x, y).
func (r *Raster) At(x, y int) (colorful.Color, float64) {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return colorful.Color{}, 0
	}
	i := y*r.w + x
	return r.px[i], r.cover[i]
}

func (r *Raster) blend(i int, alpha float64) {
	if alpha <= 0 {
		return
	}
	a := alpha + r.cover[i]*(1-alpha)
	r.px[i] = r.px[i].BlendRgb(r.fill, alpha/a)
	r.cover[i] = a
}

// span converts a transformed interval into the dots whose centers it covers.
func span(lo, hi float64, limit int) (int, int) {
	if lo > hi {
		lo, hi = hi, lo
	}
	first := int(math.Max(0, math.Ceil(lo-0.5)))
	last := int(math.Min(float64(limit), math.Ceil(hi-0.5)))
	return first, last
}

func (r *Raster) FillRect(x, y, w, h float64) {
	x0, y0 := r.transform.Apply(x, y)
	x1, y1 := r.transform.Apply(x+w, y+h)
	// clipped to the grid a rectangle is still a rectangle
	x0, x1 = clip(x0, x1, r.w)
	y0, y1 = clip(y0, y1, r.h)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	r.fillCoverage(x0, y0, x1, y1, func(z *vector.Rasterizer, ox, oy float64) {
		z.MoveTo(float32(x0-ox), float32(y0-oy))
		z.LineTo(float32(x1-ox), float32(y0-oy))
		z.LineTo(float32(x1-ox), float32(y1-oy))
		z.LineTo(float32(x0-ox), float32(y1-oy))
		z.ClosePath()
	})
}

func clip(lo, hi float64, limit int) (float64, float64) {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(lo, 0), math.Min(hi, float64(limit))
}

// fillCoverage rasterizes the shape added by addPath inside the box
// [x0,x1) x [y0,y1) and composites its per-dot coverage with the fill color
// and global alpha. addPath receives the box origin to subtract.
func (r *Raster) fillCoverage(x0, y0, x1, y1 float64, addPath func(z *vector.Rasterizer, ox, oy float64)) {
	box := image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x1)), int(math.Ceil(y1)),
	).Intersect(image.Rect(0, 0, r.w, r.h))
	if box.Empty() {
		return
	}
	bw, bh := box.Dx(), box.Dy()
	r.z.Reset(bw, bh)
	r.z.DrawOp = draw.Src
	addPath(&r.z, float64(box.Min.X), float64(box.Min.Y))

	if r.mask == nil || r.mask.Rect.Dx() < bw || r.mask.Rect.Dy() < bh {
		r.mask = image.NewAlpha(image.Rect(0, 0, bw, bh))
	}
	r.z.Draw(r.mask, image.Rect(0, 0, bw, bh), image.Opaque, image.Point{})
	for y := 0; y < bh; y++ {
		row := (box.Min.Y+y)*r.w + box.Min.X
		for x := 0; x < bw; x++ {
			if a := r.mask.AlphaAt(x, y).A; a > 0 {
				r.blend(row+x, r.alpha*float64(a)/0xff)
			}
		}
	}
}

func (r *Raster) ClearRect(x, y, w, h float64) {
	x0, y0 := r.transform.Apply(x, y)
	x1, y1 := r.transform.Apply(x+w, y+h)
	fx, lx := span(x0, x1, r.w)
	fy, ly := span(y0, y1, r.h)
	for dy := fy; dy < ly; dy++ {
		for dx := fx; dx < lx; dx++ {
			i := dy*r.w + dx
			r.px[i] = colorful.Color{}
			r.cover[i] = 0
		}
	}
}

func (r *Raster) BeginPath() { r.path.Reset() }

func (r *Raster) Arc(x, y, radius, startAngle, endAngle float64) {
	cx, cy := r.transform.Apply(x, y)
	r.path.Arc(cx, cy, r.transform.ApplyLength(radius), startAngle, endAngle)
}

func (r *Raster) Fill() {
	arcs := r.path.Arcs()
	if len(arcs) == 0 {
		return
	}
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, a := range arcs {
		x0, y0 = math.Min(x0, a.X-a.R), math.Min(y0, a.Y-a.R)
		x1, y1 = math.Max(x1, a.X+a.R), math.Max(y1, a.Y+a.R)
	}
	r.fillCoverage(x0, y0, x1, y1, func(z *vector.Rasterizer, ox, oy float64) {
		for _, a := range arcs {
			addArc(z, a, ox, oy)
		}
	})
}

// addArc appends a as a closed subpath made of cubic Béziers, one per
// quarter turn at most.
func addArc(z *vector.Rasterizer, a canvas.ArcSegment, ox, oy float64) {
	n := int(math.Ceil(a.Sweep / (math.Pi / 2)))
	step := a.Sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4) * a.R
	at := func(t float64) (float64, float64) {
		return a.X - ox + a.R*math.Cos(t), a.Y - oy + a.R*math.Sin(t)
	}
	x, y := at(a.Start)
	z.MoveTo(float32(x), float32(y))
	for i := 0; i < n; i++ {
		t0 := a.Start + step*float64(i)
		t1 := t0 + step
		sx, sy := at(t0)
		ex, ey := at(t1)
		z.CubeTo(
			float32(sx-k*math.Sin(t0)), float32(sy+k*math.Cos(t0)),
			float32(ex+k*math.Sin(t1)), float32(ey-k*math.Cos(t1)),
			float32(ex), float32(ey),
		)
	}
	z.ClosePath()
}

func (r *Raster) GlobalAlpha() float64 { return r.alpha }

func (r *Raster) SetGlobalAlpha(alpha float64) {
	if alpha < 0 || alpha > 1 || math.IsNaN(alpha) {
		return
	}
	r.alpha = alpha
}

func (r *Raster) SetFillColor(c color.Color) {
	if cf, ok := colorful.MakeColor(c); ok {
		r.fill = cf
	}
}

func (r *Raster) Scale(sx, sy float64) { r.transform.Scale(sx, sy) }
func (r *Raster) ResetTransform()      { r.transform.Reset() }

// brailleBit maps a dot inside a 2x4 cell to its braille pattern bit.
var brailleBit = [config.CellHeight][config.CellWidth]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Cell returns the rune and color for terminal cell (cx, cy). A cell with no
// raised dot is a blank.
func (r *Raster) Cell(cx, cy int) (rune, colorful.Color, bool) {
	var bits rune
	var sum colorful.Color
	var weight float64
	for y := 0; y < config.CellHeight; y++ {
		for x := 0; x < config.CellWidth; x++ {
			c, a := r.At(cx*config.CellWidth+x, cy*config.CellHeight+y)
			if a < litThreshold {
				continue
			}
			bits |= brailleBit[y][x]
			sum.R += c.R * a
			sum.G += c.G * a
			sum.B += c.B * a
			weight += a
		}
	}
	if bits == 0 {
		return ' ', colorful.Color{}, false
	}
	mean := colorful.Color{R: sum.R / weight, G: sum.G / weight, B: sum.B / weight}
	// fade toward the background with the average coverage of the raised dots
	n := float64(popcount(bits))
	return 0x2800 + bits, background().BlendRgb(mean, weight/n).Clamped(), true
}

func popcount(bits rune) int {
	n := 0
	for ; bits != 0; bits &= bits - 1 {
		n++
	}
	return n
}

func background() colorful.Color {
	c, _ := colorful.MakeColor(config.BackgroundColor)
	return c
}

// Flush copies the raster to screen, one braille rune per cell.
func (r *Raster) Flush(screen tcell.Screen) {
	cols, rows := r.w/config.CellWidth, r.h/config.CellHeight
	bg := background()
	bgStyle := tcell.StyleDefault.Background(tcellColor(bg))
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			ch, c, lit := r.Cell(cx, cy)
			style := bgStyle
			if lit {
				style = style.Foreground(tcellColor(c))
			}
			screen.SetContent(cx, cy, ch, nil, style)
		}
	}
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
