package object

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"go-canvimation/internal/canvas"
	"go-canvimation/internal/utils"
)

const (
	OrbitStep      = 1.0 // degrees per tick
	OrbitDotRadius = 3.0
)

// OrbitDot circles the surface center at a quarter of the initial width.
type OrbitDot struct {
	bounds
	radius float64
	angle  float64 // degrees, grows without bound
}

var _ RenderObject = (*OrbitDot)(nil)

// NewOrbitDot starts a dot at a random angle in [0, 360).
func NewOrbitDot(width, height float64, rng *utils.PRNGService) *OrbitDot {
	return &OrbitDot{
		bounds: bounds{width: width, height: height},
		radius: width / 4,
		angle:  rng.Below(360),
	}
}

func (d *OrbitDot) Update() {
	d.angle += OrbitStep
}

// Project maps the current angle onto the circle around the surface center.
func (d *OrbitDot) Project() (x, y float64) {
	rad := mgl64.DegToRad(utils.NormalizeDegrees(d.angle))
	x = d.radius*math.Cos(rad) + d.width/2
	y = d.radius*math.Sin(rad) + d.height/2
	return x, y
}

func (d *OrbitDot) Draw(ctx canvas.Context) {
	x, y := d.Project()
	ctx.BeginPath()
	ctx.Arc(x, y, OrbitDotRadius, 0, 2*math.Pi)
	ctx.Fill()
}

// ResizeUpdate keeps the radius; the center follows the new bounds on the next draw.
func (d *OrbitDot) ResizeUpdate(height, width float64) {
	d.width, d.height = width, height
}

func (d *OrbitDot) Angle() float64  { return d.angle }
func (d *OrbitDot) Radius() float64 { return d.radius }
