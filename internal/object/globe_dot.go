package object

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"go-canvimation/internal/canvas"
	"go-canvimation/internal/utils"
)

const (
	GlobeStep        = 0.01 // radians per tick
	GlobeDotRadius   = 5.0
	GlobePerspective = 0.8 // camera distance as a fraction of the width
)

// GlobeDot is a point on a sphere spinning about its vertical axis, drawn
// with a perspective projection and depth-based fading.
type GlobeDot struct {
	bounds
	theta float64 // azimuth
	phi   float64 // polar angle, fixed after construction

	radius      float64
	perspective float64
	centerX     float64
	centerY     float64

	point        mgl64.Vec3
	projX, projY float64
	scale        float64
	alpha        float64
}

var _ RenderObject = (*GlobeDot)(nil)

// NewGlobeDot picks a point uniformly distributed over the sphere's area.
func NewGlobeDot(width, height float64, rng *utils.PRNGService) *GlobeDot {
	d := &GlobeDot{
		bounds: bounds{width: width, height: height},
		theta:  rng.Below(2 * math.Pi),
		// acos of a uniform cosine, sampling phi itself would bunch points at the poles
		phi: math.Acos(rng.Uniform(-1, 1)),
	}
	d.fit()
	d.project()
	return d
}

// fit derives the projection parameters from the current bounds.
func (d *GlobeDot) fit() {
	d.radius = d.width / 3
	d.perspective = d.width * GlobePerspective
	d.centerX = d.width / 2
	d.centerY = d.height / 2
}

func (d *GlobeDot) Update() {
	d.theta += GlobeStep
}

func (d *GlobeDot) project() {
	r := d.radius
	sinPhi := math.Sin(d.phi)
	// shift by r along z so every point sits at z >= 0
	d.point = mgl64.Vec3{
		r * sinPhi * math.Cos(d.theta),
		r * math.Cos(d.phi),
		r * sinPhi * math.Sin(d.theta),
	}.Add(mgl64.Vec3{0, 0, r})

	d.perspective = d.width * GlobePerspective
	z := d.point.Z()
	if den := d.perspective + z; den > 0 {
		d.scale = d.perspective / den
	} else {
		d.scale = 1
	}
	d.projX = d.point.X()*d.scale + d.centerX
	d.projY = d.point.Y()*d.scale + d.centerY
	if d.width > 0 {
		d.alpha = mgl64.Clamp(math.Abs(1-z/d.width), 0, 1)
	} else {
		d.alpha = 1
	}
}

func (d *GlobeDot) Draw(ctx canvas.Context) {
	d.project()
	prev := ctx.GlobalAlpha()
	ctx.SetGlobalAlpha(d.alpha)
	ctx.BeginPath()
	ctx.Arc(d.projX, d.projY, GlobeDotRadius*d.scale, 0, 2*math.Pi)
	ctx.Fill()
	ctx.SetGlobalAlpha(prev)
}

// ResizeUpdate refits the projection to the new bounds. The orientation
// (theta, phi) is kept.
func (d *GlobeDot) ResizeUpdate(height, width float64) {
	d.width, d.height = width, height
	d.fit()
}

func (d *GlobeDot) Theta() float64 { return d.theta }
func (d *GlobeDot) Phi() float64   { return d.phi }

// Projection returns the state computed by the last draw: the 2D point,
// the perspective scale and the paint opacity.
func (d *GlobeDot) Projection() (x, y, scale, alpha float64) {
	return d.projX, d.projY, d.scale, d.alpha
}

// Point returns the shifted 3D position used by the last projection.
func (d *GlobeDot) Point() mgl64.Vec3 {
	return d.point
}
