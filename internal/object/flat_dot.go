package object

import (
	"go-canvimation/internal/canvas"
	"go-canvimation/internal/utils"
)

// DotSize is the side of the square painted by a FlatDot.
const DotSize = 2.0

// FlatDot is a static square at a uniformly random position.
type FlatDot struct {
	bounds
	x, y float64
	rng  *utils.PRNGService
}

var _ RenderObject = (*FlatDot)(nil)

// NewFlatDot places a dot uniformly inside [0,width) x [0,height).
func NewFlatDot(width, height float64, rng *utils.PRNGService) *FlatDot {
	d := &FlatDot{bounds: bounds{width: width, height: height}, rng: rng}
	d.place()
	return d
}

func (d *FlatDot) place() {
	d.x = d.rng.Below(d.width)
	d.y = d.rng.Below(d.height)
}

// Update does nothing, a flat dot does not move.
func (d *FlatDot) Update() {}

func (d *FlatDot) Draw(ctx canvas.Context) {
	ctx.FillRect(d.x, d.y, DotSize, DotSize)
}

// ResizeUpdate re-randomizes the position unless the bounds are unchanged.
func (d *FlatDot) ResizeUpdate(height, width float64) {
	if height == d.height && width == d.width {
		return
	}
	d.width, d.height = width, height
	d.place()
}

// Position returns the top-left corner of the square.
func (d *FlatDot) Position() (x, y float64) {
	return d.x, d.y
}
