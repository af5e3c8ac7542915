// Package canvastest provides in-memory canvas doubles that record every
// drawing call, for exercising scenes and render objects without a display.
package canvastest

import (
	"fmt"
	"image/color"

	"go-canvimation/internal/canvas"
)

// Drawing operation names recorded by Recorder.
const (
	OpFillRect       = "fillRect"
	OpClearRect      = "clearRect"
	OpBeginPath      = "beginPath"
	OpArc            = "arc"
	OpFill           = "fill"
	OpScale          = "scale"
	OpResetTransform = "resetTransform"
)

// Call is one recorded context operation with the state it ran under.
type Call struct {
	Op    string
	Args  []float64
	Alpha float64
	Scale float64
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

// Recorder is a canvas.Context that remembers every call.
type Recorder struct {
	Calls     []Call
	alpha     float64
	fill      color.Color
	transform canvas.Transform
}

var _ canvas.Context = (*Recorder)(nil)

// NewRecorder returns a recorder with default context state.
func NewRecorder() *Recorder {
	return &Recorder{alpha: 1, fill: color.Black, transform: canvas.Identity()}
}

func (r *Recorder) record(op string, args ...float64) {
	sx, _ := r.transform.Factors()
	r.Calls = append(r.Calls, Call{Op: op, Args: args, Alpha: r.alpha, Scale: sx})
}

func (r *Recorder) FillRect(x, y, w, h float64)  { r.record(OpFillRect, x, y, w, h) }
func (r *Recorder) ClearRect(x, y, w, h float64) { r.record(OpClearRect, x, y, w, h) }
func (r *Recorder) BeginPath()                   { r.record(OpBeginPath) }
func (r *Recorder) Fill()                        { r.record(OpFill) }

func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64) {
	r.record(OpArc, x, y, radius, startAngle, endAngle)
}

func (r *Recorder) GlobalAlpha() float64 { return r.alpha }

func (r *Recorder) SetGlobalAlpha(alpha float64) {
	if alpha < 0 || alpha > 1 {
		// canvas ignores out of range values
		return
	}
	r.alpha = alpha
}

func (r *Recorder) SetFillColor(c color.Color) { r.fill = c }

// FillColor returns the current fill color.
func (r *Recorder) FillColor() color.Color { return r.fill }

func (r *Recorder) Scale(sx, sy float64) {
	r.transform.Scale(sx, sy)
	r.record(OpScale, sx, sy)
}

func (r *Recorder) ResetTransform() {
	r.transform.Reset()
	r.record(OpResetTransform)
}

// ScaleFactors returns the accumulated transform.
func (r *Recorder) ScaleFactors() (sx, sy float64) {
	return r.transform.Factors()
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Ops lists the recorded operation names in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Last returns the most recent call of op.
func (r *Recorder) Last(op string) (Call, bool) {
	for i := len(r.Calls) - 1; i >= 0; i-- {
		if r.Calls[i].Op == op {
			return r.Calls[i], true
		}
	}
	return Call{}, false
}

// Reset forgets the recorded calls but keeps the context state.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
