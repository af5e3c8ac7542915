package canvas

import "math"

// ArcSegment is one arc of a path in backing-store pixels. Sweep is the
// clockwise angle covered from Start, in (0, 2π].
type ArcSegment struct {
	X, Y, R      float64
	Start, Sweep float64
}

// Full reports whether the arc is a whole circle.
func (a ArcSegment) Full() bool {
	return a.Sweep >= 2*math.Pi
}

// End returns the angle the arc stops at.
func (a ArcSegment) End() float64 {
	return a.Start + a.Sweep
}

// Path records the arcs added between BeginPath and Fill for hosts whose
// drawing library has no path object of its own.
type Path struct {
	arcs []ArcSegment
}

// Reset empties the path.
func (p *Path) Reset() {
	p.arcs = p.arcs[:0]
}

// Empty reports whether no arc has been added since the last Reset.
func (p *Path) Empty() bool {
	return len(p.arcs) == 0
}

// Arc records a clockwise arc from startAngle to endAngle around (x, y).
// A sweep of 2π or more is a full circle, following the canvas rules.
func (p *Path) Arc(x, y, r, startAngle, endAngle float64) {
	if r <= 0 || math.IsNaN(r) {
		return
	}
	sweep := endAngle - startAngle
	if sweep < 2*math.Pi {
		sweep = math.Mod(sweep, 2*math.Pi)
		if sweep < 0 {
			sweep += 2 * math.Pi
		}
	} else {
		sweep = 2 * math.Pi
	}
	if sweep == 0 {
		return
	}
	p.arcs = append(p.arcs, ArcSegment{X: x, Y: y, R: r, Start: startAngle, Sweep: sweep})
}

// Arcs returns the recorded arcs in insertion order.
func (p *Path) Arcs() []ArcSegment {
	return p.arcs
}
