package canvas

// Transform is the scale-only transform state of a raster context.
type Transform struct {
	sx, sy float64
	set    bool
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{sx: 1, sy: 1, set: true}
}

func (t *Transform) init() {
	if !t.set {
		*t = Identity()
	}
}

// Scale multiplies the current scale.
func (t *Transform) Scale(sx, sy float64) {
	t.init()
	t.sx *= sx
	t.sy *= sy
}

// Reset restores the identity.
func (t *Transform) Reset() {
	*t = Identity()
}

// Factors returns the current scale factors.
func (t *Transform) Factors() (sx, sy float64) {
	t.init()
	return t.sx, t.sy
}

// Apply maps a logical point into backing-store pixels.
func (t *Transform) Apply(x, y float64) (float64, float64) {
	t.init()
	return x * t.sx, y * t.sy
}

// ApplyLength maps a logical length. Non-uniform scales use the mean factor.
func (t *Transform) ApplyLength(l float64) float64 {
	t.init()
	return l * (t.sx + t.sy) / 2
}
