package object

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"go-canvimation/internal/canvas/canvastest"
	"go-canvimation/internal/utils"
)

const eps = 1e-9

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"flat", KindFlat, false},
		{"FlatDot", KindFlat, false},
		{" orbit ", KindOrbit, false},
		{"circle", KindOrbit, false},
		{"GLOBE", KindGlobe, false},
		{"sphere", KindGlobe, false},
		{"cube", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownKind) {
					t.Fatalf("err = %v, want ErrUnknownKind", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseKind(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestNewFactoryBuildsEachKind(t *testing.T) {
	rng := utils.NewPRNGService(1)
	for _, kind := range Kinds() {
		f, err := NewFactory(kind, rng)
		if err != nil {
			t.Fatalf("NewFactory(%q): %v", kind, err)
		}
		obj := f(200, 100)
		var ok bool
		switch kind {
		case KindFlat:
			_, ok = obj.(*FlatDot)
		case KindOrbit:
			_, ok = obj.(*OrbitDot)
		case KindGlobe:
			_, ok = obj.(*GlobeDot)
		}
		if !ok {
			t.Errorf("factory for %q built %T", kind, obj)
		}
	}
	if _, err := NewFactory("cube", rng); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("NewFactory(cube) err = %v", err)
	}
}

func TestFlatDotPlacementAndDraw(t *testing.T) {
	rng := utils.NewPRNGService(3)
	rec := canvastest.NewRecorder()
	for i := 0; i < 200; i++ {
		d := NewFlatDot(100, 50, rng)
		x, y := d.Position()
		if x < 0 || x >= 100 || y < 0 || y >= 50 {
			t.Fatalf("dot %d at (%v,%v) outside [0,100)x[0,50)", i, x, y)
		}
		d.Update()
		if nx, ny := d.Position(); nx != x || ny != y {
			t.Fatalf("Update moved a flat dot")
		}
		rec.Reset()
		d.Draw(rec)
		c, ok := rec.Last(canvastest.OpFillRect)
		if !ok || c.Args[0] != x || c.Args[1] != y || c.Args[2] != DotSize || c.Args[3] != DotSize {
			t.Fatalf("Draw recorded %v, want fillRect[%v %v %v %v]", rec.Calls, x, y, DotSize, DotSize)
		}
	}
}

func TestFlatDotResizeUpdate(t *testing.T) {
	rng := utils.NewPRNGService(5)
	d := NewFlatDot(300, 200, rng)
	x0, y0 := d.Position()

	// unchanged bounds, height first
	d.ResizeUpdate(200, 300)
	if x, y := d.Position(); x != x0 || y != y0 {
		t.Fatalf("same-size resize moved dot from (%v,%v) to (%v,%v)", x0, y0, x, y)
	}

	tests := []struct {
		name          string
		height, width float64
	}{
		{"shrink", 20, 30},
		{"grow", 900, 1600},
		{"height only", 10, 1600},
		{"tiny", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d.ResizeUpdate(tt.height, tt.width)
			x, y := d.Position()
			if x < 0 || x >= tt.width || y < 0 || y >= tt.height {
				t.Errorf("(%v,%v) outside [0,%v)x[0,%v)", x, y, tt.width, tt.height)
			}
			if w, h := d.Bounds(); w != tt.width || h != tt.height {
				t.Errorf("Bounds = %v,%v, want %v,%v", w, h, tt.width, tt.height)
			}
		})
	}
}

func TestOrbitDotAdvancesOneDegreePerTick(t *testing.T) {
	rng := utils.NewPRNGService(9)
	d := NewOrbitDot(400, 300, rng)
	a0 := d.Angle()
	if a0 < 0 || a0 >= 360 {
		t.Fatalf("initial angle %v outside [0,360)", a0)
	}
	if d.Radius() != 100 {
		t.Fatalf("radius = %v, want width/4 = 100", d.Radius())
	}

	for k := 1; k <= 1000; k++ {
		d.Update()
		got := utils.NormalizeDegrees(d.Angle())
		want := utils.NormalizeDegrees(a0 + float64(k))
		if !mgl64.FloatEqualThreshold(got, want, 1e-6) && !mgl64.FloatEqualThreshold(math.Abs(got-want), 360, 1e-6) {
			t.Fatalf("after %d updates angle mod 360 = %v, want %v", k, got, want)
		}
		x, y := d.Project()
		r2 := (x-200)*(x-200) + (y-150)*(y-150)
		if math.Abs(r2-100*100) > 1e-6 {
			t.Fatalf("after %d updates point (%v,%v) is off the circle: r^2 = %v", k, x, y, r2)
		}
	}
}

func TestOrbitDotDrawAndResize(t *testing.T) {
	rng := utils.NewPRNGService(11)
	d := NewOrbitDot(400, 400, rng)
	d.ResizeUpdate(100, 800)

	if d.Radius() != 100 {
		t.Errorf("radius changed on resize: %v", d.Radius())
	}
	rec := canvastest.NewRecorder()
	d.Draw(rec)
	want := []string{canvastest.OpBeginPath, canvastest.OpArc, canvastest.OpFill}
	if got := rec.Ops(); len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	arc, _ := rec.Last(canvastest.OpArc)
	x, y := arc.Args[0], arc.Args[1]
	if r2 := (x-400)*(x-400) + (y-50)*(y-50); math.Abs(r2-100*100) > 1e-6 {
		t.Errorf("arc center (%v,%v) not on circle around new center (400,50)", x, y)
	}
	if arc.Args[2] != OrbitDotRadius || arc.Args[3] != 0 || !mgl64.FloatEqualThreshold(arc.Args[4], 2*math.Pi, eps) {
		t.Errorf("arc args = %v", arc.Args)
	}
}

func TestGlobeDotUpdateKeepsPhi(t *testing.T) {
	rng := utils.NewPRNGService(13)
	d := NewGlobeDot(600, 400, rng)
	phi := d.Phi()
	if phi < 0 || phi > math.Pi {
		t.Fatalf("phi = %v outside [0,π]", phi)
	}
	theta := d.Theta()
	for k := 1; k <= 500; k++ {
		d.Update()
		if d.Phi() != phi {
			t.Fatalf("phi changed after %d updates", k)
		}
		if !mgl64.FloatEqualThreshold(d.Theta()-theta, GlobeStep, 1e-12) {
			t.Fatalf("theta step = %v, want %v", d.Theta()-theta, GlobeStep)
		}
		theta = d.Theta()
	}
}

func TestGlobeDotProjectionRanges(t *testing.T) {
	rng := utils.NewPRNGService(17)
	rec := canvastest.NewRecorder()
	for i := 0; i < 200; i++ {
		d := NewGlobeDot(800, 600, rng)
		for k := 0; k < 50; k++ {
			d.Update()
			rec.Reset()
			d.Draw(rec)

			_, _, scale, alpha := d.Projection()
			if z := d.Point().Z(); z < -eps {
				t.Fatalf("z = %v is negative", z)
			}
			if scale <= 0 || scale > 1 {
				t.Fatalf("scale = %v outside (0,1]", scale)
			}
			if alpha < 0 || alpha > 1 {
				t.Fatalf("alpha = %v outside [0,1]", alpha)
			}
			fill, ok := rec.Last(canvastest.OpFill)
			if !ok || fill.Alpha != alpha {
				t.Fatalf("fill ran with alpha %v, want %v", fill.Alpha, alpha)
			}
			arc, _ := rec.Last(canvastest.OpArc)
			if !mgl64.FloatEqualThreshold(arc.Args[2], GlobeDotRadius*scale, eps) {
				t.Fatalf("arc radius = %v, want %v", arc.Args[2], GlobeDotRadius*scale)
			}
			if rec.GlobalAlpha() != 1 {
				t.Fatalf("global alpha left at %v after draw", rec.GlobalAlpha())
			}
		}
	}
}

func TestGlobeDotProjectionMath(t *testing.T) {
	d := &GlobeDot{bounds: bounds{width: 300, height: 200}, theta: 0, phi: math.Pi / 2}
	d.fit()
	rec := canvastest.NewRecorder()
	d.Draw(rec)

	// theta=0, phi=π/2: (r, 0, 0) shifted to z=r
	r := 100.0
	p := 300 * GlobePerspective
	scale := p / (p + r)
	x, y, gotScale, alpha := d.Projection()
	if !mgl64.FloatEqualThreshold(gotScale, scale, eps) {
		t.Errorf("scale = %v, want %v", gotScale, scale)
	}
	if !mgl64.FloatEqualThreshold(x, r*scale+150, 1e-6) || !mgl64.FloatEqualThreshold(y, 100, 1e-6) {
		t.Errorf("projected = (%v,%v), want (%v,100)", x, y, r*scale+150)
	}
	if !mgl64.FloatEqualThreshold(alpha, math.Abs(1-r/300), eps) {
		t.Errorf("alpha = %v, want %v", alpha, math.Abs(1-r/300))
	}
}

func TestGlobeDotResizeKeepsOrientation(t *testing.T) {
	rng := utils.NewPRNGService(19)
	d := NewGlobeDot(800, 600, rng)
	theta, phi := d.Theta(), d.Phi()

	d.ResizeUpdate(300, 400)
	if d.Theta() != theta || d.Phi() != phi {
		t.Fatal("resize changed orientation")
	}
	if d.perspective != 400*GlobePerspective || d.centerX != 200 || d.centerY != 150 {
		t.Errorf("perspective=%v center=(%v,%v) not refit to 400x300", d.perspective, d.centerX, d.centerY)
	}
	rec := canvastest.NewRecorder()
	d.Draw(rec)
	x, y, _, _ := d.Projection()
	if x < 0 || x >= 400 || y < 0 || y >= 300 {
		t.Errorf("projected point (%v,%v) outside new bounds", x, y)
	}
}

func TestGlobeDotPhiIsAreaUniform(t *testing.T) {
	// cos(phi) of an area-uniform sample is uniform on [-1,1], so its mean is ~0
	// and about half the samples fall in each hemisphere band |cos| < 0.5.
	rng := utils.NewPRNGService(23)
	const n = 20000
	var sum float64
	band := 0
	for i := 0; i < n; i++ {
		c := math.Cos(NewGlobeDot(100, 100, rng).Phi())
		sum += c
		if math.Abs(c) < 0.5 {
			band++
		}
	}
	if mean := sum / n; math.Abs(mean) > 0.03 {
		t.Errorf("mean cos(phi) = %v, want ~0", mean)
	}
	if frac := float64(band) / n; math.Abs(frac-0.5) > 0.03 {
		t.Errorf("fraction with |cos(phi)| < 0.5 = %v, want ~0.5", frac)
	}
}
