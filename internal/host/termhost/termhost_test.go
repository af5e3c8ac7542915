package termhost

import (
	"context"
	"errors"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"go-canvimation/internal/canvas"
	"go-canvimation/internal/event"
)

func TestRasterFillRectCoversDots(t *testing.T) {
	r := NewRaster(10, 8)
	r.FillRect(2, 2, 2, 2)
	for y := 0; y < 8; y++ {
		for x := 0; x < 10; x++ {
			_, a := r.At(x, y)
			inside := x >= 2 && x < 4 && y >= 2 && y < 4
			if inside && a != 1 {
				t.Errorf("dot (%d,%d) coverage %v, want 1", x, y, a)
			}
			if !inside && a != 0 {
				t.Errorf("dot (%d,%d) coverage %v, want 0", x, y, a)
			}
		}
	}
}

func TestRasterScaleAndClear(t *testing.T) {
	r := NewRaster(8, 8)
	r.Scale(2, 2)
	r.FillRect(1, 1, 1, 1)
	if _, a := r.At(3, 3); a != 1 {
		t.Errorf("scaled rect missed dot (3,3)")
	}
	if _, a := r.At(1, 1); a != 0 {
		t.Errorf("scaled rect painted unscaled dot (1,1)")
	}
	r.ClearRect(0, 0, 4, 4)
	if _, a := r.At(3, 3); a != 0 {
		t.Errorf("ClearRect left coverage %v", a)
	}
}

func TestRasterFillCircleAndAlpha(t *testing.T) {
	r := NewRaster(20, 20)
	r.SetFillColor(color.RGBA{255, 0, 0, 255})
	r.SetGlobalAlpha(0.5)
	r.BeginPath()
	r.Arc(10, 10, 4, 0, 2*math.Pi)
	r.Fill()

	c, a := r.At(10, 10)
	if a != 0.5 {
		t.Errorf("center coverage %v, want 0.5", a)
	}
	if c.R < 0.99 || c.G > 0.01 {
		t.Errorf("center color %v, want red", c)
	}
	if _, a := r.At(10, 16); a != 0 {
		t.Errorf("dot outside circle painted")
	}

	// source-over: a second half-transparent layer gives 0.75
	r.BeginPath()
	r.Arc(10, 10, 4, 0, 2*math.Pi)
	r.Fill()
	if _, a := r.At(10, 10); math.Abs(a-0.75) > 1e-9 {
		t.Errorf("stacked coverage %v, want 0.75", a)
	}
}

func TestRasterFillUsesAreaCoverage(t *testing.T) {
	r := NewRaster(8, 8)
	r.BeginPath()
	r.Arc(4, 4, 0.9, 0, 2*math.Pi)
	r.Fill()

	// the circle sits on the corner shared by four dots, a quarter in each
	quarter := math.Pi * 0.81 / 4
	total := 0.0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			_, a := r.At(x, y)
			total += a
			inner := (x == 3 || x == 4) && (y == 3 || y == 4)
			if inner && math.Abs(a-quarter) > 0.03 {
				t.Errorf("dot (%d,%d) coverage %.3f, want about %.3f", x, y, a, quarter)
			}
			if !inner && a != 0 {
				t.Errorf("dot (%d,%d) coverage %.3f, want 0", x, y, a)
			}
		}
	}
	if want := math.Pi * 0.81; math.Abs(total-want) > 0.05 {
		t.Errorf("total coverage %.3f, want circle area %.3f", total, want)
	}
}

func TestRasterFillRectPartialDots(t *testing.T) {
	r := NewRaster(4, 4)
	r.FillRect(0.5, 0, 1, 1)
	if _, a := r.At(0, 0); math.Abs(a-0.5) > 0.01 {
		t.Errorf("dot (0,0) coverage %.3f, want 0.5", a)
	}
	if _, a := r.At(1, 0); math.Abs(a-0.5) > 0.01 {
		t.Errorf("dot (1,0) coverage %.3f, want 0.5", a)
	}
	// partly off the grid
	r.FillRect(-2, 3, 3, 5)
	if _, a := r.At(0, 3); a != 1 {
		t.Errorf("clipped rect coverage %.3f, want 1", a)
	}
}

func TestCellBraille(t *testing.T) {
	r := NewRaster(2, 4)
	if ch, _, lit := r.Cell(0, 0); lit || ch != ' ' {
		t.Fatalf("empty cell = %q lit=%v", ch, lit)
	}
	r.FillRect(0, 0, 1, 1) // dot 1
	r.FillRect(1, 3, 1, 1) // dot 8
	ch, _, lit := r.Cell(0, 0)
	if !lit || ch != 0x2800|0x01|0x80 {
		t.Errorf("cell = %U, want %U", ch, rune(0x2881))
	}
}

func newSimHost(t *testing.T, cols, rows int) (*Host, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return New(screen, "canvas", 30), screen
}

func TestHostSurfaceLookup(t *testing.T) {
	h, _ := newSimHost(t, 20, 10)
	s, err := h.Surface("canvas")
	if err != nil {
		t.Fatal(err)
	}
	if w, hh := s.OffsetSize(); w != 40 || hh != 40 {
		t.Errorf("OffsetSize = %v,%v, want 40,40", w, hh)
	}
	if _, err := h.Surface("other"); !errors.Is(err, canvas.ErrSurfaceNotFound) {
		t.Errorf("err = %v", err)
	}
}

type resizeCounter struct{ got []event.ResizeData }

func (c *resizeCounter) OnEvent(e event.Event) {
	c.got = append(c.got, e.Resize)
}

func TestHostResizeDispatches(t *testing.T) {
	h, screen := newSimHost(t, 20, 10)
	counter := &resizeCounter{}
	h.Events().Subscribe(event.SurfaceResized, counter)

	h.resize()
	if len(counter.got) != 0 {
		t.Fatalf("resize without size change dispatched")
	}
	screen.SetSize(30, 5)
	h.resize()
	if len(counter.got) != 1 || counter.got[0] != (event.ResizeData{Width: 60, Height: 20}) {
		t.Errorf("dispatched %v, want one 60x20 notice", counter.got)
	}
}

func TestHostFrameFlushesRaster(t *testing.T) {
	h, screen := newSimHost(t, 4, 2)
	s, _ := h.Surface("canvas")
	s.SetBackingSize(8, 8)
	ctx := s.Context2D()
	h.RequestAnimationFrame(func() {
		ctx.FillRect(0, 0, 2, 4)
	})
	h.Frame()

	if mainc, _, _, _ := screen.GetContent(0, 0); mainc != 0x28FF {
		t.Errorf("cell (0,0) = %U, want full braille block", mainc)
	}
	if mainc, _, _, _ := screen.GetContent(1, 0); mainc != ' ' {
		t.Errorf("cell (1,0) = %q, want blank", mainc)
	}
}

func TestLoopStoppedEndsRun(t *testing.T) {
	h, _ := newSimHost(t, 10, 5)
	boom := errors.New("boom")
	h.Events().Stopped(boom)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := h.Run(ctx); !errors.Is(err, boom) {
		t.Errorf("Run = %v, want %v", err, boom)
	}
}
