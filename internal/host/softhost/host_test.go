package softhost

import (
	"errors"
	"image/color"
	"testing"

	"go-canvimation/internal/canvas"
	"go-canvimation/internal/object"
	"go-canvimation/internal/scene"
	"go-canvimation/internal/utils"
)

func TestHexColor(t *testing.T) {
	tests := []struct {
		in   color.Color
		want string
	}{
		{color.White, "#ffffff"},
		{color.RGBA{0x1e, 0x90, 0xff, 0xff}, "#1e90ff"},
		{color.Black, "#000000"},
	}
	for _, tt := range tests {
		if got := hexColor(tt.in); got != tt.want {
			t.Errorf("hexColor(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHostSurface(t *testing.T) {
	h := New("canvas", 40, 30, 1)
	if _, err := h.Surface("nope"); !errors.Is(err, canvas.ErrSurfaceNotFound) {
		t.Errorf("err = %v", err)
	}
	s, err := h.Surface("canvas")
	if err != nil {
		t.Fatal(err)
	}
	if w, hh := s.BackingSize(); w != 40 || hh != 30 {
		t.Errorf("BackingSize = %d,%d, want 40,30", w, hh)
	}
}

func TestSceneRendersPixels(t *testing.T) {
	h := New("canvas", 64, 48, 2)
	rng := utils.NewPRNGService(1)
	factory, err := object.NewFactory(object.KindOrbit, rng)
	if err != nil {
		t.Fatal(err)
	}
	s, err := scene.New(h, scene.Config{
		CanvasID:          "canvas",
		RenderObjectCount: 20,
		Factory:           factory,
		FillColor:         color.White,
	})
	if err != nil {
		t.Fatal(err)
	}
	surface, _ := h.Surface("canvas")
	if w, hh := surface.BackingSize(); w != 128 || hh != 96 {
		t.Fatalf("BackingSize = %d,%d, want 128,96 at ratio 2", w, hh)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if !h.Step() {
			t.Fatalf("frame %d ran nothing", i)
		}
	}

	img := h.Snapshot(color.Black)
	lit := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r > 0x8000 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no pixel painted after three frames")
	}

	h.Resize(32, 32)
	if w, hh := surface.BackingSize(); w != 64 || hh != 64 {
		t.Errorf("BackingSize after resize = %d,%d, want 64,64", w, hh)
	}
}

type brokenDot struct{}

func (brokenDot) Update()                   {}
func (brokenDot) Draw(canvas.Context)       { panic("broken") }
func (brokenDot) ResizeUpdate(_, _ float64) {}

func TestLoopFailureReachesHost(t *testing.T) {
	h := New("canvas", 16, 16, 1)
	s, err := scene.New(h, scene.Config{
		CanvasID:          "canvas",
		RenderObjectCount: 1,
		Factory:           func(_, _ float64) object.RenderObject { return brokenDot{} },
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	h.Step()

	var objErr *scene.ObjectError
	if !errors.As(h.Err(), &objErr) || objErr.Op != scene.OpDraw {
		t.Fatalf("host Err = %v, want draw ObjectError", h.Err())
	}
	if h.Step() {
		t.Error("a frame ran after the loop stopped")
	}
}
