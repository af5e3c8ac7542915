package main

import (
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"go-canvimation/internal/config"
)

func TestRenderWritesFrames(t *testing.T) {
	opts := config.Default()
	opts.WindowWidth, opts.WindowHeight = 48, 32
	opts.RenderObjectCount = 10
	opts.Frames = 4
	opts.Seed = 7

	anim, err := render(opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(anim.Image) != 4 || len(anim.Delay) != 4 {
		t.Fatalf("frames = %d, delays = %d, want 4", len(anim.Image), len(anim.Delay))
	}
	if b := anim.Image[0].Bounds(); b.Dx() != 48 || b.Dy() != 32 {
		t.Errorf("frame bounds = %v, want 48x32", b)
	}

	path := filepath.Join(t.TempDir(), "out.gif")
	if err := write(path, anim); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded.Image) != 4 {
		t.Errorf("decoded %d frames, want 4", len(decoded.Image))
	}
}
