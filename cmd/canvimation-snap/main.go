// cmd/canvimation-snap/main.go
package main

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"log"
	"os"

	"go-canvimation/internal/app"
	"go-canvimation/internal/config"
	"go-canvimation/internal/host/softhost"
)

func main() {
	opts, err := config.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	closeLog, err := app.SetupLog(opts.LogFile, false)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	anim, err := render(opts)
	if err != nil {
		log.Fatal(err)
	}
	if err := write(opts.Output, anim); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d frames to %s", len(anim.Image), opts.Output)
}

// render runs opts.Frames ticks offscreen and collects every frame.
func render(opts config.Options) (*gif.GIF, error) {
	ratio := opts.PixelRatio
	if ratio <= 0 {
		ratio = config.PixelRatio
	}
	host := softhost.New(opts.CanvasID, opts.WindowWidth, opts.WindowHeight, ratio)
	s, err := app.NewScene(host, opts)
	if err != nil {
		return nil, err
	}
	if err := s.Start(); err != nil {
		return nil, err
	}

	anim := &gif.GIF{}
	for i := 0; i < opts.Frames; i++ {
		host.Step()
		if err := host.Err(); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		anim.Image = append(anim.Image, quantize(host.Snapshot(config.BackgroundColor)))
		anim.Delay = append(anim.Delay, config.SnapDelay)
	}
	return anim, nil
}

func quantize(img image.Image) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	return p
}

func write(path string, anim *gif.GIF) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		return fmt.Errorf("encode gif: %w", err)
	}
	return f.Close()
}
