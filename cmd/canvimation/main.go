// cmd/canvimation/main.go
package main

import (
	"log"
	"os"

	"go-canvimation/internal/app"
	"go-canvimation/internal/config"
	"go-canvimation/internal/host/ebitenhost"
	"go-canvimation/internal/ui"
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
	app.ServePprof(opts.Pprof)

	host := ebitenhost.New(opts.CanvasID, opts.WindowWidth, opts.WindowHeight)
	s, err := app.NewScene(host, opts)
	if err != nil {
		log.Fatal(err)
	}
	if opts.ShowStats {
		overlay, err := ui.NewStatsOverlay()
		if err != nil {
			log.Fatal(err)
		}
		host.ShowStats(overlay, func() ui.Stats {
			w, h := s.Size()
			return ui.Stats{
				Objects: len(s.Objects()),
				Class:   opts.RenderObjectClass,
				Frames:  s.Frames(),
				FPS:     host.FPS(),
				TPS:     host.TPS(),
				Width:   w,
				Height:  h,
				Ratio:   s.PixelRatio(),
			}
		})
	}
	if err := s.Start(); err != nil {
		log.Fatal(err)
	}
	if err := host.Run(opts.Title); err != nil {
		log.Fatal(err)
	}
}
