// cmd/canvimation-raylib/main.go
package main

import (
	"log"
	"os"

	"go-canvimation/internal/app"
	"go-canvimation/internal/config"
	"go-canvimation/internal/host/rlhost"
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

	host := rlhost.New(opts.CanvasID, opts.WindowWidth, opts.WindowHeight, opts.Title, config.BackgroundColor)
	defer host.Close()

	s, err := app.NewScene(host, opts)
	if err != nil {
		log.Print(err)
		return
	}
	if err := s.Start(); err != nil {
		log.Print(err)
		return
	}
	if err := host.Run(); err != nil {
		log.Print(err)
	}
}
