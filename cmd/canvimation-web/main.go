//go:build js && !wasm

// Command canvimation-web animates the page's canvas element. Build it with
// gopherjs and load it from a page holding <canvas id="canvas">. Options
// are read from the query string, for example ?count=300&class=orbit.
package main

import (
	"log"

	"honnef.co/go/js/dom"

	"go-canvimation/internal/app"
	"go-canvimation/internal/config"
	"go-canvimation/internal/host/domhost"
)

func main() {
	domhost.WhenReady(func() {
		go start()
	})
}

func start() {
	args, err := config.QueryArgs(dom.GetWindow().Location().Search)
	if err != nil {
		log.Println(err)
		return
	}
	opts, err := config.Parse("canvimation-web", args)
	if err != nil {
		log.Println(err)
		return
	}
	host := domhost.New()
	s, err := app.NewScene(host, opts)
	if err != nil {
		log.Println(err)
		return
	}
	if err := s.Start(); err != nil {
		log.Println(err)
	}
}
