// Package app wires options, a host and a scene together for the commands.
package app

import (
	"fmt"
	"io"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"go-canvimation/internal/canvas"
	"go-canvimation/internal/config"
	"go-canvimation/internal/object"
	"go-canvimation/internal/scene"
	"go-canvimation/internal/utils"
)

// NewScene builds the object factory described by opts and binds a scene to
// host. Hosts learn about a failed loop through event.LoopStopped.
func NewScene(host canvas.Host, opts config.Options) (*scene.Scene, error) {
	kind, err := opts.Kind()
	if err != nil {
		return nil, err
	}
	fill, err := opts.Color()
	if err != nil {
		return nil, err
	}
	factory, err := object.NewFactory(kind, utils.NewPRNGService(opts.Seed))
	if err != nil {
		return nil, err
	}
	s, err := scene.New(host, scene.Config{
		CanvasID:          opts.CanvasID,
		RenderObjectCount: opts.RenderObjectCount,
		Factory:           factory,
		FillColor:         fill,
	})
	if err != nil {
		return nil, fmt.Errorf("create scene: %w", err)
	}
	return s, nil
}

// SetupLog sends the standard logger to path, or nowhere when path is empty
// and quiet is set. The returned function closes the file.
func SetupLog(path string, quiet bool) (func(), error) {
	if path == "" {
		if quiet {
			log.SetOutput(io.Discard)
		}
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return func() { f.Close() }, nil
}

// ServePprof exposes net/http/pprof on addr in the background.
func ServePprof(addr string) {
	if addr == "" {
		return
	}
	go func() {
		log.Println(http.ListenAndServe(addr, nil))
	}()
}
