// cmd/canvimation-term/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"go-canvimation/internal/app"
	"go-canvimation/internal/config"
	"go-canvimation/internal/host/termhost"
)

func main() {
	opts, err := config.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	// the screen owns stdout, log elsewhere or not at all
	closeLog, err := app.SetupLog(opts.LogFile, true)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts config.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	screen.Clear()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := termhost.New(screen, opts.CanvasID, config.TermFrameRate)
	s, err := app.NewScene(host, opts)
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		return err
	}
	return host.Run(ctx)
}
