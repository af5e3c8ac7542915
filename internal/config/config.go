package config

import "image/color"

const (
	DefaultCanvasID          = "canvas"
	DefaultRenderObjectCount = 100
	DefaultRenderObjectClass = "globe"
	DefaultFillColor         = "#ffffff"
	DefaultTitle             = "canvimation"

	WindowWidth  = 960
	WindowHeight = 640

	// terminal cells are sampled as 2x4 logical pixels (braille dots)
	CellWidth  = 2
	CellHeight = 4

	SnapFrames = 120
	SnapDelay  = 2 // GIF delay in 1/100 s
	PixelRatio = 1.0

	StatsFontSize = 12
	StatsMargin   = 8
	TermFrameRate = 30
)

var (
	BackgroundColor = color.RGBA{10, 10, 18, 255}
	StatsTextColor  = color.RGBA{240, 240, 240, 255}
	StatsPanelColor = color.RGBA{0, 0, 0, 160}
)
