package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"go-canvimation/internal/object"
)

// ErrInvalidOptions is wrapped by every validation failure.
var ErrInvalidOptions = errors.New("invalid options")

// Options is the external configuration surface of a scene and its host.
type Options struct {
	CanvasID          string `json:"canvasId"`
	RenderObjectCount int    `json:"renderObjectCount"`
	RenderObjectClass string `json:"renderObjectClass"`
	Seed              int64  `json:"seed"`
	FillColor         string `json:"fillColor"`
	ShowStats         bool   `json:"showStats"`

	Title        string  `json:"title"`
	WindowWidth  int     `json:"windowWidth"`
	WindowHeight int     `json:"windowHeight"`
	PixelRatio   float64 `json:"pixelRatio"`

	Frames  int    `json:"frames"`
	Output  string `json:"output"`
	LogFile string `json:"logFile"`
	Pprof   string `json:"pprof"`
}

// Default returns the built-in options.
func Default() Options {
	return Options{
		CanvasID:          DefaultCanvasID,
		RenderObjectCount: DefaultRenderObjectCount,
		RenderObjectClass: DefaultRenderObjectClass,
		FillColor:         DefaultFillColor,
		Title:             DefaultTitle,
		WindowWidth:       WindowWidth,
		WindowHeight:      WindowHeight,
		PixelRatio:        PixelRatio,
		Frames:            SnapFrames,
		Output:            "canvimation.gif",
	}
}

// Load reads a JSON options file over the defaults. Keys missing from the
// file keep their default values.
func Load(path string) (Options, error) {
	opts := Default()
	file, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read options file: %w", err)
	}
	if err := json.Unmarshal(file, &opts); err != nil {
		return opts, fmt.Errorf("failed to unmarshal options: %w", err)
	}
	return opts, nil
}

// RegisterFlags binds command line flags to o. Flags left unset keep the
// values already in o.
func (o *Options) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.CanvasID, "canvas", o.CanvasID, "surface identifier")
	fs.IntVar(&o.RenderObjectCount, "count", o.RenderObjectCount, "number of render objects")
	fs.StringVar(&o.RenderObjectClass, "class", o.RenderObjectClass, "render object class: flat, orbit or globe")
	fs.Int64Var(&o.Seed, "seed", o.Seed, "random seed, 0 uses the clock")
	fs.StringVar(&o.FillColor, "color", o.FillColor, "fill color as #rrggbb")
	fs.BoolVar(&o.ShowStats, "stats", o.ShowStats, "draw the stats overlay")
	fs.IntVar(&o.WindowWidth, "width", o.WindowWidth, "initial surface width")
	fs.IntVar(&o.WindowHeight, "height", o.WindowHeight, "initial surface height")
	fs.Float64Var(&o.PixelRatio, "ratio", o.PixelRatio, "device pixel ratio for offscreen rendering")
	fs.IntVar(&o.Frames, "frames", o.Frames, "frames to render offscreen")
	fs.StringVar(&o.Output, "o", o.Output, "output file for offscreen rendering")
	fs.StringVar(&o.LogFile, "log", o.LogFile, "write the log to this file")
	fs.StringVar(&o.Pprof, "pprof", o.Pprof, "serve net/http/pprof on this address")
}

// Parse loads an optional -config file first and lets the remaining flags
// override it.
func Parse(name string, args []string) (Options, error) {
	pre := flag.NewFlagSet(name, flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	path := pre.String("config", "", "")
	// only -config matters in the first pass
	_ = pre.Parse(filterConfigArgs(args))

	opts := Default()
	if *path != "" {
		var err error
		if opts, err = Load(*path); err != nil {
			return opts, err
		}
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.String("config", *path, "JSON options file")
	opts.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, opts.Validate()
}

// QueryArgs turns a URL query such as "?count=50&class=orbit" into flag
// arguments for Parse. Keys are sorted so the result is stable.
func QueryArgs(query string) ([]string, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if err != nil {
		return nil, fmt.Errorf("parse query: %w", err)
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var args []string
	for _, k := range keys {
		for _, v := range values[k] {
			args = append(args, "-"+k+"="+v)
		}
	}
	return args, nil
}

func filterConfigArgs(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-config" || a == "--config":
			out = append(out, a)
			if i+1 < len(args) {
				out = append(out, args[i+1])
				i++
			}
		case strings.HasPrefix(a, "-config=") || strings.HasPrefix(a, "--config="):
			out = append(out, a)
		}
	}
	return out
}

// Validate checks the options and reports every problem at once.
func (o Options) Validate() error {
	var problems []string
	if o.CanvasID == "" {
		problems = append(problems, "canvasId is empty")
	}
	if o.RenderObjectCount < 0 {
		problems = append(problems, fmt.Sprintf("renderObjectCount %d is negative", o.RenderObjectCount))
	}
	if _, err := object.ParseKind(o.RenderObjectClass); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := ParseColor(o.FillColor); err != nil {
		problems = append(problems, err.Error())
	}
	if o.WindowWidth <= 0 || o.WindowHeight <= 0 {
		problems = append(problems, fmt.Sprintf("window size %dx%d is not positive", o.WindowWidth, o.WindowHeight))
	}
	if o.PixelRatio < 0 {
		problems = append(problems, fmt.Sprintf("pixelRatio %g is negative", o.PixelRatio))
	}
	if o.Frames < 0 {
		problems = append(problems, fmt.Sprintf("frames %d is negative", o.Frames))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, strings.Join(problems, "; "))
	}
	return nil
}

// Kind returns the parsed render object class.
func (o Options) Kind() (object.Kind, error) {
	return object.ParseKind(o.RenderObjectClass)
}

// Color returns the parsed fill color.
func (o Options) Color() (color.RGBA, error) {
	return ParseColor(o.FillColor)
}

// ParseColor parses #rgb or #rrggbb.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 3 && len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q is not #rgb or #rrggbb", s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
