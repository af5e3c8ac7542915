// Package scene runs the animation loop: once per display refresh it advances
// every render object, clears the surface and paints every object again.
package scene

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"

	"go-canvimation/internal/canvas"
	"go-canvimation/internal/event"
	"go-canvimation/internal/object"
)

var (
	// ErrAlreadyStarted is returned by a second call to Start.
	ErrAlreadyStarted = errors.New("scene already started")
	// ErrNoFactory is returned by New when objects are requested without a factory.
	ErrNoFactory = errors.New("render object factory is nil")
	// ErrNegativeCount is returned by New for a negative object count.
	ErrNegativeCount = errors.New("render object count is negative")
)

// Config holds construction parameters.
type Config struct {
	CanvasID          string
	RenderObjectCount int
	Factory           object.Factory
	// FillColor is applied to the context after every resize. Nil keeps the
	// context default.
	FillColor color.Color
}

// Scene owns a surface and a fixed set of render objects.
type Scene struct {
	host    canvas.Host
	surface canvas.Surface
	ctx     canvas.Context

	count     int
	factory   object.Factory
	fillColor color.Color

	width, height float64
	pixelRatio    float64
	objects       []object.RenderObject

	started bool
	running bool
	frame   canvas.FrameHandle
	frames  uint64
	err     error
}

// New binds a scene to the surface cfg.CanvasID of host and computes the
// initial bounds. Objects are created by Start.
// A missing surface is returned as is; there is nothing to retry.
func New(host canvas.Host, cfg Config) (*Scene, error) {
	if cfg.RenderObjectCount < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, cfg.RenderObjectCount)
	}
	if cfg.Factory == nil && cfg.RenderObjectCount > 0 {
		return nil, ErrNoFactory
	}
	surface, err := host.Surface(cfg.CanvasID)
	if err != nil {
		return nil, fmt.Errorf("bind scene: %w", err)
	}
	s := &Scene{
		host:       host,
		surface:    surface,
		ctx:        surface.Context2D(),
		count:      cfg.RenderObjectCount,
		factory:    cfg.Factory,
		fillColor:  cfg.FillColor,
		pixelRatio: 1,
	}
	host.Events().Subscribe(event.SurfaceResized, s)
	if err := s.OnResize(); err != nil {
		return nil, err
	}
	return s, nil
}

// Start creates the render objects and schedules the first tick.
// It can only be called once.
func (s *Scene) Start() error {
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true
	s.objects = make([]object.RenderObject, 0, s.count)
	for i := 0; i < s.count; i++ {
		s.objects = append(s.objects, s.factory(s.width, s.height))
	}
	s.running = true
	s.frame = s.host.RequestAnimationFrame(s.tick)
	log.Printf("scene: started with %d objects on %gx%g (ratio %g)", s.count, s.width, s.height, s.pixelRatio)
	return nil
}

// Stop cancels the pending frame and stops following resizes. The objects
// are kept. A stopped scene cannot be started again.
func (s *Scene) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.host.CancelAnimationFrame(s.frame)
	s.frame = 0
	s.host.Events().Unsubscribe(event.SurfaceResized, s)
}

// OnEvent implements event.Listener for resize notifications.
func (s *Scene) OnEvent(e event.Event) {
	if e.Type == event.SurfaceResized {
		// failures are already recorded and reported by OnResize
		_ = s.OnResize()
	}
}

// OnResize recomputes the logical size from the surface container, sizes the
// backing store for the device pixel ratio and renormalizes every object.
// The transform is reset before scaling so repeated resizes never compound.
func (s *Scene) OnResize() error {
	if s.err != nil {
		return s.err
	}
	s.width, s.height = s.surface.OffsetSize()
	ratio := s.host.DevicePixelRatio()

	s.ctx.ResetTransform()
	if ratio > 1 {
		s.surface.SetBackingSize(scaled(s.width, ratio), scaled(s.height, ratio))
		s.ctx.Scale(ratio, ratio)
		s.pixelRatio = ratio
	} else {
		s.surface.SetBackingSize(scaled(s.width, 1), scaled(s.height, 1))
		s.pixelRatio = 1
	}
	if s.fillColor != nil {
		s.ctx.SetFillColor(s.fillColor)
	}
	bw, bh := s.surface.BackingSize()
	log.Printf("scene: resized to %gx%g, backing store %dx%d", s.width, s.height, bw, bh)

	if err := s.resizeObjects(); err != nil {
		s.fail(err)
		return err
	}
	return nil
}

func scaled(v, ratio float64) int {
	return int(math.Round(v * ratio))
}

// tick is the per-frame body. The order is fixed: reschedule, update all,
// clear, draw all.
func (s *Scene) tick() {
	s.frame = s.host.RequestAnimationFrame(s.tick)
	if err := s.step(); err != nil {
		s.fail(err)
		return
	}
	s.frames++
}

func (s *Scene) step() (err error) {
	op, idx := OpUpdate, 0
	defer func() {
		if r := recover(); r != nil {
			err = &ObjectError{Index: idx, Op: op, Cause: r}
		}
	}()
	for idx = range s.objects {
		s.objects[idx].Update()
	}
	s.ctx.ClearRect(0, 0, s.width, s.height)
	op = OpDraw
	for idx = range s.objects {
		s.objects[idx].Draw(s.ctx)
	}
	return nil
}

func (s *Scene) resizeObjects() (err error) {
	idx := 0
	defer func() {
		if r := recover(); r != nil {
			err = &ObjectError{Index: idx, Op: OpResize, Cause: r}
		}
	}()
	for idx = range s.objects {
		s.objects[idx].ResizeUpdate(s.height, s.width)
	}
	return nil
}

// fail records err, stops the loop and announces it once with LoopStopped.
func (s *Scene) fail(err error) {
	if s.err != nil {
		return
	}
	s.err = err
	s.Stop()
	// a failure before Start still has to drop the resize subscription
	s.host.Events().Unsubscribe(event.SurfaceResized, s)
	log.Printf("scene: stopped: %v", err)
	s.host.Events().Stopped(err)
}

// Err returns the failure that stopped the loop, if any.
func (s *Scene) Err() error { return s.err }

// Running reports whether a frame is scheduled.
func (s *Scene) Running() bool { return s.running }

// Frames returns the number of completed ticks.
func (s *Scene) Frames() uint64 { return s.frames }

// Objects returns the render objects in update and draw order.
func (s *Scene) Objects() []object.RenderObject { return s.objects }

// Size returns the logical surface size.
func (s *Scene) Size() (width, height float64) { return s.width, s.height }

// PixelRatio returns the scale applied to the context, 1 on standard displays.
func (s *Scene) PixelRatio() float64 { return s.pixelRatio }
