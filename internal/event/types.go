package event

const (
	SurfaceResized EventType = "SurfaceResized" // logical size of the surface changed
	LoopStopped    EventType = "LoopStopped"    // animation loop ended, Err says why
)

// ResizeData is carried by SurfaceResized events.
type ResizeData struct {
	Width, Height float64
}
