package event

// EventType identifies a notification kind.
type EventType string

// Event is a single notification. Only the payload matching Type is set.
type Event struct {
	Type   EventType
	Resize ResizeData // SurfaceResized
	Err    error      // LoopStopped
}

// Listener receives dispatched events.
type Listener interface {
	OnEvent(event Event)
}

// Dispatcher fans events out to the listeners subscribed to their type.
// Listeners run synchronously in subscription order and may subscribe or
// unsubscribe while an event is being delivered; the change applies from the
// next Dispatch.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe registers listener for eventType.
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	current := d.listeners[eventType]
	next := make([]Listener, len(current), len(current)+1)
	copy(next, current)
	d.listeners[eventType] = append(next, listener)
}

// Unsubscribe removes the first registration of listener for eventType.
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	current := d.listeners[eventType]
	for i, l := range current {
		if l != listener {
			continue
		}
		next := make([]Listener, 0, len(current)-1)
		next = append(next, current[:i]...)
		d.listeners[eventType] = append(next, current[i+1:]...)
		return
	}
}

// Dispatch sends event to every subscriber of its type.
func (d *Dispatcher) Dispatch(event Event) {
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
}

// Resized notifies subscribers that the surface now measures width x height
// logical pixels.
func (d *Dispatcher) Resized(width, height float64) {
	d.Dispatch(Event{Type: SurfaceResized, Resize: ResizeData{Width: width, Height: height}})
}

// Stopped notifies subscribers that the animation loop ended with err.
func (d *Dispatcher) Stopped(err error) {
	d.Dispatch(Event{Type: LoopStopped, Err: err})
}
