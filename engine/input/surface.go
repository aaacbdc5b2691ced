package input

import (
	"sort"
	"sync"
)

// Rect is a screen-space rectangle in pixels.
type Rect struct {
	Left, Top     float32
	Width, Height float32
}

// Surface is a host element events can be bound to.
type Surface interface {
	// Bounds returns the surface's current bounding rectangle.
	//
	// Returns:
	//   - Rect: the bounding rectangle in pixels
	//   - bool: false when the surface is not attached to a host
	Bounds() (Rect, bool)

	// Bind registers a handler for every event delivered to the surface.
	//
	// Parameters:
	//   - h: the handler to register
	//
	// Returns:
	//   - func(): removes the handler; safe to call more than once
	Bind(h Handler) (unbind func())
}

// Dispatcher is a Surface that fans events out to its bound handlers in bind order.
// The glfw window feeds one; tests drive one directly.
type Dispatcher struct {
	mu       sync.Mutex
	handlers map[uint64]Handler
	nextID   uint64
	bounds   Rect
	attached bool
}

var _ Surface = &Dispatcher{}

// NewDispatcher creates a detached Dispatcher with no handlers.
//
// Returns:
//   - *Dispatcher: the new dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[uint64]Handler)}
}

// SetBounds attaches the dispatcher to a host rectangle.
//
// Parameters:
//   - r: the bounding rectangle in pixels
func (d *Dispatcher) SetBounds(r Rect) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bounds = r
	d.attached = true
}

// Detach marks the host as gone; Bounds reports false until SetBounds is called again.
func (d *Dispatcher) Detach() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attached = false
}

func (d *Dispatcher) Bounds() (Rect, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bounds, d.attached
}

func (d *Dispatcher) Bind(h Handler) func() {
	if h == nil {
		return func() {}
	}
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.handlers[id] = h
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.handlers, id)
			d.mu.Unlock()
		})
	}
}

// Dispatch delivers e to every bound handler. Handlers may bind or unbind during
// delivery; changes take effect from the next event.
//
// Parameters:
//   - e: the event to deliver
func (d *Dispatcher) Dispatch(e *Event) {
	d.mu.Lock()
	ids := make([]uint64, 0, len(d.handlers))
	for id := range d.handlers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	hs := make([]Handler, len(ids))
	for i, id := range ids {
		hs[i] = d.handlers[id]
	}
	d.mu.Unlock()

	for _, h := range hs {
		h(e)
	}
}

// Handlers returns the number of bound handlers.
func (d *Dispatcher) Handlers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers)
}
