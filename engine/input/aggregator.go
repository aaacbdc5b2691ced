package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viz/common"
)

// DefaultZoomSpeed scales raw wheel DeltaY into accumulated zoom delta.
const DefaultZoomSpeed float32 = 0.1

// Gate reports whether a class of input is currently blocked.
type Gate func() bool

// KeySet is a set of held key codes.
type KeySet map[uint32]struct{}

// Has reports whether key is in the set.
func (k KeySet) Has(key uint32) bool {
	_, ok := k[key]
	return ok
}

// Frame is the input accumulated since the previous Drain.
type Frame struct {
	// DragX and DragY are the unconsumed primary-button drag deltas in pixels.
	DragX, DragY float32
	// Wheel is the summed wheel delta scaled by the zoom speed.
	Wheel float32
	// Keys holds the pan keys held at drain time.
	Keys KeySet
}

type aggregatorImpl struct {
	mu *sync.Mutex

	zoomSpeed float32
	keyFilter func(code uint32) bool

	pointerGate Gate
	wheelGate   Gate

	dragging     bool
	lastX, lastY float32
	dragX, dragY float32
	wheel        float32
	held         KeySet

	unbind []func()
}

// Aggregator normalizes host events into per-frame accumulators. Event handlers only
// write into the accumulators under the mutex; the frame tick consumes them with Drain.
type Aggregator interface {
	// Attach binds pointer, wheel and key listeners to s. Attaching again first detaches.
	//
	// Parameters:
	//   - s: the host surface
	Attach(s Surface)

	// Detach unbinds every listener. Safe to call more than once.
	Detach()

	// Drain returns the accumulated input and resets the drag and wheel accumulators.
	// Held keys persist until their key-up arrives.
	//
	// Returns:
	//   - Frame: input since the previous call
	Drain() Frame

	// Dragging reports whether a primary-button drag is in progress.
	//
	// Returns:
	//   - bool: true while the primary button is held after an accepted pointer-down
	Dragging() bool

	// SetPointerGate installs the gate consulted on pointer-down and pointer-move.
	//
	// Parameters:
	//   - g: the gate, or nil to accept all pointer input
	SetPointerGate(g Gate)

	// SetWheelGate installs the gate consulted on wheel events.
	//
	// Parameters:
	//   - g: the gate, or nil to accept all wheel input
	SetWheelGate(g Gate)

	// Reset clears every accumulator, held keys and drag state included.
	Reset()
}

var _ Aggregator = &aggregatorImpl{}

// NewAggregator creates an unattached Aggregator.
//
// Parameters:
//   - options: functional options to configure the aggregator
//
// Returns:
//   - Aggregator: the new aggregator
func NewAggregator(options ...AggregatorBuilderOption) Aggregator {
	a := &aggregatorImpl{
		mu:        &sync.Mutex{},
		zoomSpeed: DefaultZoomSpeed,
		keyFilter: common.IsPanKey,
		held:      make(KeySet),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *aggregatorImpl) Attach(s Surface) {
	a.Detach()
	if s == nil {
		return
	}
	unbind := s.Bind(a.handle)
	a.mu.Lock()
	a.unbind = append(a.unbind, unbind)
	a.mu.Unlock()
}

func (a *aggregatorImpl) Detach() {
	a.mu.Lock()
	unbind := a.unbind
	a.unbind = nil
	a.dragging = false
	a.mu.Unlock()
	for _, u := range unbind {
		u()
	}
}

func (a *aggregatorImpl) Drain() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	f := Frame{
		DragX: a.dragX,
		DragY: a.dragY,
		Wheel: a.wheel,
		Keys:  make(KeySet, len(a.held)),
	}
	for k := range a.held {
		f.Keys[k] = struct{}{}
	}
	a.dragX, a.dragY = 0, 0
	a.wheel = 0
	return f
}

func (a *aggregatorImpl) Dragging() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dragging
}

func (a *aggregatorImpl) SetPointerGate(g Gate) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pointerGate = g
}

func (a *aggregatorImpl) SetWheelGate(g Gate) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.wheelGate = g
}

func (a *aggregatorImpl) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dragging = false
	a.dragX, a.dragY = 0, 0
	a.wheel = 0
	a.held = make(KeySet)
}

// handle is the single listener bound to the surface. Gates are evaluated outside the
// mutex so they may query other components freely.
func (a *aggregatorImpl) handle(e *Event) {
	switch e.Kind {
	case PointerDown:
		if e.Button != ButtonPrimary || a.blocked(a.pointerGateFn()) {
			return
		}
		a.mu.Lock()
		a.dragging = true
		a.lastX, a.lastY = e.X, e.Y
		a.mu.Unlock()
	case PointerMove:
		blocked := a.blocked(a.pointerGateFn())
		a.mu.Lock()
		if a.dragging && !blocked {
			a.dragX += e.X - a.lastX
			a.dragY += e.Y - a.lastY
		}
		a.lastX, a.lastY = e.X, e.Y
		a.mu.Unlock()
	case PointerUp:
		if e.Button != ButtonPrimary {
			return
		}
		a.mu.Lock()
		a.dragging = false
		a.mu.Unlock()
	case Wheel:
		e.PreventDefault()
		if a.blocked(a.wheelGateFn()) {
			return
		}
		a.mu.Lock()
		a.wheel += e.DeltaY * a.zoomSpeed
		a.mu.Unlock()
	case KeyDown:
		if e.TextInput || !a.keyFilter(e.Key) {
			return
		}
		a.mu.Lock()
		a.held[e.Key] = struct{}{}
		a.mu.Unlock()
	case KeyUp:
		a.mu.Lock()
		delete(a.held, e.Key)
		a.mu.Unlock()
	}
}

func (a *aggregatorImpl) pointerGateFn() Gate {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pointerGate
}

func (a *aggregatorImpl) wheelGateFn() Gate {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.wheelGate
}

func (a *aggregatorImpl) blocked(g Gate) bool {
	return g != nil && g()
}
