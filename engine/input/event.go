// Package input normalizes host pointer, wheel and key events and accumulates them
// into per-frame deltas for the camera rigs.
package input

// EventKind identifies the kind of a host input event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	Wheel
	Click
	DoubleClick
	KeyDown
	KeyUp
)

var eventKindNames = [...]string{
	PointerDown: "pointerdown",
	PointerMove: "pointermove",
	PointerUp:   "pointerup",
	Wheel:       "wheel",
	Click:       "click",
	DoubleClick: "dblclick",
	KeyDown:     "keydown",
	KeyUp:       "keyup",
}

// String returns the DOM-style event name.
func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return "unknown"
	}
	return eventKindNames[k]
}

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// Event is a single host input event. Coordinates are in surface pixels with the
// origin at the top-left corner of the host window.
type Event struct {
	Kind EventKind

	// X and Y are the cursor position for pointer, click and wheel events.
	X, Y float32

	Button Button

	// DeltaY is the wheel delta in DOM convention: positive scrolls down (zoom out).
	DeltaY float32

	// Key is the key code for key events (see common.Key*).
	Key uint32

	// TextInput marks key events that target a text-input element.
	TextInput bool

	defaultPrevented bool
}

// PreventDefault suppresses the host's default action for the event.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Handler receives host events.
type Handler func(e *Event)
