package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-viz/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
)

// WheelLineHeight converts glfw scroll offsets (lines) into DOM-style wheel pixels.
const WheelLineHeight float32 = 100

// Window provides the host window and translates its raw input into input.Event values.
// Pointer and wheel events are delivered to the canvas Surface with click and double-click
// synthesis; key events are delivered to both the canvas and the Global surface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// Surface returns the canvas surface. Its bounds track the framebuffer size.
	//
	// Returns:
	//   - input.Surface: the canvas surface
	Surface() input.Surface

	// Global returns the window-level surface used for keyboard shortcuts.
	//
	// Returns:
	//   - input.Surface: the global surface
	Global() input.Surface

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is created by the wgpuglfw bridge from the underlying GLFW window and is
	// handed to the external renderer.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow holds window configuration, GLFW state and the input surfaces.
type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are the framebuffer size in pixels.
	width  int
	height int

	closeOnEscape bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate func()
	onResize func(width, height int)

	local  *input.Dispatcher
	global *input.Dispatcher
	clicks *input.ClickSynthesizer

	cursorX, cursorY float32
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	w.resized(w.width, w.height)
	return w
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:     "oxy-viz",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  600,
		minHeight: 200,
		width:     1280,
		height:    720,
		local:     input.NewDispatcher(),
		global:    input.NewDispatcher(),
	}
	for _, opt := range options {
		opt(w)
	}
	if w.clicks == nil {
		w.clicks = input.NewClickSynthesizer(w.local)
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) Surface() input.Surface {
	return w.local
}

func (w *engineWindow) Global() input.Surface {
	return w.global
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	w.local.Detach()
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// pointer forwards a button press or release through click synthesis.
func (w *engineWindow) pointer(kind input.EventKind, button input.Button, x, y float32) {
	w.cursorX, w.cursorY = x, y
	w.clicks.Feed(&input.Event{Kind: kind, Button: button, X: x, Y: y})
}

func (w *engineWindow) cursorMoved(x, y float32) {
	w.cursorX, w.cursorY = x, y
	w.clicks.Feed(&input.Event{Kind: input.PointerMove, X: x, Y: y})
}

// scrolled converts a glfw vertical offset (positive away from the user) into a wheel
// event whose positive DeltaY zooms out.
func (w *engineWindow) scrolled(yoff float32) {
	w.local.Dispatch(&input.Event{Kind: input.Wheel, X: w.cursorX, Y: w.cursorY, DeltaY: -yoff * WheelLineHeight})
}

func (w *engineWindow) key(code uint32, down bool) {
	kind := input.KeyUp
	if down {
		kind = input.KeyDown
	}
	e := &input.Event{Kind: kind, Key: code}
	w.local.Dispatch(e)
	w.global.Dispatch(e)
}

func (w *engineWindow) resized(width, height int) {
	w.width = width
	w.height = height
	w.local.SetBounds(input.Rect{Width: float32(width), Height: float32(height)})
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
