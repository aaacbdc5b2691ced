package window

import (
	"time"

	"github.com/Carmen-Shannon/oxy-viz/engine/input"
)

// WindowBuilderOption is a functional option for configuring an engineWindow.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial window size. The framebuffer may be larger on high-DPI displays.
//
// Parameters:
//   - width, height: initial size in screen coordinates (default 1280x720)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
		w.height = height
	}
}

// WithSizeLimits bounds interactive resizing.
//
// Parameters:
//   - minWidth, minHeight: smallest allowed size (default 600x200)
//   - maxWidth, maxHeight: largest allowed size (default 3840x2160)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = minWidth, minHeight
		w.maxWidth, w.maxHeight = maxWidth, maxHeight
	}
}

// WithCloseOnEscape closes the window on Escape instead of delivering the key.
//
// Parameters:
//   - enabled: true to close on Escape (default false, Escape clears the selection)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithCloseOnEscape(enabled bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.closeOnEscape = enabled
	}
}

// WithDoubleClickInterval sets the maximum gap between the two clicks of a double click.
//
// Parameters:
//   - d: the interval (default input.DefaultDoubleClickInterval)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithDoubleClickInterval(d time.Duration) WindowBuilderOption {
	return func(w *engineWindow) {
		w.clicks = input.NewClickSynthesizer(w.local, input.WithDoubleClickInterval(d))
	}
}
