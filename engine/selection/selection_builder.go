package selection

import (
	"github.com/Carmen-Shannon/oxy-viz/engine/focus"
	"github.com/go-gl/mathgl/mgl32"
)

// ManagerBuilderOption is a functional option for configuring a Manager.
type ManagerBuilderOption func(*managerImpl)

// WithLayer sets the layer the tooltip and panel are mounted on.
//
// Parameters:
//   - l: the host layer
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithLayer(l Layer) ManagerBuilderOption {
	return func(m *managerImpl) {
		m.layer = l
	}
}

// WithTooltipOffset sets the tooltip's pixel offset from the cursor.
//
// Parameters:
//   - px: offset on both axes (default 12)
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithTooltipOffset(px float32) ManagerBuilderOption {
	return func(m *managerImpl) {
		m.tooltipOffset = px
	}
}

// WithFocusOffset sets the camera offset used by FocusCamera.
//
// Parameters:
//   - offset: offset from the target (default (0, 20, 40))
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithFocusOffset(offset mgl32.Vec3) ManagerBuilderOption {
	return func(m *managerImpl) {
		m.focusOffset = offset
	}
}

// WithFocusEasing sets the easing curve used by FocusCamera.
//
// Parameters:
//   - easing: the curve (default EaseInOutCubic)
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithFocusEasing(easing focus.Easing) ManagerBuilderOption {
	return func(m *managerImpl) {
		if easing != nil {
			m.easing = easing
		}
	}
}

// WithDebug enables [Selection] debug logging.
//
// Parameters:
//   - debug: true to log
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithDebug(debug bool) ManagerBuilderOption {
	return func(m *managerImpl) {
		m.debug = debug
	}
}
