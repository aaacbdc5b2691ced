package focus

import "github.com/go-gl/mathgl/mgl32"

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controllerImpl)

// WithLerpSpeed sets the position convergence speed per second.
//
// Parameters:
//   - speed: lerp speed (default 4)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithLerpSpeed(speed float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.lerpSpeed = speed
	}
}

// WithEpsilon sets the arrival distance.
//
// Parameters:
//   - epsilon: distance below which the camera snaps to the goal (default 0.05)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithEpsilon(epsilon float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.epsilon = epsilon
	}
}

// WithOffset sets the camera offset from the focused entity.
//
// Parameters:
//   - offset: world-space offset (default 1.5, 1.2, 1.5)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithOffset(offset mgl32.Vec3) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.offset = offset
	}
}

// WithOnArrive sets the arrival callback.
//
// Parameters:
//   - fn: receives the final look-at target
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithOnArrive(fn ArriveFunc) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.onArrive = fn
	}
}

// WithDebug enables [Focus] debug logging.
//
// Parameters:
//   - debug: true to log
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithDebug(debug bool) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.debug = debug
	}
}
