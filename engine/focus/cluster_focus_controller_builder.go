package focus

import "github.com/Carmen-Shannon/oxy-viz/engine/camera"

// ClusterControllerBuilderOption is a functional option for configuring a ClusterController.
type ClusterControllerBuilderOption func(*clusterControllerImpl)

// WithClusterLerpSpeed sets the convergence speed per second.
//
// Parameters:
//   - speed: lerp speed (default 4)
//
// Returns:
//   - ClusterControllerBuilderOption: option function to apply
func WithClusterLerpSpeed(speed float32) ClusterControllerBuilderOption {
	return func(c *clusterControllerImpl) {
		c.lerpSpeed = speed
	}
}

// WithFraming sets the orbit framing factor and distance floor.
//
// Parameters:
//   - factor: multiplier on the largest planar extent (default 1.8)
//   - minDistance: distance floor (default 3)
//
// Returns:
//   - ClusterControllerBuilderOption: option function to apply
func WithFraming(factor, minDistance float32) ClusterControllerBuilderOption {
	return func(c *clusterControllerImpl) {
		c.frameFactor = factor
		c.minFrameDistance = minDistance
	}
}

// WithIsoFactor sets the planar-extent to visible-height factor for the pan view.
//
// Parameters:
//   - factor: iso factor (default sqrt 2)
//
// Returns:
//   - ClusterControllerBuilderOption: option function to apply
func WithIsoFactor(factor float32) ClusterControllerBuilderOption {
	return func(c *clusterControllerImpl) {
		c.isoFactor = factor
	}
}

// WithWheelCancelThreshold sets the residual zoom delta that cancels a pan focus.
//
// Parameters:
//   - threshold: absolute zoom delta (default 0.01)
//
// Returns:
//   - ClusterControllerBuilderOption: option function to apply
func WithWheelCancelThreshold(threshold float32) ClusterControllerBuilderOption {
	return func(c *clusterControllerImpl) {
		c.cancelThreshold = threshold
	}
}

// WithOrbitLimits sets the orbit distance bounds.
//
// Parameters:
//   - limits: orbit rig bounds
//
// Returns:
//   - ClusterControllerBuilderOption: option function to apply
func WithOrbitLimits(limits camera.ZoomLimits) ClusterControllerBuilderOption {
	return func(c *clusterControllerImpl) {
		c.orbitLimits = limits
	}
}

// WithClusterOnArrive sets the arrival callback.
//
// Parameters:
//   - fn: receives the final look-at target
//
// Returns:
//   - ClusterControllerBuilderOption: option function to apply
func WithClusterOnArrive(fn ArriveFunc) ClusterControllerBuilderOption {
	return func(c *clusterControllerImpl) {
		c.onArrive = fn
	}
}

// WithClusterDebug enables [Focus] debug logging.
//
// Parameters:
//   - debug: true to log
//
// Returns:
//   - ClusterControllerBuilderOption: option function to apply
func WithClusterDebug(debug bool) ClusterControllerBuilderOption {
	return func(c *clusterControllerImpl) {
		c.debug = debug
	}
}
