package camera

import "github.com/go-gl/mathgl/mgl32"

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the initial camera position.
//
// Parameters:
//   - p: world-space position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera position
func WithPosition(p mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = p
	}
}

// WithTarget sets the initial look-at target.
//
// Parameters:
//   - t: world-space look-at point
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera target
func WithTarget(t mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = t
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - up: the up vector
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithMode sets the initial projection mode.
//
// Parameters:
//   - mode: perspective or orthographic
//
// Returns:
//   - CameraBuilderOption: a function that sets the projection mode
func WithMode(mode ProjectionMode) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.mode = mode
	}
}

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithClipPlanes sets the perspective near and far plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithOrthoClipPlanes sets the orthographic near and far plane distances.
// Negative near values are allowed and keep geometry behind the eye visible.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the orthographic clip planes
func WithOrthoClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.orthoNear = near
		c.orthoFar = far
	}
}

// WithZoom sets the orthographic zoom factor.
//
// Parameters:
//   - zoom: zoom factor, ignored unless positive
//
// Returns:
//   - CameraBuilderOption: a function that sets the zoom
func WithZoom(zoom float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if zoom > 0 {
			c.zoom = zoom
		}
	}
}

// WithOrthoHeight fixes the orthographic frustum height at zoom 1 instead of
// following the viewport height.
//
// Parameters:
//   - height: frustum height in world units
//
// Returns:
//   - CameraBuilderOption: a function that sets the frustum height
func WithOrthoHeight(height float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.orthoHeight = height
	}
}

// WithViewport sets the viewport size and derives the aspect ratio from it.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the viewport
func WithViewport(width, height float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if width <= 0 || height <= 0 {
			return
		}
		c.viewportWidth = width
		c.viewportHeight = height
		c.aspect = width / height
	}
}
