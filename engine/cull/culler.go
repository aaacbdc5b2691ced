package cull

import (
	"github.com/Carmen-Shannon/oxy-viz/common"
	"github.com/Carmen-Shannon/oxy-viz/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// Predicate reports whether a bounding sphere centred at (x, y, z) intersects the
// frustum it was built from.
type Predicate func(x, y, z float32) bool

// New snapshots cam's view frustum and returns a sphere test against it. The predicate
// does not track later camera changes; build a new one each frame.
// Panics if cam is nil.
//
// Parameters:
//   - cam: the camera to cull against
//   - margin: bounding sphere radius in world units
//
// Returns:
//   - Predicate: the visibility test
func New(cam camera.Camera, margin float32) Predicate {
	if cam == nil {
		panic("cull: New requires a non-nil Camera")
	}
	return FromFrustum(common.ExtractFrustumFromMatrix(cam.ViewProjectionMatrix()), margin)
}

// FromFrustum returns a sphere test against an already extracted frustum.
//
// Parameters:
//   - f: the frustum
//   - margin: bounding sphere radius in world units
//
// Returns:
//   - Predicate: the visibility test
func FromFrustum(f common.Frustum, margin float32) Predicate {
	return func(x, y, z float32) bool {
		return f.IntersectsSphere(common.Sphere{Center: mgl32.Vec3{x, y, z}, Radius: margin})
	}
}
