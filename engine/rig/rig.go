package rig

import (
	"github.com/Carmen-Shannon/oxy-viz/engine/camera"
	"github.com/Carmen-Shannon/oxy-viz/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultReferenceFPS is the frame rate the per-frame damping constants were tuned at.
const DefaultReferenceFPS float32 = 60

// Residual deltas below these magnitudes are snapped to zero after decay.
const (
	rotationSnap float32 = 1e-4
	zoomSnap     float32 = 1e-3
)

// Rig turns drained input into camera motion. Exactly one rig is mounted on an
// interaction context at a time and it is ticked once per frame.
type Rig interface {
	// Mount places the camera for this rig, keeping the current look-at target.
	Mount()

	// Tick consumes one frame of input and moves the camera.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous tick
	//   - f: the drained input frame
	Tick(dt float32, f input.Frame)

	// Resync adopts the camera's current pose around target and clears residual motion.
	//
	// Parameters:
	//   - target: the new look-at target
	Resync(target mgl32.Vec3)

	// Target returns the rig's current look-at target.
	//
	// Returns:
	//   - mgl32.Vec3: the target
	Target() mgl32.Vec3

	// ZoomLimits returns the zoom and distance bounds the rig enforces.
	//
	// Returns:
	//   - camera.ZoomLimits: the bounds
	ZoomLimits() camera.ZoomLimits
}

func snap(v, eps float32) float32 {
	if v < eps && v > -eps {
		return 0
	}
	return v
}
