package rig

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viz/common"
	"github.com/Carmen-Shannon/oxy-viz/engine/camera"
	"github.com/Carmen-Shannon/oxy-viz/engine/input"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitSettings tunes the orbit rig.
type OrbitSettings struct {
	// RotateSpeed converts drag pixels into radians.
	RotateSpeed float32
	// Damping is the fraction of the rotation and zoom deltas lost per reference frame.
	Damping float32
	// MinPolar and MaxPolar bound the polar angle, strictly inside (0, pi).
	MinPolar, MaxPolar float32
	Limits             camera.ZoomLimits
	// FrameIndependent scales damping by elapsed time instead of applying it per tick.
	FrameIndependent bool
	ReferenceFPS     float32
}

// DefaultOrbitSettings returns the stock orbit tuning.
func DefaultOrbitSettings() OrbitSettings {
	return OrbitSettings{
		RotateSpeed:      0.001,
		Damping:          0.08,
		MinPolar:         0.1,
		MaxPolar:         math32.Pi/2 - 0.05,
		Limits:           camera.ZoomLimits{MinDistance: 2, MaxDistance: 12, MinZoom: 0.5, MaxZoom: 200},
		FrameIndependent: true,
		ReferenceFPS:     DefaultReferenceFPS,
	}
}

type orbitRigImpl struct {
	mu *sync.Mutex

	cam      camera.Camera
	settings OrbitSettings

	target    mgl32.Vec3
	spherical common.Spherical

	thetaDelta float32
	phiDelta   float32
	zoomDelta  float32

	animating input.Gate
}

// OrbitRig rotates the camera around a target on a sphere. Drag input feeds angular
// velocity that decays by the damping factor, and wheel input moves the camera toward
// or away from the target (perspective) or changes the zoom factor (orthographic).
type OrbitRig interface {
	Rig

	// Spherical returns the camera offset from the target in spherical coordinates.
	//
	// Returns:
	//   - common.Spherical: radius, polar and azimuth
	Spherical() common.Spherical

	// Deltas returns the residual rotation and zoom deltas.
	//
	// Returns:
	//   - theta, phi: pending azimuth and polar change in radians
	//   - zoom: pending wheel delta
	Deltas() (theta, phi, zoom float32)

	// Settings returns the current tuning.
	//
	// Returns:
	//   - OrbitSettings: the tuning
	Settings() OrbitSettings

	// SetSettings replaces the tuning. The polar angle and distance are re-clamped on the
	// next tick.
	//
	// Parameters:
	//   - s: the tuning
	SetSettings(s OrbitSettings)

	// SetAnimatingGate sets the check that suspends the rig while a focus transition owns
	// the camera.
	//
	// Parameters:
	//   - g: returns true while animating, or nil
	SetAnimatingGate(g input.Gate)
}

var _ OrbitRig = &orbitRigImpl{}

// NewOrbitRig creates an orbit rig driving cam and adopts the camera's current position.
// Panics if cam is nil.
//
// Parameters:
//   - cam: the camera to move
//   - options: functional options
//
// Returns:
//   - OrbitRig: the rig
func NewOrbitRig(cam camera.Camera, options ...OrbitRigBuilderOption) OrbitRig {
	if cam == nil {
		panic("rig: NewOrbitRig requires a non-nil Camera")
	}
	r := &orbitRigImpl{
		mu:       &sync.Mutex{},
		cam:      cam,
		settings: DefaultOrbitSettings(),
		target:   defaultOrbitTarget(cam.Mode()),
	}
	for _, option := range options {
		option(r)
	}
	r.resync(r.target)
	return r
}

// defaultOrbitTarget lifts the pivot slightly off the ground plane.
func defaultOrbitTarget(mode camera.ProjectionMode) mgl32.Vec3 {
	if mode == camera.Orthographic {
		return mgl32.Vec3{0, 0.3, 0}
	}
	return mgl32.Vec3{0, 0.5, 0}
}

func (r *orbitRigImpl) Mount() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resync(r.target)
	r.cam.SetPose(r.target.Add(r.spherical.Vector()), r.target)
}

func (r *orbitRigImpl) Tick(dt float32, f input.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.animating != nil && r.animating() {
		return
	}
	st := r.settings

	r.thetaDelta -= f.DragX * st.RotateSpeed
	r.phiDelta -= f.DragY * st.RotateSpeed
	r.zoomDelta += f.Wheel

	r.spherical.Theta += r.thetaDelta
	r.spherical.Phi = common.Clamp(r.spherical.Phi+r.phiDelta, st.MinPolar, st.MaxPolar)
	r.clampRadius()
	r.cam.SetPose(r.target.Add(r.spherical.Vector()), r.target)

	if r.zoomDelta != 0 {
		proj := r.cam.Projection()
		proj.SetZoomOrDistance(proj.ApplyZoomDelta(proj.ZoomOrDistance(), r.zoomDelta, st.Limits))
		r.spherical.Radius = common.Distance(r.cam.Position(), r.target)
	}

	k := common.DecayFactor(st.Damping, dt, st.ReferenceFPS, st.FrameIndependent)
	r.thetaDelta = snap(r.thetaDelta*k, rotationSnap)
	r.phiDelta = snap(r.phiDelta*k, rotationSnap)
	r.zoomDelta = snap(r.zoomDelta*k, zoomSnap)
}

func (r *orbitRigImpl) Resync(target mgl32.Vec3) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resync(target)
}

// resync recomputes the spherical state from the camera. Caller must hold the mutex.
func (r *orbitRigImpl) resync(target mgl32.Vec3) {
	r.target = target
	r.spherical = common.SphericalFromVector(r.cam.Position().Sub(target))
	r.spherical.Phi = common.Clamp(r.spherical.Phi, r.settings.MinPolar, r.settings.MaxPolar)
	r.clampRadius()
	r.thetaDelta, r.phiDelta, r.zoomDelta = 0, 0, 0
}

// clampRadius keeps the perspective distance inside the zoom limits. Orthographic
// cameras zoom instead, so the radius is left alone. Caller must hold the mutex.
func (r *orbitRigImpl) clampRadius() {
	if r.cam.Mode() != camera.Perspective {
		return
	}
	r.spherical.Radius = r.cam.Projection().Clamp(r.spherical.Radius, r.settings.Limits)
}

func (r *orbitRigImpl) Target() mgl32.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target
}

func (r *orbitRigImpl) ZoomLimits() camera.ZoomLimits {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings.Limits
}

func (r *orbitRigImpl) Spherical() common.Spherical {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.spherical
}

func (r *orbitRigImpl) Deltas() (float32, float32, float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.thetaDelta, r.phiDelta, r.zoomDelta
}

func (r *orbitRigImpl) Settings() OrbitSettings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

func (r *orbitRigImpl) SetSettings(s OrbitSettings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ReferenceFPS <= 0 {
		s.ReferenceFPS = DefaultReferenceFPS
	}
	r.settings = s
}

func (r *orbitRigImpl) SetAnimatingGate(g input.Gate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.animating = g
}
