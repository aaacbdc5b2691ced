package rig

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viz/common"
	"github.com/Carmen-Shannon/oxy-viz/engine/camera"
	"github.com/Carmen-Shannon/oxy-viz/engine/focus"
	"github.com/Carmen-Shannon/oxy-viz/engine/input"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// PanSettings tunes the pan rig.
type PanSettings struct {
	// Polar and Azimuth fix the viewing angle.
	Polar, Azimuth float32
	// Radius is the initial camera distance from the target.
	Radius float32
	// Damping is the fraction of the goal gap the target covers per reference frame.
	Damping float32
	// ZoomDecay is the fraction of the wheel delta kept per reference frame.
	ZoomDecay float32
	// KeyPanPixels is how many screen pixels a held pan key covers per reference frame.
	KeyPanPixels     float32
	Limits           camera.ZoomLimits
	FrameIndependent bool
	ReferenceFPS     float32
}

// DefaultPanSettings returns the stock pan tuning, matching the orbit rig's default
// isometric angle.
func DefaultPanSettings() PanSettings {
	return PanSettings{
		Polar:            math32.Pi / 4,
		Azimuth:          math32.Pi / 4,
		Radius:           8,
		Damping:          0.1,
		ZoomDecay:        0.92,
		KeyPanPixels:     6.4,
		Limits:           camera.ZoomLimits{MinDistance: 2, MaxDistance: 20, MinZoom: 0.5, MaxZoom: 200},
		FrameIndependent: true,
		ReferenceFPS:     DefaultReferenceFPS,
	}
}

type panRigImpl struct {
	mu *sync.Mutex

	cam      camera.Camera
	settings PanSettings

	target    mgl32.Vec3
	goal      mgl32.Vec3
	radius    float32
	zoomDelta float32

	inputGate input.Gate
}

// PanRig slides the camera over the ground plane at a fixed angle. Drag and key input
// move a goal target immediately; the look-at target eases toward it every frame.
type PanRig interface {
	Rig
	focus.Panner

	// Settings returns the current tuning.
	//
	// Returns:
	//   - PanSettings: the tuning
	Settings() PanSettings

	// SetSettings replaces the tuning.
	//
	// Parameters:
	//   - s: the tuning
	SetSettings(s PanSettings)

	// SetInputGate sets the check that suspends drag and key panning. Wheel zoom and
	// target easing continue while the gate is closed.
	//
	// Parameters:
	//   - g: returns true while input is blocked, or nil
	SetInputGate(g input.Gate)
}

var _ PanRig = &panRigImpl{}

// NewPanRig creates a pan rig driving cam. Panics if cam is nil.
//
// Parameters:
//   - cam: the camera to move
//   - options: functional options
//
// Returns:
//   - PanRig: the rig
func NewPanRig(cam camera.Camera, options ...PanRigBuilderOption) PanRig {
	if cam == nil {
		panic("rig: NewPanRig requires a non-nil Camera")
	}
	r := &panRigImpl{
		mu:       &sync.Mutex{},
		cam:      cam,
		settings: DefaultPanSettings(),
	}
	for _, option := range options {
		option(r)
	}
	r.radius = r.settings.Radius
	r.goal = r.target
	return r
}

func (r *panRigImpl) Mount() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zoomDelta = 0
	r.goal = r.target
	r.place()
}

func (r *panRigImpl) Tick(dt float32, f input.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.settings

	// distance may have been changed by a region focus since the last tick
	if d := common.Distance(r.cam.Position(), r.cam.Target()); d > 0 && r.cam.Mode() == camera.Perspective {
		r.radius = d
	}

	if r.inputGate == nil || !r.inputGate() {
		ratio := r.cam.Projection().PixelToWorldRatio()
		fwd, right := r.axes()
		r.goal = r.goal.Add(right.Mul(-f.DragX * ratio)).Add(fwd.Mul(f.DragY * ratio))

		if len(f.Keys) > 0 {
			step := st.KeyPanPixels * ratio * r.frames(dt)
			var dir mgl32.Vec3
			if f.Keys.Has(common.KeyW) {
				dir = dir.Add(fwd)
			}
			if f.Keys.Has(common.KeyS) {
				dir = dir.Sub(fwd)
			}
			if f.Keys.Has(common.KeyD) {
				dir = dir.Add(right)
			}
			if f.Keys.Has(common.KeyA) {
				dir = dir.Sub(right)
			}
			r.goal = r.goal.Add(dir.Mul(step))
		}
	}

	k := common.ApproachFactor(st.Damping, dt, st.ReferenceFPS, st.FrameIndependent)
	r.target = common.LerpVec3(r.target, r.goal, k)
	r.place()

	r.zoomDelta += f.Wheel
	if r.zoomDelta != 0 {
		proj := r.cam.Projection()
		proj.SetZoomOrDistance(proj.ApplyZoomDelta(proj.ZoomOrDistance(), r.zoomDelta, st.Limits))
		if r.cam.Mode() == camera.Perspective {
			r.radius = common.Distance(r.cam.Position(), r.target)
		}
	}
	decay := common.DecayFactor(1-st.ZoomDecay, dt, st.ReferenceFPS, st.FrameIndependent)
	r.zoomDelta = snap(r.zoomDelta*decay, zoomSnap)
}

// place positions the camera at the fixed angle around the target. Caller must hold the mutex.
func (r *panRigImpl) place() {
	s := common.Spherical{Radius: r.radius, Phi: r.settings.Polar, Theta: r.settings.Azimuth}
	r.cam.SetPose(r.target.Add(s.Vector()), r.target)
}

// axes returns the camera's forward and right directions projected onto the ground plane.
func (r *panRigImpl) axes() (fwd, right mgl32.Vec3) {
	sin, cos := math32.Sin(r.settings.Azimuth), math32.Cos(r.settings.Azimuth)
	return mgl32.Vec3{-sin, 0, -cos}, mgl32.Vec3{cos, 0, -sin}
}

func (r *panRigImpl) frames(dt float32) float32 {
	if !r.settings.FrameIndependent {
		return 1
	}
	return dt * r.settings.ReferenceFPS
}

func (r *panRigImpl) Resync(target mgl32.Vec3) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = target
	r.goal = target
	r.zoomDelta = 0
	if r.cam.Mode() == camera.Perspective {
		if d := common.Distance(r.cam.Position(), target); d > 0 {
			r.radius = r.cam.Projection().Clamp(d, r.settings.Limits)
		}
	}
}

func (r *panRigImpl) Target() mgl32.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target
}

func (r *panRigImpl) GoalTarget() mgl32.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.goal
}

func (r *panRigImpl) FocusOn(p mgl32.Vec3) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goal = p
}

func (r *panRigImpl) ZoomDelta() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zoomDelta
}

func (r *panRigImpl) ZoomLimits() camera.ZoomLimits {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings.Limits
}

func (r *panRigImpl) Settings() PanSettings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

func (r *panRigImpl) SetSettings(s PanSettings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ReferenceFPS <= 0 {
		s.ReferenceFPS = DefaultReferenceFPS
	}
	r.settings = s
}

func (r *panRigImpl) SetInputGate(g input.Gate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inputGate = g
}
