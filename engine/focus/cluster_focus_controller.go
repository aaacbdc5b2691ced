package focus

import (
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-viz/common"
	"github.com/Carmen-Shannon/oxy-viz/engine/camera"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Defaults for region focus.
const (
	// DefaultFrameFactor scales the largest planar extent into an orbit distance.
	DefaultFrameFactor float32 = 1.8
	// DefaultMinFrameDistance is the orbit distance floor for small regions.
	DefaultMinFrameDistance float32 = 3
	// DefaultIsoFactor converts the planar extent into visible height for the fixed
	// pan view, whose screen axes run along the ground diagonals.
	DefaultIsoFactor float32 = math32.Sqrt2
	// DefaultPanArrival is the per-axis pan offset below which a pan focus completes.
	DefaultPanArrival float32 = 0.05
	// DefaultWheelCancelThreshold is the zoom delta that cancels a pan focus.
	DefaultWheelCancelThreshold float32 = 0.01
)

// Region is a framed area of the scene. ID increases with every new request.
type Region struct {
	ID     uint64
	Center mgl32.Vec3
	Size   mgl32.Vec3
}

// Panner is the part of the pan rig a region focus drives.
type Panner interface {
	// Target returns the eased look-at target.
	Target() mgl32.Vec3
	// GoalTarget returns the target the rig is easing toward.
	GoalTarget() mgl32.Vec3
	// FocusOn sets the goal target.
	FocusOn(p mgl32.Vec3)
	// ZoomDelta returns the rig's residual wheel zoom delta.
	ZoomDelta() float32
	// ZoomLimits returns the rig's zoom and distance bounds.
	ZoomLimits() camera.ZoomLimits
}

type clusterPhase int

const (
	clusterIdle clusterPhase = iota
	clusterOrbit
	clusterPan
)

type clusterControllerImpl struct {
	mu *sync.Mutex

	cam         camera.Camera
	panner      Panner
	orbitLimits camera.ZoomLimits

	lerpSpeed        float32
	epsilon          float32
	frameFactor      float32
	minFrameDistance float32
	isoFactor        float32
	panArrival       float32
	cancelThreshold  float32
	onArrive         ArriveFunc
	debug            bool

	lastID    uint64
	hasLastID bool

	phase      clusterPhase
	region     Region
	posAnim    *Animation
	targetAnim *Animation
}

// ClusterController frames a region. With no Panner set it moves an orbit camera; with
// a Panner it pans the rig's goal target and re-derives zoom from the remaining pan gap
// every tick, so zoom settles together with the pan.
type ClusterController interface {
	// Request starts framing r unless r.ID equals the last handled region ID.
	//
	// Parameters:
	//   - r: the region
	Request(r Region)

	// Tick advances the active transition.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous tick
	Tick(dt float32)

	// Animating reports whether a region focus is active.
	//
	// Returns:
	//   - bool: true while animating
	Animating() bool

	// Cancel stops the active transition without invoking the arrival callback.
	Cancel()

	// SetPanner selects pan mode (non-nil) or orbit mode (nil). Cancels any active focus.
	//
	// Parameters:
	//   - p: the pan rig, or nil
	SetPanner(p Panner)

	// SetOrbitLimits sets the distance bounds used to clamp orbit framing.
	//
	// Parameters:
	//   - limits: orbit rig bounds
	SetOrbitLimits(limits camera.ZoomLimits)

	// SetOnArrive replaces the arrival callback.
	//
	// Parameters:
	//   - fn: the callback, or nil
	SetOnArrive(fn ArriveFunc)

	// SetTuning replaces the lerp speed and arrival epsilon.
	//
	// Parameters:
	//   - lerpSpeed: convergence speed per second
	//   - epsilon: orbit arrival distance
	SetTuning(lerpSpeed, epsilon float32)

	// NeededExtent returns the visible height the pan view needs for region r given the
	// current gap between the rig's eased and goal targets.
	//
	// Parameters:
	//   - r: the region
	//   - gap: goal target minus eased target
	//
	// Returns:
	//   - float32: visible height in world units
	NeededExtent(r Region, gap mgl32.Vec3) float32
}

var _ ClusterController = &clusterControllerImpl{}

// NewClusterController creates a region focus controller driving cam.
// Panics if cam is nil.
//
// Parameters:
//   - cam: the camera to move
//   - options: functional options
//
// Returns:
//   - ClusterController: the controller
func NewClusterController(cam camera.Camera, options ...ClusterControllerBuilderOption) ClusterController {
	if cam == nil {
		panic("focus: NewClusterController requires a non-nil Camera")
	}
	c := &clusterControllerImpl{
		mu:               &sync.Mutex{},
		cam:              cam,
		orbitLimits:      camera.ZoomLimits{MinDistance: 2, MaxDistance: 12, MinZoom: 0.5, MaxZoom: 200},
		lerpSpeed:        DefaultLerpSpeed,
		epsilon:          DefaultEpsilon,
		frameFactor:      DefaultFrameFactor,
		minFrameDistance: DefaultMinFrameDistance,
		isoFactor:        DefaultIsoFactor,
		panArrival:       DefaultPanArrival,
		cancelThreshold:  DefaultWheelCancelThreshold,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *clusterControllerImpl) Request(r Region) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hasLastID && r.ID == c.lastID {
		return
	}
	c.lastID = r.ID
	c.hasLastID = true
	c.region = r

	if c.panner != nil {
		c.panner.FocusOn(r.Center)
		c.phase = clusterPan
		c.posAnim, c.targetAnim = nil, nil
		return
	}

	pos := c.cam.Position()
	target := c.cam.Target()
	dir := pos.Sub(target)
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, 1, 1}
	}
	dir = dir.Normalize()

	planar := math32.Max(r.Size.X(), r.Size.Z())
	distance := math32.Max(c.frameFactor*planar, c.minFrameDistance)
	distance = common.Clamp(distance, c.orbitLimits.MinDistance, c.orbitLimits.MaxDistance)

	c.posAnim = NewExponentialAnimation(pos, r.Center.Add(dir.Mul(distance)), c.lerpSpeed, c.epsilon)
	c.targetAnim = NewExponentialAnimation(target, r.Center, c.lerpSpeed, c.epsilon)
	c.phase = clusterOrbit
}

func (c *clusterControllerImpl) Tick(dt float32) {
	c.mu.Lock()
	phase := c.phase
	c.mu.Unlock()

	switch phase {
	case clusterOrbit:
		c.tickOrbit(dt)
	case clusterPan:
		c.tickPan(dt)
	}
}

func (c *clusterControllerImpl) tickOrbit(dt float32) {
	c.mu.Lock()
	posAnim, targetAnim := c.posAnim, c.targetAnim
	c.mu.Unlock()

	pos := posAnim.Advance(dt)
	target := targetAnim.Advance(dt)
	c.cam.SetPose(pos, target)
	if !posAnim.Done() || !targetAnim.Done() {
		return
	}
	c.arrive(target)
}

func (c *clusterControllerImpl) tickPan(dt float32) {
	c.mu.Lock()
	p := c.panner
	r := c.region
	c.mu.Unlock()
	if p == nil {
		c.Cancel()
		return
	}

	if math32.Abs(p.ZoomDelta()) > c.cancelThreshold {
		if c.debug {
			log.Printf("[Focus] region %d cancelled by wheel input", r.ID)
		}
		c.Cancel()
		return
	}

	gap := p.GoalTarget().Sub(p.Target())
	proj := c.cam.Projection()
	limits := p.ZoomLimits()

	if math32.Abs(gap.X()) < c.panArrival && math32.Abs(gap.Z()) < c.panArrival {
		final := proj.Clamp(proj.ExtentToZoomOrDistance(c.NeededExtent(r, mgl32.Vec3{})), limits)
		proj.SetZoomOrDistance(final)
		c.arrive(p.GoalTarget())
		return
	}

	want := proj.Clamp(proj.ExtentToZoomOrDistance(c.NeededExtent(r, gap)), limits)
	cur := proj.ZoomOrDistance()
	proj.SetZoomOrDistance(cur + (want-cur)*common.LerpFactor(dt, c.lerpSpeed))
}

func (c *clusterControllerImpl) NeededExtent(r Region, gap mgl32.Vec3) float32 {
	ex := 2*math32.Abs(gap.X()) + r.Size.X()
	ez := 2*math32.Abs(gap.Z()) + r.Size.Z()
	return math32.Max(ex, ez) * c.isoFactor
}

func (c *clusterControllerImpl) arrive(target mgl32.Vec3) {
	c.mu.Lock()
	c.phase = clusterIdle
	c.posAnim, c.targetAnim = nil, nil
	onArrive := c.onArrive
	id := c.region.ID
	c.mu.Unlock()

	if c.debug {
		log.Printf("[Focus] region %d framed", id)
	}
	if onArrive != nil {
		onArrive(target)
	}
}

func (c *clusterControllerImpl) Animating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase != clusterIdle
}

func (c *clusterControllerImpl) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = clusterIdle
	c.posAnim, c.targetAnim = nil, nil
}

func (c *clusterControllerImpl) SetPanner(p Panner) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panner = p
	c.phase = clusterIdle
	c.posAnim, c.targetAnim = nil, nil
}

func (c *clusterControllerImpl) SetOrbitLimits(limits camera.ZoomLimits) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orbitLimits = limits
}

func (c *clusterControllerImpl) SetOnArrive(fn ArriveFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onArrive = fn
}

func (c *clusterControllerImpl) SetTuning(lerpSpeed, epsilon float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lerpSpeed = lerpSpeed
	c.epsilon = epsilon
}
