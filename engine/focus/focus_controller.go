package focus

import (
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-viz/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// Defaults for entity focus.
const (
	DefaultLerpSpeed float32 = 4
	DefaultEpsilon   float32 = 0.05
)

// DefaultOffset is the camera offset from a focused entity.
var DefaultOffset = mgl32.Vec3{1.5, 1.2, 1.5}

// PositionLookup resolves an entity ID to its current world position.
// Implementations must reflect live data, not a snapshot.
type PositionLookup interface {
	// Lookup returns the entity's world position.
	//
	// Parameters:
	//   - id: the entity ID
	//
	// Returns:
	//   - mgl32.Vec3: world position
	//   - bool: false if the ID is unknown
	Lookup(id string) (mgl32.Vec3, bool)
}

// ArriveFunc is invoked once when a focus transition lands, with the final look-at target.
type ArriveFunc func(target mgl32.Vec3)

type controllerImpl struct {
	mu *sync.Mutex

	cam    camera.Camera
	lookup PositionLookup

	lerpSpeed float32
	epsilon   float32
	offset    mgl32.Vec3
	onArrive  ArriveFunc
	debug     bool

	pending    string
	hasPending bool
	prevID     string

	anim       *Animation
	goalLookAt mgl32.Vec3
}

// Controller eases the camera toward a single entity. Position eases at
// min(dt * LerpSpeed, 1) per tick while the look-at target snaps to the entity every tick.
type Controller interface {
	// Request queues a focus on id. It is resolved on the next Tick and ignored when id
	// equals the last handled id. An empty id clears the last handled id.
	//
	// Parameters:
	//   - id: the entity ID
	Request(id string)

	// Tick resolves a pending request and advances an active transition.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous tick
	Tick(dt float32)

	// Animating reports whether a transition owns the camera.
	//
	// Returns:
	//   - bool: true while animating
	Animating() bool

	// Cancel stops an active transition where it is, without invoking the arrival callback,
	// and forgets the last handled id.
	Cancel()

	// Goal returns the active transition's goal position and look-at target.
	//
	// Returns:
	//   - position, lookAt: the goals
	//   - bool: false when idle
	Goal() (position, lookAt mgl32.Vec3, ok bool)

	// SetOnArrive replaces the arrival callback.
	//
	// Parameters:
	//   - fn: the callback, or nil
	SetOnArrive(fn ArriveFunc)

	// SetTuning replaces the lerp speed and arrival epsilon.
	//
	// Parameters:
	//   - lerpSpeed: convergence speed per second
	//   - epsilon: arrival distance
	SetTuning(lerpSpeed, epsilon float32)
}

var _ Controller = &controllerImpl{}

// NewController creates an entity focus controller driving cam.
// Panics if cam or lookup is nil.
//
// Parameters:
//   - cam: the camera to move
//   - lookup: live entity position lookup
//   - options: functional options
//
// Returns:
//   - Controller: the controller
func NewController(cam camera.Camera, lookup PositionLookup, options ...ControllerBuilderOption) Controller {
	if cam == nil {
		panic("focus: NewController requires a non-nil Camera")
	}
	if lookup == nil {
		panic("focus: NewController requires a non-nil PositionLookup")
	}
	c := &controllerImpl{
		mu:        &sync.Mutex{},
		cam:       cam,
		lookup:    lookup,
		lerpSpeed: DefaultLerpSpeed,
		epsilon:   DefaultEpsilon,
		offset:    DefaultOffset,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *controllerImpl) Request(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = id
	c.hasPending = true
}

func (c *controllerImpl) Tick(dt float32) {
	c.mu.Lock()
	if c.hasPending {
		c.resolvePending()
	}
	anim := c.anim
	lookAt := c.goalLookAt
	c.mu.Unlock()

	if anim == nil {
		return
	}

	pos := anim.Advance(dt)
	c.cam.SetPose(pos, lookAt)
	if !anim.Done() {
		return
	}

	c.mu.Lock()
	if c.anim == anim {
		c.anim = nil
	}
	onArrive := c.onArrive
	c.mu.Unlock()

	if c.debug {
		log.Printf("[Focus] arrived at %v", lookAt)
	}
	if onArrive != nil {
		onArrive(lookAt)
	}
}

// resolvePending turns the queued id into a transition. Caller must hold the mutex.
func (c *controllerImpl) resolvePending() {
	id := c.pending
	c.hasPending = false
	if id == c.prevID {
		return
	}
	c.prevID = id
	if id == "" {
		return
	}

	p, ok := c.lookup.Lookup(id)
	if !ok {
		if c.debug {
			log.Printf("[Focus] entity %q not found, ignoring", id)
		}
		return
	}
	c.goalLookAt = p
	c.anim = NewExponentialAnimation(c.cam.Position(), p.Add(c.offset), c.lerpSpeed, c.epsilon)
}

func (c *controllerImpl) Animating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.anim != nil
}

func (c *controllerImpl) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.anim = nil
	c.hasPending = false
	c.prevID = ""
}

func (c *controllerImpl) Goal() (mgl32.Vec3, mgl32.Vec3, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.anim == nil {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	return c.anim.Goal(), c.goalLookAt, true
}

func (c *controllerImpl) SetOnArrive(fn ArriveFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onArrive = fn
}

func (c *controllerImpl) SetTuning(lerpSpeed, epsilon float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lerpSpeed = lerpSpeed
	c.epsilon = epsilon
}
