package interaction

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-viz/common"
	"github.com/Carmen-Shannon/oxy-viz/engine/camera"
	"github.com/Carmen-Shannon/oxy-viz/engine/config"
	"github.com/Carmen-Shannon/oxy-viz/engine/cull"
	"github.com/Carmen-Shannon/oxy-viz/engine/focus"
	"github.com/Carmen-Shannon/oxy-viz/engine/input"
	"github.com/Carmen-Shannon/oxy-viz/engine/rig"
	"github.com/Carmen-Shannon/oxy-viz/engine/scene"
	"github.com/Carmen-Shannon/oxy-viz/engine/selection"
	"github.com/go-gl/mathgl/mgl32"
)

// RigMode selects the mounted camera rig.
type RigMode int

const (
	// RigOrbit mounts the orbit rig.
	RigOrbit RigMode = iota
	// RigMap mounts the pan rig.
	RigMap
	// RigFocus mounts the orbit rig and focuses every selected entity.
	RigFocus
)

func (m RigMode) String() string {
	switch m {
	case RigMap:
		return "map"
	case RigFocus:
		return "focus"
	default:
		return "orbit"
	}
}

// ParseRigMode converts a mode label back into a RigMode.
func ParseRigMode(s string) (RigMode, bool) {
	for _, m := range []RigMode{RigOrbit, RigMap, RigFocus} {
		if m.String() == s {
			return m, true
		}
	}
	return RigOrbit, false
}

// Stats summarises the last tick.
type Stats struct {
	Mode      RigMode
	Animating bool
	Visible   int
	Hidden    int
}

type contextImpl struct {
	mu *sync.Mutex

	cam       camera.Camera
	root      scene.Node
	positions *PositionMap

	agg     input.Aggregator
	orbit   rig.OrbitRig
	pan     rig.PanRig
	focus   focus.Controller
	cluster focus.ClusterController
	sel     selection.Manager
	parts   cull.Partitioner

	ownsParts bool

	layer         selection.Layer
	settings      config.Settings
	pending       *config.Settings
	updates       <-chan config.Settings
	focusOnSelect bool
	debug         bool

	mode       RigMode
	mapPrevID  string
	nextRegion atomic.Uint64
	queued     []func()
	unbindKeys func()
	subs       []func()
	visibility cull.Result
	disposed   bool
}

// Context is the per-scene interaction state. It owns the camera rigs, focus
// controllers, input aggregator and selection manager, and advances them in a fixed
// order once per frame.
type Context interface {
	// Camera returns the controlled camera.
	Camera() camera.Camera

	// Positions returns the live entity position table.
	Positions() *PositionMap

	// Aggregator returns the input aggregator.
	Aggregator() input.Aggregator

	// Selection returns the selection manager.
	Selection() selection.Manager

	// Rig returns the mounted rig.
	Rig() rig.Rig

	// OrbitRig returns the orbit rig, mounted or not.
	OrbitRig() rig.OrbitRig

	// PanRig returns the pan rig, mounted or not.
	PanRig() rig.PanRig

	// Mode returns the mounted rig mode.
	Mode() RigMode

	// SetRigMode swaps the mounted rig, cancelling any focus transition. The new rig
	// keeps the camera's current look-at target.
	//
	// Parameters:
	//   - m: the mode to mount
	SetRigMode(m RigMode)

	// SetProjection switches the camera projection and re-mounts the current rig.
	//
	// Parameters:
	//   - mode: the projection mode
	SetProjection(mode camera.ProjectionMode)

	// Attach binds input and selection to the canvas surface and shortcut keys to the
	// global surface.
	//
	// Parameters:
	//   - local: the canvas surface
	//   - global: the document-level surface
	Attach(local, global input.Surface)

	// Tick advances one frame: pending tuning, actions queued by input handlers, the
	// manual focus tween, rig input, focus transitions, then visibility.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous tick
	Tick(dt float32)

	// FocusEntity focuses the entity with the given ID. The orbit rig animates toward it;
	// the pan rig pans its goal target onto it. An empty ID clears the last focused ID.
	//
	// Parameters:
	//   - id: the entity ID
	FocusEntity(id string)

	// FocusRegion frames a region of the scene.
	//
	// Parameters:
	//   - center: region centre
	//   - size: region extent
	//
	// Returns:
	//   - uint64: the region request ID
	FocusRegion(center, size mgl32.Vec3) uint64

	// Animating reports whether a focus transition or the manual focus tween owns the
	// camera.
	//
	// Returns:
	//   - bool: true while animating
	Animating() bool

	// ApplySettings queues new tuning for the next tick.
	//
	// Parameters:
	//   - s: validated settings
	ApplySettings(s config.Settings)

	// Settings returns the tuning in effect.
	Settings() config.Settings

	// SetFocusOnSelect makes selection also focus the selected entity.
	SetFocusOnSelect(enabled bool)

	// Visibility returns the cull result computed by the last tick.
	Visibility() cull.Result

	// Stats returns a summary of the last tick.
	Stats() Stats

	// Dispose releases input bindings, the selection manager and a partitioner the context
	// created itself. Safe to call more than once.
	Dispose()
}

var _ Context = &contextImpl{}

// NewContext creates an interaction context for cam and the scene under root.
// Panics if cam or root is nil.
//
// Parameters:
//   - cam: the camera
//   - root: the scene root
//   - options: functional options
//
// Returns:
//   - Context: the context, with the initial rig mounted
func NewContext(cam camera.Camera, root scene.Node, options ...ContextBuilderOption) Context {
	if cam == nil {
		panic("interaction: NewContext requires a non-nil Camera")
	}
	if root == nil {
		panic("interaction: NewContext requires a non-nil scene root")
	}
	c := &contextImpl{
		mu:       &sync.Mutex{},
		cam:      cam,
		root:     root,
		settings: config.Defaults(),
		mode:     RigOrbit,
	}
	for _, option := range options {
		option(c)
	}
	if c.positions == nil {
		c.positions = NewPositionMap()
	}
	if c.parts == nil {
		c.parts = cull.NewPartitioner()
		c.ownsParts = true
	}

	s := c.settings
	c.agg = input.NewAggregator(input.WithZoomSpeed(s.ZoomSpeed))
	c.orbit = rig.NewOrbitRig(cam, rig.WithOrbitSettings(s.Orbit), rig.WithAnimatingGate(c.Animating))
	c.pan = rig.NewPanRig(cam, rig.WithPanSettings(s.Pan), rig.WithInputGate(c.clusterAnimating))
	c.focus = focus.NewController(cam, c.positions,
		focus.WithLerpSpeed(s.FocusLerpSpeed),
		focus.WithEpsilon(s.FocusEpsilon),
		focus.WithOffset(s.FocusOffset),
		focus.WithOnArrive(c.onArrive),
		focus.WithDebug(c.debug),
	)
	c.cluster = focus.NewClusterController(cam,
		focus.WithClusterLerpSpeed(s.ClusterLerpSpeed),
		focus.WithFraming(s.FrameFactor, s.MinFrameDistance),
		focus.WithIsoFactor(s.IsoFactor),
		focus.WithWheelCancelThreshold(s.WheelCancelThreshold),
		focus.WithOrbitLimits(s.Orbit.Limits),
		focus.WithClusterOnArrive(c.onArrive),
		focus.WithClusterDebug(c.debug),
	)
	c.sel = selection.NewManager(cam, root,
		selection.WithLayer(c.layer),
		selection.WithFocusOffset(s.FocusOffset),
		selection.WithDebug(c.debug),
	)

	focusSub := c.sel.Focus().OnKey("interaction.focus", func(e selection.FocusEvent) {
		c.enqueue(func() {
			c.positions.Set(e.ID, e.Position)
			c.FocusEntity(e.ID)
		})
	})
	selectSub := c.sel.Select().OnKey("interaction.select", func(e selection.SelectEvent) {
		c.enqueue(func() {
			c.mu.Lock()
			follow := c.focusOnSelect || c.mode == RigFocus
			c.mu.Unlock()
			if follow {
				c.FocusEntity(e.ID)
			}
		})
	})
	c.subs = []func(){
		func() { c.sel.Focus().Off(focusSub) },
		func() { c.sel.Select().Off(selectSub) },
	}

	c.mount(c.mode)
	return c
}

func (c *contextImpl) Camera() camera.Camera        { return c.cam }
func (c *contextImpl) Positions() *PositionMap      { return c.positions }
func (c *contextImpl) Aggregator() input.Aggregator { return c.agg }
func (c *contextImpl) Selection() selection.Manager { return c.sel }
func (c *contextImpl) OrbitRig() rig.OrbitRig       { return c.orbit }
func (c *contextImpl) PanRig() rig.PanRig           { return c.pan }

func (c *contextImpl) Rig() rig.Rig {
	if c.Mode() == RigMap {
		return c.pan
	}
	return c.orbit
}

func (c *contextImpl) Mode() RigMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *contextImpl) SetRigMode(m RigMode) {
	c.mu.Lock()
	if m == c.mode {
		c.mu.Unlock()
		return
	}
	c.mode = m
	c.mapPrevID = ""
	c.mu.Unlock()

	c.focus.Cancel()
	c.cluster.Cancel()
	c.agg.Reset()
	c.mount(m)
	if c.debug {
		log.Printf("[Interaction] camera mode %s", m)
	}
}

// mount hands the current look-at target to the rig for m and wires the gates.
func (c *contextImpl) mount(m RigMode) {
	target := c.cam.Target()
	if m == RigMap {
		c.agg.SetPointerGate(c.clusterAnimating)
		c.agg.SetWheelGate(nil)
		c.cluster.SetPanner(c.pan)
		c.pan.Resync(target)
		c.pan.Mount()
		return
	}
	c.agg.SetPointerGate(c.Animating)
	c.agg.SetWheelGate(c.Animating)
	c.cluster.SetPanner(nil)
	c.cluster.SetOrbitLimits(c.orbit.ZoomLimits())
	c.orbit.Resync(target)
	c.orbit.Mount()
}

func (c *contextImpl) SetProjection(mode camera.ProjectionMode) {
	if c.cam.Mode() == mode {
		return
	}
	c.focus.Cancel()
	c.cluster.Cancel()
	c.cam.SetMode(mode)
	c.mount(c.Mode())
}

func (c *contextImpl) Attach(local, global input.Surface) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	if c.unbindKeys != nil {
		c.unbindKeys()
		c.unbindKeys = nil
	}
	if global != nil {
		c.unbindKeys = global.Bind(c.handleShortcut)
	}
	c.mu.Unlock()

	if local != nil {
		c.agg.Attach(local)
	} else {
		c.agg.Detach()
	}
	c.sel.Attach(local, global)
}

// handleShortcut runs on the input thread, so it only queues the switch for the next tick.
func (c *contextImpl) handleShortcut(e *input.Event) {
	if e.Kind != input.KeyDown || e.TextInput {
		return
	}
	switch e.Key {
	case common.KeyOrbit:
		c.enqueue(func() { c.SetRigMode(RigOrbit) })
	case common.KeyMap:
		c.enqueue(func() { c.SetRigMode(RigMap) })
	case common.KeyFocus:
		c.enqueue(func() { c.SetRigMode(RigFocus) })
	case common.KeyOrtho:
		c.enqueue(c.toggleProjection)
	}
}

func (c *contextImpl) toggleProjection() {
	if c.cam.Mode() == camera.Orthographic {
		c.SetProjection(camera.Perspective)
	} else {
		c.SetProjection(camera.Orthographic)
	}
}

// enqueue defers fn to the start of the next tick. Dropped after Dispose.
func (c *contextImpl) enqueue(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.queued = append(c.queued, fn)
}

func (c *contextImpl) runQueued() {
	c.mu.Lock()
	queued := c.queued
	c.queued = nil
	c.mu.Unlock()
	for _, fn := range queued {
		fn()
	}
}

func (c *contextImpl) Tick(dt float32) {
	c.applyPending()
	c.runQueued()

	frame := c.agg.Drain()
	if !c.tweenTick(dt) {
		c.Rig().Tick(dt, frame)
	}

	c.focus.Tick(dt)
	c.cluster.Tick(dt)

	c.positions.SyncFromScene(c.root)
	margin := c.Settings().CullMargin
	vis := c.parts.Partition(cull.New(c.cam, margin), c.positions.Items())

	c.mu.Lock()
	c.visibility = vis
	c.mu.Unlock()
}

// tweenTick advances the selection manager's manual focus tween and reports whether it
// owned the camera this frame. The mounted rig adopts the pose once the tween lands.
func (c *contextImpl) tweenTick(dt float32) bool {
	if !c.sel.FocusAnimating() {
		return false
	}
	c.sel.UpdateFocusAnimation(time.Duration(float64(dt) * float64(time.Second)))
	if c.sel.FocusAnimating() {
		return true
	}
	target := c.cam.Target()
	if c.Mode() == RigMap {
		c.pan.Resync(target)
	} else {
		c.orbit.Resync(target)
	}
	return true
}

func (c *contextImpl) applyPending() {
	c.mu.Lock()
	if c.updates != nil {
		select {
		case s, ok := <-c.updates:
			if ok {
				c.pending = &s
			} else {
				c.updates = nil
			}
		default:
		}
	}
	pending := c.pending
	c.pending = nil
	if pending != nil {
		c.settings = *pending
	}
	c.mu.Unlock()

	if pending == nil {
		return
	}
	s := *pending
	c.orbit.SetSettings(s.Orbit)
	c.pan.SetSettings(s.Pan)
	c.focus.SetTuning(s.FocusLerpSpeed, s.FocusEpsilon)
	c.cluster.SetTuning(s.ClusterLerpSpeed, s.FocusEpsilon)
	c.cluster.SetOrbitLimits(s.Orbit.Limits)
	if c.debug {
		log.Printf("[Interaction] tuning applied")
	}
}

func (c *contextImpl) FocusEntity(id string) {
	c.mu.Lock()
	mode := c.mode
	if mode != RigMap {
		c.mu.Unlock()
		if id != "" {
			c.cluster.Cancel()
		}
		c.focus.Request(id)
		return
	}

	if id == "" || id == c.mapPrevID {
		c.mapPrevID = id
		c.mu.Unlock()
		return
	}
	c.mapPrevID = id
	c.mu.Unlock()

	p, ok := c.positions.Lookup(id)
	if !ok {
		if c.debug {
			log.Printf("[Interaction] entity %q not found, ignoring", id)
		}
		return
	}
	c.cluster.Cancel()
	c.pan.FocusOn(p)
}

func (c *contextImpl) FocusRegion(center, size mgl32.Vec3) uint64 {
	id := c.nextRegion.Add(1)
	c.focus.Cancel()
	c.cluster.Request(focus.Region{ID: id, Center: center, Size: size})
	return id
}

func (c *contextImpl) onArrive(target mgl32.Vec3) {
	if c.Mode() == RigMap {
		return
	}
	c.orbit.Resync(target)
}

func (c *contextImpl) Animating() bool {
	return c.focus.Animating() || c.cluster.Animating() || c.sel.FocusAnimating()
}

func (c *contextImpl) clusterAnimating() bool {
	return c.cluster.Animating()
}

func (c *contextImpl) ApplySettings(s config.Settings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = &s
}

func (c *contextImpl) Settings() config.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

func (c *contextImpl) SetFocusOnSelect(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focusOnSelect = enabled
}

func (c *contextImpl) Visibility() cull.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visibility
}

func (c *contextImpl) Stats() Stats {
	c.mu.Lock()
	st := Stats{Mode: c.mode, Visible: len(c.visibility.Visible), Hidden: len(c.visibility.Hidden)}
	c.mu.Unlock()
	st.Animating = c.Animating()
	return st
}

func (c *contextImpl) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	unbind := c.unbindKeys
	c.unbindKeys = nil
	subs := c.subs
	c.subs = nil
	c.queued = nil
	c.mu.Unlock()

	if unbind != nil {
		unbind()
	}
	for _, off := range subs {
		off()
	}
	c.agg.Detach()
	c.sel.Dispose()
	c.focus.Cancel()
	c.cluster.Cancel()
	if c.ownsParts {
		c.parts.Close()
	}
}
