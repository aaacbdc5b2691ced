package selection

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-viz/common"
	"github.com/Carmen-Shannon/oxy-viz/engine/camera"
	"github.com/Carmen-Shannon/oxy-viz/engine/focus"
	"github.com/Carmen-Shannon/oxy-viz/engine/input"
	"github.com/Carmen-Shannon/oxy-viz/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultFocusOffset is the camera offset from the target of a manual focus tween.
var DefaultFocusOffset = mgl32.Vec3{0, 20, 40}

// DefaultTooltipOffset is the tooltip's pixel offset from the cursor.
const DefaultTooltipOffset float32 = 12

// State is the hover and selection state. Empty IDs mean nothing is hovered or selected.
type State struct {
	HoveredID  string
	SelectedID string
}

type tween struct {
	cam    camera.Camera
	pos    *focus.Animation
	lookAt *focus.Animation
}

type managerImpl struct {
	mu *sync.Mutex

	cam  camera.Camera
	root scene.Node

	layer         Layer
	tooltipOffset float32
	focusOffset   mgl32.Vec3
	easing        focus.Easing
	debug         bool

	local    input.Surface
	unbind   []func()
	disposed bool

	state   State
	tooltip *Element
	panel   *Element
	tween   *tween

	hover  *Emitter[HoverEvent]
	sel    *Emitter[SelectEvent]
	focusE *Emitter[FocusEvent]
}

// Manager resolves pointer input against the scene into hover, select and focus events
// and owns the tooltip and detail panel elements.
type Manager interface {
	// Attach binds pointer and click handlers to local and the Escape handler to global.
	// Attaching again first releases the previous bindings. Either surface may be nil.
	//
	// Parameters:
	//   - local: the canvas surface
	//   - global: the document-level surface for keyboard shortcuts
	Attach(local, global input.Surface)

	// HitTest resolves screen coordinates to the nearest tagged entity.
	//
	// Parameters:
	//   - x, y: client coordinates in pixels
	//
	// Returns:
	//   - scene.Node: the node carrying the entity tag
	//   - *scene.Entity: the entity
	//   - bool: false on a miss or with no attached surface bounds
	HitTest(x, y float32) (scene.Node, *scene.Entity, bool)

	// Hover returns the hover-change emitter.
	Hover() *Emitter[HoverEvent]

	// Select returns the selection emitter.
	Select() *Emitter[SelectEvent]

	// Focus returns the double-click focus emitter.
	Focus() *Emitter[FocusEvent]

	// State returns the current hover and selection.
	//
	// Returns:
	//   - State: a copy of the state
	State() State

	// Tooltip returns the tooltip element, creating and mounting it on first use.
	//
	// Returns:
	//   - *Element: the tooltip, or nil after Dispose
	Tooltip() *Element

	// Panel returns the detail panel element, creating and mounting it on first use.
	//
	// Returns:
	//   - *Element: the panel, or nil after Dispose
	Panel() *Element

	// FocusCamera starts a manual tween of cam from its current position to target plus
	// the focus offset. The tween only moves when UpdateFocusAnimation is called.
	//
	// Parameters:
	//   - target: the point to focus
	//   - cam: the camera to move
	//   - duration: tween length
	FocusCamera(target mgl32.Vec3, cam camera.Camera, duration time.Duration)

	// UpdateFocusAnimation advances the manual tween.
	//
	// Parameters:
	//   - dt: elapsed time since the previous update
	UpdateFocusAnimation(dt time.Duration)

	// FocusAnimating reports whether a manual tween is in progress.
	//
	// Returns:
	//   - bool: true while tweening
	FocusAnimating() bool

	// Dispose releases every binding, unmounts the elements and drops references.
	// Calling it again does nothing.
	Dispose()
}

var _ Manager = &managerImpl{}

// NewManager creates a selection manager for cam and the scene under root.
// Panics if cam or root is nil.
//
// Parameters:
//   - cam: the camera rays are cast from
//   - root: the scene root
//   - options: functional options
//
// Returns:
//   - Manager: the manager
func NewManager(cam camera.Camera, root scene.Node, options ...ManagerBuilderOption) Manager {
	if cam == nil {
		panic("selection: NewManager requires a non-nil Camera")
	}
	if root == nil {
		panic("selection: NewManager requires a non-nil scene root")
	}
	m := &managerImpl{
		mu:            &sync.Mutex{},
		cam:           cam,
		root:          root,
		tooltipOffset: DefaultTooltipOffset,
		focusOffset:   DefaultFocusOffset,
		easing:        focus.EaseInOutCubic,
		hover:         NewEmitter[HoverEvent](),
		sel:           NewEmitter[SelectEvent](),
		focusE:        NewEmitter[FocusEvent](),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *managerImpl) Attach(local, global input.Surface) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return
	}
	m.release()
	m.local = local
	if local != nil {
		m.unbind = append(m.unbind, local.Bind(m.handleLocal))
	}
	if global != nil {
		m.unbind = append(m.unbind, global.Bind(m.handleGlobal))
	}
}

// release drops the current bindings. Caller must hold the mutex.
func (m *managerImpl) release() {
	for _, unbind := range m.unbind {
		unbind()
	}
	m.unbind = nil
	m.local = nil
}

func (m *managerImpl) handleLocal(e *input.Event) {
	switch e.Kind {
	case input.PointerMove:
		m.onPointerMove(e.X, e.Y)
	case input.Click:
		m.onClick(e.X, e.Y)
	case input.DoubleClick:
		m.onDoubleClick(e.X, e.Y)
	}
}

func (m *managerImpl) handleGlobal(e *input.Event) {
	if e.Kind == input.KeyDown && e.Key == common.KeyEsc {
		m.onEscape()
	}
}

func (m *managerImpl) HitTest(x, y float32) (scene.Node, *scene.Entity, bool) {
	m.mu.Lock()
	local, cam, root := m.local, m.cam, m.root
	m.mu.Unlock()
	if local == nil || cam == nil || root == nil {
		return nil, nil, false
	}

	r, ok := local.Bounds()
	if !ok || r.Width <= 0 || r.Height <= 0 {
		return nil, nil, false
	}
	ndcX := (x-r.Left)/r.Width*2 - 1
	ndcY := -(y-r.Top)/r.Height*2 + 1

	hits := scene.Raycast(root, cam.Ray(ndcX, ndcY))
	if len(hits) == 0 {
		return nil, nil, false
	}
	n, ent := scene.ResolveEntity(hits[0].Node)
	if ent == nil {
		return nil, nil, false
	}
	return n, ent, true
}

func (m *managerImpl) onPointerMove(x, y float32) {
	_, ent, hit := m.HitTest(x, y)

	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	tip := m.tooltipLocked()
	id := ""
	if hit {
		id = ent.ID
		tip.Visible = true
		tip.X = x + m.tooltipOffset
		tip.Y = y + m.tooltipOffset
		tip.Text = TooltipText(ent)
	} else {
		tip.Visible = false
		tip.Text = ""
	}
	changed := id != m.state.HoveredID
	m.state.HoveredID = id
	m.mu.Unlock()

	if changed {
		m.hover.Emit(HoverEvent{ID: id})
	}
}

func (m *managerImpl) onClick(x, y float32) {
	_, ent, hit := m.HitTest(x, y)

	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	panel := m.panelLocked()
	id := ""
	if hit {
		id = ent.ID
		panel.Visible = true
		panel.Lines = PanelLines(ent)
		panel.Text = TooltipText(ent)
	} else {
		panel.Visible = false
	}
	m.state.SelectedID = id
	m.mu.Unlock()

	if m.debug {
		log.Printf("[Selection] select %q", id)
	}
	m.sel.Emit(SelectEvent{ID: id})
}

func (m *managerImpl) onDoubleClick(x, y float32) {
	n, ent, hit := m.HitTest(x, y)
	if !hit {
		return
	}
	m.focusE.Emit(FocusEvent{ID: ent.ID, Position: n.WorldPosition()})
}

func (m *managerImpl) onEscape() {
	m.mu.Lock()
	if m.disposed || m.state.SelectedID == "" {
		m.mu.Unlock()
		return
	}
	m.state.SelectedID = ""
	if m.panel != nil {
		m.panel.Visible = false
	}
	m.mu.Unlock()

	m.sel.Emit(SelectEvent{})
}

func (m *managerImpl) Hover() *Emitter[HoverEvent] {
	return m.hover
}

func (m *managerImpl) Select() *Emitter[SelectEvent] {
	return m.sel
}

func (m *managerImpl) Focus() *Emitter[FocusEvent] {
	return m.focusE
}

func (m *managerImpl) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *managerImpl) Tooltip() *Element {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return nil
	}
	return m.tooltipLocked()
}

func (m *managerImpl) Panel() *Element {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return nil
	}
	return m.panelLocked()
}

func (m *managerImpl) tooltipLocked() *Element {
	if m.tooltip == nil {
		m.tooltip = &Element{Kind: ElementTooltip}
		m.mount(m.tooltip)
	}
	return m.tooltip
}

func (m *managerImpl) panelLocked() *Element {
	if m.panel == nil {
		m.panel = &Element{Kind: ElementPanel}
		m.mount(m.panel)
	}
	return m.panel
}

func (m *managerImpl) mount(e *Element) {
	if m.layer != nil {
		m.layer.AddElement(e)
	}
}

func (m *managerImpl) FocusCamera(target mgl32.Vec3, cam camera.Camera, duration time.Duration) {
	if cam == nil {
		return
	}
	d := float32(duration.Seconds())
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tween = &tween{
		cam:    cam,
		pos:    focus.NewEasedAnimation(cam.Position(), target.Add(m.focusOffset), d, m.easing),
		lookAt: focus.NewEasedAnimation(cam.Target(), target, d, m.easing),
	}
}

func (m *managerImpl) UpdateFocusAnimation(dt time.Duration) {
	m.mu.Lock()
	tw := m.tween
	m.mu.Unlock()
	if tw == nil {
		return
	}

	tw.cam.SetPose(tw.pos.AdvanceDuration(dt), tw.lookAt.AdvanceDuration(dt))
	if !tw.pos.Done() {
		return
	}

	m.mu.Lock()
	if m.tween == tw {
		m.tween = nil
	}
	m.mu.Unlock()
}

func (m *managerImpl) FocusAnimating() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tween != nil
}

func (m *managerImpl) Dispose() {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.disposed = true
	m.release()
	if m.layer != nil {
		for _, e := range []*Element{m.tooltip, m.panel} {
			if e != nil {
				m.layer.RemoveElement(e)
			}
		}
	}
	m.tooltip, m.panel = nil, nil
	m.tween = nil
	m.cam, m.root = nil, nil
	m.state = State{}
	m.mu.Unlock()

	m.hover.Clear()
	m.sel.Clear()
	m.focusE.Clear()
}
