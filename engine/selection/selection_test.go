package selection

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viz/common"
	"github.com/Carmen-Shannon/oxy-viz/engine/camera"
	"github.com/Carmen-Shannon/oxy-viz/engine/input"
	"github.com/Carmen-Shannon/oxy-viz/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLayer struct {
	added, removed []*Element
}

func (l *recordingLayer) AddElement(e *Element)    { l.added = append(l.added, e) }
func (l *recordingLayer) RemoveElement(e *Element) { l.removed = append(l.removed, e) }

type fixture struct {
	cam    camera.Camera
	root   scene.Node
	mesh   scene.Node
	local  *input.Dispatcher
	global *input.Dispatcher
	layer  *recordingLayer
	m      Manager
}

func vpc() *scene.Entity {
	return &scene.Entity{
		ID:    "aws_vpc.main",
		Name:  "main",
		Type:  "vpc",
		State: "applied",
		Attributes: map[string]any{
			"cidr_block": "10.0.0.0/16",
			"tags":       map[string]any{"Name": "main", "env": "prod"},
		},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		cam: camera.NewCamera(
			camera.WithFov(mgl32.DegToRad(75)),
			camera.WithClipPlanes(0.1, 1000),
			camera.WithPosition(mgl32.Vec3{0, 50, 100}),
			camera.WithTarget(mgl32.Vec3{}),
			camera.WithViewport(800, 600),
		),
		root:   scene.NewNode(scene.WithName("root")),
		local:  input.NewDispatcher(),
		global: input.NewDispatcher(),
		layer:  &recordingLayer{},
	}
	f.mesh = scene.NewNode(
		scene.WithPosition(mgl32.Vec3{20, 0, 30}),
		scene.WithBox(mgl32.Vec3{10, 10, 10}),
		scene.WithEntity(vpc()),
	)
	f.root.Add(f.mesh)
	f.local.SetBounds(input.Rect{Width: 800, Height: 600})
	f.m = NewManager(f.cam, f.root, WithLayer(f.layer))
	f.m.Attach(f.local, f.global)
	t.Cleanup(f.m.Dispose)
	return f
}

// screen projects a world point to client pixels on the 800x600 surface.
func (f *fixture) screen(p mgl32.Vec3) (float32, float32) {
	ndc := f.cam.Project(p)
	return (ndc.X() + 1) / 2 * 800, (1 - ndc.Y()) / 2 * 600
}

func (f *fixture) send(kind input.EventKind, x, y float32) {
	f.local.Dispatch(&input.Event{Kind: kind, X: x, Y: y})
}

func TestHitTestResolvesTaggedNode(t *testing.T) {
	f := newFixture(t)
	x, y := f.screen(mgl32.Vec3{20, 0, 30})

	n, ent, ok := f.m.HitTest(x, y)
	require.True(t, ok)
	assert.Equal(t, "aws_vpc.main", ent.ID)
	assert.Equal(t, f.mesh.ID(), n.ID())

	_, _, ok = f.m.HitTest(10, 10)
	assert.False(t, ok)
}

func TestClickAtViewportCentreSelectsMeshAtOrigin(t *testing.T) {
	f := newFixture(t)
	f.mesh.SetPosition(mgl32.Vec3{})
	var selected []string
	f.m.Select().On(func(e SelectEvent) { selected = append(selected, e.ID) })

	for range 2 {
		f.send(input.Click, 400, 300)
		f.send(input.Click, 10, 10)
	}
	assert.Equal(t, []string{"aws_vpc.main", "", "aws_vpc.main", ""}, selected)
}

func TestFocusTweenFixedStepsFinishOnTime(t *testing.T) {
	f := newFixture(t)
	f.m.FocusCamera(mgl32.Vec3{20, 0, 30}, f.cam, 600*time.Millisecond)
	for range 60 {
		require.True(t, f.m.FocusAnimating())
		f.m.UpdateFocusAnimation(10 * time.Millisecond)
	}
	assert.False(t, f.m.FocusAnimating())
	assert.Equal(t, mgl32.Vec3{20, 0, 30}, f.cam.Target())
}

func TestHitTestWalksToGroupAncestor(t *testing.T) {
	f := newFixture(t)
	group := scene.NewNode(
		scene.WithPosition(mgl32.Vec3{-20, 0, 30}),
		scene.WithEntity(&scene.Entity{ID: "aws_instance.web"}),
		scene.WithChildren(scene.NewNode(scene.WithBox(mgl32.Vec3{6, 6, 6}))),
	)
	f.root.Add(group)

	x, y := f.screen(mgl32.Vec3{-20, 0, 30})
	n, ent, ok := f.m.HitTest(x, y)
	require.True(t, ok)
	assert.Equal(t, "aws_instance.web", ent.ID)
	assert.Equal(t, group.ID(), n.ID())
}

func TestHitTestWithDetachedSurfaceMisses(t *testing.T) {
	f := newFixture(t)
	x, y := f.screen(mgl32.Vec3{20, 0, 30})
	f.local.Detach()

	_, _, ok := f.m.HitTest(x, y)
	assert.False(t, ok)
}

func TestHoverRefreshesTooltipAndEmitsOnChange(t *testing.T) {
	f := newFixture(t)
	var events []string
	f.m.Hover().On(func(e HoverEvent) { events = append(events, e.ID) })

	tip := f.m.Tooltip()
	require.NotNil(t, tip)
	assert.False(t, tip.Visible, "hidden until something is hovered")

	x, y := f.screen(mgl32.Vec3{20, 0, 30})
	f.send(input.PointerMove, x, y)
	f.send(input.PointerMove, x+1, y)
	assert.True(t, tip.Visible)
	assert.Equal(t, "main (vpc)", tip.Text)
	assert.Equal(t, x+1+DefaultTooltipOffset, tip.X, "position follows every move")
	assert.Equal(t, y+DefaultTooltipOffset, tip.Y)

	f.send(input.PointerMove, 10, 10)
	assert.False(t, tip.Visible)
	assert.Equal(t, []string{"aws_vpc.main", ""}, events)
	assert.Equal(t, State{}, f.m.State())
}

func TestClickPopulatesPanel(t *testing.T) {
	f := newFixture(t)
	var events []string
	f.m.Select().On(func(e SelectEvent) { events = append(events, e.ID) })

	x, y := f.screen(mgl32.Vec3{20, 0, 30})
	f.send(input.Click, x, y)

	panel := f.m.Panel()
	require.True(t, panel.Visible)
	want := []string{
		"main (vpc)",
		"id: aws_vpc.main",
		"state: applied",
		"attributes:",
		"  cidr_block: 10.0.0.0/16",
		"  tags:",
		"    Name: main",
		"    env: prod",
	}
	if diff := cmp.Diff(want, panel.Lines); diff != "" {
		t.Errorf("panel lines mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "aws_vpc.main", f.m.State().SelectedID)

	f.send(input.Click, 10, 10)
	assert.False(t, panel.Visible)
	assert.Equal(t, []string{"aws_vpc.main", ""}, events)
}

func TestEscapeClearsSelection(t *testing.T) {
	f := newFixture(t)
	var events []string
	f.m.Select().On(func(e SelectEvent) { events = append(events, e.ID) })

	f.global.Dispatch(&input.Event{Kind: input.KeyDown, Key: common.KeyEsc})
	assert.Empty(t, events, "nothing selected, nothing emitted")

	x, y := f.screen(mgl32.Vec3{20, 0, 30})
	f.send(input.Click, x, y)
	f.global.Dispatch(&input.Event{Kind: input.KeyDown, Key: common.KeyEsc})

	assert.Equal(t, []string{"aws_vpc.main", ""}, events)
	assert.False(t, f.m.Panel().Visible)
	assert.Empty(t, f.m.State().SelectedID)
}

func TestDoubleClickEmitsLivePosition(t *testing.T) {
	f := newFixture(t)
	var events []FocusEvent
	f.m.Focus().On(func(e FocusEvent) { events = append(events, e) })

	f.send(input.DoubleClick, 10, 10)
	assert.Empty(t, events)

	x, y := f.screen(mgl32.Vec3{20, 0, 30})
	f.send(input.DoubleClick, x, y)
	require.Len(t, events, 1)
	assert.Equal(t, FocusEvent{ID: "aws_vpc.main", Position: mgl32.Vec3{20, 0, 30}}, events[0])

	f.mesh.SetPosition(mgl32.Vec3{0, 0, 0})
	x, y = f.screen(mgl32.Vec3{})
	f.send(input.DoubleClick, x, y)
	require.Len(t, events, 2)
	assert.Equal(t, mgl32.Vec3{}, events[1].Position)
}

func TestFocusCameraTween(t *testing.T) {
	f := newFixture(t)
	target := mgl32.Vec3{20, 0, 30}
	start := f.cam.Position()

	f.m.FocusCamera(target, f.cam, 600*time.Millisecond)
	require.True(t, f.m.FocusAnimating())
	assert.Equal(t, start, f.cam.Position(), "nothing moves until pumped")

	f.m.UpdateFocusAnimation(300 * time.Millisecond)
	mid := f.cam.Position()
	assert.NotEqual(t, start, mid)

	f.m.UpdateFocusAnimation(300 * time.Millisecond)
	end := f.cam.Position()
	assert.InDelta(t, 20, end.X(), 1e-4)
	assert.InDelta(t, 20, end.Y(), 1e-4)
	assert.InDelta(t, 70, end.Z(), 1e-4)
	assert.Greater(t, end.Y(), target.Y(), "camera stays above the target")

	f.m.UpdateFocusAnimation(100 * time.Millisecond)
	assert.Equal(t, end, f.cam.Position())
	assert.False(t, f.m.FocusAnimating())
}

func TestFocusCameraPathIsSmooth(t *testing.T) {
	f := newFixture(t)
	target := mgl32.Vec3{20, 0, 30}
	f.m.FocusCamera(target, f.cam, 600*time.Millisecond)

	positions := []mgl32.Vec3{f.cam.Position()}
	for range 10 {
		f.m.UpdateFocusAnimation(60 * time.Millisecond)
		positions = append(positions, f.cam.Position())
	}
	total := common.Distance(positions[0], positions[len(positions)-1])
	for i := 1; i < len(positions); i++ {
		assert.Less(t, common.Distance(positions[i-1], positions[i]), total)
		assert.LessOrEqual(t, common.Distance(positions[i], target), common.Distance(positions[i-1], target)+0.01)
	}
}

func TestDisposeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	x, y := f.screen(mgl32.Vec3{20, 0, 30})
	f.send(input.PointerMove, x, y)
	f.send(input.Click, x, y)
	require.Len(t, f.layer.added, 2)
	require.Equal(t, 1, f.local.Handlers())
	require.Equal(t, 1, f.global.Handlers())

	f.m.Dispose()
	f.m.Dispose()
	assert.Len(t, f.layer.removed, 2)
	assert.Zero(t, f.local.Handlers())
	assert.Zero(t, f.global.Handlers())
	assert.Nil(t, f.m.Tooltip())
	assert.Nil(t, f.m.Panel())

	_, _, ok := f.m.HitTest(x, y)
	assert.False(t, ok)
	f.send(input.Click, x, y)
	f.m.UpdateFocusAnimation(time.Second)
}

func TestReattachReleasesPreviousBindings(t *testing.T) {
	f := newFixture(t)
	other := input.NewDispatcher()
	f.m.Attach(other, nil)
	assert.Zero(t, f.local.Handlers())
	assert.Zero(t, f.global.Handlers())
	assert.Equal(t, 1, other.Handlers())
}

func TestNewManagerPanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewManager(nil, scene.NewNode()) })
	assert.Panics(t, func() { NewManager(camera.NewCamera(), nil) })
}
