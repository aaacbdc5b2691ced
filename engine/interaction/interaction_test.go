package interaction

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viz/common"
	"github.com/Carmen-Shannon/oxy-viz/engine/camera"
	"github.com/Carmen-Shannon/oxy-viz/engine/config"
	"github.com/Carmen-Shannon/oxy-viz/engine/cull"
	"github.com/Carmen-Shannon/oxy-viz/engine/input"
	"github.com/Carmen-Shannon/oxy-viz/engine/scene"
	"github.com/Carmen-Shannon/oxy-viz/engine/selection"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = float32(1.0 / 60)

type fixture struct {
	cam    camera.Camera
	root   scene.Node
	local  *input.Dispatcher
	global *input.Dispatcher
	ctx    Context
}

func newFixture(t *testing.T, options ...ContextBuilderOption) *fixture {
	t.Helper()
	f := &fixture{
		cam: camera.NewCamera(
			camera.WithPosition(mgl32.Vec3{0, 6, 8}),
			camera.WithTarget(mgl32.Vec3{}),
			camera.WithViewport(800, 600),
		),
		root:   scene.NewNode(scene.WithName("root")),
		local:  input.NewDispatcher(),
		global: input.NewDispatcher(),
	}
	f.root.Add(
		scene.NewNode(
			scene.WithPosition(mgl32.Vec3{2, 0, 3}),
			scene.WithBox(mgl32.Vec3{1, 1, 1}),
			scene.WithEntity(&scene.Entity{ID: "aws_instance.web", Name: "web", Type: "instance"}),
		),
		scene.NewNode(
			scene.WithPosition(mgl32.Vec3{0, 0, 200}),
			scene.WithEntity(&scene.Entity{ID: "aws_instance.behind", Name: "behind", Type: "instance"}),
		),
	)
	f.local.SetBounds(input.Rect{Width: 800, Height: 600})
	f.ctx = NewContext(f.cam, f.root, options...)
	f.ctx.Attach(f.local, f.global)
	t.Cleanup(f.ctx.Dispose)
	return f
}

func (f *fixture) key(code uint32) {
	f.global.Dispatch(&input.Event{Kind: input.KeyDown, Key: code})
}

func assertVecInDelta(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, msgAndArgs...)
	}
}

// press dispatches a shortcut key and runs the tick that applies it.
func (f *fixture) press(code uint32) {
	f.key(code)
	f.ctx.Tick(frame)
}

func (f *fixture) settle(t *testing.T) {
	t.Helper()
	f.ctx.Tick(frame)
	for i := 0; i < 2000 && f.ctx.Animating(); i++ {
		f.ctx.Tick(frame)
	}
	require.False(t, f.ctx.Animating())
}

func TestRigModeLabels(t *testing.T) {
	for _, m := range []RigMode{RigOrbit, RigMap, RigFocus} {
		got, ok := ParseRigMode(m.String())
		require.True(t, ok)
		assert.Equal(t, m, got)
	}
	_, ok := ParseRigMode("isometric")
	assert.False(t, ok)
}

func TestShortcutKeysSwitchModes(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, RigOrbit, f.ctx.Mode())

	f.press(common.KeyMap)
	assert.Equal(t, RigMap, f.ctx.Mode())
	assert.Same(t, f.ctx.PanRig(), f.ctx.Rig())

	f.press(common.KeyFocus)
	assert.Equal(t, RigFocus, f.ctx.Mode())
	assert.Same(t, f.ctx.OrbitRig(), f.ctx.Rig())

	f.global.Dispatch(&input.Event{Kind: input.KeyDown, Key: common.KeyOrbit, TextInput: true})
	f.ctx.Tick(frame)
	assert.Equal(t, RigFocus, f.ctx.Mode(), "keys typed into text inputs are ignored")

	f.press(common.KeyOrbit)
	assert.Equal(t, RigOrbit, f.ctx.Mode())
}

func TestShortcutsApplyOnNextTick(t *testing.T) {
	f := newFixture(t)
	f.key(common.KeyMap)
	f.key(common.KeyOrtho)
	assert.Equal(t, RigOrbit, f.ctx.Mode(), "input handlers only queue the switch")
	assert.Equal(t, camera.Perspective, f.cam.Mode())

	f.ctx.Tick(frame)
	assert.Equal(t, RigMap, f.ctx.Mode())
	assert.Equal(t, camera.Orthographic, f.cam.Mode())
}

func TestShortcutTogglesProjection(t *testing.T) {
	f := newFixture(t)
	f.press(common.KeyOrtho)
	assert.Equal(t, camera.Orthographic, f.cam.Mode())
	f.press(common.KeyOrtho)
	assert.Equal(t, camera.Perspective, f.cam.Mode())
}

func TestModeSwitchKeepsLookAtTarget(t *testing.T) {
	f := newFixture(t)
	f.cam.SetPose(mgl32.Vec3{5, 6, 9}, mgl32.Vec3{5, 0, 1})

	f.ctx.SetRigMode(RigMap)
	assert.Equal(t, mgl32.Vec3{5, 0, 1}, f.ctx.PanRig().Target())
	assert.Equal(t, mgl32.Vec3{5, 0, 1}, f.cam.Target())

	f.ctx.SetRigMode(RigOrbit)
	assert.Equal(t, mgl32.Vec3{5, 0, 1}, f.ctx.OrbitRig().Target())
}

func TestMapToOrbitClampsZoomedOutDistance(t *testing.T) {
	f := newFixture(t)
	f.ctx.SetRigMode(RigMap)
	f.local.Dispatch(&input.Event{Kind: input.Wheel, DeltaY: 5000})
	for range 120 {
		f.ctx.Tick(frame)
	}
	require.Greater(t, common.Distance(f.cam.Position(), f.cam.Target()), float32(12))

	f.ctx.SetRigMode(RigOrbit)
	maxDist := f.ctx.OrbitRig().ZoomLimits().MaxDistance
	assert.LessOrEqual(t, common.Distance(f.cam.Position(), f.cam.Target()), maxDist+1e-4)
	for range 120 {
		f.ctx.Tick(frame)
		require.LessOrEqual(t, common.Distance(f.cam.Position(), f.cam.Target()), maxDist+1e-4)
	}
	assert.LessOrEqual(t, f.ctx.OrbitRig().Spherical().Radius, maxDist+1e-4)
}

func TestTickPartitionsVisibility(t *testing.T) {
	f := newFixture(t)
	f.ctx.Tick(frame)

	vis := f.ctx.Visibility()
	assert.Equal(t, []string{"aws_instance.web"}, vis.Visible)
	assert.Equal(t, []string{"aws_instance.behind"}, vis.Hidden)
	assert.Equal(t, Stats{Mode: RigOrbit, Visible: 1, Hidden: 1}, f.ctx.Stats())
	assert.Equal(t, 2, f.ctx.Positions().Len())
}

func TestRemovedEntityIsForgotten(t *testing.T) {
	f := newFixture(t)
	f.ctx.Tick(frame)
	web := scene.FindEntity(f.root, "aws_instance.web")
	require.NotNil(t, web)

	f.root.Remove(web)
	f.ctx.Tick(frame)

	_, ok := f.ctx.Positions().Lookup("aws_instance.web")
	assert.False(t, ok)
	assert.NotContains(t, f.ctx.Visibility().Visible, "aws_instance.web")
	assert.Equal(t, 1, f.ctx.Positions().Len())

	f.ctx.FocusEntity("aws_instance.web")
	f.ctx.Tick(frame)
	assert.False(t, f.ctx.Animating(), "removed entities cannot be focused")
}

func TestFocusEntityOrbitHandsTargetToRig(t *testing.T) {
	f := newFixture(t)
	f.ctx.Tick(frame)

	f.ctx.FocusEntity("aws_instance.web")
	f.settle(t)

	assert.Equal(t, mgl32.Vec3{2, 0, 3}, f.cam.Target())
	assert.Equal(t, mgl32.Vec3{2, 0, 3}, f.ctx.OrbitRig().Target())

	f.ctx.Tick(frame)
	assert.Equal(t, mgl32.Vec3{2, 0, 3}, f.cam.Target(), "orbit rig keeps the focused target")
}

func TestFocusEntityMapPansGoal(t *testing.T) {
	f := newFixture(t, WithRigMode(RigMap))
	f.ctx.Tick(frame)

	f.ctx.FocusEntity("aws_instance.web")
	assert.Equal(t, mgl32.Vec3{2, 0, 3}, f.ctx.PanRig().GoalTarget())
	assert.False(t, f.ctx.Animating(), "pan focus eases through the rig, not a controller")

	for range 600 {
		f.ctx.Tick(frame)
	}
	assert.InDelta(t, 0, common.Distance(f.ctx.PanRig().Target(), mgl32.Vec3{2, 0, 3}), 1e-3)

	f.ctx.PanRig().FocusOn(mgl32.Vec3{})
	f.ctx.FocusEntity("aws_instance.web")
	assert.Equal(t, mgl32.Vec3{}, f.ctx.PanRig().GoalTarget(), "repeated id is ignored")

	f.ctx.FocusEntity("")
	f.ctx.FocusEntity("aws_instance.web")
	assert.Equal(t, mgl32.Vec3{2, 0, 3}, f.ctx.PanRig().GoalTarget())
}

func TestSelectFocusesOnlyWhenEnabled(t *testing.T) {
	f := newFixture(t)
	f.ctx.Tick(frame)

	f.ctx.Selection().Select().Emit(selection.SelectEvent{ID: "aws_instance.web"})
	f.ctx.Tick(frame)
	assert.False(t, f.ctx.Animating())

	f.ctx.SetRigMode(RigFocus)
	f.ctx.Selection().Select().Emit(selection.SelectEvent{ID: "aws_instance.web"})
	f.ctx.Tick(frame)
	assert.True(t, f.ctx.Animating())
}

func TestFocusOnSelectOption(t *testing.T) {
	f := newFixture(t, WithFocusOnSelect(true))
	f.ctx.Tick(frame)
	f.ctx.Selection().Select().Emit(selection.SelectEvent{ID: "aws_instance.web"})
	f.ctx.Tick(frame)
	assert.True(t, f.ctx.Animating())
}

func TestSelectionHandlersQueueFocus(t *testing.T) {
	f := newFixture(t, WithRigMode(RigMap), WithFocusOnSelect(true))
	f.ctx.Tick(frame)

	f.ctx.Selection().Select().Emit(selection.SelectEvent{ID: "aws_instance.web"})
	assert.Equal(t, mgl32.Vec3{}, f.ctx.PanRig().GoalTarget(), "pan goal waits for the tick")

	f.ctx.Tick(frame)
	assert.Equal(t, mgl32.Vec3{2, 0, 3}, f.ctx.PanRig().GoalTarget())
}

func TestManualTweenOwnsCameraUntilItLands(t *testing.T) {
	f := newFixture(t)
	f.ctx.Tick(frame)
	target := mgl32.Vec3{2, 0, 3}
	start := f.cam.Position()

	f.ctx.Selection().FocusCamera(target, f.cam, 500*time.Millisecond)
	require.True(t, f.ctx.Animating())

	f.local.Dispatch(&input.Event{Kind: input.Wheel, DeltaY: 5000})
	f.ctx.Tick(frame)
	mid := f.cam.Position()
	assert.NotEqual(t, start, mid)
	f.ctx.Tick(frame)
	assert.Less(t, common.Distance(f.cam.Target(), target), common.Distance(mgl32.Vec3{}, target),
		"the orbit rig does not pull the camera back")

	f.settle(t)
	assert.Equal(t, target, f.cam.Target())
	assert.Equal(t, target, f.ctx.OrbitRig().Target())
	want := target.Add(f.ctx.Settings().FocusOffset)

	f.ctx.Tick(frame)
	assertVecInDelta(t, want, f.cam.Position(), 1e-3)
}

func TestDoubleClickFocusesEntity(t *testing.T) {
	f := newFixture(t)
	f.ctx.Tick(frame)

	ndc := f.cam.Project(mgl32.Vec3{2, 0, 3})
	x, y := (ndc.X()+1)/2*800, (1-ndc.Y())/2*600
	f.local.Dispatch(&input.Event{Kind: input.DoubleClick, X: x, Y: y})

	f.settle(t)
	assert.Equal(t, mgl32.Vec3{2, 0, 3}, f.cam.Target())
}

func TestModeSwitchCancelsFocus(t *testing.T) {
	f := newFixture(t)
	f.ctx.Tick(frame)
	f.ctx.FocusEntity("aws_instance.web")
	f.ctx.Tick(frame)
	require.True(t, f.ctx.Animating())

	f.ctx.SetRigMode(RigMap)
	assert.False(t, f.ctx.Animating())
}

func TestFocusRegion(t *testing.T) {
	f := newFixture(t)
	first := f.ctx.FocusRegion(mgl32.Vec3{1, 0, 1}, mgl32.Vec3{2, 1, 2})
	require.True(t, f.ctx.Animating())
	f.settle(t)
	assert.Equal(t, mgl32.Vec3{1, 0, 1}, f.ctx.OrbitRig().Target())

	f.ctx.SetRigMode(RigMap)
	second := f.ctx.FocusRegion(mgl32.Vec3{-4, 0, 2}, mgl32.Vec3{3, 0, 3})
	assert.Greater(t, second, first)
	assert.Equal(t, mgl32.Vec3{-4, 0, 2}, f.ctx.PanRig().GoalTarget())
	assert.True(t, f.ctx.Animating())
}

func TestApplySettingsOnNextTick(t *testing.T) {
	f := newFixture(t)
	s := config.Defaults()
	s.Orbit.RotateSpeed = 0.002
	s.Pan.KeyPanPixels = 12

	f.ctx.ApplySettings(s)
	assert.InDelta(t, config.Defaults().Orbit.RotateSpeed, f.ctx.OrbitRig().Settings().RotateSpeed, 1e-9)

	f.ctx.Tick(frame)
	assert.InDelta(t, 0.002, f.ctx.OrbitRig().Settings().RotateSpeed, 1e-9)
	assert.InDelta(t, 12, f.ctx.PanRig().Settings().KeyPanPixels, 1e-9)
	assert.Equal(t, s, f.ctx.Settings())
}

func TestSettingsUpdatesChannel(t *testing.T) {
	updates := make(chan config.Settings, 1)
	f := newFixture(t, WithSettingsUpdates(updates))

	s := config.Defaults()
	s.Orbit.Damping = 0.2
	updates <- s
	f.ctx.Tick(frame)
	assert.InDelta(t, 0.2, f.ctx.OrbitRig().Settings().Damping, 1e-9)

	close(updates)
	assert.NotPanics(t, func() { f.ctx.Tick(frame) })
}

func TestDisposeReleasesBindings(t *testing.T) {
	f := newFixture(t)
	require.Positive(t, f.local.Handlers())
	require.Positive(t, f.global.Handlers())

	f.ctx.Dispose()
	assert.Zero(t, f.local.Handlers())
	assert.Zero(t, f.global.Handlers())

	f.press(common.KeyMap)
	assert.Equal(t, RigOrbit, f.ctx.Mode())
	assert.NotPanics(t, f.ctx.Dispose)
}

func TestDisposeClosesOwnedPartitioner(t *testing.T) {
	shared := cull.NewPartitioner()
	t.Cleanup(shared.Close)
	withShared := newFixture(t, WithPartitioner(shared))
	withShared.ctx.Dispose()
	assert.False(t, shared.Closed(), "a caller's partitioner outlives the context")

	f := newFixture(t)
	parts := f.ctx.(*contextImpl).parts
	f.ctx.Dispose()
	assert.True(t, parts.Closed())
}

func TestNewContextPanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewContext(nil, scene.NewNode()) })
	assert.Panics(t, func() { NewContext(camera.NewCamera(), nil) })
}
