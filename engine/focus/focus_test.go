package focus

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viz/common"
	"github.com/Carmen-Shannon/oxy-viz/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = float32(1.0 / 60)

type mapLookup map[string]mgl32.Vec3

func (m mapLookup) Lookup(id string) (mgl32.Vec3, bool) {
	p, ok := m[id]
	return p, ok
}

func TestEasingsHitEndpoints(t *testing.T) {
	for name, ease := range Easings {
		assert.InDelta(t, 0, ease(0), 1e-6, name)
		assert.InDelta(t, 1, ease(1), 1e-6, name)
	}
	assert.InDelta(t, 0.5, EaseInOutCubic(0.5), 1e-6)
	assert.InDelta(t, 0.5, EaseInOutQuad(0.5), 1e-6)
}

func TestEasedAnimationLandsExactly(t *testing.T) {
	a := NewEasedAnimation(mgl32.Vec3{0, 50, 100}, mgl32.Vec3{20, 20, 70}, 0.6, EaseInOutCubic)
	for range 37 {
		a.Advance(frame)
	}
	assert.True(t, a.Done())
	assert.Equal(t, mgl32.Vec3{20, 20, 70}, a.Current())

	zero := NewEasedAnimation(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 0, nil)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, zero.Advance(0))
}

func TestEasedAnimationFixedStepsFinishOnTime(t *testing.T) {
	goal := mgl32.Vec3{20, 20, 70}
	byDuration := NewEasedAnimation(mgl32.Vec3{0, 50, 100}, goal, 0.6, EaseInOutCubic)
	bySeconds := NewEasedAnimation(mgl32.Vec3{0, 50, 100}, goal, 0.6, EaseInOutCubic)
	for i := range 60 {
		require.False(t, byDuration.Done(), "step %d", i)
		byDuration.AdvanceDuration(10 * time.Millisecond)
		bySeconds.Advance(0.01)
	}
	assert.True(t, byDuration.Done())
	assert.True(t, bySeconds.Done())
	assert.Equal(t, goal, bySeconds.Current())
	assert.InDelta(t, 0.6, bySeconds.Elapsed(), 1e-6)
}

func TestExponentialAnimationConvergesMonotonically(t *testing.T) {
	goal := mgl32.Vec3{10, 0, 0}
	a := NewExponentialAnimation(mgl32.Vec3{}, goal, 4, 0.05)
	prev := common.Distance(a.Current(), goal)
	for i := 0; i < 1000 && !a.Done(); i++ {
		d := common.Distance(a.Advance(frame), goal)
		require.LessOrEqual(t, d, prev+1e-6)
		prev = d
	}
	assert.True(t, a.Done())
	assert.Equal(t, goal, a.Current())
}

func TestExponentialAnimationFactorOneFinishes(t *testing.T) {
	a := NewExponentialAnimation(mgl32.Vec3{}, mgl32.Vec3{3, 3, 3}, 4, 0)
	a.Advance(1)
	assert.True(t, a.Done())
	assert.Equal(t, mgl32.Vec3{3, 3, 3}, a.Current())
}

func TestControllerFocusesEntity(t *testing.T) {
	cam := camera.NewCamera(camera.WithPosition(mgl32.Vec3{6, 6, 6}))
	var arrived []mgl32.Vec3
	c := NewController(cam, mapLookup{"web": {2, 0, 3}}, WithOnArrive(func(target mgl32.Vec3) {
		arrived = append(arrived, target)
	}))

	c.Request("web")
	c.Tick(frame)
	require.True(t, c.Animating())
	assert.Equal(t, mgl32.Vec3{2, 0, 3}, cam.Target(), "look-at snaps on the first tick")

	goalPos, _, ok := c.Goal()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{3.5, 1.2, 4.5}, goalPos)

	prev := common.Distance(cam.Position(), goalPos)
	for i := 0; i < 1000 && c.Animating(); i++ {
		c.Tick(frame)
		d := common.Distance(cam.Position(), goalPos)
		require.LessOrEqual(t, d, prev+1e-6)
		prev = d
	}
	assert.False(t, c.Animating())
	assert.Equal(t, goalPos, cam.Position())
	assert.Equal(t, []mgl32.Vec3{{2, 0, 3}}, arrived)
}

func TestControllerDeduplicatesRequests(t *testing.T) {
	cam := camera.NewCamera()
	c := NewController(cam, mapLookup{"a": {1, 0, 1}})

	c.Request("a")
	c.Tick(1)
	require.False(t, c.Animating(), "a full-second tick at speed 4 lands immediately")

	cam.SetPosition(mgl32.Vec3{9, 9, 9})
	c.Request("a")
	c.Tick(frame)
	assert.False(t, c.Animating(), "same id is not re-triggered")
	assert.Equal(t, mgl32.Vec3{9, 9, 9}, cam.Position())

	c.Request("")
	c.Tick(frame)
	c.Request("a")
	c.Tick(frame)
	assert.True(t, c.Animating(), "clearing the id allows the same entity again")
}

func TestControllerIgnoresMissingEntity(t *testing.T) {
	cam := camera.NewCamera()
	before := cam.Position()
	c := NewController(cam, mapLookup{}, WithDebug(true))

	c.Request("gone")
	c.Tick(frame)
	assert.False(t, c.Animating())
	assert.Equal(t, before, cam.Position())
}

func TestControllerCancel(t *testing.T) {
	cam := camera.NewCamera()
	arrived := false
	c := NewController(cam, mapLookup{"a": {1, 0, 1}}, WithOnArrive(func(mgl32.Vec3) { arrived = true }))
	c.Request("a")
	c.Tick(frame)
	c.Cancel()
	c.Tick(frame)
	assert.False(t, c.Animating())
	assert.False(t, arrived)

	c.Request("a")
	c.Tick(frame)
	assert.True(t, c.Animating(), "cancel forgets the last id")
}

func TestNewControllerPanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewController(nil, mapLookup{}) })
	assert.Panics(t, func() { NewController(camera.NewCamera(), nil) })
	assert.Panics(t, func() { NewClusterController(nil) })
}
