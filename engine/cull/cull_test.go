package cull

import (
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-viz/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCamera() camera.Camera {
	return camera.NewCamera(camera.WithPosition(mgl32.Vec3{6, 6, 6}), camera.WithTarget(mgl32.Vec3{}))
}

func TestPredicateTestsFrustum(t *testing.T) {
	visible := New(newCamera(), 0.5)
	assert.True(t, visible(0, 0, 0))
	assert.False(t, visible(20, 20, 20), "behind the camera")
	assert.False(t, visible(-200, -200, -200), "beyond the far plane")
}

func TestPredicateMarginWidensTest(t *testing.T) {
	cam := newCamera()
	dir := cam.Target().Sub(cam.Position()).Normalize()
	p := cam.Position().Add(dir.Mul(cam.Far() + 1))

	assert.False(t, New(cam, 0.5)(p.X(), p.Y(), p.Z()))
	assert.True(t, New(cam, 2)(p.X(), p.Y(), p.Z()))
}

func TestPredicateIsASnapshot(t *testing.T) {
	cam := newCamera()
	visible := New(cam, 0.5)
	cam.SetPose(mgl32.Vec3{-6, 6, -6}, mgl32.Vec3{-20, 0, -20})

	assert.True(t, visible(0, 0, 0))
	assert.Equal(t, mgl32.Vec3{-6, 6, -6}, cam.Position(), "building the predicate leaves the camera alone")
}

func makeItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		x := float32(i%2) * 40
		items[i] = Item{ID: fmt.Sprintf("e%d", i), Position: mgl32.Vec3{x, 0, x}}
	}
	return items
}

func TestPartitionSplitsInOrder(t *testing.T) {
	pred := New(newCamera(), 0.5)
	items := makeItems(6)

	r := NewPartitioner(WithWorkers(1)).Partition(pred, items)
	assert.Equal(t, []string{"e0", "e2", "e4"}, r.Visible)
	assert.Equal(t, []string{"e1", "e3", "e5"}, r.Hidden)
}

func TestPartitionParallelMatchesSerial(t *testing.T) {
	pred := New(newCamera(), 0.5)
	items := makeItems(2000)

	serial := NewPartitioner(WithParallelThreshold(len(items))).Partition(pred, items)
	parallel := NewPartitioner(WithWorkers(4), WithParallelThreshold(10), WithChunkSize(64)).Partition(pred, items)

	require.Len(t, parallel.Visible, 1000)
	assert.Equal(t, serial, parallel)
}

func TestPartitionEmpty(t *testing.T) {
	p := NewPartitioner()
	assert.Equal(t, Result{}, p.Partition(New(newCamera(), 1), nil))
	assert.Equal(t, Result{}, p.Partition(nil, makeItems(3)))
	assert.GreaterOrEqual(t, p.Workers(), 1)
}

func TestPartitionAfterCloseRunsSerially(t *testing.T) {
	pred := New(newCamera(), 0.5)
	items := makeItems(2000)
	p := NewPartitioner(WithWorkers(4), WithParallelThreshold(10), WithChunkSize(64))
	before := p.Partition(pred, items)

	p.Close()
	p.Close()
	require.True(t, p.Closed())
	assert.Equal(t, before, p.Partition(pred, items))
}

func TestNewPanicsOnNilCamera(t *testing.T) {
	assert.Panics(t, func() { New(nil, 1) })
}
