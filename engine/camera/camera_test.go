package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	assert.Equal(t, Perspective, c.Mode())
	assert.InDelta(t, mgl32.DegToRad(32), c.Fov(), 1e-6)
	assert.InDelta(t, 800.0/600.0, c.Aspect(), 1e-6)
	assert.Equal(t, float32(80), c.Zoom())
	w, h := c.Viewport()
	assert.Equal(t, float32(800), w)
	assert.Equal(t, float32(600), h)
	assert.Equal(t, float32(600), c.OrthoHeight())
}

func TestRayThroughCentreHitsTarget(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{0, 50, 100}), WithFov(mgl32.DegToRad(75)))

	r := c.Ray(0, 0)
	want := mgl32.Vec3{0, -50, -100}.Normalize()
	assert.InDelta(t, want.X(), r.Direction.X(), 1e-4)
	assert.InDelta(t, want.Y(), r.Direction.Y(), 1e-4)
	assert.InDelta(t, want.Z(), r.Direction.Z(), 1e-4)

	// the ray must pass through the look-at point
	toTarget := c.Target().Sub(r.Origin)
	closest := r.At(toTarget.Dot(r.Direction))
	assert.InDelta(t, 0, closest.Len(), 1e-2)
}

func TestProjectIsInverseOfRay(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{0, 50, 100}), WithFov(mgl32.DegToRad(75)))

	ndc := c.Project(mgl32.Vec3{20, 0, 30})
	r := c.Ray(ndc.X(), ndc.Y())
	toPoint := mgl32.Vec3{20, 0, 30}.Sub(r.Origin)
	closest := r.At(toPoint.Dot(r.Direction))
	assert.InDelta(t, 0, closest.Sub(mgl32.Vec3{20, 0, 30}).Len(), 1e-2)
}

func TestOrthographicRayIsParallel(t *testing.T) {
	c := NewCamera(WithMode(Orthographic), WithPosition(mgl32.Vec3{6, 6, 6}))

	a := c.Ray(-0.5, 0.5)
	b := c.Ray(0.5, -0.5)
	assert.InDelta(t, 1, a.Direction.Dot(b.Direction), 1e-4)
	assert.InDelta(t, -1, a.Direction.Dot(mgl32.Vec3{1, 1, 1}.Normalize()), 1e-4)
}

func TestSetViewportUpdatesAspect(t *testing.T) {
	c := NewCamera()
	c.SetViewport(1920, 1080)
	assert.InDelta(t, 1920.0/1080.0, c.Aspect(), 1e-6)

	c.SetViewport(0, 100)
	assert.InDelta(t, 1920.0/1080.0, c.Aspect(), 1e-6, "invalid sizes are ignored")
}

func TestSetZoomIgnoresNonPositive(t *testing.T) {
	c := NewCamera()
	c.SetZoom(0)
	assert.Equal(t, float32(80), c.Zoom())
	c.SetZoom(-3)
	assert.Equal(t, float32(80), c.Zoom())
}

func TestUniformMarshal(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{1, 2, 3}))
	u := c.Uniform()

	require.Equal(t, 80, u.Size())
	buf := u.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[68:])))
}
