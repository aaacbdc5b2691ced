package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

var testLimits = ZoomLimits{MinDistance: 2, MaxDistance: 12, MinZoom: 0.5, MaxZoom: 200}

func TestOrthographicPixelToWorldRatio(t *testing.T) {
	c := NewCamera(WithMode(Orthographic), WithZoom(80))
	p := c.Projection()

	assert.Equal(t, Orthographic, p.Mode())
	// visible height 600/80 world units spread over 600 pixels
	assert.InDelta(t, 1.0/80.0, p.PixelToWorldRatio(), 1e-7)

	c.SetZoom(40)
	assert.InDelta(t, 1.0/40.0, p.PixelToWorldRatio(), 1e-7)
}

func TestPerspectivePixelToWorldRatio(t *testing.T) {
	fov := mgl32.DegToRad(60)
	c := NewCamera(WithPosition(mgl32.Vec3{0, 0, 10}), WithFov(fov))
	p := c.Projection()

	want := 2 * 10 * math32.Tan(fov/2) / 600
	assert.InDelta(t, want, p.PixelToWorldRatio(), 1e-6)
}

func TestApplyZoomDeltaClamps(t *testing.T) {
	ortho := NewCamera(WithMode(Orthographic)).Projection()
	persp := NewCamera().Projection()

	assert.InDelta(t, 80-3, ortho.ApplyZoomDelta(80, 10, testLimits), 1e-5)
	assert.Equal(t, float32(0.5), ortho.ApplyZoomDelta(1, 1000, testLimits))
	assert.Equal(t, float32(200), ortho.ApplyZoomDelta(199, -1000, testLimits))

	assert.InDelta(t, 5.1, persp.ApplyZoomDelta(5, 10, testLimits), 1e-5)
	assert.Equal(t, float32(12), persp.ApplyZoomDelta(11, 1e5, testLimits))
	assert.Equal(t, float32(2), persp.ApplyZoomDelta(3, -1e5, testLimits))
}

func TestPerspectiveSetDistanceMovesAlongViewDirection(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{0, 3, 4}))
	p := c.Projection()
	assert.InDelta(t, 5, p.ZoomOrDistance(), 1e-5)

	p.SetZoomOrDistance(10)
	assert.InDelta(t, 10, p.ZoomOrDistance(), 1e-5)
	pos := c.Position()
	assert.InDelta(t, 6, pos.Y(), 1e-5)
	assert.InDelta(t, 8, pos.Z(), 1e-5)
}

func TestExtentToZoomOrDistanceRoundTrip(t *testing.T) {
	ortho := NewCamera(WithMode(Orthographic))
	op := ortho.Projection()
	op.SetZoomOrDistance(op.ExtentToZoomOrDistance(15))
	visible := ortho.OrthoHeight() / ortho.Zoom()
	assert.InDelta(t, 15, visible, 1e-4)

	persp := NewCamera()
	pp := persp.Projection()
	pp.SetZoomOrDistance(pp.ExtentToZoomOrDistance(15))
	_, h := persp.Viewport()
	assert.InDelta(t, 15, pp.PixelToWorldRatio()*h, 1e-4)
}

func TestProjectionFollowsMode(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, Perspective, c.Projection().Mode())
	c.SetMode(Orthographic)
	assert.Equal(t, Orthographic, c.Projection().Mode())
	assert.Equal(t, "orthographic", c.Mode().String())
}
