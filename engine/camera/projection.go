package camera

import (
	"github.com/Carmen-Shannon/oxy-viz/common"
)

// Wheel delta scaling applied by ApplyZoomDelta for each mode.
const (
	DistancePerWheelUnit float32 = 0.01
	ZoomPerWheelUnit     float32 = 0.3
)

// ZoomLimits bounds the zoom factor (orthographic) and target distance (perspective).
type ZoomLimits struct {
	MinDistance float32
	MaxDistance float32
	MinZoom     float32
	MaxZoom     float32
}

// Projection hides the orthographic/perspective split behind one set of zoom operations.
// In orthographic mode the scalar is the zoom factor; in perspective mode it is the
// distance from the camera to its look-at target.
type Projection interface {
	// Mode returns the projection mode this variant implements.
	Mode() ProjectionMode

	// ZoomOrDistance returns the current zoom factor or target distance.
	//
	// Returns:
	//   - float32: the scalar for this mode
	ZoomOrDistance() float32

	// SetZoomOrDistance applies a new zoom factor, or moves the camera along its view
	// direction so it sits v units from the target.
	//
	// Parameters:
	//   - v: the new scalar for this mode
	SetZoomOrDistance(v float32)

	// Clamp limits v to the bounds that apply to this mode.
	//
	// Parameters:
	//   - v: zoom factor or distance
	//   - limits: rig bounds
	//
	// Returns:
	//   - float32: the clamped value
	Clamp(v float32, limits ZoomLimits) float32

	// ApplyZoomDelta returns the scalar after one wheel delta. Positive deltas move away
	// from the target in both modes.
	//
	// Parameters:
	//   - v: the current zoom factor or distance
	//   - delta: accumulated wheel delta
	//   - limits: rig bounds
	//
	// Returns:
	//   - float32: the clamped new value
	ApplyZoomDelta(v, delta float32, limits ZoomLimits) float32

	// PixelToWorldRatio returns how many world units one screen pixel covers at the target.
	//
	// Returns:
	//   - float32: world units per pixel
	PixelToWorldRatio() float32

	// ExtentToZoomOrDistance returns the scalar that makes extent world units fill the
	// viewport height.
	//
	// Parameters:
	//   - extent: visible height in world units
	//
	// Returns:
	//   - float32: zoom factor or distance (unclamped)
	ExtentToZoomOrDistance(extent float32) float32
}

type orthographicProjection struct {
	cam *cameraImpl
}

type perspectiveProjection struct {
	cam *cameraImpl
}

var (
	_ Projection = orthographicProjection{}
	_ Projection = perspectiveProjection{}
)

func (o orthographicProjection) Mode() ProjectionMode { return Orthographic }

func (o orthographicProjection) ZoomOrDistance() float32 { return o.cam.Zoom() }

func (o orthographicProjection) SetZoomOrDistance(v float32) { o.cam.SetZoom(v) }

func (o orthographicProjection) Clamp(v float32, limits ZoomLimits) float32 {
	return common.Clamp(v, limits.MinZoom, limits.MaxZoom)
}

func (o orthographicProjection) ApplyZoomDelta(v, delta float32, limits ZoomLimits) float32 {
	return o.Clamp(v-delta*ZoomPerWheelUnit, limits)
}

func (o orthographicProjection) PixelToWorldRatio() float32 {
	c := o.cam
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.zoom <= 0 || c.viewportHeight <= 0 {
		return 0
	}
	return common.Coalesce(c.orthoHeight, c.viewportHeight) / c.zoom / c.viewportHeight
}

func (o orthographicProjection) ExtentToZoomOrDistance(extent float32) float32 {
	if extent <= 0 {
		return o.ZoomOrDistance()
	}
	return o.cam.OrthoHeight() / extent
}

func (p perspectiveProjection) Mode() ProjectionMode { return Perspective }

func (p perspectiveProjection) ZoomOrDistance() float32 {
	c := p.cam
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position.Sub(c.target).Len()
}

func (p perspectiveProjection) SetZoomOrDistance(v float32) {
	c := p.cam
	c.mu.Lock()
	defer c.mu.Unlock()
	offset := c.position.Sub(c.target)
	if offset.Len() == 0 || v <= 0 {
		return
	}
	c.position = c.target.Add(offset.Normalize().Mul(v))
	c.updateMatrices()
}

func (p perspectiveProjection) Clamp(v float32, limits ZoomLimits) float32 {
	return common.Clamp(v, limits.MinDistance, limits.MaxDistance)
}

func (p perspectiveProjection) ApplyZoomDelta(v, delta float32, limits ZoomLimits) float32 {
	return p.Clamp(v+delta*DistancePerWheelUnit, limits)
}

func (p perspectiveProjection) PixelToWorldRatio() float32 {
	c := p.cam
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.viewportHeight <= 0 {
		return 0
	}
	d := c.position.Sub(c.target).Len()
	return 2 * d * c.tanHalfFov() / c.viewportHeight
}

func (p perspectiveProjection) ExtentToZoomOrDistance(extent float32) float32 {
	c := p.cam
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.tanHalfFov()
	if extent <= 0 || t <= 0 {
		return c.position.Sub(c.target).Len()
	}
	return extent / (2 * t)
}
