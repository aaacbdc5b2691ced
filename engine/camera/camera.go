package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viz/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ProjectionMode selects between perspective and orthographic projection.
type ProjectionMode int

const (
	// Perspective projects with a field of view; zoom is expressed as distance to the target.
	Perspective ProjectionMode = iota
	// Orthographic projects with parallel rays; zoom is a scale factor on the visible height.
	Orthographic
)

// String returns the lowercase name of the mode.
func (m ProjectionMode) String() string {
	switch m {
	case Orthographic:
		return "orthographic"
	default:
		return "perspective"
	}
}

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	mode ProjectionMode

	fov    float32
	aspect float32
	near   float32
	far    float32

	zoom        float32
	orthoNear   float32
	orthoFar    float32
	orthoHeight float32

	viewportWidth  float32
	viewportHeight float32

	viewMatrix                  mgl32.Mat4
	projectionMatrix            mgl32.Mat4
	viewProjectionMatrix        mgl32.Mat4
	inverseViewProjectionMatrix mgl32.Mat4
}

// Ray is a half-line in world space with a normalized direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Camera defines the interface for the view camera handle.
// The camera owns its pose (position, look-at target, up) and projection settings and
// recomputes the view/projection matrices whenever any of them change.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// SetPosition moves the camera without changing the look-at target.
	//
	// Parameters:
	//   - p: world-space position
	SetPosition(p mgl32.Vec3)

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space look-at target
	Target() mgl32.Vec3

	// LookAt re-aims the camera at target without moving it.
	//
	// Parameters:
	//   - target: world-space look-at point
	LookAt(target mgl32.Vec3)

	// SetPose sets position and target together with a single matrix update.
	//
	// Parameters:
	//   - position: world-space position
	//   - target: world-space look-at point
	SetPose(position, target mgl32.Vec3)

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - up: the up vector
	SetUp(up mgl32.Vec3)

	// Mode returns the current projection mode.
	//
	// Returns:
	//   - ProjectionMode: perspective or orthographic
	Mode() ProjectionMode

	// SetMode switches the projection mode, keeping position and target.
	//
	// Parameters:
	//   - mode: the projection mode to use
	SetMode(mode ProjectionMode)

	// Projection returns the zoom/distance helper for the current mode.
	//
	// Returns:
	//   - Projection: variant bound to this camera
	Projection() Projection

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// SetFov sets the vertical field of view in radians.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance of the active mode.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance of the active mode.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Zoom returns the orthographic zoom factor.
	//
	// Returns:
	//   - float32: zoom factor (visible height = OrthoHeight / Zoom)
	Zoom() float32

	// SetZoom sets the orthographic zoom factor.
	//
	// Parameters:
	//   - zoom: zoom factor, must be positive
	SetZoom(zoom float32)

	// OrthoHeight returns the unzoomed orthographic frustum height in world units.
	// Defaults to the viewport height in pixels.
	//
	// Returns:
	//   - float32: the frustum height at zoom 1
	OrthoHeight() float32

	// Viewport returns the viewport size in pixels.
	//
	// Returns:
	//   - width, height: viewport dimensions
	Viewport() (width, height float32)

	// SetViewport resizes the viewport and updates the aspect ratio.
	//
	// Parameters:
	//   - width, height: viewport dimensions in pixels
	SetViewport(width, height float32)

	// ViewMatrix returns the current view matrix (column-major).
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix (column-major).
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the combined projection * view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// Ray builds a world-space ray through a point in normalized device coordinates.
	//
	// Parameters:
	//   - ndcX, ndcY: coordinates in [-1, 1], +Y up
	//
	// Returns:
	//   - Ray: origin on the near plane, direction toward the far plane
	Ray(ndcX, ndcY float32) Ray

	// Project maps a world-space point into normalized device coordinates.
	//
	// Parameters:
	//   - p: world-space point
	//
	// Returns:
	//   - mgl32.Vec3: the point in NDC
	Project(p mgl32.Vec3) mgl32.Vec3

	// Uniform returns the GPU uniform block for the current matrices.
	//
	// Returns:
	//   - GPUCameraUniform: view-projection and eye position
	Uniform() GPUCameraUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings looking at the origin.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:             &sync.Mutex{},
		position:       mgl32.Vec3{6, 6, 6},
		up:             mgl32.Vec3{0, 1, 0},
		mode:           Perspective,
		fov:            mgl32.DegToRad(32),
		near:           0.1,
		far:            100,
		zoom:           80,
		orthoNear:      -100,
		orthoFar:       100,
		viewportWidth:  800,
		viewportHeight: 600,
	}
	c.aspect = c.viewportWidth / c.viewportHeight
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
	c.updateMatrices()
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) LookAt(target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
	c.updateMatrices()
}

func (c *cameraImpl) SetPose(position, target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.target = target
	c.updateMatrices()
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) SetUp(up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
	c.updateMatrices()
}

func (c *cameraImpl) Mode() ProjectionMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *cameraImpl) SetMode(mode ProjectionMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
	c.updateMatrices()
}

func (c *cameraImpl) Projection() Projection {
	c.mu.Lock()
	mode := c.mode
	c.mu.Unlock()
	if mode == Orthographic {
		return orthographicProjection{cam: c}
	}
	return perspectiveProjection{cam: c}
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == Orthographic {
		return c.orthoNear
	}
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == Orthographic {
		return c.orthoFar
	}
	return c.far
}

func (c *cameraImpl) Zoom() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *cameraImpl) SetZoom(zoom float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if zoom <= 0 {
		return
	}
	c.zoom = zoom
	c.updateMatrices()
}

func (c *cameraImpl) OrthoHeight() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.Coalesce(c.orthoHeight, c.viewportHeight)
}

func (c *cameraImpl) Viewport() (width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewportWidth, c.viewportHeight
}

func (c *cameraImpl) SetViewport(width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	c.viewportWidth = width
	c.viewportHeight = height
	c.aspect = width / height
	c.updateMatrices()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Ray(ndcX, ndcY float32) Ray {
	c.mu.Lock()
	inv := c.inverseViewProjectionMatrix
	c.mu.Unlock()

	near := common.TransformPoint(inv, mgl32.Vec3{ndcX, ndcY, -1})
	far := common.TransformPoint(inv, mgl32.Vec3{ndcX, ndcY, 1})
	dir := far.Sub(near)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Ray{Origin: near, Direction: dir}
}

func (c *cameraImpl) Project(p mgl32.Vec3) mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.TransformPoint(c.viewProjectionMatrix, p)
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		ViewProj:       c.viewProjectionMatrix,
		CameraPosition: c.position,
	}
}

// updateMatrices recalculates the view, projection, view-projection and inverse
// view-projection matrices. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = mgl32.LookAtV(c.position, c.target, c.up)

	switch c.mode {
	case Orthographic:
		halfH := common.Coalesce(c.orthoHeight, c.viewportHeight) / (2 * c.zoom)
		halfW := halfH * c.aspect
		c.projectionMatrix = mgl32.Ortho(-halfW, halfW, -halfH, halfH, c.orthoNear, c.orthoFar)
	default:
		c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	}

	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseViewProjectionMatrix = c.viewProjectionMatrix.Inv()
}

// tanHalfFov is shared by the perspective helpers. Caller must hold the mutex.
func (c *cameraImpl) tanHalfFov() float32 {
	return math32.Tan(c.fov / 2)
}
