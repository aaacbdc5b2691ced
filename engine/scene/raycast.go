package scene

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-viz/common"
	"github.com/Carmen-Shannon/oxy-viz/engine/camera"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// parallelEpsilon treats ray direction components below it as parallel to a slab.
const parallelEpsilon = 1e-8

// Hit is a ray intersection with a node's box geometry.
type Hit struct {
	Node Node
	// Distance is measured along the ray from its origin in world units.
	Distance float32
	Point    mgl32.Vec3
}

// Raycast intersects ray with every visible node carrying geometry under root.
// Invisible nodes hide their subtree.
//
// Parameters:
//   - root: the subtree to test
//   - ray: world-space ray with a normalized direction
//
// Returns:
//   - []Hit: hits sorted nearest first; empty if nothing was hit
func Raycast(root Node, ray camera.Ray) []Hit {
	var hits []Hit
	Traverse(root, func(n Node) bool {
		if !n.Visible() {
			return false
		}
		if h, ok := IntersectNode(n, ray); ok {
			hits = append(hits, h)
		}
		return true
	})
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// IntersectNode tests ray against n's box in n's local space. Scaling and rotation are
// handled by moving the ray through the inverse world matrix; the ray parameter is
// preserved by the affine transform so it is still the world distance.
//
// Parameters:
//   - n: the node to test
//   - ray: world-space ray with a normalized direction
//
// Returns:
//   - Hit: the intersection
//   - bool: false if n has no geometry or the ray misses
func IntersectNode(n Node, ray camera.Ray) (Hit, bool) {
	size, ok := n.Box()
	if !ok {
		return Hit{}, false
	}
	world := n.WorldMatrix()
	if world.Det() == 0 {
		return Hit{}, false
	}
	inv := world.Inv()
	origin := common.TransformPoint(inv, ray.Origin)
	dir := common.TransformDirection(inv, ray.Direction)

	t, ok := intersectBox(origin, dir, common.BoxFromCenterAndSize(mgl32.Vec3{}, size))
	if !ok {
		return Hit{}, false
	}
	return Hit{Node: n, Distance: t, Point: ray.At(t)}, true
}

// intersectBox is the slab test against an axis-aligned box. When the origin is inside
// the box the exit distance is returned.
func intersectBox(origin, dir mgl32.Vec3, box common.Box) (float32, bool) {
	lo, hi := box.Min, box.Max
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)
	for axis := range 3 {
		o, d := origin[axis], dir[axis]
		if math32.Abs(d) < parallelEpsilon {
			if o < lo[axis] || o > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - o) / d
		t2 := (hi[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin >= 0 {
		return tmin, true
	}
	return tmax, true
}
