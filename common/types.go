// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "github.com/go-gl/mathgl/mgl32"

// Spherical expresses a point as an offset from a pivot using radius, polar angle and azimuth.
type Spherical struct {
	// Radius is the distance from the pivot.
	Radius float32
	// Phi is the polar angle in radians measured from the +Y axis.
	Phi float32
	// Theta is the azimuth in radians around the Y axis, 0 facing +Z.
	Theta float32
}

// Sphere is a bounding sphere used for visibility tests.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// Box is an axis-aligned bounding box defined by its minimum and maximum corners.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// BoxFromCenterAndSize builds a Box centred on center with full extents size.
//
// Parameters:
//   - center: box centre
//   - size: full width, height and depth
//
// Returns:
//   - Box: the resulting box
func BoxFromCenterAndSize(center, size mgl32.Vec3) Box {
	half := size.Mul(0.5)
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

// ContainsPoint reports whether p lies inside or on the box.
func (b Box) ContainsPoint(p mgl32.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}
