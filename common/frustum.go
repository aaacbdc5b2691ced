package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// DistanceToPoint returns the signed distance from the plane to p.
// Positive values lie on the side the normal points toward.
func (p Plane) DistanceToPoint(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.Distance
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts frustum planes from a view-projection matrix.
// The matrix should be the combined Projection * View matrix using OpenGL clip
// conventions (z in [-1, 1]), which is what mgl32.Perspective and mgl32.Ortho produce.
// Uses the Gribb/Hartmann method for plane extraction.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the column-major view-projection matrix
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj mgl32.Mat4) Frustum {
	var f Frustum
	m := viewProj

	// For column-major matrix M, element M[row][col] is at index col*4 + row,
	// so row r is (m[r], m[4+r], m[8+r], m[12+r]).
	row := func(r int) (float32, float32, float32, float32) {
		return m[r], m[4+r], m[8+r], m[12+r]
	}
	r0x, r0y, r0z, r0w := row(0)
	r1x, r1y, r1z, r1w := row(1)
	r2x, r2y, r2z, r2w := row(2)
	r3x, r3y, r3z, r3w := row(3)

	set := func(i int, x, y, z, w float32) {
		f.Planes[i] = Plane{Normal: mgl32.Vec3{x, y, z}, Distance: w}
	}

	// Left plane: row3 + row0
	set(FrustumLeft, r3x+r0x, r3y+r0y, r3z+r0z, r3w+r0w)
	// Right plane: row3 - row0
	set(FrustumRight, r3x-r0x, r3y-r0y, r3z-r0z, r3w-r0w)
	// Bottom plane: row3 + row1
	set(FrustumBottom, r3x+r1x, r3y+r1y, r3z+r1z, r3w+r1w)
	// Top plane: row3 - row1
	set(FrustumTop, r3x-r1x, r3y-r1y, r3z-r1z, r3w-r1w)
	// Near plane: row3 + row2
	set(FrustumNear, r3x+r2x, r3y+r2y, r3z+r2z, r3w+r2w)
	// Far plane: row3 - row2
	set(FrustumFar, r3x-r2x, r3y-r2y, r3z-r2z, r3w-r2w)

	// Normalize all planes
	for i := range f.Planes {
		f.normalizePlane(i)
	}

	return f
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := math32.Sqrt(p.Normal.Dot(p.Normal))

	if length > 0 {
		invLen := 1.0 / length
		p.Normal = p.Normal.Mul(invLen)
		p.Distance *= invLen
	}
}

// IntersectsSphere reports whether a sphere intersects or lies inside the frustum.
//
// Parameters:
//   - s: the bounding sphere to test
//
// Returns:
//   - bool: false only if the sphere is entirely outside at least one plane
func (f Frustum) IntersectsSphere(s Sphere) bool {
	for _, p := range f.Planes {
		if p.DistanceToPoint(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether p lies inside the frustum.
func (f Frustum) ContainsPoint(p mgl32.Vec3) bool {
	return f.IntersectsSphere(Sphere{Center: p})
}
