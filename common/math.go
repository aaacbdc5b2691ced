package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Clamp restricts v to the closed interval [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: v limited to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LerpFactor returns the frame-rate independent interpolation weight min(deltaTime*rate, 1).
//
// Parameters:
//   - deltaTime: elapsed time since the last frame in seconds
//   - rate: convergence speed per second
//
// Returns:
//   - float32: interpolation weight in [0, 1]
func LerpFactor(deltaTime, rate float32) float32 {
	if deltaTime <= 0 {
		return 0
	}
	return math32.Min(deltaTime*rate, 1)
}

// DecayFactor converts a per-frame damping coefficient into the multiplier to apply for
// one tick. When frameIndependent is true the coefficient is treated as defined at
// referenceFPS and scaled by the elapsed time, so decay per second is stable across
// frame rates. Otherwise the legacy per-tick multiplier (1 - damping) is returned.
//
// Parameters:
//   - damping: per-reference-frame damping in [0, 1)
//   - deltaTime: elapsed time since the last frame in seconds
//   - referenceFPS: the frame rate damping was tuned at
//   - frameIndependent: whether to scale by deltaTime
//
// Returns:
//   - float32: multiplier in [0, 1]
func DecayFactor(damping, deltaTime, referenceFPS float32, frameIndependent bool) float32 {
	keep := 1 - damping
	if !frameIndependent {
		return keep
	}
	if deltaTime <= 0 {
		return 1
	}
	return math32.Pow(keep, deltaTime*referenceFPS)
}

// ApproachFactor is the complement of DecayFactor: the fraction of the remaining gap an
// exponential lerp covers this tick.
//
// Parameters:
//   - damping: per-reference-frame lerp weight in (0, 1]
//   - deltaTime: elapsed time since the last frame in seconds
//   - referenceFPS: the frame rate the weight was tuned at
//   - frameIndependent: whether to scale by deltaTime
//
// Returns:
//   - float32: interpolation weight in [0, 1]
func ApproachFactor(damping, deltaTime, referenceFPS float32, frameIndependent bool) float32 {
	return 1 - DecayFactor(damping, deltaTime, referenceFPS, frameIndependent)
}

// LerpVec3 linearly interpolates from a toward b by t.
//
// Parameters:
//   - a: start vector
//   - b: end vector
//   - t: interpolation weight (0 = a, 1 = b)
//
// Returns:
//   - mgl32.Vec3: the interpolated vector
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Distance returns the euclidean distance between two points.
func Distance(a, b mgl32.Vec3) float32 {
	return b.Sub(a).Len()
}

// SphericalFromVector converts an offset vector into spherical coordinates.
// Polar angle is measured from +Y, azimuth around Y starting at +Z.
//
// Parameters:
//   - v: offset from the pivot point
//
// Returns:
//   - Spherical: the equivalent spherical coordinates (zero angles for a zero vector)
func SphericalFromVector(v mgl32.Vec3) Spherical {
	r := v.Len()
	if r == 0 {
		return Spherical{}
	}
	return Spherical{
		Radius: r,
		Theta:  math32.Atan2(v[0], v[2]),
		Phi:    math32.Acos(Clamp(v[1]/r, -1, 1)),
	}
}

// Vector converts spherical coordinates back into a cartesian offset.
//
// Returns:
//   - mgl32.Vec3: offset from the pivot point
func (s Spherical) Vector() mgl32.Vec3 {
	sinPhi := math32.Sin(s.Phi)
	return mgl32.Vec3{
		s.Radius * sinPhi * math32.Sin(s.Theta),
		s.Radius * math32.Cos(s.Phi),
		s.Radius * sinPhi * math32.Cos(s.Theta),
	}
}

// BuildModelMatrix constructs a 4x4 model matrix from position, Euler rotation, and scale.
// The rotation order is Y * X * Z (yaw-pitch-roll). All matrices are column-major.
//
// Parameters:
//   - pos: translation in world space
//   - rot: rotation angles in radians around each axis
//   - scale: scale factors along each axis
//
// Returns:
//   - mgl32.Mat4: the composed model matrix
func BuildModelMatrix(pos, rot, scale mgl32.Vec3) mgl32.Mat4 {
	cx, sx := math32.Cos(rot[0]), math32.Sin(rot[0])
	cy, sy := math32.Cos(rot[1]), math32.Sin(rot[1])
	cz, sz := math32.Cos(rot[2]), math32.Sin(rot[2])

	var out mgl32.Mat4
	// R = Ry * Rx * Rz, column-major
	out[0] = (cy*cz + sy*sx*sz) * scale[0]
	out[1] = (cx * sz) * scale[0]
	out[2] = (-sy*cz + cy*sx*sz) * scale[0]

	out[4] = (cy*-sz + sy*sx*cz) * scale[1]
	out[5] = (cx * cz) * scale[1]
	out[6] = (sy*sz + cy*sx*cz) * scale[1]

	out[8] = (sy * cx) * scale[2]
	out[9] = (-sx) * scale[2]
	out[10] = (cy * cx) * scale[2]

	out[12] = pos[0]
	out[13] = pos[1]
	out[14] = pos[2]
	out[15] = 1
	return out
}

// TransformPoint applies m to the point p with perspective divide.
//
// Parameters:
//   - m: the transform
//   - p: the point
//
// Returns:
//   - mgl32.Vec3: transformed point (p unchanged when w is zero)
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	if v[3] == 0 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v[3])
}

// TransformDirection applies the linear part of m to d (no translation).
func TransformDirection(m mgl32.Mat4, d mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(d.Vec4(0)).Vec3()
}
