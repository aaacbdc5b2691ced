package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(0, 1, 2))
	assert.Equal(t, float32(2), Clamp(3, 1, 2))
	assert.Equal(t, float32(1.5), Clamp(1.5, 1, 2))
}

func TestLerpFactor(t *testing.T) {
	assert.InDelta(t, 0.064, LerpFactor(0.016, 4), 1e-6)
	assert.Equal(t, float32(1), LerpFactor(1, 4))
	assert.Equal(t, float32(0), LerpFactor(0, 4))
}

func TestDecayFactorMatchesLegacyAtReferenceRate(t *testing.T) {
	legacy := DecayFactor(0.08, 1.0/60, 60, false)
	scaled := DecayFactor(0.08, 1.0/60, 60, true)
	assert.InDelta(t, 0.92, legacy, 1e-6)
	assert.InDelta(t, legacy, scaled, 1e-5)

	// two 30 fps frames decay as much as one 60 fps frame squared
	half := DecayFactor(0.08, 1.0/30, 60, true)
	assert.InDelta(t, scaled*scaled, half, 1e-5)

	assert.Equal(t, float32(1), DecayFactor(0.08, 0, 60, true))
	assert.InDelta(t, 1-scaled, ApproachFactor(0.08, 1.0/60, 60, true), 1e-6)
}

func TestSphericalRoundTrip(t *testing.T) {
	v := mgl32.Vec3{6, 6, 6}
	s := SphericalFromVector(v)

	assert.InDelta(t, math32.Sqrt(108), s.Radius, 1e-5)
	assert.InDelta(t, math32.Pi/4, s.Theta, 1e-5)
	back := s.Vector()
	assert.InDelta(t, 0, back.Sub(v).Len(), 1e-4)

	assert.Equal(t, Spherical{}, SphericalFromVector(mgl32.Vec3{}))
}

func TestBuildModelMatrixTranslateScale(t *testing.T) {
	m := BuildModelMatrix(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{}, mgl32.Vec3{2, 2, 2})
	p := TransformPoint(m, mgl32.Vec3{1, 1, 1})
	assert.Equal(t, mgl32.Vec3{3, 4, 5}, p)

	d := TransformDirection(m, mgl32.Vec3{1, 0, 0})
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, d)
}

func TestBuildModelMatrixYaw(t *testing.T) {
	m := BuildModelMatrix(mgl32.Vec3{}, mgl32.Vec3{0, math32.Pi / 2, 0}, mgl32.Vec3{1, 1, 1})
	p := TransformPoint(m, mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0, p.X(), 1e-6)
	assert.InDelta(t, -1, p.Z(), 1e-6)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, float32(600), Coalesce(float32(0), 600))
	assert.Equal(t, "a", Coalesce("", "a", "b"))
	assert.Equal(t, 0, Coalesce(0, 0))
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(map[string]int{"c": 1, "a": 2, "b": 3}))
	assert.Empty(t, SortedKeys(map[int]bool(nil)))
}
