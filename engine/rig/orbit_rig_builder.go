package rig

import (
	"github.com/Carmen-Shannon/oxy-viz/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitRigBuilderOption is a functional option for configuring an OrbitRig.
type OrbitRigBuilderOption func(*orbitRigImpl)

// WithOrbitSettings replaces the default tuning.
//
// Parameters:
//   - s: the tuning
//
// Returns:
//   - OrbitRigBuilderOption: option function to apply
func WithOrbitSettings(s OrbitSettings) OrbitRigBuilderOption {
	return func(r *orbitRigImpl) {
		if s.ReferenceFPS <= 0 {
			s.ReferenceFPS = DefaultReferenceFPS
		}
		r.settings = s
	}
}

// WithOrbitTarget sets the initial pivot.
//
// Parameters:
//   - target: the look-at target
//
// Returns:
//   - OrbitRigBuilderOption: option function to apply
func WithOrbitTarget(target mgl32.Vec3) OrbitRigBuilderOption {
	return func(r *orbitRigImpl) {
		r.target = target
	}
}

// WithAnimatingGate sets the check that suspends the rig during focus transitions.
//
// Parameters:
//   - g: returns true while animating
//
// Returns:
//   - OrbitRigBuilderOption: option function to apply
func WithAnimatingGate(g input.Gate) OrbitRigBuilderOption {
	return func(r *orbitRigImpl) {
		r.animating = g
	}
}
