package rig

import (
	"github.com/Carmen-Shannon/oxy-viz/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// PanRigBuilderOption is a functional option for configuring a PanRig.
type PanRigBuilderOption func(*panRigImpl)

// WithPanSettings replaces the default tuning.
//
// Parameters:
//   - s: the tuning
//
// Returns:
//   - PanRigBuilderOption: option function to apply
func WithPanSettings(s PanSettings) PanRigBuilderOption {
	return func(r *panRigImpl) {
		if s.ReferenceFPS <= 0 {
			s.ReferenceFPS = DefaultReferenceFPS
		}
		r.settings = s
	}
}

// WithPanTarget sets the initial look-at target.
//
// Parameters:
//   - target: the ground point to look at
//
// Returns:
//   - PanRigBuilderOption: option function to apply
func WithPanTarget(target mgl32.Vec3) PanRigBuilderOption {
	return func(r *panRigImpl) {
		r.target = target
	}
}

// WithInputGate sets the check that suspends drag and key panning.
//
// Parameters:
//   - g: returns true while blocked
//
// Returns:
//   - PanRigBuilderOption: option function to apply
func WithInputGate(g input.Gate) PanRigBuilderOption {
	return func(r *panRigImpl) {
		r.inputGate = g
	}
}
