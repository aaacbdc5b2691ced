// Package focus moves the camera toward entities and regions. Every transition is an
// Animation advanced by the frame tick or by an explicit caller.
package focus

import (
	"math"
	"time"

	"github.com/Carmen-Shannon/oxy-viz/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Easing maps normalized time in [0, 1] to normalized progress.
type Easing func(t float32) float32

// Linear is the identity easing.
func Linear(t float32) float32 { return t }

// EaseInQuad accelerates from zero velocity.
func EaseInQuad(t float32) float32 { return t * t }

// EaseOutQuad decelerates to zero velocity.
func EaseOutQuad(t float32) float32 { return t * (2 - t) }

// EaseInOutQuad accelerates then decelerates.
func EaseInOutQuad(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EaseInOutCubic is the symmetric cubic curve used by the manual focus tween.
func EaseInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return (t-1)*u*u + 1
}

// Easings is the named easing table.
var Easings = map[string]Easing{
	"linear":         Linear,
	"easeInQuad":     EaseInQuad,
	"easeOutQuad":    EaseOutQuad,
	"easeInOut":      EaseInOutQuad,
	"easeInOutCubic": EaseInOutCubic,
}

type driverKind int

const (
	driverEased driverKind = iota
	driverExponential
)

// Animation interpolates a point from start to goal. Time is kept as a Duration at
// microsecond resolution so repeated fixed steps sum exactly. Two drivers share it:
//   - eased: progress = easing(elapsed / duration), terminal once elapsed >= duration
//   - exponential: each step covers min(dt * rate, 1) of the remaining gap, terminal
//     once the gap falls below epsilon
//
// The terminal step always lands exactly on the goal.
type Animation struct {
	driver driverKind

	start   mgl32.Vec3
	goal    mgl32.Vec3
	current mgl32.Vec3

	elapsed  time.Duration
	duration time.Duration
	easing   Easing

	rate    float32
	epsilon float32

	done bool
}

// NewEasedAnimation creates a fixed-duration animation. A non-positive duration
// completes on the first Advance.
//
// Parameters:
//   - start: starting point
//   - goal: end point
//   - duration: length in seconds
//   - easing: progress curve; nil means Linear
//
// Returns:
//   - *Animation: the animation
func NewEasedAnimation(start, goal mgl32.Vec3, duration float32, easing Easing) *Animation {
	if easing == nil {
		easing = Linear
	}
	return &Animation{
		driver:   driverEased,
		start:    start,
		goal:     goal,
		current:  start,
		duration: seconds(duration),
		easing:   easing,
	}
}

// NewExponentialAnimation creates a rate-based animation that converges on goal.
//
// Parameters:
//   - start: starting point
//   - goal: end point
//   - rate: convergence speed per second
//   - epsilon: arrival distance
//
// Returns:
//   - *Animation: the animation
func NewExponentialAnimation(start, goal mgl32.Vec3, rate, epsilon float32) *Animation {
	a := &Animation{
		driver:  driverExponential,
		start:   start,
		goal:    goal,
		current: start,
		rate:    rate,
		epsilon: epsilon,
	}
	if common.Distance(start, goal) < epsilon {
		a.current = goal
		a.done = true
	}
	return a
}

// Advance steps the animation by dt seconds.
//
// Parameters:
//   - dt: elapsed seconds since the previous step
//
// Returns:
//   - mgl32.Vec3: the new current point
func (a *Animation) Advance(dt float32) mgl32.Vec3 {
	return a.AdvanceDuration(seconds(dt))
}

// AdvanceDuration steps the animation by d.
//
// Parameters:
//   - d: elapsed time since the previous step
//
// Returns:
//   - mgl32.Vec3: the new current point
func (a *Animation) AdvanceDuration(d time.Duration) mgl32.Vec3 {
	if a.done {
		return a.current
	}
	d = max(d, 0)
	a.elapsed += d
	switch a.driver {
	case driverExponential:
		f := common.LerpFactor(float32(d.Seconds()), a.rate)
		a.current = common.LerpVec3(a.current, a.goal, f)
		if f >= 1 || common.Distance(a.current, a.goal) < a.epsilon {
			a.finish()
		}
	default:
		if a.elapsed >= a.duration {
			a.finish()
			break
		}
		t := a.easing(float32(float64(a.elapsed) / float64(a.duration)))
		a.current = common.LerpVec3(a.start, a.goal, t)
	}
	return a.current
}

// Done reports whether the animation reached its goal.
func (a *Animation) Done() bool {
	return a.done
}

// Current returns the current point.
func (a *Animation) Current() mgl32.Vec3 {
	return a.current
}

// Goal returns the end point.
func (a *Animation) Goal() mgl32.Vec3 {
	return a.goal
}

// Start returns the starting point.
func (a *Animation) Start() mgl32.Vec3 {
	return a.start
}

// Elapsed returns the accumulated time in seconds.
func (a *Animation) Elapsed() float32 {
	return float32(a.elapsed.Seconds())
}

// seconds converts float seconds to a Duration rounded to the microsecond, which absorbs
// the float32 error in values like 0.01.
func seconds(s float32) time.Duration {
	return time.Duration(math.Round(float64(s)*1e6)) * time.Microsecond
}

func (a *Animation) finish() {
	a.current = a.goal
	a.done = true
}
