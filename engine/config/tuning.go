package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-viz/engine/camera"
	"github.com/Carmen-Shannon/oxy-viz/engine/focus"
	"github.com/Carmen-Shannon/oxy-viz/engine/input"
	"github.com/Carmen-Shannon/oxy-viz/engine/rig"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTuning is wrapped by every validation failure.
var ErrInvalidTuning = errors.New("invalid tuning")

// DefaultCullMargin is the bounding sphere radius used for entity culling.
const DefaultCullMargin float32 = 1

// Tuning is the on-disk form of Settings. Every field is optional; nil fields keep the
// value they are applied over.
type Tuning struct {
	FrameIndependent *bool    `yaml:"frame_independent"`
	ReferenceFPS     *float32 `yaml:"reference_fps"`
	ZoomSpeed        *float32 `yaml:"zoom_speed"`
	CullMargin       *float32 `yaml:"cull_margin"`

	Orbit   OrbitTuning   `yaml:"orbit"`
	Pan     PanTuning     `yaml:"pan"`
	Focus   FocusTuning   `yaml:"focus"`
	Cluster ClusterTuning `yaml:"cluster"`
}

// LimitsTuning overrides zoom and distance bounds.
type LimitsTuning struct {
	MinDistance *float32 `yaml:"min_distance"`
	MaxDistance *float32 `yaml:"max_distance"`
	MinZoom     *float32 `yaml:"min_zoom"`
	MaxZoom     *float32 `yaml:"max_zoom"`
}

type OrbitTuning struct {
	RotateSpeed *float32     `yaml:"rotate_speed"`
	Damping     *float32     `yaml:"damping"`
	MinPolar    *float32     `yaml:"min_polar"`
	MaxPolar    *float32     `yaml:"max_polar"`
	Limits      LimitsTuning `yaml:"limits"`
}

type PanTuning struct {
	Radius       *float32     `yaml:"radius"`
	Damping      *float32     `yaml:"damping"`
	ZoomDecay    *float32     `yaml:"zoom_decay"`
	KeyPanPixels *float32     `yaml:"key_pan_pixels"`
	Limits       LimitsTuning `yaml:"limits"`
}

type FocusTuning struct {
	LerpSpeed *float32    `yaml:"lerp_speed"`
	Epsilon   *float32    `yaml:"epsilon"`
	Offset    *[3]float32 `yaml:"offset"`
}

type ClusterTuning struct {
	LerpSpeed            *float32 `yaml:"lerp_speed"`
	FrameFactor          *float32 `yaml:"frame_factor"`
	MinFrameDistance     *float32 `yaml:"min_frame_distance"`
	IsoFactor            *float32 `yaml:"iso_factor"`
	WheelCancelThreshold *float32 `yaml:"wheel_cancel_threshold"`
}

// Settings is the resolved tuning for one interaction context.
type Settings struct {
	ZoomSpeed  float32
	CullMargin float32

	Orbit rig.OrbitSettings
	Pan   rig.PanSettings

	FocusLerpSpeed float32
	FocusEpsilon   float32
	FocusOffset    mgl32.Vec3

	ClusterLerpSpeed     float32
	FrameFactor          float32
	MinFrameDistance     float32
	IsoFactor            float32
	WheelCancelThreshold float32
}

// Defaults returns the stock settings.
func Defaults() Settings {
	return Settings{
		ZoomSpeed:            input.DefaultZoomSpeed,
		CullMargin:           DefaultCullMargin,
		Orbit:                rig.DefaultOrbitSettings(),
		Pan:                  rig.DefaultPanSettings(),
		FocusLerpSpeed:       focus.DefaultLerpSpeed,
		FocusEpsilon:         focus.DefaultEpsilon,
		FocusOffset:          focus.DefaultOffset,
		ClusterLerpSpeed:     focus.DefaultLerpSpeed,
		FrameFactor:          focus.DefaultFrameFactor,
		MinFrameDistance:     focus.DefaultMinFrameDistance,
		IsoFactor:            focus.DefaultIsoFactor,
		WheelCancelThreshold: focus.DefaultWheelCancelThreshold,
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (l LimitsTuning) apply(dst *camera.ZoomLimits) {
	set(&dst.MinDistance, l.MinDistance)
	set(&dst.MaxDistance, l.MaxDistance)
	set(&dst.MinZoom, l.MinZoom)
	set(&dst.MaxZoom, l.MaxZoom)
}

// Apply overlays the non-nil fields of t onto base.
//
// Parameters:
//   - base: the settings to start from
//
// Returns:
//   - Settings: the merged settings
func (t Tuning) Apply(base Settings) Settings {
	s := base
	if t.FrameIndependent != nil {
		s.Orbit.FrameIndependent = *t.FrameIndependent
		s.Pan.FrameIndependent = *t.FrameIndependent
	}
	if t.ReferenceFPS != nil {
		s.Orbit.ReferenceFPS = *t.ReferenceFPS
		s.Pan.ReferenceFPS = *t.ReferenceFPS
	}
	set(&s.ZoomSpeed, t.ZoomSpeed)
	set(&s.CullMargin, t.CullMargin)

	set(&s.Orbit.RotateSpeed, t.Orbit.RotateSpeed)
	set(&s.Orbit.Damping, t.Orbit.Damping)
	set(&s.Orbit.MinPolar, t.Orbit.MinPolar)
	set(&s.Orbit.MaxPolar, t.Orbit.MaxPolar)
	t.Orbit.Limits.apply(&s.Orbit.Limits)

	set(&s.Pan.Radius, t.Pan.Radius)
	set(&s.Pan.Damping, t.Pan.Damping)
	set(&s.Pan.ZoomDecay, t.Pan.ZoomDecay)
	set(&s.Pan.KeyPanPixels, t.Pan.KeyPanPixels)
	t.Pan.Limits.apply(&s.Pan.Limits)

	set(&s.FocusLerpSpeed, t.Focus.LerpSpeed)
	set(&s.FocusEpsilon, t.Focus.Epsilon)
	if t.Focus.Offset != nil {
		s.FocusOffset = mgl32.Vec3(*t.Focus.Offset)
	}

	set(&s.ClusterLerpSpeed, t.Cluster.LerpSpeed)
	set(&s.FrameFactor, t.Cluster.FrameFactor)
	set(&s.MinFrameDistance, t.Cluster.MinFrameDistance)
	set(&s.IsoFactor, t.Cluster.IsoFactor)
	set(&s.WheelCancelThreshold, t.Cluster.WheelCancelThreshold)
	return s
}

// Validate rejects settings the rigs and controllers cannot run with.
//
// Returns:
//   - error: wraps ErrInvalidTuning, or nil
func (s Settings) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidTuning}, args...)...))
		}
	}

	o := s.Orbit
	check(o.MinPolar > 0 && o.MaxPolar < math32.Pi && o.MinPolar <= o.MaxPolar,
		"orbit polar limits [%g, %g] must lie inside (0, pi)", o.MinPolar, o.MaxPolar)
	check(o.Damping >= 0 && o.Damping < 1, "orbit damping %g must be in [0, 1)", o.Damping)
	check(o.ReferenceFPS > 0, "reference fps %g must be positive", o.ReferenceFPS)
	checkLimits(check, "orbit", o.Limits)

	p := s.Pan
	check(p.Damping > 0 && p.Damping <= 1, "pan damping %g must be in (0, 1]", p.Damping)
	check(p.ZoomDecay >= 0 && p.ZoomDecay < 1, "pan zoom decay %g must be in [0, 1)", p.ZoomDecay)
	check(p.Radius > 0, "pan radius %g must be positive", p.Radius)
	check(p.KeyPanPixels >= 0, "key pan pixels %g must not be negative", p.KeyPanPixels)
	checkLimits(check, "pan", p.Limits)

	check(s.ZoomSpeed > 0, "zoom speed %g must be positive", s.ZoomSpeed)
	check(s.CullMargin >= 0, "cull margin %g must not be negative", s.CullMargin)
	check(s.FocusLerpSpeed > 0, "focus lerp speed %g must be positive", s.FocusLerpSpeed)
	check(s.FocusEpsilon >= 0, "focus epsilon %g must not be negative", s.FocusEpsilon)
	check(s.ClusterLerpSpeed > 0, "cluster lerp speed %g must be positive", s.ClusterLerpSpeed)
	check(s.FrameFactor > 0, "frame factor %g must be positive", s.FrameFactor)
	check(s.IsoFactor > 0, "iso factor %g must be positive", s.IsoFactor)
	check(s.WheelCancelThreshold >= 0, "wheel cancel threshold %g must not be negative", s.WheelCancelThreshold)
	return errors.Join(errs...)
}

func checkLimits(check func(bool, string, ...any), name string, l camera.ZoomLimits) {
	check(l.MinDistance > 0 && l.MinDistance <= l.MaxDistance,
		"%s distance bounds [%g, %g] are inverted or non-positive", name, l.MinDistance, l.MaxDistance)
	check(l.MinZoom > 0 && l.MinZoom <= l.MaxZoom,
		"%s zoom bounds [%g, %g] are inverted or non-positive", name, l.MinZoom, l.MaxZoom)
}

// Parse decodes a YAML tuning document over Defaults and validates the result.
// Unknown keys are rejected.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Settings: the resolved settings
//   - error: a decode or validation error
func Parse(data []byte) (Settings, error) {
	s, err := parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("config: %w", err)
	}
	return s, nil
}

func parse(data []byte) (Settings, error) {
	var t Tuning
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("decode: %w", err)
	}
	s := t.Apply(Defaults())
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Load reads and parses the tuning file at path.
//
// Parameters:
//   - path: the YAML file
//
// Returns:
//   - Settings: the resolved settings
//   - error: a read, decode or validation error
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	s, err := parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}
