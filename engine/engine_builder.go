package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-viz/engine/config"
	"github.com/Carmen-Shannon/oxy-viz/engine/interaction"
	"github.com/Carmen-Shannon/oxy-viz/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viz/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfilerInterval sets how often profiling stats are logged.
//
// Parameters:
//   - interval: logging interval (default 1 second)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfilerInterval(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = profiler.NewProfiler(interval)
	}
}

// WithTickRate sets the frame rate the message loop steps the engine at.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target frames per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.tickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithWindow sets the host window the engine runs in.
//
// Parameters:
//   - w: a configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithTuningWatcher forwards every tuning reload from w to all contexts. The engine closes
// w when Run returns.
//
// Parameters:
//   - w: a config watcher
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTuningWatcher(w *config.Watcher) EngineBuilderOption {
	return func(e *engine) {
		e.watcher = w
	}
}

// WithContext registers an interaction context at the given z-index key during engine
// construction. It is attached to the window once one is set.
//
// Parameters:
//   - key: the z-index determining tick order (lower ticks first)
//   - c: the context to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithContext(key int, c interaction.Context) EngineBuilderOption {
	return func(e *engine) {
		e.contexts[key] = c
	}
}
