package interaction

import (
	"github.com/Carmen-Shannon/oxy-viz/engine/config"
	"github.com/Carmen-Shannon/oxy-viz/engine/cull"
	"github.com/Carmen-Shannon/oxy-viz/engine/selection"
)

// ContextBuilderOption is a functional option for configuring a Context.
type ContextBuilderOption func(*contextImpl)

// WithSettings sets the initial tuning.
//
// Parameters:
//   - s: validated settings
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithSettings(s config.Settings) ContextBuilderOption {
	return func(c *contextImpl) {
		c.settings = s
	}
}

// WithSettingsUpdates sets a channel of reloaded tunings, typically a config.Watcher's
// Updates. The latest value is applied at the start of each tick.
//
// Parameters:
//   - updates: the channel
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithSettingsUpdates(updates <-chan config.Settings) ContextBuilderOption {
	return func(c *contextImpl) {
		c.updates = updates
	}
}

// WithRigMode sets the initially mounted rig.
//
// Parameters:
//   - m: the mode (default RigOrbit)
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithRigMode(m RigMode) ContextBuilderOption {
	return func(c *contextImpl) {
		c.mode = m
	}
}

// WithPositions shares an existing position table with the data layer.
//
// Parameters:
//   - p: the table
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithPositions(p *PositionMap) ContextBuilderOption {
	return func(c *contextImpl) {
		c.positions = p
	}
}

// WithLayer sets the layer the selection tooltip and panel mount on.
//
// Parameters:
//   - l: the layer
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithLayer(l selection.Layer) ContextBuilderOption {
	return func(c *contextImpl) {
		c.layer = l
	}
}

// WithPartitioner sets the batch culler.
//
// Parameters:
//   - p: the partitioner
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithPartitioner(p cull.Partitioner) ContextBuilderOption {
	return func(c *contextImpl) {
		c.parts = p
	}
}

// WithFocusOnSelect makes selection also focus the selected entity.
//
// Parameters:
//   - enabled: true to focus on select
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithFocusOnSelect(enabled bool) ContextBuilderOption {
	return func(c *contextImpl) {
		c.focusOnSelect = enabled
	}
}

// WithDebug enables debug logging for the context and its controllers.
//
// Parameters:
//   - debug: true to log
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithDebug(debug bool) ContextBuilderOption {
	return func(c *contextImpl) {
		c.debug = debug
	}
}
