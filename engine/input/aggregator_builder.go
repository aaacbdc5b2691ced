package input

// AggregatorBuilderOption is a functional option for configuring an Aggregator.
type AggregatorBuilderOption func(*aggregatorImpl)

// WithZoomSpeed sets the factor applied to raw wheel DeltaY.
//
// Parameters:
//   - speed: zoom speed multiplier
//
// Returns:
//   - AggregatorBuilderOption: option function to apply
func WithZoomSpeed(speed float32) AggregatorBuilderOption {
	return func(a *aggregatorImpl) {
		a.zoomSpeed = speed
	}
}

// WithKeyFilter selects which key codes are tracked as held keys.
//
// Parameters:
//   - filter: returns true for tracked key codes
//
// Returns:
//   - AggregatorBuilderOption: option function to apply
func WithKeyFilter(filter func(code uint32) bool) AggregatorBuilderOption {
	return func(a *aggregatorImpl) {
		if filter != nil {
			a.keyFilter = filter
		}
	}
}

// WithPointerGate installs the initial pointer gate.
//
// Parameters:
//   - g: returns true while pointer input must be ignored
//
// Returns:
//   - AggregatorBuilderOption: option function to apply
func WithPointerGate(g Gate) AggregatorBuilderOption {
	return func(a *aggregatorImpl) {
		a.pointerGate = g
	}
}

// WithWheelGate installs the initial wheel gate.
//
// Parameters:
//   - g: returns true while wheel input must be ignored
//
// Returns:
//   - AggregatorBuilderOption: option function to apply
func WithWheelGate(g Gate) AggregatorBuilderOption {
	return func(a *aggregatorImpl) {
		a.wheelGate = g
	}
}
