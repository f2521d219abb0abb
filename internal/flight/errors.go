package flight

import "errors"

// Validation errors returned by [Simulator.Run] before any stepping happens.
// Each names the offending field so callers can report it directly.
var (
	// ErrDryMass indicates a zero or negative airframe dry mass.
	ErrDryMass = errors.New("flight: dry mass must be positive")

	// ErrDiameter indicates a zero or negative airframe diameter.
	ErrDiameter = errors.New("flight: diameter must be positive")

	// ErrPayloadMass indicates a negative payload mass.
	ErrPayloadMass = errors.New("flight: payload mass must not be negative")

	// ErrMotorMass indicates a negative motor mass.
	ErrMotorMass = errors.New("flight: motor mass must not be negative")

	// ErrTimestep indicates a zero or negative integration timestep.
	ErrTimestep = errors.New("flight: timestep must be positive")

	// ErrCutoff indicates a zero or negative safety cutoff.
	ErrCutoff = errors.New("flight: safety cutoff must be positive")
)
