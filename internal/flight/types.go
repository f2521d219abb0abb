package flight

import "math"

// Default physical and run parameters. Gravity and air density model a
// sea-level launch site; overriding Environment covers other sites.
const (
	DefaultGravity    = 9.81  // m/s^2
	DefaultAirDensity = 1.225 // kg/m^3
	DefaultDt         = 0.05  // s
	DefaultCutoff     = 300.0 // s, hard stop for runs that never land
)

// State is the kinematic snapshot after one integration step. One State is
// recorded per step; the ordered slice of states is the run's sample series.
type State struct {
	Time         float64 `json:"time"`         // s, since ignition
	Altitude     float64 `json:"altitude"`     // m, above ground level, never negative
	Velocity     float64 `json:"velocity"`     // m/s, positive up
	Acceleration float64 `json:"acceleration"` // m/s^2, net, positive up
}

// VehicleSpec describes the airframe without the motor.
type VehicleSpec struct {
	DryMass         float64 // kg, airframe without motor or payload
	Diameter        float64 // m, airframe diameter
	DragCoefficient float64 // dimensionless
	PayloadMass     float64 // kg
}

// Area returns the frontal reference area derived from the diameter.
func (v VehicleSpec) Area() float64 {
	r := v.Diameter / 2
	return math.Pi * r * r
}

// MotorSpec describes a motor and its thrust profile. Mass is treated as
// constant over the burn; propellant consumption is not modeled.
type MotorSpec struct {
	Name         string
	TotalImpulse float64 // N*s
	BurnTime     float64 // s
	AvgThrust    float64 // N
	Mass         float64 // kg, loaded
	Curve        ThrustCurve
}

// Environment holds the ambient constants the force model reads.
type Environment struct {
	Gravity    float64 // m/s^2, positive down
	AirDensity float64 // kg/m^3
}

// DefaultEnvironment returns sea-level conditions.
func DefaultEnvironment() Environment {
	return Environment{
		Gravity:    DefaultGravity,
		AirDensity: DefaultAirDensity,
	}
}

// RunConfig holds the per-run integration parameters.
type RunConfig struct {
	Dt          float64 // s, fixed timestep
	Cutoff      float64 // s, abandon the run past this simulated time
	Environment Environment
}

// DefaultRunConfig returns the standard run parameters.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Dt:          DefaultDt,
		Cutoff:      DefaultCutoff,
		Environment: DefaultEnvironment(),
	}
}

// Outcome tags how a run ended.
type Outcome string

const (
	// OutcomeLanded means the vehicle lifted off and returned to the ground.
	OutcomeLanded Outcome = "landed"
	// OutcomeTimeout means simulated time passed the safety cutoff first.
	OutcomeTimeout Outcome = "timeout"
	// OutcomeAborted means the run's context was canceled mid-flight.
	OutcomeAborted Outcome = "aborted"
)

// Firing records one scripted event that fired and the step time it fired at.
type Firing struct {
	Time float64 `json:"time"`
	Type string  `json:"type"`
}

// Result holds everything a finished run produced.
type Result struct {
	Samples  []State
	Firings  []Firing
	Outcome  Outcome
	Duration float64 // s, simulated time of the final sample
	Metrics  map[string]float64
}
