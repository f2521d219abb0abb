package flight

// Integrator advances the vehicle state one fixed timestep at a time using
// explicit Euler integration. Mass and drag constants are folded in at
// construction; stepping allocates nothing.
type Integrator struct {
	curve ThrustCurve
	mass  float64 // kg, dry + motor + payload, constant over the run
	cdA   float64 // m^2, drag coefficient times frontal area
	env   Environment
	dt    float64
}

// NewIntegrator builds an integrator for the given vehicle, motor, and run
// parameters.
func NewIntegrator(vehicle VehicleSpec, motor MotorSpec, cfg RunConfig) *Integrator {
	return &Integrator{
		curve: motor.Curve,
		mass:  vehicle.DryMass + motor.Mass + vehicle.PayloadMass,
		cdA:   vehicle.DragCoefficient * vehicle.Area(),
		env:   cfg.Environment,
		dt:    cfg.Dt,
	}
}

// Mass returns the constant effective mass the integrator flies with.
func (in *Integrator) Mass() float64 { return in.mass }

// dragSign gives the direction drag opposes. At rest it points drag downward,
// the launch-pad convention the force model is calibrated against.
func dragSign(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}

// Step advances one timestep from s. Thrust and drag are evaluated at s, the
// velocity update feeds the altitude update, and altitude is clamped at
// ground level. The clamp leaves velocity untouched.
func (in *Integrator) Step(s State) State {
	thrust := in.curve.At(s.Time)
	drag := 0.5 * in.env.AirDensity * s.Velocity * s.Velocity * in.cdA * dragSign(s.Velocity)
	accel := (thrust - drag - in.mass*in.env.Gravity) / in.mass

	v := s.Velocity + accel*in.dt
	h := s.Altitude + v*in.dt
	if h < 0 {
		h = 0
	}

	return State{
		Time:         s.Time + in.dt,
		Altitude:     h,
		Velocity:     v,
		Acceleration: accel,
	}
}
