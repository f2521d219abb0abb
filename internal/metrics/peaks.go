package metrics

import "github.com/san-kum/rocketops/internal/flight"

type MaxVelocity struct {
	name    string
	max     float64
	samples int
}

func NewMaxVelocity() *MaxVelocity {
	return &MaxVelocity{name: "max_velocity"}
}

func (m *MaxVelocity) Name() string { return m.name }

func (m *MaxVelocity) Observe(s flight.State) {
	if m.samples == 0 || s.Velocity > m.max {
		m.max = s.Velocity
	}
	m.samples++
}

func (m *MaxVelocity) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.max
}

func (m *MaxVelocity) Reset() {
	m.max = 0
	m.samples = 0
}

type MaxAcceleration struct {
	name    string
	max     float64
	samples int
}

func NewMaxAcceleration() *MaxAcceleration {
	return &MaxAcceleration{name: "max_acceleration"}
}

func (m *MaxAcceleration) Name() string { return m.name }

func (m *MaxAcceleration) Observe(s flight.State) {
	if m.samples == 0 || s.Acceleration > m.max {
		m.max = s.Acceleration
	}
	m.samples++
}

func (m *MaxAcceleration) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.max
}

func (m *MaxAcceleration) Reset() {
	m.max = 0
	m.samples = 0
}
