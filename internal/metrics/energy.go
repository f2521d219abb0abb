package metrics

import "github.com/san-kum/rocketops/internal/flight"

// Energy tracks the peak specific mechanical energy (J/kg) seen over a
// flight: kinetic plus gravitational potential per unit mass. On a drag-free
// coast the figure would hold constant after burnout, so the gap between the
// peak and the value implied by apogee alone shows what drag cost the
// airframe.
type Energy struct {
	name    string
	gravity float64
	max     float64
	samples int
}

// NewEnergy builds the metric for a given gravitational acceleration, which
// must match the environment the samples were flown in.
func NewEnergy(gravity float64) *Energy {
	return &Energy{name: "peak_energy", gravity: gravity}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s flight.State) {
	ke := 0.5 * s.Velocity * s.Velocity
	pe := e.gravity * s.Altitude
	if total := ke + pe; e.samples == 0 || total > e.max {
		e.max = total
	}
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.max
}

func (e *Energy) Reset() {
	e.max = 0
	e.samples = 0
}
