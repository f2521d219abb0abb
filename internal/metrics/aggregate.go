package metrics

import "github.com/san-kum/rocketops/internal/flight"

type FlightTime struct {
	name string
	last float64
}

func NewFlightTime() *FlightTime {
	return &FlightTime{name: "flight_time"}
}

func (f *FlightTime) Name() string { return f.name }

func (f *FlightTime) Observe(s flight.State) {
	f.last = s.Time
}

func (f *FlightTime) Value() float64 { return f.last }

func (f *FlightTime) Reset() { f.last = 0 }

type AverageAcceleration struct {
	name    string
	total   float64
	samples int
}

func NewAverageAcceleration() *AverageAcceleration {
	return &AverageAcceleration{name: "avg_acceleration"}
}

func (a *AverageAcceleration) Name() string { return a.name }

func (a *AverageAcceleration) Observe(s flight.State) {
	a.total += s.Acceleration
	a.samples++
}

func (a *AverageAcceleration) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.total / float64(a.samples)
}

func (a *AverageAcceleration) Reset() {
	a.total = 0
	a.samples = 0
}
