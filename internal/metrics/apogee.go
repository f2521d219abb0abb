package metrics

import "github.com/san-kum/rocketops/internal/flight"

type Apogee struct {
	name    string
	max     float64
	samples int
}

func NewApogee() *Apogee {
	return &Apogee{name: "apogee"}
}

func (a *Apogee) Name() string { return a.name }

func (a *Apogee) Observe(s flight.State) {
	if a.samples == 0 || s.Altitude > a.max {
		a.max = s.Altitude
	}
	a.samples++
}

func (a *Apogee) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.max
}

func (a *Apogee) Reset() {
	a.max = 0
	a.samples = 0
}
