package metrics

import "github.com/san-kum/rocketops/internal/flight"

// Standard returns a fresh instance of every built-in metric.
func Standard() []flight.Metric {
	return []flight.Metric{
		NewApogee(),
		NewMaxVelocity(),
		NewMaxAcceleration(),
		NewFlightTime(),
		NewAverageAcceleration(),
		NewEnergy(flight.DefaultGravity),
	}
}

// Summarize runs the standard metrics over an already-recorded sample series,
// for analyzing stored flights without re-running them.
func Summarize(samples []flight.State) map[string]float64 {
	ms := Standard()
	for _, s := range samples {
		for _, m := range ms {
			m.Observe(s)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
