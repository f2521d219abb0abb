package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/rocketops/internal/flight"
)

func TestEnergyPeak(t *testing.T) {
	m := NewEnergy(9.81)

	if m.Value() != 0 {
		t.Error("expected zero energy before any samples")
	}

	// Burnout sample dominates: 0.5*20^2 + 9.81*30 = 494.3 J/kg.
	m.Observe(flight.State{Altitude: 30, Velocity: 20})
	m.Observe(flight.State{Altitude: 45, Velocity: 5})
	m.Observe(flight.State{Altitude: 46, Velocity: 0})

	want := 0.5*20*20 + 9.81*30
	if math.Abs(m.Value()-want) > 1e-9 {
		t.Errorf("expected peak energy %f, got %f", want, m.Value())
	}
}

func TestEnergyReset(t *testing.T) {
	m := NewEnergy(9.81)

	m.Observe(flight.State{Altitude: 10, Velocity: 10})
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}
