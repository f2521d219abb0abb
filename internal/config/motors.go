package config

import (
	"sort"

	"github.com/san-kum/rocketops/internal/flight"
)

// Motors holds the built-in motor presets keyed by designation. Thrust curves
// come from the published manufacturer profiles, simplified to the ignition
// peak and a linear tail-off.
var Motors = map[string]flight.MotorSpec{
	"Estes D12": {
		Name:         "Estes D12",
		TotalImpulse: 12.0,
		BurnTime:     1.6,
		AvgThrust:    7.5,
		Mass:         0.024,
		Curve: flight.ThrustCurve{
			{Time: 0, Thrust: 12},
			{Time: 1.6, Thrust: 0},
		},
	},
	"Estes E9": {
		Name:         "Estes E9",
		TotalImpulse: 9.0,
		BurnTime:     1.2,
		AvgThrust:    7.5,
		Mass:         0.021,
		Curve: flight.ThrustCurve{
			{Time: 0, Thrust: 9},
			{Time: 1.2, Thrust: 0},
		},
	},
}

func GetMotor(name string) *flight.MotorSpec {
	motor, ok := Motors[name]
	if !ok {
		return nil
	}
	return &motor
}

func ListMotors() []string {
	names := make([]string, 0, len(Motors))
	for name := range Motors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
