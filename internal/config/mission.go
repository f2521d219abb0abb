package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rocketops/internal/flight"
)

const (
	DefaultDryMass         = 0.5
	DefaultDiameter        = 0.05
	DefaultDragCoefficient = 0.75
	DefaultPayloadMass     = 0.0
	DefaultMotorName       = "Estes D12"
)

// Mission is the on-disk description of one planned flight: airframe, motor,
// and the scripted event sequence.
type Mission struct {
	Name    string        `yaml:"name"`
	Vehicle VehicleConfig `yaml:"vehicle"`
	Motor   MotorConfig   `yaml:"motor"`
	Events  []EventConfig `yaml:"events,omitempty"`
}

type VehicleConfig struct {
	DryMass         float64 `yaml:"dry_mass"`
	Diameter        float64 `yaml:"diameter"`
	DragCoefficient float64 `yaml:"drag_coefficient"`
	PayloadMass     float64 `yaml:"payload_mass"`
}

// MotorConfig either names a preset or spells out a custom motor. A non-empty
// Preset wins; custom motors get the standard two-point thrust ramp.
type MotorConfig struct {
	Preset       string  `yaml:"preset,omitempty"`
	TotalImpulse float64 `yaml:"total_impulse,omitempty"`
	BurnTime     float64 `yaml:"burn_time,omitempty"`
	AvgThrust    float64 `yaml:"avg_thrust,omitempty"`
	Mass         float64 `yaml:"mass,omitempty"`
}

type EventConfig struct {
	Time      float64          `yaml:"time"`
	Type      string           `yaml:"type"`
	Condition *ConditionConfig `yaml:"condition,omitempty"`
}

// ConditionConfig carries the recognized constraint keys. Unknown keys in a
// mission file decode to nothing here, so they are dropped rather than
// rejected.
type ConditionConfig struct {
	AltitudeGT *float64 `yaml:"altitude_gt,omitempty"`
	AltitudeLT *float64 `yaml:"altitude_lt,omitempty"`
	TimeGT     *float64 `yaml:"time_gt,omitempty"`
	TimeLT     *float64 `yaml:"time_lt,omitempty"`
}

func DefaultMission() *Mission {
	return &Mission{
		Name: "Test Flight",
		Vehicle: VehicleConfig{
			DryMass:         DefaultDryMass,
			Diameter:        DefaultDiameter,
			DragCoefficient: DefaultDragCoefficient,
			PayloadMass:     DefaultPayloadMass,
		},
		Motor: MotorConfig{
			Preset: DefaultMotorName,
		},
	}
}

func Load(path string) (*Mission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := DefaultMission()
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

func Save(path string, m *Mission) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToVehicle converts the airframe section to simulation input.
func (m *Mission) ToVehicle() flight.VehicleSpec {
	return flight.VehicleSpec{
		DryMass:         m.Vehicle.DryMass,
		Diameter:        m.Vehicle.Diameter,
		DragCoefficient: m.Vehicle.DragCoefficient,
		PayloadMass:     m.Vehicle.PayloadMass,
	}
}

// ToMotor resolves the motor section, either by preset name or from the
// inline custom fields.
func (m *Mission) ToMotor() (flight.MotorSpec, error) {
	if m.Motor.Preset != "" {
		motor := GetMotor(m.Motor.Preset)
		if motor == nil {
			return flight.MotorSpec{}, fmt.Errorf("unknown motor preset %q (have: %v)", m.Motor.Preset, ListMotors())
		}
		return *motor, nil
	}
	return flight.MotorSpec{
		Name:         "Custom",
		TotalImpulse: m.Motor.TotalImpulse,
		BurnTime:     m.Motor.BurnTime,
		AvgThrust:    m.Motor.AvgThrust,
		Mass:         m.Motor.Mass,
		Curve:        flight.TwoPointCurve(m.Motor.AvgThrust, m.Motor.BurnTime),
	}, nil
}

// ToEvents converts the event script. Constraint order within a condition is
// fixed so runs stay deterministic regardless of file formatting.
func (m *Mission) ToEvents() []flight.Event {
	if len(m.Events) == 0 {
		return nil
	}
	events := make([]flight.Event, 0, len(m.Events))
	for _, e := range m.Events {
		ev := flight.Event{
			FireTime: e.Time,
			Type:     e.Type,
		}
		if c := e.Condition; c != nil {
			if c.AltitudeGT != nil {
				ev.Condition = append(ev.Condition, flight.Constraint{Kind: flight.AltitudeAbove, Threshold: *c.AltitudeGT})
			}
			if c.AltitudeLT != nil {
				ev.Condition = append(ev.Condition, flight.Constraint{Kind: flight.AltitudeBelow, Threshold: *c.AltitudeLT})
			}
			if c.TimeGT != nil {
				ev.Condition = append(ev.Condition, flight.Constraint{Kind: flight.TimeAfter, Threshold: *c.TimeGT})
			}
			if c.TimeLT != nil {
				ev.Condition = append(ev.Condition, flight.Constraint{Kind: flight.TimeBefore, Threshold: *c.TimeLT})
			}
		}
		events = append(events, ev)
	}
	return events
}
