package flight

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*VehicleSpec, *MotorSpec, *RunConfig)
		want   error
	}{
		{"zero dry mass", func(v *VehicleSpec, _ *MotorSpec, _ *RunConfig) { v.DryMass = 0 }, ErrDryMass},
		{"negative dry mass", func(v *VehicleSpec, _ *MotorSpec, _ *RunConfig) { v.DryMass = -1 }, ErrDryMass},
		{"zero diameter", func(v *VehicleSpec, _ *MotorSpec, _ *RunConfig) { v.Diameter = 0 }, ErrDiameter},
		{"negative payload", func(v *VehicleSpec, _ *MotorSpec, _ *RunConfig) { v.PayloadMass = -0.1 }, ErrPayloadMass},
		{"negative motor mass", func(_ *VehicleSpec, m *MotorSpec, _ *RunConfig) { m.Mass = -0.01 }, ErrMotorMass},
		{"zero dt", func(_ *VehicleSpec, _ *MotorSpec, c *RunConfig) { c.Dt = 0 }, ErrTimestep},
		{"negative cutoff", func(_ *VehicleSpec, _ *MotorSpec, c *RunConfig) { c.Cutoff = -1 }, ErrCutoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vehicle := testVehicle()
			motor := testMotor()
			cfg := DefaultRunConfig()
			tt.mutate(&vehicle, &motor, &cfg)

			sim := New(vehicle, motor, nil)
			result, err := sim.Run(context.Background(), cfg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if result != nil {
				t.Errorf("result = %v, want nil on validation failure", result)
			}
		})
	}
}

func TestRunLandsAndSamples(t *testing.T) {
	sim := New(testVehicle(), testMotor(), nil)
	result, err := sim.Run(context.Background(), DefaultRunConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Outcome != OutcomeLanded {
		t.Fatalf("Outcome = %v, want landed", result.Outcome)
	}
	if len(result.Samples) == 0 {
		t.Fatal("no samples recorded")
	}
	if result.Duration >= DefaultCutoff {
		t.Errorf("Duration = %v, want well under the cutoff", result.Duration)
	}

	first := result.Samples[0]
	if math.Abs(first.Time-DefaultDt) > 1e-12 {
		t.Errorf("first sample at t = %v, want %v", first.Time, DefaultDt)
	}

	for i := 1; i < len(result.Samples); i++ {
		dt := result.Samples[i].Time - result.Samples[i-1].Time
		if math.Abs(dt-DefaultDt) > 1e-9 {
			t.Fatalf("uneven step between samples %d and %d: %v", i-1, i, dt)
		}
	}

	last := result.Samples[len(result.Samples)-1]
	if last.Altitude != 0 {
		t.Errorf("final altitude = %v, want 0 at landing", last.Altitude)
	}
}

func TestRunDeterministic(t *testing.T) {
	events := []Event{
		{FireTime: 1.8, Type: "deploy_parachute", Condition: Condition{{AltitudeBelow, 10}}},
	}

	a, err := New(testVehicle(), testMotor(), events).Run(context.Background(), DefaultRunConfig())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := New(testVehicle(), testMotor(), events).Run(context.Background(), DefaultRunConfig())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(a.Samples, b.Samples) {
		t.Error("sample series differ between identical runs")
	}
	if !reflect.DeepEqual(a.Firings, b.Firings) {
		t.Error("firings differ between identical runs")
	}
	if a.Outcome != b.Outcome {
		t.Errorf("outcomes differ: %v vs %v", a.Outcome, b.Outcome)
	}
}

func TestRunUnderpoweredTimesOut(t *testing.T) {
	// Average thrust below weight: the vehicle must stay on the pad and the
	// run must end at the cutoff, not loop forever.
	vehicle := VehicleSpec{DryMass: 5, Diameter: 0.1, DragCoefficient: 0.75}
	motor := MotorSpec{
		Name:  "too small",
		Mass:  0.024,
		Curve: ThrustCurve{{Time: 0, Thrust: 2}, {Time: 1.6, Thrust: 0}},
	}

	result, err := New(vehicle, motor, nil).Run(context.Background(), DefaultRunConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome != OutcomeTimeout {
		t.Fatalf("Outcome = %v, want timeout", result.Outcome)
	}
	if result.Duration <= DefaultCutoff {
		t.Errorf("Duration = %v, want just past the cutoff", result.Duration)
	}
	for i, s := range result.Samples {
		if s.Altitude != 0 {
			t.Fatalf("sample %d left the pad: altitude %v", i, s.Altitude)
		}
	}
}

func TestRunEventFires(t *testing.T) {
	events := []Event{
		{FireTime: 0, Type: "liftoff_camera"},
		{FireTime: 1.8, Type: "deploy_parachute", Condition: Condition{{AltitudeBelow, 50}}},
	}

	result, err := New(testVehicle(), testMotor(), events).Run(context.Background(), DefaultRunConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Firings) != 2 {
		t.Fatalf("Firings = %v, want both events", result.Firings)
	}
	if result.Firings[0].Type != "liftoff_camera" {
		t.Errorf("first firing = %q, want liftoff_camera", result.Firings[0].Type)
	}
	if math.Abs(result.Firings[0].Time-DefaultDt) > 1e-12 {
		t.Errorf("liftoff_camera fired at %v, want first step", result.Firings[0].Time)
	}
	if result.Firings[1].Time < 1.8 {
		t.Errorf("deploy_parachute fired at %v, before its fire time", result.Firings[1].Time)
	}
}

func TestRunCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(testVehicle(), testMotor(), nil).Run(ctx, DefaultRunConfig())
	if err != nil {
		t.Fatalf("Run on canceled ctx: %v, want nil (abort is not an error)", err)
	}
	if result.Outcome != OutcomeAborted {
		t.Fatalf("Outcome = %v, want aborted", result.Outcome)
	}
	if len(result.Samples) != 0 {
		t.Errorf("Samples = %d, want none before the first step", len(result.Samples))
	}
}

func TestRunGravityOverride(t *testing.T) {
	cfg := DefaultRunConfig()
	earth, err := New(testVehicle(), testMotor(), nil).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("earth run: %v", err)
	}

	cfg.Environment.Gravity = 1.62 // lunar
	cfg.Environment.AirDensity = 0
	moon, err := New(testVehicle(), testMotor(), nil).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("moon run: %v", err)
	}

	maxAlt := func(samples []State) float64 {
		m := 0.0
		for _, s := range samples {
			if s.Altitude > m {
				m = s.Altitude
			}
		}
		return m
	}
	if maxAlt(moon.Samples) <= maxAlt(earth.Samples) {
		t.Errorf("lunar apogee %v not above terrestrial %v", maxAlt(moon.Samples), maxAlt(earth.Samples))
	}
}

type recordingMetric struct {
	name  string
	count int
}

func (m *recordingMetric) Name() string    { return m.name }
func (m *recordingMetric) Observe(s State) { m.count++ }
func (m *recordingMetric) Value() float64  { return float64(m.count) }
func (m *recordingMetric) Reset()          { m.count = 0 }

func TestRunStreamsMetrics(t *testing.T) {
	rec := &recordingMetric{name: "steps"}
	sim := New(testVehicle(), testMotor(), nil)
	sim.AddMetric(rec)

	result, err := sim.Run(context.Background(), DefaultRunConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rec.count != len(result.Samples) {
		t.Errorf("metric observed %d states, want %d", rec.count, len(result.Samples))
	}
	if got, ok := result.Metrics["steps"]; !ok || got != float64(rec.count) {
		t.Errorf("Metrics[steps] = %v, want %v", got, rec.count)
	}

	// A second run resets the metric instead of accumulating.
	again, err := sim.Run(context.Background(), DefaultRunConfig())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if rec.count != len(again.Samples) {
		t.Errorf("metric not reset: observed %d, want %d", rec.count, len(again.Samples))
	}
}
