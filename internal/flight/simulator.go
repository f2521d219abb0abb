package flight

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Metric is a streaming statistic computed over a run's sample series.
// Implementations live in the metrics package.
type Metric interface {
	Name() string
	Observe(s State)
	Value() float64
	Reset()
}

// Simulator orchestrates a full flight: validation, the stepping loop, event
// evaluation, and sample collection.
type Simulator struct {
	vehicle VehicleSpec
	motor   MotorSpec
	events  []Event
	metrics []Metric
	log     zerolog.Logger
}

// New returns a simulator for the given vehicle, motor, and event script.
// Logging is off until SetLogger is called.
func New(vehicle VehicleSpec, motor MotorSpec, events []Event) *Simulator {
	return &Simulator{
		vehicle: vehicle,
		motor:   motor,
		events:  events,
		log:     zerolog.Nop(),
	}
}

// SetLogger attaches a logger for per-run progress and event reporting.
func (s *Simulator) SetLogger(log zerolog.Logger) {
	s.log = log
}

// AddMetric registers a metric to be streamed every step and folded into the
// result. Metrics are reset at the start of each run.
func (s *Simulator) AddMetric(m Metric) {
	s.metrics = append(s.metrics, m)
}

func (s *Simulator) validate(cfg RunConfig) error {
	switch {
	case s.vehicle.DryMass <= 0:
		return fmt.Errorf("%w, got %g kg", ErrDryMass, s.vehicle.DryMass)
	case s.vehicle.Diameter <= 0:
		return fmt.Errorf("%w, got %g m", ErrDiameter, s.vehicle.Diameter)
	case s.vehicle.PayloadMass < 0:
		return fmt.Errorf("%w, got %g kg", ErrPayloadMass, s.vehicle.PayloadMass)
	case s.motor.Mass < 0:
		return fmt.Errorf("%w, got %g kg", ErrMotorMass, s.motor.Mass)
	case cfg.Dt <= 0:
		return fmt.Errorf("%w, got %g s", ErrTimestep, cfg.Dt)
	case cfg.Cutoff <= 0:
		return fmt.Errorf("%w, got %g s", ErrCutoff, cfg.Cutoff)
	}
	return nil
}

// Run executes the flight from rest on the pad until the vehicle lands, the
// safety cutoff passes, or ctx is canceled. Cancellation is not an error; it
// yields the partial result tagged [OutcomeAborted].
//
// The first recorded sample is at t = Dt. Landing means ground contact after
// liftoff; a vehicle that never leaves the pad runs to the cutoff.
func (s *Simulator) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := s.validate(cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	integ := NewIntegrator(s.vehicle, s.motor, cfg)
	engine := NewEngine(s.events)

	s.log.Debug().
		Str("motor", s.motor.Name).
		Float64("mass", integ.Mass()).
		Float64("dt", cfg.Dt).
		Msg("starting run")

	result := &Result{
		Metrics: make(map[string]float64),
	}

	var (
		state   State
		lifted  bool
		outcome Outcome
	)

run:
	for {
		select {
		case <-ctx.Done():
			s.log.Warn().Float64("t", state.Time).Msg("run aborted")
			outcome = OutcomeAborted
			break run
		default:
		}

		state = integ.Step(state)

		for _, ev := range engine.Evaluate(state) {
			result.Firings = append(result.Firings, Firing{Time: state.Time, Type: ev.Type})
			s.log.Info().
				Float64("t", state.Time).
				Float64("altitude", state.Altitude).
				Str("event", ev.Type).
				Msg("event fired")
		}

		for _, m := range s.metrics {
			m.Observe(state)
		}
		result.Samples = append(result.Samples, state)

		if state.Altitude > 0 {
			lifted = true
		} else if lifted {
			outcome = OutcomeLanded
			break run
		}
		if state.Time > cfg.Cutoff {
			outcome = OutcomeTimeout
			break run
		}
	}

	result.Outcome = outcome
	result.Duration = state.Time
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.log.Info().
		Str("outcome", string(outcome)).
		Float64("t", state.Time).
		Int("samples", len(result.Samples)).
		Int("events", len(result.Firings)).
		Msg("run complete")

	return result, nil
}
