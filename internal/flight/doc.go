// Package flight provides the simulation core for single-stage vehicle
// flights under thrust, gravity, and aerodynamic drag.
//
// The package defines the fundamental types for a fixed-step simulation run:
//
//   - [State]: kinematic snapshot after one integration step
//   - [ThrustCurve]: piecewise-linear burn-time to thrust lookup
//   - [Engine]: one-shot scripted event evaluation
//   - [Integrator]: single-step force model and state advance
//   - [Simulator]: orchestrates a run until landing or the safety cutoff
//
// # Example
//
//	sim := flight.New(vehicle, motor, events)
//	result, err := sim.Run(ctx, flight.DefaultRunConfig())
//
// # Determinism
//
// A run is strictly sequential and free of randomness: the same vehicle,
// motor, and event script always produce the identical sample series. Event
// definitions are never mutated; fired flags live inside the per-run [Engine],
// so one event list can back any number of independent runs.
package flight
