package flight_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rocketops/internal/flight"
)

// Reference flight: a half-kilogram vehicle on a D12-class ramp. Thrust beats
// weight at ignition, so the profile must show the full arc from liftoff
// through apogee to touchdown.
var _ = Describe("Reference flight", func() {
	var (
		vehicle flight.VehicleSpec
		motor   flight.MotorSpec
		result  *flight.Result
	)

	BeforeEach(func() {
		vehicle = flight.VehicleSpec{
			DryMass:         0.456,
			Diameter:        0.05,
			DragCoefficient: 0.75,
			PayloadMass:     0.02,
		}
		motor = flight.MotorSpec{
			Name:         "Estes D12",
			TotalImpulse: 12.0,
			BurnTime:     1.6,
			AvgThrust:    7.5,
			Mass:         0.024,
			Curve: flight.ThrustCurve{
				{Time: 0, Thrust: 12},
				{Time: 1.6, Thrust: 0},
			},
		}

		var err error
		sim := flight.New(vehicle, motor, nil)
		result, err = sim.Run(context.Background(), flight.DefaultRunConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	It("lands in finite time", func() {
		Expect(result.Outcome).To(Equal(flight.OutcomeLanded))
		Expect(result.Duration).To(BeNumerically("<", flight.DefaultCutoff))
		Expect(result.Samples).NotTo(BeEmpty())
	})

	It("climbs throughout the burn", func() {
		prev := 0.0
		for _, s := range result.Samples {
			if s.Time > motor.BurnTime {
				break
			}
			Expect(s.Altitude).To(BeNumerically(">", prev),
				"altitude fell back during the burn at t=%v", s.Time)
			prev = s.Altitude
		}
		Expect(prev).To(BeNumerically(">", 0))
	})

	It("peaks once, after burnout", func() {
		apogee := 0
		for i := range result.Samples {
			if result.Samples[i].Altitude > result.Samples[apogee].Altitude {
				apogee = i
			}
		}
		Expect(result.Samples[apogee].Time).To(BeNumerically(">", motor.BurnTime))

		for i := 0; i < apogee; i++ {
			Expect(result.Samples[i+1].Altitude).To(BeNumerically(">=", result.Samples[i].Altitude),
				"dip before apogee at t=%v", result.Samples[i+1].Time)
		}
		for i := apogee; i < len(result.Samples)-1; i++ {
			Expect(result.Samples[i+1].Altitude).To(BeNumerically("<=", result.Samples[i].Altitude),
				"rise after apogee at t=%v", result.Samples[i+1].Time)
		}
	})

	It("touches down at zero altitude", func() {
		last := result.Samples[len(result.Samples)-1]
		Expect(last.Altitude).To(BeZero())
		Expect(last.Velocity).To(BeNumerically("<", 0))
	})

	Context("with a scripted recovery sequence", func() {
		It("fires the parachute on the first descending step past the gate", func() {
			events := []flight.Event{
				{
					FireTime: 1.6,
					Type:     "deploy_parachute",
					Condition: flight.Condition{
						{Kind: flight.AltitudeBelow, Threshold: 3.0},
						{Kind: flight.TimeAfter, Threshold: 1.6},
					},
				},
			}
			sim := flight.New(vehicle, motor, events)
			res, err := sim.Run(context.Background(), flight.DefaultRunConfig())
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Firings).To(HaveLen(1))
			firing := res.Firings[0]
			Expect(firing.Type).To(Equal("deploy_parachute"))
			Expect(firing.Time).To(BeNumerically(">", 1.6))

			// The firing step itself must satisfy the gate.
			for _, s := range res.Samples {
				if s.Time == firing.Time {
					Expect(s.Altitude).To(BeNumerically("<", 3.0))
				}
			}
		})
	})
})
