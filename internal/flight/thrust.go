package flight

// CurvePoint is one control point of a thrust profile.
type CurvePoint struct {
	Time   float64 // s, since ignition
	Thrust float64 // N
}

// ThrustCurve is a piecewise-linear thrust profile over burn time. Control
// points are expected in ascending time order; segments that are not (or that
// repeat a time) simply never match a query, so malformed curves degrade
// toward zero thrust instead of failing.
type ThrustCurve []CurvePoint

// TwoPointCurve returns the simple ramp from full thrust at ignition down to
// zero at burnout, the shape used for motors entered by hand.
func TwoPointCurve(thrust, burnTime float64) ThrustCurve {
	return ThrustCurve{
		{Time: 0, Thrust: thrust},
		{Time: burnTime, Thrust: 0},
	}
}

// At returns the interpolated thrust at time t. Outside the curve's domain,
// and for curves with fewer than two points, thrust is zero.
func (c ThrustCurve) At(t float64) float64 {
	if len(c) < 2 {
		return 0
	}
	for i := 0; i < len(c)-1; i++ {
		p0, p1 := c[i], c[i+1]
		if t < p0.Time || t > p1.Time {
			continue
		}
		if p1.Time == p0.Time {
			return p1.Thrust
		}
		frac := (t - p0.Time) / (p1.Time - p0.Time)
		return p0.Thrust + (p1.Thrust-p0.Thrust)*frac
	}
	return 0
}

// Duration returns the time of the last control point, or zero for curves
// too short to produce thrust.
func (c ThrustCurve) Duration() float64 {
	if len(c) < 2 {
		return 0
	}
	return c[len(c)-1].Time
}
