package flight

// ConstraintKind enumerates the relational checks a scripted event can gate
// on. The set is closed; anything else a config file carries is dropped at
// the config boundary before it reaches the engine.
type ConstraintKind int

const (
	// AltitudeAbove holds when altitude is strictly greater than the threshold.
	AltitudeAbove ConstraintKind = iota
	// AltitudeBelow holds when altitude is strictly less than the threshold.
	AltitudeBelow
	// TimeAfter holds when simulated time is strictly greater than the threshold.
	TimeAfter
	// TimeBefore holds when simulated time is strictly less than the threshold.
	TimeBefore
)

// String returns the config-file spelling of the kind.
func (k ConstraintKind) String() string {
	switch k {
	case AltitudeAbove:
		return "altitude_gt"
	case AltitudeBelow:
		return "altitude_lt"
	case TimeAfter:
		return "time_gt"
	case TimeBefore:
		return "time_lt"
	}
	return "unknown"
}

// Constraint is one relational bound against the current state.
type Constraint struct {
	Kind      ConstraintKind
	Threshold float64
}

// Met reports whether the state satisfies the constraint.
func (c Constraint) Met(s State) bool {
	switch c.Kind {
	case AltitudeAbove:
		return s.Altitude > c.Threshold
	case AltitudeBelow:
		return s.Altitude < c.Threshold
	case TimeAfter:
		return s.Time > c.Threshold
	case TimeBefore:
		return s.Time < c.Threshold
	}
	return false
}

// Condition is the conjunction of its constraints. An empty condition is
// vacuously true.
type Condition []Constraint

// Met reports whether every constraint holds for the state.
func (c Condition) Met(s State) bool {
	for _, ct := range c {
		if !ct.Met(s) {
			return false
		}
	}
	return true
}

// Event is one scripted one-shot action. It becomes eligible once simulated
// time reaches FireTime and fires on the first eligible step whose state also
// satisfies the condition.
type Event struct {
	FireTime  float64
	Type      string
	Condition Condition
}

// Engine evaluates a fixed event script against each step of a run. The
// definitions are never written to; fired flags live in a parallel per-run
// slice, so a single script can back any number of concurrent runs.
type Engine struct {
	events []Event
	fired  []bool
}

// NewEngine returns an engine for one run over the given script.
func NewEngine(events []Event) *Engine {
	return &Engine{
		events: events,
		fired:  make([]bool, len(events)),
	}
}

// Evaluate returns the events that fire at this state, in script order. Each
// returned event is marked fired for the remainder of the run; re-evaluating
// the same state returns nothing new.
func (e *Engine) Evaluate(s State) []Event {
	var fired []Event
	for i, ev := range e.events {
		if e.fired[i] || s.Time < ev.FireTime {
			continue
		}
		if !ev.Condition.Met(s) {
			continue
		}
		e.fired[i] = true
		fired = append(fired, ev)
	}
	return fired
}

// Pending returns how many events have not fired yet.
func (e *Engine) Pending() int {
	n := 0
	for _, f := range e.fired {
		if !f {
			n++
		}
	}
	return n
}
