package flight

import "testing"

func TestConstraintMet(t *testing.T) {
	s := State{Time: 2.0, Altitude: 50}

	tests := []struct {
		name string
		c    Constraint
		want bool
	}{
		{"altitude above met", Constraint{AltitudeAbove, 40}, true},
		{"altitude above equal", Constraint{AltitudeAbove, 50}, false},
		{"altitude above unmet", Constraint{AltitudeAbove, 60}, false},
		{"altitude below met", Constraint{AltitudeBelow, 60}, true},
		{"altitude below equal", Constraint{AltitudeBelow, 50}, false},
		{"time after met", Constraint{TimeAfter, 1.5}, true},
		{"time after equal", Constraint{TimeAfter, 2.0}, false},
		{"time before met", Constraint{TimeBefore, 3.0}, true},
		{"time before unmet", Constraint{TimeBefore, 1.0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Met(s); got != tt.want {
				t.Errorf("Met = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConditionConjunction(t *testing.T) {
	cond := Condition{
		{AltitudeAbove, 10},
		{TimeBefore, 5},
	}
	if !cond.Met(State{Time: 2, Altitude: 20}) {
		t.Error("both constraints hold, want met")
	}
	if cond.Met(State{Time: 2, Altitude: 5}) {
		t.Error("altitude constraint fails, want unmet")
	}
	if cond.Met(State{Time: 6, Altitude: 20}) {
		t.Error("time constraint fails, want unmet")
	}

	var empty Condition
	if !empty.Met(State{}) {
		t.Error("empty condition must be vacuously true")
	}
}

func TestEngineFiresOnce(t *testing.T) {
	engine := NewEngine([]Event{
		{FireTime: 1.0, Type: "deploy_parachute"},
	})

	if fired := engine.Evaluate(State{Time: 0.95}); len(fired) != 0 {
		t.Fatalf("fired before fire time: %v", fired)
	}

	fired := engine.Evaluate(State{Time: 1.0})
	if len(fired) != 1 || fired[0].Type != "deploy_parachute" {
		t.Fatalf("at fire time got %v, want one deploy_parachute", fired)
	}

	// Same state again, and every later state: no refire.
	if fired := engine.Evaluate(State{Time: 1.0}); len(fired) != 0 {
		t.Errorf("refired on identical state: %v", fired)
	}
	if fired := engine.Evaluate(State{Time: 5.0}); len(fired) != 0 {
		t.Errorf("refired later: %v", fired)
	}
	if got := engine.Pending(); got != 0 {
		t.Errorf("Pending = %d, want 0", got)
	}
}

func TestEngineConditionGates(t *testing.T) {
	engine := NewEngine([]Event{
		{
			FireTime:  0.5,
			Type:      "arm_recovery",
			Condition: Condition{{AltitudeAbove, 100}},
		},
	})

	// Eligible by time but below the altitude gate: held back, stays armed.
	if fired := engine.Evaluate(State{Time: 1.0, Altitude: 50}); len(fired) != 0 {
		t.Fatalf("fired below gate: %v", fired)
	}
	if got := engine.Pending(); got != 1 {
		t.Fatalf("Pending = %d, want 1", got)
	}

	fired := engine.Evaluate(State{Time: 2.0, Altitude: 120})
	if len(fired) != 1 {
		t.Fatalf("gate satisfied, got %v", fired)
	}
}

func TestEngineScriptOrder(t *testing.T) {
	engine := NewEngine([]Event{
		{FireTime: 0, Type: "first"},
		{FireTime: 0, Type: "second"},
		{FireTime: 0, Type: "third"},
	})

	fired := engine.Evaluate(State{Time: 0.05})
	if len(fired) != 3 {
		t.Fatalf("got %d firings, want 3", len(fired))
	}
	for i, want := range []string{"first", "second", "third"} {
		if fired[i].Type != want {
			t.Errorf("firing %d = %q, want %q", i, fired[i].Type, want)
		}
	}
}

func TestEngineRunsAreIndependent(t *testing.T) {
	script := []Event{{FireTime: 1.0, Type: "stage"}}

	a := NewEngine(script)
	b := NewEngine(script)

	if fired := a.Evaluate(State{Time: 1.0}); len(fired) != 1 {
		t.Fatalf("first engine did not fire: %v", fired)
	}
	// Firing in one engine must not consume the shared definitions.
	if fired := b.Evaluate(State{Time: 1.0}); len(fired) != 1 {
		t.Fatalf("second engine affected by first: %v", fired)
	}
}
