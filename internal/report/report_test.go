package report

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteChecklist(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteChecklist(dir, "Maiden Flight")
	if err != nil {
		t.Fatalf("WriteChecklist: %v", err)
	}
	if filepath.Base(path) != "Maiden_Flight_checklist.txt" {
		t.Errorf("unexpected file name %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "Pre-Flight Checklist: Maiden Flight\n") {
		t.Errorf("missing title, got %q", strings.SplitN(content, "\n", 2)[0])
	}
	if got := strings.Count(content, "[ ] "); got != len(checklistItems) {
		t.Errorf("expected %d unchecked items, got %d", len(checklistItems), got)
	}
	if !strings.Contains(content, "[ ] Igniter Connected\n") {
		t.Error("missing igniter item")
	}
}

func TestWriteMission(t *testing.T) {
	dir := t.TempDir()
	stats := map[string]float64{
		"apogee":       120.5,
		"max_velocity": 45.2,
		"flight_time":  10.3,
	}

	path, err := WriteMission(dir, "Maiden Flight", "Clean boost, slight weathercock.", stats)
	if err != nil {
		t.Fatalf("WriteMission: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"Mission Report: Maiden Flight\n",
		"Max Altitude: 120.50 m\n",
		"Max Velocity: 45.20 m/s\n",
		"Flight Time: 10.30 s\n",
		"Clean boost, slight weathercock.\n",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteMissionNoData(t *testing.T) {
	path, err := WriteMission(t.TempDir(), "Ghost", "No flight yet.", nil)
	if err != nil {
		t.Fatalf("WriteMission: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "Max Altitude: NaN m") {
		t.Error("expected NaN placeholder without flight data")
	}
}

func TestDrift(t *testing.T) {
	if got := Drift(5.0, 60.0); got != 300.0 {
		t.Errorf("Drift = %v, want 300", got)
	}
	if got := Drift(0, 60.0); got != 0 {
		t.Errorf("Drift with calm air = %v, want 0", got)
	}
}

func TestDescentTime(t *testing.T) {
	if got := DescentTime(120, 4); math.Abs(got-30) > 1e-12 {
		t.Errorf("DescentTime = %v, want 30", got)
	}
	if got := DescentTime(120, 0); got != 0 {
		t.Errorf("DescentTime with zero rate = %v, want 0", got)
	}
	if got := DescentTime(120, -2); got != 0 {
		t.Errorf("DescentTime with negative rate = %v, want 0", got)
	}
}
