// Package report writes the text artifacts that accompany a mission:
// pre-flight checklists and post-flight summary reports.
package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// checklistItems is the standard pre-flight sequence, in execution order.
var checklistItems = []string{
	"Safety Switch ON",
	"Igniter Connected",
	"Recovery System Armed",
	"Telemetry Link Active",
	"GPS Locked",
	"Launch Pad Clear",
	"Countdown Initiated",
}

// WriteChecklist writes the pre-flight checklist for a mission and returns
// the file path.
func WriteChecklist(dir, mission string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Pre-Flight Checklist: %s\n\n", mission)
	for _, item := range checklistItems {
		fmt.Fprintf(&b, "[ ] %s\n", item)
	}

	path := filepath.Join(dir, fileName(mission)+"_checklist.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteMission writes a post-flight summary. Stats come from the standard
// metrics of the mission's latest run; a nil map reports NaN for each figure,
// which keeps the layout intact when no flight data exists yet.
func WriteMission(dir, mission, notes string, stats map[string]float64) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	stat := func(key string) float64 {
		if v, ok := stats[key]; ok {
			return v
		}
		return math.NaN()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Mission Report: %s\n", mission)
	fmt.Fprintf(&b, "Date: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Max Altitude: %.2f m\n", stat("apogee"))
	fmt.Fprintf(&b, "Max Velocity: %.2f m/s\n", stat("max_velocity"))
	fmt.Fprintf(&b, "Flight Time: %.2f s\n\n", stat("flight_time"))
	b.WriteString("Notes:\n")
	b.WriteString(notes + "\n")

	path := filepath.Join(dir, fileName(mission)+"_report.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// Drift estimates how far a steady wind carries the vehicle during descent.
func Drift(windSpeed, timeToGround float64) float64 {
	return windSpeed * timeToGround
}

// DescentTime converts a release altitude and steady descent rate into time
// to ground. Non-positive rates give zero.
func DescentTime(altitude, descentRate float64) float64 {
	if descentRate <= 0 {
		return 0
	}
	return altitude / descentRate
}

func fileName(mission string) string {
	return strings.ReplaceAll(mission, " ", "_")
}
