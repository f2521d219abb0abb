package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/rocketops/internal/flight"
)

// ExportData is the self-contained JSON form of one run, for handing to
// external plotting or post-processing tools.
type ExportData struct {
	Mission  string             `json:"mission"`
	Motor    string             `json:"motor"`
	Dt       float64            `json:"dt"`
	Outcome  flight.Outcome     `json:"outcome"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Samples  []flight.State     `json:"samples"`
	Firings  []flight.Firing    `json:"firings,omitempty"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
}

func buildExport(meta *RunMetadata, samples []flight.State) ExportData {
	return ExportData{
		Mission:  meta.Mission,
		Motor:    meta.Motor,
		Dt:       meta.Dt,
		Outcome:  meta.Outcome,
		Duration: meta.Duration,
		Steps:    len(samples),
		Samples:  samples,
		Firings:  meta.Firings,
		Metrics:  meta.Metrics,
	}
}

// ExportJSON writes a stored run as indented JSON to path, or to w when path
// is empty.
func (s *Store) ExportJSON(runID, path string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	out := w
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(buildExport(meta, samples))
}
