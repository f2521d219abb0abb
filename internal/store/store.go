package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/rocketops/internal/flight"
)

// Store persists finished runs, one directory per run holding metadata.json
// and the sample series as flight.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Mission    string             `json:"mission"`
	Timestamp  time.Time          `json:"timestamp"`
	Motor      string             `json:"motor"`
	Dt         float64            `json:"dt"`
	Gravity    float64            `json:"gravity"`
	AirDensity float64            `json:"air_density"`
	Outcome    flight.Outcome     `json:"outcome"`
	Duration   float64            `json:"duration"`
	Firings    []flight.Firing    `json:"firings,omitempty"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// Save writes one finished run and returns its ID, derived from the mission
// name and the wall clock.
func (s *Store) Save(mission, motor string, cfg flight.RunConfig, result *flight.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", strings.ReplaceAll(mission, " ", "_"), time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Mission:    mission,
		Timestamp:  time.Now(),
		Motor:      motor,
		Dt:         cfg.Dt,
		Gravity:    cfg.Environment.Gravity,
		AirDensity: cfg.Environment.AirDensity,
		Outcome:    result.Outcome,
		Duration:   result.Duration,
		Firings:    result.Firings,
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "flight.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "altitude", "velocity", "acceleration"}); err != nil {
		return "", err
	}
	for _, sample := range result.Samples {
		row := []string{
			strconv.FormatFloat(sample.Time, 'f', 6, 64),
			strconv.FormatFloat(sample.Altitude, 'f', 6, 64),
			strconv.FormatFloat(sample.Velocity, 'f', 6, 64),
			strconv.FormatFloat(sample.Acceleration, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns metadata for every readable run, in directory order.
// Unreadable entries are skipped, not fatal.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSamples reads back a stored run's sample series.
func (s *Store) LoadSamples(runID string) ([]flight.State, error) {
	return ReadSamples(filepath.Join(s.baseDir, runID, "flight.csv"))
}

// ReadSamples parses a flight CSV. Columns are located by header name; time
// and altitude are required, velocity and acceleration default to zero when a
// foreign file omits them. Unparseable rows are skipped.
func ReadSamples(path string) ([]flight.State, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []flight.State{}, nil
	}

	cols := map[string]int{}
	for i, name := range records[0] {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	timeCol, ok := cols["time"]
	if !ok {
		return nil, fmt.Errorf("%s: no time column", path)
	}
	altCol, ok := cols["altitude"]
	if !ok {
		return nil, fmt.Errorf("%s: no altitude column", path)
	}

	parse := func(record []string, col int) (float64, bool) {
		if col >= len(record) {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(record[col]), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	velCol, hasVel := cols["velocity"]
	accCol, hasAcc := cols["acceleration"]

	samples := make([]flight.State, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		t, ok := parse(record, timeCol)
		if !ok {
			continue
		}
		h, ok := parse(record, altCol)
		if !ok {
			continue
		}
		var v, a float64
		if hasVel {
			v, _ = parse(record, velCol)
		}
		if hasAcc {
			a, _ = parse(record, accCol)
		}
		samples = append(samples, flight.State{Time: t, Altitude: h, Velocity: v, Acceleration: a})
	}

	return samples, nil
}
