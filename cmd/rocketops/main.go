package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/rocketops/internal/config"
	"github.com/san-kum/rocketops/internal/flight"
	"github.com/san-kum/rocketops/internal/logging"
	"github.com/san-kum/rocketops/internal/metrics"
	"github.com/san-kum/rocketops/internal/report"
	"github.com/san-kum/rocketops/internal/store"
	"github.com/san-kum/rocketops/internal/tui"
)

var (
	dataDir  string
	logLevel string
	// simulate
	dt      float64
	cutoff  float64
	gravity float64
	density float64
	noSave   bool
	simChart bool
	// analyze
	chart bool
	// sweep
	workers int
	// export
	outFile string
	// drift
	windSpeed   float64
	altitude    float64
	descentRate float64
	// report
	notes string

	logger zerolog.Logger
)

// main registers every rocketops command and executes the root. With no
// subcommand it drops into the interactive mission planner.
func main() {
	rootCmd := &cobra.Command{
		Use:   "rocketops",
		Short: "model rocket mission planning and flight simulation",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadSettings(dataDir); err != nil {
				return err
			}
			level := config.GetString("logLevel")
			if cmd.Flags().Changed("log-level") {
				level = logLevel
			}
			logger = logging.New(os.Stderr, level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunPlanner(config.DefaultMission(), config.GetString("missionsDir"))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rocketops", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")

	simulateCmd := &cobra.Command{
		Use:   "simulate [mission.yaml]",
		Short: "fly a mission and record the flight",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulate,
	}
	simulateCmd.Flags().Float64Var(&dt, "dt", flight.DefaultDt, "integration timestep (s)")
	simulateCmd.Flags().Float64Var(&cutoff, "cutoff", flight.DefaultCutoff, "safety cutoff (s)")
	simulateCmd.Flags().Float64Var(&gravity, "gravity", flight.DefaultGravity, "gravitational acceleration (m/s^2)")
	simulateCmd.Flags().Float64Var(&density, "density", flight.DefaultAirDensity, "air density (kg/m^3)")
	simulateCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist run artifacts")
	simulateCmd.Flags().BoolVar(&simChart, "chart", true, "draw the flight charts")

	planCmd := &cobra.Command{
		Use:   "plan [mission.yaml]",
		Short: "interactive mission planner",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mission, err := loadMission(args)
			if err != nil {
				return err
			}
			return tui.RunPlanner(mission, config.GetString("missionsDir"))
		},
	}

	motorsCmd := &cobra.Command{
		Use:   "motors",
		Short: "list motor presets",
		RunE:  listMotors,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded flights",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded flight",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a recorded flight as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "", "output path (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [flight.csv]",
		Short: "compute flight statistics from a log",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeLog,
	}
	analyzeCmd.Flags().BoolVar(&chart, "chart", false, "draw the altitude chart")

	compareCmd := &cobra.Command{
		Use:   "compare [flight.csv...]",
		Short: "compare flight logs side by side",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareLogs,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [mission.yaml]",
		Short: "fly the mission once per motor preset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent flights (default from settings)")
	sweepCmd.Flags().Float64Var(&dt, "dt", flight.DefaultDt, "integration timestep (s)")

	replayCmd := &cobra.Command{
		Use:   "replay [run_id|flight.csv]",
		Short: "play back a recorded flight",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}

	driftCmd := &cobra.Command{
		Use:   "drift",
		Short: "estimate wind drift during descent",
		RunE:  estimateDrift,
	}
	driftCmd.Flags().Float64Var(&windSpeed, "wind", 3.0, "wind speed (m/s)")
	driftCmd.Flags().Float64Var(&altitude, "altitude", 100.0, "deployment altitude (m)")
	driftCmd.Flags().Float64Var(&descentRate, "descent-rate", 5.0, "descent rate (m/s)")

	checklistCmd := &cobra.Command{
		Use:   "checklist [mission.yaml]",
		Short: "write the pre-flight checklist",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mission, err := loadMission(args)
			if err != nil {
				return err
			}
			path, err := report.WriteChecklist(config.GetString("reportsDir"), mission.Name)
			if err != nil {
				return err
			}
			fmt.Printf("checklist written: %s\n", path)
			return nil
		},
	}

	reportCmd := &cobra.Command{
		Use:   "report [mission.yaml]",
		Short: "write the mission report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeReport,
	}
	reportCmd.Flags().StringVar(&notes, "notes", "Nominal flight.", "report notes")

	rootCmd.AddCommand(simulateCmd, planCmd, motorsCmd, listCmd, plotCmd, exportCmd,
		analyzeCmd, compareCmd, sweepCmd, replayCmd, driftCmd, checklistCmd, reportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadMission resolves the optional mission-file argument, falling back to
// the default mission.
func loadMission(args []string) (*config.Mission, error) {
	if len(args) == 0 {
		return config.DefaultMission(), nil
	}
	mission, err := config.Load(args[0])
	if err != nil {
		return nil, fmt.Errorf("load mission: %w", err)
	}
	return mission, nil
}

func runConfigFromFlags() flight.RunConfig {
	cfg := flight.DefaultRunConfig()
	cfg.Dt = dt
	cfg.Cutoff = cutoff
	cfg.Environment.Gravity = gravity
	cfg.Environment.AirDensity = density
	return cfg
}

func runSimulate(cmd *cobra.Command, args []string) error {
	mission, err := loadMission(args)
	if err != nil {
		return err
	}
	motor, err := mission.ToMotor()
	if err != nil {
		return err
	}

	sim := flight.New(mission.ToVehicle(), motor, mission.ToEvents())
	sim.SetLogger(logger)
	for _, m := range metrics.Standard() {
		sim.AddMetric(m)
	}

	// Ctrl+C during a long run aborts it; the partial flight is still
	// reported and saved.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("flying %s on %s...\n", mission.Name, motor.Name)
	start := time.Now()

	result, err := sim.Run(ctx, runConfigFromFlags())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("outcome: %s\n", result.Outcome)
	fmt.Printf("steps: %d\n", len(result.Samples))

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, result.Metrics[name])
	}

	if len(result.Firings) > 0 {
		fmt.Println("\nevents:")
		for _, f := range result.Firings {
			fmt.Printf("  t+%.2fs  %s\n", f.Time, f.Type)
		}
	}

	if !noSave {
		st := store.New(config.GetString("runsDir"))
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(mission.Name, motor.Name, runConfigFromFlags(), result)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}

	if simChart {
		fmt.Println()
		plotSamples(result.Samples)
	}
	return nil
}

func listMotors(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MOTOR\tIMPULSE\tBURN\tAVG THRUST\tMASS")
	for _, name := range config.ListMotors() {
		m := config.GetMotor(name)
		fmt.Fprintf(w, "%s\t%.1f N·s\t%.2fs\t%.1f N\t%.0f g\n",
			m.Name, m.TotalImpulse, m.BurnTime, m.AvgThrust, m.Mass*1000)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(config.GetString("runsDir"))
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no flights recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMISSION\tMOTOR\tTIME\tOUTCOME\tDURATION\tAPOGEE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2fs\t%.1f m\n",
			run.ID,
			run.Mission,
			run.Motor,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Outcome,
			run.Duration,
			run.Metrics["apogee"],
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(config.GetString("runsDir"))
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mission: %s on %s\n", meta.Mission, meta.Motor)
	fmt.Printf("outcome: %s, %d samples\n\n", meta.Outcome, len(samples))

	plotSamples(samples)
	return nil
}

// plotSamples draws the three flight traces the original tool plotted.
func plotSamples(samples []flight.State) {
	series := []struct {
		caption string
		field   func(flight.State) float64
	}{
		{"altitude (m)", func(s flight.State) float64 { return s.Altitude }},
		{"velocity (m/s)", func(s flight.State) float64 { return s.Velocity }},
		{"acceleration (m/s^2)", func(s flight.State) float64 { return s.Acceleration }},
	}
	for _, sr := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = sr.field(s)
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		))
		fmt.Println()
	}
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(config.GetString("runsDir"))
	return st.ExportJSON(args[0], outFile, os.Stdout)
}

func analyzeLog(cmd *cobra.Command, args []string) error {
	samples, err := store.ReadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("%s: no samples", args[0])
	}

	stats := metrics.Summarize(samples)

	fmt.Printf("flight log: %s (%d samples)\n\n", args[0], len(samples))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "max altitude\t%.2f m\n", stats["apogee"])
	fmt.Fprintf(w, "max velocity\t%.2f m/s\n", stats["max_velocity"])
	fmt.Fprintf(w, "max acceleration\t%.2f m/s^2\n", stats["max_acceleration"])
	fmt.Fprintf(w, "avg acceleration\t%.2f m/s^2\n", stats["avg_acceleration"])
	fmt.Fprintf(w, "flight time\t%.2f s\n", stats["flight_time"])
	fmt.Fprintf(w, "peak energy\t%.1f J/kg\n", stats["peak_energy"])
	if err := w.Flush(); err != nil {
		return err
	}

	if chart {
		fmt.Println()
		plotSamples(samples)
	}
	return nil
}

func compareLogs(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LOG\tSAMPLES\tAPOGEE\tMAX VEL\tFLIGHT TIME")
	for _, path := range args {
		samples, err := store.ReadSamples(path)
		if err != nil {
			return err
		}
		stats := metrics.Summarize(samples)
		fmt.Fprintf(w, "%s\t%d\t%.1f m\t%.1f m/s\t%.2fs\n",
			path, len(samples), stats["apogee"], stats["max_velocity"], stats["flight_time"])
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	mission, err := loadMission(args)
	if err != nil {
		return err
	}

	n := workers
	if n <= 0 {
		n = config.GetInt("sweepWorkers")
	}
	if n <= 0 {
		n = 1
	}

	names := config.ListMotors()
	type sweepResult struct {
		motor  string
		result *flight.Result
		err    error
	}
	results := make([]sweepResult, len(names))

	// Bounded fan-out; the core is deterministic, so output order only
	// depends on the preset list.
	sem := make(chan struct{}, n)
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			motor := config.GetMotor(name)
			sim := flight.New(mission.ToVehicle(), *motor, mission.ToEvents())
			for _, m := range metrics.Standard() {
				sim.AddMetric(m)
			}
			cfg := flight.DefaultRunConfig()
			cfg.Dt = dt
			result, err := sim.Run(context.Background(), cfg)
			results[i] = sweepResult{motor: name, result: result, err: err}
		}(i, name)
	}
	wg.Wait()

	fmt.Printf("motor sweep: %s\n\n", mission.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MOTOR\tOUTCOME\tAPOGEE\tMAX VEL\tFLIGHT TIME")
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\t\n", r.motor, r.err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f m\t%.1f m/s\t%.2fs\n",
			r.motor,
			r.result.Outcome,
			r.result.Metrics["apogee"],
			r.result.Metrics["max_velocity"],
			r.result.Metrics["flight_time"],
		)
	}
	return w.Flush()
}

func replayRun(cmd *cobra.Command, args []string) error {
	source := args[0]

	// The argument is a stored run ID unless it points at a CSV on disk.
	var (
		samples []flight.State
		firings []flight.Firing
		err     error
	)
	if strings.HasSuffix(source, ".csv") {
		samples, err = store.ReadSamples(source)
	} else {
		st := store.New(config.GetString("runsDir"))
		samples, err = st.LoadSamples(source)
		if err == nil {
			if meta, merr := st.Load(source); merr == nil {
				firings = meta.Firings
			}
		}
	}
	if err != nil {
		return err
	}
	return tui.RunReplay(source, samples, firings)
}

func estimateDrift(cmd *cobra.Command, args []string) error {
	t := report.DescentTime(altitude, descentRate)
	d := report.Drift(windSpeed, t)
	fmt.Printf("descent from %.0f m at %.1f m/s: %.1f s\n", altitude, descentRate, t)
	fmt.Printf("estimated drift in %.1f m/s wind: %.1f m\n", windSpeed, d)
	return nil
}

func writeReport(cmd *cobra.Command, args []string) error {
	mission, err := loadMission(args)
	if err != nil {
		return err
	}

	// Attach stats from the mission's most recent recorded flight, if any.
	var (
		stats     map[string]float64
		statsTime time.Time
	)
	st := store.New(config.GetString("runsDir"))
	if runs, err := st.List(); err == nil {
		for _, run := range runs {
			if run.Mission != mission.Name {
				continue
			}
			if stats == nil || run.Timestamp.After(statsTime) {
				stats = run.Metrics
				statsTime = run.Timestamp
			}
		}
	}

	path, err := report.WriteMission(config.GetString("reportsDir"), mission.Name, notes, stats)
	if err != nil {
		return err
	}
	fmt.Printf("report written: %s\n", path)
	return nil
}
