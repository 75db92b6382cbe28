package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/viz"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "orbitsim",
		Short:         "2-D newtonian gravity simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(lvl)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run simulation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 0, "steps per frame (default: scenario sample_every)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run simulation headless and store a summary",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset] [dt] ...",
		Short: "compare timesteps on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [preset] [file]",
		Short: "write a preset as a scenario file",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  initScenario,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	rootCmd.AddCommand(liveCmd, runCmd, sweepCmd, presetsCmd, initCmd, listCmd, showCmd)
	return rootCmd
}

func runLive(cmd *cobra.Command, args []string) error {
	sc, err := resolveScenario(cmd, args)
	if err != nil {
		return err
	}

	s, err := newSimulator(sc)
	if err != nil {
		return err
	}

	spf := stepsPerFrame
	if spf < 1 {
		spf = max(sc.SampleEvery, 1)
	}
	colors := make([]string, len(sc.Bodies))
	for i, b := range sc.Bodies {
		colors[i] = b.Color
	}

	log.Debug("starting live view", "scenario", sc.Name, "bodies", len(sc.Bodies), "dt", sc.Dt, "steps_per_frame", spf)

	m := viz.NewModel(s, viz.Options{
		Title:         sc.Name,
		Extent:        sc.Extent(),
		StepsPerFrame: spf,
		FrameRate:     frameRate,
		Colors:        colors,
	})
	defer m.Close()

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(viz.Model); ok && fm.Err() != nil {
		log.Error("simulation stopped", "err", fm.Err())
		return fm.Err()
	}
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	sc, err := resolveScenario(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, err := newSimulator(sc, metricOptions(sc)...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	steps := sc.Steps()
	log.Info("running simulation", "scenario", sc.Name, "bodies", len(sc.Bodies), "steps", steps, "dt", sc.Dt)
	start := time.Now()

	result, runErr := s.Record(ctx, steps, sc.SampleEvery)
	if result == nil {
		return runErr
	}
	elapsed := time.Since(start)
	if runErr != nil {
		log.Error("simulation stopped early", "err", runErr, "steps", result.StepsTaken)
	}

	summary := storage.NewSummary(sc.Name, sc.G, sc.Dt, result)
	if err := st.Save(summary); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "run id: %s\n", summary.ID)
	fmt.Fprintf(out, "steps: %d\n", result.StepsTaken)
	fmt.Fprintf(out, "time: %g secs\n", result.Final.Time)

	if len(result.Energies) > 1 {
		graph := asciigraph.Plot(result.Energies,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("total energy"),
		)
		fmt.Fprintf(out, "\n%s\n", graph)
	}

	es := metrics.Summarize(result.Energies)
	fmt.Fprintf(out, "\nenergy: mean %.6e  std %.3e  min %.6e  max %.6e  spread %.3e\n",
		es.Mean, es.StdDev, es.Min, es.Max, es.RelativeSpread())

	fmt.Fprintln(out, "\nmetrics:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6g\n", name, result.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	if err := writeBodies(out, summary.Final); err != nil {
		return err
	}
	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	sc, err := resolveScenario(cmd, args[:1])
	if err != nil {
		return err
	}

	dts := make([]float64, 0, len(args)-1)
	for _, a := range args[1:] {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid timestep %q: %w", a, err)
		}
		dts = append(dts, v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(dts)))

	build := func(dt float64) (*sim.Simulator, error) {
		c := sc.Clone()
		c.Dt = dt
		return newSimulator(c, metricOptions(c)...)
	}

	log.Info("sweeping timesteps", "scenario", sc.Name, "dts", len(dts), "duration", sc.Duration)
	start := time.Now()
	results, err := sim.Sweep(context.Background(), build, dts, sc.Duration, 200)
	if err != nil {
		return err
	}
	log.Debug("sweep finished", "elapsed", time.Since(start))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing timesteps for %s (duration=%gs)\n\n", sc.Name, sc.Duration)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tENERGY_DRIFT\tMOMENTUM_DRIFT\tCLOSEST\tORDER\tSTATUS")

	prev := -1
	for i, r := range results {
		if r.Result == nil {
			fmt.Fprintf(w, "%g\t-\t-\t-\t-\t-\t%v\n", r.Dt, r.Err)
			continue
		}
		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
		}

		order := "-"
		if prev >= 0 {
			if p, ok := convergenceOrder(results[prev], r); ok {
				order = fmt.Sprintf("%.2f", p)
			}
		}
		prev = i

		fmt.Fprintf(w, "%g\t%d\t%.3e\t%.3e\t%.4g\t%s\t%s\n",
			r.Dt,
			r.Result.StepsTaken,
			r.Result.EnergyDrift,
			r.Result.Metrics["momentum_drift"],
			r.Result.Metrics["closest_approach"],
			order,
			status,
		)
	}
	return w.Flush()
}

// convergenceOrder estimates p in drift ~ dt^p from two runs.
func convergenceOrder(a, b sim.SweepResult) (float64, bool) {
	da, db := a.Result.EnergyDrift, b.Result.EnergyDrift
	if a.Err != nil || b.Err != nil || da <= 0 || db <= 0 || a.Dt == b.Dt {
		return 0, false
	}
	return math.Log(da/db) / math.Log(a.Dt/b.Dt), true
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tG\tDT\tDURATION")
	for _, name := range config.ListPresets() {
		sc := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%g\t%gs\t%gs\n", name, len(sc.Bodies), sc.G, sc.Dt, sc.Duration)
	}
	return w.Flush()
}

func initScenario(cmd *cobra.Command, args []string) error {
	name, path := defaultPreset, args[0]
	if len(args) == 2 {
		name, path = args[0], args[1]
	}

	sc := config.GetPreset(name)
	if sc == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := config.Save(path, sc); err != nil {
		return err
	}
	log.Info("wrote scenario", "preset", name, "path", path)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSTEPS\tSIM_TIME\tDT\tENERGY_DRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%gs\t%gs\t%.3e\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Time,
			run.Dt,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.Load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", run.ID)
	fmt.Fprintf(out, "scenario: %s\n", run.Scenario)
	fmt.Fprintf(out, "recorded: %s\n", run.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(out, "g: %g  dt: %gs  steps: %d\n", run.G, run.Dt, run.Steps)
	fmt.Fprintf(out, "time: %g secs\n", run.Time)

	fmt.Fprintln(out, "\nmetrics:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	names := make([]string, 0, len(run.Metrics))
	for name := range run.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6g\n", name, run.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	return writeBodies(out, run.Final)
}

func writeBodies(out io.Writer, bodies []storage.BodyRecord) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tMASS\tX\tY\tVX\tVY")
	for i, b := range bodies {
		name := b.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		fmt.Fprintf(w, "%s\t%.4g\t%.6g\t%.6g\t%.6g\t%.6g\n", name, b.Mass, b.X, b.Y, b.VX, b.VY)
	}
	return w.Flush()
}
