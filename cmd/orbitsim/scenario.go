package main

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/spf13/cobra"
)

const defaultPreset = "solar"

var (
	dataDir  string
	logLevel string

	dt          float64
	duration    float64
	gravity     float64
	sampleEvery int
	configFile  string

	// Live view
	frameRate     int
	stepsPerFrame int

	force bool
)

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in seconds")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration in seconds")
	cmd.Flags().Float64Var(&gravity, "g", config.G, "gravitational constant")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "keep every n-th energy sample")
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
}

// resolveScenario layers the named preset, the scenario file and the flags
// that were set explicitly, in that order.
func resolveScenario(cmd *cobra.Command, args []string) (*config.Scenario, error) {
	name := defaultPreset
	if len(args) > 0 {
		name = args[0]
	}

	var sc *config.Scenario
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		sc = loaded
	} else {
		sc = config.GetPreset(name)
		if sc == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		sc.Dt = dt
	}
	if flags.Changed("time") {
		sc.Duration = duration
	}
	if flags.Changed("g") {
		sc.G = gravity
	}
	if flags.Changed("sample-every") {
		sc.SampleEvery = sampleEvery
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func newSimulator(sc *config.Scenario, opts ...sim.Option) (*sim.Simulator, error) {
	bodies, err := sc.Build()
	if err != nil {
		return nil, err
	}
	return sim.New(bodies, sc.SimConfig(), opts...)
}

// metricOptions attaches the default metrics. Bodies leaving twice the view
// radius count as escaped.
func metricOptions(sc *config.Scenario) []sim.Option {
	ms := metrics.Defaults(sc.G, 2*sc.Extent())
	opts := make([]sim.Option, len(ms))
	for i, m := range ms {
		opts[i] = sim.WithMetric(m)
	}
	return opts
}
