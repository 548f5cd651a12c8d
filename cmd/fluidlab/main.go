package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hmaier/fluidlab/internal/config"
	"github.com/hmaier/fluidlab/internal/export"
	"github.com/hmaier/fluidlab/internal/metrics"
	"github.com/hmaier/fluidlab/internal/sim"
	"github.com/hmaier/fluidlab/internal/sph"
	"github.com/hmaier/fluidlab/internal/storage"
	"github.com/hmaier/fluidlab/internal/tui"
	"github.com/hmaier/fluidlab/internal/viz"
)

var (
	dataDir     string
	configFile  string
	ticks       int
	particles   int
	workers     int
	dt          float64
	sampleEvery int
	plot        bool
	outFile     string
	viscosities string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fluidlab",
		Short: "2D SPH fluid simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fluidlab", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation headless and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "tick count (overrides config)")
	runCmd.Flags().IntVar(&particles, "particles", 0, "particle count (overrides config)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "stage worker goroutines (0 = all cores)")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (overrides config)")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 0, "frame sampling stride (overrides config)")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot kinetic energy history")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "interactive live view",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args)
			if err != nil {
				return err
			}
			return tui.Run(cfg.Params(), cfg.Origin(), workers)
		},
	}
	liveCmd.Flags().IntVar(&particles, "particles", 0, "particle count (overrides config)")
	liveCmd.Flags().IntVar(&workers, "workers", 0, "stage worker goroutines (0 = all cores)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPARTICLES\tVISCOSITY")
			for _, name := range config.PresetNames() {
				cfg := config.Presets[name]()
				fmt.Fprintf(w, "%s\t%d\t%g\n", name, cfg.Particles, cfg.Physics.Viscosity)
			}
			w.Flush()
		},
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [preset]",
		Short: "run a simulation and export the final frame as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&ticks, "ticks", 0, "tick count (overrides config)")
	snapshotCmd.Flags().StringVar(&outFile, "out", "frame.svg", "output file")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "run one scenario across several viscosity values",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&viscosities, "viscosities", "0.05,0.1,0.2,0.4", "comma-separated viscosity values")
	sweepCmd.Flags().IntVar(&ticks, "ticks", 0, "tick count (overrides config)")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := storage.New(dataDir)
			runs, err := store.List()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRESET\tPARTICLES\tTICKS\tFRAMES")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", r.ID, r.Preset, r.Particles, r.Ticks, r.FrameCount)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd, snapshotCmd, sweepCmd, runsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective config: explicit file first, then a
// named preset, then defaults; command flags override on top.
func loadConfig(args []string) (*config.Config, error) {
	var cfg *config.Config
	var err error

	switch {
	case configFile != "":
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
	case len(args) > 0:
		build, ok := config.Presets[args[0]]
		if !ok {
			return nil, fmt.Errorf("unknown preset %q (see 'fluidlab presets')", args[0])
		}
		cfg = build()
	default:
		cfg = config.DefaultConfig()
	}

	if ticks > 0 {
		cfg.Ticks = ticks
	}
	if particles > 0 {
		cfg.Particles = particles
	}
	if dt > 0 {
		cfg.Physics.Dt = float32(dt)
	}
	if sampleEvery > 0 {
		cfg.SampleEvery = sampleEvery
	}
	return cfg, nil
}

func presetName(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "default"
}

func newSimulator(cfg *config.Config) (*sim.Simulator, *metrics.KineticEnergy) {
	consts := sph.NewConstants(cfg.Params())
	st := sph.NewState(cfg.Particles)
	st.SeedGrid(cfg.Physics.ParticleGap, cfg.Origin())

	s := sim.New(consts, st)
	energy := metrics.NewKineticEnergy(cfg.Physics.Mass)
	s.AddMetric(energy)
	s.AddMetric(metrics.NewDensityDeviation(cfg.Physics.RestDensity))
	s.AddMetric(metrics.NewEscaped(consts))
	return s, energy
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, energy := newSimulator(cfg)
	result, err := s.Run(ctx, sim.Config{
		Ticks:         cfg.Ticks,
		Workers:       workers,
		SampleEvery:   cfg.SampleEvery,
		ValidateState: true,
	})
	if err != nil {
		return err
	}

	fmt.Printf("ran %d ticks (%d particles)\n\n", result.TicksTaken, cfg.Particles)
	for _, name := range []string{"kinetic_energy", "density_deviation", "escaped"} {
		fmt.Println(viz.FormatMetric(name, result.Metrics[name]))
	}
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", e)
	}

	if plot {
		fmt.Println()
		fmt.Println(viz.Sparkline(energy.History(), "kinetic energy", 70))
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(presetName(args), cfg, result)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved run %s\n", runID)
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, _ := newSimulator(cfg)
	if _, err := s.Run(ctx, sim.Config{Ticks: cfg.Ticks, Workers: workers}); err != nil {
		return err
	}

	renderer := viz.NewRenderer(100, 40, s.Constants())
	renderer.Frame(s.State())
	if err := export.WriteSVG(outFile, renderer.Canvas(), 4); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	var variants []sim.Variant
	for _, field := range strings.Split(viscosities, ",") {
		mu, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
		if err != nil {
			return fmt.Errorf("bad viscosity %q: %w", field, err)
		}

		vcfg := *cfg
		vcfg.Physics.Viscosity = float32(mu)
		params := vcfg.Params()
		origin := vcfg.Origin()
		gap := vcfg.Physics.ParticleGap

		variants = append(variants, sim.Variant{
			Name:   fmt.Sprintf("mu=%g", mu),
			Params: params,
			Seed: func(st *sph.State) {
				st.SeedGrid(gap, origin)
			},
		})
	}

	sw := sim.NewSweep(variants, func() []sim.Metric {
		return []sim.Metric{
			metrics.NewKineticEnergy(cfg.Physics.Mass),
			metrics.NewDensityDeviation(cfg.Physics.RestDensity),
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := sw.Run(ctx, sim.Config{Ticks: cfg.Ticks})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tKINETIC ENERGY\tDENSITY DEV")
	for i, r := range results {
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\n",
			variants[i].Name, r.Metrics["kinetic_energy"], r.Metrics["density_deviation"])
	}
	return w.Flush()
}
