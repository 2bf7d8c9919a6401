package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/hyperion/internal/analysis"
	"github.com/san-kum/hyperion/internal/config"
	"github.com/san-kum/hyperion/internal/dynamo"
	"github.com/san-kum/hyperion/internal/experiment"
	"github.com/san-kum/hyperion/internal/physics"
	"github.com/san-kum/hyperion/internal/render"
	"github.com/san-kum/hyperion/internal/report"
	"github.com/san-kum/hyperion/internal/series"
)

var (
	dataPath   string
	configFile string
	logLevel   string

	preset     string
	dt         float64
	duration   float64
	integrator string

	plotFile  string
	htmlFile  string
	zeroFloor float64
	ascii     bool
	window    int
	head      int

	perturbations []float64

	cfg *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "hyperion",
		Short:             "chaotic rotation diagnostics for a tumbling moon",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", config.DefaultDataPath, "series file")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "integrate the orbit and write the rotation series",
		Args:  cobra.NoArgs,
		RunE:  runSimulate,
	}
	simulateCmd.Flags().StringVar(&preset, "preset", "", "use preset initial conditions")
	simulateCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (years)")
	simulateCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (years)")
	simulateCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "estimate Lyapunov exponents from the series",
		Args:  cobra.NoArgs,
		RunE:  runLyapunov,
	}
	lyapunovCmd.Flags().StringVar(&plotFile, "plot", "", "write the 2x3 figure to this file (png, svg, pdf)")
	lyapunovCmd.Flags().Float64Var(&zeroFloor, "zero-floor", 0, "replace angular steps below this value (0 keeps -Inf)")
	lyapunovCmd.Flags().BoolVar(&ascii, "ascii", false, "draw terminal charts")

	visualizeCmd := &cobra.Command{
		Use:   "visualize",
		Short: "show the series, its Poincaré section and phase portrait",
		Args:  cobra.NoArgs,
		RunE:  runVisualize,
	}
	visualizeCmd.Flags().StringVar(&plotFile, "plot", "", "write the 3x1 figure to this file (png, svg, pdf)")
	visualizeCmd.Flags().StringVar(&htmlFile, "html", "", "write an interactive html report")
	visualizeCmd.Flags().IntVar(&window, "window", config.DefaultWindow, "points shown in the time plot")
	visualizeCmd.Flags().IntVar(&head, "head", config.DefaultHeadRows, "leading rows to print")
	visualizeCmd.Flags().BoolVar(&ascii, "ascii", false, "draw terminal charts")

	separationCmd := &cobra.Command{
		Use:   "separation",
		Short: "trajectory separation exponent for several perturbation sizes",
		Args:  cobra.NoArgs,
		RunE:  runSeparation,
	}
	separationCmd.Flags().StringVar(&preset, "preset", "", "use preset initial conditions")
	separationCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (years)")
	separationCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (years)")
	separationCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	separationCmd.Flags().Float64SliceVar(&perturbations, "perturbation", []float64{1e-4, 1e-6, 1e-8}, "initial theta perturbations")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "write the series as csv to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSeries()
			if err != nil {
				return err
			}
			return series.WriteCSV(os.Stdout, s)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			report.New(os.Stdout).Presets(config.ListPresets())
		},
	}

	rootCmd.AddCommand(simulateCmd, lyapunovCmd, visualizeCmd, separationCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q", logLevel)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("data") || configFile == "" {
		cfg.Data.Path = dataPath
	}
	return nil
}

// applyRunFlags layers preset and explicitly set flags over the config.
func applyRunFlags(cmd *cobra.Command) error {
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg.Hyperion = p.Hyperion
	}
	if cmd.Flags().Changed("dt") {
		cfg.Simulation.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Simulation.Duration = duration
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Simulation.Integrator = integrator
	}
	return cfg.Validate()
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if err := applyRunFlags(cmd); err != nil {
		return err
	}
	name := preset
	if name == "" {
		name = "custom"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("simulating %d steps with %s...\n", cfg.Steps(), cfg.Simulation.Integrator)
	start := time.Now()
	s, err := experiment.New(cfg, name).Run(ctx)
	if err != nil {
		return err
	}
	if err := series.Save(cfg.Data.Path, s); err != nil {
		return err
	}
	elapsed := time.Since(start)

	p := report.New(os.Stdout)
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("wrote %s\n", cfg.Data.Path)
	p.SeriesOverview(s, 0)
	for _, metric := range slices.Sorted(maps.Keys(s.Metadata.Metrics)) {
		fmt.Printf("  %s: %.6f\n", metric, s.Metadata.Metrics[metric])
	}
	return nil
}

func loadSeries() (*series.Series, error) {
	s, err := series.Load(cfg.Data.Path)
	if errors.Is(err, series.ErrMissingInput) {
		return nil, fmt.Errorf("%w (run `hyperion simulate` to create it)", err)
	}
	return s, err
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	s, err := loadSeries()
	if err != nil {
		return err
	}

	var opts []analysis.Option
	if zeroFloor > 0 {
		opts = append(opts, analysis.WithZeroFloor(zeroFloor))
	}

	p := report.New(os.Stdout)
	est, err := analysis.EstimateLyapunov(s, opts...)
	if errors.Is(err, analysis.ErrInsufficientData) {
		p.Insufficient(s.Len())
		return nil
	}
	if err != nil {
		return err
	}

	p.LyapunovSummary(est.Summary)
	if ascii {
		fmt.Println()
		p.LyapunovCharts(est)
		p.PhasePortrait(analysis.NewPhasePortrait(est.Theta, s.Omega), "theta-omega phase")
	}

	if plotFile != "" {
		size := render.Size{Width: cfg.Plots.Width, Height: cfg.Plots.Height}
		if err := render.LyapunovFigure(plotFile, s, est, size); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", plotFile)
	}
	return nil
}

func runVisualize(cmd *cobra.Command, args []string) error {
	s, err := loadSeries()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("window") {
		window = cfg.Plots.Window
	}
	if !cmd.Flags().Changed("head") {
		head = cfg.Plots.HeadRows
	}
	if window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %d", config.ErrInvalidConfig, window)
	}

	p := report.New(os.Stdout)
	p.SeriesOverview(s, head)

	if ascii {
		fmt.Println()
		p.SeriesCharts(s, window)
		theta := analysis.NormalizeAngles(s.Theta)
		p.PhasePortrait(analysis.PoincarePortrait(theta, s.Omega, s.Sampled), "Poincaré section")
	}

	if plotFile != "" {
		size := render.Size{Width: cfg.Plots.Width, Height: cfg.Plots.Height}
		if err := render.SeriesFigure(plotFile, s, window, size); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", plotFile)
	}

	if htmlFile != "" {
		est, err := analysis.EstimateLyapunov(s)
		if err != nil && !errors.Is(err, analysis.ErrInsufficientData) {
			return err
		}
		f, err := os.Create(htmlFile)
		if err != nil {
			return err
		}
		if err := render.HTMLReport(f, s, est, window); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", htmlFile)
	}
	return nil
}

func runSeparation(cmd *cobra.Command, args []string) error {
	if err := applyRunFlags(cmd); err != nil {
		return err
	}
	newInteg, err := experiment.NewRegistry().IntegratorFactory(cfg.Simulation.Integrator)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, x0, err := experiment.NewSystem(cfg.Hyperion)
	if err != nil {
		return err
	}
	sepCfg := analysis.SeparationConfig{
		Dt:         cfg.Simulation.Dt,
		Duration:   cfg.Simulation.Duration,
		Index:      physics.IdxTheta,
		Components: []int{physics.IdxTheta, physics.IdxOmega},
	}
	newSys := func() dynamo.System {
		sys, _, _ := experiment.NewSystem(cfg.Hyperion)
		return sys
	}

	start := time.Now()
	results, err := analysis.SeparationSweep(ctx, newSys, newInteg, x0, sepCfg, perturbations)
	if err != nil {
		return err
	}

	report.New(os.Stdout).Separation(results)
	fmt.Printf("completed in %v\n", time.Since(start))
	return nil
}
