package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/hyperion/internal/analysis"
	"github.com/san-kum/hyperion/internal/config"
	"github.com/san-kum/hyperion/internal/dynamo"
	"github.com/san-kum/hyperion/internal/metrics"
	"github.com/san-kum/hyperion/internal/physics"
	"github.com/san-kum/hyperion/internal/series"
	"github.com/san-kum/hyperion/internal/sim"
)

// Experiment runs one Hyperion simulation described by a config and turns
// the trajectory into a rotation series.
type Experiment struct {
	cfg      *config.Config
	preset   string
	registry *Registry
	logger   *slog.Logger
}

func New(cfg *config.Config, preset string) *Experiment {
	return &Experiment{
		cfg:      cfg,
		preset:   preset,
		registry: NewRegistry(),
		logger:   slog.Default(),
	}
}

func (e *Experiment) SetLogger(l *slog.Logger) {
	if l != nil {
		e.logger = l
	}
}

// NewSystem builds the Hyperion model and its initial state.
func NewSystem(h config.HyperionConfig) (*physics.Hyperion, dynamo.State, error) {
	sys := physics.NewHyperion()
	if err := ApplyParams(sys, map[string]float64{"length": h.Length}); err != nil {
		return nil, nil, err
	}
	return sys, sys.InitialState(h.X0, h.Y0, h.VX0, h.VY0, h.Theta0, h.Omega0), nil
}

// ApplyParams sets each named parameter on sys, stopping at the first
// unknown name.
func ApplyParams(sys dynamo.Configurable, params map[string]float64) error {
	for name, value := range params {
		if err := sys.SetParam(name, value); err != nil {
			return err
		}
	}
	return nil
}

// Run simulates and converts the trajectory. If the integration hits a
// non-finite state the series is truncated there and the failure is logged.
func (e *Experiment) Run(ctx context.Context) (*series.Series, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	integ, err := e.registry.GetIntegrator(e.cfg.Simulation.Integrator)
	if err != nil {
		return nil, err
	}

	sys, x0, err := NewSystem(e.cfg.Hyperion)
	if err != nil {
		return nil, err
	}
	simulator := sim.New(sys, integ)
	simulator.SetLogger(e.logger)
	simulator.AddMetric(metrics.NewEnergyDrift(sys))
	simulator.AddMetric(metrics.NewPerihelion(physics.IdxX, physics.IdxY))
	simulator.AddMetric(metrics.NewAphelion(physics.IdxX, physics.IdxY))

	simCfg := dynamo.DefaultConfig()
	simCfg.Dt = e.cfg.Simulation.Dt
	simCfg.Duration = e.cfg.Simulation.Duration

	e.logger.Info("simulating",
		"preset", e.preset,
		"integrator", e.cfg.Simulation.Integrator,
		"dt", simCfg.Dt,
		"duration", simCfg.Duration)

	start := time.Now()
	result, err := simulator.Run(ctx, x0, simCfg)
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}
	for _, simErr := range result.Errors {
		e.logger.Warn("trajectory truncated", "err", simErr)
	}
	e.logger.Debug("simulation finished", "steps", result.StepsTaken, "elapsed", time.Since(start))

	s := ToSeries(result)
	s.Metadata = e.metadata(result, sys.GetParams())
	return s, nil
}

// ToSeries extracts t, theta and omega and marks the orbit maxima of x.
func ToSeries(result *dynamo.Result) *series.Series {
	n := len(result.States)
	xs := make([]float64, n)
	s := series.New(n)
	for i, st := range result.States {
		xs[i] = st[physics.IdxX]
		s.T = append(s.T, result.Times[i])
		s.Theta = append(s.Theta, st[physics.IdxTheta])
		s.Omega = append(s.Omega, st[physics.IdxOmega])
	}
	s.Sampled = analysis.MarkMaxima(xs)
	return s
}

func (e *Experiment) metadata(result *dynamo.Result, params map[string]float64) *series.Metadata {
	h := e.cfg.Hyperion
	return &series.Metadata{
		RunID:      uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Preset:     e.preset,
		Integrator: e.cfg.Simulation.Integrator,
		Dt:         e.cfg.Simulation.Dt,
		Duration:   e.cfg.Simulation.Duration,
		Initial: map[string]float64{
			"length": h.Length,
			"x0":     h.X0,
			"y0":     h.Y0,
			"vx0":    h.VX0,
			"vy0":    h.VY0,
			"theta0": h.Theta0,
			"omega0": h.Omega0,
		},
		Params:  params,
		Metrics: result.Metrics,
	}
}
