package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/hyperion/internal/dynamo"
)

// Simulator advances a system with a fixed-step integrator and records every
// state. It is not safe for concurrent use because integrators keep scratch
// buffers.
type Simulator struct {
	sys        dynamo.System
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	logger     *slog.Logger
}

func New(sys dynamo.System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		logger:     slog.Default(),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric) { s.metrics = append(s.metrics, m) }

func (s *Simulator) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Run integrates from x0 for int(Duration/Dt) steps. A non-finite state stops
// the run early; the result then holds every valid state up to that point and
// the failure is recorded in Result.Errors.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &dynamo.Result{
		States:  make([]dynamo.State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}

		newX := s.integrator.Step(s.sys, x, t, cfg.Dt)
		if cfg.ValidateState && !newX.IsValid() {
			err := &dynamo.SimulationError{
				Step:    i,
				Time:    t,
				State:   newX,
				Wrapped: dynamo.ErrInvalidState,
			}
			result.Errors = append(result.Errors, err)
			s.logger.Warn("simulation stopped on invalid state", "step", i, "t", t)
			break
		}

		x = newX
		t = float64(i+1) * cfg.Dt
		result.StepsTaken++

		result.States = append(result.States, x)
		result.Times = append(result.Times, t)
	}

	for _, m := range s.metrics {
		m.Observe(x, t)
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validate(x0 dynamo.State, cfg dynamo.Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", dynamo.ErrInvalidConfig, cfg.Duration)
	}
	if len(x0) != s.sys.StateDim() {
		return fmt.Errorf("%w: state has %d components, system expects %d",
			dynamo.ErrDimensionMismatch, len(x0), s.sys.StateDim())
	}
	return nil
}
