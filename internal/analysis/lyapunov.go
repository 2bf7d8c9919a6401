package analysis

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/hyperion/internal/dynamo"
)

// SeparationConfig configures a trajectory-separation run.
type SeparationConfig struct {
	Dt           float64
	Duration     float64
	Perturbation float64
	// Index is the state component that receives the initial perturbation.
	Index int
	// Components restricts the separation norm to these state indices; nil
	// uses the full state.
	Components []int
}

// SeparationExponent estimates the largest Lyapunov exponent by integrating
// x0 and a copy perturbed by cfg.Perturbation. After every step the growth
// ln(d/d0) is accumulated and the companion is pulled back to distance d0
// along the separation vector. A positive value indicates chaos.
func SeparationExponent(
	ctx context.Context,
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	cfg SeparationConfig,
) (float64, error) {
	if cfg.Perturbation <= 0 {
		return 0, ErrInvalidPerturbation
	}
	if cfg.Dt <= 0 || cfg.Duration <= 0 {
		return 0, fmt.Errorf("%w: dt=%g duration=%g", dynamo.ErrInvalidConfig, cfg.Dt, cfg.Duration)
	}
	if cfg.Index < 0 || cfg.Index >= len(x0) {
		return 0, fmt.Errorf("%w: perturbation index %d", dynamo.ErrDimensionMismatch, cfg.Index)
	}
	for _, c := range cfg.Components {
		if c < 0 || c >= len(x0) {
			return 0, fmt.Errorf("%w: separation component %d", dynamo.ErrDimensionMismatch, c)
		}
	}

	d0 := cfg.Perturbation
	x := x0.Clone()
	xp := x0.Clone()
	xp[cfg.Index] += d0

	steps := int(cfg.Duration / cfg.Dt)
	sumLog := 0.0
	count := 0

	for i := 0; i < steps; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}

		t := float64(i) * cfg.Dt
		x = integ.Step(sys, x, t, cfg.Dt)
		xp = integ.Step(sys, xp, t, cfg.Dt)
		if !x.IsValid() || !xp.IsValid() {
			return 0, &dynamo.SimulationError{Step: i, Time: t, State: x, Wrapped: dynamo.ErrInvalidState}
		}

		diff := xp.Sub(x)
		sep := diff.Project(cfg.Components).Norm()
		if sep == 0 {
			continue
		}
		sumLog += math.Log(sep / d0)
		count++

		scale := d0 / sep
		for j := range xp {
			xp[j] = x[j] + diff[j]*scale
		}
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * cfg.Dt), nil
}

// SeparationResult pairs a perturbation size with its exponent.
type SeparationResult struct {
	Perturbation float64
	Exponent     float64
}

// SeparationSweep runs SeparationExponent once per perturbation size in
// parallel. newSys and newInteg are called per run because integrators hold
// scratch state. Results keep the order of perturbations; the first error
// cancels the remaining runs.
func SeparationSweep(
	ctx context.Context,
	newSys func() dynamo.System,
	newInteg func() dynamo.Integrator,
	x0 dynamo.State,
	cfg SeparationConfig,
	perturbations []float64,
) ([]SeparationResult, error) {
	results := make([]SeparationResult, len(perturbations))
	g, ctx := errgroup.WithContext(ctx)

	for i, p := range perturbations {
		g.Go(func() error {
			runCfg := cfg
			runCfg.Perturbation = p
			lambda, err := SeparationExponent(ctx, newSys(), newInteg(), x0, runCfg)
			if err != nil {
				return fmt.Errorf("perturbation %g: %w", p, err)
			}
			results[i] = SeparationResult{Perturbation: p, Exponent: lambda}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
