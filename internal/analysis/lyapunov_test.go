package analysis_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hyperion/internal/analysis"
	"github.com/san-kum/hyperion/internal/dynamo"
	"github.com/san-kum/hyperion/internal/integrators"
	"github.com/san-kum/hyperion/internal/physics"
)

type linear struct{ rate float64 }

func (l *linear) Derive(x dynamo.State, _ float64) dynamo.State { return dynamo.State{l.rate * x[0]} }
func (l *linear) StateDim() int                                  { return 1 }

var _ = Describe("SeparationExponent", func() {
	ctx := context.Background()

	DescribeTable("recovers the rate of a linear system",
		func(rate float64) {
			cfg := analysis.SeparationConfig{Dt: 0.01, Duration: 5, Perturbation: 1e-8}
			lambda, err := analysis.SeparationExponent(ctx, &linear{rate}, integrators.NewRK4(), dynamo.State{1}, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(lambda).To(BeNumerically("~", rate, 1e-5))
		},
		Entry("growing", 0.5),
		Entry("decaying", -1.0),
	)

	It("separates elliptical from circular Hyperion orbits", func() {
		cfg := analysis.SeparationConfig{
			Dt:           0.001,
			Duration:     5,
			Perturbation: 1e-6,
			Index:        physics.IdxTheta,
			Components:   []int{physics.IdxTheta, physics.IdxOmega},
		}
		h := physics.NewHyperion()

		circular, err := analysis.SeparationExponent(ctx, h, integrators.NewEulerCromer(),
			h.InitialState(1, 0, 0, 2*math.Pi, 0, 0), cfg)
		Expect(err).NotTo(HaveOccurred())

		elliptical, err := analysis.SeparationExponent(ctx, h, integrators.NewEulerCromer(),
			h.InitialState(1, 0, 0, 5, 0, 0), cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(elliptical).To(BeNumerically(">", circular+0.4))
	})

	It("rejects bad configuration", func() {
		sys := &linear{1}
		integ := integrators.NewEuler()
		x0 := dynamo.State{1}

		_, err := analysis.SeparationExponent(ctx, sys, integ, x0, analysis.SeparationConfig{Dt: 0.1, Duration: 1})
		Expect(err).To(MatchError(analysis.ErrInvalidPerturbation))

		_, err = analysis.SeparationExponent(ctx, sys, integ, x0, analysis.SeparationConfig{Duration: 1, Perturbation: 1e-6})
		Expect(err).To(MatchError(dynamo.ErrInvalidConfig))

		_, err = analysis.SeparationExponent(ctx, sys, integ, x0, analysis.SeparationConfig{Dt: 0.1, Duration: 1, Perturbation: 1e-6, Index: 3})
		Expect(err).To(MatchError(dynamo.ErrDimensionMismatch))

		_, err = analysis.SeparationExponent(ctx, sys, integ, x0, analysis.SeparationConfig{Dt: 0.1, Duration: 1, Perturbation: 1e-6, Components: []int{0, 4}})
		Expect(err).To(MatchError(dynamo.ErrDimensionMismatch))
	})

	It("stops when the context is canceled", func() {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		cfg := analysis.SeparationConfig{Dt: 0.01, Duration: 1, Perturbation: 1e-6}
		_, err := analysis.SeparationExponent(canceled, &linear{1}, integrators.NewEuler(), dynamo.State{1}, cfg)
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("SeparationSweep", func() {
	It("returns one result per perturbation in input order", func() {
		perturbations := []float64{1e-6, 1e-8, 1e-10}
		cfg := analysis.SeparationConfig{Dt: 0.01, Duration: 2}

		results, err := analysis.SeparationSweep(context.Background(),
			func() dynamo.System { return &linear{0.3} },
			func() dynamo.Integrator { return integrators.NewRK4() },
			dynamo.State{1}, cfg, perturbations)
		Expect(err).NotTo(HaveOccurred())

		Expect(results).To(HaveLen(3))
		for i, r := range results {
			Expect(r.Perturbation).To(Equal(perturbations[i]))
			Expect(r.Exponent).To(BeNumerically("~", 0.3, 1e-4))
		}
	})

	It("fails when any run fails", func() {
		_, err := analysis.SeparationSweep(context.Background(),
			func() dynamo.System { return &linear{0.3} },
			func() dynamo.Integrator { return integrators.NewRK4() },
			dynamo.State{1}, analysis.SeparationConfig{Dt: 0.01, Duration: 1}, []float64{1e-6, -1})
		Expect(err).To(MatchError(analysis.ErrInvalidPerturbation))
	})
})
