package analysis_test

import (
	"io"
	"log/slog"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hyperion/internal/analysis"
	"github.com/san-kum/hyperion/internal/series"
)

var quiet = analysis.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func uniformSeries(thetas []float64, dt float64) *series.Series {
	s := series.New(len(thetas))
	for i, th := range thetas {
		s.Append(series.Sample{T: float64(i) * dt, Theta: th, Omega: 0, Sampled: i%3 == 0})
	}
	return s
}

var _ = Describe("NormalizeAngle", func() {
	inputs := []float64{
		0, 1, -1, math.Pi, -math.Pi, 2 * math.Pi, -2 * math.Pi,
		3.5 * math.Pi, -3.5 * math.Pi, 1e6, -1e6, 7.2, -1e-17, math.Nextafter(math.Pi, 0),
	}

	It("maps every angle into [-π, π)", func() {
		for _, th := range inputs {
			n := analysis.NormalizeAngle(th)
			Expect(n).To(BeNumerically(">=", -math.Pi), "input %v", th)
			Expect(n).To(BeNumerically("<", math.Pi), "input %v", th)
		}
	})

	It("is idempotent", func() {
		for _, th := range inputs {
			once := analysis.NormalizeAngle(th)
			Expect(analysis.NormalizeAngle(once)).To(BeNumerically("~", once, 1e-12), "input %v", th)
		}
	})

	It("sends π to -π and keeps values already in range", func() {
		Expect(analysis.NormalizeAngle(math.Pi)).To(Equal(-math.Pi))
		Expect(analysis.NormalizeAngle(1.0)).To(BeNumerically("~", 1.0, 1e-15))
		Expect(analysis.NormalizeAngle(-2.0)).To(BeNumerically("~", -2.0, 1e-15))
	})

	It("wraps by whole turns", func() {
		Expect(analysis.NormalizeAngle(1 + 4*math.Pi)).To(BeNumerically("~", 1, 1e-12))
		Expect(analysis.NormalizeAngle(1 - 6*math.Pi)).To(BeNumerically("~", 1, 1e-12))
	})

	It("returns NaN for non-finite input", func() {
		Expect(math.IsNaN(analysis.NormalizeAngle(math.Inf(1)))).To(BeTrue())
		Expect(math.IsNaN(analysis.NormalizeAngle(math.NaN()))).To(BeTrue())
	})

	It("normalizes slices into a copy", func() {
		in := []float64{7.2, -7.2}
		out := analysis.NormalizeAngles(in)
		Expect(in).To(Equal([]float64{7.2, -7.2}))
		Expect(out[0]).To(BeNumerically("~", 7.2-2*math.Pi, 1e-12))
		Expect(out[1]).To(BeNumerically("~", -7.2+2*math.Pi, 1e-12))
	})
})

var _ = Describe("EstimateLyapunov", func() {
	Context("with a synthetic series of n samples", func() {
		var (
			s   *series.Series
			est *analysis.LyapunovEstimate
		)

		BeforeEach(func() {
			thetas := make([]float64, 50)
			for i := range thetas {
				thetas[i] = 0.3*float64(i) + 0.01*float64(i*i)
			}
			s = uniformSeries(thetas, 0.01)

			var err error
			est, err = analysis.EstimateLyapunov(s, quiet)
			Expect(err).NotTo(HaveOccurred())
		})

		It("produces aligned sequences of length n-1", func() {
			Expect(est.DeltaTheta).To(HaveLen(49))
			Expect(est.Instantaneous).To(HaveLen(49))
			Expect(est.Cumulative).To(HaveLen(49))
			Expect(est.Times).To(HaveLen(49))
			Expect(est.Theta).To(HaveLen(50))
			Expect(est.Times[0]).To(Equal(s.T[1]))
		})

		It("makes each cumulative entry the mean of the instantaneous prefix", func() {
			for i := range est.Cumulative {
				sum := 0.0
				for k := 0; k <= i; k++ {
					sum += est.Instantaneous[k]
				}
				Expect(est.Cumulative[i]).To(BeNumerically("~", sum/float64(i+1), 1e-9))
			}
		})

		It("summarizes the sequences", func() {
			sum := est.Summary
			Expect(sum.Samples).To(Equal(50))
			Expect(sum.FinalCumulative).To(Equal(est.Cumulative[48]))
			Expect(sum.MeanInstantaneous).To(BeNumerically("~", est.Cumulative[48], 1e-9))
			for _, v := range est.Instantaneous {
				Expect(v).To(BeNumerically(">=", sum.MinInstantaneous))
				Expect(v).To(BeNumerically("<=", sum.MaxInstantaneous))
			}
			Expect(sum.SampledCount).To(Equal(17))
			Expect(sum.ZeroSteps).To(BeZero())
		})

		It("leaves the input angles untouched", func() {
			Expect(s.Theta[49]).To(BeNumerically(">", math.Pi))
		})
	})

	It("inverts ln for Δθ = e^k and Δt = 1", func() {
		exps := []float64{1, 0, -1, -2, -3, -4, 0.5, -0.5}
		thetas := []float64{-1.5}
		sign := 1.0
		for _, k := range exps {
			thetas = append(thetas, thetas[len(thetas)-1]+sign*math.Exp(k))
			sign = -sign
		}

		est, err := analysis.EstimateLyapunov(uniformSeries(thetas, 1), quiet)
		Expect(err).NotTo(HaveOccurred())
		for i, k := range exps {
			Expect(est.DeltaTheta[i]).To(BeNumerically("~", math.Exp(k), 1e-12))
			Expect(est.Instantaneous[i]).To(BeNumerically("~", k, 1e-9))
		}
	})

	It("divides by the actual step length", func() {
		s := series.FromSamples([]series.Sample{
			{T: 0, Theta: 0},
			{T: 0.5, Theta: math.E},
		})
		est, err := analysis.EstimateLyapunov(s, quiet)
		Expect(err).NotTo(HaveOccurred())
		Expect(est.Instantaneous[0]).To(BeNumerically("~", 2, 1e-12))
	})

	DescribeTable("reports insufficient data",
		func(thetas []float64) {
			est, err := analysis.EstimateLyapunov(uniformSeries(thetas, 1), quiet)
			Expect(err).To(MatchError(analysis.ErrInsufficientData))
			Expect(est).To(BeNil())
		},
		Entry("for an empty series", []float64{}),
		Entry("for a single sample", []float64{0.4}),
	)

	It("rejects mismatched columns", func() {
		s := uniformSeries([]float64{0, 1, 2}, 1)
		s.Omega = s.Omega[:2]
		_, err := analysis.EstimateLyapunov(s, quiet)
		Expect(err).To(MatchError(series.ErrLengthMismatch))
	})

	Context("when two consecutive normalized angles are equal", func() {
		// 0.5 and 0.5 + 2π normalize to the same angle.
		thetas := []float64{0.1, 0.5, 0.5 + 2*math.Pi, 0.8, 1.2}

		It("propagates -Inf from that step onward", func() {
			est, err := analysis.EstimateLyapunov(uniformSeries(thetas, 1), quiet)
			Expect(err).NotTo(HaveOccurred())

			Expect(math.IsInf(est.Cumulative[0], 0)).To(BeFalse())
			Expect(math.IsInf(est.Instantaneous[1], -1)).To(BeTrue())
			for i := 1; i < len(est.Cumulative); i++ {
				Expect(math.IsInf(est.Cumulative[i], -1)).To(BeTrue(), "index %d", i)
			}
			Expect(math.IsInf(est.Instantaneous[2], 0)).To(BeFalse())
			Expect(est.Summary.ZeroSteps).To(Equal(1))
			Expect(math.IsInf(est.Summary.MinInstantaneous, -1)).To(BeTrue())
			Expect(math.IsInf(est.Summary.MeanInstantaneous, -1)).To(BeTrue())
		})

		It("stays finite with a zero floor", func() {
			est, err := analysis.EstimateLyapunov(uniformSeries(thetas, 1), quiet, analysis.WithZeroFloor(1e-12))
			Expect(err).NotTo(HaveOccurred())

			Expect(est.DeltaTheta[1]).To(Equal(1e-12))
			Expect(est.Instantaneous[1]).To(BeNumerically("~", math.Log(1e-12), 1e-9))
			for _, v := range est.Cumulative {
				Expect(math.IsInf(v, 0)).To(BeFalse())
			}
			Expect(est.Summary.ZeroSteps).To(Equal(1))
		})
	})
})

var _ = Describe("CountSampled", func() {
	It("counts true flags regardless of order", func() {
		flags := []bool{true, false, true, true, false}
		reversed := []bool{false, true, true, false, true}
		Expect(analysis.CountSampled(flags)).To(Equal(3))
		Expect(analysis.CountSampled(reversed)).To(Equal(3))
		Expect(analysis.CountSampled(nil)).To(BeZero())
	})
})
