package analysis_test

import (
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hyperion/internal/analysis"
)

var _ = Describe("MarkMaxima", func() {
	It("marks the maximum of every closed positive excursion", func() {
		xs := []float64{-1, 0.5, 2, 1, -0.5, -2, 1, 3, 3.5, 0.2, -1, 0.4, 0.9}
		marks := analysis.MarkMaxima(xs)

		Expect(marks).To(HaveLen(len(xs)))
		var idx []int
		for i, m := range marks {
			if m {
				idx = append(idx, i)
			}
		}
		Expect(idx).To(Equal([]int{2, 8}))
	})

	It("samples a circular orbit once per revolution", func() {
		n := 2800
		xs := make([]float64, n)
		for i := range xs {
			xs[i] = math.Cos(2 * math.Pi * float64(i) / 1000)
		}
		marks := analysis.MarkMaxima(xs)

		// The excursion opening near i = 2750 never closes.
		Expect(analysis.CountSampled(marks)).To(Equal(3))
		Expect(marks[0]).To(BeTrue())
		Expect(marks[1000]).To(BeTrue())
		Expect(marks[2000]).To(BeTrue())
	})

	It("handles empty input", func() {
		Expect(analysis.MarkMaxima(nil)).To(BeEmpty())
	})
})

var _ = Describe("PhasePortrait2D", func() {
	It("skips non-finite points", func() {
		p := analysis.NewPhasePortrait(
			[]float64{0, 1, math.Inf(-1), 3},
			[]float64{0, 1, 2, math.NaN()},
		)
		Expect(p.Points).To(Equal([]analysis.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}))
	})

	It("keeps only flagged points for a Poincaré portrait", func() {
		p := analysis.PoincarePortrait(
			[]float64{0, 1, 2, 3},
			[]float64{5, 6, 7, 8},
			[]bool{false, true, false, true},
		)
		Expect(p.Points).To(Equal([]analysis.Point{{X: 1, Y: 6}, {X: 3, Y: 8}}))
	})

	It("renders a fixed-size character grid", func() {
		p := analysis.NewPhasePortrait([]float64{-1, 0, 1}, []float64{-1, 0.5, 1})
		out := p.ASCII(20, 6)

		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		Expect(lines).To(HaveLen(6))
		for _, l := range lines {
			Expect([]rune(l)).To(HaveLen(20))
		}
		Expect(out).To(ContainSubstring("●"))
		Expect(out).To(ContainSubstring("│"))
	})

	It("pads the data extent", func() {
		p := analysis.NewPhasePortrait([]float64{0, 10}, []float64{2, 2})
		minX, maxX, minY, maxY := p.Bounds()
		Expect([]float64{minX, maxX}).To(Equal([]float64{-1, 11}))
		Expect(minY).To(BeNumerically("~", 1.9, 1e-12))
		Expect(maxY).To(BeNumerically("~", 2.1, 1e-12))
	})

	It("gives an empty portrait a unit box", func() {
		for _, p := range []*analysis.PhasePortrait2D{nil, analysis.NewPhasePortrait(nil, nil)} {
			minX, maxX, minY, maxY := p.Bounds()
			Expect([]float64{minX, maxX, minY, maxY}).To(Equal([]float64{-1, 1, -1, 1}))
		}
	})

	It("renders nothing for an empty portrait", func() {
		Expect(analysis.NewPhasePortrait(nil, nil).ASCII(20, 6)).To(BeEmpty())
	})
})
