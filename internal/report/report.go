// Package report writes human-readable results to a terminal: summary
// statistics, the leading rows of a series and small ASCII charts.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/hyperion/internal/analysis"
	"github.com/san-kum/hyperion/internal/series"
)

const (
	chartHeight = 10
	chartWidth  = 80
)

type Printer struct {
	w  io.Writer
	st styles
}

func New(w io.Writer) *Printer {
	return &Printer{w: w, st: newStyles(w)}
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) field(label string, value string) {
	p.printf("%s %s\n", p.st.label.Render(label+":"), p.st.value.Render(value))
}

func (p *Printer) Title(text string) {
	p.printf("%s\n", p.st.title.Render(text))
}

// LyapunovSummary prints the estimator summary. Values are printed as they
// are, so -Inf shows up when a zero step was not floored.
func (p *Printer) LyapunovSummary(s analysis.Summary) {
	p.Title("lyapunov summary")
	p.field("samples", fmt.Sprintf("%d", s.Samples))
	p.field("mean instantaneous exponent", fmt.Sprintf("%.6f", s.MeanInstantaneous))
	p.field("final cumulative exponent", fmt.Sprintf("%.6f", s.FinalCumulative))
	p.field("instantaneous range", fmt.Sprintf("[%.6f, %.6f]", s.MinInstantaneous, s.MaxInstantaneous))
	p.field("sampled points", fmt.Sprintf("%d", s.SampledCount))
	if s.ZeroSteps > 0 {
		p.printf("%s\n", p.st.warn.Render(fmt.Sprintf("%d step(s) with zero angular displacement", s.ZeroSteps)))
	}
}

// Insufficient reports that a series is too short to estimate anything.
func (p *Printer) Insufficient(n int) {
	p.printf("%s\n", p.st.warn.Render("insufficient data to compute Lyapunov exponents"))
	p.field("samples found", fmt.Sprintf("%d", n))
}

// SeriesOverview prints the sample counts and the first head rows with theta
// normalized.
func (p *Printer) SeriesOverview(s *series.Series, head int) {
	p.field("samples", fmt.Sprintf("%d", s.Len()))
	p.field("sampled points", fmt.Sprintf("%d", analysis.CountSampled(s.Sampled)))
	if md := s.Metadata; md != nil && md.RunID != "" {
		p.field("run id", md.RunID)
		if md.Preset != "" {
			p.field("preset", md.Preset)
		}
	}
	if head <= 0 || s.Len() == 0 {
		return
	}

	p.printf("\nfirst %d rows:\n", min(head, s.Len()))
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "t\tomega\ttheta\tis_sampled")
	fmt.Fprintln(tw, "-\t-----\t-----\t----------")
	for _, smp := range s.Head(head) {
		fmt.Fprintf(tw, "%.4f\t%.6f\t%.6f\t%t\n", smp.T, smp.Omega, analysis.NormalizeAngle(smp.Theta), smp.Sampled)
	}
	tw.Flush()
}

// LyapunovCharts plots the instantaneous and cumulative sequences.
func (p *Printer) LyapunovCharts(est *analysis.LyapunovEstimate) {
	p.chart(est.Instantaneous, "instantaneous lyapunov exponent")
	p.chart(est.Cumulative, "cumulative lyapunov exponent")
}

// SeriesCharts plots theta and omega over the first window samples.
func (p *Printer) SeriesCharts(s *series.Series, window int) {
	n := min(max(window, 0), s.Len())
	p.chart(analysis.NormalizeAngles(s.Theta[:n]), "theta (normalized)")
	p.chart(s.Omega[:n], "omega (angular velocity)")
}

func (p *Printer) chart(values []float64, caption string) {
	data := finite(values)
	if len(data) < 2 {
		p.printf("%s\n\n", p.st.subtle.Render(caption+": nothing to plot"))
		return
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(caption),
	)
	p.printf("%s\n\n", graph)
}

// PhasePortrait draws theta against omega in a box.
func (p *Printer) PhasePortrait(portrait *analysis.PhasePortrait2D, caption string) {
	art := portrait.ASCII(chartWidth-4, chartHeight*2)
	if art == "" {
		p.printf("%s\n\n", p.st.subtle.Render(caption+": nothing to plot"))
		return
	}
	p.printf("%s\n%s\n\n", p.st.box.Render(strings.TrimSuffix(art, "\n")), p.st.subtle.Render(caption))
}

func (p *Printer) Separation(results []analysis.SeparationResult) {
	p.Title("trajectory separation")
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "perturbation\texponent\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%.1e\t%.6f\t\n", r.Perturbation, r.Exponent)
	}
	tw.Flush()
}

func (p *Printer) Presets(names []string) {
	p.printf("available presets:\n")
	for _, n := range names {
		p.printf("  %s\n", n)
	}
}

func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
