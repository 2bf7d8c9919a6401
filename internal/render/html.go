package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/san-kum/hyperion/internal/analysis"
	"github.com/san-kum/hyperion/internal/series"
)

const (
	chartWidth  = "1000px"
	chartHeight = "480px"
)

// HTMLReport writes an interactive page with the series overview and, when
// est is not nil, the Lyapunov sequences.
func HTMLReport(w io.Writer, s *series.Series, est *analysis.LyapunovEstimate, window int) error {
	if s.Len() == 0 {
		return ErrEmptyFigure
	}
	theta := analysis.NormalizeAngles(s.Theta)
	n := min(max(window, 0), s.Len())

	page := components.NewPage()
	page.SetPageTitle("hyperion")
	page.AddCharts(
		lineChart(fmt.Sprintf("omega and theta (first %d points)", n), "t",
			namedLine{"ω", s.T[:n], s.Omega[:n]},
			namedLine{"θ", s.T[:n], theta[:n]},
		),
		scatterChart("Poincaré section", theta, s.Omega, s.Sampled, 4),
		scatterChart("all points", theta, s.Omega, nil, 2),
	)
	if est != nil {
		page.AddCharts(lineChart("Lyapunov exponent", "t",
			namedLine{"instantaneous", est.Times, est.Instantaneous},
			namedLine{"cumulative", est.Times, est.Cumulative},
		))
	}

	return page.Render(w)
}

type namedLine struct {
	name   string
	xs, ys []float64
}

func lineChart(title, xname string, lines ...namedLine) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: xname, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Scale: opts.Bool(true)}),
	)
	for _, l := range lines {
		pts := finitePairs(l.xs, l.ys, finite)
		data := make([]opts.LineData, len(pts))
		for i, p := range pts {
			data[i] = opts.LineData{Value: []interface{}{p.X, p.Y}}
		}
		line.AddSeries(l.name, data, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	}
	return line
}

// scatterChart plots theta against omega, restricted to flagged points when
// flags is not nil.
func scatterChart(title string, theta, omega []float64, flags []bool, size int) *charts.Scatter {
	data := make([]opts.ScatterData, 0, len(theta))
	for i := range theta {
		if flags != nil && !flags[i] {
			continue
		}
		if !finite(theta[i], omega[i]) {
			continue
		}
		data = append(data, opts.ScatterData{Value: []interface{}{theta[i], omega[i]}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("points=%d", len(data))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "θ", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "ω", NameLocation: "middle", NameGap: 30, Scale: opts.Bool(true)}),
	)
	scatter.AddSeries(title, data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: size}))
	return scatter
}
