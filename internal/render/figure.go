// Package render draws hyperion results to image files (PNG, SVG, PDF, ...)
// and to a self-contained HTML page.
//
// Non-finite values are dropped before plotting and log-scale panels also
// drop non-positive values; the plotting libraries reject both.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/hyperion/internal/analysis"
	"github.com/san-kum/hyperion/internal/series"
)

var ErrEmptyFigure = errors.New("render: nothing to draw")

// Size is a figure size in inches.
type Size struct {
	Width, Height float64
}

var DefaultSize = Size{Width: 15, Height: 10}

var (
	blue      = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	red       = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	green     = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	purple    = color.RGBA{R: 128, G: 0, B: 128, A: 255}
	orange    = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	darkGreen = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	gray      = color.RGBA{R: 160, G: 160, B: 160, A: 255}
)

// LyapunovFigure draws the 2x3 estimator overview: angular step (log scale),
// instantaneous and cumulative exponents, normalized theta, the theta-omega
// phase curve and a statistics panel.
func LyapunovFigure(path string, s *series.Series, est *analysis.LyapunovEstimate, size Size) error {
	if est == nil || len(est.Times) == 0 {
		return ErrEmptyFigure
	}

	delta, err := linePanel("angular step", "t", "Δθ", est.Times, est.DeltaTheta, blue, positive)
	if err != nil {
		return err
	}
	if len(finitePairs(est.Times, est.DeltaTheta, positive)) > 0 {
		logScale(delta)
	}

	inst, err := linePanel("instantaneous Lyapunov exponent", "t", "λ", est.Times, est.Instantaneous, red, finite)
	if err != nil {
		return err
	}
	cum, err := linePanel("cumulative Lyapunov exponent", "t", "λ", est.Times, est.Cumulative, green, finite)
	if err != nil {
		return err
	}
	theta, err := linePanel("theta", "t", "θ", s.T, est.Theta, purple, finite)
	if err != nil {
		return err
	}
	phase, err := linePanel("theta-omega phase", "θ", "ω", est.Theta, s.Omega, orange, finite)
	if err != nil {
		return err
	}

	sum := est.Summary
	stats, err := textPanel("statistics", []string{
		fmt.Sprintf("samples: %d", sum.Samples),
		fmt.Sprintf("mean instantaneous λ: %.4f", sum.MeanInstantaneous),
		fmt.Sprintf("final cumulative λ: %.4f", sum.FinalCumulative),
		fmt.Sprintf("max instantaneous λ: %.4f", sum.MaxInstantaneous),
		fmt.Sprintf("min instantaneous λ: %.4f", sum.MinInstantaneous),
		fmt.Sprintf("sampled points: %d", sum.SampledCount),
	})
	if err != nil {
		return err
	}

	return saveGrid(path, size, [][]*plot.Plot{
		{delta, inst, cum},
		{theta, phase, stats},
	})
}

// SeriesFigure draws the 3x1 series overview: theta and omega over the first
// window samples, the Poincaré section, and every point in the phase plane.
// Theta is normalized before drawing.
func SeriesFigure(path string, s *series.Series, window int, size Size) error {
	n := s.Len()
	if n == 0 {
		return ErrEmptyFigure
	}
	theta := analysis.NormalizeAngles(s.Theta)
	w := min(max(window, 0), n)

	timeline := newPanel(fmt.Sprintf("omega and theta (first %d points)", w), "t", "value")
	if err := addLine(timeline, "ω", s.T[:w], s.Omega[:w], red, finite); err != nil {
		return err
	}
	if err := addLine(timeline, "θ", s.T[:w], theta[:w], blue, finite); err != nil {
		return err
	}
	timeline.Legend.Top = true

	poincare := newPanel("Poincaré section", "θ", "ω")
	var st, so []float64
	for i, flag := range s.Sampled {
		if flag {
			st = append(st, theta[i])
			so = append(so, s.Omega[i])
		}
	}
	if err := addScatter(poincare, "sampled", st, so, darkGreen, 1.5); err != nil {
		return err
	}

	all := newPanel("all points", "θ", "ω")
	if err := addScatter(all, "all", theta, s.Omega, gray, 0.6); err != nil {
		return err
	}

	return saveGrid(path, size, [][]*plot.Plot{{timeline}, {poincare}, {all}})
}

func newPanel(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{Y: 220}
	grid.Horizontal.Color = color.Gray{Y: 220}
	p.Add(grid)
	return p
}

func linePanel(title, xlabel, ylabel string, xs, ys []float64, c color.Color, keep func(x, y float64) bool) (*plot.Plot, error) {
	p := newPanel(title, xlabel, ylabel)
	if err := addLine(p, "", xs, ys, c, keep); err != nil {
		return nil, err
	}
	return p, nil
}

func addLine(p *plot.Plot, name string, xs, ys []float64, c color.Color, keep func(x, y float64) bool) error {
	pts := finitePairs(xs, ys, keep)
	if len(pts) == 0 {
		return nil
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(0.8)
	p.Add(line)
	if name != "" {
		p.Legend.Add(name, line)
	}
	return nil
}

func addScatter(p *plot.Plot, name string, xs, ys []float64, c color.Color, radius float64) error {
	pts := finitePairs(xs, ys, finite)
	if len(pts) == 0 {
		return nil
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Color = c
	sc.GlyphStyle.Radius = vg.Points(radius)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)
	p.Legend.Add(name, sc)
	return nil
}

func textPanel(title string, lines []string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	xys := make(plotter.XYs, len(lines))
	for i := range lines {
		xys[i] = plotter.XY{X: 0.05, Y: 0.9 - 0.1*float64(i)}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: lines})
	if err != nil {
		return nil, err
	}
	p.Add(labels)
	return p, nil
}

// logScale switches the y axis to log10. A flat range is widened by a
// decade on each side, since the default widening can cross zero.
func logScale(p *plot.Plot) {
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	if p.Y.Min == p.Y.Max {
		p.Y.Min /= 10
		p.Y.Max *= 10
	}
}

func finitePairs(xs, ys []float64, keep func(x, y float64) bool) plotter.XYs {
	n := min(len(xs), len(ys))
	pts := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		if keep(xs[i], ys[i]) {
			pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
		}
	}
	return pts
}

func finite(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && !math.IsNaN(y) && !math.IsInf(y, 0)
}

func positive(x, y float64) bool {
	return finite(x, y) && y > 0
}

// saveGrid lays the panels out on one canvas and writes it in the format
// named by the file extension.
func saveGrid(path string, size Size, panels [][]*plot.Plot) error {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		format = "png"
	}

	img, err := draw.NewFormattedCanvas(vg.Length(size.Width)*vg.Inch, vg.Length(size.Height)*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      len(panels),
		Cols:      len(panels[0]),
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(panels, tiles, dc)
	for j := range panels {
		for i := range panels[j] {
			panels[j][i].Draw(canvases[j][i])
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := img.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
