package analysis

import (
	"math"
	"strings"
)

// Point is one (x, y) coordinate of a phase portrait.
type Point struct{ X, Y float64 }

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	Points []Point
}

// NewPhasePortrait pairs xs and ys, skipping non-finite coordinates. Extra
// elements of the longer slice are ignored.
func NewPhasePortrait(xs, ys []float64) *PhasePortrait2D {
	n := min(len(xs), len(ys))
	portrait := &PhasePortrait2D{Points: make([]Point, 0, n)}
	for i := 0; i < n; i++ {
		if !isFinite(xs[i]) || !isFinite(ys[i]) {
			continue
		}
		portrait.Points = append(portrait.Points, Point{X: xs[i], Y: ys[i]})
	}
	return portrait
}

// PoincarePortrait keeps only the points whose flag is set.
func PoincarePortrait(xs, ys []float64, flags []bool) *PhasePortrait2D {
	n := min(len(xs), len(ys), len(flags))
	var px, py []float64
	for i := 0; i < n; i++ {
		if flags[i] {
			px = append(px, xs[i])
			py = append(py, ys[i])
		}
	}
	return NewPhasePortrait(px, py)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Bounds returns the padded data extent: 10% margin on each side, and a
// unit span for degenerate axes. An empty portrait spans [-1, 1] on both axes.
func (p *PhasePortrait2D) Bounds() (minX, maxX, minY, maxY float64) {
	if p == nil || len(p.Points) == 0 {
		return -1, 1, -1, 1
	}
	minX, maxX = p.Points[0].X, p.Points[0].X
	minY, maxY = p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points[1:] {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}

	pad := func(lo, hi float64) (float64, float64) {
		span := hi - lo
		if span == 0 {
			span = 1
		}
		return lo - 0.1*span, hi + 0.1*span
	}
	minX, maxX = pad(minX, maxX)
	minY, maxY = pad(minY, maxY)
	return minX, maxX, minY, maxY
}

// ASCII renders the portrait on a width x height character grid. Points are
// drawn as '.', 'o' and '●' for the first, middle and last third of the
// trajectory; zero axes are drawn where they fall inside the frame.
func (p *PhasePortrait2D) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX, minY, maxY := p.Bounds()
	col := func(x float64) int { return int((x - minX) / (maxX - minX) * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-minY)/(maxY-minY)*float64(height-1)) }

	canvas := make([][]rune, height)
	for r := range canvas {
		canvas[r] = []rune(strings.Repeat(" ", width))
	}

	if minX <= 0 && maxX >= 0 {
		c := col(0)
		for r := range canvas {
			canvas[r][c] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		r := row(0)
		for c := range canvas[r] {
			canvas[r][c] = '─'
		}
	}

	n := len(p.Points)
	for i, pt := range p.Points {
		glyph := '●'
		switch {
		case i < n/3:
			glyph = '.'
		case i < 2*n/3:
			glyph = 'o'
		}
		canvas[row(pt.Y)][col(pt.X)] = glyph
	}

	var sb strings.Builder
	for _, r := range canvas {
		sb.WriteString(string(r))
		sb.WriteRune('\n')
	}
	return sb.String()
}
