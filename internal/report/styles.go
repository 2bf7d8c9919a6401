package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	warn   lipgloss.Style
	subtle lipgloss.Style
	box    lipgloss.Style
}

// newStyles binds the palette to w so that colour is dropped when w is not a
// terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466")),
		label: r.NewStyle().Foreground(lipgloss.Color("#888899")),
		value: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff")),
		warn:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00")),
		subtle: r.NewStyle().
			Foreground(lipgloss.Color("#666688")).
			Italic(true),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1),
	}
}
