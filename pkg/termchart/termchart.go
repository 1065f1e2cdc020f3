// Package termchart draws bar chart layouts as terminal text.
package termchart

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vedaangh/microblog/pkg/barchart"
)

type styles struct {
	title    lipgloss.Style
	label    lipgloss.Style
	zero     lipgloss.Style
	value    lipgloss.Style
	positive lipgloss.Style
	negative lipgloss.Style
	series   [2]lipgloss.Style
}

func newStyles(labelWidth int) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).MarginBottom(1),
		label:    lipgloss.NewStyle().Width(labelWidth).Align(lipgloss.Right).PaddingRight(1),
		zero:     lipgloss.NewStyle().Faint(true),
		value:    lipgloss.NewStyle().Faint(true),
		positive: lipgloss.NewStyle().Foreground(lipgloss.Color(barchart.PositiveColor)),
		negative: lipgloss.NewStyle().Foreground(lipgloss.Color(barchart.NegativeColor)),
		series: [2]lipgloss.Style{
			lipgloss.NewStyle().Foreground(lipgloss.Color(barchart.SeriesColors[0])),
			lipgloss.NewStyle().Foreground(lipgloss.Color(barchart.SeriesColors[1])),
		},
	}
}

const (
	fullBlock = `█`
	zeroMark  = `│`
	emptyCell = ` `
)

// Render draws a HorizontalLayout or GroupedLayout on a track of width
// cells. Non-finite or overflowing segments are clipped to the track.
func Render(layout any, width int) (string, error) {
	if width < 10 {
		width = 10
	}
	switch l := layout.(type) {
	case barchart.HorizontalLayout:
		return renderHorizontal(l, width), nil
	case barchart.GroupedLayout:
		return renderGrouped(l, width), nil
	}
	return ``, barchart.ErrUnknownLayout
}

// cells converts percentages into a [start, end) cell span.
func cells(left, barWidth float64, width int) (int, int) {
	if math.IsNaN(left) || math.IsNaN(barWidth) {
		return 0, 0
	}
	start := int(math.Round(clamp(left) / 100 * float64(width)))
	end := int(math.Round(clamp(left+barWidth) / 100 * float64(width)))
	return start, end
}

func clamp(p float64) float64 {
	return math.Max(0, math.Min(100, p))
}

func track(width int, zero int, start int, end int, bar lipgloss.Style, zeroStyle lipgloss.Style) string {
	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i >= start && i < end:
			b.WriteString(bar.Render(fullBlock))
		case i == zero:
			b.WriteString(zeroStyle.Render(zeroMark))
		default:
			b.WriteString(emptyCell)
		}
	}
	return b.String()
}

func labelWidth(labels []string) int {
	w := 0
	for _, label := range labels {
		w = max(w, lipgloss.Width(label))
	}
	return w + 1
}

func renderHorizontal(l barchart.HorizontalLayout, width int) string {
	labels := make([]string, len(l.Bars))
	for i, bar := range l.Bars {
		labels[i] = bar.Label
	}
	st := newStyles(labelWidth(labels))
	zero := -1
	if z := l.ZeroOffset; !math.IsNaN(z) && !math.IsInf(z, 0) {
		zero = min(width-1, int(math.Round(clamp(z)/100*float64(width))))
	}
	lines := make([]string, 0, len(l.Bars)+1)
	if len(l.Title) > 0 {
		lines = append(lines, st.title.Render(l.Title))
	}
	for _, bar := range l.Bars {
		start, end := cells(bar.Left, bar.Width, width)
		style := st.negative
		if bar.Positive {
			style = st.positive
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			st.label.Render(bar.Label),
			track(width, zero, start, end, style, st.zero),
			` `+st.value.Render(bar.Display),
		))
	}
	return strings.Join(lines, "\n")
}

func renderGrouped(l barchart.GroupedLayout, width int) string {
	labels := make([]string, len(l.Rows))
	for i, row := range l.Rows {
		labels[i] = row.Label
	}
	st := newStyles(labelWidth(labels))
	zero := min(width-1, width/2)
	lines := make([]string, 0, len(l.Rows)*2+2)
	if len(l.Title) > 0 {
		lines = append(lines, st.title.Render(l.Title))
	}
	legend := make([]string, len(l.Legend))
	for s, item := range l.Legend {
		legend[s] = st.series[s].Render(fullBlock) + ` ` + item.Name
	}
	lines = append(lines, strings.Join(legend, `   `))
	for _, row := range l.Rows {
		for s, bar := range row.Bars {
			label := ``
			if s == 0 {
				label = row.Label
			}
			start, end := cells(bar.Left, bar.Width, width)
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
				st.label.Render(label),
				track(width, zero, start, end, st.series[s], st.zero),
				` `+st.value.Render(bar.Display),
			))
		}
	}
	return strings.Join(lines, "\n")
}
