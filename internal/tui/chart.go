// ABOUTME: Terminal bar chart of the weight series using ntcharts.
// ABOUTME: Bars are drawn above the series floor so small changes stay visible.
package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/fittrack/internal/metrics"
)

const (
	minChartWidth  = 20
	minChartHeight = 6
)

// RenderChart draws one bar per point. Bar height is weight minus the
// series minimum, scaled to the series domain, and the axis labels show
// the day of month. Bars at or below the target use the good style.
func RenderChart(series metrics.Series, st Styles, width, height int) string {
	if len(series.Points) == 0 {
		return st.Muted.Render("No records to chart yet.")
	}
	width = max(width, minChartWidth)
	height = max(height, minChartHeight)

	chart := barchart.New(width, height, barchart.WithMaxValue(series.Max-series.Min))
	bars := make([]barchart.BarData, 0, len(series.Points))
	for _, p := range series.Points {
		style := st.Bar
		if p.Weight <= series.Target {
			style = st.Good
		}
		bars = append(bars, barchart.BarData{
			Label: p.Date.Format("02"),
			Values: []barchart.BarValue{{
				Name:  p.Date.Format("2006-01-02"),
				Value: p.Weight - series.Min,
				Style: style,
			}},
		})
	}
	chart.PushAll(bars)
	chart.Draw()

	first, last := series.Points[0], series.Points[len(series.Points)-1]
	legend := fmt.Sprintf("%s .. %s   %s   %s",
		first.Date.Format("Jan 02"),
		last.Date.Format("Jan 02"),
		st.Value.Render(fmt.Sprintf("%.1f kg", last.Weight)),
		st.Target.Render(fmt.Sprintf("target %.1f kg", series.Target)),
	)
	scale := st.Muted.Render(fmt.Sprintf("scale %.1f .. %.1f kg", series.Min, series.Max))

	return lipgloss.JoinVertical(lipgloss.Left, chart.View(), legend, scale)
}

// Sparkline renders the series on one line, for narrow output.
func Sparkline(series metrics.Series) string {
	const ticks = "▁▂▃▄▅▆▇█"
	levels := []rune(ticks)
	span := series.Max - series.Min
	if len(series.Points) == 0 || span <= 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range series.Points {
		i := int((p.Weight - series.Min) / span * float64(len(levels)-1))
		i = min(max(i, 0), len(levels)-1)
		b.WriteRune(levels[i])
	}
	return b.String()
}
