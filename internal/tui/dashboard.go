// ABOUTME: Static dashboard rendering: summary, goal projection, insights, chart.
// ABOUTME: It prints once and exits; there is no interactive loop.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/fittrack/internal/app"
	"github.com/harperreed/fittrack/internal/models"
)

// RenderDashboard lays out the dashboard for a terminal width.
func RenderDashboard(d *app.Dashboard, st Styles, width int) string {
	inner := max(width-4, minChartWidth)
	sections := []string{
		st.Title.Render(fmt.Sprintf("Hi %s, today is %s", d.Settings.Name, d.Today.Format("Mon Jan 02"))),
		"",
		renderSummary(d, st),
		"",
		renderGoal(d, st),
		"",
		st.Title.Render("Insights"),
	}
	for _, in := range d.Insights {
		sections = append(sections, st.Insight.Render(fmt.Sprintf("%s: %s", in.Title, in.Text)))
	}
	sections = append(sections, "", RenderChart(d.Chart, st, inner, 10), "", renderWorkouts(d, st))

	return st.Panel.Width(inner).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderSummary(d *app.Dashboard, st Styles) string {
	s := d.Summary
	rows := []string{
		fmt.Sprintf("Current   %s", st.Value.Render(fmt.Sprintf("%.1f kg", s.CurrentWeight))),
		fmt.Sprintf("Lost      %.1f kg of %.1f kg (%.0f%%)", s.TotalLost, s.InitialWeight-s.TargetWeight, s.ProgressPercent),
		fmt.Sprintf("Remaining %.1f kg", s.Remaining),
	}
	if s.Change != nil {
		rows = append(rows, fmt.Sprintf("Last change %+.1f kg", -*s.Change))
	}
	if trend := Sparkline(d.Chart); trend != "" {
		rows = append(rows, "Trend     "+st.Value.Render(trend))
	}

	streak := fmt.Sprintf("Streak %d day(s)", d.Streak)
	if d.LoggedToday {
		rows = append(rows, st.Good.Render(streak+", logged today"))
	} else {
		rows = append(rows, st.Warn.Render(streak+", nothing logged today"))
	}
	return strings.Join(rows, "\n")
}

func renderGoal(d *app.Dashboard, st Styles) string {
	line := fmt.Sprintf("Weekly goal %.2f kg/week", d.WeeklyGoal)
	if d.Settings.Deadline != nil {
		line += " until " + models.FormatDate(*d.Settings.Deadline)
	}
	p := d.Projection
	if p == nil {
		return line + "\n" + st.Muted.Render("Projection appears after 14 records.")
	}
	status := st.Good.Render("on track")
	if !p.OnTrack {
		status = st.Warn.Render("behind")
	}
	line += fmt.Sprintf("\nLast 7 records: %.2f kg lost (%.0f%% of goal), %s", p.Progress, p.Percent, status)
	if p.DaysRemaining != nil {
		line += fmt.Sprintf(", %d day(s) left", *p.DaysRemaining)
	}
	return line
}

func renderWorkouts(d *app.Dashboard, st Styles) string {
	w := d.Workouts
	line := fmt.Sprintf("Workouts %d total, %d this week, adherence %d%%, streak %d",
		w.Total, w.ThisWeek, w.Adherence, w.Streak)
	switch {
	case d.TodayPlan == nil:
		line += "\n" + st.Muted.Render("No workout scheduled today.")
	case d.TodayDone:
		line += "\n" + st.Good.Render("Today: "+d.TodayPlan.Name+" (done)")
	default:
		line += "\n" + st.Warn.Render("Today: "+d.TodayPlan.Name)
	}
	return line
}
