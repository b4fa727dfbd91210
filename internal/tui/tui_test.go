// ABOUTME: Tests for the chart, rest timer model, settings form values and dashboard.
// ABOUTME: Models are driven with messages directly; no program is started.
package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/fittrack/internal/app"
	"github.com/harperreed/fittrack/internal/errs"
	"github.com/harperreed/fittrack/internal/metrics"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// Started by an init func in a badger dependency.
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

func testSeries() metrics.Series {
	settings := models.DefaultSettings()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var records []*models.Record
	for i, w := range []float64{86, 85.5, 85, 84.2} {
		records = append(records, models.NewRecord(start.AddDate(0, 0, i), w))
	}
	return metrics.ChartSeries(records, settings, 0)
}

func TestRenderChart(t *testing.T) {
	st := StylesFor(models.ThemeDark)

	assert.Contains(t, RenderChart(metrics.Series{}, st, 40, 10), "No records")

	out := RenderChart(testSeries(), st, 40, 10)
	assert.Contains(t, out, "84.2 kg")
	assert.Contains(t, out, "target 65.0 kg")
	assert.Contains(t, out, "scale 63.0 .. 90.0 kg")
	assert.Contains(t, out, "Jan 01 .. Jan 04")
}

func TestRenderChartScalesToSeriesDomain(t *testing.T) {
	const height = 8
	st := StylesFor(models.ThemeDark)
	points := []metrics.Point{{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Weight: 80}}

	tight := metrics.Series{Points: points, Target: 70, Min: 70, Max: 80}
	loose := metrics.Series{Points: points, Target: 70, Min: 70, Max: 110}

	bars := func(s metrics.Series) string {
		lines := strings.Split(RenderChart(s, st, 30, height), "\n")
		require.GreaterOrEqual(t, len(lines), height)
		return strings.Join(lines[:height], "\n")
	}
	assert.NotEqual(t, bars(tight), bars(loose), "the same weight is drawn shorter in a wider domain")
}

func TestSparkline(t *testing.T) {
	line := Sparkline(testSeries())
	assert.Equal(t, 4, len([]rune(line)))
	assert.Empty(t, Sparkline(metrics.Series{}))
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRestTimerCompletes(t *testing.T) {
	m := NewRestTimer("Squat", 60*time.Second, StylesFor(models.ThemeDark))
	assert.Contains(t, m.View(), "Rest: Squat")
	assert.Contains(t, m.View(), "01:00")

	model, cmd := m.Update(timer.TimeoutMsg{ID: m.timer.ID()})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, model.(RestTimer).Result().Completed)
}

func TestRestTimerIgnoresOtherTimers(t *testing.T) {
	m := NewRestTimer("Squat", time.Minute, StylesFor(models.ThemeDark))
	model, cmd := m.Update(timer.TimeoutMsg{ID: m.timer.ID() + 1000})
	assert.Nil(t, cmd)
	assert.False(t, model.(RestTimer).Result().Completed)
}

func TestRestTimerKeys(t *testing.T) {
	st := StylesFor(models.ThemeLight)

	t.Run("skip", func(t *testing.T) {
		m := NewRestTimer("Row", 45*time.Second, st)
		model, cmd := m.Update(keyMsg("s"))
		require.NotNil(t, cmd)
		res := model.(RestTimer).Result()
		assert.True(t, res.Skipped)
		assert.Equal(t, 45*time.Second, res.Remaining)
	})

	t.Run("quit", func(t *testing.T) {
		m := NewRestTimer("Row", 45*time.Second, st)
		model, cmd := m.Update(keyMsg("q"))
		require.NotNil(t, cmd)
		res := model.(RestTimer).Result()
		assert.False(t, res.Skipped)
		assert.False(t, res.Completed)
	})

	t.Run("add", func(t *testing.T) {
		m := NewRestTimer("Row", 45*time.Second, st)
		model, _ := m.Update(keyMsg("+"))
		assert.Contains(t, model.View(), "01:00")
	})

	t.Run("pause", func(t *testing.T) {
		m := NewRestTimer("Row", 45*time.Second, st)
		model, cmd := m.Update(keyMsg(" "))
		require.NotNil(t, cmd)
		model, _ = model.Update(cmd())
		assert.Contains(t, model.View(), "paused")
	})
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", formatClock(0))
	assert.Equal(t, "01:30", formatClock(90*time.Second))
	assert.Equal(t, "12:05", formatClock(12*time.Minute+5*time.Second))
}

func TestSettingsInputUpdate(t *testing.T) {
	s := models.DefaultSettings()
	deadline := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	s.Deadline = &deadline

	in := NewSettingsInput(s)
	assert.Equal(t, "88", in.InitialWeight)
	assert.Equal(t, "2024-06-01", in.Deadline)
	require.NotNil(t, in.Form())

	in.Name = "  Ana "
	in.TargetWeight = "70,5"
	in.Deadline = ""
	in.Theme = string(models.ThemeLight)

	u, err := in.Update()
	require.NoError(t, err)
	next := s.Apply(u)
	assert.Equal(t, "Ana", next.Name)
	assert.Equal(t, 70.5, next.TargetWeight)
	assert.Nil(t, next.Deadline)
	assert.Equal(t, models.ThemeLight, next.Theme)
}

func TestSettingsInputUpdateErrors(t *testing.T) {
	in := NewSettingsInput(models.DefaultSettings())
	in.InitialWeight = "heavy"
	in.Deadline = "someday"

	_, err := in.Update()
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), "initial_weight")
	assert.Contains(t, err.Error(), "deadline")
}

func TestConfirmFormDefaultsToNo(t *testing.T) {
	confirmed := true
	require.NotNil(t, ConfirmForm("Delete everything?", "This cannot be undone.", "Yes, delete", &confirmed))
	assert.False(t, confirmed)
}

func TestRenderDashboard(t *testing.T) {
	change := 0.5
	plan := models.NewWorkoutPlan("Push day", time.Sunday)
	d := &app.Dashboard{
		Today:    time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
		Settings: models.DefaultSettings(),
		Summary: metrics.Summary{
			CurrentWeight: 84.2, InitialWeight: 88, TargetWeight: 65,
			TotalLost: 3.8, Change: &change, Remaining: 19.2, ProgressPercent: 16.5, Records: 4,
		},
		Streak:      4,
		LoggedToday: true,
		WeeklyGoal:  23.0 / 12,
		Insights:    []metrics.Insight{metrics.KeepLogging},
		Chart:       testSeries(),
		TodayPlan:   plan,
	}

	out := RenderDashboard(d, StylesFor(models.ThemeDark), 80)
	assert.Contains(t, out, "Hi User")
	assert.Contains(t, out, "84.2 kg")
	assert.Contains(t, out, "Streak 4 day(s), logged today")
	assert.Contains(t, out, "Projection appears after 14 records.")
	assert.Contains(t, out, metrics.KeepLogging.Title)
	assert.True(t, strings.Contains(out, "Today: Push day"))
	assert.Contains(t, out, "Trend     "+Sparkline(d.Chart))
}
