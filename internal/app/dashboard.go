// ABOUTME: Dashboard assembly from one snapshot of records, plans and settings.
// ABOUTME: All numbers come from the metrics package.
package app

import (
	"context"
	"time"

	"github.com/harperreed/fittrack/internal/metrics"
	"github.com/harperreed/fittrack/internal/models"
)

// DefaultChartPoints is how many recent records the dashboard chart shows.
const DefaultChartPoints = 14

// Dashboard is everything the main view shows.
type Dashboard struct {
	Today       time.Time
	Settings    models.Settings
	Summary     metrics.Summary
	Streak      int
	LoggedToday bool
	WeeklyGoal  float64
	// Projection is nil until there are enough records.
	Projection *metrics.Projection
	Insights   []metrics.Insight
	Chart      metrics.Series
	Workouts   metrics.WorkoutSummary
	TodayPlan  *models.WorkoutPlan
	TodayDone  bool
}

// Dashboard computes the dashboard as of the session's today.
func (s *Session) Dashboard(ctx context.Context) (*Dashboard, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	settings, err := s.db.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.db.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	plans, checkins, err := s.workoutSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	d := &Dashboard{
		Today:      today,
		Settings:   settings,
		Summary:    metrics.Summarize(records, settings),
		Streak:     metrics.Streak(records, today),
		WeeklyGoal: metrics.WeeklyGoal(settings, today),
		Insights:   metrics.Insights(records),
		Chart:      metrics.ChartSeries(records, settings, DefaultChartPoints),
		Workouts:   metrics.WorkoutStats(plans, checkins, today),
		TodayPlan:  metrics.TodayPlan(plans, today),
	}
	d.LoggedToday = d.Streak > 0
	if p, ok := metrics.WeeklyProgress(records, settings, today); ok {
		d.Projection = &p
	}
	if d.TodayPlan != nil {
		d.TodayDone = metrics.CheckedIn(checkins, d.TodayPlan, today)
	}
	return d, nil
}

// Chart returns the weight series for the n most recent records.
func (s *Session) Chart(ctx context.Context, n int) (metrics.Series, error) {
	if err := s.ready(); err != nil {
		return metrics.Series{}, err
	}
	settings, err := s.db.GetSettings(ctx)
	if err != nil {
		return metrics.Series{}, err
	}
	records, err := s.db.ListRecords(ctx)
	if err != nil {
		return metrics.Series{}, err
	}
	return metrics.ChartSeries(records, settings, n), nil
}

// Insights returns the current insights.
func (s *Session) Insights(ctx context.Context) ([]metrics.Insight, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	records, err := s.db.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.Insights(records), nil
}
