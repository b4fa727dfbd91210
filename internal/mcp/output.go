// ABOUTME: JSON shapes returned by MCP tools and resources.
// ABOUTME: Dates are YYYY-MM-DD strings and IDs are strings so schemas stay simple.
package mcp

import (
	"time"

	"github.com/harperreed/fittrack/internal/app"
	"github.com/harperreed/fittrack/internal/metrics"
	"github.com/harperreed/fittrack/internal/models"
)

type simpleOutput struct {
	Message string `json:"message"`
}

type recordOutput struct {
	Date       string   `json:"date"`
	Weight     float64  `json:"weight"`
	Waist      *float64 `json:"waist,omitempty"`
	Water      *float64 `json:"water,omitempty"`
	Sleep      *float64 `json:"sleep,omitempty"`
	Note       string   `json:"note,omitempty"`
	FrontPhoto bool     `json:"front_photo"`
	SidePhoto  bool     `json:"side_photo"`
	// Change is kilograms lost since the previous record.
	Change *float64 `json:"change,omitempty"`
}

func toRecordOutput(r *models.Record) recordOutput {
	out := recordOutput{
		Date:       r.DateString(),
		Weight:     r.Weight,
		Waist:      r.Waist,
		Water:      r.Water,
		Sleep:      r.Sleep,
		FrontPhoto: r.FrontPhotoRef != nil,
		SidePhoto:  r.SidePhotoRef != nil,
	}
	if r.Note != nil {
		out.Note = *r.Note
	}
	return out
}

func toHistoryOutput(entries []metrics.HistoryEntry) []recordOutput {
	out := make([]recordOutput, len(entries))
	for i, e := range entries {
		out[i] = toRecordOutput(e.Record)
		out[i].Change = e.Change
	}
	return out
}

type summaryOutput struct {
	CurrentWeight   float64  `json:"current_weight"`
	InitialWeight   float64  `json:"initial_weight"`
	TargetWeight    float64  `json:"target_weight"`
	TotalLost       float64  `json:"total_lost"`
	Change          *float64 `json:"change,omitempty"`
	Remaining       float64  `json:"remaining"`
	ProgressPercent float64  `json:"progress_percent"`
	Records         int      `json:"records"`
	LastDate        string   `json:"last_date,omitempty"`
}

func toSummaryOutput(s metrics.Summary) summaryOutput {
	out := summaryOutput{
		CurrentWeight:   s.CurrentWeight,
		InitialWeight:   s.InitialWeight,
		TargetWeight:    s.TargetWeight,
		TotalLost:       s.TotalLost,
		Change:          s.Change,
		Remaining:       s.Remaining,
		ProgressPercent: s.ProgressPercent,
		Records:         s.Records,
	}
	if s.LastDate != nil {
		out.LastDate = models.FormatDate(*s.LastDate)
	}
	return out
}

type projectionOutput struct {
	Goal          float64 `json:"goal"`
	Progress      float64 `json:"progress"`
	Percent       float64 `json:"percent"`
	OnTrack       bool    `json:"on_track"`
	PlannedWeeks  int     `json:"planned_weeks"`
	DaysRemaining *int    `json:"days_remaining,omitempty"`
}

type pointOutput struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

type chartOutput struct {
	Points []pointOutput `json:"points"`
	Target float64       `json:"target"`
	Min    float64       `json:"min"`
	Max    float64       `json:"max"`
}

func toChartOutput(s metrics.Series) chartOutput {
	out := chartOutput{
		Points: make([]pointOutput, len(s.Points)),
		Target: s.Target,
		Min:    s.Min,
		Max:    s.Max,
	}
	for i, p := range s.Points {
		out.Points[i] = pointOutput{Date: models.FormatDate(p.Date), Weight: p.Weight}
	}
	return out
}

type settingsOutput struct {
	Name            string  `json:"name"`
	InitialWeight   float64 `json:"initial_weight"`
	TargetWeight    float64 `json:"target_weight"`
	Deadline        string  `json:"deadline,omitempty"`
	ReminderEnabled bool    `json:"reminder_enabled"`
	ReminderTime    string  `json:"reminder_time"`
	Theme           string  `json:"theme"`
}

func toSettingsOutput(s models.Settings) settingsOutput {
	out := settingsOutput{
		Name:            s.Name,
		InitialWeight:   s.InitialWeight,
		TargetWeight:    s.TargetWeight,
		ReminderEnabled: s.ReminderEnabled,
		ReminderTime:    s.ReminderTime,
		Theme:           string(s.Theme),
	}
	if s.Deadline != nil {
		out.Deadline = models.FormatDate(*s.Deadline)
	}
	return out
}

type exerciseOutput struct {
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	RestSeconds int    `json:"rest_seconds"`
	Load        string `json:"load,omitempty"`
}

type planOutput struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Days        []string         `json:"days"`
	Active      bool             `json:"active"`
	Exercises   []exerciseOutput `json:"exercises"`
}

func toPlanOutput(p *models.WorkoutPlan) planOutput {
	out := planOutput{
		ID:        p.ID.String(),
		Name:      p.Name,
		Days:      p.DayNames(),
		Active:    p.IsActive,
		Exercises: make([]exerciseOutput, len(p.Exercises)),
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	for i, e := range p.Exercises {
		out.Exercises[i] = exerciseOutput{
			Name:        e.Name,
			Sets:        e.SetCount,
			Reps:        e.RepRange,
			RestSeconds: e.RestSeconds,
		}
		if e.Load != nil {
			out.Exercises[i].Load = *e.Load
		}
	}
	return out
}

type workoutStatsOutput struct {
	Stats     metrics.WorkoutSummary `json:"stats"`
	TodayPlan *planOutput            `json:"today_plan,omitempty"`
	TodayDone bool                   `json:"today_done"`
}

type dashboardOutput struct {
	Today       string             `json:"today"`
	Name        string             `json:"name"`
	Summary     summaryOutput      `json:"summary"`
	Streak      int                `json:"streak"`
	LoggedToday bool               `json:"logged_today"`
	WeeklyGoal  float64            `json:"weekly_goal"`
	Projection  *projectionOutput  `json:"projection,omitempty"`
	Insights    []metrics.Insight  `json:"insights"`
	Chart       chartOutput        `json:"chart"`
	Workouts    workoutStatsOutput `json:"workouts"`
}

func toDashboardOutput(d *app.Dashboard) dashboardOutput {
	out := dashboardOutput{
		Today:       models.FormatDate(d.Today),
		Name:        d.Settings.Name,
		Summary:     toSummaryOutput(d.Summary),
		Streak:      d.Streak,
		LoggedToday: d.LoggedToday,
		WeeklyGoal:  d.WeeklyGoal,
		Insights:    d.Insights,
		Chart:       toChartOutput(d.Chart),
		Workouts: workoutStatsOutput{
			Stats:     d.Workouts,
			TodayDone: d.TodayDone,
		},
	}
	if p := d.Projection; p != nil {
		out.Projection = &projectionOutput{
			Goal:          p.Goal,
			Progress:      p.Progress,
			Percent:       p.Percent,
			OnTrack:       p.OnTrack,
			PlannedWeeks:  p.PlannedWeeks,
			DaysRemaining: p.DaysRemaining,
		}
	}
	if d.TodayPlan != nil {
		plan := toPlanOutput(d.TodayPlan)
		out.Workouts.TodayPlan = &plan
	}
	return out
}

// parseDay reads an optional YYYY-MM-DD or dd/mm/yyyy date, defaulting
// to today.
func parseDay(s string, today time.Time) (time.Time, error) {
	if s == "" {
		return today, nil
	}
	return models.ParseDate(s)
}
