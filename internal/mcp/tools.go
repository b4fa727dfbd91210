// ABOUTME: MCP tool implementations for fittrack.
// ABOUTME: Records, dashboard, settings, workout plans and check-ins.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/fittrack/internal/metrics"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// log_record
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_record",
		Description: "Log or replace the day's weight and measurements",
	}, s.handleLogRecord)

	// list_records
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_records",
		Description: "List logged records newest first, with the change from the previous record",
	}, s.handleListRecords)

	// delete_record
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_record",
		Description: "Delete the record for a date",
	}, s.handleDeleteRecord)

	// get_dashboard
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Get progress summary, streak, weekly goal, insights, chart series and workout stats",
	}, s.handleGetDashboard)

	// get_insights
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_insights",
		Description: "Get heuristic insights about sleep, water and weekday patterns",
	}, s.handleGetInsights)

	// update_settings
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_settings",
		Description: "Change name, goal weights, deadline, reminder or theme; omitted fields stay unchanged",
	}, s.handleUpdateSettings)

	// add_workout_plan
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_workout_plan",
		Description: "Create a workout plan scheduled on weekdays",
	}, s.handleAddWorkoutPlan)

	// list_workout_plans
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workout_plans",
		Description: "List workout plans with their exercises",
	}, s.handleListWorkoutPlans)

	// check_in
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "check_in",
		Description: "Record that a workout plan was done (or skipped) on a date",
	}, s.handleCheckIn)

	// get_workout_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout_stats",
		Description: "Get workout totals, streak, weekly adherence and today's plan",
	}, s.handleGetWorkoutStats)
}

// Tool input/output types

type emptyInput struct{}

type logRecordInput struct {
	Date   string   `json:"date,omitempty" jsonschema:"Date as YYYY-MM-DD, defaults to today"`
	Weight float64  `json:"weight" jsonschema:"Body weight in kg"`
	Waist  *float64 `json:"waist,omitempty" jsonschema:"Waist in cm"`
	Water  *float64 `json:"water,omitempty" jsonschema:"Water drunk in litres"`
	Sleep  *float64 `json:"sleep,omitempty" jsonschema:"Hours slept"`
	Note   string   `json:"note,omitempty" jsonschema:"Optional note"`
}

type recordResult struct {
	Record  recordOutput `json:"record"`
	Message string       `json:"message"`
}

type listRecordsInput struct {
	Since string `json:"since,omitempty" jsonschema:"Only records on or after this date (YYYY-MM-DD)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 30)"`
}

type listRecordsOutput struct {
	Records []recordOutput `json:"records"`
	Count   int            `json:"count"`
}

type dateInput struct {
	Date string `json:"date" jsonschema:"Date as YYYY-MM-DD"`
}

type insightsOutput struct {
	Insights []metrics.Insight `json:"insights"`
}

type updateSettingsInput struct {
	Name            *string  `json:"name,omitempty" jsonschema:"Display name"`
	InitialWeight   *float64 `json:"initial_weight,omitempty" jsonschema:"Starting weight in kg"`
	TargetWeight    *float64 `json:"target_weight,omitempty" jsonschema:"Goal weight in kg"`
	Deadline        *string  `json:"deadline,omitempty" jsonschema:"Goal date as YYYY-MM-DD, or empty to clear it"`
	ReminderEnabled *bool    `json:"reminder_enabled,omitempty" jsonschema:"Whether the daily reminder is on"`
	ReminderTime    *string  `json:"reminder_time,omitempty" jsonschema:"Reminder time as HH:MM (24h)"`
	Theme           *string  `json:"theme,omitempty" jsonschema:"dark or light"`
}

type exerciseInput struct {
	Name        string `json:"name" jsonschema:"Exercise name"`
	Sets        int    `json:"sets,omitempty" jsonschema:"Number of sets (default 3)"`
	Reps        string `json:"reps,omitempty" jsonschema:"Rep range such as 8-10 (default 8-10)"`
	RestSeconds *int   `json:"rest_seconds,omitempty" jsonschema:"Rest between sets in seconds (default 60)"`
	Load        string `json:"load,omitempty" jsonschema:"Load such as 20kg"`
}

type addWorkoutPlanInput struct {
	Name        string          `json:"name" jsonschema:"Plan name"`
	Description string          `json:"description,omitempty" jsonschema:"Plan description"`
	Days        []string        `json:"days" jsonschema:"Weekdays such as mon, wed, fri"`
	Exercises   []exerciseInput `json:"exercises" jsonschema:"Exercises in order"`
}

type planResult struct {
	Plan    planOutput `json:"plan"`
	Message string     `json:"message"`
}

type listPlansOutput struct {
	Plans []planOutput `json:"plans"`
}

type checkInInput struct {
	PlanID          string `json:"plan_id" jsonschema:"Workout plan ID or prefix"`
	Date            string `json:"date,omitempty" jsonschema:"Date as YYYY-MM-DD, defaults to today"`
	DurationMinutes *int   `json:"duration_minutes,omitempty" jsonschema:"Duration in minutes"`
	Note            string `json:"note,omitempty" jsonschema:"Optional note"`
	Skipped         bool   `json:"skipped,omitempty" jsonschema:"Mark the workout as skipped instead of done"`
}

// Tool handlers

func (s *Server) handleLogRecord(ctx context.Context, req *mcp.CallToolRequest, input logRecordInput) (*mcp.CallToolResult, recordResult, error) {
	date, err := parseDay(input.Date, s.session.Today())
	if err != nil {
		return nil, recordResult{}, err
	}

	r := models.NewRecord(date, input.Weight)
	if input.Waist != nil {
		r.WithWaist(*input.Waist)
	}
	if input.Water != nil {
		r.WithWater(*input.Water)
	}
	if input.Sleep != nil {
		r.WithSleep(*input.Sleep)
	}
	if input.Note != "" {
		r.WithNote(input.Note)
	}

	saved, err := s.session.SaveRecord(ctx, r, nil)
	if err != nil {
		return nil, recordResult{}, fmt.Errorf("failed to log record: %w", err)
	}

	return nil, recordResult{
		Record:  toRecordOutput(saved),
		Message: fmt.Sprintf("Logged %.1f kg for %s", saved.Weight, saved.DateString()),
	}, nil
}

func (s *Server) handleListRecords(ctx context.Context, req *mcp.CallToolRequest, input listRecordsInput) (*mcp.CallToolResult, listRecordsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 30
	}

	var (
		records []*models.Record
		err     error
	)
	if input.Since != "" {
		since, perr := models.ParseDate(input.Since)
		if perr != nil {
			return nil, listRecordsOutput{}, perr
		}
		records, err = s.session.RecordsSince(ctx, since)
	} else {
		records, err = s.session.Records(ctx)
	}
	if err != nil {
		return nil, listRecordsOutput{}, fmt.Errorf("failed to list records: %w", err)
	}

	history := metrics.History(records)
	if len(history) > input.Limit {
		history = history[:input.Limit]
	}
	out := toHistoryOutput(history)
	return nil, listRecordsOutput{Records: out, Count: len(out)}, nil
}

func (s *Server) handleDeleteRecord(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, simpleOutput, error) {
	date, err := models.ParseDate(input.Date)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.session.DeleteRecord(ctx, date); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete record: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted record: %s", models.FormatDate(date)),
	}, nil
}

func (s *Server) handleGetDashboard(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, dashboardOutput, error) {
	d, err := s.session.Dashboard(ctx)
	if err != nil {
		return nil, dashboardOutput{}, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return nil, toDashboardOutput(d), nil
}

func (s *Server) handleGetInsights(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, insightsOutput, error) {
	insights, err := s.session.Insights(ctx)
	if err != nil {
		return nil, insightsOutput{}, fmt.Errorf("failed to compute insights: %w", err)
	}
	return nil, insightsOutput{Insights: insights}, nil
}

func (s *Server) handleUpdateSettings(ctx context.Context, req *mcp.CallToolRequest, input updateSettingsInput) (*mcp.CallToolResult, settingsOutput, error) {
	u := models.SettingsUpdate{
		Name:            input.Name,
		InitialWeight:   input.InitialWeight,
		TargetWeight:    input.TargetWeight,
		ReminderEnabled: input.ReminderEnabled,
		ReminderTime:    input.ReminderTime,
	}
	if input.Deadline != nil {
		if strings.TrimSpace(*input.Deadline) == "" {
			u.ClearDeadline = true
		} else {
			d, err := models.ParseDate(*input.Deadline)
			if err != nil {
				return nil, settingsOutput{}, err
			}
			u.Deadline = &d
		}
	}
	if input.Theme != nil {
		theme := models.Theme(*input.Theme)
		u.Theme = &theme
	}

	settings, err := s.session.UpdateSettings(ctx, u)
	if err != nil {
		return nil, settingsOutput{}, fmt.Errorf("failed to update settings: %w", err)
	}
	return nil, toSettingsOutput(settings), nil
}

func (s *Server) handleAddWorkoutPlan(ctx context.Context, req *mcp.CallToolRequest, input addWorkoutPlanInput) (*mcp.CallToolResult, planResult, error) {
	days := make([]time.Weekday, 0, len(input.Days))
	for _, name := range input.Days {
		d, err := models.ParseWeekday(name)
		if err != nil {
			return nil, planResult{}, err
		}
		days = append(days, d)
	}

	p := models.NewWorkoutPlan(input.Name, days...)
	if input.Description != "" {
		p.WithDescription(input.Description)
	}
	for _, in := range input.Exercises {
		e := models.NewExercise(in.Name)
		if in.Sets > 0 {
			e.SetCount = in.Sets
		}
		if in.Reps != "" {
			e.RepRange = in.Reps
		}
		if in.RestSeconds != nil {
			e.RestSeconds = *in.RestSeconds
		}
		if in.Load != "" {
			load := in.Load
			e.Load = &load
		}
		p.WithExercise(e)
	}

	if err := s.session.SavePlan(ctx, p); err != nil {
		return nil, planResult{}, fmt.Errorf("failed to add workout plan: %w", err)
	}

	return nil, planResult{
		Plan:    toPlanOutput(p),
		Message: fmt.Sprintf("Created plan %s (ID: %s)", p.Name, p.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListWorkoutPlans(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, listPlansOutput, error) {
	plans, err := s.session.Plans(ctx)
	if err != nil {
		return nil, listPlansOutput{}, fmt.Errorf("failed to list workout plans: %w", err)
	}

	out := listPlansOutput{Plans: make([]planOutput, len(plans))}
	for i, p := range plans {
		out.Plans[i] = toPlanOutput(p)
	}
	return nil, out, nil
}

func (s *Server) handleCheckIn(ctx context.Context, req *mcp.CallToolRequest, input checkInInput) (*mcp.CallToolResult, simpleOutput, error) {
	date, err := parseDay(input.Date, s.session.Today())
	if err != nil {
		return nil, simpleOutput{}, err
	}
	plan, err := s.session.Plan(ctx, input.PlanID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to find plan: %w", err)
	}

	c := models.NewCheckIn(date, plan.ID)
	if input.DurationMinutes != nil {
		c.WithDuration(*input.DurationMinutes)
	}
	if input.Note != "" {
		c.WithNote(input.Note)
	}
	if input.Skipped {
		c.Skipped()
	}
	if err := s.session.CheckIn(ctx, c); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to check in: %w", err)
	}

	status := "done"
	if input.Skipped {
		status = "skipped"
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Checked in %s for %s: %s", plan.Name, models.FormatDate(date), status),
	}, nil
}

func (s *Server) handleGetWorkoutStats(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, workoutStatsOutput, error) {
	stats, err := s.session.WorkoutStats(ctx)
	if err != nil {
		return nil, workoutStatsOutput{}, fmt.Errorf("failed to compute workout stats: %w", err)
	}
	plan, done, err := s.session.TodayWorkout(ctx)
	if err != nil {
		return nil, workoutStatsOutput{}, fmt.Errorf("failed to find today's workout: %w", err)
	}

	out := workoutStatsOutput{Stats: stats, TodayDone: done}
	if plan != nil {
		p := toPlanOutput(plan)
		out.TodayPlan = &p
	}
	return nil, out, nil
}
