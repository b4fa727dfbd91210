// ABOUTME: Export of all fittrack data as JSON, YAML, or Markdown.
// ABOUTME: Photo references are always nulled; there is no import path.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/fittrack/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the export document format version.
const ExportVersion = "2.0"

// ExportData represents the full export document.
type ExportData struct {
	Version    string          `json:"version" yaml:"version"`
	ExportedAt time.Time       `json:"exported_at" yaml:"exported_at"`
	Tool       string          `json:"tool" yaml:"tool"`
	Config     models.Settings `json:"config" yaml:"config"`
	Records    []ExportRecord  `json:"records" yaml:"records"`
	Workouts   []ExportPlan    `json:"workouts" yaml:"workouts"`
	CheckIns   []ExportCheckIn `json:"checkins" yaml:"checkins"`
}

// ExportRecord is a record as exported; photo refs are always null.
type ExportRecord struct {
	Date       string   `json:"date" yaml:"date"`
	Weight     float64  `json:"weight" yaml:"weight"`
	Waist      *float64 `json:"waist" yaml:"waist"`
	Water      *float64 `json:"water" yaml:"water"`
	Sleep      *float64 `json:"sleep" yaml:"sleep"`
	Note       *string  `json:"note" yaml:"note"`
	FrontPhoto *string  `json:"front_photo" yaml:"front_photo"`
	SidePhoto  *string  `json:"side_photo" yaml:"side_photo"`
	Timestamp  string   `json:"timestamp" yaml:"timestamp"`
}

// ExportPlan is a workout plan as exported.
type ExportPlan struct {
	ID          string           `json:"id" yaml:"id"`
	Name        string           `json:"name" yaml:"name"`
	Description *string          `json:"description" yaml:"description"`
	ActiveDays  []string         `json:"active_days" yaml:"active_days"`
	IsActive    bool             `json:"is_active" yaml:"is_active"`
	Exercises   []ExportExercise `json:"exercises" yaml:"exercises"`
	CreatedAt   string           `json:"created_at" yaml:"created_at"`
}

// ExportExercise is an exercise as exported.
type ExportExercise struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	SetCount    int     `json:"set_count" yaml:"set_count"`
	RepRange    string  `json:"rep_range" yaml:"rep_range"`
	RestSeconds int     `json:"rest_seconds" yaml:"rest_seconds"`
	Load        *string `json:"load" yaml:"load"`
}

// ExportCheckIn is a check-in as exported.
type ExportCheckIn struct {
	Date            string  `json:"date" yaml:"date"`
	WorkoutID       string  `json:"workout_id" yaml:"workout_id"`
	Completed       bool    `json:"completed" yaml:"completed"`
	DurationMinutes *int    `json:"duration_minutes" yaml:"duration_minutes"`
	Note            *string `json:"note" yaml:"note"`
}

// GetAllData collects everything for export, stamped with exportedAt.
func (d *DB) GetAllData(ctx context.Context, exportedAt time.Time) (*ExportData, error) {
	settings, err := d.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	records, err := d.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	plans, err := d.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	checkins, err := d.ListCheckIns(ctx)
	if err != nil {
		return nil, err
	}

	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: exportedAt.UTC(),
		Tool:       "fittrack",
		Config:     settings,
		Records:    make([]ExportRecord, 0, len(records)),
		Workouts:   make([]ExportPlan, 0, len(plans)),
		CheckIns:   make([]ExportCheckIn, 0, len(checkins)),
	}

	for _, r := range records {
		data.Records = append(data.Records, ExportRecord{
			Date:      r.DateString(),
			Weight:    r.Weight,
			Waist:     r.Waist,
			Water:     r.Water,
			Sleep:     r.Sleep,
			Note:      r.Note,
			Timestamp: r.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	for _, p := range plans {
		ep := ExportPlan{
			ID:          p.ID.String(),
			Name:        p.Name,
			Description: p.Description,
			ActiveDays:  p.DayNames(),
			IsActive:    p.IsActive,
			Exercises:   make([]ExportExercise, 0, len(p.Exercises)),
			CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
		}
		for _, e := range p.Exercises {
			ep.Exercises = append(ep.Exercises, ExportExercise{
				ID:          e.ID.String(),
				Name:        e.Name,
				SetCount:    e.SetCount,
				RepRange:    e.RepRange,
				RestSeconds: e.RestSeconds,
				Load:        e.Load,
			})
		}
		data.Workouts = append(data.Workouts, ep)
	}

	for _, c := range checkins {
		data.CheckIns = append(data.CheckIns, ExportCheckIn{
			Date:            models.FormatDate(c.Date),
			WorkoutID:       c.WorkoutID.String(),
			Completed:       c.Completed,
			DurationMinutes: c.DurationMinutes,
			Note:            c.Note,
		})
	}

	return data, nil
}

// JSON renders the export as indented JSON.
func (e *ExportData) JSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// YAML renders the export as YAML.
func (e *ExportData) YAML() ([]byte, error) {
	return yaml.Marshal(e)
}

// Markdown renders the export as human-readable tables.
func (e *ExportData) Markdown() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Fittrack Export - %s\n\n", e.ExportedAt.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", e.ExportedAt.Format(time.RFC3339)))

	sb.WriteString("## Goal\n\n")
	sb.WriteString(fmt.Sprintf("- Name: %s\n", e.Config.Name))
	sb.WriteString(fmt.Sprintf("- Initial weight: %.1f kg\n", e.Config.InitialWeight))
	sb.WriteString(fmt.Sprintf("- Target weight: %.1f kg\n", e.Config.TargetWeight))
	if e.Config.Deadline != nil {
		sb.WriteString(fmt.Sprintf("- Deadline: %s\n", models.FormatDate(*e.Config.Deadline)))
	}
	sb.WriteString("\n")

	if len(e.Records) > 0 {
		sb.WriteString("## Records\n\n")
		sb.WriteString("| Date | Weight | Waist | Water | Sleep | Note |\n")
		sb.WriteString("|------|--------|-------|-------|-------|------|\n")
		for _, r := range e.Records {
			sb.WriteString(fmt.Sprintf("| %s | %.1f | %s | %s | %s | %s |\n",
				r.Date, r.Weight, optFloat(r.Waist), optFloat(r.Water), optFloat(r.Sleep), optString(r.Note)))
		}
		sb.WriteString("\n")
	}

	if len(e.Workouts) > 0 {
		sb.WriteString("## Workout Plans\n\n")
		for _, w := range e.Workouts {
			status := "active"
			if !w.IsActive {
				status = "inactive"
			}
			sb.WriteString(fmt.Sprintf("### %s (%s, %s)\n\n", w.Name, strings.Join(w.ActiveDays, " "), status))
			if w.Description != nil {
				sb.WriteString(*w.Description + "\n\n")
			}
			for _, ex := range w.Exercises {
				sb.WriteString(fmt.Sprintf("- %s: %d x %s, rest %ds", ex.Name, ex.SetCount, ex.RepRange, ex.RestSeconds))
				if ex.Load != nil {
					sb.WriteString(", load " + *ex.Load)
				}
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		}
	}

	if len(e.CheckIns) > 0 {
		names := make(map[string]string, len(e.Workouts))
		for _, w := range e.Workouts {
			names[w.ID] = w.Name
		}
		sb.WriteString("## Check-ins\n\n")
		sb.WriteString("| Date | Workout | Done | Minutes | Note |\n")
		sb.WriteString("|------|---------|------|---------|------|\n")
		for _, c := range e.CheckIns {
			name, ok := names[c.WorkoutID]
			if !ok {
				name = c.WorkoutID[:8]
			}
			done := "no"
			if c.Completed {
				done = "yes"
			}
			minutes := ""
			if c.DurationMinutes != nil {
				minutes = fmt.Sprintf("%d", *c.DurationMinutes)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n", c.Date, name, done, minutes, optString(c.Note)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.1f", *v)
}

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
