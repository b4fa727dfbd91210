// ABOUTME: Workout plan, exercise, and check-in models.
// ABOUTME: Plans are scheduled on weekdays; check-ins are unique per (date, plan).
package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Exercise defaults applied by NewExercise.
const (
	DefaultSetCount    = 3
	DefaultRepRange    = "8-10"
	DefaultRestSeconds = 60
)

var weekdayNames = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// WeekdayName returns the short lowercase tag for a weekday.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

// ParseWeekday accepts short or full English names, case-insensitive.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range weekdayNames {
		if s == name || s == strings.ToLower(time.Weekday(i).String()) {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// NormalizeWeekdays deduplicates and sorts days Sunday-first.
func NormalizeWeekdays(days []time.Weekday) []time.Weekday {
	seen := make(map[time.Weekday]bool, len(days))
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Exercise is one movement within a plan.
type Exercise struct {
	ID          uuid.UUID
	Name        string
	SetCount    int
	RepRange    string
	RestSeconds int
	Load        *string
	ImageRef    *string
}

// NewExercise creates an Exercise with the default sets, reps and rest.
func NewExercise(name string) Exercise {
	return Exercise{
		ID:          uuid.New(),
		Name:        name,
		SetCount:    DefaultSetCount,
		RepRange:    DefaultRepRange,
		RestSeconds: DefaultRestSeconds,
	}
}

// WorkoutPlan is a named routine scheduled on a set of weekdays.
type WorkoutPlan struct {
	ID          uuid.UUID
	Name        string
	Description *string
	ActiveDays  []time.Weekday
	IsActive    bool
	Exercises   []Exercise
	CreatedAt   time.Time
}

// NewWorkoutPlan creates an active plan with a generated UUID.
func NewWorkoutPlan(name string, days ...time.Weekday) *WorkoutPlan {
	return &WorkoutPlan{
		ID:         uuid.New(),
		Name:       name,
		ActiveDays: NormalizeWeekdays(days),
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}
}

// WithDescription sets the plan description.
func (p *WorkoutPlan) WithDescription(desc string) *WorkoutPlan {
	p.Description = &desc
	return p
}

// WithExercise appends an exercise.
func (p *WorkoutPlan) WithExercise(e Exercise) *WorkoutPlan {
	p.Exercises = append(p.Exercises, e)
	return p
}

// ScheduledOn reports whether the plan lists the weekday.
func (p *WorkoutPlan) ScheduledOn(d time.Weekday) bool {
	for _, ad := range p.ActiveDays {
		if ad == d {
			return true
		}
	}
	return false
}

// DayNames returns the plan's weekday tags.
func (p *WorkoutPlan) DayNames() []string {
	names := make([]string, len(p.ActiveDays))
	for i, d := range p.ActiveDays {
		names[i] = WeekdayName(d)
	}
	return names
}

// CheckIn records that a plan was (or was not) done on a date.
type CheckIn struct {
	Date            time.Time
	WorkoutID       uuid.UUID
	Completed       bool
	DurationMinutes *int
	Note            *string
	Timestamp       time.Time
}

// NewCheckIn creates a completed check-in for the plan on date.
func NewCheckIn(date time.Time, workoutID uuid.UUID) *CheckIn {
	return &CheckIn{
		Date:      Day(date),
		WorkoutID: workoutID,
		Completed: true,
		Timestamp: time.Now().UTC(),
	}
}

// WithDuration sets the duration in minutes.
func (c *CheckIn) WithDuration(minutes int) *CheckIn {
	c.DurationMinutes = &minutes
	return c
}

// WithNote sets a note on the check-in.
func (c *CheckIn) WithNote(note string) *CheckIn {
	c.Note = &note
	return c
}

// Skipped marks the check-in as not completed.
func (c *CheckIn) Skipped() *CheckIn {
	c.Completed = false
	return c
}
