// ABOUTME: Weekly weight-loss goal and the projection against recent progress.
// ABOUTME: Progress compares the last 7 records with the 7 before them.
package metrics

import (
	"math"
	"time"

	"github.com/harperreed/fittrack/internal/models"
)

const (
	// DefaultPlannedWeeks applies when no deadline is set.
	DefaultPlannedWeeks = 12
	// MinProgressRecords is the number of records WeeklyProgress needs.
	MinProgressRecords = 14
	progressWindow     = 7
	onTrackRatio       = 0.8
)

// PlannedWeeks returns the weeks left until the deadline, rounded up and
// never below one, or DefaultPlannedWeeks without a deadline.
func PlannedWeeks(s models.Settings, today time.Time) int {
	if s.Deadline == nil {
		return DefaultPlannedWeeks
	}
	days := models.DaysBetween(today, *s.Deadline)
	weeks := int(math.Ceil(float64(days) / 7))
	if weeks < 1 {
		return 1
	}
	return weeks
}

// WeeklyGoal returns the kilograms to lose per planned week.
func WeeklyGoal(s models.Settings, today time.Time) float64 {
	return (s.InitialWeight - s.TargetWeight) / float64(PlannedWeeks(s, today))
}

// Projection compares actual weekly progress with the weekly goal.
type Projection struct {
	Goal          float64
	Progress      float64
	Percent       float64
	OnTrack       bool
	PlannedWeeks  int
	DaysRemaining *int
}

// WeeklyProgress reports progress over the most recent 14 records. ok is
// false when there are fewer records, and the projection should be hidden.
func WeeklyProgress(records []*models.Record, s models.Settings, today time.Time) (Projection, bool) {
	if len(records) < MinProgressRecords {
		return Projection{}, false
	}

	recent := ByRecency(records)
	last := meanWeight(recent[:progressWindow])
	before := meanWeight(recent[progressWindow : 2*progressWindow])

	p := Projection{
		Goal:         WeeklyGoal(s, today),
		Progress:     before - last,
		PlannedWeeks: PlannedWeeks(s, today),
	}
	if p.Goal != 0 {
		p.Percent = clamp(p.Progress/p.Goal*100, 0, 100)
	}
	p.OnTrack = p.Progress >= p.Goal*onTrackRatio
	if s.Deadline != nil {
		days := models.DaysBetween(today, *s.Deadline)
		p.DaysRemaining = &days
	}
	return p, true
}
