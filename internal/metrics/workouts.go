// ABOUTME: Workout statistics: totals, check-in streak and weekly adherence.
// ABOUTME: Weeks start on Sunday; only completed check-ins count.
package metrics

import (
	"math"
	"time"

	"github.com/harperreed/fittrack/internal/models"
)

// WorkoutSummary holds the workout dashboard numbers.
type WorkoutSummary struct {
	Total     int `json:"total"`
	Streak    int `json:"streak"`
	ThisWeek  int `json:"this_week"`
	Expected  int `json:"expected"`
	Adherence int `json:"adherence"`
}

// WorkoutStats computes totals and adherence as of today. Expected counts
// the scheduled days of active plans from Sunday through today.
func WorkoutStats(plans []*models.WorkoutPlan, checkins []*models.CheckIn, today time.Time) WorkoutSummary {
	today = models.Day(today)
	weekStart := models.StartOfWeek(today)

	var ws WorkoutSummary
	days := make(map[time.Time]bool)
	for _, c := range checkins {
		if !c.Completed {
			continue
		}
		ws.Total++
		d := models.Day(c.Date)
		days[d] = true
		if !d.Before(weekStart) && !d.After(today) {
			ws.ThisWeek++
		}
	}
	ws.Streak = countBack(days, today)

	for _, p := range plans {
		if !p.IsActive {
			continue
		}
		for _, d := range models.NormalizeWeekdays(p.ActiveDays) {
			if d <= today.Weekday() {
				ws.Expected++
			}
		}
	}
	if ws.Expected > 0 {
		ws.Adherence = int(math.Min(100, math.Round(float64(ws.ThisWeek)/float64(ws.Expected)*100)))
	}
	return ws
}

// TodayPlan returns the first active plan scheduled on today's weekday.
func TodayPlan(plans []*models.WorkoutPlan, today time.Time) *models.WorkoutPlan {
	for _, p := range plans {
		if p.IsActive && p.ScheduledOn(today.Weekday()) {
			return p
		}
	}
	return nil
}

// CheckedIn reports whether a completed check-in exists for the plan on date.
func CheckedIn(checkins []*models.CheckIn, plan *models.WorkoutPlan, date time.Time) bool {
	date = models.Day(date)
	for _, c := range checkins {
		if c.Completed && c.WorkoutID == plan.ID && models.Day(c.Date).Equal(date) {
			return true
		}
	}
	return false
}
