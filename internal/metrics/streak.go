// ABOUTME: Consecutive-day logging streak.
// ABOUTME: Counts back from today and stops at the first missing day.
package metrics

import (
	"time"

	"github.com/harperreed/fittrack/internal/models"
)

// Streak returns how many consecutive days up to and including today have
// a record. No record today means a streak of zero.
func Streak(records []*models.Record, today time.Time) int {
	days := make(map[time.Time]bool, len(records))
	for _, r := range records {
		days[models.Day(r.Date)] = true
	}
	return countBack(days, today)
}

func countBack(days map[time.Time]bool, today time.Time) int {
	n := 0
	for d := models.Day(today); days[d]; d = d.AddDate(0, 0, -1) {
		n++
	}
	return n
}
