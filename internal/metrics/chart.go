// ABOUTME: Chart-ready weight series with a padded value domain.
// ABOUTME: The domain always includes the target and initial weights.
package metrics

import (
	"time"

	"github.com/harperreed/fittrack/internal/models"
)

// ChartPadding is added below the minimum and above the maximum.
const ChartPadding = 2.0

// Point is one plotted weight.
type Point struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
}

// Series is an ascending run of points plus the goal line and domain.
type Series struct {
	Points []Point `json:"points"`
	Target float64 `json:"target"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// ChartSeries uses the n most recent records; n <= 0 means all of them.
func ChartSeries(records []*models.Record, s models.Settings, n int) Series {
	recent := ByRecency(records)
	if n > 0 && len(recent) > n {
		recent = recent[:n]
	}
	return buildSeries(recent, s)
}

// ChartSeriesSince uses the records dated on or after since.
func ChartSeriesSince(records []*models.Record, s models.Settings, since time.Time) Series {
	var window []*models.Record
	since = models.Day(since)
	for _, r := range records {
		if !r.Date.Before(since) {
			window = append(window, r)
		}
	}
	return buildSeries(window, s)
}

func buildSeries(records []*models.Record, s models.Settings) Series {
	sorted := ByDate(records)
	series := Series{
		Points: make([]Point, len(sorted)),
		Target: s.TargetWeight,
	}

	lo, hi := s.TargetWeight, s.InitialWeight
	for i, r := range sorted {
		series.Points[i] = Point{Date: r.Date, Weight: r.Weight}
		if r.Weight < lo {
			lo = r.Weight
		}
		if r.Weight > hi {
			hi = r.Weight
		}
	}
	series.Min = lo - ChartPadding
	series.Max = hi + ChartPadding
	return series
}
