// ABOUTME: Dashboard summary and per-entry history changes.
// ABOUTME: Current weight falls back to the initial weight with no records.
package metrics

import (
	"math"
	"time"

	"github.com/harperreed/fittrack/internal/models"
)

// Summary is the headline dashboard numbers.
type Summary struct {
	CurrentWeight   float64    `json:"current_weight"`
	InitialWeight   float64    `json:"initial_weight"`
	TargetWeight    float64    `json:"target_weight"`
	TotalLost       float64    `json:"total_lost"`
	Change          *float64   `json:"change,omitempty"`
	Remaining       float64    `json:"remaining"`
	ProgressPercent float64    `json:"progress_percent"`
	Records         int        `json:"records"`
	LastDate        *time.Time `json:"last_date,omitempty"`
}

// Summarize computes the dashboard summary. Change is the weight lost since
// the previous record and is nil with fewer than two records.
func Summarize(records []*models.Record, s models.Settings) Summary {
	sum := Summary{
		CurrentWeight: s.InitialWeight,
		InitialWeight: s.InitialWeight,
		TargetWeight:  s.TargetWeight,
		Records:       len(records),
	}

	recent := ByRecency(records)
	if len(recent) > 0 {
		sum.CurrentWeight = recent[0].Weight
		last := recent[0].Date
		sum.LastDate = &last
	}
	if len(recent) > 1 {
		change := recent[1].Weight - recent[0].Weight
		sum.Change = &change
	}

	sum.TotalLost = s.InitialWeight - sum.CurrentWeight
	sum.Remaining = math.Max(0, sum.CurrentWeight-s.TargetWeight)
	if toLose := s.InitialWeight - s.TargetWeight; toLose > 0 {
		sum.ProgressPercent = clamp(sum.TotalLost/toLose*100, 0, 100)
	}
	return sum
}

// HistoryEntry is a record with its change against the next older record.
type HistoryEntry struct {
	Record *models.Record
	// Change is kilograms lost since the older record; nil for the oldest.
	Change *float64
}

// History returns records newest first with their changes.
func History(records []*models.Record) []HistoryEntry {
	recent := ByRecency(records)
	out := make([]HistoryEntry, len(recent))
	for i, r := range recent {
		out[i].Record = r
		if i+1 < len(recent) {
			change := recent[i+1].Weight - r.Weight
			out[i].Change = &change
		}
	}
	return out
}
