// ABOUTME: Pure statistics over record and workout snapshots.
// ABOUTME: This file holds the two record orderings every metric builds on.
package metrics

import (
	"sort"

	"github.com/harperreed/fittrack/internal/models"
)

// ByDate returns a copy of records sorted oldest first.
func ByDate(records []*models.Record) []*models.Record {
	out := make([]*models.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// ByRecency returns a copy of records sorted newest first.
func ByRecency(records []*models.Record) []*models.Record {
	out := make([]*models.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func meanWeight(records []*models.Record) float64 {
	ws := make([]float64, len(records))
	for i, r := range records {
		ws[i] = r.Weight
	}
	return mean(ws)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
