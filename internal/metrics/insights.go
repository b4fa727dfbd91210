// ABOUTME: Heuristic insights relating sleep, water and weekday to weight loss.
// ABOUTME: Each check needs a minimum sample and fires on a strict difference.
package metrics

import (
	"fmt"
	"time"

	"github.com/harperreed/fittrack/internal/models"
)

// InsightKind identifies which heuristic produced an insight.
type InsightKind string

const (
	InsightSleep       InsightKind = "sleep"
	InsightWater       InsightKind = "water"
	InsightWeekday     InsightKind = "weekday"
	InsightKeepLogging InsightKind = "keep_logging"
)

// Thresholds for the insight heuristics.
const (
	MinInsightRecords = 5
	MinSleepSamples   = 7
	MinWaterSamples   = 7
	MinWeekdaySamples = 3
	MaxInsights       = 3
	GoodSleepHours    = 7.0
	waterChunk        = 7
)

// Insight is one user-facing observation.
type Insight struct {
	Kind  InsightKind `json:"kind"`
	Title string      `json:"title"`
	Text  string      `json:"text"`
}

// KeepLogging is returned when no heuristic has enough data or fires.
var KeepLogging = Insight{
	Kind:  InsightKeepLogging,
	Title: "Keep logging",
	Text:  "More entries will unlock personalised insights.",
}

// loss is the weight lost between a record and the one before it.
type loss struct {
	rec    *models.Record
	amount float64
}

// Insights returns up to MaxInsights insights, or only KeepLogging.
func Insights(records []*models.Record) []Insight {
	if len(records) < MinInsightRecords {
		return []Insight{KeepLogging}
	}

	sorted := ByDate(records)
	losses := make([]loss, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		losses = append(losses, loss{rec: sorted[i], amount: sorted[i-1].Weight - sorted[i].Weight})
	}

	var out []Insight
	for _, check := range []func() (Insight, bool){
		func() (Insight, bool) { return sleepInsight(sorted, losses) },
		func() (Insight, bool) { return waterInsight(sorted) },
		func() (Insight, bool) { return weekdayInsight(losses) },
	} {
		if in, ok := check(); ok {
			out = append(out, in)
		}
		if len(out) == MaxInsights {
			break
		}
	}

	if len(out) == 0 {
		return []Insight{KeepLogging}
	}
	return out
}

func sleepInsight(records []*models.Record, losses []loss) (Insight, bool) {
	var hours []float64
	for _, r := range records {
		if r.Sleep != nil {
			hours = append(hours, *r.Sleep)
		}
	}
	if len(hours) < MinSleepSamples {
		return Insight{}, false
	}

	var good, poor []float64
	for _, l := range losses {
		switch {
		case l.rec.Sleep == nil:
		case *l.rec.Sleep >= GoodSleepHours:
			good = append(good, l.amount)
		default:
			poor = append(poor, l.amount)
		}
	}
	if len(good) == 0 || len(poor) == 0 || mean(good) <= mean(poor) {
		return Insight{}, false
	}
	return Insight{
		Kind:  InsightSleep,
		Title: "Sleep and weight loss",
		Text:  fmt.Sprintf("You lose more weight on days with %.0fh or more of sleep. Average sleep: %.1fh", GoodSleepHours, mean(hours)),
	}, true
}

func waterInsight(records []*models.Record) (Insight, bool) {
	var litres []float64
	for _, r := range records {
		if r.Water != nil {
			litres = append(litres, *r.Water)
		}
	}
	if len(litres) < MinWaterSamples {
		return Insight{}, false
	}
	avg := mean(litres)

	var high, low []float64
	for i := 0; i+waterChunk <= len(records); i += waterChunk {
		chunk := records[i : i+waterChunk]
		var w []float64
		for _, r := range chunk {
			if r.Water != nil {
				w = append(w, *r.Water)
			}
		}
		if len(w) == 0 {
			continue
		}
		lost := chunk[0].Weight - chunk[len(chunk)-1].Weight
		if mean(w) >= avg {
			high = append(high, lost)
		} else {
			low = append(low, lost)
		}
	}
	if len(high) == 0 || len(low) == 0 || mean(high) <= mean(low) {
		return Insight{}, false
	}
	return Insight{
		Kind:  InsightWater,
		Title: "Hydration matters",
		Text:  fmt.Sprintf("Weeks with more water show more progress. Average intake: %.1fL", avg),
	}, true
}

func weekdayInsight(losses []loss) (Insight, bool) {
	var byDay [7][]float64
	for _, l := range losses {
		d := l.rec.Date.Weekday()
		byDay[d] = append(byDay[d], l.amount)
	}

	best := -1
	for d := time.Sunday; d <= time.Saturday; d++ {
		if len(byDay[d]) < MinWeekdaySamples {
			continue
		}
		if best < 0 || mean(byDay[d]) > mean(byDay[best]) {
			best = int(d)
		}
	}
	if best < 0 {
		return Insight{}, false
	}

	var others []float64
	for d := range byDay {
		if d != best {
			others = append(others, byDay[d]...)
		}
	}
	if len(others) == 0 || mean(byDay[best]) <= mean(others) {
		return Insight{}, false
	}
	return Insight{
		Kind:  InsightWeekday,
		Title: "Best day of the week",
		Text:  fmt.Sprintf("You tend to lose the most weight on %s", time.Weekday(best)),
	}, true
}
