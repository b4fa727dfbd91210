// ABOUTME: Business-rule validation for records, settings and workout plans.
// ABOUTME: Every violated field is reported, combined with multierr.
package validate

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/harperreed/fittrack/internal/errs"
	"github.com/harperreed/fittrack/internal/models"
	"go.uber.org/multierr"
)

// Limits applied to user input.
const (
	MaxWeight     = 300.0
	MaxWeightJump = 10.0
	MaxSleep      = 24.0
	MaxWater      = 20.0
	MaxNameLength = 60
)

var reminderTimeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Record checks r on its own and against the adjacent records on other
// dates. The jump rule compares with prev when present, otherwise next.
func Record(r *models.Record, prev, next *models.Record) error {
	var err error

	if r.Date.IsZero() {
		err = multierr.Append(err, errs.Invalid("date", "is required"))
	}

	switch {
	case !finite(r.Weight):
		err = multierr.Append(err, errs.Invalid("weight", "must be a number"))
	case r.Weight <= 0:
		err = multierr.Append(err, errs.Invalid("weight", "must be greater than zero"))
	case r.Weight > MaxWeight:
		err = multierr.Append(err, errs.Invalid("weight", "must be at most %.0fkg", MaxWeight))
	default:
		adj := prev
		if adj == nil {
			adj = next
		}
		if adj != nil {
			if diff := math.Abs(r.Weight - adj.Weight); diff > MaxWeightJump {
				err = multierr.Append(err, errs.Invalid("weight",
					"differs by %.1fkg from %s (max %.0fkg)", diff, adj.DateString(), MaxWeightJump))
			}
		}
	}

	if r.Sleep != nil && !inRange(*r.Sleep, 0, MaxSleep) {
		err = multierr.Append(err, errs.Invalid("sleep", "must be between 0 and %.0f hours", MaxSleep))
	}
	if r.Water != nil && !inRange(*r.Water, 0, MaxWater) {
		err = multierr.Append(err, errs.Invalid("water", "must be between 0 and %.0f litres", MaxWater))
	}
	if r.Waist != nil && (!finite(*r.Waist) || *r.Waist <= 0) {
		err = multierr.Append(err, errs.Invalid("waist", "must be greater than zero"))
	}

	return err
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// inRange reports lo <= v <= hi; NaN is never in range.
func inRange(v, lo, hi float64) bool {
	return finite(v) && v >= lo && v <= hi
}

// Settings checks a complete settings value.
func Settings(s models.Settings) error {
	var err error

	name := strings.TrimSpace(s.Name)
	if name == "" {
		err = multierr.Append(err, errs.Invalid("name", "is required"))
	} else if utf8.RuneCountInString(name) > MaxNameLength {
		err = multierr.Append(err, errs.Invalid("name", "must be at most %d characters", MaxNameLength))
	}
	if !finite(s.InitialWeight) || s.InitialWeight <= 0 || s.InitialWeight > MaxWeight {
		err = multierr.Append(err, errs.Invalid("initial_weight", "must be in (0, %.0f]", MaxWeight))
	}
	if !finite(s.TargetWeight) || s.TargetWeight <= 0 || s.TargetWeight > MaxWeight {
		err = multierr.Append(err, errs.Invalid("target_weight", "must be in (0, %.0f]", MaxWeight))
	}
	if !reminderTimeRe.MatchString(s.ReminderTime) {
		err = multierr.Append(err, errs.Invalid("reminder_time", "must be HH:MM (24h), got %q", s.ReminderTime))
	}
	if !models.IsValidTheme(string(s.Theme)) {
		err = multierr.Append(err, errs.Invalid("theme", "unknown theme %q", s.Theme))
	}

	return err
}

// Plan checks a workout plan before it is saved.
func Plan(p *models.WorkoutPlan) error {
	var err error

	if strings.TrimSpace(p.Name) == "" {
		err = multierr.Append(err, errs.Invalid("name", "is required"))
	}
	if len(models.NormalizeWeekdays(p.ActiveDays)) == 0 {
		err = multierr.Append(err, errs.Invalid("active_days", "at least one weekday is required"))
	}
	if len(p.Exercises) == 0 {
		err = multierr.Append(err, errs.Invalid("exercises", "at least one exercise is required"))
	}
	for i, e := range p.Exercises {
		if strings.TrimSpace(e.Name) == "" {
			err = multierr.Append(err, errs.Invalid("exercises", "exercise %d has no name", i+1))
		}
		if e.SetCount <= 0 {
			err = multierr.Append(err, errs.Invalid("exercises", "%s: sets must be positive", e.Name))
		}
		if e.RestSeconds < 0 {
			err = multierr.Append(err, errs.Invalid("exercises", "%s: rest must not be negative", e.Name))
		}
	}

	return err
}

// CheckIn checks a workout check-in before it is saved.
func CheckIn(c *models.CheckIn) error {
	var err error
	if c.Date.IsZero() {
		err = multierr.Append(err, errs.Invalid("date", "is required"))
	}
	if c.DurationMinutes != nil && *c.DurationMinutes < 0 {
		err = multierr.Append(err, errs.Invalid("duration", "must not be negative"))
	}
	return err
}
