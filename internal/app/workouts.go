// ABOUTME: Workout plan, check-in and settings operations on a session.
// ABOUTME: Plans and check-ins are validated before they reach storage.
package app

import (
	"context"
	"fmt"

	"github.com/harperreed/fittrack/internal/metrics"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/validate"
)

// SavePlan validates and stores a plan, replacing its exercises.
func (s *Session) SavePlan(ctx context.Context, p *models.WorkoutPlan) error {
	if err := s.ready(); err != nil {
		return err
	}
	p.ActiveDays = models.NormalizeWeekdays(p.ActiveDays)
	if err := validate.Plan(p); err != nil {
		return err
	}
	return s.db.SavePlan(ctx, p)
}

// Plan looks a plan up by full id or unique prefix.
func (s *Session) Plan(ctx context.Context, idOrPrefix string) (*models.WorkoutPlan, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.db.GetPlan(ctx, idOrPrefix)
}

// Plans lists every plan.
func (s *Session) Plans(ctx context.Context) ([]*models.WorkoutPlan, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.db.ListPlans(ctx)
}

// SetPlanActive turns a plan on or off.
func (s *Session) SetPlanActive(ctx context.Context, idOrPrefix string, active bool) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.db.SetPlanActive(ctx, idOrPrefix, active)
}

// DeletePlan removes a plan. Its check-ins remain as history.
func (s *Session) DeletePlan(ctx context.Context, idOrPrefix string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.db.DeletePlan(ctx, idOrPrefix)
}

// CheckIn records a check-in for an existing plan, replacing any earlier
// check-in for the same plan and date.
func (s *Session) CheckIn(ctx context.Context, c *models.CheckIn) error {
	if err := s.ready(); err != nil {
		return err
	}
	c.Date = models.Day(c.Date)
	if err := validate.CheckIn(c); err != nil {
		return err
	}
	if _, err := s.db.GetPlan(ctx, c.WorkoutID.String()); err != nil {
		return fmt.Errorf("check in: %w", err)
	}
	c.Timestamp = s.now().UTC()
	return s.db.SaveCheckIn(ctx, c)
}

// CheckIns lists every check-in, oldest first.
func (s *Session) CheckIns(ctx context.Context) ([]*models.CheckIn, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.db.ListCheckIns(ctx)
}

// PlanCheckIns returns one plan's check-ins, oldest first.
func (s *Session) PlanCheckIns(ctx context.Context, idOrPrefix string) ([]*models.CheckIn, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	p, err := s.db.GetPlan(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	return s.db.ListCheckInsForPlan(ctx, p.ID)
}

// WorkoutStats summarizes check-ins as of today.
func (s *Session) WorkoutStats(ctx context.Context) (metrics.WorkoutSummary, error) {
	if err := s.ready(); err != nil {
		return metrics.WorkoutSummary{}, err
	}
	plans, checkins, err := s.workoutSnapshot(ctx)
	if err != nil {
		return metrics.WorkoutSummary{}, err
	}
	return metrics.WorkoutStats(plans, checkins, s.Today()), nil
}

// TodayWorkout returns the plan scheduled today, if any, and whether it
// has been checked in.
func (s *Session) TodayWorkout(ctx context.Context) (*models.WorkoutPlan, bool, error) {
	if err := s.ready(); err != nil {
		return nil, false, err
	}
	plans, checkins, err := s.workoutSnapshot(ctx)
	if err != nil {
		return nil, false, err
	}
	p := metrics.TodayPlan(plans, s.Today())
	if p == nil {
		return nil, false, nil
	}
	return p, metrics.CheckedIn(checkins, p, s.Today()), nil
}

func (s *Session) workoutSnapshot(ctx context.Context) ([]*models.WorkoutPlan, []*models.CheckIn, error) {
	plans, err := s.db.ListPlans(ctx)
	if err != nil {
		return nil, nil, err
	}
	checkins, err := s.db.ListCheckIns(ctx)
	if err != nil {
		return nil, nil, err
	}
	return plans, checkins, nil
}

// Settings returns the current settings.
func (s *Session) Settings(ctx context.Context) (models.Settings, error) {
	if err := s.ready(); err != nil {
		return models.Settings{}, err
	}
	return s.db.GetSettings(ctx)
}

// UpdateSettings applies a typed partial update. Invalid results are
// rejected and the stored settings stay unchanged.
func (s *Session) UpdateSettings(ctx context.Context, u models.SettingsUpdate) (models.Settings, error) {
	if err := s.ready(); err != nil {
		return models.Settings{}, err
	}
	if u.IsEmpty() {
		return s.db.GetSettings(ctx)
	}
	return s.db.UpdateSettings(ctx, u)
}
