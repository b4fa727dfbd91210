// ABOUTME: Daily logging reminder driven by a single timer goroutine.
// ABOUTME: It reads settings and fires at most once per day when nothing is logged.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/fittrack/internal/models"
	log "github.com/sirupsen/logrus"
)

// DefaultInterval is the longest the scheduler sleeps before re-reading
// settings.
const DefaultInterval = 5 * time.Minute

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=reminder_test

// Source is what the scheduler reads. app.Session satisfies it.
type Source interface {
	Settings(ctx context.Context) (models.Settings, error)
	LoggedToday(ctx context.Context) (bool, error)
}

// Notifier delivers a reminder to the user.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, r Reminder) error

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, r Reminder) error {
	return f(ctx, r)
}

// Reminder is one notification.
type Reminder struct {
	Date time.Time
	Name string
	Text string
}

// Scheduler checks the reminder condition on a timer.
type Scheduler struct {
	src      Source
	notifier Notifier
	now      func() time.Time
	interval time.Duration
	lastDay  time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the clock.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithInterval caps the time between checks.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// New returns a scheduler. Nothing runs until Run is called.
func New(src Source, n Notifier, opts ...Option) *Scheduler {
	s := &Scheduler{
		src:      src,
		notifier: n,
		now:      time.Now,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run checks once immediately and then on a timer until ctx is done.
// Check errors are logged and do not stop the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	logger := log.WithField("component", "reminder")
	logger.Debug("scheduler started")
	defer logger.Debug("scheduler stopped")

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		if _, err := s.Check(ctx); err != nil {
			logger.WithError(err).Warn("reminder check failed")
		}
		timer.Reset(s.nextWait(ctx))
	}
}

// Check fires the reminder if it is enabled, its time has passed today,
// it has not fired today, and no record exists for today. It reports
// whether a reminder was sent.
func (s *Scheduler) Check(ctx context.Context) (bool, error) {
	now := s.now()
	today := models.Day(now)
	if s.lastDay.Equal(today) {
		return false, nil
	}

	settings, err := s.src.Settings(ctx)
	if err != nil {
		return false, fmt.Errorf("read settings: %w", err)
	}
	if !settings.ReminderEnabled {
		return false, nil
	}
	at, err := At(settings.ReminderTime, now)
	if err != nil {
		return false, err
	}
	if now.Before(at) {
		return false, nil
	}

	logged, err := s.src.LoggedToday(ctx)
	if err != nil {
		return false, fmt.Errorf("check today's record: %w", err)
	}
	if logged {
		s.lastDay = today
		return false, nil
	}

	r := Reminder{
		Date: today,
		Name: settings.Name,
		Text: fmt.Sprintf("Time to log today's progress, %s!", settings.Name),
	}
	if err := s.notifier.Notify(ctx, r); err != nil {
		return false, fmt.Errorf("notify: %w", err)
	}
	s.lastDay = today
	return true, nil
}

// nextWait sleeps until the reminder time when it is closer than the
// interval.
func (s *Scheduler) nextWait(ctx context.Context) time.Duration {
	settings, err := s.src.Settings(ctx)
	if err != nil || !settings.ReminderEnabled {
		return s.interval
	}
	now := s.now()
	at, err := At(settings.ReminderTime, now)
	if err != nil {
		return s.interval
	}
	if !now.Before(at) {
		at = at.AddDate(0, 0, 1)
	}
	if d := at.Sub(now); d < s.interval {
		return d
	}
	return s.interval
}

// At returns the HH:MM clock time on now's calendar day, in now's zone.
func At(hhmm string, now time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse reminder time %q: %w", hhmm, err)
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}
