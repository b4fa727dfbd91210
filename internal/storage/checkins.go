// ABOUTME: Workout check-in storage, unique per (date, workout).
// ABOUTME: A second check-in for the same pair replaces the first.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fittrack/internal/models"
)

const checkInColumns = `date, workout_id, completed, duration_minutes, note, timestamp`

// SaveCheckIn inserts a check-in or replaces the one for the same date and plan.
func (d *DB) SaveCheckIn(ctx context.Context, c *models.CheckIn) error {
	return saveCheckIn(ctx, d.db, c)
}

func saveCheckIn(ctx context.Context, ex execer, c *models.CheckIn) error {
	ts := c.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := ex.ExecContext(ctx, `
		INSERT INTO checkins (`+checkInColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date, workout_id) DO UPDATE SET
			completed = excluded.completed,
			duration_minutes = excluded.duration_minutes,
			note = excluded.note,
			timestamp = excluded.timestamp
	`, models.FormatDate(c.Date), c.WorkoutID.String(), c.Completed, c.DurationMinutes, c.Note,
		ts.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save check-in: %w", err)
	}
	return nil
}

// ListCheckIns returns every check-in ordered by date ascending.
func (d *DB) ListCheckIns(ctx context.Context) ([]*models.CheckIn, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT `+checkInColumns+` FROM checkins ORDER BY date ASC, timestamp ASC`)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	defer rows.Close()
	return scanCheckIns(rows)
}

// ListCheckInsForPlan returns one plan's check-ins ordered by date ascending.
func (d *DB) ListCheckInsForPlan(ctx context.Context, workoutID uuid.UUID) ([]*models.CheckIn, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT `+checkInColumns+` FROM checkins WHERE workout_id = ? ORDER BY date ASC`, workoutID.String())
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	defer rows.Close()
	return scanCheckIns(rows)
}

func scanCheckIns(rows *sql.Rows) ([]*models.CheckIn, error) {
	var checkins []*models.CheckIn
	for rows.Next() {
		var (
			c            models.CheckIn
			date, id, ts string
			duration     sql.NullInt64
			note         sql.NullString
		)
		if err := rows.Scan(&date, &id, &c.Completed, &duration, &note, &ts); err != nil {
			return nil, fmt.Errorf("scan check-in: %w", err)
		}
		var err error
		if c.Date, err = time.Parse(models.DateLayout, date); err != nil {
			return nil, fmt.Errorf("parse check-in date %q: %w", date, err)
		}
		if c.WorkoutID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse check-in workout id %q: %w", id, err)
		}
		if c.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("parse check-in timestamp %q: %w", ts, err)
		}
		if duration.Valid {
			m := int(duration.Int64)
			c.DurationMinutes = &m
		}
		c.Note = stringPtr(note)
		checkins = append(checkins, &c)
	}
	return checkins, rows.Err()
}
