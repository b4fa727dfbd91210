// ABOUTME: Workout plan and exercise CRUD operations for SQLite storage.
// ABOUTME: Exercises are child rows ordered by position, removed by cascade delete.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fittrack/internal/errs"
	"github.com/harperreed/fittrack/internal/models"
)

const planColumns = `id, name, description, active_days, is_active, created_at`

// SavePlan inserts a plan or replaces an existing one with the same ID,
// including its full exercise list.
func (d *DB) SavePlan(ctx context.Context, p *models.WorkoutPlan) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		return savePlan(ctx, tx, p)
	})
}

func savePlan(ctx context.Context, tx *sql.Tx, p *models.WorkoutPlan) error {
	days, err := json.Marshal(p.DayNames())
	if err != nil {
		return fmt.Errorf("encode active days: %w", err)
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO workout_plans (`+planColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			active_days = excluded.active_days,
			is_active = excluded.is_active
	`, p.ID.String(), p.Name, p.Description, string(days), p.IsActive, createdAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save plan: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM exercises WHERE plan_id = ?", p.ID.String()); err != nil {
		return fmt.Errorf("replace exercises: %w", err)
	}
	for i, e := range p.Exercises {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
			p.Exercises[i].ID = e.ID
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO exercises (id, plan_id, position, name, set_count, rep_range, rest_seconds, load, image_ref)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, e.ID.String(), p.ID.String(), i, e.Name, e.SetCount, e.RepRange, e.RestSeconds, e.Load, e.ImageRef)
		if err != nil {
			return fmt.Errorf("save exercise %s: %w", e.Name, err)
		}
	}
	return nil
}

// GetPlan retrieves a plan with its exercises by ID or ID prefix.
func (d *DB) GetPlan(ctx context.Context, idOrPrefix string) (*models.WorkoutPlan, error) {
	id, err := d.resolvePlanID(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}

	p, err := scanPlan(d.db.QueryRowContext(ctx,
		`SELECT `+planColumns+` FROM workout_plans WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan %s: %w", idOrPrefix, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	if p.Exercises, err = d.listExercises(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPlans returns every plan with its exercises, oldest first.
func (d *DB) ListPlans(ctx context.Context) ([]*models.WorkoutPlan, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM workout_plans ORDER BY created_at ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	var plans []*models.WorkoutPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("list plans: %w", err)
	}
	// Close before issuing the exercise queries on the single connection.
	rows.Close()

	for _, p := range plans {
		if p.Exercises, err = d.listExercises(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

// SetPlanActive toggles whether a plan counts toward schedules and adherence.
func (d *DB) SetPlanActive(ctx context.Context, idOrPrefix string, active bool) error {
	id, err := d.resolvePlanID(ctx, idOrPrefix)
	if err != nil {
		return err
	}
	if _, err := d.db.ExecContext(ctx, "UPDATE workout_plans SET is_active = ? WHERE id = ?", active, id); err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	return nil
}

// DeletePlan removes a plan and its exercises. Check-ins are kept as history.
func (d *DB) DeletePlan(ctx context.Context, idOrPrefix string) error {
	id, err := d.resolvePlanID(ctx, idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}

	result, err := d.db.ExecContext(ctx, "DELETE FROM workout_plans WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("plan %s: %w", idOrPrefix, errs.ErrNotFound)
	}
	return nil
}

func (d *DB) listExercises(ctx context.Context, planID uuid.UUID) ([]models.Exercise, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, set_count, rep_range, rest_seconds, load, image_ref
		FROM exercises
		WHERE plan_id = ?
		ORDER BY position ASC
	`, planID.String())
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		var (
			e          models.Exercise
			idStr      string
			load, imgs sql.NullString
		)
		if err := rows.Scan(&idStr, &e.Name, &e.SetCount, &e.RepRange, &e.RestSeconds, &load, &imgs); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse exercise id %q: %w", idStr, err)
		}
		e.ID = id
		e.Load = stringPtr(load)
		e.ImageRef = stringPtr(imgs)
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// resolvePlanID finds the full ID from a prefix.
func (d *DB) resolvePlanID(ctx context.Context, idOrPrefix string) (string, error) {
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}
	if idOrPrefix == "" {
		return "", fmt.Errorf("plan id: %w", errs.ErrNotFound)
	}

	rows, err := d.db.QueryContext(ctx, `SELECT id FROM workout_plans WHERE id LIKE ? || '%'`, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve plan ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan plan ID: %w", err)
		}
		matches = append(matches, id)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("plan %s: %w", idOrPrefix, errs.ErrNotFound)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple plans", idOrPrefix)
	}
	return matches[0], nil
}

func scanPlan(s rowScanner) (*models.WorkoutPlan, error) {
	var (
		p                      models.WorkoutPlan
		idStr, days, createdAt string
		desc                   sql.NullString
	)
	if err := s.Scan(&idStr, &p.Name, &desc, &days, &p.IsActive, &createdAt); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse plan id %q: %w", idStr, err)
	}
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse plan created_at %q: %w", createdAt, err)
	}
	p.ID = id
	p.Description = stringPtr(desc)
	p.CreatedAt = created

	var names []string
	if err := json.Unmarshal([]byte(days), &names); err != nil {
		return nil, fmt.Errorf("decode active days: %w", err)
	}
	for _, n := range names {
		wd, err := models.ParseWeekday(n)
		if err != nil {
			return nil, err
		}
		p.ActiveDays = append(p.ActiveDays, wd)
	}
	return &p, nil
}
