// ABOUTME: Record CRUD for SQLite storage, one row per calendar date.
// ABOUTME: Upserts merge photo refs so a replacement keeps existing photos.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/fittrack/internal/errs"
	"github.com/harperreed/fittrack/internal/models"
)

const recordColumns = `date, weight, waist, water, sleep, note, front_photo_ref, side_photo_ref, timestamp`

type rowScanner interface {
	Scan(dest ...any) error
}

// UpsertRecord inserts the record for r.Date or replaces the existing one.
// Photo slots left nil on r keep the stored reference.
func (d *DB) UpsertRecord(ctx context.Context, r *models.Record) error {
	return upsertRecord(ctx, d.db, r)
}

func upsertRecord(ctx context.Context, ex execer, r *models.Record) error {
	query := `
		INSERT INTO records (` + recordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			weight = excluded.weight,
			waist = excluded.waist,
			water = excluded.water,
			sleep = excluded.sleep,
			note = excluded.note,
			front_photo_ref = COALESCE(excluded.front_photo_ref, records.front_photo_ref),
			side_photo_ref = COALESCE(excluded.side_photo_ref, records.side_photo_ref),
			timestamp = excluded.timestamp
	`
	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := ex.ExecContext(ctx, query,
		models.FormatDate(r.Date),
		r.Weight,
		r.Waist,
		r.Water,
		r.Sleep,
		r.Note,
		r.FrontPhotoRef,
		r.SidePhotoRef,
		ts.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert record %s: %w", models.FormatDate(r.Date), err)
	}
	return nil
}

// GetRecord retrieves the record for a date.
func (d *DB) GetRecord(ctx context.Context, date time.Time) (*models.Record, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE date = ?`, models.FormatDate(date))
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("record %s: %w", models.FormatDate(date), errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return r, nil
}

// ListRecords returns every record ordered by date ascending.
func (d *DB) ListRecords(ctx context.Context) ([]*models.Record, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT `+recordColumns+` FROM records ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListRecordsSince returns records on or after since, ordered by date ascending.
func (d *DB) ListRecordsSince(ctx context.Context, since time.Time) ([]*models.Record, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE date >= ? ORDER BY date ASC`, models.FormatDate(since))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// NeighborRecords returns the nearest records strictly before and after date.
// Either may be nil.
func (d *DB) NeighborRecords(ctx context.Context, date time.Time) (prev, next *models.Record, err error) {
	key := models.FormatDate(date)

	prev, err = scanRecord(d.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE date < ? ORDER BY date DESC LIMIT 1`, key))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("previous record: %w", err)
	}

	next, err = scanRecord(d.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE date > ? ORDER BY date ASC LIMIT 1`, key))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("next record: %w", err)
	}

	return prev, next, nil
}

// HasRecordOn reports whether a record exists for the date.
func (d *DB) HasRecordOn(ctx context.Context, date time.Time) (bool, error) {
	var exists bool
	err := d.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM records WHERE date = ?)`, models.FormatDate(date)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check record: %w", err)
	}
	return exists, nil
}

// CountRecords returns the number of stored records.
func (d *DB) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// DeleteRecord removes the record for a date.
func (d *DB) DeleteRecord(ctx context.Context, date time.Time) error {
	result, err := d.db.ExecContext(ctx, "DELETE FROM records WHERE date = ?", models.FormatDate(date))
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("record %s: %w", models.FormatDate(date), errs.ErrNotFound)
	}
	return nil
}

func scanRecord(s rowScanner) (*models.Record, error) {
	var (
		date, ts            string
		weight              float64
		waist, water, sleep sql.NullFloat64
		note, front, side   sql.NullString
	)
	if err := s.Scan(&date, &weight, &waist, &water, &sleep, &note, &front, &side, &ts); err != nil {
		return nil, err
	}

	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("parse record date %q: %w", date, err)
	}
	stamp, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, fmt.Errorf("parse record timestamp %q: %w", ts, err)
	}

	return &models.Record{
		Date:          day,
		Weight:        weight,
		Waist:         floatPtr(waist),
		Water:         floatPtr(water),
		Sleep:         floatPtr(sleep),
		Note:          stringPtr(note),
		FrontPhotoRef: stringPtr(front),
		SidePhotoRef:  stringPtr(side),
		Timestamp:     stamp,
	}, nil
}

func scanRecords(rows *sql.Rows) ([]*models.Record, error) {
	var records []*models.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
