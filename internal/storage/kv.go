// ABOUTME: Key/value table for singletons: settings, schema marker, legacy data.
// ABOUTME: Values are strings; absent keys return errs.ErrNotFound.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/fittrack/internal/errs"
)

// Well-known kv keys.
const (
	KeySettings       = "config"
	KeySchemaVersion  = "schema_version"
	KeyLegacyRecords  = "legacy_records"
	KeyLegacyConfig   = "legacy_config"
	KeyLegacyWorkouts = "legacy_workouts"
	KeyLegacyCheckIns = "legacy_checkins"
)

// LegacyKeys lists every key that holds pre-migration data.
var LegacyKeys = []string{KeyLegacyRecords, KeyLegacyConfig, KeyLegacyWorkouts, KeyLegacyCheckIns}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// GetValue reads a kv entry.
func (d *DB) GetValue(ctx context.Context, key string) (string, error) {
	var value string
	err := d.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("kv %s: %w", key, errs.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get kv %s: %w", key, err)
	}
	return value, nil
}

// SetValue writes a kv entry, replacing any existing value.
func (d *DB) SetValue(ctx context.Context, key, value string) error {
	return setValue(ctx, d.db, key, value)
}

// DeleteValue removes a kv entry; deleting a missing key is not an error.
func (d *DB) DeleteValue(ctx context.Context, key string) error {
	return deleteValue(ctx, d.db, key)
}

func setValue(ctx context.Context, ex execer, key, value string) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set kv %s: %w", key, err)
	}
	return nil
}

func deleteValue(ctx context.Context, ex execer, key string) error {
	if _, err := ex.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete kv %s: %w", key, err)
	}
	return nil
}

// DataVersion returns the stored schema version marker, or "" if absent.
func (d *DB) DataVersion(ctx context.Context) (string, error) {
	v, err := d.GetValue(ctx, KeySchemaVersion)
	if errors.Is(err, errs.ErrNotFound) {
		return "", nil
	}
	return v, err
}

// CompleteMigration deletes the legacy keys and writes the version marker
// in one transaction, so the marker only advances with the cleanup.
func (d *DB) CompleteMigration(ctx context.Context, version string) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		for _, key := range LegacyKeys {
			if err := deleteValue(ctx, tx, key); err != nil {
				return err
			}
		}
		return setValue(ctx, tx, KeySchemaVersion, version)
	})
}
