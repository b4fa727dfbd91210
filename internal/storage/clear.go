// ABOUTME: Bulk removal of every row in the SQLite stores.
// ABOUTME: Runs in one transaction so the wipe is all-or-nothing.
package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// ClearAll deletes records, plans, exercises, check-ins and kv entries,
// including settings and the schema marker.
func (d *DB) ClearAll(ctx context.Context) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"checkins", "exercises", "workout_plans", "records", "kv"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}
