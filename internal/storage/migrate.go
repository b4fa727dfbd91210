// ABOUTME: Staging of legacy browser data for the schema migrator.
// ABOUTME: Parses a localStorage dump and writes it under the legacy kv keys.
package storage

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/validate"
)

// Browser localStorage keys used by the legacy application.
const (
	legacyStorageRecords  = "fittrack_records"
	legacyStorageConfig   = "fittrack_config"
	legacyStorageWorkouts = "fittrack_treinos"
	legacyStorageCheckIns = "fittrack_treino_checkins"
)

// LegacyDump holds the raw JSON values of a legacy localStorage export.
// Empty fields mean the key was absent.
type LegacyDump struct {
	Records  string
	Config   string
	Workouts string
	CheckIns string
}

// StashSummary reports which legacy keys were staged.
type StashSummary struct {
	Records  bool
	Config   bool
	Workouts bool
	CheckIns bool
}

// ParseLegacyDump reads a JSON object of localStorage keys. Values may be
// JSON strings (as localStorage stores them) or inline JSON.
func ParseLegacyDump(data []byte) (*LegacyDump, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse legacy dump: %w", err)
	}

	value := func(key string) string {
		msg, ok := raw[key]
		if !ok || bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
			return ""
		}
		var s string
		if err := json.Unmarshal(msg, &s); err == nil {
			return s
		}
		return string(msg)
	}

	dump := LegacyDump{
		Records:  value(legacyStorageRecords),
		Config:   value(legacyStorageConfig),
		Workouts: value(legacyStorageWorkouts),
		CheckIns: value(legacyStorageCheckIns),
	}
	return &dump, nil
}

// StashLegacy writes the dump's values under the legacy keys and clears the
// schema marker so the migrator runs on the next session open.
func (d *DB) StashLegacy(ctx context.Context, dump *LegacyDump) (*StashSummary, error) {
	summary := &StashSummary{}
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		pairs := []struct {
			key   string
			value string
			flag  *bool
		}{
			{KeyLegacyRecords, dump.Records, &summary.Records},
			{KeyLegacyConfig, dump.Config, &summary.Config},
			{KeyLegacyWorkouts, dump.Workouts, &summary.Workouts},
			{KeyLegacyCheckIns, dump.CheckIns, &summary.CheckIns},
		}
		for _, p := range pairs {
			if p.value == "" {
				continue
			}
			if err := setValue(ctx, tx, p.key, p.value); err != nil {
				return err
			}
			*p.flag = true
		}
		return deleteValue(ctx, tx, KeySchemaVersion)
	})
	if err != nil {
		return nil, fmt.Errorf("stash legacy data: %w", err)
	}
	return summary, nil
}

// MigrationBatch applies the converted legacy data in one transaction.
type MigrationBatch struct {
	Records  []*models.Record
	Plans    []*models.WorkoutPlan
	CheckIns []*models.CheckIn
	Settings *models.Settings
}

// ApplyMigrationBatch upserts the converted legacy data atomically.
func (d *DB) ApplyMigrationBatch(ctx context.Context, b *MigrationBatch) error {
	var settingsJSON []byte
	if b.Settings != nil {
		if err := validate.Settings(*b.Settings); err != nil {
			return fmt.Errorf("legacy settings: %w", err)
		}
		var err error
		if settingsJSON, err = json.Marshal(b.Settings); err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
	}

	return d.withTx(ctx, func(tx *sql.Tx) error {
		for _, r := range b.Records {
			if err := upsertRecord(ctx, tx, r); err != nil {
				return err
			}
		}
		for _, p := range b.Plans {
			if err := savePlan(ctx, tx, p); err != nil {
				return err
			}
		}
		for _, c := range b.CheckIns {
			if err := saveCheckIn(ctx, tx, c); err != nil {
				return err
			}
		}
		if settingsJSON != nil {
			return setValue(ctx, tx, KeySettings, string(settingsJSON))
		}
		return nil
	})
}
