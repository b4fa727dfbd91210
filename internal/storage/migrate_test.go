// ABOUTME: Tests for legacy dump parsing, staging, and batch application.
// ABOUTME: Covers string-encoded and inline localStorage values.
package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harperreed/fittrack/internal/errs"
	"github.com/harperreed/fittrack/internal/models"
)

func TestParseLegacyDump(t *testing.T) {
	input := []byte(`{
		"fittrack_records": "[{\"data\":\"01/01/2024\",\"peso\":80}]",
		"fittrack_config": {"nome": "Ana", "metaPeso": 60},
		"fittrack_treinos": null,
		"unrelated": "x"
	}`)

	dump, err := ParseLegacyDump(input)
	if err != nil {
		t.Fatalf("ParseLegacyDump failed: %v", err)
	}
	if dump.Records != `[{"data":"01/01/2024","peso":80}]` {
		t.Errorf("Records = %s", dump.Records)
	}
	if dump.Config != `{"nome": "Ana", "metaPeso": 60}` {
		t.Errorf("Config = %s", dump.Config)
	}
	if dump.Workouts != "" || dump.CheckIns != "" {
		t.Errorf("absent keys should be empty: %+v", dump)
	}
}

func TestParseLegacyDumpInvalid(t *testing.T) {
	if _, err := ParseLegacyDump([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestStashLegacyClearsMarker(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.CompleteMigration(ctx, "2.0"); err != nil {
		t.Fatalf("CompleteMigration failed: %v", err)
	}

	summary, err := db.StashLegacy(ctx, &LegacyDump{Records: "[]", Config: "{}"})
	if err != nil {
		t.Fatalf("StashLegacy failed: %v", err)
	}
	if !summary.Records || !summary.Config || summary.Workouts || summary.CheckIns {
		t.Errorf("summary = %+v", summary)
	}

	v, err := db.DataVersion(ctx)
	if err != nil || v != "" {
		t.Errorf("DataVersion = %q, %v; want empty", v, err)
	}
	if got, err := db.GetValue(ctx, KeyLegacyRecords); err != nil || got != "[]" {
		t.Errorf("legacy records = %q, %v", got, err)
	}
	if _, err := db.GetValue(ctx, KeyLegacyWorkouts); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("absent workouts should not be stashed, got %v", err)
	}
}

func TestApplyMigrationBatch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	plan := models.NewWorkoutPlan("Legacy A", time.Monday).WithExercise(models.NewExercise("Squat"))
	settings := models.DefaultSettings()
	settings.Name = "Ana"

	batch := &MigrationBatch{
		Records:  []*models.Record{models.NewRecord(day("2024-01-01"), 80), models.NewRecord(day("2024-01-02"), 79.6)},
		Plans:    []*models.WorkoutPlan{plan},
		CheckIns: []*models.CheckIn{models.NewCheckIn(day("2024-01-01"), plan.ID)},
		Settings: &settings,
	}
	if err := db.ApplyMigrationBatch(ctx, batch); err != nil {
		t.Fatalf("ApplyMigrationBatch failed: %v", err)
	}

	n, _ := db.CountRecords(ctx)
	if n != 2 {
		t.Errorf("CountRecords = %d, want 2", n)
	}
	s, _ := db.GetSettings(ctx)
	if s.Name != "Ana" {
		t.Errorf("settings name = %s, want Ana", s.Name)
	}
	checkins, _ := db.ListCheckIns(ctx)
	if len(checkins) != 1 {
		t.Errorf("check-ins = %d, want 1", len(checkins))
	}
}

func TestApplyMigrationBatchIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	batch := &MigrationBatch{
		Records: []*models.Record{
			models.NewRecord(day("2024-01-01"), 80),
			models.NewRecord(day("2024-01-02"), -1), // violates CHECK (weight > 0)
		},
	}
	if err := db.ApplyMigrationBatch(ctx, batch); err == nil {
		t.Fatal("expected error from invalid record")
	}

	n, _ := db.CountRecords(ctx)
	if n != 0 {
		t.Errorf("partial batch was committed: %d records", n)
	}
}
