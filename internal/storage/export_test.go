// ABOUTME: Tests for export functionality.
// ABOUTME: Verifies JSON, YAML, and Markdown formats and photo ref stripping.
package storage

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/fittrack/internal/models"
	"gopkg.in/yaml.v3"
)

func seedExportData(t *testing.T, db *DB) *models.WorkoutPlan {
	t.Helper()
	ctx := context.Background()

	r := models.NewRecord(day("2024-01-01"), 82.5).
		WithNote("test note").
		WithPhotoRef(models.PhotoFront, "photo:front:2024-01-01").
		WithPhotoRef(models.PhotoSide, "data:image/png;base64,AAAA")
	if err := db.UpsertRecord(ctx, r); err != nil {
		t.Fatalf("UpsertRecord failed: %v", err)
	}

	p := models.NewWorkoutPlan("Push", time.Monday).WithExercise(models.NewExercise("Bench"))
	if err := db.SavePlan(ctx, p); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}
	if err := db.SaveCheckIn(ctx, models.NewCheckIn(day("2024-01-01"), p.ID).WithDuration(50)); err != nil {
		t.Fatalf("SaveCheckIn failed: %v", err)
	}
	return p
}

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	p := seedExportData(t, db)
	exportedAt := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	data, err := db.GetAllData(context.Background(), exportedAt)
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	out, err := data.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(out, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if export.Tool != "fittrack" || export.Version != ExportVersion {
		t.Errorf("header = %s %s", export.Tool, export.Version)
	}
	if !export.ExportedAt.Equal(exportedAt) {
		t.Errorf("ExportedAt = %v, want %v", export.ExportedAt, exportedAt)
	}
	if export.Config.Name != "User" {
		t.Errorf("Config.Name = %s, want User", export.Config.Name)
	}
	if len(export.Records) != 1 || len(export.Workouts) != 1 || len(export.CheckIns) != 1 {
		t.Fatalf("counts: %d records, %d workouts, %d check-ins",
			len(export.Records), len(export.Workouts), len(export.CheckIns))
	}
	if export.Workouts[0].ID != p.ID.String() {
		t.Errorf("workout ID = %s", export.Workouts[0].ID)
	}
}

func TestExportNullsPhotoRefs(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	data, err := db.GetAllData(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	out, err := data.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	text := string(out)
	if strings.Contains(text, "photo:front") || strings.Contains(text, "base64") {
		t.Error("export must not contain photo references")
	}
	if !strings.Contains(text, `"front_photo": null`) || !strings.Contains(text, `"side_photo": null`) {
		t.Error("expected photo fields to be present and null")
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	data, err := db.GetAllData(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	out, err := data.YAML()
	if err != nil {
		t.Fatalf("YAML failed: %v", err)
	}

	var parsed map[string]interface{}
	if err := yaml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	if parsed["tool"] != "fittrack" {
		t.Errorf("tool = %v", parsed["tool"])
	}
	records, ok := parsed["records"].([]interface{})
	if !ok || len(records) != 1 {
		t.Fatalf("records = %v", parsed["records"])
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	data, err := db.GetAllData(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	md := data.Markdown()

	for _, want := range []string{"# Fittrack Export", "## Records", "| 2024-01-01 | 82.5 |", "test note", "### Push (mon, active)", "- Bench: 3 x 8-10, rest 60s", "## Check-ins", "| 2024-01-01 | Push | yes | 50 |"} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q", want)
		}
	}
}

func TestExportEmpty(t *testing.T) {
	db := setupTestDB(t)

	data, err := db.GetAllData(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	out, err := data.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if !strings.Contains(string(out), `"records": []`) {
		t.Error("empty export should contain an empty records array")
	}
	if strings.Contains(data.Markdown(), "## Records") {
		t.Error("empty markdown export should not contain a records section")
	}
}
