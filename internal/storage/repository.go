// ABOUTME: Repository interface for fittrack data storage.
// ABOUTME: Defines the contract for records, plans, check-ins, settings and kv.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fittrack/internal/models"
)

// Repository defines the storage interface for fittrack data.
type Repository interface {
	// Record operations
	UpsertRecord(ctx context.Context, r *models.Record) error
	GetRecord(ctx context.Context, date time.Time) (*models.Record, error)
	ListRecords(ctx context.Context) ([]*models.Record, error)
	ListRecordsSince(ctx context.Context, since time.Time) ([]*models.Record, error)
	NeighborRecords(ctx context.Context, date time.Time) (prev, next *models.Record, err error)
	HasRecordOn(ctx context.Context, date time.Time) (bool, error)
	CountRecords(ctx context.Context) (int, error)
	DeleteRecord(ctx context.Context, date time.Time) error

	// Workout operations
	SavePlan(ctx context.Context, p *models.WorkoutPlan) error
	GetPlan(ctx context.Context, idOrPrefix string) (*models.WorkoutPlan, error)
	ListPlans(ctx context.Context) ([]*models.WorkoutPlan, error)
	SetPlanActive(ctx context.Context, idOrPrefix string, active bool) error
	DeletePlan(ctx context.Context, idOrPrefix string) error
	SaveCheckIn(ctx context.Context, c *models.CheckIn) error
	ListCheckIns(ctx context.Context) ([]*models.CheckIn, error)
	ListCheckInsForPlan(ctx context.Context, workoutID uuid.UUID) ([]*models.CheckIn, error)

	// Settings
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, s models.Settings) error
	UpdateSettings(ctx context.Context, u models.SettingsUpdate) (models.Settings, error)

	// Schema marker and legacy data
	SchemaVersion(ctx context.Context) (int64, error)
	GetValue(ctx context.Context, key string) (string, error)
	DataVersion(ctx context.Context) (string, error)
	ApplyMigrationBatch(ctx context.Context, b *MigrationBatch) error
	CompleteMigration(ctx context.Context, version string) error
	StashLegacy(ctx context.Context, dump *LegacyDump) (*StashSummary, error)

	// Export and lifecycle
	GetAllData(ctx context.Context, exportedAt time.Time) (*ExportData, error)
	ClearAll(ctx context.Context) error
	Path() string
	Close() error
}

var _ Repository = (*DB)(nil)
