// ABOUTME: One-shot data migrator run when a session opens.
// ABOUTME: Converts legacy data, moves inline photos to the photo store, then marks version 2.0.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/fittrack/internal/errs"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/photos"
	"github.com/harperreed/fittrack/internal/storage"
	"github.com/harperreed/fittrack/internal/validate"
	log "github.com/sirupsen/logrus"
)

// CurrentVersion is the data version this build writes.
const CurrentVersion = "2.0"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=migrate_test

type dataStore interface {
	DataVersion(ctx context.Context) (string, error)
	GetValue(ctx context.Context, key string) (string, error)
	ListRecords(ctx context.Context) ([]*models.Record, error)
	ApplyMigrationBatch(ctx context.Context, b *storage.MigrationBatch) error
	CompleteMigration(ctx context.Context, version string) error
}

type photoWriter interface {
	Put(ctx context.Context, pt models.PhotoType, date time.Time, data []byte) (string, error)
}

// Result summarizes one migrator run.
type Result struct {
	AlreadyCurrent  bool
	FromVersion     string
	Records         int
	Skipped         int
	PhotosExtracted int
	Plans           int
	CheckIns        int
	Settings        bool
	Duration        time.Duration
}

// Migrator upgrades stored data to CurrentVersion.
type Migrator struct {
	store  dataStore
	photos photoWriter
}

// New creates a Migrator over the record database and photo store.
func New(store dataStore, photos photoWriter) *Migrator {
	return &Migrator{store: store, photos: photos}
}

// Run migrates if the stored version differs from CurrentVersion. Any
// failure returns a *errs.MigrationError and leaves the marker untouched,
// so the next run starts over.
func (m *Migrator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	version, err := m.store.DataVersion(ctx)
	if err != nil {
		return nil, &errs.MigrationError{Step: "read version", Err: err}
	}
	if version == CurrentVersion {
		return &Result{AlreadyCurrent: true, FromVersion: version}, nil
	}

	logger := log.WithFields(log.Fields{"from": version, "to": CurrentVersion})
	logger.Info("migrating data")

	res := &Result{FromVersion: version}
	batch := &storage.MigrationBatch{}

	records, skipped, err := m.loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	res.Skipped = skipped

	for _, r := range records {
		n, err := m.extractPhotos(ctx, r)
		if err != nil {
			return nil, &errs.MigrationError{Step: "extract photo " + r.DateString(), Err: err}
		}
		res.PhotosExtracted += n
	}
	batch.Records = records
	res.Records = len(records)

	if batch.Settings, err = m.loadSettings(ctx); err != nil {
		return nil, err
	}
	res.Settings = batch.Settings != nil

	if batch.Plans, err = m.loadPlans(ctx); err != nil {
		return nil, err
	}
	res.Plans = len(batch.Plans)

	if batch.CheckIns, err = m.loadCheckIns(ctx); err != nil {
		return nil, err
	}
	res.CheckIns = len(batch.CheckIns)

	if err := m.store.ApplyMigrationBatch(ctx, batch); err != nil {
		return nil, &errs.MigrationError{Step: "persist", Err: err}
	}
	if err := m.store.CompleteMigration(ctx, CurrentVersion); err != nil {
		return nil, &errs.MigrationError{Step: "mark version", Err: err}
	}

	res.Duration = time.Since(start)
	logger.WithFields(log.Fields{
		"records":  res.Records,
		"skipped":  res.Skipped,
		"photos":   res.PhotosExtracted,
		"plans":    res.Plans,
		"checkins": res.CheckIns,
		"duration": res.Duration,
	}).Info("data migration complete")
	return res, nil
}

func (m *Migrator) legacyValue(ctx context.Context, key string) (string, error) {
	v, err := m.store.GetValue(ctx, key)
	if errors.Is(err, errs.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", &errs.MigrationError{Step: "read " + key, Err: err}
	}
	return v, nil
}

// loadRecords returns the legacy records plus any stored record still
// holding an inline photo, ordered so later timestamps win per date.
func (m *Migrator) loadRecords(ctx context.Context) ([]*models.Record, int, error) {
	raw, err := m.legacyValue(ctx, storage.KeyLegacyRecords)
	if err != nil {
		return nil, 0, err
	}
	legacy, err := decodeList[legacyRecord](raw)
	if err != nil {
		return nil, 0, &errs.MigrationError{Step: "decode records", Err: err}
	}

	var out []*models.Record
	skipped := 0
	for _, lr := range legacy {
		r, err := lr.toRecord()
		if err == nil {
			err = validate.Record(r, nil, nil)
		}
		if err != nil {
			log.WithError(err).WithField("date", lr.Data).Warn("skipping legacy record")
			skipped++
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })

	stored, err := m.store.ListRecords(ctx)
	if err != nil {
		return nil, 0, &errs.MigrationError{Step: "list records", Err: err}
	}
	for _, r := range stored {
		if hasInlinePhoto(r) {
			out = append(out, r)
		}
	}
	return out, skipped, nil
}

func hasInlinePhoto(r *models.Record) bool {
	for _, pt := range models.PhotoTypes {
		if ref := r.PhotoRef(pt); ref != nil && models.IsInlinePhoto(*ref) {
			return true
		}
	}
	return false
}

// extractPhotos moves inline photos into the photo store and rewrites the
// record's refs. Putting the same (type, date) again replaces the entry.
func (m *Migrator) extractPhotos(ctx context.Context, r *models.Record) (int, error) {
	n := 0
	for _, pt := range models.PhotoTypes {
		ref := r.PhotoRef(pt)
		if ref == nil || !models.IsInlinePhoto(*ref) {
			continue
		}
		data, err := photos.DecodeDataURL(*ref)
		if err != nil {
			return n, fmt.Errorf("%s photo: %w", pt, err)
		}
		newRef, err := m.photos.Put(ctx, pt, r.Date, data)
		if err != nil {
			return n, fmt.Errorf("%s photo: %w", pt, err)
		}
		r.WithPhotoRef(pt, newRef)
		n++
	}
	return n, nil
}

func (m *Migrator) loadSettings(ctx context.Context) (*models.Settings, error) {
	raw, err := m.legacyValue(ctx, storage.KeyLegacyConfig)
	if err != nil || raw == "" {
		return nil, err
	}
	var lc legacyConfig
	if err := decodeObject(raw, &lc); err != nil {
		return nil, &errs.MigrationError{Step: "decode config", Err: err}
	}
	s := lc.apply(models.DefaultSettings())
	if err := validate.Settings(s); err != nil {
		log.WithError(err).Warn("legacy config is invalid; keeping current settings")
		return nil, nil
	}
	return &s, nil
}

func (m *Migrator) loadPlans(ctx context.Context) ([]*models.WorkoutPlan, error) {
	raw, err := m.legacyValue(ctx, storage.KeyLegacyWorkouts)
	if err != nil {
		return nil, err
	}
	legacy, err := decodeList[legacyWorkout](raw)
	if err != nil {
		return nil, &errs.MigrationError{Step: "decode workouts", Err: err}
	}
	var out []*models.WorkoutPlan
	for _, lw := range legacy {
		p, err := lw.toPlan()
		if err != nil {
			log.WithError(err).Warn("skipping legacy workout")
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *Migrator) loadCheckIns(ctx context.Context) ([]*models.CheckIn, error) {
	raw, err := m.legacyValue(ctx, storage.KeyLegacyCheckIns)
	if err != nil {
		return nil, err
	}
	legacy, err := decodeList[legacyCheckIn](raw)
	if err != nil {
		return nil, &errs.MigrationError{Step: "decode check-ins", Err: err}
	}
	var out []*models.CheckIn
	for _, lc := range legacy {
		c, err := lc.toCheckIn()
		if err != nil {
			log.WithError(err).Warn("skipping legacy check-in")
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}
