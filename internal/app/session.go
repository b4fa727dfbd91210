// ABOUTME: Session owns the open stores and clock for one process.
// ABOUTME: Opening a session runs the data migrator before anything else reads.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/harperreed/fittrack/internal/errs"
	"github.com/harperreed/fittrack/internal/migrate"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/photos"
	"github.com/harperreed/fittrack/internal/storage"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Options configures Open.
type Options struct {
	// DataDir holds fittrack.db and the photos directory.
	DataDir string
	// PhotoCacheMB sizes the photo read cache; zero disables it.
	PhotoCacheMB int
	// InMemoryPhotos keeps photos out of DataDir, for tests.
	InMemoryPhotos bool
	// Now overrides the clock.
	Now func() time.Time
}

// Session is the explicit handle on fittrack's data. Methods on a nil or
// closed Session return *errs.NotInitializedError.
type Session struct {
	db        storage.Repository
	photos    *photos.Store
	now       func() time.Time
	migration *migrate.Result
	dataDir   string
}

// Open opens the database and photo store in opts.DataDir and migrates
// legacy data. A migration failure closes everything and is returned.
func Open(ctx context.Context, opts Options) (*Session, error) {
	if opts.DataDir == "" {
		opts.DataDir = storage.DataDir()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	db, err := storage.Open(ctx, storage.DefaultDBPath(opts.DataDir))
	if err != nil {
		return nil, err
	}

	var popts []photos.Option
	if opts.PhotoCacheMB > 0 {
		popts = append(popts, photos.WithCache(photos.NewCache(opts.PhotoCacheMB, 0)))
	}
	var ps *photos.Store
	if opts.InMemoryPhotos {
		ps, err = photos.OpenInMemory(popts...)
	} else {
		ps, err = photos.Open(PhotoDir(opts.DataDir), popts...)
	}
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	res, err := migrate.New(db, ps).Run(ctx)
	if err != nil {
		_ = multierr.Append(ps.Close(), db.Close())
		return nil, err
	}

	log.WithFields(log.Fields{
		"data_dir": opts.DataDir,
		"migrated": !res.AlreadyCurrent,
	}).Debug("session opened")

	return &Session{
		db:        db,
		photos:    ps,
		now:       opts.Now,
		migration: res,
		dataDir:   opts.DataDir,
	}, nil
}

// PhotoDir returns the photo store directory inside a data directory.
func PhotoDir(dataDir string) string {
	return filepath.Join(dataDir, "photos")
}

// Close closes both stores.
func (s *Session) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := multierr.Append(s.photos.Close(), s.db.Close())
	s.db, s.photos = nil, nil
	return err
}

func (s *Session) ready() error {
	if s == nil || s.db == nil {
		return &errs.NotInitializedError{Store: "session"}
	}
	return nil
}

// Today returns the session clock's calendar date.
func (s *Session) Today() time.Time {
	return models.Day(s.now())
}

// Migration returns the result of the migrator run at open.
func (s *Session) Migration() *migrate.Result {
	return s.migration
}

// DataDir returns the directory the session's stores live in.
func (s *Session) DataDir() string {
	return s.dataDir
}

// Status describes the open stores.
type Status struct {
	DataDir     string `json:"data_dir"`
	DBPath      string `json:"db_path"`
	DataVersion string `json:"data_version"`
	// SchemaVersion is the latest applied DDL migration.
	SchemaVersion int64 `json:"schema_version"`
	Records       int   `json:"records"`
	Photos        int   `json:"photos"`
	Plans         int   `json:"plans"`
	CheckIns      int   `json:"checkins"`
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
}

// Status counts what is stored.
func (s *Session) Status(ctx context.Context) (*Status, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	st := &Status{DataDir: s.dataDir, DBPath: s.db.Path()}

	var err error
	if st.DataVersion, err = s.db.DataVersion(ctx); err != nil {
		return nil, err
	}
	if st.SchemaVersion, err = s.db.SchemaVersion(ctx); err != nil {
		return nil, err
	}
	if st.Records, err = s.db.CountRecords(ctx); err != nil {
		return nil, err
	}
	if st.Photos, err = s.photos.Count(ctx); err != nil {
		return nil, err
	}
	plans, err := s.db.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	st.Plans = len(plans)
	checkins, err := s.db.ListCheckIns(ctx)
	if err != nil {
		return nil, err
	}
	st.CheckIns = len(checkins)
	st.CacheHits, st.CacheMisses = s.photos.CacheStats()
	return st, nil
}

// ImportLegacy stages a legacy dump and migrates it immediately.
func (s *Session) ImportLegacy(ctx context.Context, dump *storage.LegacyDump) (*storage.StashSummary, *migrate.Result, error) {
	if err := s.ready(); err != nil {
		return nil, nil, err
	}
	summary, err := s.db.StashLegacy(ctx, dump)
	if err != nil {
		return nil, nil, err
	}
	res, err := migrate.New(s.db, s.photos).Run(ctx)
	if err != nil {
		return summary, nil, err
	}
	s.migration = res
	return summary, res, nil
}

// Export returns every stored value with photo refs removed.
func (s *Session) Export(ctx context.Context) (*storage.ExportData, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.db.GetAllData(ctx, s.now().UTC())
}

// ClearAll wipes records, plans, check-ins, settings and photos, then marks
// the empty store as current so no migration runs on the next open.
func (s *Session) ClearAll(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	err := multierr.Append(s.db.ClearAll(ctx), s.photos.DropAll())
	if err != nil {
		return fmt.Errorf("clear all: %w", err)
	}
	return s.db.CompleteMigration(ctx, migrate.CurrentVersion)
}
