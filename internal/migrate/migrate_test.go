// ABOUTME: Tests for the data migrator using gomock fakes and real stores.
// ABOUTME: Checks idempotence and that failures never advance the version marker.
package migrate_test

import (
	"context"
	"encoding/base64"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/fittrack/internal/errs"
	"github.com/harperreed/fittrack/internal/migrate"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/photos"
	"github.com/harperreed/fittrack/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func dataURL(payload string) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
}

func legacyRecords() string {
	return `[
	{"data":"01/01/2024","peso":"80.5","cintura":"","agua":2,"sono":"7,5","notas":"start","fotoFrente":"` + dataURL("front-jpeg") + `","fotoLado":null,"timestamp":1704100000000},
	{"data":"02/01/2024","peso":80.1,"timestamp":1704200000000},
	{"data":"03/01/2024","peso":0,"timestamp":1704300000000},
	{"data":"not a date","peso":80}
]`
}

const (
	legacyConfig   = `{"nome":"Ana","pesoInicial":90,"metaPeso":"70","prazoMeta":"2024-06-30","reminderEnabled":true,"reminderTime":"21:30","theme":"light"}`
	legacyWorkouts = `[{"id":"treino-1","nome":"Treino A","descricao":"Peito","diasSemana":["Seg","Qua","Sáb"],"ativo":true,
		"exercicios":[{"id":"ex-1","nome":"Supino","series":4,"repeticoes":"6-8","descanso":90,"carga":"60kg","imagem":null},
		              {"id":"ex-2","nome":"","series":3}],
		"criadoEm":"2024-01-01"}]`
	legacyCheckIns = `[{"data":"01/01/2024","treinoId":"treino-1","concluido":true,"duracao":45,"observacao":null,"timestamp":1704100000000},
		{"data":"01/01/2024","treinoId":"treino-1","concluido":true,"duracao":50,"observacao":"again","timestamp":1704100500000}]`
)

func legacyDump() *storage.LegacyDump {
	return &storage.LegacyDump{
		Records:  legacyRecords(),
		Config:   legacyConfig,
		Workouts: legacyWorkouts,
		CheckIns: legacyCheckIns,
	}
}

func openStores(t *testing.T) (*storage.DB, *photos.Store) {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ps, err := photos.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ps.Close() })
	return db, ps
}

func TestRun_AlreadyCurrent(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockdataStore(ctrl)
	writer := NewMockphotoWriter(ctrl)

	store.EXPECT().DataVersion(gomock.Any()).Return(migrate.CurrentVersion, nil)

	res, err := migrate.New(store, writer).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.AlreadyCurrent)
}

func TestRun_PhotoFailureLeavesMarker(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockdataStore(ctrl)
	writer := NewMockphotoWriter(ctrl)

	store.EXPECT().DataVersion(gomock.Any()).Return("", nil)
	store.EXPECT().GetValue(gomock.Any(), storage.KeyLegacyRecords).
		Return(`[{"data":"2024-01-01","peso":80,"fotoFrente":"`+dataURL("x")+`"}]`, nil)
	store.EXPECT().ListRecords(gomock.Any()).Return(nil, nil)
	writer.EXPECT().Put(gomock.Any(), models.PhotoFront, gomock.Any(), []byte("x")).
		Return("", errors.New("disk full"))
	// ApplyMigrationBatch and CompleteMigration must not be called.

	_, err := migrate.New(store, writer).Run(context.Background())
	require.Error(t, err)

	var me *errs.MigrationError
	require.True(t, errors.As(err, &me))
	assert.Contains(t, me.Step, "extract photo")
}

func TestRun_PersistFailureLeavesMarker(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockdataStore(ctrl)
	writer := NewMockphotoWriter(ctrl)

	store.EXPECT().DataVersion(gomock.Any()).Return("1.0", nil)
	store.EXPECT().GetValue(gomock.Any(), gomock.Any()).
		Return("", errs.ErrNotFound).Times(len(storage.LegacyKeys))
	store.EXPECT().ListRecords(gomock.Any()).Return(nil, nil)
	store.EXPECT().ApplyMigrationBatch(gomock.Any(), gomock.Any()).Return(errors.New("locked"))

	_, err := migrate.New(store, writer).Run(context.Background())

	var me *errs.MigrationError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "persist", me.Step)
}

func TestRun_EmptyStoreMarksVersion(t *testing.T) {
	db, ps := openStores(t)
	ctx := context.Background()

	res, err := migrate.New(db, ps).Run(ctx)
	require.NoError(t, err)
	assert.False(t, res.AlreadyCurrent)
	assert.Zero(t, res.Records)

	v, err := db.DataVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, migrate.CurrentVersion, v)
}

func TestRun_LegacyDump(t *testing.T) {
	db, ps := openStores(t)
	ctx := context.Background()

	_, err := db.StashLegacy(ctx, legacyDump())
	require.NoError(t, err)

	res, err := migrate.New(db, ps).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Records)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, 1, res.PhotosExtracted)
	assert.Equal(t, 1, res.Plans)
	assert.Equal(t, 2, res.CheckIns)
	assert.True(t, res.Settings)

	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r, err := db.GetRecord(ctx, jan1)
	require.NoError(t, err)
	assert.InDelta(t, 80.5, r.Weight, 1e-9)
	assert.Nil(t, r.Waist)
	require.NotNil(t, r.Sleep)
	assert.InDelta(t, 7.5, *r.Sleep, 1e-9)
	require.NotNil(t, r.FrontPhotoRef)
	assert.Equal(t, "photo:front:2024-01-01", *r.FrontPhotoRef)
	assert.Nil(t, r.SidePhotoRef)

	img, err := ps.Get(ctx, models.PhotoFront, jan1)
	require.NoError(t, err)
	assert.Equal(t, []byte("front-jpeg"), img)

	s, err := db.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", s.Name)
	assert.Equal(t, 70.0, s.TargetWeight)
	assert.Equal(t, models.ThemeLight, s.Theme)
	require.NotNil(t, s.Deadline)

	plans, err := db.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Saturday}, plans[0].ActiveDays)
	require.Len(t, plans[0].Exercises, 1)
	assert.Equal(t, 4, plans[0].Exercises[0].SetCount)
	assert.Equal(t, 90, plans[0].Exercises[0].RestSeconds)

	checkins, err := db.ListCheckIns(ctx)
	require.NoError(t, err)
	require.Len(t, checkins, 1, "duplicate (date, workout) check-ins collapse")
	assert.Equal(t, plans[0].ID, checkins[0].WorkoutID)
	require.NotNil(t, checkins[0].DurationMinutes)
	assert.Equal(t, 50, *checkins[0].DurationMinutes)

	_, err = db.GetValue(ctx, storage.KeyLegacyRecords)
	assert.True(t, errors.Is(err, errs.ErrNotFound), "legacy keys are removed")
}

type snapshot struct {
	Version  string
	Records  []*models.Record
	Plans    []*models.WorkoutPlan
	CheckIns []*models.CheckIn
	Settings models.Settings
	Photos   []string
}

func takeSnapshot(t *testing.T, db *storage.DB, ps *photos.Store) snapshot {
	t.Helper()
	ctx := context.Background()

	var snap snapshot
	var err error
	snap.Version, err = db.DataVersion(ctx)
	require.NoError(t, err)
	snap.Records, err = db.ListRecords(ctx)
	require.NoError(t, err)
	snap.Plans, err = db.ListPlans(ctx)
	require.NoError(t, err)
	snap.CheckIns, err = db.ListCheckIns(ctx)
	require.NoError(t, err)
	snap.Settings, err = db.GetSettings(ctx)
	require.NoError(t, err)
	snap.Photos, err = ps.Keys(ctx)
	require.NoError(t, err)
	return snap
}

func TestRun_Idempotent(t *testing.T) {
	db, ps := openStores(t)
	ctx := context.Background()
	m := migrate.New(db, ps)

	_, err := db.StashLegacy(ctx, legacyDump())
	require.NoError(t, err)
	_, err = m.Run(ctx)
	require.NoError(t, err)

	first := takeSnapshot(t, db, ps)
	require.Len(t, first.Records, 2)
	require.Len(t, first.Plans, 1)
	require.Len(t, first.Photos, 1)
	front, err := ps.Get(ctx, models.PhotoFront, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	res, err := m.Run(ctx)
	require.NoError(t, err)
	assert.True(t, res.AlreadyCurrent)
	assert.Equal(t, first, takeSnapshot(t, db, ps), "a second run changes nothing")

	// Re-staging the same dump migrates onto the same rows and keys.
	_, err = db.StashLegacy(ctx, legacyDump())
	require.NoError(t, err)
	res, err = m.Run(ctx)
	require.NoError(t, err)
	assert.False(t, res.AlreadyCurrent)
	assert.Equal(t, first, takeSnapshot(t, db, ps), "re-migrating the same dump is a no-op")

	again, err := ps.Get(ctx, models.PhotoFront, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, front, again)
}

func TestRun_SkipsNonNumericWeights(t *testing.T) {
	db, ps := openStores(t)
	ctx := context.Background()

	_, err := db.StashLegacy(ctx, &storage.LegacyDump{Records: `[
		{"data":"2024-01-01","peso":"NaN","timestamp":1704100000000},
		{"data":"2024-01-02","peso":"80","sono":"Inf","timestamp":1704200000000},
		{"data":"2024-01-03","peso":"79.8","timestamp":1704300000000}
	]`})
	require.NoError(t, err)

	res, err := migrate.New(db, ps).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Records)
	assert.Equal(t, 2, res.Skipped)

	v, err := db.DataVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, migrate.CurrentVersion, v)
}

type failingWriter struct{ err error }

func (f failingWriter) Put(context.Context, models.PhotoType, time.Time, []byte) (string, error) {
	return "", f.err
}

func TestRun_RetriesAfterFailure(t *testing.T) {
	db, ps := openStores(t)
	ctx := context.Background()

	_, err := db.StashLegacy(ctx, legacyDump())
	require.NoError(t, err)

	_, err = migrate.New(db, failingWriter{errors.New("boom")}).Run(ctx)
	require.Error(t, err)

	v, err := db.DataVersion(ctx)
	require.NoError(t, err)
	assert.Empty(t, v, "marker must not advance")
	n, err := db.CountRecords(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	res, err := migrate.New(db, ps).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Records)
}

func TestRun_ExtractsInlinePhotosFromStoredRecords(t *testing.T) {
	db, ps := openStores(t)
	ctx := context.Background()

	jan5 := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	r := models.NewRecord(jan5, 79).WithPhotoRef(models.PhotoSide, dataURL("side"))
	require.NoError(t, db.UpsertRecord(ctx, r))

	res, err := migrate.New(db, ps).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.PhotosExtracted)

	got, err := db.GetRecord(ctx, jan5)
	require.NoError(t, err)
	require.NotNil(t, got.SidePhotoRef)
	assert.Equal(t, "photo:side:2024-01-05", *got.SidePhotoRef)
}
