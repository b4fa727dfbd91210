// ABOUTME: Tests for the session: saves, validation, dashboard, clear and lifecycle.
// ABOUTME: Each test opens a session on a temp dir with a fixed clock.
package app

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/harperreed/fittrack/internal/errs"
	"github.com/harperreed/fittrack/internal/metrics"
	"github.com/harperreed/fittrack/internal/migrate"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 14, 9, 30, 0, 0, time.UTC)

func day(s string) time.Time {
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func openTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := Open(context.Background(), Options{
		DataDir:        t.TempDir(),
		InMemoryPhotos: true,
		PhotoCacheMB:   1,
		Now:            func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenMigratesOnce(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(ctx, Options{DataDir: dir})
	require.NoError(t, err)
	assert.False(t, s.Migration().AlreadyCurrent)
	_, err = s.SaveRecord(ctx, models.NewRecord(day("2024-01-10"), 80).WithSleep(7),
		map[models.PhotoType][]byte{models.PhotoSide: []byte("img")})
	require.NoError(t, err)
	before, err := s.Records(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, Options{DataDir: dir})
	require.NoError(t, err)
	defer s.Close()
	assert.True(t, s.Migration().AlreadyCurrent)

	after, err := s.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after, "reopening leaves records untouched")

	st, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, migrate.CurrentVersion, st.DataVersion)
	assert.Equal(t, int64(1), st.SchemaVersion)
	assert.Equal(t, dir, st.DataDir)
}

func TestSaveRecordUpsertsByDate(t *testing.T) {
	s := openTestSession(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		r := models.NewRecord(day("2024-01-10"), 80+float64(i)*0.1).WithNote(gofakeit.Sentence(5))
		_, err := s.SaveRecord(ctx, r, nil)
		require.NoError(t, err)
	}
	_, err := s.SaveRecord(ctx, models.NewRecord(day("2024-01-11"), 80), nil)
	require.NoError(t, err)

	records, err := s.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.InDelta(t, 80.2, records[0].Weight, 1e-9)
}

func TestSaveRecordWeightJump(t *testing.T) {
	s := openTestSession(t)
	ctx := context.Background()

	_, err := s.SaveRecord(ctx, models.NewRecord(day("2024-01-10"), 80), nil)
	require.NoError(t, err)

	_, err = s.SaveRecord(ctx, models.NewRecord(day("2024-01-11"), 95), nil)
	assert.True(t, errs.IsValidation(err), "80 -> 95 is a jump over 10kg")

	_, err = s.SaveRecord(ctx, models.NewRecord(day("2024-01-11"), 85), nil)
	assert.NoError(t, err)

	// A record before the first one is checked against the later neighbour.
	_, err = s.SaveRecord(ctx, models.NewRecord(day("2024-01-01"), 60), nil)
	assert.True(t, errs.IsValidation(err))
}

func TestSaveRecordRejectsOutOfRange(t *testing.T) {
	s := openTestSession(t)
	ctx := context.Background()

	_, err := s.SaveRecord(ctx, models.NewRecord(day("2024-01-10"), 80).WithSleep(25).WithWater(21),
		map[models.PhotoType][]byte{models.PhotoFront: []byte("img")})
	require.Error(t, err)

	var ve *errs.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, err.Error(), "sleep")
	assert.Contains(t, err.Error(), "water")

	st, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.Records)
	assert.Zero(t, st.Photos, "rejected saves write no photos")
}

func TestSaveRecordRejectsNaN(t *testing.T) {
	s := openTestSession(t)
	ctx := context.Background()

	_, err := s.SaveRecord(ctx, models.NewRecord(day("2024-01-10"), math.NaN()), nil)
	assert.True(t, errs.IsValidation(err), "NaN weight is a validation error, got %v", err)

	_, err = s.SaveRecord(ctx, models.NewRecord(day("2024-01-10"), 80).WithSleep(math.NaN()), nil)
	assert.True(t, errs.IsValidation(err))

	_, err = s.SaveRecord(ctx, models.NewRecord(day("2024-01-10"), 80).WithWater(math.Inf(1)), nil)
	assert.True(t, errs.IsValidation(err))

	records, err := s.Records(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSaveRecordKeepsPhotos(t *testing.T) {
	s := openTestSession(t)
	ctx := context.Background()
	date := day("2024-01-10")

	saved, err := s.SaveRecord(ctx, models.NewRecord(date, 80),
		map[models.PhotoType][]byte{models.PhotoFront: []byte("front-v1")})
	require.NoError(t, err)
	require.NotNil(t, saved.FrontPhotoRef)

	saved, err = s.SaveRecord(ctx, models.NewRecord(date, 79.8), nil)
	require.NoError(t, err)
	require.NotNil(t, saved.FrontPhotoRef, "photo ref carries forward")
	assert.Nil(t, saved.SidePhotoRef)

	img, err := s.Photo(ctx, models.PhotoFront, date)
	require.NoError(t, err)
	assert.Equal(t, []byte("front-v1"), img)

	_, err = s.Photo(ctx, models.PhotoSide, date)
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	_, err = s.AttachPhoto(ctx, models.PhotoSide, date, []byte("side"))
	require.NoError(t, err)
	img, err = s.Photo(ctx, models.PhotoSide, date)
	require.NoError(t, err)
	assert.Equal(t, []byte("side"), img)

	_, err = s.AttachPhoto(ctx, models.PhotoSide, day("2024-01-01"), []byte("x"))
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestDashboardEmpty(t *testing.T) {
	s := openTestSession(t)

	d, err := s.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, day("2024-01-14"), d.Today)
	assert.Equal(t, 0, d.Streak)
	assert.False(t, d.LoggedToday)
	assert.Nil(t, d.Projection)
	assert.Equal(t, []metrics.Insight{metrics.KeepLogging}, d.Insights)
	assert.Empty(t, d.Chart.Points)
	assert.Equal(t, 88.0, d.Summary.CurrentWeight)
	assert.InDelta(t, 23.0/12, d.WeeklyGoal, 1e-9)
	assert.Nil(t, d.TodayPlan)
}

func TestDashboardWithHistory(t *testing.T) {
	s := openTestSession(t)
	ctx := context.Background()

	start := day("2024-01-01")
	for i := 0; i < 14; i++ {
		w := 90.0
		if i >= 7 {
			w = 88
		}
		_, err := s.SaveRecord(ctx, models.NewRecord(start.AddDate(0, 0, i), w), nil)
		require.NoError(t, err)
	}

	plan := models.NewWorkoutPlan("Sunday run", time.Sunday).WithExercise(models.NewExercise("Run"))
	require.NoError(t, s.SavePlan(ctx, plan))

	d, err := s.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 14, d.Streak)
	assert.True(t, d.LoggedToday)
	require.NotNil(t, d.Projection)
	assert.True(t, d.Projection.OnTrack)
	assert.Len(t, d.Chart.Points, DefaultChartPoints)
	require.NotNil(t, d.TodayPlan)
	assert.False(t, d.TodayDone)

	require.NoError(t, s.CheckIn(ctx, models.NewCheckIn(d.Today, plan.ID).WithDuration(30)))
	d, err = s.Dashboard(ctx)
	require.NoError(t, err)
	assert.True(t, d.TodayDone)
	assert.Equal(t, 1, d.Workouts.ThisWeek)
	assert.Equal(t, 100, d.Workouts.Adherence)
}

func TestCheckInRequiresPlanAndDedups(t *testing.T) {
	s := openTestSession(t)
	ctx := context.Background()

	stray := models.NewWorkoutPlan("Unsaved", time.Monday)
	err := s.CheckIn(ctx, models.NewCheckIn(day("2024-01-08"), stray.ID))
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	plan := models.NewWorkoutPlan(gofakeit.Word(), time.Monday).WithExercise(models.NewExercise("Squat"))
	require.NoError(t, s.SavePlan(ctx, plan))
	require.NoError(t, s.CheckIn(ctx, models.NewCheckIn(day("2024-01-08"), plan.ID).WithDuration(40)))
	require.NoError(t, s.CheckIn(ctx, models.NewCheckIn(day("2024-01-08"), plan.ID).WithDuration(55)))

	checkins, err := s.CheckIns(ctx)
	require.NoError(t, err)
	require.Len(t, checkins, 1)
	assert.Equal(t, 55, *checkins[0].DurationMinutes)

	other := models.NewWorkoutPlan("Other", time.Monday).WithExercise(models.NewExercise("Row"))
	require.NoError(t, s.SavePlan(ctx, other))
	require.NoError(t, s.CheckIn(ctx, models.NewCheckIn(day("2024-01-08"), other.ID)))

	mine, err := s.PlanCheckIns(ctx, plan.ID.String()[:8])
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, plan.ID, mine[0].WorkoutID)

	_, err = s.PlanCheckIns(ctx, "deadbeef")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestStatusReportsPhotoCache(t *testing.T) {
	s := openTestSession(t)
	ctx := context.Background()

	_, err := s.SaveRecord(ctx, models.NewRecord(day("2024-01-10"), 80),
		map[models.PhotoType][]byte{models.PhotoFront: []byte("img")})
	require.NoError(t, err)
	for range 2 {
		_, err = s.Photo(ctx, models.PhotoFront, day("2024-01-10"))
		require.NoError(t, err)
	}

	st, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Photos)
	assert.Equal(t, int64(1), st.CacheHits)
	assert.Equal(t, int64(1), st.CacheMisses)
}

func TestSavePlanValidates(t *testing.T) {
	s := openTestSession(t)
	err := s.SavePlan(context.Background(), models.NewWorkoutPlan("Empty"))
	assert.True(t, errs.IsValidation(err))
}

func TestUpdateSettings(t *testing.T) {
	s := openTestSession(t)
	ctx := context.Background()

	name := gofakeit.FirstName()
	target := 70.0
	got, err := s.UpdateSettings(ctx, models.SettingsUpdate{Name: &name, TargetWeight: &target})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, 70.0, got.TargetWeight)

	bad := "25:00"
	_, err = s.UpdateSettings(ctx, models.SettingsUpdate{ReminderTime: &bad})
	assert.True(t, errs.IsValidation(err))

	current, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "20:00", current.ReminderTime, "rejected update leaves settings unchanged")

	same, err := s.UpdateSettings(ctx, models.SettingsUpdate{})
	require.NoError(t, err)
	assert.Equal(t, current, same)
}

func TestExportStripsPhotos(t *testing.T) {
	s := openTestSession(t)
	ctx := context.Background()

	_, err := s.SaveRecord(ctx, models.NewRecord(day("2024-01-10"), 80),
		map[models.PhotoType][]byte{models.PhotoFront: []byte("img")})
	require.NoError(t, err)

	data, err := s.Export(ctx)
	require.NoError(t, err)
	assert.True(t, data.ExportedAt.Equal(fixedNow))
	require.Len(t, data.Records, 1)
	assert.Nil(t, data.Records[0].FrontPhoto)

	out, err := data.JSON()
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(out), "photo:front"))
}

func TestClearAllEmptiesEveryStore(t *testing.T) {
	s := openTestSession(t)
	ctx := context.Background()

	_, err := s.SaveRecord(ctx, models.NewRecord(day("2024-01-10"), 80),
		map[models.PhotoType][]byte{models.PhotoSide: []byte("img")})
	require.NoError(t, err)
	plan := models.NewWorkoutPlan("A", time.Monday).WithExercise(models.NewExercise("Row"))
	require.NoError(t, s.SavePlan(ctx, plan))
	name := "Someone"
	_, err = s.UpdateSettings(ctx, models.SettingsUpdate{Name: &name})
	require.NoError(t, err)

	require.NoError(t, s.ClearAll(ctx))

	st, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.Records)
	assert.Zero(t, st.Photos)
	assert.Zero(t, st.Plans)
	assert.Equal(t, migrate.CurrentVersion, st.DataVersion)

	settings, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)
}

func TestImportLegacy(t *testing.T) {
	s := openTestSession(t)
	ctx := context.Background()

	summary, res, err := s.ImportLegacy(ctx, &storage.LegacyDump{
		Records: `[{"data":"10/01/2024","peso":81},{"data":"11/01/2024","peso":"80,6"}]`,
	})
	require.NoError(t, err)
	assert.True(t, summary.Records)
	assert.Equal(t, 2, res.Records)

	records, err := s.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestClosedSession(t *testing.T) {
	s := openTestSession(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err := s.Records(context.Background())
	assert.True(t, errs.IsNotInitialized(err))

	var nilSession *Session
	_, err = nilSession.Dashboard(context.Background())
	assert.True(t, errs.IsNotInitialized(err))
}
