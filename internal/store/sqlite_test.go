package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwx/weather-dashboard/internal/weather"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "weather.db"), PoolConfig{
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st, err := NewSQLiteStore(db)
	require.NoError(t, err)
	return st
}

func testWindow(t *testing.T, start, end string) weather.DateWindow {
	t.Helper()
	w, err := weather.ValidateRange(start, end)
	require.NoError(t, err)
	return w
}

func testSnapshot() []weather.ForecastSample {
	return []weather.ForecastSample{
		{
			Dt:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC).Unix(),
			Main: weather.SampleMain{Temp: 21.5, FeelsLike: 20.9, Humidity: 55},
			Weather: []weather.SampleCondition{
				{Main: "Clear", Description: "clear sky"},
			},
		},
		{
			Dt:   time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC).Unix(),
			Main: weather.SampleMain{Temp: 19, FeelsLike: 18.2, Humidity: 70},
			Weather: []weather.SampleCondition{
				{Main: "Rain", Description: "light rain"},
			},
		},
	}
}

func TestCreateAndList(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	rec, err := st.Create(ctx, "Paris", 48.85, 2.35, testWindow(t, "2024-06-01", "2024-06-03"), testSnapshot())
	require.NoError(t, err)

	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)

	records, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "Paris", got.Location)
	assert.Equal(t, 48.85, got.Latitude)
	assert.Equal(t, 2.35, got.Longitude)
	assert.Equal(t, "2024-06-01", got.StartDate)
	assert.Equal(t, "2024-06-03", got.EndDate)
	assert.Equal(t, testSnapshot(), got.Snapshot, "snapshot must round-trip losslessly")
}

func TestCreateDuplicateLocations(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first, err := st.Create(ctx, "Paris", 48.85, 2.35, testWindow(t, "2024-06-01", "2024-06-02"), nil)
	require.NoError(t, err)
	second, err := st.Create(ctx, "Paris", 48.85, 2.35, testWindow(t, "2024-06-01", "2024-06-02"), nil)
	require.NoError(t, err, "locations are not unique")
	assert.NotEqual(t, first.ID, second.ID)
}

func TestUpdateOverwritesAndKeepsCreatedAt(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	rec, err := st.Create(ctx, "Paris", 48.85, 2.35, testWindow(t, "2024-06-01", "2024-06-03"), testSnapshot())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	narrowed := testSnapshot()[1:]
	updated, err := st.Update(ctx, rec.ID, "Paris", 48.86, 2.36, testWindow(t, "2024-06-02", "2024-06-03"), narrowed)
	require.NoError(t, err)

	assert.Equal(t, rec.ID, updated.ID)
	assert.Equal(t, "2024-06-02", updated.StartDate)
	assert.Equal(t, 48.86, updated.Latitude)
	assert.Equal(t, narrowed, updated.Snapshot)
	assert.True(t, updated.CreatedAt.Equal(rec.CreatedAt), "created_at must not change on update")
	assert.True(t, updated.UpdatedAt.After(rec.UpdatedAt))

	records, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, updated.ID, records[0].ID)
}

func TestUpdateMissingRecord(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.Update(ctx, 99, "Paris", 48.85, 2.35, testWindow(t, "2024-06-01", "2024-06-02"), nil)
	assert.ErrorIs(t, err, weather.ErrRecordNotFound)

	records, err := st.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records, "failed update must not create a row")
}

func TestDeleteIsPermanentAndNotIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	rec, err := st.Create(ctx, "Paris", 48.85, 2.35, testWindow(t, "2024-06-01", "2024-06-02"), nil)
	require.NoError(t, err)

	require.NoError(t, st.Delete(ctx, rec.ID))

	records, err := st.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	err = st.Delete(ctx, rec.ID)
	assert.ErrorIs(t, err, weather.ErrRecordNotFound)
}

func TestIdsAreNotReused(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first, err := st.Create(ctx, "Paris", 48.85, 2.35, testWindow(t, "2024-06-01", "2024-06-02"), nil)
	require.NoError(t, err)
	require.NoError(t, st.Delete(ctx, first.ID))

	second, err := st.Create(ctx, "Lyon", 45.76, 4.84, testWindow(t, "2024-06-01", "2024-06-02"), nil)
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestEmptySnapshotRoundTripsToEmptySequence(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	rec, err := st.Create(ctx, "Paris", 48.85, 2.35, testWindow(t, "2024-06-01", "2024-06-01"), nil)
	require.NoError(t, err)
	assert.NotNil(t, rec.Snapshot)
	assert.Empty(t, rec.Snapshot)

	records, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotNil(t, records[0].Snapshot)
	assert.Empty(t, records[0].Snapshot)
}

func TestListOrderIsStable(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, loc := range []string{"Paris", "Lyon", "Nice"} {
		_, err := st.Create(ctx, loc, 0, 0, testWindow(t, "2024-06-01", "2024-06-02"), nil)
		require.NoError(t, err)
	}

	first, err := st.List(ctx)
	require.NoError(t, err)
	second, err := st.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Paris", "Lyon", "Nice"}, []string{first[0].Location, first[1].Location, first[2].Location})
}
