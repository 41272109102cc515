package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/openwx/weather-dashboard/internal/weather"
)

// PoolConfig bounds the connection pool backing the store. Requests queue
// for a free connection (bounded by their context deadline) rather than
// failing immediately.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open opens (creating if needed) the SQLite database at path and applies
// the pool bounds. The returned handle is owned by the caller and passed
// into NewSQLiteStore.
func Open(path string, pool PoolConfig) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL lets concurrent readers proceed while a single writer holds the
	// row-level write lock the record lifecycle relies on.
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}

	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	return db, nil
}

// SQLiteStore persists search records in the weather_records table. It
// implements weather.Store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an open database handle and ensures the schema
// exists.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	schema := `
		CREATE TABLE IF NOT EXISTS weather_records (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			location         TEXT NOT NULL,
			latitude         REAL NOT NULL,
			longitude        REAL NOT NULL,
			start_date       TEXT NOT NULL,
			end_date         TEXT NOT NULL,
			temperature_data TEXT NOT NULL,
			created_at       TIMESTAMP NOT NULL,
			updated_at       TIMESTAMP NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// List returns every record ordered by id, which keeps the listing stable
// for an unchanged table.
func (s *SQLiteStore) List(ctx context.Context) ([]weather.SearchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, location, latitude, longitude, start_date, end_date, temperature_data, created_at, updated_at
		FROM weather_records
		ORDER BY id
	`)
	if err != nil {
		return nil, storeErr("querying records", err)
	}
	defer rows.Close()

	var records []weather.SearchRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("reading records", err)
	}

	return records, nil
}

// Create inserts a new record with a store-assigned id and
// created_at == updated_at.
func (s *SQLiteStore) Create(ctx context.Context, location string, lat, lon float64, window weather.DateWindow, snapshot []weather.ForecastSample) (weather.SearchRecord, error) {
	data, err := marshalSnapshot(snapshot)
	if err != nil {
		return weather.SearchRecord{}, err
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO weather_records (location, latitude, longitude, start_date, end_date, temperature_data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, location, lat, lon, window.StartDate(), window.EndDate(), data, now, now)
	if err != nil {
		return weather.SearchRecord{}, storeErr("inserting record", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return weather.SearchRecord{}, storeErr("getting last insert id", err)
	}

	return weather.SearchRecord{
		ID:        id,
		Location:  location,
		Latitude:  lat,
		Longitude: lon,
		StartDate: window.StartDate(),
		EndDate:   window.EndDate(),
		Snapshot:  normalizeSnapshot(snapshot),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update overwrites all mutable fields of an existing record and refreshes
// updated_at; created_at is untouched. A missing id fails with
// weather.ErrRecordNotFound and writes nothing.
func (s *SQLiteStore) Update(ctx context.Context, id int64, location string, lat, lon float64, window weather.DateWindow, snapshot []weather.ForecastSample) (weather.SearchRecord, error) {
	data, err := marshalSnapshot(snapshot)
	if err != nil {
		return weather.SearchRecord{}, err
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		UPDATE weather_records
		SET location = ?, latitude = ?, longitude = ?, start_date = ?, end_date = ?, temperature_data = ?, updated_at = ?
		WHERE id = ?
	`, location, lat, lon, window.StartDate(), window.EndDate(), data, now, id)
	if err != nil {
		return weather.SearchRecord{}, storeErr("updating record", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return weather.SearchRecord{}, storeErr("checking update result", err)
	}
	if affected == 0 {
		return weather.SearchRecord{}, fmt.Errorf("%w: id %d", weather.ErrRecordNotFound, id)
	}

	// Re-read so the response carries the true created_at.
	return s.getByID(ctx, id)
}

// Delete removes a record permanently. Deletion is not idempotent: a second
// delete of the same id fails with weather.ErrRecordNotFound.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM weather_records WHERE id = ?", id)
	if err != nil {
		return storeErr("deleting record", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storeErr("checking delete result", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", weather.ErrRecordNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) getByID(ctx context.Context, id int64) (weather.SearchRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, location, latitude, longitude, start_date, end_date, temperature_data, created_at, updated_at
		FROM weather_records
		WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return weather.SearchRecord{}, fmt.Errorf("%w: id %d", weather.ErrRecordNotFound, id)
	}
	return rec, err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (weather.SearchRecord, error) {
	var rec weather.SearchRecord
	var data []byte

	err := sc.Scan(
		&rec.ID,
		&rec.Location,
		&rec.Latitude,
		&rec.Longitude,
		&rec.StartDate,
		&rec.EndDate,
		&data,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return weather.SearchRecord{}, err
		}
		return weather.SearchRecord{}, storeErr("scanning record", err)
	}

	if err := json.Unmarshal(data, &rec.Snapshot); err != nil {
		return weather.SearchRecord{}, storeErr("parsing temperature data", err)
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()

	return rec, nil
}

// marshalSnapshot serializes the filtered snapshot, normalizing a nil slice
// to an empty JSON array so stored data always round-trips to a sequence.
func marshalSnapshot(snapshot []weather.ForecastSample) ([]byte, error) {
	data, err := json.Marshal(normalizeSnapshot(snapshot))
	if err != nil {
		return nil, storeErr("serializing temperature data", err)
	}
	return data, nil
}

func normalizeSnapshot(snapshot []weather.ForecastSample) []weather.ForecastSample {
	if snapshot == nil {
		return []weather.ForecastSample{}
	}
	return snapshot
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", weather.ErrStoreUnavailable, op, err)
}
