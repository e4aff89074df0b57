// Package store persists week records in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/zavlong/etsy-task-tracker/internal/domain"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// SQLiteStore keeps one row per week
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates or opens the database at path and ensures the schema exists
func Open(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if path != MemoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one connection serialises writers and keeps :memory: a single database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	logger.Debug("store opened", "path", path)
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS week_data (
		week_key TEXT PRIMARY KEY,
		completions TEXT NOT NULL DEFAULT '{}',  -- JSON object of "<task>-<day>": bool
		listed INTEGER NOT NULL DEFAULT 0,
		sales INTEGER NOT NULL DEFAULT 0,
		revenue INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get returns the record for a week. found is false for a week never saved,
// in which case the default record is returned.
func (s *SQLiteStore) Get(ctx context.Context, weekKey string) (rec domain.WeekRecord, found bool, err error) {
	var raw string
	row := s.db.QueryRowContext(ctx,
		`SELECT completions, listed, sales, revenue FROM week_data WHERE week_key = ?`, weekKey)
	rec = domain.DefaultWeekRecord()
	err = row.Scan(&raw, &rec.Stats.Listed, &rec.Stats.Sales, &rec.Stats.Revenue)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultWeekRecord(), false, nil
	}
	if err != nil {
		return domain.WeekRecord{}, false, &domain.StoreError{Op: "get", WeekKey: weekKey, Err: err}
	}

	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &rec.Completions); err != nil {
			return domain.WeekRecord{}, false, &domain.StoreError{Op: "get", WeekKey: weekKey, Err: fmt.Errorf("decode completions: %w", err)}
		}
	}
	if rec.Completions == nil {
		rec.Completions = domain.CompletionRecord{}
	}
	return rec, true, nil
}

// Put replaces the record for a week
func (s *SQLiteStore) Put(ctx context.Context, weekKey string, rec domain.WeekRecord) error {
	completions := rec.Completions
	if completions == nil {
		completions = domain.CompletionRecord{}
	}
	raw, err := json.Marshal(completions)
	if err != nil {
		return &domain.StoreError{Op: "put", WeekKey: weekKey, Err: err}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO week_data (week_key, completions, listed, sales, revenue, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(week_key) DO UPDATE SET
			completions = excluded.completions,
			listed = excluded.listed,
			sales = excluded.sales,
			revenue = excluded.revenue,
			updated_at = excluded.updated_at`,
		weekKey, string(raw), rec.Stats.Listed, rec.Stats.Sales, rec.Stats.Revenue,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return &domain.StoreError{Op: "put", WeekKey: weekKey, Err: err}
	}

	s.logger.Debug("week stored", "week", weekKey, "completions", len(completions))
	return nil
}

// Summary totals the stats of every stored week
func (s *SQLiteStore) Summary(ctx context.Context) (domain.Summary, error) {
	var sum domain.Summary
	row := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(listed), 0), COALESCE(SUM(sales), 0), COALESCE(SUM(revenue), 0), COUNT(*)
		FROM week_data`)
	if err := row.Scan(&sum.TotalListed, &sum.TotalSales, &sum.TotalRevenue, &sum.WeeksTracked); err != nil {
		return domain.Summary{}, &domain.StoreError{Op: "summary", Err: err}
	}
	return sum, nil
}
