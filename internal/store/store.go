// Package store persists report run diagnostics. Reports themselves are
// never stored; only what was generated, when, and which reports failed.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Run is one report generation request.
type Run struct {
	ID        string                 `json:"id"`
	RequestID string                 `json:"request_id,omitempty"`
	Source    string                 `json:"source"`
	Mode      string                 `json:"mode"`
	Records   int                    `json:"records"`
	Reports   int                    `json:"reports"`
	Duration  time.Duration          `json:"duration"`
	CreatedAt time.Time              `json:"created_at"`
	Failures  []models.ReportFailure `json:"failures,omitempty"`
}

// Store writes and lists runs through database/sql.
type Store struct {
	db     *sql.DB
	driver string
	sb     sq.StatementBuilderType
}

// Open connects to the diagnostics database and creates its tables.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// one writer; also keeps ":memory:" on a single database
		db.SetMaxOpenConns(1)
	}

	s := New(db, driver)
	if err := s.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database. Call Init before use.
func New(db *sql.DB, driver string) *Store {
	var format sq.PlaceholderFormat = sq.Question
	if driver == DriverPostgres {
		format = sq.Dollar
	}
	return &Store{
		db:     db,
		driver: driver,
		sb:     sq.StatementBuilder.PlaceholderFormat(format),
	}
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Init creates the tables if they do not exist.
func (s *Store) Init(ctx context.Context) error {
	ts := "DATETIME"
	if s.driver == DriverPostgres {
		ts = "TIMESTAMPTZ"
	}

	runs := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS report_runs (
		id TEXT PRIMARY KEY,
		request_id TEXT,
		source TEXT NOT NULL,
		mode TEXT NOT NULL,
		records INTEGER NOT NULL,
		reports INTEGER NOT NULL,
		duration_ms BIGINT NOT NULL,
		created_at %s NOT NULL
	);
	`, ts)
	failures := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS report_failures (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL REFERENCES report_runs(id) ON DELETE CASCADE,
		report TEXT NOT NULL,
		error_message TEXT NOT NULL,
		created_at %s NOT NULL
	);
	`, ts)

	for _, stmt := range []string{runs, failures} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

// RecordRun inserts run and its failures. A missing ID or CreatedAt is filled in
// and the stored run is returned.
func (s *Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return run, err
	}
	defer tx.Rollback()

	query, args, err := s.sb.Insert("report_runs").
		Columns("id", "request_id", "source", "mode", "records", "reports", "duration_ms", "created_at").
		Values(run.ID, run.RequestID, run.Source, run.Mode, run.Records, run.Reports, run.Duration.Milliseconds(), run.CreatedAt).
		ToSql()
	if err != nil {
		return run, err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return run, fmt.Errorf("insert run: %w", err)
	}

	if len(run.Failures) > 0 {
		ins := s.sb.Insert("report_failures").Columns("id", "run_id", "report", "error_message", "created_at")
		for _, f := range run.Failures {
			ins = ins.Values(uuid.NewString(), run.ID, f.Report, f.Error, run.CreatedAt)
		}
		query, args, err := ins.ToSql()
		if err != nil {
			return run, err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return run, fmt.Errorf("insert failures: %w", err)
		}
	}

	return run, tx.Commit()
}

// ListRuns returns the most recent runs, newest first, with their failures.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	sel := s.sb.Select("id", "request_id", "source", "mode", "records", "reports", "duration_ms", "created_at").
		From("report_runs").
		OrderBy("created_at DESC", "id")
	if limit > 0 {
		sel = sel.Limit(uint64(limit))
	}
	query, args, err := sel.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	index := make(map[string]int)
	for rows.Next() {
		var (
			run       Run
			requestID sql.NullString
			ms        int64
		)
		if err := rows.Scan(&run.ID, &requestID, &run.Source, &run.Mode, &run.Records, &run.Reports, &ms, &run.CreatedAt); err != nil {
			return nil, err
		}
		run.RequestID = requestID.String
		run.Duration = time.Duration(ms) * time.Millisecond
		index[run.ID] = len(runs)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return runs, nil
	}

	ids := make([]string, 0, len(runs))
	for _, r := range runs {
		ids = append(ids, r.ID)
	}
	return runs, s.attachFailures(ctx, runs, index, ids)
}

func (s *Store) attachFailures(ctx context.Context, runs []Run, index map[string]int, ids []string) error {
	query, args, err := s.sb.Select("run_id", "report", "error_message").
		From("report_failures").
		Where(sq.Eq{"run_id": ids}).
		OrderBy("created_at", "report").
		ToSql()
	if err != nil {
		return err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var runID string
		var f models.ReportFailure
		if err := rows.Scan(&runID, &f.Report, &f.Error); err != nil {
			return err
		}
		if i, ok := index[runID]; ok {
			runs[i].Failures = append(runs[i].Failures, f)
		}
	}
	return rows.Err()
}
