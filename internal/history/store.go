package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"wavextract/internal/report"
)

// DirName is the dot-directory created inside the output directory for
// history and locking artifacts.
const DirName = ".wavextract"

// Run describes one recorded extraction run.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	InputPath  string
	OutputDir  string
	Codec      string
	Container  string
	Summary    report.Summary
}

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database inside outputDir and
// applies migrations.
func Open(outputDir string) (*Store, error) {
	dir := filepath.Join(outputDir, DirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	dbPath := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun records a completed run and its ordered outcomes in one
// transaction.
func (s *Store) SaveRun(ctx context.Context, run Run, outcomes []report.Outcome) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	skipped := run.Summary.SkippedExists + run.Summary.SkippedNoAudio + run.Summary.SkippedNotMedia
	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, started_at, finished_at, input_path, output_dir,
            codec, container, ok_count, failed_count, skipped_count
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.InputPath,
		run.OutputDir,
		run.Codec,
		run.Container,
		run.Summary.OK,
		run.Summary.Failed,
		skipped,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for seq, outcome := range outcomes {
		var index any
		if outcome.StreamIndex != report.NoStream {
			index = outcome.StreamIndex
		}
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO run_outcomes (
                run_id, seq, file_name, full_path, stream_index, out_path, status, error
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			seq,
			outcome.FileName,
			outcome.FullPath,
			index,
			outcome.OutPath,
			string(outcome.Status),
			outcome.Error,
		)
		if err != nil {
			return fmt.Errorf("insert outcome %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// Runs returns recorded runs, most recent first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, started_at, finished_at, input_path, output_dir,
                codec, container, ok_count, failed_count
         FROM runs ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(
			&run.ID, &started, &finished, &run.InputPath, &run.OutputDir,
			&run.Codec, &run.Container, &run.Summary.OK, &run.Summary.Failed,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Outcomes returns a run's recorded outcomes in sequence order.
func (s *Store) Outcomes(ctx context.Context, runID string) ([]report.Outcome, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT file_name, full_path, stream_index, out_path, status, error
         FROM run_outcomes WHERE run_id = ? ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []report.Outcome
	for rows.Next() {
		var outcome report.Outcome
		var index sql.NullInt64
		var status string
		if err := rows.Scan(
			&outcome.FileName, &outcome.FullPath, &index,
			&outcome.OutPath, &status, &outcome.Error,
		); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		outcome.StreamIndex = report.NoStream
		if index.Valid {
			outcome.StreamIndex = int(index.Int64)
		}
		outcome.Status = report.Status(status)
		outcomes = append(outcomes, outcome)
	}
	return outcomes, rows.Err()
}
