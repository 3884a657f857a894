// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps a local SQLite record of conversions run from the
// ucshim CLI. The DLL never opens a journal.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/pkg/types"
)

// timeLayout is fixed width so started_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Entry is one recorded conversion attempt.
type Entry struct {
	ID           int64         `json:"id" yaml:"id"`
	Operation    string        `json:"operation" yaml:"operation"`
	StartedAt    time.Time     `json:"started_at" yaml:"started_at"`
	Duration     time.Duration `json:"duration" yaml:"duration"`
	InputPath    string        `json:"input" yaml:"input"`
	OutputPath   string        `json:"output" yaml:"output"`
	InputFormat  string        `json:"input_format,omitempty" yaml:"input_format,omitempty"`
	OutputFormat string        `json:"output_format,omitempty" yaml:"output_format,omitempty"`
	Status       types.Status  `json:"status" yaml:"status"`
	Message      string        `json:"message,omitempty" yaml:"message,omitempty"`
	ToolOutput   string        `json:"tool_output,omitempty" yaml:"tool_output,omitempty"`
}

// QueryOptions filters List. Zero values match everything.
type QueryOptions struct {
	// Limit caps the number of entries returned, newest first.
	Limit int
	// Status, when non-nil, keeps only entries with that status.
	Status *types.Status
	// Since keeps entries started at or after this time.
	Since time.Time
}

// Summary counts entries by status.
type Summary struct {
	Total    int           `json:"total" yaml:"total"`
	Success  int           `json:"success" yaml:"success"`
	Failure  int           `json:"failure" yaml:"failure"`
	Error    int           `json:"error" yaml:"error"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Store manages the journal database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the journal at path, creating parent directories
// and the schema as needed.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("journal path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Path is the database file the store was opened on.
func (s *Store) Path() string { return s.path }

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			operation TEXT NOT NULL,
			started_at TEXT NOT NULL,
			duration_ns INTEGER NOT NULL,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			input_format TEXT,
			output_format TEXT,
			status INTEGER NOT NULL,
			message TEXT,
			tool_output TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_started_at ON conversions(started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts e and returns its assigned id. A zero StartedAt is
// replaced with the current time.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.StartedAt.IsZero() {
		e.StartedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions
			(operation, started_at, duration_ns, input, output, input_format, output_format, status, message, tool_output)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Operation,
		e.StartedAt.UTC().Format(timeLayout),
		int64(e.Duration),
		e.InputPath,
		e.OutputPath,
		e.InputFormat,
		e.OutputFormat,
		int(e.Status),
		e.Message,
		e.ToolOutput,
	)
	if err != nil {
		return 0, fmt.Errorf("recording conversion: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading conversion id: %w", err)
	}
	return id, nil
}

// List returns entries matching opts, newest first.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	query := `SELECT id, operation, started_at, duration_ns, input, output,
			COALESCE(input_format, ''), COALESCE(output_format, ''), status,
			COALESCE(message, ''), COALESCE(tool_output, '')
		FROM conversions WHERE 1=1`
	var args []any
	if opts.Status != nil {
		query += ` AND status = ?`
		args = append(args, int(*opts.Status))
	}
	if !opts.Since.IsZero() {
		query += ` AND started_at >= ?`
		args = append(args, opts.Since.UTC().Format(timeLayout))
	}
	query += ` ORDER BY started_at DESC, id DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			started  string
			duration int64
			status   int
		)
		if err := rows.Scan(&e.ID, &e.Operation, &started, &duration, &e.InputPath, &e.OutputPath,
			&e.InputFormat, &e.OutputFormat, &status, &e.Message, &e.ToolOutput); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		e.StartedAt, err = time.Parse(timeLayout, started)
		if err != nil {
			return nil, fmt.Errorf("parsing started_at of entry %d: %w", e.ID, err)
		}
		e.Duration = time.Duration(duration)
		e.Status = types.Status(status)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Summarize counts every entry in the journal by status.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*), COALESCE(SUM(duration_ns), 0) FROM conversions GROUP BY status`)
	if err != nil {
		return Summary{}, fmt.Errorf("summarizing conversions: %w", err)
	}
	defer rows.Close()

	var sum Summary
	for rows.Next() {
		var status, count int
		var total int64
		if err := rows.Scan(&status, &count, &total); err != nil {
			return Summary{}, fmt.Errorf("scanning summary: %w", err)
		}
		sum.Total += count
		sum.Duration += time.Duration(total)
		switch types.Status(status) {
		case types.StatusSuccess:
			sum.Success += count
		case types.StatusFailure:
			sum.Failure += count
		default:
			sum.Error += count
		}
	}
	return sum, rows.Err()
}
