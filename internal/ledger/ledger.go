// Package ledger records gridcells runs and the cells they emitted in a
// SQLite database. The ledger is optional and never replaces output.txt.
package ledger

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/gridcells/internal/grid"
	"github.com/banshee-data/gridcells/internal/timeutil"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		run_id             TEXT PRIMARY KEY,
		started_at         INTEGER NOT NULL,
		finished_at        INTEGER,
		status             TEXT NOT NULL,
		error              TEXT,
		pins_read          INTEGER NOT NULL DEFAULT 0,
		segments_read      INTEGER NOT NULL DEFAULT 0,
		segments_expanded  INTEGER NOT NULL DEFAULT 0,
		segments_skipped   INTEGER NOT NULL DEFAULT 0,
		cells_emitted      INTEGER NOT NULL DEFAULT 0,
		length_mean        DOUBLE NOT NULL DEFAULT 0,
		length_stddev      DOUBLE NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS cells (
		run_id             TEXT NOT NULL,
		seq                INTEGER NOT NULL,
		axis1              TEXT NOT NULL,
		axis2              TEXT NOT NULL,
		segment_id         TEXT NOT NULL,
		PRIMARY KEY (run_id, seq),
		FOREIGN KEY (run_id) REFERENCES runs(run_id)
	);
`

// Store wraps the ledger database.
type Store struct {
	db    *sql.DB
	clock timeutil.Clock
}

// Open opens (creating if needed) the ledger at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create ledger schema: %w", err)
	}
	return &Store{db: db, clock: timeutil.RealClock{}}, nil
}

// SetClock replaces the clock used to stamp runs.
func (s *Store) SetClock(c timeutil.Clock) {
	s.clock = c
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run is an open ledger entry. It implements grid.Sink.
type Run struct {
	store *Store
	ID    string
	seq   int
}

// BeginRun inserts a new run in the running state.
func (s *Store) BeginRun() (*Run, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, started_at, status) VALUES (?, ?, ?)`,
		id, s.clock.Now().UnixNano(), StatusRunning,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return &Run{store: s, ID: id}, nil
}

// Emit records one cell of the run.
func (r *Run) Emit(c grid.Cell) error {
	_, err := r.store.db.Exec(
		`INSERT INTO cells (run_id, seq, axis1, axis2, segment_id) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.seq, c.Row, c.Col, c.ID,
	)
	if err != nil {
		return fmt.Errorf("insert cell: %w", err)
	}
	r.seq++
	return nil
}

// Finish stores the run counters and marks it completed, or failed with
// runErr's text when runErr is not nil. Cells already recorded are kept.
func (r *Run) Finish(summary grid.Summary, runErr error) error {
	status := StatusCompleted
	var errText sql.NullString
	if runErr != nil {
		status = StatusFailed
		errText = sql.NullString{String: runErr.Error(), Valid: true}
	}

	_, err := r.store.db.Exec(`
		UPDATE runs SET
			finished_at = ?, status = ?, error = ?,
			pins_read = ?, segments_read = ?, segments_expanded = ?,
			segments_skipped = ?, cells_emitted = ?,
			length_mean = ?, length_stddev = ?
		WHERE run_id = ?`,
		r.store.clock.Now().UnixNano(), status, errText,
		summary.PinsRead, summary.SegmentsRead, summary.SegmentsExpanded,
		summary.SegmentsSkipped, summary.CellsEmitted,
		summary.LengthMean, summary.LengthStdDev,
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", r.ID, err)
	}
	return nil
}

// RunRecord is a stored run.
type RunRecord struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt *time.Time
	Status     string
	Error      string
	Summary    grid.Summary
}

// Duration is the time between start and finish, or zero for a run that
// never finished.
func (r RunRecord) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Runs returns the most recent runs first. A limit of zero or less returns
// every run.
func (s *Store) Runs(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`
		SELECT run_id, started_at, finished_at, status, error,
		       pins_read, segments_read, segments_expanded, segments_skipped,
		       cells_emitted, length_mean, length_stddev
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			rec        RunRecord
			startedAt  int64
			finishedAt sql.NullInt64
			errText    sql.NullString
		)
		if err := rows.Scan(
			&rec.RunID, &startedAt, &finishedAt, &rec.Status, &errText,
			&rec.Summary.PinsRead, &rec.Summary.SegmentsRead, &rec.Summary.SegmentsExpanded,
			&rec.Summary.SegmentsSkipped, &rec.Summary.CellsEmitted,
			&rec.Summary.LengthMean, &rec.Summary.LengthStdDev,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.StartedAt = time.Unix(0, startedAt)
		if finishedAt.Valid {
			ft := time.Unix(0, finishedAt.Int64)
			rec.FinishedAt = &ft
		}
		if errText.Valid {
			rec.Error = errText.String
		}
		runs = append(runs, rec)
	}
	return runs, rows.Err()
}

// Cells returns the cells of a run in emission order.
func (s *Store) Cells(runID string) ([]grid.Cell, error) {
	rows, err := s.db.Query(
		`SELECT axis1, axis2, segment_id FROM cells WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("list cells: %w", err)
	}
	defer rows.Close()

	var cells []grid.Cell
	for rows.Next() {
		var c grid.Cell
		if err := rows.Scan(&c.Row, &c.Col, &c.ID); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}
		cells = append(cells, c)
	}
	return cells, rows.Err()
}
