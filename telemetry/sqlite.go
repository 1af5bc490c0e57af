package telemetry

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// batchSize is the number of pending rows SQLiteRecorder buffers before
// flushing a transaction, mirroring tracing/sqlite.go's SQLiteTraceWriter.
const batchSize = 1000

// SQLiteRecorder persists RunStats to a SQLite database, batching writes
// into transactions exactly as the teacher's SQLiteTraceWriter does for
// trace tasks, registered to flush exactly once at process exit via
// tebeka/atexit rather than relying on every caller remembering to Close.
type SQLiteRecorder struct {
	db *sql.DB

	insertStmt *sql.Stmt

	pending []recordedRun
}

type recordedRun struct {
	id    string
	stats RunStats
}

// NewSQLiteRecorder opens (creating if absent) the SQLite database at path
// and prepares its schema.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.init(); err != nil {
		return nil, err
	}

	atexit.Register(func() { r.Flush() })

	return r, nil
}

func (r *SQLiteRecorder) init() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			name TEXT,
			quota INTEGER,
			max_simul INTEGER,
			total_refs INTEGER,
			total_faults INTEGER
		)
	`)
	if err != nil {
		return fmt.Errorf("telemetry: create schema: %w", err)
	}

	stmt, err := r.db.Prepare(`
		INSERT INTO runs (id, name, quota, max_simul, total_refs, total_faults)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("telemetry: prepare insert: %w", err)
	}
	r.insertStmt = stmt

	return nil
}

// Record queues stats for the next flush, flushing immediately if the
// pending batch has reached batchSize.
func (r *SQLiteRecorder) Record(stats RunStats) {
	r.pending = append(r.pending, recordedRun{id: xid.New().String(), stats: stats})
	if len(r.pending) >= batchSize {
		r.Flush()
	}
}

// Flush writes every pending run to the database in one transaction. It
// panics on a write failure, matching the teacher's SQLiteTraceWriter,
// since a telemetry write failure indicates a corrupt database file that
// no caller of Record can meaningfully recover from.
func (r *SQLiteRecorder) Flush() {
	if len(r.pending) == 0 {
		return
	}

	tx, err := r.db.Begin()
	if err != nil {
		panic(fmt.Errorf("telemetry: begin transaction: %w", err))
	}

	stmt := tx.Stmt(r.insertStmt)
	for _, run := range r.pending {
		_, err := stmt.Exec(run.id, run.stats.Name, run.stats.Quota,
			run.stats.MaxSimul, run.stats.TotalRefs, run.stats.TotalFaults)
		if err != nil {
			panic(fmt.Errorf("telemetry: insert run: %w", err))
		}
	}

	if err := tx.Commit(); err != nil {
		panic(fmt.Errorf("telemetry: commit transaction: %w", err))
	}

	r.pending = r.pending[:0]
}

// Close flushes any pending rows and closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	r.Flush()
	return r.db.Close()
}
