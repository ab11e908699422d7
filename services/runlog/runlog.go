package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"loyalty-rankings/services/runlog/db"

	_ "modernc.org/sqlite"
)

// Run is one finished invocation of a batch job.
type Run struct {
	Job        string
	StartedAt  time.Time
	FinishedAt time.Time
	Created    int
	Updated    int
	Skipped    int
	Failed     int
	Note       string
}

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// OpenDB opens (and creates, if needed) the local run ledger.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		err := os.MkdirAll(filepath.Dir(path), 0777)
		if err != nil {
			return nil, fmt.Errorf("open run ledger: %w", err)
		}
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run ledger: %w", err)
	}

	// a single writer sidesteps sqlite's concurrent write locking
	database.SetMaxOpenConns(1)
	_, err = database.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open run ledger: %w", err)
	}
	_, err = database.Exec(db.Schema)
	if err != nil {
		return nil, fmt.Errorf("migrate run ledger: %w", err)
	}

	return database, nil
}

func (s Store) Record(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (job, started_at, finished_at, created, updated, skipped, failed, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Job,
		run.StartedAt.Unix(),
		run.FinishedAt.Unix(),
		run.Created,
		run.Updated,
		run.Skipped,
		run.Failed,
		run.Note,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns the latest runs, newest first.
func (s Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT job, started_at, finished_at, created, updated, skipped, failed, note
		 FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished int64
		err = rows.Scan(
			&run.Job,
			&started,
			&finished,
			&run.Created,
			&run.Updated,
			&run.Skipped,
			&run.Failed,
			&run.Note,
		)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		run.StartedAt = time.Unix(started, 0)
		run.FinishedAt = time.Unix(finished, 0)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
