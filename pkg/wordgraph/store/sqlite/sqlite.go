// Package sqlite stores runs in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/wordgraph/pkg/wordgraph/internalerr"
	"github.com/cognicore/wordgraph/pkg/wordgraph/store"
)

// sqliteStore implements store.Store on SQLite.
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database at path with WAL mode enabled and creates the
// schema when missing.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", path, err, internalerr.ErrStoreUnavailable)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable wal: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %v: %w", err, internalerr.ErrStoreUnavailable)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	scheme TEXT NOT NULL,
	max_results INTEGER NOT NULL,
	min_length INTEGER NOT NULL,
	nodes INTEGER NOT NULL,
	edges INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_sentences (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	tokens TEXT NOT NULL,
	PRIMARY KEY(run_id, position),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_candidates (
	run_id TEXT NOT NULL,
	ordinal INTEGER NOT NULL,
	cost REAL NOT NULL,
	path TEXT NOT NULL,
	PRIMARY KEY(run_id, ordinal),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun writes the run and its children in one transaction, replacing any
// run with the same ID.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) (string, error) {
	r = store.Prepare(r)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if err := deleteChildren(ctx, tx, r.ID); err != nil {
		return "", err
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO runs (id, created_at, scheme, max_results, min_length, nodes, edges)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	created_at=excluded.created_at,
	scheme=excluded.scheme,
	max_results=excluded.max_results,
	min_length=excluded.min_length,
	nodes=excluded.nodes,
	edges=excluded.edges;
`, r.ID, r.CreatedAt.UTC().Format(time.RFC3339Nano), r.Scheme, r.MaxResults, r.MinLength, r.Nodes, r.Edges); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, sent := range r.Sentences {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_sentences (run_id, position, tokens) VALUES (?, ?, ?)`,
			r.ID, i, sent); err != nil {
			return "", fmt.Errorf("insert sentence %d: %w", i, err)
		}
	}

	for i, c := range r.Candidates {
		pathJSON, err := json.Marshal(c.Path)
		if err != nil {
			return "", err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_candidates (run_id, ordinal, cost, path) VALUES (?, ?, ?, ?)`,
			r.ID, i, c.Cost, string(pathJSON)); err != nil {
			return "", fmt.Errorf("insert candidate %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return r.ID, nil
}

// GetRun loads a run with its sentences and candidates.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, created_at, scheme, max_results, min_length, nodes, edges
FROM runs WHERE id = ?;
`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}
	if err := s.loadChildren(ctx, &r); err != nil {
		return store.Run{}, err
	}
	return r, nil
}

// ListRuns returns runs newest first.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, created_at, scheme, max_results, min_length, nodes, edges
FROM runs
ORDER BY id DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}

	var runs []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range runs {
		if err := s.loadChildren(ctx, &runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// DeleteRun removes a run and its children.
func (s *sqliteStore) DeleteRun(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteChildren(ctx, tx, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return tx.Commit()
}

// deleteChildren clears child rows explicitly; the foreign_keys pragma only
// holds for the connection that ran it.
func deleteChildren(ctx context.Context, tx *sql.Tx, id string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM run_sentences WHERE run_id = ?`, id); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `DELETE FROM run_candidates WHERE run_id = ?`, id)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var r store.Run
	var created string
	if err := sc.Scan(&r.ID, &created, &r.Scheme, &r.MaxResults, &r.MinLength, &r.Nodes, &r.Edges); err != nil {
		return store.Run{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return store.Run{}, fmt.Errorf("run %s created_at: %w", r.ID, err)
	}
	r.CreatedAt = t
	return r, nil
}

func (s *sqliteStore) loadChildren(ctx context.Context, r *store.Run) error {
	sentRows, err := s.db.QueryContext(ctx,
		`SELECT tokens FROM run_sentences WHERE run_id = ? ORDER BY position`, r.ID)
	if err != nil {
		return err
	}
	defer sentRows.Close()
	for sentRows.Next() {
		var sent string
		if err := sentRows.Scan(&sent); err != nil {
			return err
		}
		r.Sentences = append(r.Sentences, sent)
	}
	if err := sentRows.Err(); err != nil {
		return err
	}

	candRows, err := s.db.QueryContext(ctx,
		`SELECT cost, path FROM run_candidates WHERE run_id = ? ORDER BY ordinal`, r.ID)
	if err != nil {
		return err
	}
	defer candRows.Close()
	for candRows.Next() {
		var c store.Candidate
		var pathJSON string
		if err := candRows.Scan(&c.Cost, &pathJSON); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(pathJSON), &c.Path); err != nil {
			return fmt.Errorf("run %s candidate path: %w", r.ID, err)
		}
		r.Candidates = append(r.Candidates, c)
	}
	return candRows.Err()
}
