package postgres

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	upsertVisit = `INSERT INTO visits (path, count) VALUES ($1, 1)
ON CONFLICT (path) DO UPDATE SET count = visits.count + 1`
	sumVisits    = `SELECT COALESCE(SUM(count), 0) FROM visits`
	selectVisits = `SELECT path, count FROM visits`
)

// Store keeps one row per path in a visits table. See migrations/ for the
// schema.
type Store struct {
	db *sql.DB
}

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) RecordVisit(ctx context.Context, path string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, upsertVisit, path); err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	var total int64
	if err := tx.QueryRowContext(ctx, sumVisits).Scan(&total); err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) Total(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, sumVisits).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) PathCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, selectVisits)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var (
			path string
			n    int64
		)
		if err := rows.Scan(&path, &n); err != nil {
			return nil, err
		}
		out[path] = n
	}
	return out, rows.Err()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
