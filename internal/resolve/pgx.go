package resolve

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultPgxKeyQuery is DefaultKeyQuery for PostgreSQL.
const DefaultPgxKeyQuery = "SELECT id::text FROM issue WHERE issue_key = $1"

// RowQuerier is the subset of *pgxpool.Pool the pgx lookup needs.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgxKeyLookup looks issue keys up in PostgreSQL through pgx.
type PgxKeyLookup struct {
	q     RowQuerier
	query string
}

// NewPgxKeyLookup creates a lookup over q. An empty query selects
// DefaultPgxKeyQuery.
func NewPgxKeyLookup(q RowQuerier, query string) *PgxKeyLookup {
	if query == "" {
		query = DefaultPgxKeyQuery
	}

	return &PgxKeyLookup{q: q, query: query}
}

// IssueIDByKey implements KeyLookup.
func (l *PgxKeyLookup) IssueIDByKey(ctx context.Context, key string) (string, bool, error) {
	var id string

	err := l.q.QueryRow(ctx, l.query, key).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("looking up issue %s: %w", key, err)
	}

	return id, true, nil
}

// OpenPool opens a small read-only-use pgx pool for key lookups and pings it.
func OpenPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	cfg.MaxConns = 4
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}
