package resolve

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DefaultKeyQuery selects an issue id by issue key. It uses '?' placeholders
// (sqlite, mysql); PostgreSQL through database/sql needs its own query.
const DefaultKeyQuery = "SELECT id FROM issue WHERE issue_key = ?"

// SQLKeyLookup looks issue keys up through database/sql.
type SQLKeyLookup struct {
	db    *sql.DB
	query string
}

// NewSQLKeyLookup creates a lookup running query with the issue key as its
// only argument. An empty query selects DefaultKeyQuery.
func NewSQLKeyLookup(db *sql.DB, query string) *SQLKeyLookup {
	if query == "" {
		query = DefaultKeyQuery
	}

	return &SQLKeyLookup{db: db, query: query}
}

// IssueIDByKey implements KeyLookup.
func (l *SQLKeyLookup) IssueIDByKey(ctx context.Context, key string) (string, bool, error) {
	var id string

	err := l.db.QueryRowContext(ctx, l.query, key).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("looking up issue %s: %w", key, err)
	}

	return id, true, nil
}
