package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
)

var errStatementsClosed = errors.New("statement cache is closed")

// statementCache prepares each distinct query once per repository and hands
// out the shared *sql.Stmt afterwards.
type statementCache struct {
	db *sql.DB

	mu     sync.Mutex
	byText map[string]*sql.Stmt
	closed bool
}

func newStatementCache(db *sql.DB) *statementCache {
	return &statementCache{db: db, byText: make(map[string]*sql.Stmt)}
}

func (c *statementCache) prepare(ctx context.Context, query string) (*sql.Stmt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, errStatementsClosed
	}
	if stmt, ok := c.byText[query]; ok {
		return stmt, nil
	}

	stmt, err := c.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	c.byText[query] = stmt
	return stmt, nil
}

// Close releases every prepared statement. Later prepares fail with
// errStatementsClosed.
func (c *statementCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	for query, stmt := range c.byText {
		if err := stmt.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %q: %w", query, err))
		}
	}
	c.byText = nil
	return errors.Join(errs...)
}
