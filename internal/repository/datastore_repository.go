package repository

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"

	"github.com/jbweber/homelab/stagerad/internal/datastore"
)

// DatastoreRepository provides the table-generic half of a Repository on top
// of datastore.Datastore. Concrete repositories embed it and add the
// entity-specific column mapping.
type DatastoreRepository[T any, ID comparable] struct {
	ds     *datastore.Datastore
	stmts  *statementCache
	tx     *sql.Tx
	table  string
	entity reflect.Type
}

// NewDatastoreRepository creates a new generic repository over table
func NewDatastoreRepository[T any, ID comparable](ds *datastore.Datastore, table string) *DatastoreRepository[T, ID] {
	var zero T
	return &DatastoreRepository[T, ID]{
		ds:     ds,
		stmts:  newStatementCache(ds.DB),
		table:  table,
		entity: reflect.TypeOf(zero),
	}
}

// withTx returns a copy of the repository whose statements run inside tx
func (r *DatastoreRepository[T, ID]) withTx(tx *sql.Tx) *DatastoreRepository[T, ID] {
	c := *r
	c.tx = tx
	return &c
}

// Close releases the repository's prepared statements. It does not close the
// datastore, and copies bound to a transaction share the same statements.
func (r *DatastoreRepository[T, ID]) Close() error {
	return r.stmts.Close()
}

// DeleteByID deletes an entity by its ID. Deleting a missing entity is not an error.
func (r *DatastoreRepository[T, ID]) DeleteByID(ctx context.Context, id ID) error {
	if _, err := r.exec(ctx, "DELETE FROM "+r.table+" WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.entity.Name(), err)
	}
	return nil
}

// ExistsByID checks if an entity exists by its ID
func (r *DatastoreRepository[T, ID]) ExistsByID(ctx context.Context, id ID) (bool, error) {
	var count int
	if err := r.queryRow(ctx, "SELECT COUNT(*) FROM "+r.table+" WHERE id = ?", id).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", r.entity.Name(), err)
	}
	return count > 0, nil
}

// count returns the number of rows matching an optional WHERE clause
func (r *DatastoreRepository[T, ID]) count(ctx context.Context, where string, args ...any) (int64, error) {
	var n int64
	if err := r.queryRow(ctx, "SELECT COUNT(*) FROM "+r.table+" "+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.entity.Name(), err)
	}
	return n, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// errRow reports a statement preparation failure at Scan time
type errRow struct{ err error }

func (e errRow) Scan(...any) error { return e.err }

// exec runs a statement, inside the bound transaction when there is one and
// through the prepared statement cache otherwise.
func (r *DatastoreRepository[T, ID]) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	query = r.ds.Rebind(query)
	if r.tx != nil {
		return r.tx.ExecContext(ctx, query, args...)
	}
	stmt, err := r.stmts.prepare(ctx, query)
	if err != nil {
		return nil, err
	}
	return stmt.ExecContext(ctx, args...)
}

func (r *DatastoreRepository[T, ID]) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	query = r.ds.Rebind(query)
	if r.tx != nil {
		return r.tx.QueryContext(ctx, query, args...)
	}
	stmt, err := r.stmts.prepare(ctx, query)
	if err != nil {
		return nil, err
	}
	return stmt.QueryContext(ctx, args...)
}

func (r *DatastoreRepository[T, ID]) queryRow(ctx context.Context, query string, args ...any) rowScanner {
	query = r.ds.Rebind(query)
	if r.tx != nil {
		return r.tx.QueryRowContext(ctx, query, args...)
	}
	stmt, err := r.stmts.prepare(ctx, query)
	if err != nil {
		return errRow{err: err}
	}
	return stmt.QueryRowContext(ctx, args...)
}
