// Package repomanager vends repository implementations bound to a database
// handle and exposes the schema migration hook.
package repomanager

import (
	"context"
	"database/sql"

	"authd/internal/dbx"
	"authd/internal/server/repositories/users"
)

// RepositoryManager builds repositories on top of a DBTX (either the pool
// or a transaction) and knows how to migrate the schema.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
