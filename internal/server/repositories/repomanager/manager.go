// Package repomanager hands out per-entity repositories bound to a DB
// handle, so services can use the same repository code inside and outside
// of transactions.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/eperalta/filedrawer/internal/dbx"
	"github.com/eperalta/filedrawer/internal/server/repositories/files"
	"github.com/eperalta/filedrawer/internal/server/repositories/folders"
	"github.com/eperalta/filedrawer/internal/server/repositories/sessions"
	"github.com/eperalta/filedrawer/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Folders(db dbx.DBTX) folders.Repository
	Files(db dbx.DBTX) files.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
