package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/botofarm/internal/dbx"
	"github.com/dmitrijs2005/botofarm/internal/server/repositories/accounts"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
}
