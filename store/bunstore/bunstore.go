// Package bunstore implements the store contracts on top of uptrace/bun.
// It is the production persistence adapter; the use cases only see the
// Reader/Writer interfaces from the store package.
package bunstore

import (
	"context"
	"database/sql"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"

	"github.com/userhub/userhub/model"
)

// OpenSQLite opens dsn through the sqlite3 driver wrapped in bun.
// Use ":memory:" for throwaway databases in tests and demos.
func OpenSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// An in-memory database vanishes when its last connection closes,
	// and each pooled connection would otherwise get its own database.
	if strings.Contains(dsn, ":memory:") {
		sqldb.SetMaxOpenConns(1)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// CreateSchema creates the users and comments tables if absent.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, m := range []any{
		(*model.User)(nil),
		(*model.Comment)(nil),
	} {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
