// Package db holds the run archive schema and the queries against it.
package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{
		db: tx,
	}
}

// IsRemote is true for locations served by a libsql server rather than a
// local sqlite file.
func IsRemote(location string) bool {
	for _, prefix := range []string{"libsql://", "http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(location, prefix) {
			return true
		}
	}
	return false
}

func wrapOpen(err error) error {
	return fmt.Errorf("open db: %w", err)
}

// Open connects to the archive at location and makes sure the schema exists.
// location is either a sqlite file path, ":memory:" or a libsql url.
func Open(ctx context.Context, location string) (*sql.DB, error) {
	var (
		database *sql.DB
		err      error
	)
	if IsRemote(location) {
		database, err = sql.Open("libsql", location)
		if err != nil {
			return nil, wrapOpen(err)
		}
	} else {
		if location != ":memory:" {
			err = os.MkdirAll(filepath.Dir(location), 0777)
			if err != nil {
				return nil, wrapOpen(err)
			}
		}
		database, err = sql.Open("sqlite", location)
		if err != nil {
			return nil, wrapOpen(err)
		}

		// see this stackoverflow post for information on why the following
		// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
		database.SetMaxOpenConns(1)
		_, err = database.ExecContext(ctx, "PRAGMA journal_mode=WAL")
		if err != nil {
			database.Close()
			return nil, wrapOpen(err)
		}
	}

	_, err = database.ExecContext(ctx, Schema)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return database, nil
}
