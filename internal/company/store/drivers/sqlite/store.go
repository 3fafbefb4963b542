package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/LofoWalker/upkeep/internal/company/store/drivers/sqlstore"
)

const foreignKeysPragma = "_pragma=foreign_keys(1)"

// FileDSN is the DSN for an on-disk database: WAL, a busy timeout and
// BEGIN IMMEDIATE so concurrent writers queue instead of failing.
func FileDSN(path string) string {
	return fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&%s&_txlock=immediate",
		path, foreignKeysPragma,
	)
}

// NewStore opens a sqlite database. In-memory databases are pinned to a
// single connection, since every new connection would see an empty schema.
// Foreign keys are enabled through the DSN so every pooled connection gets
// them.
func NewStore(dsn string) (*sqlstore.Store, error) {
	db, err := sqlx.Open("sqlite", withForeignKeys(dsn))
	if err != nil {
		return nil, err
	}

	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	return sqlstore.New(db, sqlstore.Dialect{
		IsUniqueViolation: isUniqueViolation,
		Migrate:           applyMigrations,
	}), nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + foreignKeysPragma
	}
	return dsn + "?" + foreignKeysPragma
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
