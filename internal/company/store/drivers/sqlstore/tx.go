package sqlstore

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/LofoWalker/upkeep/internal/company/store"
)

type txStore struct {
	tx      *sqlx.Tx
	dialect Dialect
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the owning Store keeps the database open.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Customers() store.Customers     { return &customersRepo{t.repo()} }
func (t *txStore) Companies() store.Companies     { return &companiesRepo{t.repo()} }
func (t *txStore) Memberships() store.Memberships { return &membershipsRepo{t.repo()} }
func (t *txStore) Invitations() store.Invitations { return &invitationsRepo{t.repo()} }

func (t *txStore) repo() repo { return repo{q: t.tx, dialect: t.dialect} }

// ApplyMigrations is a no-op; migrations run before any transaction starts.
func (t *txStore) ApplyMigrations() error { return nil }
