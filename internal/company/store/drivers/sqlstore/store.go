// Package sqlstore implements the store repositories on top of sqlx. The SQL
// is written with '?' placeholders and rebound per driver, so the sqlite and
// postgres drivers share these repositories and differ only in their Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/LofoWalker/upkeep/internal/company/store"
)

// Dialect captures what differs between the SQL backends.
type Dialect struct {
	// TxOptions are used for every read/write transaction.
	TxOptions *sql.TxOptions

	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation func(error) bool

	// Migrate applies the driver's embedded migrations.
	Migrate func(db *sql.DB) error
}

type Store struct {
	db      *sqlx.DB
	dialect Dialect
}

func New(db *sqlx.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB exposes the underlying handle, mostly for drivers and tests.
func (s *Store) DB() *sqlx.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) ApplyMigrations() error {
	if s.dialect.Migrate == nil {
		return nil
	}
	return s.dialect.Migrate(s.db.DB)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTxx(ctx, s.dialect.TxOptions)
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx, dialect: s.dialect}, nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Rollback is a no-op once committed, and covers panics and early returns.
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Customers() store.Customers     { return &customersRepo{s.repo()} }
func (s *Store) Companies() store.Companies     { return &companiesRepo{s.repo()} }
func (s *Store) Memberships() store.Memberships { return &membershipsRepo{s.repo()} }
func (s *Store) Invitations() store.Invitations { return &invitationsRepo{s.repo()} }

func (s *Store) repo() repo { return repo{q: s.db, dialect: s.dialect} }

// repo is the shared base of every repository: a query target (DB or Tx)
// and the dialect used to classify write errors.
type repo struct {
	q       sqlx.ExtContext
	dialect Dialect
}

func (r repo) get(ctx context.Context, dest any, query string, args ...any) error {
	return mapNotFound(sqlx.GetContext(ctx, r.q, dest, r.q.Rebind(query), args...))
}

func (r repo) selectAll(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, r.q, dest, r.q.Rebind(query), args...)
}

func (r repo) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(query), args...)
	if err != nil {
		if r.dialect.IsUniqueViolation != nil && r.dialect.IsUniqueViolation(err) {
			return nil, errors.Join(store.ErrAlreadyExists, err)
		}
		return nil, err
	}
	return res, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
