package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/LofoWalker/upkeep/internal/company/store/drivers/sqlstore"
)

const uniqueViolation = "23505"

// NewStore connects to postgres through the pgx stdlib driver. Transactions
// run SERIALIZABLE so the read-check-write use cases stay consistent under
// concurrent requests; conflicting transactions fail instead of interleaving.
func NewStore(ctx context.Context, dsn string) (*sqlstore.Store, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return sqlstore.New(db, sqlstore.Dialect{
		TxOptions:         &sql.TxOptions{Isolation: sql.LevelSerializable},
		IsUniqueViolation: isUniqueViolation,
		Migrate:           applyMigrations,
	}), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
