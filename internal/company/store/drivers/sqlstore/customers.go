package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/LofoWalker/upkeep/internal/company/domain"
)

type customersRepo struct{ repo }

type customerRow struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

func (row customerRow) toDomain() (domain.Customer, error) {
	id, err := domain.ParseCustomerID(row.ID)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("sqlstore: customer row: %w", err)
	}
	return domain.Customer{
		ID:        id,
		Email:     domain.Email(row.Email),
		CreatedAt: row.CreatedAt,
	}, nil
}

const customerColumns = `id, email, created_at`

func (r *customersRepo) FindByID(ctx context.Context, id domain.CustomerID) (domain.Customer, error) {
	var row customerRow
	if err := r.get(ctx, &row, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id.String()); err != nil {
		return domain.Customer{}, err
	}
	return row.toDomain()
}

func (r *customersRepo) FindByEmail(ctx context.Context, email domain.Email) (domain.Customer, error) {
	var row customerRow
	if err := r.get(ctx, &row, `SELECT `+customerColumns+` FROM customers WHERE email = ?`, email.String()); err != nil {
		return domain.Customer{}, err
	}
	return row.toDomain()
}

func (r *customersRepo) ExistsByEmail(ctx context.Context, email domain.Email) (bool, error) {
	var exists bool
	err := r.get(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM customers WHERE email = ?)`, email.String())
	return exists, err
}

func (r *customersRepo) Save(ctx context.Context, c domain.Customer) error {
	_, err := r.exec(ctx, `
		INSERT INTO customers (id, email, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET email = excluded.email`,
		c.ID.String(), c.Email.String(), c.CreatedAt.UTC(),
	)
	return err
}
