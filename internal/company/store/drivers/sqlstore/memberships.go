package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/LofoWalker/upkeep/internal/company/domain"
	"github.com/LofoWalker/upkeep/internal/company/store"
)

type membershipsRepo struct{ repo }

type membershipRow struct {
	ID         string    `db:"id"`
	CustomerID string    `db:"customer_id"`
	CompanyID  string    `db:"company_id"`
	Role       string    `db:"role"`
	JoinedAt   time.Time `db:"joined_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (row membershipRow) toDomain() (*domain.Membership, error) {
	id, err := domain.ParseMembershipID(row.ID)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: membership row: %w", err)
	}
	customerID, err := domain.ParseCustomerID(row.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: membership row: %w", err)
	}
	companyID, err := domain.ParseCompanyID(row.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: membership row: %w", err)
	}

	return domain.RestoreMembership(domain.MembershipRecord{
		ID:         id,
		CustomerID: customerID,
		CompanyID:  companyID,
		Role:       domain.Role(row.Role),
		JoinedAt:   row.JoinedAt,
		UpdatedAt:  row.UpdatedAt,
	}), nil
}

func membershipsFromRows(rows []membershipRow) ([]*domain.Membership, error) {
	out := make([]*domain.Membership, 0, len(rows))
	for _, row := range rows {
		m, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

const membershipColumns = `id, customer_id, company_id, role, joined_at, updated_at`

func (r *membershipsRepo) FindByID(ctx context.Context, id domain.MembershipID) (*domain.Membership, error) {
	var row membershipRow
	if err := r.get(ctx, &row, `SELECT `+membershipColumns+` FROM memberships WHERE id = ?`, id.String()); err != nil {
		return nil, err
	}
	return row.toDomain()
}

func (r *membershipsRepo) FindByCustomerAndCompany(
	ctx context.Context,
	customerID domain.CustomerID,
	companyID domain.CompanyID,
) (*domain.Membership, error) {
	var row membershipRow
	err := r.get(ctx, &row,
		`SELECT `+membershipColumns+` FROM memberships WHERE customer_id = ? AND company_id = ?`,
		customerID.String(), companyID.String(),
	)
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

func (r *membershipsRepo) FindAllByCompany(ctx context.Context, companyID domain.CompanyID) ([]*domain.Membership, error) {
	var rows []membershipRow
	err := r.selectAll(ctx, &rows,
		`SELECT `+membershipColumns+` FROM memberships WHERE company_id = ? ORDER BY joined_at, id`,
		companyID.String(),
	)
	if err != nil {
		return nil, err
	}
	return membershipsFromRows(rows)
}

func (r *membershipsRepo) FindAllByCustomer(ctx context.Context, customerID domain.CustomerID) ([]*domain.Membership, error) {
	var rows []membershipRow
	err := r.selectAll(ctx, &rows,
		`SELECT `+membershipColumns+` FROM memberships WHERE customer_id = ? ORDER BY joined_at, id`,
		customerID.String(),
	)
	if err != nil {
		return nil, err
	}
	return membershipsFromRows(rows)
}

func (r *membershipsRepo) CountByCompanyAndRole(
	ctx context.Context,
	companyID domain.CompanyID,
	role domain.Role,
) (int, error) {
	var n int
	err := r.get(ctx, &n,
		`SELECT COUNT(*) FROM memberships WHERE company_id = ? AND role = ?`,
		companyID.String(), role.String(),
	)
	return n, err
}

func (r *membershipsRepo) ExistsByCustomerAndCompany(
	ctx context.Context,
	customerID domain.CustomerID,
	companyID domain.CompanyID,
) (bool, error) {
	var exists bool
	err := r.get(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM memberships WHERE customer_id = ? AND company_id = ?)`,
		customerID.String(), companyID.String(),
	)
	return exists, err
}

func (r *membershipsRepo) Save(ctx context.Context, m *domain.Membership) error {
	_, err := r.exec(ctx, `
		INSERT INTO memberships (id, customer_id, company_id, role, joined_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			role = excluded.role,
			updated_at = excluded.updated_at`,
		m.ID().String(),
		m.CustomerID().String(),
		m.CompanyID().String(),
		m.Role().String(),
		m.JoinedAt().UTC(),
		m.UpdatedAt().UTC(),
	)
	return err
}

func (r *membershipsRepo) Delete(ctx context.Context, id domain.MembershipID) error {
	res, err := r.exec(ctx, `DELETE FROM memberships WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}
