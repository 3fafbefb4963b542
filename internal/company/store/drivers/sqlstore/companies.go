package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/LofoWalker/upkeep/internal/company/domain"
)

type companiesRepo struct{ repo }

type companyRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row companyRow) toDomain() (domain.Company, error) {
	id, err := domain.ParseCompanyID(row.ID)
	if err != nil {
		return domain.Company{}, fmt.Errorf("sqlstore: company row: %w", err)
	}
	return domain.Company{
		ID:        id,
		Name:      domain.CompanyName(row.Name),
		Slug:      domain.CompanySlug(row.Slug),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

const companyColumns = `id, name, slug, created_at, updated_at`

func (r *companiesRepo) FindByID(ctx context.Context, id domain.CompanyID) (domain.Company, error) {
	var row companyRow
	if err := r.get(ctx, &row, `SELECT `+companyColumns+` FROM companies WHERE id = ?`, id.String()); err != nil {
		return domain.Company{}, err
	}
	return row.toDomain()
}

func (r *companiesRepo) FindBySlug(ctx context.Context, slug domain.CompanySlug) (domain.Company, error) {
	var row companyRow
	if err := r.get(ctx, &row, `SELECT `+companyColumns+` FROM companies WHERE slug = ?`, slug.String()); err != nil {
		return domain.Company{}, err
	}
	return row.toDomain()
}

func (r *companiesRepo) ExistsBySlug(ctx context.Context, slug domain.CompanySlug) (bool, error) {
	var exists bool
	err := r.get(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM companies WHERE slug = ?)`, slug.String())
	return exists, err
}

func (r *companiesRepo) Save(ctx context.Context, c domain.Company) error {
	_, err := r.exec(ctx, `
		INSERT INTO companies (id, name, slug, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			slug = excluded.slug,
			updated_at = excluded.updated_at`,
		c.ID.String(), c.Name.String(), c.Slug.String(), c.CreatedAt.UTC(), c.UpdatedAt.UTC(),
	)
	return err
}
