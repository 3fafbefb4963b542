package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/LofoWalker/upkeep/internal/company/domain"
	"github.com/LofoWalker/upkeep/pkg/cryptox"
)

type invitationsRepo struct{ repo }

type invitationRow struct {
	ID        string    `db:"id"`
	CompanyID string    `db:"company_id"`
	InvitedBy string    `db:"invited_by"`
	Email     string    `db:"email"`
	Role      string    `db:"role"`
	TokenHash string    `db:"token_hash"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row invitationRow) toDomain() (*domain.Invitation, error) {
	id, err := domain.ParseInvitationID(row.ID)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: invitation row: %w", err)
	}
	companyID, err := domain.ParseCompanyID(row.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: invitation row: %w", err)
	}
	invitedBy, err := domain.ParseCustomerID(row.InvitedBy)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: invitation row: %w", err)
	}

	return domain.RestoreInvitation(domain.InvitationRecord{
		ID:        id,
		CompanyID: companyID,
		InvitedBy: invitedBy,
		Email:     domain.Email(row.Email),
		Role:      domain.Role(row.Role),
		TokenHash: row.TokenHash,
		Status:    domain.InvitationStatus(row.Status),
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
		UpdatedAt: row.UpdatedAt,
	}), nil
}

const invitationColumns = `id, company_id, invited_by, email, role, token_hash, status, created_at, expires_at, updated_at`

// FindByToken fingerprints the raw token; only fingerprints are stored.
func (r *invitationsRepo) FindByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	var row invitationRow
	err := r.get(ctx, &row,
		`SELECT `+invitationColumns+` FROM invitations WHERE token_hash = ?`,
		cryptox.FingerprintToken(token),
	)
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

func (r *invitationsRepo) FindByID(ctx context.Context, id domain.InvitationID) (*domain.Invitation, error) {
	var row invitationRow
	if err := r.get(ctx, &row, `SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id.String()); err != nil {
		return nil, err
	}
	return row.toDomain()
}

func (r *invitationsRepo) FindAllByStatus(
	ctx context.Context,
	status domain.InvitationStatus,
) ([]*domain.Invitation, error) {
	var rows []invitationRow
	err := r.selectAll(ctx, &rows,
		`SELECT `+invitationColumns+` FROM invitations WHERE status = ? ORDER BY created_at, id`,
		string(status),
	)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Invitation, 0, len(rows))
	for _, row := range rows {
		inv, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *invitationsRepo) ExistsByCompanyAndEmailAndStatus(
	ctx context.Context,
	companyID domain.CompanyID,
	email domain.Email,
	status domain.InvitationStatus,
) (bool, error) {
	var exists bool
	err := r.get(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM invitations WHERE company_id = ? AND email = ? AND status = ?)`,
		companyID.String(), email.String(), string(status),
	)
	return exists, err
}

func (r *invitationsRepo) Save(ctx context.Context, inv *domain.Invitation) error {
	_, err := r.exec(ctx, `
		INSERT INTO invitations (`+invitationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			updated_at = excluded.updated_at`,
		inv.ID().String(),
		inv.CompanyID().String(),
		inv.InvitedBy().String(),
		inv.Email().String(),
		inv.Role().String(),
		inv.TokenHash(),
		string(inv.Status()),
		inv.CreatedAt().UTC(),
		inv.ExpiresAt().UTC(),
		inv.UpdatedAt().UTC(),
	)
	return err
}
