package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/LofoWalker/upkeep/internal/company/domain"
	"github.com/LofoWalker/upkeep/internal/company/store"
	"github.com/LofoWalker/upkeep/pkg/slogx"
)

// unknownEmail stands in for a member whose customer record is missing.
const unknownEmail = "unknown"

type MembershipService struct {
	Store store.Store
}

type UpdateRoleCommand struct {
	ActorID      domain.CustomerID
	CompanyID    domain.CompanyID
	MembershipID domain.MembershipID
	Role         domain.Role
}

type RoleChange struct {
	MembershipID domain.MembershipID
	PreviousRole domain.Role
	NewRole      domain.Role
}

type Member struct {
	MembershipID domain.MembershipID
	CustomerID   domain.CustomerID
	Email        string
	Role         domain.Role
	JoinedAt     time.Time
}

// UpdateMemberRole changes the role of a membership in the actor's company.
// The actor must be an owner, and a company never loses its last owner.
func (s *MembershipService) UpdateMemberRole(ctx context.Context, cmd UpdateRoleCommand) (res RoleChange, err error) {
	ctx, span := startSpan(ctx, "MembershipService.UpdateMemberRole",
		attribute.String("company_id", cmd.CompanyID.String()),
		attribute.String("membership_id", cmd.MembershipID.String()),
		attribute.String("role", cmd.Role.String()),
	)
	defer func() { endSpan(span, err) }()
	log := slogx.FromContext(ctx)

	if !cmd.Role.Valid() {
		log.Warn("role change rejected: invalid role", slog.String("role", cmd.Role.String()))
		return RoleChange{}, domain.ErrInvalidRole
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. The actor must belong to the company.
		actor, err := actorMembership(ctx, tx.Memberships(), cmd.ActorID, cmd.CompanyID)
		if err != nil {
			return err
		}

		// 2. Only owners may change roles.
		if err := domain.RequireOwner(actor); err != nil {
			return err
		}

		// 3. Resolve the target inside the same company. A membership of
		// another company is reported exactly like a missing one.
		target, err := tx.Memberships().FindByID(ctx, cmd.MembershipID)
		if errors.Is(err, store.ErrNotFound) {
			return domain.ErrMembershipNotFound
		}
		if err != nil {
			return fmt.Errorf("find membership: %w", err)
		}
		if !target.BelongsTo(cmd.CompanyID) {
			return domain.ErrMembershipNotFound
		}

		// 4. Last-owner check against the current owner count.
		previous := target.Role()
		if previous == domain.RoleOwner && cmd.Role != domain.RoleOwner {
			owners, err := tx.Memberships().CountByCompanyAndRole(ctx, cmd.CompanyID, domain.RoleOwner)
			if err != nil {
				return fmt.Errorf("count owners: %w", err)
			}
			if domain.WouldViolateLastOwnerInvariant(owners, previous, cmd.Role) {
				return domain.ErrLastOwnerDemotion
			}
		}

		// 5. Apply and persist.
		if err := target.ChangeRole(cmd.Role); err != nil {
			return err
		}
		if err := tx.Memberships().Save(ctx, target); err != nil {
			return fmt.Errorf("save membership: %w", err)
		}

		res = RoleChange{
			MembershipID: target.ID(),
			PreviousRole: previous,
			NewRole:      target.Role(),
		}
		return nil
	})
	if err != nil {
		logFailure(log, "role change failed", err,
			slog.String("company_id", cmd.CompanyID.String()),
			slog.String("actor_id", cmd.ActorID.String()),
			slog.String("membership_id", cmd.MembershipID.String()),
		)
		return RoleChange{}, err
	}

	log.Info("member role changed",
		slog.String("company_id", cmd.CompanyID.String()),
		slog.String("membership_id", res.MembershipID.String()),
		slog.String("previous_role", res.PreviousRole.String()),
		slog.String("new_role", res.NewRole.String()),
		slog.String("changed_by", cmd.ActorID.String()),
	)
	return res, nil
}

// GetCompanyMembers lists the company's memberships in join order. The actor
// must be a member. A member whose customer record cannot be found is listed
// with the email "unknown".
func (s *MembershipService) GetCompanyMembers(
	ctx context.Context,
	actorID domain.CustomerID,
	companyID domain.CompanyID,
) ([]Member, error) {
	log := slogx.FromContext(ctx)

	if _, err := actorMembership(ctx, s.Store.Memberships(), actorID, companyID); err != nil {
		logFailure(log, "member listing failed", err,
			slog.String("company_id", companyID.String()),
			slog.String("actor_id", actorID.String()),
		)
		return nil, err
	}

	memberships, err := s.Store.Memberships().FindAllByCompany(ctx, companyID)
	if err != nil {
		log.Error("failed to list memberships", slog.Any("error", err))
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	members := make([]Member, 0, len(memberships))
	for _, m := range memberships {
		email := unknownEmail
		customer, err := s.Store.Customers().FindByID(ctx, m.CustomerID())
		switch {
		case err == nil:
			email = customer.Email.String()
		case errors.Is(err, store.ErrNotFound):
			log.Debug("member has no customer record", slog.String("customer_id", m.CustomerID().String()))
		default:
			log.Warn("failed to look up member email",
				slog.String("customer_id", m.CustomerID().String()),
				slog.Any("error", err),
			)
		}

		members = append(members, Member{
			MembershipID: m.ID(),
			CustomerID:   m.CustomerID(),
			Email:        email,
			Role:         m.Role(),
			JoinedAt:     m.JoinedAt(),
		})
	}
	return members, nil
}
