package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/LofoWalker/upkeep/internal/company/domain"
	"github.com/LofoWalker/upkeep/internal/company/notify"
	"github.com/LofoWalker/upkeep/internal/company/store"
	"github.com/LofoWalker/upkeep/pkg/slogx"
)

type InvitationService struct {
	Store    store.Store
	Notifier notify.Notifier
}

type InviteCommand struct {
	ActorID   domain.CustomerID
	CompanyID domain.CompanyID
	Email     string
	Role      domain.Role
}

type InviteResult struct {
	InvitationID domain.InvitationID
	Email        domain.Email
	Role         domain.Role
	Status       domain.InvitationStatus
	ExpiresAt    time.Time
}

type AcceptResult struct {
	CompanyID    domain.CompanyID
	CompanyName  domain.CompanyName
	CompanySlug  domain.CompanySlug
	MembershipID domain.MembershipID
	Role         domain.Role
}

// InvitationDetails is the public view of an invitation, shown to an invitee
// before they accept or decline.
type InvitationDetails struct {
	InvitationID domain.InvitationID
	CompanyName  domain.CompanyName
	Email        domain.Email
	Role         domain.Role
	Status       domain.InvitationStatus
	IsExpired    bool
	ExpiresAt    time.Time
}

func (s *InvitationService) notifier() notify.Notifier {
	if s.Notifier == nil {
		return notify.Nop{}
	}
	return s.Notifier
}

// Invite creates a PENDING invitation on behalf of a company owner and sends
// the raw token to the invitee once the invitation is committed.
func (s *InvitationService) Invite(ctx context.Context, cmd InviteCommand) (res InviteResult, err error) {
	ctx, span := startSpan(ctx, "InvitationService.Invite",
		attribute.String("company_id", cmd.CompanyID.String()),
		attribute.String("actor_id", cmd.ActorID.String()),
	)
	defer func() { endSpan(span, err) }()
	log := slogx.FromContext(ctx)

	email, err := domain.ParseEmail(cmd.Email)
	if err != nil {
		log.Warn("invitation rejected: invalid email", slog.String("company_id", cmd.CompanyID.String()))
		return InviteResult{}, err
	}
	if !cmd.Role.Valid() {
		log.Warn("invitation rejected: invalid role", slog.String("role", cmd.Role.String()))
		return InviteResult{}, domain.ErrInvalidRole
	}

	var inv *domain.Invitation
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. The actor must belong to the company.
		actor, err := actorMembership(ctx, tx.Memberships(), cmd.ActorID, cmd.CompanyID)
		if err != nil {
			return err
		}

		// 2. Only owners may invite.
		if err := domain.RequireOwner(actor); err != nil {
			return err
		}

		// 3. At most one pending invitation per (company, email).
		pending, err := tx.Invitations().ExistsByCompanyAndEmailAndStatus(
			ctx, cmd.CompanyID, email, domain.InvitationPending,
		)
		if err != nil {
			return fmt.Errorf("check pending invitations: %w", err)
		}
		if pending {
			return domain.ErrInvitationPending
		}

		// 4. Mint and persist.
		inv, err = domain.NewInvitation(cmd.CompanyID, cmd.ActorID, email, cmd.Role)
		if err != nil {
			return err
		}
		if err := tx.Invitations().Save(ctx, inv); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.ErrInvitationPending
			}
			return fmt.Errorf("save invitation: %w", err)
		}
		return nil
	})
	if err != nil {
		logFailure(log, "invitation failed", err,
			slog.String("company_id", cmd.CompanyID.String()),
			slog.String("actor_id", cmd.ActorID.String()),
		)
		return InviteResult{}, err
	}

	s.notifier().SendInvitationEmail(ctx, email, inv.Token())

	log.Info("invitation created",
		slog.String("invitation_id", inv.ID().String()),
		slog.String("company_id", cmd.CompanyID.String()),
		slog.String("invited_by", cmd.ActorID.String()),
		slog.String("role", inv.Role().String()),
		slog.Time("expires_at", inv.ExpiresAt()),
	)

	return InviteResult{
		InvitationID: inv.ID(),
		Email:        inv.Email(),
		Role:         inv.Role(),
		Status:       inv.Status(),
		ExpiresAt:    inv.ExpiresAt(),
	}, nil
}

// Accept redeems an invitation token for the acting customer and creates
// their membership.
//
// Two failure paths still change state: an expired invitation is written
// back as EXPIRED, and an invitation presented by an existing member is
// written back as ACCEPTED so the token cannot be replayed. In both cases the
// write-back is committed and the domain error is returned afterwards.
func (s *InvitationService) Accept(ctx context.Context, actorID domain.CustomerID, token string) (res AcceptResult, err error) {
	ctx, span := startSpan(ctx, "InvitationService.Accept", attribute.String("actor_id", actorID.String()))
	defer func() { endSpan(span, err) }()
	log := slogx.FromContext(ctx)

	var (
		invitationID domain.InvitationID
		rejection    error
	)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Resolve by token.
		inv, err := findInvitationByToken(ctx, tx.Invitations(), token)
		if err != nil {
			return err
		}
		invitationID = inv.ID()

		// 2. Lazy expiry.
		if inv.IsExpired() {
			inv.MarkAsExpired()
			if err := tx.Invitations().Save(ctx, inv); err != nil {
				return fmt.Errorf("save expired invitation: %w", err)
			}
			rejection = domain.ErrInvitationExpired
			return nil
		}

		// 3. Already accepted or declined.
		if !inv.CanBeAccepted() {
			return domain.ErrInvitationNotPending
		}

		// 4. The company must still exist.
		company, err := tx.Companies().FindByID(ctx, inv.CompanyID())
		if errors.Is(err, store.ErrNotFound) {
			return domain.ErrCompanyNotFound
		}
		if err != nil {
			return fmt.Errorf("find company: %w", err)
		}

		// 5. Existing members burn the invitation.
		member, err := tx.Memberships().ExistsByCustomerAndCompany(ctx, actorID, inv.CompanyID())
		if err != nil {
			return fmt.Errorf("check membership: %w", err)
		}
		if member {
			if err := inv.Accept(); err != nil {
				return err
			}
			if err := tx.Invitations().Save(ctx, inv); err != nil {
				return fmt.Errorf("save accepted invitation: %w", err)
			}
			rejection = domain.ErrAlreadyMember
			return nil
		}

		// 6. Accept and join.
		if err := inv.Accept(); err != nil {
			return err
		}
		if err := tx.Invitations().Save(ctx, inv); err != nil {
			return fmt.Errorf("save accepted invitation: %w", err)
		}

		m, err := domain.NewMembership(actorID, inv.CompanyID(), inv.Role())
		if err != nil {
			return err
		}
		if err := tx.Memberships().Save(ctx, m); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.ErrAlreadyMember
			}
			return fmt.Errorf("save membership: %w", err)
		}

		res = AcceptResult{
			CompanyID:    company.ID,
			CompanyName:  company.Name,
			CompanySlug:  company.Slug,
			MembershipID: m.ID(),
			Role:         m.Role(),
		}
		return nil
	})
	if err == nil {
		err = rejection
	}
	if err != nil {
		logFailure(log, "invitation acceptance failed", err,
			slog.String("actor_id", actorID.String()),
			slog.String("invitation_id", invitationID.String()),
		)
		return AcceptResult{}, err
	}

	log.Info("invitation accepted",
		slog.String("invitation_id", invitationID.String()),
		slog.String("company_id", res.CompanyID.String()),
		slog.String("membership_id", res.MembershipID.String()),
		slog.String("role", res.Role.String()),
	)
	return res, nil
}

// Decline marks a pending invitation as DECLINED. Expired invitations may
// still be declined.
func (s *InvitationService) Decline(ctx context.Context, actorID domain.CustomerID, token string) (err error) {
	ctx, span := startSpan(ctx, "InvitationService.Decline", attribute.String("actor_id", actorID.String()))
	defer func() { endSpan(span, err) }()
	log := slogx.FromContext(ctx)

	var invitationID domain.InvitationID
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		inv, err := findInvitationByToken(ctx, tx.Invitations(), token)
		if err != nil {
			return err
		}
		invitationID = inv.ID()

		if err := inv.Decline(); err != nil {
			return err
		}
		if err := tx.Invitations().Save(ctx, inv); err != nil {
			return fmt.Errorf("save declined invitation: %w", err)
		}
		return nil
	})
	if err != nil {
		logFailure(log, "invitation decline failed", err, slog.String("actor_id", actorID.String()))
		return err
	}

	log.Info("invitation declined",
		slog.String("invitation_id", invitationID.String()),
		slog.String("actor_id", actorID.String()),
	)
	return nil
}

// Get looks an invitation up by its raw token. It never changes state, so an
// expired but still PENDING invitation is reported with IsExpired set.
func (s *InvitationService) Get(ctx context.Context, token string) (InvitationDetails, error) {
	inv, err := findInvitationByToken(ctx, s.Store.Invitations(), token)
	if err != nil {
		return InvitationDetails{}, err
	}

	company, err := s.Store.Companies().FindByID(ctx, inv.CompanyID())
	if errors.Is(err, store.ErrNotFound) {
		return InvitationDetails{}, domain.ErrCompanyNotFound
	}
	if err != nil {
		return InvitationDetails{}, fmt.Errorf("find company: %w", err)
	}

	return InvitationDetails{
		InvitationID: inv.ID(),
		CompanyName:  company.Name,
		Email:        inv.Email(),
		Role:         inv.Role(),
		Status:       inv.Status(),
		IsExpired:    inv.IsExpired(),
		ExpiresAt:    inv.ExpiresAt(),
	}, nil
}

func findInvitationByToken(ctx context.Context, invitations store.Invitations, token string) (*domain.Invitation, error) {
	if token == "" {
		return nil, domain.ErrInvitationNotFound
	}

	inv, err := invitations.FindByToken(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.ErrInvitationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find invitation: %w", err)
	}
	return inv, nil
}
