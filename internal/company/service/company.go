package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/LofoWalker/upkeep/internal/company/domain"
	"github.com/LofoWalker/upkeep/internal/company/store"
	"github.com/LofoWalker/upkeep/pkg/slogx"
)

type CompanyService struct {
	Store store.Store
}

type CreateCompanyCommand struct {
	ActorID domain.CustomerID
	Name    string

	// Slug is optional. When empty it is derived from Name.
	Slug string
}

type CompanyMembership struct {
	CompanyID    domain.CompanyID
	Name         domain.CompanyName
	Slug         domain.CompanySlug
	MembershipID domain.MembershipID
	Role         domain.Role
}

type DashboardStats struct {
	TotalMembers int
	// Budgets, packages and allocations live outside this service and are
	// always reported as absent.
	HasBudget      bool
	HasPackages    bool
	HasAllocations bool
}

type Dashboard struct {
	CompanyID domain.CompanyID
	Name      domain.CompanyName
	Slug      domain.CompanySlug
	UserRole  domain.Role
	Stats     DashboardStats
}

// Create registers a company and makes the actor its first owner.
func (s *CompanyService) Create(ctx context.Context, cmd CreateCompanyCommand) (res CompanyMembership, err error) {
	ctx, span := startSpan(ctx, "CompanyService.Create", attribute.String("actor_id", cmd.ActorID.String()))
	defer func() { endSpan(span, err) }()
	log := slogx.FromContext(ctx)

	name, err := domain.ParseCompanyName(cmd.Name)
	if err != nil {
		log.Warn("company rejected: invalid name")
		return CompanyMembership{}, err
	}

	slug := domain.DeriveCompanySlug(name)
	if strings.TrimSpace(cmd.Slug) != "" {
		slug, err = domain.ParseCompanySlug(cmd.Slug)
		if err != nil {
			log.Warn("company rejected: invalid slug", slog.String("slug", cmd.Slug))
			return CompanyMembership{}, err
		}
	}

	company := domain.NewCompany(name, slug)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		taken, err := tx.Companies().ExistsBySlug(ctx, slug)
		if err != nil {
			return fmt.Errorf("check slug: %w", err)
		}
		if taken {
			return domain.ErrSlugTaken
		}

		if err := tx.Companies().Save(ctx, company); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.ErrSlugTaken
			}
			return fmt.Errorf("save company: %w", err)
		}

		owner, err := domain.NewMembership(cmd.ActorID, company.ID, domain.RoleOwner)
		if err != nil {
			return err
		}
		if err := tx.Memberships().Save(ctx, owner); err != nil {
			return fmt.Errorf("save owner membership: %w", err)
		}

		res = CompanyMembership{
			CompanyID:    company.ID,
			Name:         company.Name,
			Slug:         company.Slug,
			MembershipID: owner.ID(),
			Role:         owner.Role(),
		}
		return nil
	})
	if err != nil {
		logFailure(log, "company creation failed", err,
			slog.String("actor_id", cmd.ActorID.String()),
			slog.String("slug", slug.String()),
		)
		return CompanyMembership{}, err
	}

	log.Info("company created",
		slog.String("company_id", res.CompanyID.String()),
		slog.String("slug", res.Slug.String()),
		slog.String("owner_id", cmd.ActorID.String()),
	)
	return res, nil
}

// GetUserCompanies lists every company the actor belongs to along with
// their role in it.
func (s *CompanyService) GetUserCompanies(ctx context.Context, actorID domain.CustomerID) ([]CompanyMembership, error) {
	log := slogx.FromContext(ctx)

	memberships, err := s.Store.Memberships().FindAllByCustomer(ctx, actorID)
	if err != nil {
		log.Error("failed to list memberships", slog.Any("error", err))
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	out := make([]CompanyMembership, 0, len(memberships))
	for _, m := range memberships {
		company, err := s.Store.Companies().FindByID(ctx, m.CompanyID())
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("membership references a missing company",
				slog.String("membership_id", m.ID().String()),
				slog.String("company_id", m.CompanyID().String()),
			)
			continue
		}
		if err != nil {
			log.Error("failed to fetch company", slog.Any("error", err))
			return nil, fmt.Errorf("find company: %w", err)
		}

		out = append(out, CompanyMembership{
			CompanyID:    company.ID,
			Name:         company.Name,
			Slug:         company.Slug,
			MembershipID: m.ID(),
			Role:         m.Role(),
		})
	}
	return out, nil
}

// Dashboard summarises a company for one of its members.
func (s *CompanyService) Dashboard(
	ctx context.Context,
	actorID domain.CustomerID,
	companyID domain.CompanyID,
) (Dashboard, error) {
	log := slogx.FromContext(ctx)

	company, err := s.Store.Companies().FindByID(ctx, companyID)
	if errors.Is(err, store.ErrNotFound) {
		return Dashboard{}, domain.ErrCompanyNotFound
	}
	if err != nil {
		log.Error("failed to fetch company", slog.Any("error", err))
		return Dashboard{}, fmt.Errorf("find company: %w", err)
	}

	actor, err := actorMembership(ctx, s.Store.Memberships(), actorID, companyID)
	if err != nil {
		logFailure(log, "dashboard denied", err,
			slog.String("company_id", companyID.String()),
			slog.String("actor_id", actorID.String()),
		)
		return Dashboard{}, err
	}

	memberships, err := s.Store.Memberships().FindAllByCompany(ctx, companyID)
	if err != nil {
		log.Error("failed to list memberships", slog.Any("error", err))
		return Dashboard{}, fmt.Errorf("list memberships: %w", err)
	}

	return Dashboard{
		CompanyID: company.ID,
		Name:      company.Name,
		Slug:      company.Slug,
		UserRole:  actor.Role(),
		Stats: DashboardStats{
			TotalMembers: len(memberships),
		},
	}, nil
}
