package store

import (
	"context"
	"errors"

	"github.com/LofoWalker/upkeep/internal/company/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Repositories hang off the store so a transaction can hand
// out the same repositories bound to itself.
type Store interface {
	Customers() Customers
	Companies() Companies
	Memberships() Memberships
	Invitations() Invitations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Customers interface {
	FindByID(ctx context.Context, id domain.CustomerID) (domain.Customer, error)
	FindByEmail(ctx context.Context, email domain.Email) (domain.Customer, error)
	ExistsByEmail(ctx context.Context, email domain.Email) (bool, error)

	// Save inserts or updates the customer. A duplicate email yields
	// ErrAlreadyExists.
	Save(ctx context.Context, c domain.Customer) error
}

type Companies interface {
	FindByID(ctx context.Context, id domain.CompanyID) (domain.Company, error)
	FindBySlug(ctx context.Context, slug domain.CompanySlug) (domain.Company, error)
	ExistsBySlug(ctx context.Context, slug domain.CompanySlug) (bool, error)

	// Save inserts or updates the company. A duplicate slug yields
	// ErrAlreadyExists.
	Save(ctx context.Context, c domain.Company) error
}

type Memberships interface {
	FindByID(ctx context.Context, id domain.MembershipID) (*domain.Membership, error)
	FindByCustomerAndCompany(
		ctx context.Context,
		customerID domain.CustomerID,
		companyID domain.CompanyID,
	) (*domain.Membership, error)

	// FindAllByCompany lists memberships ordered by join time.
	FindAllByCompany(ctx context.Context, companyID domain.CompanyID) ([]*domain.Membership, error)
	FindAllByCustomer(ctx context.Context, customerID domain.CustomerID) ([]*domain.Membership, error)

	CountByCompanyAndRole(ctx context.Context, companyID domain.CompanyID, role domain.Role) (int, error)
	ExistsByCustomerAndCompany(ctx context.Context, customerID domain.CustomerID, companyID domain.CompanyID) (bool, error)

	// Save inserts or updates the membership. A second membership for the
	// same (customer, company) pair yields ErrAlreadyExists.
	Save(ctx context.Context, m *domain.Membership) error
	Delete(ctx context.Context, id domain.MembershipID) error
}

type Invitations interface {
	// FindByToken looks an invitation up by its raw token.
	FindByToken(ctx context.Context, token string) (*domain.Invitation, error)
	FindByID(ctx context.Context, id domain.InvitationID) (*domain.Invitation, error)
	FindAllByStatus(ctx context.Context, status domain.InvitationStatus) ([]*domain.Invitation, error)
	ExistsByCompanyAndEmailAndStatus(
		ctx context.Context,
		companyID domain.CompanyID,
		email domain.Email,
		status domain.InvitationStatus,
	) (bool, error)

	// Save inserts or updates the invitation. A second PENDING invitation
	// for the same (company, email) pair yields ErrAlreadyExists.
	Save(ctx context.Context, inv *domain.Invitation) error
}
