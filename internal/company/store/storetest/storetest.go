// Package storetest holds driver-agnostic checks that every store.Store
// implementation must pass.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LofoWalker/upkeep/internal/company/domain"
	"github.com/LofoWalker/upkeep/internal/company/store"
)

// Factory returns a freshly migrated, empty store.
type Factory func(t *testing.T) store.Store

func Run(t *testing.T, newStore Factory) {
	t.Run("customers", func(t *testing.T) { testCustomers(t, newStore(t)) })
	t.Run("companies", func(t *testing.T) { testCompanies(t, newStore(t)) })
	t.Run("memberships", func(t *testing.T) { testMemberships(t, newStore(t)) })
	t.Run("invitations", func(t *testing.T) { testInvitations(t, newStore(t)) })
	t.Run("transactions", func(t *testing.T) { testTransactions(t, newStore(t)) })
}

// SeedCompany stores a company with a derived slug.
func SeedCompany(t *testing.T, st store.Store, name string) domain.Company {
	t.Helper()

	n, err := domain.ParseCompanyName(name)
	require.NoError(t, err)
	c := domain.NewCompany(n, domain.DeriveCompanySlug(n))
	require.NoError(t, st.Companies().Save(context.Background(), c))
	return c
}

// SeedCustomer stores a customer with the given email.
func SeedCustomer(t *testing.T, st store.Store, email string) domain.Customer {
	t.Helper()

	e, err := domain.ParseEmail(email)
	require.NoError(t, err)
	c := domain.NewCustomer(e)
	require.NoError(t, st.Customers().Save(context.Background(), c))
	return c
}

// SeedMembership stores a membership for the given pair.
func SeedMembership(
	t *testing.T,
	st store.Store,
	customerID domain.CustomerID,
	companyID domain.CompanyID,
	role domain.Role,
) *domain.Membership {
	t.Helper()

	m, err := domain.NewMembership(customerID, companyID, role)
	require.NoError(t, err)
	require.NoError(t, st.Memberships().Save(context.Background(), m))
	return m
}

func testCustomers(t *testing.T, st store.Store) {
	ctx := context.Background()
	bob := SeedCustomer(t, st, "bob@x.com")

	got, err := st.Customers().FindByID(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, bob.ID, got.ID)
	require.Equal(t, bob.Email, got.Email)

	got, err = st.Customers().FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.Equal(t, bob.ID, got.ID)

	exists, err := st.Customers().ExistsByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = st.Customers().ExistsByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.False(t, exists)

	_, err = st.Customers().FindByID(ctx, domain.NewCustomerID())
	require.ErrorIs(t, err, store.ErrNotFound)

	dup := domain.NewCustomer("bob@x.com")
	require.ErrorIs(t, st.Customers().Save(ctx, dup), store.ErrAlreadyExists)
}

func testCompanies(t *testing.T, st store.Store) {
	ctx := context.Background()
	acme := SeedCompany(t, st, "Acme Corp")

	got, err := st.Companies().FindByID(ctx, acme.ID)
	require.NoError(t, err)
	require.Equal(t, acme.Name, got.Name)
	require.Equal(t, domain.CompanySlug("acme-corp"), got.Slug)

	got, err = st.Companies().FindBySlug(ctx, "acme-corp")
	require.NoError(t, err)
	require.Equal(t, acme.ID, got.ID)

	exists, err := st.Companies().ExistsBySlug(ctx, "acme-corp")
	require.NoError(t, err)
	require.True(t, exists)

	_, err = st.Companies().FindBySlug(ctx, "nope")
	require.ErrorIs(t, err, store.ErrNotFound)

	t.Run("update keeps identity", func(t *testing.T) {
		acme.Name = "Acme Corporation"
		acme.UpdatedAt = time.Now().UTC()
		require.NoError(t, st.Companies().Save(ctx, acme))

		got, err := st.Companies().FindByID(ctx, acme.ID)
		require.NoError(t, err)
		require.Equal(t, domain.CompanyName("Acme Corporation"), got.Name)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		dup := domain.NewCompany("Acme Again", "acme-corp")
		require.ErrorIs(t, st.Companies().Save(ctx, dup), store.ErrAlreadyExists)
	})
}

func testMemberships(t *testing.T, st store.Store) {
	ctx := context.Background()
	acme := SeedCompany(t, st, "Acme Corp")
	other := SeedCompany(t, st, "Other Co")
	alice := SeedCustomer(t, st, "alice@x.com")
	bob := SeedCustomer(t, st, "bob@x.com")

	owner := SeedMembership(t, st, alice.ID, acme.ID, domain.RoleOwner)
	member := SeedMembership(t, st, bob.ID, acme.ID, domain.RoleMember)
	SeedMembership(t, st, alice.ID, other.ID, domain.RoleMember)

	got, err := st.Memberships().FindByID(ctx, owner.ID())
	require.NoError(t, err)
	require.Equal(t, owner.CustomerID(), got.CustomerID())
	require.Equal(t, owner.CompanyID(), got.CompanyID())
	require.Equal(t, domain.RoleOwner, got.Role())

	got, err = st.Memberships().FindByCustomerAndCompany(ctx, bob.ID, acme.ID)
	require.NoError(t, err)
	require.Equal(t, member.ID(), got.ID())

	_, err = st.Memberships().FindByCustomerAndCompany(ctx, bob.ID, other.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	all, err := st.Memberships().FindAllByCompany(ctx, acme.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)

	mine, err := st.Memberships().FindAllByCustomer(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	owners, err := st.Memberships().CountByCompanyAndRole(ctx, acme.ID, domain.RoleOwner)
	require.NoError(t, err)
	require.Equal(t, 1, owners)

	exists, err := st.Memberships().ExistsByCustomerAndCompany(ctx, bob.ID, acme.ID)
	require.NoError(t, err)
	require.True(t, exists)

	t.Run("role change persists", func(t *testing.T) {
		require.NoError(t, member.ChangeRole(domain.RoleOwner))
		require.NoError(t, st.Memberships().Save(ctx, member))

		owners, err := st.Memberships().CountByCompanyAndRole(ctx, acme.ID, domain.RoleOwner)
		require.NoError(t, err)
		require.Equal(t, 2, owners)
	})

	t.Run("one membership per customer and company", func(t *testing.T) {
		dup, err := domain.NewMembership(bob.ID, acme.ID, domain.RoleMember)
		require.NoError(t, err)
		require.ErrorIs(t, st.Memberships().Save(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, st.Memberships().Delete(ctx, member.ID()))
		_, err := st.Memberships().FindByID(ctx, member.ID())
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, st.Memberships().Delete(ctx, member.ID()), store.ErrNotFound)
	})
}

func testInvitations(t *testing.T, st store.Store) {
	ctx := context.Background()
	acme := SeedCompany(t, st, "Acme Corp")
	alice := SeedCustomer(t, st, "alice@x.com")

	inv, err := domain.NewInvitation(acme.ID, alice.ID, "bob@x.com", domain.RoleMember)
	require.NoError(t, err)
	require.NoError(t, st.Invitations().Save(ctx, inv))

	got, err := st.Invitations().FindByToken(ctx, inv.Token())
	require.NoError(t, err)
	require.Equal(t, inv.ID(), got.ID())
	require.Equal(t, domain.InvitationPending, got.Status())
	require.Equal(t, domain.Email("bob@x.com"), got.Email())
	require.Equal(t, inv.TokenHash(), got.TokenHash())
	require.WithinDuration(t, inv.ExpiresAt(), got.ExpiresAt(), time.Millisecond)
	require.Empty(t, got.Token())

	_, err = st.Invitations().FindByToken(ctx, inv.TokenHash())
	require.ErrorIs(t, err, store.ErrNotFound, "lookups take the raw token")

	exists, err := st.Invitations().ExistsByCompanyAndEmailAndStatus(ctx, acme.ID, "bob@x.com", domain.InvitationPending)
	require.NoError(t, err)
	require.True(t, exists)

	t.Run("second pending invitation is rejected", func(t *testing.T) {
		dup, err := domain.NewInvitation(acme.ID, alice.ID, "bob@x.com", domain.RoleOwner)
		require.NoError(t, err)
		require.ErrorIs(t, st.Invitations().Save(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("status change persists and frees the slot", func(t *testing.T) {
		require.NoError(t, got.Accept())
		require.NoError(t, st.Invitations().Save(ctx, got))

		reloaded, err := st.Invitations().FindByID(ctx, inv.ID())
		require.NoError(t, err)
		require.Equal(t, domain.InvitationAccepted, reloaded.Status())

		next, err := domain.NewInvitation(acme.ID, alice.ID, "bob@x.com", domain.RoleMember)
		require.NoError(t, err)
		require.NoError(t, st.Invitations().Save(ctx, next))
	})

	t.Run("find all by status", func(t *testing.T) {
		pending, err := st.Invitations().FindAllByStatus(ctx, domain.InvitationPending)
		require.NoError(t, err)
		require.Len(t, pending, 1)

		accepted, err := st.Invitations().FindAllByStatus(ctx, domain.InvitationAccepted)
		require.NoError(t, err)
		require.Len(t, accepted, 1)
	})
}

func testTransactions(t *testing.T, st store.Store) {
	ctx := context.Background()
	errBoom := errors.New("boom")

	t.Run("rollback on error", func(t *testing.T) {
		var id domain.CompanyID
		err := st.WithTx(ctx, func(tx store.Tx) error {
			c := domain.NewCompany("Ghost Co", "ghost-co")
			id = c.ID
			if err := tx.Companies().Save(ctx, c); err != nil {
				return err
			}
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)

		_, err = st.Companies().FindByID(ctx, id)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("commit on success", func(t *testing.T) {
		c := domain.NewCompany("Real Co", "real-co")
		err := st.WithTx(ctx, func(tx store.Tx) error {
			return tx.Companies().Save(ctx, c)
		})
		require.NoError(t, err)

		_, err = st.Companies().FindByID(ctx, c.ID)
		require.NoError(t, err)
	})

	t.Run("nested transactions are refused", func(t *testing.T) {
		err := st.WithTx(ctx, func(tx store.Tx) error {
			return tx.WithTx(ctx, func(store.Tx) error { return nil })
		})
		require.Error(t, err)
	})
}
