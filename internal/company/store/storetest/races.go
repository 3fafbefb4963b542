package storetest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LofoWalker/upkeep/internal/company/domain"
	"github.com/LofoWalker/upkeep/internal/company/notify"
	"github.com/LofoWalker/upkeep/internal/company/service"
	"github.com/LofoWalker/upkeep/internal/company/store"
)

// RunRaces drives the write use cases concurrently against stores whose
// connections really run in parallel. The transaction boundary is the only
// thing keeping these correct.
func RunRaces(t *testing.T, newStore Factory, rounds int) {
	t.Run("cross demotions keep an owner", func(t *testing.T) {
		for range rounds {
			raceCrossDemotions(t, newStore(t))
		}
	})
	t.Run("parallel accepts create one membership", func(t *testing.T) {
		for range rounds {
			raceAccepts(t, newStore(t), 8)
		}
	})
}

// raceCrossDemotions has two owners demote each other at the same time.
func raceCrossDemotions(t *testing.T, st store.Store) {
	t.Helper()
	ctx := context.Background()
	memberships := &service.MembershipService{Store: st}

	alice := SeedCustomer(t, st, "alice@x.com")
	acme, err := (&service.CompanyService{Store: st}).Create(ctx, service.CreateCompanyCommand{
		ActorID: alice.ID,
		Name:    "Acme Corp",
	})
	require.NoError(t, err)
	bob := SeedCustomer(t, st, "bob@x.com")
	bobM := SeedMembership(t, st, bob.ID, acme.CompanyID, domain.RoleOwner)

	cmds := []service.UpdateRoleCommand{
		{ActorID: alice.ID, CompanyID: acme.CompanyID, MembershipID: bobM.ID(), Role: domain.RoleMember},
		{ActorID: bob.ID, CompanyID: acme.CompanyID, MembershipID: acme.MembershipID, Role: domain.RoleMember},
	}
	errs := make([]error, len(cmds))

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, cmd := range cmds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, errs[i] = memberships.UpdateMemberRole(ctx, cmd)
		}()
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	require.LessOrEqual(t, succeeded, 1, "both owners were demoted")

	owners, err := st.Memberships().CountByCompanyAndRole(ctx, acme.CompanyID, domain.RoleOwner)
	require.NoError(t, err)
	require.Equal(t, 2-succeeded, owners)
	require.GreaterOrEqual(t, owners, 1)
}

// raceAccepts has one customer redeem the same token from several requests.
func raceAccepts(t *testing.T, st store.Store, workers int) {
	t.Helper()
	ctx := context.Background()

	var token string
	invitations := &service.InvitationService{
		Store:    st,
		Notifier: tokenCapture{token: &token},
	}

	alice := SeedCustomer(t, st, "alice@x.com")
	acme, err := (&service.CompanyService{Store: st}).Create(ctx, service.CreateCompanyCommand{
		ActorID: alice.ID,
		Name:    "Acme Corp",
	})
	require.NoError(t, err)

	_, err = invitations.Invite(ctx, service.InviteCommand{
		ActorID:   alice.ID,
		CompanyID: acme.CompanyID,
		Email:     "bob@x.com",
		Role:      domain.RoleMember,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	bob := domain.NewCustomerID()
	errs := make([]error, workers)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, errs[i] = invitations.Accept(ctx, bob, token)
		}()
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	require.Equal(t, 1, succeeded, "errors: %v", errs)

	members, err := st.Memberships().FindAllByCompany(ctx, acme.CompanyID)
	require.NoError(t, err)
	require.Len(t, members, 2)
}

// tokenCapture keeps the raw token of the last invitation sent.
type tokenCapture struct {
	notify.Nop
	token *string
}

func (c tokenCapture) SendInvitationEmail(_ context.Context, _ domain.Email, token string) {
	*c.token = token
}
