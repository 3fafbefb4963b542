package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LofoWalker/upkeep/internal/company/domain"
	"github.com/LofoWalker/upkeep/internal/company/service"
	"github.com/LofoWalker/upkeep/internal/company/store"
	"github.com/LofoWalker/upkeep/internal/company/store/drivers/sqlite"
	"github.com/LofoWalker/upkeep/internal/company/store/storetest"
)

type sentInvitation struct {
	Email domain.Email
	Token string
}

type recordingNotifier struct {
	mu          sync.Mutex
	invitations []sentInvitation
	welcomes    []domain.Email
}

func (n *recordingNotifier) SendInvitationEmail(_ context.Context, email domain.Email, token string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.invitations = append(n.invitations, sentInvitation{Email: email, Token: token})
}

func (n *recordingNotifier) SendWelcomeEmail(_ context.Context, email domain.Email) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcomes = append(n.welcomes, email)
}

func (n *recordingNotifier) lastToken(t *testing.T) string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.invitations, "no invitation email sent")
	return n.invitations[len(n.invitations)-1].Token
}

type testEnv struct {
	store    store.Store
	notifier *recordingNotifier

	invitations *service.InvitationService
	memberships *service.MembershipService
	companies   *service.CompanyService
	customers   *service.CustomerService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	n := &recordingNotifier{}
	return &testEnv{
		store:       st,
		notifier:    n,
		invitations: &service.InvitationService{Store: st, Notifier: n},
		memberships: &service.MembershipService{Store: st},
		companies:   &service.CompanyService{Store: st},
		customers:   &service.CustomerService{Store: st, Notifier: n},
	}
}

// companyWithOwner creates a company owned by a fresh customer.
func (e *testEnv) companyWithOwner(t *testing.T, email string) (domain.Customer, service.CompanyMembership) {
	t.Helper()

	owner := storetest.SeedCustomer(t, e.store, email)
	c, err := e.companies.Create(context.Background(), service.CreateCompanyCommand{
		ActorID: owner.ID,
		Name:    "Acme Corp",
	})
	require.NoError(t, err)
	return owner, c
}

func (e *testEnv) ownerCount(t *testing.T, companyID domain.CompanyID) int {
	t.Helper()
	n, err := e.store.Memberships().CountByCompanyAndRole(context.Background(), companyID, domain.RoleOwner)
	require.NoError(t, err)
	return n
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
