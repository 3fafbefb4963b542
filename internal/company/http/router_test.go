package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LofoWalker/upkeep/internal/company/domain"
	companyhttp "github.com/LofoWalker/upkeep/internal/company/http"
	"github.com/LofoWalker/upkeep/internal/company/service"
	"github.com/LofoWalker/upkeep/internal/company/store/drivers/sqlite"
	"github.com/LofoWalker/upkeep/pkg/cryptox"
	"github.com/LofoWalker/upkeep/pkg/jwtx"
	"github.com/LofoWalker/upkeep/pkg/upkeepsdk"
)

const testIssuer = "https://id.upkeep.test"

type capturingNotifier struct {
	mu     sync.Mutex
	tokens map[domain.Email]string
}

func (n *capturingNotifier) SendInvitationEmail(_ context.Context, email domain.Email, token string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tokens[email] = token
}

func (n *capturingNotifier) SendWelcomeEmail(context.Context, domain.Email) {}

func (n *capturingNotifier) token(t *testing.T, email string) string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	tok, ok := n.tokens[domain.Email(email)]
	require.True(t, ok, "no invitation sent to %s", email)
	return tok
}

type testServer struct {
	client   *upkeepsdk.SDKClient
	signer   *jwtx.EdDSASigner
	notifier *capturingNotifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test-key", pemKey)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddJWK(signer.PublicJWK()))
	verifier := jwtx.NewVerifierEdDSA(keys, jwtx.VerifyOptions{Issuer: testIssuer})

	n := &capturingNotifier{tokens: map[domain.Email]string{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := companyhttp.NewRouter(keys, verifier, "test", st, logger)
	r.CustomerService = &service.CustomerService{Store: st, Notifier: n}
	r.CompanyService = &service.CompanyService{Store: st}
	r.MembershipService = &service.MembershipService{Store: st}
	r.InvitationService = &service.InvitationService{Store: st, Notifier: n}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{
		client:   upkeepsdk.NewSDKClient(srv.URL),
		signer:   signer,
		notifier: n,
	}
}

// login registers a new customer and returns their session.
func (s *testServer) login(t *testing.T, email string) (*upkeepsdk.Session, string) {
	t.Helper()

	id := domain.NewCustomerID().String()
	tok, err := s.signer.Sign(jwtx.NewClaims(id, email, testIssuer, nil, time.Hour, time.Now()))
	require.NoError(t, err)

	sess := s.client.NewSession(tok)
	me, err := sess.RegisterMe(context.Background())
	require.NoError(t, err)
	require.True(t, me.Created)
	require.Equal(t, id, me.ID)
	return sess, id
}

func requireCode(t *testing.T, err error, status int, code string) {
	t.Helper()
	var apiErr *upkeepsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}

func TestInvitationFlow(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	alice, _ := s.login(t, "alice@x.com")
	bob, bobID := s.login(t, "bob@x.com")

	acme, err := alice.CreateCompany(ctx, upkeepsdk.CreateCompanyRequest{Name: "Acme Corp"})
	require.NoError(t, err)
	require.Equal(t, "acme-corp", acme.Slug)
	require.Equal(t, upkeepsdk.RoleOwner, acme.Role)

	inv, err := alice.InviteMember(ctx, acme.CompanyID, upkeepsdk.InviteRequest{Email: "Bob@X.com", Role: upkeepsdk.RoleMember})
	require.NoError(t, err)
	require.Equal(t, "bob@x.com", inv.Email)
	require.Equal(t, upkeepsdk.InvitationPending, inv.Status)

	_, err = alice.InviteMember(ctx, acme.CompanyID, upkeepsdk.InviteRequest{Email: "bob@x.com", Role: upkeepsdk.RoleMember})
	requireCode(t, err, http.StatusConflict, upkeepsdk.ErrorCodeConflict)

	token := s.notifier.token(t, "bob@x.com")

	details, err := s.client.GetInvitation(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", details.CompanyName)
	require.False(t, details.IsExpired)

	accepted, err := bob.AcceptInvitation(ctx, token)
	require.NoError(t, err)
	require.Equal(t, acme.CompanyID, accepted.CompanyID)
	require.Equal(t, upkeepsdk.RoleMember, accepted.Role)

	_, err = bob.AcceptInvitation(ctx, token)
	requireCode(t, err, http.StatusConflict, upkeepsdk.ErrorCodeInvalidState)

	err = bob.DeclineInvitation(ctx, token)
	requireCode(t, err, http.StatusConflict, upkeepsdk.ErrorCodeInvalidState)

	_, err = s.client.GetInvitation(ctx, "no-such-token")
	requireCode(t, err, http.StatusNotFound, upkeepsdk.ErrorCodeNotFound)

	members, err := bob.ListMembers(ctx, acme.CompanyID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, bobID, members[1].CustomerID)

	dash, err := bob.GetDashboard(ctx, acme.CompanyID)
	require.NoError(t, err)
	require.Equal(t, upkeepsdk.RoleMember, dash.UserRole)
	require.Equal(t, 2, dash.Stats.TotalMembers)

	companies, err := bob.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 1)
}

func TestDeclineInvitation(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	alice, _ := s.login(t, "alice@x.com")
	bob, _ := s.login(t, "bob@x.com")

	acme, err := alice.CreateCompany(ctx, upkeepsdk.CreateCompanyRequest{Name: "Acme Corp"})
	require.NoError(t, err)
	_, err = alice.InviteMember(ctx, acme.CompanyID, upkeepsdk.InviteRequest{Email: "bob@x.com", Role: upkeepsdk.RoleOwner})
	require.NoError(t, err)
	token := s.notifier.token(t, "bob@x.com")

	require.NoError(t, bob.DeclineInvitation(ctx, token))

	details, err := s.client.GetInvitation(ctx, token)
	require.NoError(t, err)
	require.Equal(t, upkeepsdk.InvitationDeclined, details.Status)

	_, err = bob.AcceptInvitation(ctx, token)
	requireCode(t, err, http.StatusConflict, upkeepsdk.ErrorCodeInvalidState)
}

func TestMemberRoles(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	alice, _ := s.login(t, "alice@x.com")
	bob, _ := s.login(t, "bob@x.com")

	acme, err := alice.CreateCompany(ctx, upkeepsdk.CreateCompanyRequest{Name: "Acme Corp"})
	require.NoError(t, err)

	_, err = alice.UpdateMemberRole(ctx, acme.CompanyID, acme.MembershipID, upkeepsdk.RoleMember)
	requireCode(t, err, http.StatusUnprocessableEntity, upkeepsdk.ErrorCodeLastOwner)

	_, err = alice.InviteMember(ctx, acme.CompanyID, upkeepsdk.InviteRequest{Email: "bob@x.com", Role: upkeepsdk.RoleMember})
	require.NoError(t, err)
	joined, err := bob.AcceptInvitation(ctx, s.notifier.token(t, "bob@x.com"))
	require.NoError(t, err)

	_, err = bob.UpdateMemberRole(ctx, acme.CompanyID, acme.MembershipID, upkeepsdk.RoleMember)
	requireCode(t, err, http.StatusForbidden, upkeepsdk.ErrorCodeForbidden)

	_, err = bob.InviteMember(ctx, acme.CompanyID, upkeepsdk.InviteRequest{Email: "carol@x.com", Role: upkeepsdk.RoleMember})
	requireCode(t, err, http.StatusForbidden, upkeepsdk.ErrorCodeForbidden)

	_, err = alice.UpdateMemberRole(ctx, acme.CompanyID, joined.MembershipID, "ADMIN")
	requireCode(t, err, http.StatusBadRequest, upkeepsdk.ErrorCodeInvalidRequest)

	change, err := alice.UpdateMemberRole(ctx, acme.CompanyID, joined.MembershipID, upkeepsdk.RoleOwner)
	require.NoError(t, err)
	require.Equal(t, upkeepsdk.RoleMember, change.PreviousRole)
	require.Equal(t, upkeepsdk.RoleOwner, change.NewRole)

	_, err = bob.UpdateMemberRole(ctx, acme.CompanyID, acme.MembershipID, upkeepsdk.RoleMember)
	require.NoError(t, err, "a second owner can demote the first")
}

func TestOutsiders(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	alice, _ := s.login(t, "alice@x.com")
	mallory, _ := s.login(t, "mallory@x.com")

	acme, err := alice.CreateCompany(ctx, upkeepsdk.CreateCompanyRequest{Name: "Acme Corp"})
	require.NoError(t, err)

	_, err = mallory.ListMembers(ctx, acme.CompanyID)
	requireCode(t, err, http.StatusNotFound, upkeepsdk.ErrorCodeNotAMember)

	_, err = mallory.GetDashboard(ctx, acme.CompanyID)
	requireCode(t, err, http.StatusNotFound, upkeepsdk.ErrorCodeNotAMember)

	_, err = mallory.GetDashboard(ctx, domain.NewCompanyID().String())
	requireCode(t, err, http.StatusNotFound, upkeepsdk.ErrorCodeNotFound)

	_, err = mallory.GetDashboard(ctx, "not-a-uuid")
	requireCode(t, err, http.StatusNotFound, upkeepsdk.ErrorCodeNotFound)

	_, err = mallory.CreateCompany(ctx, upkeepsdk.CreateCompanyRequest{Name: "Acme Corp"})
	requireCode(t, err, http.StatusConflict, upkeepsdk.ErrorCodeConflict)

	_, err = mallory.CreateCompany(ctx, upkeepsdk.CreateCompanyRequest{Name: "x"})
	requireCode(t, err, http.StatusBadRequest, upkeepsdk.ErrorCodeInvalidRequest)
}

func TestAuthentication(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	_, err := s.client.NewSession("garbage").ListCompanies(ctx)
	requireCode(t, err, http.StatusUnauthorized, upkeepsdk.ErrorCodeInvalidToken)

	_, err = s.client.NewSession("").ListCompanies(ctx)
	requireCode(t, err, http.StatusUnauthorized, upkeepsdk.ErrorCodeInvalidToken)

	tok, err := s.signer.Sign(jwtx.NewClaims("not-a-uuid", "a@x.com", testIssuer, nil, time.Hour, time.Now()))
	require.NoError(t, err)
	_, err = s.client.NewSession(tok).ListCompanies(ctx)
	requireCode(t, err, http.StatusUnauthorized, upkeepsdk.ErrorCodeInvalidToken)

	tok, err = s.signer.Sign(jwtx.NewClaims(domain.NewCustomerID().String(), "", testIssuer, nil, time.Hour, time.Now()))
	require.NoError(t, err)
	_, err = s.client.NewSession(tok).RegisterMe(ctx)
	requireCode(t, err, http.StatusBadRequest, upkeepsdk.ErrorCodeInvalidRequest)
}

func TestHealth(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	live, err := s.client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := s.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Keys)
}
