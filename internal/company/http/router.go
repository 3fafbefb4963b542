package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/LofoWalker/upkeep/api/docs" // Swagger docs
	"github.com/LofoWalker/upkeep/internal/company/service"
	"github.com/LofoWalker/upkeep/internal/company/store"
	"github.com/LofoWalker/upkeep/pkg/httpx"
	"github.com/LofoWalker/upkeep/pkg/jwtx"
	"github.com/LofoWalker/upkeep/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	CustomerService   *service.CustomerService
	CompanyService    *service.CompanyService
	MembershipService *service.MembershipService
	InvitationService *service.InvitationService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		middlewares: []httpx.Middleware{
			slogx.HTTPMiddleware(logger),
			httpx.Recover,
		},
	}
}

func (r *Router) ApplyRoutes() {
	r.registerCustomers()
	r.registerCompanies()
	r.registerMembers()
	r.registerInvitations()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			UpKeep Company Access API
//	@version		0.1.0
//	@description	Companies, memberships and invitations for UpKeep customers.
//	@description
//	@description				Access tokens are issued by the identity provider and signed with EdDSA (Ed25519). The token subject is the customer id.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with bearer authentication and a per-customer limit.
func (r *Router) secured(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerCustomers() {
	h := &CustomerHandler{CustomerService: r.CustomerService}

	r.Mux.Handle("POST /v1/customers/me", r.secured(h.HandleRegisterMe, httpx.ModerateLimit))
}

func (r *Router) registerCompanies() {
	h := &CompanyHandler{CompanyService: r.CompanyService}

	r.Mux.Handle("POST /v1/companies", r.secured(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/companies", r.secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/companies/{companyID}/dashboard", r.secured(h.HandleDashboard, httpx.LenientLimit))
}

func (r *Router) registerMembers() {
	h := &MemberHandler{MembershipService: r.MembershipService}

	r.Mux.Handle("GET /v1/companies/{companyID}/members", r.secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("PATCH /v1/companies/{companyID}/members/{membershipID}",
		r.secured(h.HandleUpdateRole, httpx.ModerateLimit))
}

func (r *Router) registerInvitations() {
	h := &InvitationHandler{InvitationService: r.InvitationService}

	r.Mux.Handle("POST /v1/companies/{companyID}/invitations", r.secured(h.HandleInvite, httpx.ModerateLimit))

	// Token routes are limited by IP so a caller cannot walk the token
	// space by rotating accounts.
	r.Mux.Handle("GET /v1/invitations/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/invitations/{token}/accept",
		httpx.Chain(http.HandlerFunc(h.HandleAccept),
			httpx.RateLimitByIP(httpx.StrictLimit),
			httpx.AuthnMiddleware(r.verifier),
		),
	)
	r.Mux.Handle("POST /v1/invitations/{token}/decline",
		httpx.Chain(http.HandlerFunc(h.HandleDecline),
			httpx.RateLimitByIP(httpx.StrictLimit),
			httpx.AuthnMiddleware(r.verifier),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
