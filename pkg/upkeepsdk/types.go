package upkeepsdk

import "time"

// Roles a membership can hold.
const (
	RoleOwner  = "OWNER"
	RoleMember = "MEMBER"
)

// Invitation statuses.
const (
	InvitationPending  = "PENDING"
	InvitationAccepted = "ACCEPTED"
	InvitationDeclined = "DECLINED"
	InvitationExpired  = "EXPIRED"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error            string `json:"error"                       example:"invalid_request"`
	ErrorDescription string `json:"error_description,omitempty" example:"validation failed: invalid email"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"           example:"ok"`
	Uptime  string        `json:"uptime"           example:"1h2m3s"`
	Version string        `json:"version"          example:"0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database" example:"ok"`
	Keys     string `json:"keys"     example:"ok"`
}

// CustomerResponse describes the authenticated customer.
type CustomerResponse struct {
	ID      string `json:"id"      example:"5b7c3f7e-3f0a-4a53-9c43-5e0c4c1a2f10"`
	Email   string `json:"email"   example:"alice@example.com"`
	Created bool   `json:"created" example:"true"`
}

type CreateCompanyRequest struct {
	Name string `json:"name"           example:"Acme Corp"`
	Slug string `json:"slug,omitempty" example:"acme-corp"`
}

// CompanyResponse is a company as seen by one of its members.
type CompanyResponse struct {
	CompanyID    string `json:"company_id"`
	Name         string `json:"name"          example:"Acme Corp"`
	Slug         string `json:"slug"          example:"acme-corp"`
	MembershipID string `json:"membership_id"`
	Role         string `json:"role"          example:"OWNER"`
}

type CompanyListResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

type DashboardStats struct {
	TotalMembers   int  `json:"total_members"   example:"3"`
	HasBudget      bool `json:"has_budget"`
	HasPackages    bool `json:"has_packages"`
	HasAllocations bool `json:"has_allocations"`
}

type DashboardResponse struct {
	CompanyID string         `json:"company_id"`
	Name      string         `json:"name"      example:"Acme Corp"`
	Slug      string         `json:"slug"      example:"acme-corp"`
	UserRole  string         `json:"user_role" example:"MEMBER"`
	Stats     DashboardStats `json:"stats"`
}

type MemberResponse struct {
	MembershipID string    `json:"membership_id"`
	CustomerID   string    `json:"customer_id"`
	Email        string    `json:"email"         example:"bob@example.com"`
	Role         string    `json:"role"          example:"MEMBER"`
	JoinedAt     time.Time `json:"joined_at"`
}

type MemberListResponse struct {
	Members []MemberResponse `json:"members"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" example:"OWNER"`
}

type RoleChangeResponse struct {
	MembershipID string `json:"membership_id"`
	PreviousRole string `json:"previous_role" example:"MEMBER"`
	NewRole      string `json:"new_role"      example:"OWNER"`
}

type InviteRequest struct {
	Email string `json:"email" example:"bob@example.com"`
	Role  string `json:"role"  example:"MEMBER"`
}

// InvitationResponse is returned to the inviter. The token itself only
// travels in the invitation email.
type InvitationResponse struct {
	InvitationID string    `json:"invitation_id"`
	Email        string    `json:"email"         example:"bob@example.com"`
	Role         string    `json:"role"          example:"MEMBER"`
	Status       string    `json:"status"        example:"PENDING"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// InvitationDetailsResponse is the public preview of an invitation link.
type InvitationDetailsResponse struct {
	InvitationID string    `json:"invitation_id"`
	CompanyName  string    `json:"company_name" example:"Acme Corp"`
	Email        string    `json:"email"        example:"bob@example.com"`
	Role         string    `json:"role"         example:"MEMBER"`
	Status       string    `json:"status"       example:"PENDING"`
	IsExpired    bool      `json:"is_expired"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type AcceptInvitationResponse struct {
	CompanyID    string `json:"company_id"`
	CompanyName  string `json:"company_name"  example:"Acme Corp"`
	CompanySlug  string `json:"company_slug"  example:"acme-corp"`
	MembershipID string `json:"membership_id"`
	Role         string `json:"role"          example:"MEMBER"`
}
