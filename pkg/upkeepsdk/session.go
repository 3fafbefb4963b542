package upkeepsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session performs operations on behalf of one authenticated customer.
type Session struct {
	client      *SDKClient
	accessToken string
}

func (s *Session) do(ctx context.Context, method, path string, body, target any, expected int) error {
	return s.client.do(ctx, s.accessToken, method, path, body, target, expected)
}

// RegisterMe creates the customer record for the token's subject if it
// does not exist yet.
func (s *Session) RegisterMe(ctx context.Context) (*CustomerResponse, error) {
	var out CustomerResponse
	if err := s.do(ctx, http.MethodPost, "/v1/customers/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCompany creates a company owned by the caller.
func (s *Session) CreateCompany(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	var out CompanyResponse
	if err := s.do(ctx, http.MethodPost, "/v1/companies", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCompanies returns every company the caller belongs to.
func (s *Session) ListCompanies(ctx context.Context) ([]CompanyResponse, error) {
	var out CompanyListResponse
	if err := s.do(ctx, http.MethodGet, "/v1/companies", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Companies, nil
}

func (s *Session) GetDashboard(ctx context.Context, companyID string) (*DashboardResponse, error) {
	var out DashboardResponse
	path := "/v1/companies/" + url.PathEscape(companyID) + "/dashboard"
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListMembers(ctx context.Context, companyID string) ([]MemberResponse, error) {
	var out MemberListResponse
	path := "/v1/companies/" + url.PathEscape(companyID) + "/members"
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Members, nil
}

// UpdateMemberRole changes a member's role. Only owners may call it.
func (s *Session) UpdateMemberRole(ctx context.Context, companyID, membershipID, role string) (*RoleChangeResponse, error) {
	var out RoleChangeResponse
	path := "/v1/companies/" + url.PathEscape(companyID) + "/members/" + url.PathEscape(membershipID)
	if err := s.do(ctx, http.MethodPatch, path, UpdateRoleRequest{Role: role}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// InviteMember invites an email address to the company. Only owners may
// call it.
func (s *Session) InviteMember(ctx context.Context, companyID string, req InviteRequest) (*InvitationResponse, error) {
	var out InvitationResponse
	path := "/v1/companies/" + url.PathEscape(companyID) + "/invitations"
	if err := s.do(ctx, http.MethodPost, path, req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) AcceptInvitation(ctx context.Context, token string) (*AcceptInvitationResponse, error) {
	var out AcceptInvitationResponse
	path := "/v1/invitations/" + url.PathEscape(token) + "/accept"
	if err := s.do(ctx, http.MethodPost, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeclineInvitation(ctx context.Context, token string) error {
	path := "/v1/invitations/" + url.PathEscape(token) + "/decline"
	return s.do(ctx, http.MethodPost, path, nil, nil, http.StatusNoContent)
}
