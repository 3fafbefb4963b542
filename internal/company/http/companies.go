package http

import (
	"net/http"

	"github.com/LofoWalker/upkeep/internal/company/service"
	"github.com/LofoWalker/upkeep/pkg/httpx"
	"github.com/LofoWalker/upkeep/pkg/upkeepsdk"
)

type CompanyHandler struct {
	CompanyService *service.CompanyService
}

func toCompanyResponse(c service.CompanyMembership) upkeepsdk.CompanyResponse {
	return upkeepsdk.CompanyResponse{
		CompanyID:    c.CompanyID.String(),
		Name:         c.Name.String(),
		Slug:         c.Slug.String(),
		MembershipID: c.MembershipID.String(),
		Role:         c.Role.String(),
	}
}

// HandleCreate godoc
//
//	@Summary		Create a company
//	@Description	Creates a company and makes the caller its first owner. The slug is derived from the name when omitted.
//	@Tags			Companies
//	@Accept			json
//	@Produce		json
//	@Param			request	body		upkeepsdk.CreateCompanyRequest	true	"Company"
//	@Success		201		{object}	upkeepsdk.CompanyResponse
//	@Failure		400		{object}	upkeepsdk.ErrorResponse
//	@Failure		401		{object}	upkeepsdk.ErrorResponse
//	@Failure		409		{object}	upkeepsdk.ErrorResponse	"slug taken"
//	@Security		BearerAuth
//	@Router			/v1/companies [post].
func (h *CompanyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	var req upkeepsdk.CreateCompanyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.CompanyService.Create(r.Context(), service.CreateCompanyCommand{
		ActorID: actor,
		Name:    req.Name,
		Slug:    req.Slug,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toCompanyResponse(res))
}

// HandleList godoc
//
//	@Summary	List the caller's companies
//	@Tags		Companies
//	@Produce	json
//	@Success	200	{object}	upkeepsdk.CompanyListResponse
//	@Failure	401	{object}	upkeepsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/companies [get].
func (h *CompanyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	companies, err := h.CompanyService.GetUserCompanies(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := upkeepsdk.CompanyListResponse{Companies: make([]upkeepsdk.CompanyResponse, 0, len(companies))}
	for _, c := range companies {
		out.Companies = append(out.Companies, toCompanyResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleDashboard godoc
//
//	@Summary	Company dashboard
//	@Tags		Companies
//	@Produce	json
//	@Param		companyID	path		string	true	"Company id"
//	@Success	200			{object}	upkeepsdk.DashboardResponse
//	@Failure	401			{object}	upkeepsdk.ErrorResponse
//	@Failure	404			{object}	upkeepsdk.ErrorResponse	"not_found or not_a_member"
//	@Security	BearerAuth
//	@Router		/v1/companies/{companyID}/dashboard [get].
func (h *CompanyHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	companyID, ok := pathCompanyID(w, r)
	if !ok {
		return
	}

	d, err := h.CompanyService.Dashboard(r.Context(), actor, companyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, upkeepsdk.DashboardResponse{
		CompanyID: d.CompanyID.String(),
		Name:      d.Name.String(),
		Slug:      d.Slug.String(),
		UserRole:  d.UserRole.String(),
		Stats: upkeepsdk.DashboardStats{
			TotalMembers:   d.Stats.TotalMembers,
			HasBudget:      d.Stats.HasBudget,
			HasPackages:    d.Stats.HasPackages,
			HasAllocations: d.Stats.HasAllocations,
		},
	})
}
