package http

import (
	"net/http"

	"github.com/LofoWalker/upkeep/internal/company/domain"
	"github.com/LofoWalker/upkeep/internal/company/service"
	"github.com/LofoWalker/upkeep/pkg/httpx"
	"github.com/LofoWalker/upkeep/pkg/upkeepsdk"
)

type MemberHandler struct {
	MembershipService *service.MembershipService
}

// HandleList godoc
//
//	@Summary		List company members
//	@Description	Members in join order. Only members of the company may list it.
//	@Tags			Members
//	@Produce		json
//	@Param			companyID	path		string	true	"Company id"
//	@Success		200			{object}	upkeepsdk.MemberListResponse
//	@Failure		401			{object}	upkeepsdk.ErrorResponse
//	@Failure		404			{object}	upkeepsdk.ErrorResponse	"not_a_member"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/members [get].
func (h *MemberHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	companyID, ok := pathCompanyID(w, r)
	if !ok {
		return
	}

	members, err := h.MembershipService.GetCompanyMembers(r.Context(), actor, companyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := upkeepsdk.MemberListResponse{Members: make([]upkeepsdk.MemberResponse, 0, len(members))}
	for _, m := range members {
		out.Members = append(out.Members, upkeepsdk.MemberResponse{
			MembershipID: m.MembershipID.String(),
			CustomerID:   m.CustomerID.String(),
			Email:        m.Email,
			Role:         m.Role.String(),
			JoinedAt:     m.JoinedAt,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdateRole godoc
//
//	@Summary		Change a member's role
//	@Description	Owners may promote or demote members. The last owner of a company cannot be demoted.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			companyID		path		string						true	"Company id"
//	@Param			membershipID	path		string						true	"Membership id"
//	@Param			request			body		upkeepsdk.UpdateRoleRequest	true	"New role"
//	@Success		200				{object}	upkeepsdk.RoleChangeResponse
//	@Failure		400				{object}	upkeepsdk.ErrorResponse
//	@Failure		401				{object}	upkeepsdk.ErrorResponse
//	@Failure		403				{object}	upkeepsdk.ErrorResponse	"caller is not an owner"
//	@Failure		404				{object}	upkeepsdk.ErrorResponse
//	@Failure		422				{object}	upkeepsdk.ErrorResponse	"last_owner"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/members/{membershipID} [patch].
func (h *MemberHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	companyID, ok := pathCompanyID(w, r)
	if !ok {
		return
	}
	membershipID, err := domain.ParseMembershipID(r.PathValue("membershipID"))
	if err != nil {
		writeError(w, http.StatusNotFound, upkeepsdk.ErrorCodeNotFound, domain.ErrMembershipNotFound.Error())
		return
	}

	var req upkeepsdk.UpdateRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := h.MembershipService.UpdateMemberRole(r.Context(), service.UpdateRoleCommand{
		ActorID:      actor,
		CompanyID:    companyID,
		MembershipID: membershipID,
		Role:         role,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, upkeepsdk.RoleChangeResponse{
		MembershipID: res.MembershipID.String(),
		PreviousRole: res.PreviousRole.String(),
		NewRole:      res.NewRole.String(),
	})
}
