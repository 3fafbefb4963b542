package http

import (
	"net/http"

	"github.com/LofoWalker/upkeep/internal/company/domain"
	"github.com/LofoWalker/upkeep/internal/company/service"
	"github.com/LofoWalker/upkeep/pkg/httpx"
	"github.com/LofoWalker/upkeep/pkg/upkeepsdk"
)

type InvitationHandler struct {
	InvitationService *service.InvitationService
}

// HandleInvite godoc
//
//	@Summary		Invite someone to a company
//	@Description	Owners invite an email address with a role. The token is only sent by email.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			companyID	path		string					true	"Company id"
//	@Param			request		body		upkeepsdk.InviteRequest	true	"Invitation"
//	@Success		201			{object}	upkeepsdk.InvitationResponse
//	@Failure		400			{object}	upkeepsdk.ErrorResponse
//	@Failure		401			{object}	upkeepsdk.ErrorResponse
//	@Failure		403			{object}	upkeepsdk.ErrorResponse	"caller is not an owner"
//	@Failure		404			{object}	upkeepsdk.ErrorResponse	"not_a_member"
//	@Failure		409			{object}	upkeepsdk.ErrorResponse	"pending invitation exists"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/invitations [post].
func (h *InvitationHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	companyID, ok := pathCompanyID(w, r)
	if !ok {
		return
	}

	var req upkeepsdk.InviteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := h.InvitationService.Invite(r.Context(), service.InviteCommand{
		ActorID:   actor,
		CompanyID: companyID,
		Email:     req.Email,
		Role:      role,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, upkeepsdk.InvitationResponse{
		InvitationID: res.InvitationID.String(),
		Email:        res.Email.String(),
		Role:         res.Role.String(),
		Status:       string(res.Status),
		ExpiresAt:    res.ExpiresAt,
	})
}

// HandleGet godoc
//
//	@Summary		Preview an invitation
//	@Description	Public. Shows the company and role behind an invitation link without changing it.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	path		string	true	"Invitation token"
//	@Success		200		{object}	upkeepsdk.InvitationDetailsResponse
//	@Failure		404		{object}	upkeepsdk.ErrorResponse
//	@Router			/v1/invitations/{token} [get].
func (h *InvitationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.InvitationService.Get(r.Context(), r.PathValue("token"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, upkeepsdk.InvitationDetailsResponse{
		InvitationID: d.InvitationID.String(),
		CompanyName:  d.CompanyName.String(),
		Email:        d.Email.String(),
		Role:         d.Role.String(),
		Status:       string(d.Status),
		IsExpired:    d.IsExpired,
		ExpiresAt:    d.ExpiresAt,
	})
}

// HandleAccept godoc
//
//	@Summary		Accept an invitation
//	@Description	Joins the caller to the inviting company with the invited role.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	path		string	true	"Invitation token"
//	@Success		200		{object}	upkeepsdk.AcceptInvitationResponse
//	@Failure		401		{object}	upkeepsdk.ErrorResponse
//	@Failure		404		{object}	upkeepsdk.ErrorResponse
//	@Failure		409		{object}	upkeepsdk.ErrorResponse	"invalid_state or already a member"
//	@Failure		410		{object}	upkeepsdk.ErrorResponse	"expired"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{token}/accept [post].
func (h *InvitationHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	res, err := h.InvitationService.Accept(r.Context(), actor, r.PathValue("token"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, upkeepsdk.AcceptInvitationResponse{
		CompanyID:    res.CompanyID.String(),
		CompanyName:  res.CompanyName.String(),
		CompanySlug:  res.CompanySlug.String(),
		MembershipID: res.MembershipID.String(),
		Role:         res.Role.String(),
	})
}

// HandleDecline godoc
//
//	@Summary	Decline an invitation
//	@Tags		Invitations
//	@Param		token	path	string	true	"Invitation token"
//	@Success	204
//	@Failure	401	{object}	upkeepsdk.ErrorResponse
//	@Failure	404	{object}	upkeepsdk.ErrorResponse
//	@Failure	409	{object}	upkeepsdk.ErrorResponse	"invalid_state"
//	@Security	BearerAuth
//	@Router		/v1/invitations/{token}/decline [post].
func (h *InvitationHandler) HandleDecline(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	if err := h.InvitationService.Decline(r.Context(), actor, r.PathValue("token")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
