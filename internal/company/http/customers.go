package http

import (
	"net/http"

	"github.com/LofoWalker/upkeep/internal/company/service"
	"github.com/LofoWalker/upkeep/pkg/httpx"
	"github.com/LofoWalker/upkeep/pkg/upkeepsdk"
)

type CustomerHandler struct {
	CustomerService *service.CustomerService
}

// HandleRegisterMe godoc
//
//	@Summary		Register the authenticated customer
//	@Description	Creates the customer record for the token subject using the token's email claim. Calling it again returns the existing record.
//	@Tags			Customers
//	@Produce		json
//	@Success		200	{object}	upkeepsdk.CustomerResponse
//	@Failure		400	{object}	upkeepsdk.ErrorResponse	"token has no usable email"
//	@Failure		401	{object}	upkeepsdk.ErrorResponse
//	@Failure		409	{object}	upkeepsdk.ErrorResponse	"email registered to another customer"
//	@Security		BearerAuth
//	@Router			/v1/customers/me [post].
func (h *CustomerHandler) HandleRegisterMe(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r)
	if !ok {
		return
	}

	c, created, err := h.CustomerService.EnsureCustomer(r.Context(), id, httpx.Email(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, upkeepsdk.CustomerResponse{
		ID:      c.ID.String(),
		Email:   c.Email.String(),
		Created: created,
	})
}
