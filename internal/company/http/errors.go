package http

import (
	"errors"
	"net/http"

	"github.com/LofoWalker/upkeep/internal/company/domain"
	"github.com/LofoWalker/upkeep/pkg/httpx"
	"github.com/LofoWalker/upkeep/pkg/slogx"
	"github.com/LofoWalker/upkeep/pkg/upkeepsdk"
)

func writeError(w http.ResponseWriter, status int, code, desc string) {
	httpx.WriteJSON(w, status, upkeepsdk.ErrorResponse{
		Error:            code,
		ErrorDescription: desc,
	})
}

// writeServiceError maps a use case error onto a status and error code.
// Unexpected errors are logged and reported without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, upkeepsdk.ErrorCodeInvalidRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusForbidden, upkeepsdk.ErrorCodeForbidden, err.Error())
	case errors.Is(err, domain.ErrNotAMember):
		writeError(w, http.StatusNotFound, upkeepsdk.ErrorCodeNotAMember, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, upkeepsdk.ErrorCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, upkeepsdk.ErrorCodeConflict, err.Error())
	case errors.Is(err, domain.ErrExpired):
		writeError(w, http.StatusGone, upkeepsdk.ErrorCodeExpired, err.Error())
	case errors.Is(err, domain.ErrLastOwner):
		writeError(w, http.StatusUnprocessableEntity, upkeepsdk.ErrorCodeLastOwner, err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		writeError(w, http.StatusConflict, upkeepsdk.ErrorCodeInvalidState, err.Error())
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, upkeepsdk.ErrorCodeServerError, "internal error")
	}
}

// actorID reads the authenticated customer id placed in the context by
// httpx.AuthnMiddleware.
func actorID(w http.ResponseWriter, r *http.Request) (domain.CustomerID, bool) {
	id, err := domain.ParseCustomerID(httpx.UserID(r.Context()))
	if err != nil {
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="subject is not a customer id"`)
		writeError(w, http.StatusUnauthorized, upkeepsdk.ErrorCodeInvalidToken, "subject is not a customer id")
		return domain.CustomerID{}, false
	}
	return id, true
}

func pathCompanyID(w http.ResponseWriter, r *http.Request) (domain.CompanyID, bool) {
	id, err := domain.ParseCompanyID(r.PathValue("companyID"))
	if err != nil {
		writeError(w, http.StatusNotFound, upkeepsdk.ErrorCodeNotFound, domain.ErrCompanyNotFound.Error())
		return domain.CompanyID{}, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(r, dst); err != nil {
		writeError(w, http.StatusBadRequest, upkeepsdk.ErrorCodeInvalidRequest, err.Error())
		return false
	}
	return true
}
