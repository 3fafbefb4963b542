package upkeepsdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LofoWalker/upkeep/pkg/upkeepsdk"
)

func TestSessionSendsBearerAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/v1/companies/c1/members/m1", r.URL.Path)

		var req upkeepsdk.UpdateRoleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, upkeepsdk.RoleOwner, req.Role)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(upkeepsdk.RoleChangeResponse{
			MembershipID: "m1",
			PreviousRole: upkeepsdk.RoleMember,
			NewRole:      upkeepsdk.RoleOwner,
		})
	}))
	defer srv.Close()

	s := upkeepsdk.NewSDKClient(srv.URL + "/").NewSession("tok")
	out, err := s.UpdateMemberRole(context.Background(), "c1", "m1", upkeepsdk.RoleOwner)
	require.NoError(t, err)
	require.Equal(t, upkeepsdk.RoleMember, out.PreviousRole)
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/invitations/gone":
			w.WriteHeader(http.StatusGone)
			_ = json.NewEncoder(w).Encode(upkeepsdk.ErrorResponse{Error: "expired", ErrorDescription: "invitation has expired"})
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		}
	}))
	defer srv.Close()

	c := upkeepsdk.NewSDKClient(srv.URL)

	_, err := c.GetInvitation(context.Background(), "gone")
	require.True(t, upkeepsdk.IsCode(err, upkeepsdk.ErrorCodeExpired))

	var apiErr *upkeepsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusGone, apiErr.StatusCode)
	require.Equal(t, "invitation has expired", apiErr.Description)

	_, err = c.GetLiveness(context.Background())
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.False(t, upkeepsdk.IsCode(err, upkeepsdk.ErrorCodeExpired))
}

func TestDeclineExpectsNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/invitations/abc/decline", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := upkeepsdk.NewSDKClient(srv.URL).NewSession("tok").DeclineInvitation(context.Background(), "abc")
	require.NoError(t, err)
}
