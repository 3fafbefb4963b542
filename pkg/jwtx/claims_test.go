package jwtx

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewClaims(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	c := NewClaims("cust-1", "a@x.com", "https://id.upkeep.dev", []string{"upkeep"}, time.Hour, now)

	require.Equal(t, "cust-1", c.Subject)
	require.Equal(t, "a@x.com", c.Email)
	require.Equal(t, "https://id.upkeep.dev", c.Issuer)
	require.Equal(t, jwt.ClaimStrings{"upkeep"}, c.Audience)
	require.Equal(t, now.Add(time.Hour), c.ExpiresAt.Time)
	require.NotEmpty(t, c.ID)
	require.NotEqual(t, c.ID, NewJTI())
}

func TestValidateIssuer(t *testing.T) {
	c := Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "a"}}

	require.NoError(t, c.ValidateIssuer(""))
	require.NoError(t, c.ValidateIssuer("a"))
	require.ErrorIs(t, c.ValidateIssuer("b"), ErrIssuer)
}

func TestValidateAudience(t *testing.T) {
	c := Claims{RegisteredClaims: jwt.RegisteredClaims{Audience: jwt.ClaimStrings{"x", "y"}}}

	require.NoError(t, c.ValidateAudience(nil))
	require.NoError(t, c.ValidateAudience([]string{"z", "y"}))
	require.ErrorIs(t, c.ValidateAudience([]string{"z"}), ErrAudience)
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		exp     time.Time
		nbf     time.Time
		wantErr error
	}{
		{name: "valid", exp: now.Add(time.Minute), nbf: now.Add(-time.Minute)},
		{name: "expired within leeway", exp: now.Add(-10 * time.Second), nbf: now.Add(-time.Hour)},
		{name: "expired", exp: now.Add(-time.Minute), nbf: now.Add(-time.Hour), wantErr: ErrExpired},
		{name: "not yet valid", exp: now.Add(time.Hour), nbf: now.Add(time.Minute), wantErr: ErrNotYetValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Claims{RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(tt.exp),
				NotBefore: jwt.NewNumericDate(tt.nbf),
			}}
			err := c.ValidateExpiry(DefaultLeeway)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
