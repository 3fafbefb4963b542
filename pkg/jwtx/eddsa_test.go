package jwtx

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/LofoWalker/upkeep/pkg/cryptox"
)

const testIssuer = "https://id.upkeep.dev"

func newTestSigner(t *testing.T, kid string) *EdDSASigner {
	t.Helper()
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	s, err := NewSignerEdDSA(kid, pemKey)
	require.NoError(t, err)
	return s
}

func newTestVerifier(t *testing.T, signers ...*EdDSASigner) *EdDSAVerifier {
	t.Helper()
	ks := NewKeySet()
	for _, s := range signers {
		require.NoError(t, ks.AddJWK(s.PublicJWK()))
	}
	return NewVerifierEdDSA(ks, VerifyOptions{Issuer: testIssuer, Audience: []string{"upkeep"}})
}

func TestEdDSASignAndVerify(t *testing.T) {
	s := newTestSigner(t, "k1")
	v := newTestVerifier(t, s)

	tok, err := s.Sign(NewClaims("cust-1", "a@x.com", testIssuer, []string{"upkeep"}, time.Minute, time.Now()))
	require.NoError(t, err)

	got, err := v.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "cust-1", got.Subject)
	require.Equal(t, "a@x.com", got.Email)
}

func TestEdDSAVerifyRejects(t *testing.T) {
	s := newTestSigner(t, "k1")
	v := newTestVerifier(t, s)
	now := time.Now()

	sign := func(c Claims) string {
		tok, err := s.Sign(c)
		require.NoError(t, err)
		return tok
	}

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := v.Verify(sign(NewClaims("c", "", "https://evil", []string{"upkeep"}, time.Minute, now)))
		require.ErrorIs(t, err, ErrIssuer)
	})

	t.Run("wrong audience", func(t *testing.T) {
		_, err := v.Verify(sign(NewClaims("c", "", testIssuer, []string{"other"}, time.Minute, now)))
		require.ErrorIs(t, err, ErrAudience)
	})

	t.Run("missing subject", func(t *testing.T) {
		_, err := v.Verify(sign(NewClaims("", "", testIssuer, []string{"upkeep"}, time.Minute, now)))
		require.ErrorIs(t, err, ErrSubject)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := v.Verify(sign(NewClaims("c", "", testIssuer, []string{"upkeep"}, time.Minute, now.Add(-time.Hour))))
		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("unknown kid", func(t *testing.T) {
		other := newTestSigner(t, "k2")
		tok, err := other.Sign(NewClaims("c", "", testIssuer, []string{"upkeep"}, time.Minute, now))
		require.NoError(t, err)

		_, err = v.Verify(tok)
		require.ErrorIs(t, err, ErrNoKey)
	})

	t.Run("key substituted under known kid", func(t *testing.T) {
		imposter := newTestSigner(t, "k1")
		tok, err := imposter.Sign(NewClaims("c", "", testIssuer, []string{"upkeep"}, time.Minute, now))
		require.NoError(t, err)

		_, err = v.Verify(tok)
		require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("missing kid", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodEdDSA, NewClaims("c", "", testIssuer, []string{"upkeep"}, time.Minute, now))
		str, err := tok.SignedString(s.key)
		require.NoError(t, err)

		_, err = v.Verify(str)
		require.ErrorIs(t, err, ErrMissingKID)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify("not.a.jwt")
		require.Error(t, err)
	})
}

func TestNewSignerEdDSARejectsBadPEM(t *testing.T) {
	_, err := NewSignerEdDSA("k", []byte("nope"))
	require.Error(t, err)

	pub, err := cryptox.MarshalEd25519PublicKeyPEM(newTestSigner(t, "k").pub)
	require.NoError(t, err)
	_, err = NewSignerEdDSA("k", pub)
	require.Error(t, err)
}
