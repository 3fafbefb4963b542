package jwtx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LofoWalker/upkeep/pkg/cryptox"
)

func TestJWKRoundTrip(t *testing.T) {
	s := newTestSigner(t, "k1")
	j := s.PublicJWK()

	require.Equal(t, "OKP", j.Kty)
	require.Equal(t, "Ed25519", j.Crv)
	require.Equal(t, "k1", j.Kid)

	pub, err := j.PublicKey()
	require.NoError(t, err)
	require.Equal(t, s.pub, pub)
}

func TestJWKPublicKeyRejects(t *testing.T) {
	tests := []struct {
		name string
		jwk  JWK
	}{
		{name: "rsa", jwk: JWK{Kty: "RSA"}},
		{name: "x25519", jwk: JWK{Kty: "OKP", Crv: "X25519"}},
		{name: "bad base64", jwk: JWK{Kty: "OKP", Crv: "Ed25519", X: "!!"}},
		{name: "short key", jwk: JWK{Kty: "OKP", Crv: "Ed25519", X: "AAAA"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.jwk.PublicKey()
			require.Error(t, err)
		})
	}
}

func TestKeySet(t *testing.T) {
	ks := NewKeySet()
	require.False(t, ks.IsReady())

	s1 := newTestSigner(t, "k1")
	require.NoError(t, ks.AddJWK(s1.PublicJWK()))
	require.True(t, ks.IsReady())

	_, err := ks.Get("k1")
	require.NoError(t, err)
	_, err = ks.Get("k2")
	require.ErrorIs(t, err, ErrNoKey)

	s2 := newTestSigner(t, "k2")
	require.NoError(t, ks.ResetFromJWKS(JWKS{Keys: []JWK{s2.PublicJWK()}}))
	_, err = ks.Get("k1")
	require.ErrorIs(t, err, ErrNoKey)
	_, err = ks.Get("k2")
	require.NoError(t, err)
	require.Len(t, ks.PublicJWKS().Keys, 1)

	err = ks.ResetFromJWKS(JWKS{Keys: []JWK{{Kty: "RSA", Kid: "bad"}}})
	require.Error(t, err)
	_, err = ks.Get("k2")
	require.NoError(t, err, "failed reset keeps previous keys")
}

func TestLoadKeySetFile(t *testing.T) {
	dir := t.TempDir()
	s := newTestSigner(t, "k1")

	t.Run("pem", func(t *testing.T) {
		data, err := cryptox.MarshalEd25519PublicKeyPEM(s.pub)
		require.NoError(t, err)
		path := filepath.Join(dir, "pub.pem")
		require.NoError(t, os.WriteFile(path, data, 0o600))

		ks, err := LoadKeySetFile(path, "k1")
		require.NoError(t, err)
		_, err = ks.Get("k1")
		require.NoError(t, err)
	})

	t.Run("jwks", func(t *testing.T) {
		data, err := json.Marshal(JWKS{Keys: []JWK{s.PublicJWK()}})
		require.NoError(t, err)
		path := filepath.Join(dir, "jwks.json")
		require.NoError(t, os.WriteFile(path, data, 0o600))

		ks, err := LoadKeySetFile(path, "ignored")
		require.NoError(t, err)
		_, err = ks.Get("k1")
		require.NoError(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadKeySetFile(filepath.Join(dir, "nope"), "k1")
		require.Error(t, err)
	})
}

func TestFetchJWKSAndRefresher(t *testing.T) {
	s := newTestSigner(t, "k1")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/.well-known/jwks.json" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(JWKS{Keys: []JWK{s.PublicJWK()}})
	}))
	defer srv.Close()

	jwks, err := FetchJWKS(context.Background(), srv.Client(), srv.URL+"/.well-known/jwks.json")
	require.NoError(t, err)
	require.Len(t, jwks.Keys, 1)

	_, err = FetchJWKS(context.Background(), srv.Client(), srv.URL+"/missing")
	require.Error(t, err)

	ks := NewKeySet()
	r := NewRefresher(ks, srv.URL+"/.well-known/jwks.json", time.Hour, nil)
	require.NoError(t, r.Refresh(context.Background()))
	require.True(t, ks.IsReady())

	r.Start()
	r.Stop()
}
