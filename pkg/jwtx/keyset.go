package jwtx

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/LofoWalker/upkeep/pkg/cryptox"
)

var ErrNoKey = errors.New("jwtx: key not found")

// KeySet holds the public verification keys in memory. It is safe for
// concurrent use, so a Refresher can swap keys under live verifiers.
type KeySet struct {
	mu  sync.RWMutex
	jks JWKS
	pub map[string]ed25519.PublicKey
}

func NewKeySet() *KeySet {
	return &KeySet{pub: make(map[string]ed25519.PublicKey)}
}

// AddJWK parses j and adds it to the set.
func (k *KeySet) AddJWK(j JWK) error {
	pub, err := j.PublicKey()
	if err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.pub[j.Kid] = pub
	k.jks.Keys = append(k.jks.Keys, j)
	return nil
}

// Get returns the public key for the given kid.
func (k *KeySet) Get(kid string) (ed25519.PublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if pk, ok := k.pub[kid]; ok {
		return pk, nil
	}
	return nil, ErrNoKey
}

// PublicJWKS returns a snapshot of the set.
func (k *KeySet) PublicJWKS() JWKS {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return JWKS{Keys: append([]JWK(nil), k.jks.Keys...)}
}

// IsReady reports whether at least one key is loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.pub) > 0
}

// ResetFromJWKS replaces every key. Keys that fail to parse leave the set
// untouched.
func (k *KeySet) ResetFromJWKS(jwks JWKS) error {
	next := make(map[string]ed25519.PublicKey, len(jwks.Keys))
	for _, j := range jwks.Keys {
		pub, err := j.PublicKey()
		if err != nil {
			return fmt.Errorf("kid %q: %w", j.Kid, err)
		}
		next[j.Kid] = pub
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.pub = next
	k.jks = jwks
	return nil
}

// LoadKeySetFile reads verification keys from path. The file is either a
// JWKS document or a single PEM encoded Ed25519 public key, which is
// registered under kid.
func LoadKeySetFile(path, kid string) (*KeySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jwtx: read key file: %w", err)
	}

	ks := NewKeySet()
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var jwks JWKS
		if err := json.Unmarshal(trimmed, &jwks); err != nil {
			return nil, fmt.Errorf("jwtx: decode JWKS: %w", err)
		}
		if err := ks.ResetFromJWKS(jwks); err != nil {
			return nil, err
		}
		return ks, nil
	}

	pub, err := cryptox.ParseEd25519PublicKeyPEM(data)
	if err != nil {
		return nil, err
	}
	if err := ks.AddJWK(NewEd25519JWK(kid, pub)); err != nil {
		return nil, err
	}
	return ks, nil
}

// FetchJWKS downloads a JWKS document from url.
func FetchJWKS(ctx context.Context, client *http.Client, url string) (JWKS, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return JWKS{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return JWKS{}, fmt.Errorf("jwtx: fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return JWKS{}, fmt.Errorf("jwtx: fetch JWKS: unexpected status %d", resp.StatusCode)
	}

	var jwks JWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return JWKS{}, fmt.Errorf("jwtx: decode JWKS: %w", err)
	}
	return jwks, nil
}

// Refresher keeps a KeySet in sync with a remote JWKS endpoint so key
// rotations at the identity provider are picked up without a restart.
type Refresher struct {
	Keys     *KeySet
	URL      string
	Client   *http.Client
	Interval time.Duration
	Logger   *slog.Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

func NewRefresher(keys *KeySet, url string, interval time.Duration, logger *slog.Logger) *Refresher {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Refresher{
		Keys:     keys,
		URL:      url,
		Client:   &http.Client{Timeout: 10 * time.Second},
		Interval: interval,
		Logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Refresh fetches the endpoint once and swaps the keys in.
func (r *Refresher) Refresh(ctx context.Context) error {
	jwks, err := FetchJWKS(ctx, r.Client, r.URL)
	if err != nil {
		return err
	}
	return r.Keys.ResetFromJWKS(jwks)
}

// Start refreshes periodically in the background. Failures keep the
// previous keys.
func (r *Refresher) Start() {
	go func() {
		defer close(r.doneCh)

		ticker := time.NewTicker(r.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := r.Refresh(context.Background()); err != nil {
					r.Logger.Warn("jwks refresh failed", "url", r.URL, "error", err)
				}
			case <-r.stopCh:
				return
			}
		}
	}()
}

func (r *Refresher) Stop() {
	close(r.stopCh)
	<-r.doneCh
}
