package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LofoWalker/upkeep/pkg/jwtx"
)

// InitVerifier loads the token verification keys and builds the verifier.
//
// Key sources:
//   - UPKEEP_JWT_PUBLIC_KEY_FILE: a JWKS document or a PEM Ed25519 public
//     key registered under UPKEEP_JWT_KEY_ID.
//   - UPKEEP_JWKS_URL: the identity provider's JWKS endpoint. Its keys
//     replace the file's and are refreshed in the background.
//
// The returned refresher is nil when no JWKS URL is configured.
func InitVerifier(
	ctx context.Context,
	cfg Config,
	logger *slog.Logger,
) (*jwtx.KeySet, *jwtx.EdDSAVerifier, *jwtx.Refresher, error) {
	keys := jwtx.NewKeySet()

	if cfg.JWTPublicKeyFile != "" {
		loaded, err := jwtx.LoadKeySetFile(cfg.JWTPublicKeyFile, cfg.JWTKeyID)
		if err != nil {
			return nil, nil, nil, err
		}
		keys = loaded
		logger.Info("verification keys loaded", "path", cfg.JWTPublicKeyFile, "keys", len(keys.PublicJWKS().Keys))
	}

	var refresher *jwtx.Refresher
	if cfg.JWKSURL != "" {
		refresher = jwtx.NewRefresher(keys, cfg.JWKSURL, cfg.JWKSRefresh, logger)

		fetchCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		if err := refresher.Refresh(fetchCtx); err != nil {
			if !keys.IsReady() {
				return nil, nil, nil, fmt.Errorf("fetch JWKS: %w", err)
			}
			logger.Warn("initial JWKS fetch failed, using keys from file", "url", cfg.JWKSURL, "error", err)
		}
	}

	verifier := jwtx.NewVerifierEdDSA(keys, jwtx.VerifyOptions{
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
	})
	return keys, verifier, refresher, nil
}
