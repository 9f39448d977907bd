// Package auth establishes caller identity from bearer tokens, API
// keys or the client address. Credentials that fail to verify degrade
// to anonymous rather than rejecting the request; quota enforcement
// downstream makes anonymous the least privileged outcome.
package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/risklens/risklens/internal/core/domain"
	"github.com/risklens/risklens/internal/core/ports"
)

type Resolver struct {
	secret string
	keys   ports.APIKeyStore
	now    func() time.Time
}

func NewResolver(jwtSecret string, keys ports.APIKeyStore) *Resolver {
	return &Resolver{secret: jwtSecret, keys: keys, now: time.Now}
}

// Resolve tries, in order: a Bearer JWT from the Authorization header,
// the X-API-Key header, then the anonymous fallback keyed by client IP.
func (r *Resolver) Resolve(ctx context.Context, authHeader, apiKey, clientIP string) domain.Identity {
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok && r.secret != "" {
		claims, err := VerifyToken(token, r.secret, r.now())
		if err == nil && claims.UserID != "" {
			return domain.Identity{
				ID:            claims.UserID,
				Email:         claims.Email,
				AuthType:      domain.AuthJWT,
				Authenticated: true,
			}
		}
		slog.Warn("jwt_verification_failed", "error", err)
	}

	if apiKey != "" && r.keys != nil {
		record, err := r.keys.Lookup(ctx, apiKey)
		if err != nil {
			slog.Warn("api_key_lookup_failed", "error", err)
		} else if record != nil {
			return domain.Identity{
				ID:            record.UserID,
				Email:         record.Email,
				AuthType:      domain.AuthAPIKey,
				Authenticated: true,
			}
		}
	}

	return domain.AnonymousIdentity(clientIP)
}
