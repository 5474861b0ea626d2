package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hollpacas/erp-console/internal/core/domain"
	"github.com/hollpacas/erp-console/internal/core/ports"
)

// SessionGuard gates every protected view. It checks the stored token
// against the profile endpoint on each activation and clears the token on
// any failure, so a broken session always lands the user back on login.
type SessionGuard struct {
	gateway ports.AuthGateway
	tokens  ports.TokenStore
	log     zerolog.Logger
}

func NewSessionGuard(gateway ports.AuthGateway, tokens ports.TokenStore, log zerolog.Logger) *SessionGuard {
	return &SessionGuard{gateway: gateway, tokens: tokens, log: log}
}

// Require returns the fresh profile when the session is valid and, if
// allowedRoles is non-empty, the user holds one of them. With no stored
// token it fails immediately without touching the network. A backend
// rejection or transport failure invalidates the stored token; so does a
// role mismatch, which is treated like any other authentication failure.
func (g *SessionGuard) Require(ctx context.Context, allowedRoles ...string) (*domain.Profile, error) {
	if _, ok := g.tokens.Token(); !ok {
		return nil, domain.ErrNoSession
	}

	profile, err := g.gateway.CurrentUser(ctx)
	if err != nil {
		g.log.Warn().Err(err).Msg("stored token rejected, clearing session")
		_ = g.tokens.Clear()
		return nil, fmt.Errorf("%w: %v", domain.ErrNoSession, err)
	}

	if len(allowedRoles) > 0 && !hasAnyRole(profile, allowedRoles) {
		g.log.Warn().Str("role", profile.RoleLabel()).Msg("role not allowed on this view, clearing session")
		_ = g.tokens.Clear()
		return nil, domain.ErrAccessDenied
	}

	return profile, nil
}

func hasAnyRole(p *domain.Profile, roles []string) bool {
	for _, r := range roles {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}
