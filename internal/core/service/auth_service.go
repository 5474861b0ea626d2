package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hollpacas/erp-console/internal/core/domain"
	"github.com/hollpacas/erp-console/internal/core/ports"
)

// AuthService implements the login/logout flow behind the login view.
type AuthService struct {
	gateway ports.AuthGateway
	tokens  ports.TokenStore
	log     zerolog.Logger
}

func NewAuthService(gateway ports.AuthGateway, tokens ports.TokenStore, log zerolog.Logger) *AuthService {
	return &AuthService{gateway: gateway, tokens: tokens, log: log}
}

// Login performs a single authentication attempt. There is no retry and no
// backoff; a failed attempt is terminal until the user submits again. On
// success the issued token is stored, persistently when remember is set.
func (s *AuthService) Login(ctx context.Context, email, password string, remember bool) error {
	if email == "" || password == "" {
		return domain.ErrInvalidCredentials
	}

	token, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := s.tokens.Save(token, remember); err != nil {
		return err
	}

	s.log.Info().Str("email", email).Bool("remember", remember).Msg("session established")
	return nil
}

// Logout invalidates the session wherever the token lives.
func (s *AuthService) Logout() error {
	s.log.Info().Msg("session closed")
	return s.tokens.Clear()
}
