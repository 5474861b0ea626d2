package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/hollpacas/erp-console/internal/core/domain"
)

// AuthGateway implements ports.AuthGateway over the backend's auth routes.
type AuthGateway struct {
	client *Client
}

func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login posts the credentials and returns the issued bearer token. The
// backend answers 400 for an unknown user and 401 for a wrong password;
// both collapse into ErrInvalidCredentials — the login view shows a single
// message either way.
func (g *AuthGateway) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := g.client.doJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp, false)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			switch se.status {
			case http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound:
				return "", domain.ErrInvalidCredentials
			}
		}
		return "", err
	}

	if err := g.client.check(&resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// CurrentUser fetches the profile behind the stored token.
func (g *AuthGateway) CurrentUser(ctx context.Context) (*domain.Profile, error) {
	var resp profileDTO
	if err := g.client.doJSON(ctx, http.MethodGet, "/auth/me", nil, &resp, true); err != nil {
		return nil, mapAuthedError(err)
	}
	if err := g.client.check(&resp); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// mapAuthedError translates status errors from authenticated calls into the
// domain taxonomy.
func mapAuthedError(err error) error {
	var se *statusError
	if !errors.As(err, &se) {
		return err
	}
	switch se.status {
	case http.StatusUnauthorized:
		return domain.ErrNoSession
	case http.StatusForbidden:
		return domain.ErrAccessDenied
	case http.StatusNotFound:
		return domain.ErrNotFound
	}
	return err
}
