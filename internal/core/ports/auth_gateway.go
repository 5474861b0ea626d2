package ports

import (
	"context"

	"github.com/hollpacas/erp-console/internal/core/domain"
)

// AuthGateway is the remote authentication API as seen by the frontend.
type AuthGateway interface {
	// Login exchanges credentials for a bearer token. A rejected
	// email/password pair maps to domain.ErrInvalidCredentials; transport
	// failures map to domain.ErrBackendUnavailable.
	Login(ctx context.Context, email, password string) (string, error)

	// CurrentUser fetches the profile behind the stored token. Any
	// non-success answer means the session is unusable.
	CurrentUser(ctx context.Context) (*domain.Profile, error)
}
