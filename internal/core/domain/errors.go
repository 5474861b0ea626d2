package domain

import "errors"

var (
	// ErrNoSession means there is no usable session: either no token is
	// stored or the backend rejected the one we had. The only recovery is
	// going back through the login view.
	ErrNoSession = errors.New("no active session")

	// ErrInvalidCredentials is returned by login when the backend rejects
	// the email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccessDenied means the session is valid but the role is not
	// allowed on the requested view or operation.
	ErrAccessDenied = errors.New("access denied")

	// ErrBackendUnavailable wraps transport-level failures: the request
	// never produced an HTTP response.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrMalformedResponse means the backend answered with a payload that
	// does not match the expected schema.
	ErrMalformedResponse = errors.New("malformed backend response")

	ErrNotFound      = errors.New("record not found")
	ErrDuplicateCode = errors.New("code already exists")
)
