package ports

// TokenStore is the single source of truth for the session token. Exactly
// one implementation is active per process; views and gateways share it.
type TokenStore interface {
	// Token returns the stored token and whether one is present.
	Token() (string, bool)
	// Save replaces the stored token. With remember set the token must
	// survive process restarts; without it the token lives only as long
	// as the process.
	Save(token string, remember bool) error
	// Clear removes the stored token wherever it lives. Clearing an empty
	// store is a no-op.
	Clear() error
}
