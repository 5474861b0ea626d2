package session

// slot is a place a token can live. FileStore and MemoryStore both qualify.
type slot interface {
	Token() (string, bool)
	Save(token string) error
	Clear() error
}

// Store is the active session slot handed to the rest of the application.
// It routes saves to the persistent or the volatile slot depending on the
// remember choice made at login, and always clears both.
type Store struct {
	persistent slot
	volatile   slot
}

// NewStore builds the composite store used by the console. path is where the
// remembered session file lives.
func NewStore(path string) *Store {
	return &Store{
		persistent: NewFileStore(path),
		volatile:   NewMemoryStore(),
	}
}

// Token prefers the volatile slot, then the persistent one.
func (s *Store) Token() (string, bool) {
	if tok, ok := s.volatile.Token(); ok {
		return tok, true
	}
	return s.persistent.Token()
}

// Save stores the token in exactly one slot and empties the other, so there
// is never more than one live token.
func (s *Store) Save(token string, remember bool) error {
	if remember {
		if err := s.volatile.Clear(); err != nil {
			return err
		}
		return s.persistent.Save(token)
	}
	if err := s.persistent.Clear(); err != nil {
		return err
	}
	return s.volatile.Save(token)
}

// Clear invalidates the session wherever the token lives.
func (s *Store) Clear() error {
	if err := s.volatile.Clear(); err != nil {
		return err
	}
	return s.persistent.Clear()
}
