package identity

import (
	"sync"

	"github.com/platformdrive/drivecore/pkg/identifier"
)

// NonceKey identifies one identity-contract nonce counter.
type NonceKey struct {
	IdentityID identifier.Identifier
	ContractID identifier.Identifier
}

// NonceStore tracks the last-accepted nonce per (identity, contract) pair.
// Replaying a previously accepted transition, or skipping ahead, is
// rejected: the only value CheckAndIncrement accepts is exactly one past
// the last stored value.
type NonceStore struct {
	mu     sync.Mutex
	values map[NonceKey]uint64
}

func NewNonceStore() *NonceStore {
	return &NonceStore{values: make(map[NonceKey]uint64)}
}

// Current returns the last-accepted nonce for key, or 0 if none has been
// accepted yet.
func (s *NonceStore) Current(key NonceKey) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// CheckAndIncrement accepts submitted only if it equals Current(key)+1, in
// which case it becomes the new stored value. Any other value — including a
// replay of the just-accepted nonce, or a gap — returns ErrInvalidNonce and
// leaves the stored value unchanged.
func (s *NonceStore) CheckAndIncrement(key NonceKey, submitted uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := s.values[key] + 1
	if submitted != want {
		return ErrInvalidNonce
	}
	s.values[key] = submitted
	return nil
}
