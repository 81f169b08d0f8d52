package identity

import "github.com/platformdrive/drivecore/pkg/identifier"

// Purpose is what an identity public key may be used for. Only a key with
// Authentication purpose may sign state transitions.
type Purpose int

const (
	PurposeAuthentication Purpose = iota
	PurposeEncryption
	PurposeDecryption
	PurposeWithdraw
	PurposeVoting
)

// KeyType names the signature scheme a PublicKey was minted under.
type KeyType int

const (
	KeyTypeECDSASecp256k1 KeyType = iota
	KeyTypeBLS12381
)

// PublicKey is one entry of an identity's key registry.
type PublicKey struct {
	ID       uint32
	Type     KeyType
	Purpose  Purpose
	Data     []byte // compressed secp256k1 point, or a compressed BLS12-381 G1 point
	Disabled bool
}

// Identity is a registered network participant: a balance in credits, a
// monotone revision counter bumped on key-registry changes, and its public
// keys.
type Identity struct {
	ID         identifier.Identifier
	Balance    uint64
	Revision   uint64
	PublicKeys []PublicKey
}

// Key looks up a public key by id.
func (id Identity) Key(keyID uint32) (PublicKey, bool) {
	for _, k := range id.PublicKeys {
		if k.ID == keyID {
			return k, true
		}
	}
	return PublicKey{}, false
}

// AuthenticationKey looks up a key by id and verifies it is both present and
// usable for signing (Authentication purpose, not disabled).
func (id Identity) AuthenticationKey(keyID uint32) (PublicKey, error) {
	key, ok := id.Key(keyID)
	if !ok {
		return PublicKey{}, ErrKeyNotFound
	}
	if key.Disabled {
		return PublicKey{}, ErrKeyNotFound
	}
	if key.Purpose != PurposeAuthentication {
		return PublicKey{}, ErrWrongPurpose
	}
	return key, nil
}
