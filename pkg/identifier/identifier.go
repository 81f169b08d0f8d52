// Package identifier implements the 32-byte opaque identifier used for
// identities, contracts, and documents throughout drivecore.
package identifier

import (
	"encoding/hex"
	"fmt"

	"github.com/cosmos/btcutil/base58"
)

// Size is the fixed length, in bytes, of every Identifier.
const Size = 32

// Identifier is a 32-byte opaque value printed as Base58.
type Identifier [Size]byte

// Nil is the all-zero identifier, used as the default/unowned sentinel.
var Nil Identifier

// FromBytes copies b into a new Identifier. b must be exactly Size bytes.
func FromBytes(b []byte) (Identifier, error) {
	var id Identifier
	if len(b) != Size {
		return id, fmt.Errorf("identifier: want %d bytes, got %d", Size, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// MustFromBytes is FromBytes but panics on error; for tests and fixtures.
func MustFromBytes(b []byte) Identifier {
	id, err := FromBytes(b)
	if err != nil {
		panic(err)
	}
	return id
}

// FromBase58 decodes a Base58-encoded identifier.
func FromBase58(s string) (Identifier, error) {
	b := base58.Decode(s)
	if len(b) != Size {
		return Identifier{}, fmt.Errorf("identifier: invalid base58 %q decodes to %d bytes, want %d", s, len(b), Size)
	}
	return FromBytes(b)
}

// Bytes returns a copy of the identifier's underlying bytes.
func (id Identifier) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, id[:])
	return out
}

// String renders the identifier as Base58, the canonical human-facing form.
func (id Identifier) String() string {
	return base58.Encode(id[:])
}

// Hex renders the identifier as lowercase hex, useful for log lines and keys
// where Base58's variable-width alphabet would complicate lexical sort.
func (id Identifier) Hex() string {
	return hex.EncodeToString(id[:])
}

// IsNil reports whether id is the all-zero identifier.
func (id Identifier) IsNil() bool {
	return id == Nil
}

// Compare returns -1, 0, or 1 as id is less than, equal to, or greater than
// other, using big-endian byte order (matches on-disk sort order).
func (id Identifier) Compare(other Identifier) int {
	for i := range id {
		if id[i] != other[i] {
			if id[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
