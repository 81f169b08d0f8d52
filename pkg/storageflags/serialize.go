package storageflags

import (
	"encoding/binary"

	"github.com/platformdrive/drivecore/pkg/identifier"
)

// Serialize encodes f as: 1 type byte, an optional 32-byte owner (only for
// owned kinds), a 2-byte big-endian base epoch, then zero or more
// (epoch_u16, varint bytes-added) pairs consuming the rest of the buffer
// (only for multi-epoch kinds). This exact byte layout is consensus-critical,
// which is why it is hand encoded rather than routed through a generic codec.
func Serialize(f Flags) []byte {
	size := 1 + 2
	if f.Kind.Owned() {
		size += identifierSize
	}
	if f.Kind.Multi() {
		size += len(f.Added) * (2 + binary.MaxVarintLen64)
	}
	buf := make([]byte, 0, size)

	buf = append(buf, byte(f.Kind))
	if f.Kind.Owned() {
		buf = append(buf, f.Owner.Bytes()...)
	}

	var baseBuf [2]byte
	binary.BigEndian.PutUint16(baseBuf[:], f.Base)
	buf = append(buf, baseBuf[:]...)

	if f.Kind.Multi() {
		for _, epoch := range f.sortedEpochsAsc() {
			var epochBuf [2]byte
			binary.BigEndian.PutUint16(epochBuf[:], epoch)
			buf = append(buf, epochBuf[:]...)
			buf = binary.AppendUvarint(buf, f.Added[epoch])
		}
	}
	return buf
}

const identifierSize = 32

// Deserialize decodes the layout written by Serialize, returning
// ErrCorruptedSerialization for an invalid type byte or a truncated
// payload.
func Deserialize(b []byte) (Flags, error) {
	if len(b) < 1 {
		return Flags{}, ErrCorruptedSerialization
	}
	kind := Kind(b[0])
	if !kind.Valid() {
		return Flags{}, ErrCorruptedSerialization
	}
	offset := 1

	var owner identifier.Identifier
	if kind.Owned() {
		if len(b)-offset < identifierSize {
			return Flags{}, ErrCorruptedSerialization
		}
		copy(owner[:], b[offset:offset+identifierSize])
		offset += identifierSize
	}

	if len(b)-offset < 2 {
		return Flags{}, ErrCorruptedSerialization
	}
	base := binary.BigEndian.Uint16(b[offset : offset+2])
	offset += 2

	var added map[uint16]uint64
	if kind.Multi() {
		for offset < len(b) {
			if len(b)-offset < 2 {
				return Flags{}, ErrCorruptedSerialization
			}
			epoch := binary.BigEndian.Uint16(b[offset : offset+2])
			offset += 2

			value, n := binary.Uvarint(b[offset:])
			if n <= 0 {
				return Flags{}, ErrCorruptedSerialization
			}
			offset += n

			if added == nil {
				added = map[uint16]uint64{}
			}
			added[epoch] = value
		}
	} else if offset != len(b) {
		return Flags{}, ErrCorruptedSerialization
	}

	return Flags{Kind: kind, Base: base, Added: added, Owner: owner}, nil
}
