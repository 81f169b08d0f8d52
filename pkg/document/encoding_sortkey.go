package document

import (
	"encoding/binary"
	"math"
)

// EncodeInt64Sortable encodes a signed 64-bit integer as big-endian two's
// complement with the high bit flipped, yielding a byte order that matches
// numeric order across the full negative/positive domain.
func EncodeInt64Sortable(v int64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	buf[0] ^= 0x80
	return buf[:]
}

// DecodeInt64Sortable is the inverse of EncodeInt64Sortable.
func DecodeInt64Sortable(b []byte) (int64, error) {
	if len(b) != 8 {
		return 0, ErrCorruptedSerialization
	}
	var buf [8]byte
	copy(buf[:], b)
	buf[0] ^= 0x80
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

// EncodeUint64Sortable encodes an unsigned 64-bit integer as big-endian with
// the high bit flipped (kept for symmetry with the signed encoding and used
// for the block-time keys of history-retaining document types).
func EncodeUint64Sortable(v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	buf[0] ^= 0x80
	return buf[:]
}

func DecodeUint64Sortable(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, ErrCorruptedSerialization
	}
	var buf [8]byte
	copy(buf[:], b)
	buf[0] ^= 0x80
	return binary.BigEndian.Uint64(buf[:]), nil
}

// EncodeFloat64Sortable encodes an IEEE-754 binary64 value such that
// byte-wise comparison of the result matches numeric order. Negative values
// have every bit flipped; non-negative values have only the sign bit
// flipped.
func EncodeFloat64Sortable(v float64) []byte {
	bits := math.Float64bits(v)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], bits)
	if v < 0 {
		for i := range buf {
			buf[i] = ^buf[i]
		}
	} else {
		buf[0] ^= 0x80
	}
	return buf[:]
}

func DecodeFloat64Sortable(b []byte) (float64, error) {
	if len(b) != 8 {
		return 0, ErrCorruptedSerialization
	}
	var buf [8]byte
	copy(buf[:], b)
	// A flipped sign bit (bit 0 of buf[0] clear after XOR) indicates the
	// value was originally negative, since positive encodings only flip
	// the sign bit (setting it) while negative encodings flip everything.
	if buf[0]&0x80 == 0 {
		for i := range buf {
			buf[i] = ^buf[i]
		}
	} else {
		buf[0] ^= 0x80
	}
	return math.Float64frombits(binary.BigEndian.Uint64(buf[:])), nil
}

// EncodeBoolSortable encodes a boolean as a single sort-preserving byte.
func EncodeBoolSortable(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

func DecodeBoolSortable(b []byte) (bool, error) {
	if len(b) != 1 {
		return false, ErrCorruptedSerialization
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrCorruptedSerialization
	}
}

// EncodeStringSortable encodes a string as its raw UTF-8 bytes, except that
// the empty string is encoded as a single 0x00 byte so it remains
// distinguishable from "absent" in a concatenated index key.
func EncodeStringSortable(s string) []byte {
	if s == "" {
		return []byte{0x00}
	}
	return []byte(s)
}

// EncodeIndexValue encodes v as a sort-preserving index-key fragment
// according to def.Kind. Object, Array, and VariableTypeArray values are
// rejected: they cannot appear in index keys.
func EncodeIndexValue(def PropertyDef, v Value) ([]byte, error) {
	if !def.Kind.Indexable() {
		return nil, ErrNotIndexable
	}
	switch def.Kind {
	case KindInteger:
		return EncodeInt64Sortable(v.Int), nil
	case KindDate:
		return EncodeInt64Sortable(v.Int), nil
	case KindNumber:
		return EncodeFloat64Sortable(v.Float), nil
	case KindBoolean:
		return EncodeBoolSortable(v.Bool), nil
	case KindString:
		return EncodeStringSortable(v.Str), nil
	case KindByteArray, KindIdentifier:
		return append([]byte(nil), v.Bytes...), nil
	default:
		return nil, ErrNotIndexable
	}
}
