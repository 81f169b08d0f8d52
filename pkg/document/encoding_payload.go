package document

import (
	"encoding/binary"
	"math"
)

// booleanPayloadFalse is the canonical encoding for a false boolean in the
// storage payload. An older encoder path in the original implementation
// emitted 2 for false; readers here tolerate both, writers only ever emit 0.
const (
	booleanPayloadFalse    byte = 0
	booleanPayloadFalseAlt byte = 2
	booleanPayloadTrue     byte = 1
)

// EncodePropertyPayload encodes v (the document's value for def, or nil if
// the field is absent) into the length-prefixed, unordered primary-storage
// encoding. A presence byte precedes the value for any non-required field.
func EncodePropertyPayload(def PropertyDef, v *Value) ([]byte, error) {
	if v == nil {
		if def.Required {
			return nil, ErrFieldRequirementUnmet
		}
		return []byte{0x00}, nil
	}

	var out []byte
	if !def.Required {
		out = append(out, 0x01)
	}
	body, err := encodeValueBody(def.Kind, def.Properties, def.ItemType, *v)
	if err != nil {
		return nil, err
	}
	return append(out, body...), nil
}

func encodeValueBody(kind Kind, objectProps OrderedProperties, itemType *PropertyDef, v Value) ([]byte, error) {
	switch kind {
	case KindInteger, KindDate:
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], uint64(v.Int))
		return buf[:], nil
	case KindNumber:
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v.Float))
		return buf[:], nil
	case KindBoolean:
		if v.Bool {
			return []byte{booleanPayloadTrue}, nil
		}
		return []byte{booleanPayloadFalse}, nil
	case KindString:
		return appendLengthPrefixed(nil, []byte(v.Str)), nil
	case KindByteArray:
		return appendLengthPrefixed(nil, v.Bytes), nil
	case KindIdentifier:
		return append([]byte(nil), v.Bytes...), nil
	case KindObject:
		return encodeObjectPayload(objectProps, v.Object)
	case KindArray:
		return encodeArrayPayload(itemType, v.Array)
	case KindVariableTypeArray:
		return encodeVariableArrayPayload(v.Array)
	default:
		return nil, ErrSchemaViolation
	}
}

func appendLengthPrefixed(dst, b []byte) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(b)))
	return append(dst, b...)
}

// EncodeDocumentProperties encodes values against props using the same
// length-prefixed payload encoding used for nested Object fields — this is
// the whole-document primary-storage payload.
func EncodeDocumentProperties(props OrderedProperties, values OrderedValues) ([]byte, error) {
	return encodeObjectPayload(props, values)
}

// DecodeDocumentProperties is the inverse of EncodeDocumentProperties. It
// requires buf to be fully consumed except for tolerated trailing optional
// fields.
func DecodeDocumentProperties(props OrderedProperties, buf []byte) (OrderedValues, error) {
	values, rest, err := decodeObjectPayload(props, buf)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, ErrCorruptedSerialization
	}
	return values, nil
}

func encodeObjectPayload(props OrderedProperties, values OrderedValues) ([]byte, error) {
	var out []byte
	for _, p := range props {
		v, ok := values.Get(p.Name)
		var vp *Value
		if ok {
			vp = &v
		}
		enc, err := EncodePropertyPayload(p.Def, vp)
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
	}
	return out, nil
}

func encodeArrayPayload(itemType *PropertyDef, items []Value) ([]byte, error) {
	if itemType == nil {
		return nil, ErrSchemaViolation
	}
	out := binary.AppendUvarint(nil, uint64(len(items)))
	for _, item := range items {
		body, err := encodeValueBody(itemType.Kind, itemType.Properties, itemType.ItemType, item)
		if err != nil {
			return nil, err
		}
		out = append(out, body...)
	}
	return out, nil
}

func encodeVariableArrayPayload(items []Value) ([]byte, error) {
	out := binary.AppendUvarint(nil, uint64(len(items)))
	for _, item := range items {
		out = append(out, byte(item.Kind))
		body, err := encodeValueBody(item.Kind, nil, nil, item)
		if err != nil {
			return nil, err
		}
		out = append(out, body...)
	}
	return out, nil
}

// DecodePropertyPayload decodes a value for def from the front of buf,
// returning the decoded value (nil if absent) and the unconsumed remainder.
// Trailing missing optional fields are tolerated: if buf is fully consumed
// and def is not required, the field is treated as absent. Running out of
// buffer on a required field is a corruption error.
func DecodePropertyPayload(def PropertyDef, buf []byte) (*Value, []byte, error) {
	if len(buf) == 0 {
		if def.Required {
			return nil, nil, ErrCorruptedSerialization
		}
		return nil, buf, nil
	}

	if !def.Required {
		presence := buf[0]
		buf = buf[1:]
		if presence == 0x00 {
			return nil, buf, nil
		}
	}

	v, rest, err := decodeValueBody(def.Kind, def.Properties, def.ItemType, buf)
	if err != nil {
		return nil, nil, err
	}
	return &v, rest, nil
}

func decodeValueBody(kind Kind, objectProps OrderedProperties, itemType *PropertyDef, buf []byte) (Value, []byte, error) {
	switch kind {
	case KindInteger, KindDate:
		if len(buf) < 8 {
			return Value{}, nil, ErrCorruptedSerialization
		}
		n := int64(binary.BigEndian.Uint64(buf[:8]))
		return Value{Kind: kind, Int: n}, buf[8:], nil
	case KindNumber:
		if len(buf) < 8 {
			return Value{}, nil, ErrCorruptedSerialization
		}
		f := math.Float64frombits(binary.BigEndian.Uint64(buf[:8]))
		return Value{Kind: KindNumber, Float: f}, buf[8:], nil
	case KindBoolean:
		if len(buf) < 1 {
			return Value{}, nil, ErrCorruptedSerialization
		}
		switch buf[0] {
		case booleanPayloadFalse, booleanPayloadFalseAlt:
			return Value{Kind: KindBoolean, Bool: false}, buf[1:], nil
		case booleanPayloadTrue:
			return Value{Kind: KindBoolean, Bool: true}, buf[1:], nil
		default:
			return Value{}, nil, ErrCorruptedSerialization
		}
	case KindString:
		b, rest, err := decodeLengthPrefixed(buf)
		if err != nil {
			return Value{}, nil, err
		}
		return Value{Kind: KindString, Str: string(b)}, rest, nil
	case KindByteArray:
		b, rest, err := decodeLengthPrefixed(buf)
		if err != nil {
			return Value{}, nil, err
		}
		return Value{Kind: KindByteArray, Bytes: b}, rest, nil
	case KindIdentifier:
		if len(buf) < 32 {
			return Value{}, nil, ErrCorruptedSerialization
		}
		return Value{Kind: KindIdentifier, Bytes: append([]byte(nil), buf[:32]...)}, buf[32:], nil
	case KindObject:
		obj, rest, err := decodeObjectPayload(objectProps, buf)
		if err != nil {
			return Value{}, nil, err
		}
		return Value{Kind: KindObject, Object: obj}, rest, nil
	case KindArray:
		items, rest, err := decodeArrayPayload(itemType, buf)
		if err != nil {
			return Value{}, nil, err
		}
		return Value{Kind: KindArray, Array: items}, rest, nil
	case KindVariableTypeArray:
		items, rest, err := decodeVariableArrayPayload(buf)
		if err != nil {
			return Value{}, nil, err
		}
		return Value{Kind: KindVariableTypeArray, Array: items}, rest, nil
	default:
		return Value{}, nil, ErrSchemaViolation
	}
}

func decodeLengthPrefixed(buf []byte) ([]byte, []byte, error) {
	n, consumed := binary.Uvarint(buf)
	if consumed <= 0 {
		return nil, nil, ErrCorruptedSerialization
	}
	buf = buf[consumed:]
	if uint64(len(buf)) < n {
		return nil, nil, ErrCorruptedSerialization
	}
	return append([]byte(nil), buf[:n]...), buf[n:], nil
}

func decodeObjectPayload(props OrderedProperties, buf []byte) (OrderedValues, []byte, error) {
	out := make(OrderedValues, 0, len(props))
	for _, p := range props {
		v, rest, err := DecodePropertyPayload(p.Def, buf)
		if err != nil {
			return nil, nil, err
		}
		buf = rest
		if v != nil {
			out = append(out, NamedValue{Name: p.Name, Value: *v})
		}
	}
	return out, buf, nil
}

func decodeArrayPayload(itemType *PropertyDef, buf []byte) ([]Value, []byte, error) {
	if itemType == nil {
		return nil, nil, ErrSchemaViolation
	}
	count, consumed := binary.Uvarint(buf)
	if consumed <= 0 {
		return nil, nil, ErrCorruptedSerialization
	}
	buf = buf[consumed:]
	items := make([]Value, 0, count)
	for i := uint64(0); i < count; i++ {
		v, rest, err := decodeValueBody(itemType.Kind, itemType.Properties, itemType.ItemType, buf)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, v)
		buf = rest
	}
	return items, buf, nil
}

func decodeVariableArrayPayload(buf []byte) ([]Value, []byte, error) {
	count, consumed := binary.Uvarint(buf)
	if consumed <= 0 {
		return nil, nil, ErrCorruptedSerialization
	}
	buf = buf[consumed:]
	items := make([]Value, 0, count)
	for i := uint64(0); i < count; i++ {
		if len(buf) < 1 {
			return nil, nil, ErrCorruptedSerialization
		}
		kind := Kind(buf[0])
		buf = buf[1:]
		v, rest, err := decodeValueBody(kind, nil, nil, buf)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, v)
		buf = rest
	}
	return items, buf, nil
}
