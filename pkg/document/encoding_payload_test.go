package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRequiredScalarRoundTrip(t *testing.T) {
	def := PropertyDef{Name: "age", Kind: KindInteger, Required: true}
	v := IntegerValue(30)

	enc, err := EncodePropertyPayload(def, &v)
	require.NoError(t, err)

	got, rest, err := DecodePropertyPayload(def, enc)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, v, *got)
}

func TestEncodeDecodeOptionalAbsent(t *testing.T) {
	def := PropertyDef{Name: "nickname", Kind: KindString, Required: false}

	enc, err := EncodePropertyPayload(def, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, enc)

	got, rest, err := DecodePropertyPayload(def, enc)
	require.NoError(t, err)
	require.Nil(t, got)
	require.Empty(t, rest)
}

func TestEncodeDecodeOptionalPresent(t *testing.T) {
	def := PropertyDef{Name: "nickname", Kind: KindString, Required: false}
	v := StringValue("bob")

	enc, err := EncodePropertyPayload(def, &v)
	require.NoError(t, err)
	require.Equal(t, byte(0x01), enc[0])

	got, rest, err := DecodePropertyPayload(def, enc)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, v, *got)
}

func TestRequiredFieldMissingIsError(t *testing.T) {
	def := PropertyDef{Name: "age", Kind: KindInteger, Required: true}
	_, _, err := DecodePropertyPayload(def, nil)
	require.ErrorIs(t, err, ErrCorruptedSerialization)

	_, err = EncodePropertyPayload(def, nil)
	require.ErrorIs(t, err, ErrFieldRequirementUnmet)
}

func TestTrailingOptionalFieldsTolerated(t *testing.T) {
	props := OrderedProperties{
		{Name: "a", Def: PropertyDef{Name: "a", Kind: KindInteger, Required: true}},
		{Name: "b", Def: PropertyDef{Name: "b", Kind: KindString, Required: false}},
	}
	// Only "a" was ever encoded; the buffer ends before "b"'s presence byte.
	a := IntegerValue(5)
	encA, err := EncodePropertyPayload(props[0].Def, &a)
	require.NoError(t, err)

	obj, rest, err := decodeObjectPayload(props, encA)
	require.NoError(t, err)
	require.Empty(t, rest)
	gotA, ok := obj.Get("a")
	require.True(t, ok)
	require.Equal(t, a, gotA)
	_, ok = obj.Get("b")
	require.False(t, ok)
}

func TestBooleanPayloadAcceptsLegacyFalseEncoding(t *testing.T) {
	def := PropertyDef{Name: "flag", Kind: KindBoolean, Required: true}

	v := BooleanValue(false)
	enc, err := EncodePropertyPayload(def, &v)
	require.NoError(t, err)
	require.Equal(t, []byte{booleanPayloadFalse}, enc)

	got, _, err := DecodePropertyPayload(def, []byte{booleanPayloadFalseAlt})
	require.NoError(t, err)
	require.False(t, got.Bool)
}

func TestObjectPayloadRoundTrip(t *testing.T) {
	inner := OrderedProperties{
		{Name: "street", Def: PropertyDef{Name: "street", Kind: KindString, Required: true}},
		{Name: "zip", Def: PropertyDef{Name: "zip", Kind: KindString, Required: false}},
	}
	def := PropertyDef{Name: "address", Kind: KindObject, Required: true, Properties: inner}
	v := Value{Kind: KindObject, Object: OrderedValues{
		{Name: "street", Value: StringValue("1 Main St")},
	}}

	enc, err := EncodePropertyPayload(def, &v)
	require.NoError(t, err)

	got, rest, err := DecodePropertyPayload(def, enc)
	require.NoError(t, err)
	require.Empty(t, rest)
	street, ok := got.Object.Get("street")
	require.True(t, ok)
	require.Equal(t, "1 Main St", street.Str)
	_, ok = got.Object.Get("zip")
	require.False(t, ok)
}

func TestArrayPayloadRoundTrip(t *testing.T) {
	itemType := &PropertyDef{Kind: KindInteger, Required: true}
	def := PropertyDef{Name: "scores", Kind: KindArray, Required: true, ItemType: itemType}
	v := Value{Kind: KindArray, Array: []Value{IntegerValue(1), IntegerValue(2), IntegerValue(3)}}

	enc, err := EncodePropertyPayload(def, &v)
	require.NoError(t, err)

	got, rest, err := DecodePropertyPayload(def, enc)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Len(t, got.Array, 3)
	require.Equal(t, int64(2), got.Array[1].Int)
}

func TestVariableTypeArrayRoundTrip(t *testing.T) {
	def := PropertyDef{Name: "mixed", Kind: KindVariableTypeArray, Required: true}
	v := Value{Kind: KindVariableTypeArray, Array: []Value{
		IntegerValue(7),
		StringValue("x"),
		BooleanValue(true),
	}}

	enc, err := EncodePropertyPayload(def, &v)
	require.NoError(t, err)

	got, rest, err := DecodePropertyPayload(def, enc)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Len(t, got.Array, 3)
	require.Equal(t, int64(7), got.Array[0].Int)
	require.Equal(t, "x", got.Array[1].Str)
	require.True(t, got.Array[2].Bool)
}

func TestDecodeCorruptedFixedWidthScalar(t *testing.T) {
	def := PropertyDef{Name: "age", Kind: KindInteger, Required: true}
	_, _, err := DecodePropertyPayload(def, []byte{1, 2, 3})
	require.ErrorIs(t, err, ErrCorruptedSerialization)
}

func TestEncodeDecodeDocumentPropertiesRoundTrip(t *testing.T) {
	props := OrderedProperties{
		{Name: "name", Def: PropertyDef{Name: "name", Kind: KindString, Required: true}},
		{Name: "age", Def: PropertyDef{Name: "age", Kind: KindInteger, Required: false}},
	}
	values := OrderedValues{
		{Name: "name", Value: StringValue("alice")},
		{Name: "age", Value: IntegerValue(33)},
	}

	enc, err := EncodeDocumentProperties(props, values)
	require.NoError(t, err)

	got, err := DecodeDocumentProperties(props, enc)
	require.NoError(t, err)
	name, ok := got.Get("name")
	require.True(t, ok)
	require.Equal(t, "alice", name.Str)
}

func TestDecodeCorruptedLengthPrefixed(t *testing.T) {
	def := PropertyDef{Name: "name", Kind: KindString, Required: true}
	// Declares a 10-byte string but supplies only 2.
	buf := append([]byte{10}, []byte("ab")...)
	_, _, err := DecodePropertyPayload(def, buf)
	require.ErrorIs(t, err, ErrCorruptedSerialization)
}
