package document

import (
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeInt64SortableOrdering(t *testing.T) {
	values := []int64{-1 << 40, -1000, -1, 0, 1, 1000, 1 << 40}
	encoded := make([][]byte, len(values))
	for i, v := range values {
		encoded[i] = EncodeInt64Sortable(v)
	}
	require.True(t, sort.SliceIsSorted(encoded, func(i, j int) bool {
		return bytes.Compare(encoded[i], encoded[j]) < 0
	}))

	for i, v := range values {
		got, err := DecodeInt64Sortable(encoded[i])
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestEncodeFloat64SortableOrdering(t *testing.T) {
	values := []float64{-1e10, -1.5, -0.0001, 0, 0.0001, 1.5, 1e10}
	encoded := make([][]byte, len(values))
	for i, v := range values {
		encoded[i] = EncodeFloat64Sortable(v)
	}
	require.True(t, sort.SliceIsSorted(encoded, func(i, j int) bool {
		return bytes.Compare(encoded[i], encoded[j]) < 0
	}))

	for i, v := range values {
		got, err := DecodeFloat64Sortable(encoded[i])
		require.NoError(t, err)
		require.InDelta(t, v, got, 1e-9)
	}
}

func TestEncodeBoolSortableOrdering(t *testing.T) {
	require.True(t, bytes.Compare(EncodeBoolSortable(false), EncodeBoolSortable(true)) < 0)

	f, err := DecodeBoolSortable(EncodeBoolSortable(false))
	require.NoError(t, err)
	require.False(t, f)

	tr, err := DecodeBoolSortable(EncodeBoolSortable(true))
	require.NoError(t, err)
	require.True(t, tr)

	_, err = DecodeBoolSortable([]byte{7})
	require.ErrorIs(t, err, ErrCorruptedSerialization)
}

func TestEncodeStringSortableEmpty(t *testing.T) {
	require.Equal(t, []byte{0x00}, EncodeStringSortable(""))
	require.Equal(t, []byte("abc"), EncodeStringSortable("abc"))
}

func TestEncodeIndexValueRejectsNonIndexable(t *testing.T) {
	def := PropertyDef{Kind: KindObject}
	_, err := EncodeIndexValue(def, Value{Kind: KindObject})
	require.ErrorIs(t, err, ErrNotIndexable)
}

func TestEncodeIndexValueDispatch(t *testing.T) {
	b, err := EncodeIndexValue(PropertyDef{Kind: KindString}, StringValue("hello"))
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), b)

	b, err = EncodeIndexValue(PropertyDef{Kind: KindInteger}, IntegerValue(42))
	require.NoError(t, err)
	n, err := DecodeInt64Sortable(b)
	require.NoError(t, err)
	require.Equal(t, int64(42), n)
}
