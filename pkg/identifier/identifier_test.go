package identifier_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/platformdrive/drivecore/pkg/identifier"
)

func TestFromBytesRoundTrip(t *testing.T) {
	raw := make([]byte, identifier.Size)
	for i := range raw {
		raw[i] = byte(i)
	}
	id, err := identifier.FromBytes(raw)
	require.NoError(t, err)
	require.Equal(t, raw, id.Bytes())

	back, err := identifier.FromBase58(id.String())
	require.NoError(t, err)
	require.Equal(t, id, back)
}

func TestFromBytesWrongLength(t *testing.T) {
	_, err := identifier.FromBytes([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestNilIsZero(t *testing.T) {
	require.True(t, identifier.Nil.IsNil())
	require.True(t, identifier.Identifier{}.IsNil())
}

func TestCompareOrdering(t *testing.T) {
	a := identifier.MustFromBytes(append([]byte{0x01}, make([]byte, 31)...))
	b := identifier.MustFromBytes(append([]byte{0x02}, make([]byte, 31)...))
	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
	require.Equal(t, 0, a.Compare(a))
}
