package grove

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/platformdrive/drivecore/pkg/storageflags"
)

func TestProveAndVerifyMembership(t *testing.T) {
	s := newTestStore(t)
	flags := storageflags.NewSingleEpoch(0)
	item := NewItem([]byte("value1"), flags)

	require.NoError(t, s.Insert(nil, []byte("key1"), item))
	_, root, err := s.Commit()
	require.NoError(t, err)

	proof, err := s.Prove([]Query{{Path: nil, Key: []byte("key1")}})
	require.NoError(t, err)
	require.Equal(t, root, proof.RootHash)
	require.Len(t, proof.Entries, 1)

	require.True(t, VerifyMembership(root, proof.Entries[0], item.Serialize()))
}

func TestProveAndVerifyNonMembership(t *testing.T) {
	s := newTestStore(t)
	_, root, err := s.Commit()
	require.NoError(t, err)

	proof, err := s.Prove([]Query{{Path: nil, Key: []byte("missing")}})
	require.NoError(t, err)

	require.True(t, VerifyNonMembership(root, proof.Entries[0]))
}
