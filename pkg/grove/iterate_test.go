package grove

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/platformdrive/drivecore/pkg/storageflags"
)

func TestIterateChildrenVisitsOnlyDirectChildrenInOrder(t *testing.T) {
	s := newTestStore(t)
	flags := storageflags.NewSingleEpoch(0)

	_, err := s.InsertEmptyTreeIfNotExists(nil, []byte("docs"), flags)
	require.NoError(t, err)
	subtree := [][]byte{[]byte("docs")}
	require.NoError(t, s.Insert(subtree, []byte("b"), NewItem([]byte("2"), flags)))
	require.NoError(t, s.Insert(subtree, []byte("a"), NewItem([]byte("1"), flags)))
	require.NoError(t, s.Insert(nil, []byte("unrelated"), NewItem([]byte("x"), flags)))

	var keys [][]byte
	err = s.IterateChildren(subtree, func(e Entry) (bool, error) {
		keys = append(keys, e.Key)
		return true, nil
	})
	require.NoError(t, err)
	require.Len(t, keys, 2)
	require.Equal(t, []byte("a"), keys[0])
	require.Equal(t, []byte("b"), keys[1])
}

func TestIterateChildrenStopsEarly(t *testing.T) {
	s := newTestStore(t)
	flags := storageflags.NewSingleEpoch(0)

	require.NoError(t, s.Insert(nil, []byte("a"), NewItem([]byte("1"), flags)))
	require.NoError(t, s.Insert(nil, []byte("b"), NewItem([]byte("2"), flags)))

	count := 0
	err := s.IterateChildren(nil, func(e Entry) (bool, error) {
		count++
		return false, nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
