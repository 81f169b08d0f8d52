package grove

import "encoding/binary"

// encodePathKey flattens a hierarchical (path, key) address into the single
// byte string used as the backing IAVL tree's leaf key. Path is the sequence
// of subtree keys from the root down to the element's parent subtree; key is
// the element's own key within that subtree.
//
// Each segment is length-prefixed so distinct (path, key) pairs never
// collide regardless of byte content.
func encodePathKey(path [][]byte, key []byte) []byte {
	out := encodePathPrefix(path)
	out = binary.AppendUvarint(out, uint64(len(key)))
	out = append(out, key...)
	return out
}

// parentOf returns the (grandparent path, parent key) pair addressing the
// Tree element that represents path itself, and ok=false if path is the
// root (which has no addressable Tree element of its own).
func parentOf(path [][]byte) (parentPath [][]byte, parentKey []byte, ok bool) {
	if len(path) == 0 {
		return nil, nil, false
	}
	return path[:len(path)-1], path[len(path)-1], true
}

func appendPath(path [][]byte, key []byte) [][]byte {
	next := make([][]byte, len(path)+1)
	copy(next, path)
	next[len(path)] = key
	return next
}
