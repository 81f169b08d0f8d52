package grove

import "encoding/binary"

// encodePathPrefix returns the constant byte prefix shared by every
// flattened (path, key) address directly under path, i.e. everything
// encodePathKey writes before the trailing key length and bytes.
func encodePathPrefix(path [][]byte) []byte {
	out := binary.AppendUvarint(nil, uint64(len(path)))
	for _, seg := range path {
		out = binary.AppendUvarint(out, uint64(len(seg)))
		out = append(out, seg...)
	}
	return out
}

// prefixUpperBound returns the smallest byte string strictly greater than
// every string with the given prefix, for use as an exclusive iterator end
// bound. Returns nil (unbounded above) if prefix is empty or all 0xFF.
func prefixUpperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// Entry is one (key, element) pair yielded while iterating a subtree.
type Entry struct {
	Key     []byte
	Element Element
}

// IterateChildren visits every entry stored directly under path, in
// ascending key order, until fn returns more=false or an error.
func (s *Store) IterateChildren(path [][]byte, fn func(Entry) (more bool, err error)) error {
	prefix := encodePathPrefix(path)
	end := prefixUpperBound(prefix)

	iter, err := s.tree.Iterator(prefix, end, true)
	if err != nil {
		return errorsWrap(err)
	}
	defer iter.Close()

	for ; iter.Valid(); iter.Next() {
		childKey, ok := childKeySuffix(iter.Key(), prefix)
		if !ok {
			continue
		}
		el, err := DeserializeElement(iter.Value())
		if err != nil {
			return err
		}
		more, err := fn(Entry{Key: childKey, Element: el})
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	return nil
}

// childKeySuffix strips prefix from flat and decodes the remaining
// varint-length-prefixed key, rejecting anything that doesn't parse as a
// complete, well-formed suffix.
func childKeySuffix(flat, prefix []byte) ([]byte, bool) {
	if len(flat) < len(prefix) {
		return nil, false
	}
	for i := range prefix {
		if flat[i] != prefix[i] {
			return nil, false
		}
	}
	rest := flat[len(prefix):]
	keyLen, n := binary.Uvarint(rest)
	if n <= 0 || uint64(len(rest)-n) != keyLen {
		return nil, false
	}
	return rest[n:], true
}
