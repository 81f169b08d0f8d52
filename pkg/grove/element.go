package grove

import (
	"encoding/binary"

	"github.com/platformdrive/drivecore/pkg/storageflags"
)

// Kind discriminates the Element variants.
type Kind byte

const (
	KindItem Kind = iota
	KindReference
	KindTree
)

// Element is a tagged union over the three things a tree node may hold.
// Only the fields relevant to Kind are meaningful.
type Element struct {
	Kind  Kind
	Flags storageflags.Flags

	// Item
	ItemValue []byte

	// Reference: resolves to the Key element living under TargetPath.
	// HopCount bounds how many chained references a single Get will follow.
	TargetPath [][]byte
	TargetKey  []byte
	HopCount   uint8

	// Tree: ChildCount tracks how many entries currently live directly
	// under this subtree, so DeleteUpTreeWhileEmpty can prune without a
	// full scan.
	ChildCount uint64
}

// NewItem constructs an Item element.
func NewItem(value []byte, flags storageflags.Flags) Element {
	return Element{Kind: KindItem, ItemValue: append([]byte(nil), value...), Flags: flags}
}

// NewReference constructs a Reference element pointing at (targetPath, targetKey).
func NewReference(targetPath [][]byte, targetKey []byte, hopCount uint8, flags storageflags.Flags) Element {
	return Element{
		Kind:       KindReference,
		TargetPath: targetPath,
		TargetKey:  append([]byte(nil), targetKey...),
		HopCount:   hopCount,
		Flags:      flags,
	}
}

// NewTree constructs an empty Tree element.
func NewTree(flags storageflags.Flags) Element {
	return Element{Kind: KindTree, Flags: flags}
}

// Serialize encodes e for storage as a tree leaf value.
func (e Element) Serialize() []byte {
	out := []byte{byte(e.Kind)}
	flagBytes := storageflags.Serialize(e.Flags)
	out = binary.AppendUvarint(out, uint64(len(flagBytes)))
	out = append(out, flagBytes...)

	switch e.Kind {
	case KindItem:
		out = binary.AppendUvarint(out, uint64(len(e.ItemValue)))
		out = append(out, e.ItemValue...)
	case KindReference:
		out = binary.AppendUvarint(out, uint64(len(e.TargetPath)))
		for _, seg := range e.TargetPath {
			out = binary.AppendUvarint(out, uint64(len(seg)))
			out = append(out, seg...)
		}
		out = binary.AppendUvarint(out, uint64(len(e.TargetKey)))
		out = append(out, e.TargetKey...)
		out = append(out, e.HopCount)
	case KindTree:
		out = binary.AppendUvarint(out, e.ChildCount)
	}
	return out
}

// DeserializeElement is the inverse of Element.Serialize.
func DeserializeElement(b []byte) (Element, error) {
	if len(b) < 1 {
		return Element{}, ErrCorruptedTree
	}
	kind := Kind(b[0])
	buf := b[1:]

	flagLen, n := binary.Uvarint(buf)
	if n <= 0 || uint64(len(buf)-n) < flagLen {
		return Element{}, ErrCorruptedTree
	}
	buf = buf[n:]
	flags, err := storageflags.Deserialize(buf[:flagLen])
	if err != nil {
		return Element{}, ErrCorruptedTree
	}
	buf = buf[flagLen:]

	e := Element{Kind: kind, Flags: flags}
	switch kind {
	case KindItem:
		valLen, n := binary.Uvarint(buf)
		if n <= 0 || uint64(len(buf)-n) < valLen {
			return Element{}, ErrCorruptedTree
		}
		buf = buf[n:]
		e.ItemValue = append([]byte(nil), buf[:valLen]...)
	case KindReference:
		segCount, n := binary.Uvarint(buf)
		if n <= 0 {
			return Element{}, ErrCorruptedTree
		}
		buf = buf[n:]
		path := make([][]byte, 0, segCount)
		for i := uint64(0); i < segCount; i++ {
			segLen, n := binary.Uvarint(buf)
			if n <= 0 || uint64(len(buf)-n) < segLen {
				return Element{}, ErrCorruptedTree
			}
			buf = buf[n:]
			path = append(path, append([]byte(nil), buf[:segLen]...))
			buf = buf[segLen:]
		}
		e.TargetPath = path

		keyLen, n := binary.Uvarint(buf)
		if n <= 0 || uint64(len(buf)-n) < keyLen {
			return Element{}, ErrCorruptedTree
		}
		buf = buf[n:]
		e.TargetKey = append([]byte(nil), buf[:keyLen]...)
		buf = buf[keyLen:]

		if len(buf) < 1 {
			return Element{}, ErrCorruptedTree
		}
		e.HopCount = buf[0]
	case KindTree:
		count, n := binary.Uvarint(buf)
		if n <= 0 {
			return Element{}, ErrCorruptedTree
		}
		e.ChildCount = count
	default:
		return Element{}, ErrCorruptedTree
	}
	return e, nil
}
