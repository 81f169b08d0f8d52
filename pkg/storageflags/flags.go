// Package storageflags tracks per-byte provenance on every node stored in
// the authenticated KV tree (pkg/grove), answering "which epoch pool paid
// for this byte, and on whose behalf" so that deletions can be refunded
// correctly.
package storageflags

import (
	"sort"

	"github.com/platformdrive/drivecore/pkg/identifier"
)

// Kind discriminates the four StorageFlags variants. Kept as an explicit
// tag rather than an interface hierarchy per the closed-sum-type design
// used throughout this repo.
type Kind byte

const (
	KindSingleEpoch      Kind = 0
	KindMultiEpoch       Kind = 1
	KindSingleEpochOwned Kind = 2
	KindMultiEpochOwned  Kind = 3
)

func (k Kind) Owned() bool {
	return k == KindSingleEpochOwned || k == KindMultiEpochOwned
}

func (k Kind) Multi() bool {
	return k == KindMultiEpoch || k == KindMultiEpochOwned
}

func (k Kind) Valid() bool {
	return k <= KindMultiEpochOwned
}

// OwnerConflictStrategy decides how to reconcile two owned StorageFlags
// whose owners differ during a merge.
type OwnerConflictStrategy byte

const (
	RaiseIssue OwnerConflictStrategy = iota
	UseOurs
	UseTheirs
)

// Flags is the per-node provenance record. Base is the epoch in which the
// node's original bytes were paid for; Added records bytes paid for in
// later epochs, keyed by epoch index, and never contains the Base epoch
// itself. Owner is meaningful only when Kind.Owned().
type Flags struct {
	Kind  Kind
	Base  uint16
	Added map[uint16]uint64
	Owner identifier.Identifier
}

func NewSingleEpoch(base uint16) Flags {
	return Flags{Kind: KindSingleEpoch, Base: base}
}

func NewMultiEpoch(base uint16, added map[uint16]uint64) Flags {
	return Flags{Kind: KindMultiEpoch, Base: base, Added: cloneAdded(added)}
}

func NewSingleEpochOwned(base uint16, owner identifier.Identifier) Flags {
	return Flags{Kind: KindSingleEpochOwned, Base: base, Owner: owner}
}

func NewMultiEpochOwned(base uint16, added map[uint16]uint64, owner identifier.Identifier) Flags {
	return Flags{Kind: KindMultiEpochOwned, Base: base, Added: cloneAdded(added), Owner: owner}
}

func cloneAdded(m map[uint16]uint64) map[uint16]uint64 {
	if len(m) == 0 {
		return nil
	}
	out := make(map[uint16]uint64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Clone returns a deep copy of f.
func (f Flags) Clone() Flags {
	return Flags{Kind: f.Kind, Base: f.Base, Added: cloneAdded(f.Added), Owner: f.Owner}
}

// TotalAddedBytes sums every entry in Added. It does not include the bytes
// that existed at Base — those are tracked by the stored element's own
// payload size, not by Flags.
func (f Flags) TotalAddedBytes() uint64 {
	var total uint64
	for _, v := range f.Added {
		total += v
	}
	return total
}

// sortedEpochsAsc returns the epochs present in Added, ascending.
func (f Flags) sortedEpochsAsc() []uint16 {
	epochs := make([]uint16, 0, len(f.Added))
	for e := range f.Added {
		epochs = append(epochs, e)
	}
	sort.Slice(epochs, func(i, j int) bool { return epochs[i] < epochs[j] })
	return epochs
}

// sortedEpochsDesc returns the epochs present in Added, descending — used
// for LIFO removal allocation.
func (f Flags) sortedEpochsDesc() []uint16 {
	epochs := f.sortedEpochsAsc()
	for i, j := 0, len(epochs)-1; i < j; i, j = i+1, j-1 {
		epochs[i], epochs[j] = epochs[j], epochs[i]
	}
	return epochs
}
