package storageflags

import (
	"github.com/platformdrive/drivecore/pkg/identifier"
)

// reconcileOwners decides the owner (and ownedness) of a merge result,
// applying strategy only when both sides are owned and disagree.
func reconcileOwners(ours, theirs Flags, strategy OwnerConflictStrategy) (identifier.Identifier, bool, error) {
	oursOwned, theirsOwned := ours.Kind.Owned(), theirs.Kind.Owned()
	switch {
	case !oursOwned && !theirsOwned:
		return identifier.Identifier{}, false, nil
	case oursOwned && !theirsOwned:
		return ours.Owner, true, nil
	case !oursOwned && theirsOwned:
		return theirs.Owner, true, nil
	}
	if ours.Owner == theirs.Owner {
		return ours.Owner, true, nil
	}
	switch strategy {
	case UseOurs:
		return ours.Owner, true, nil
	case UseTheirs:
		return theirs.Owner, true, nil
	default:
		return identifier.Identifier{}, false, ErrDifferentOwners
	}
}

func ownedKind(owned bool) Kind {
	if owned {
		return KindMultiEpochOwned
	}
	return KindMultiEpoch
}

// CombineAddedBytes merges ours with theirs during an update that added
// addedBytes net new bytes to the node, reconciling their base epochs.
func CombineAddedBytes(ours, theirs Flags, addedBytes uint64, strategy OwnerConflictStrategy) (Flags, error) {
	owner, owned, err := reconcileOwners(ours, theirs, strategy)
	if err != nil {
		return Flags{}, err
	}

	var base uint16
	merged := cloneAdded(ours.Added)
	if merged == nil {
		merged = map[uint16]uint64{}
	}

	switch {
	case theirs.Base == ours.Base:
		base = ours.Base
		for epoch, bytes := range theirs.Added {
			merged[epoch] = bytes
		}
	case theirs.Base > ours.Base:
		base = ours.Base
		merged[theirs.Base] += addedBytes
		for epoch, bytes := range theirs.Added {
			merged[epoch] = bytes
		}
	default: // theirs.Base < ours.Base
		return Flags{}, ErrDifferentBaseEpoch
	}

	if len(merged) == 0 {
		merged = nil
	}
	return Flags{Kind: ownedKind(owned), Base: base, Added: merged, Owner: owner}, nil
}

// CombineRemovedBytes merges ours with theirs during an update that removed
// bytes from previously-tracked epochs. removedPerEpoch gives the number of
// bytes removed per epoch; an epoch absent from the merged Added map (and
// not equal to the base epoch) is an error, as is removing more bytes than
// were ever recorded for that epoch.
func CombineRemovedBytes(ours, theirs Flags, removedPerEpoch map[uint16]uint64, strategy OwnerConflictStrategy) (Flags, error) {
	owner, owned, err := reconcileOwners(ours, theirs, strategy)
	if err != nil {
		return Flags{}, err
	}

	var base uint16
	merged := cloneAdded(ours.Added)
	if merged == nil {
		merged = map[uint16]uint64{}
	}

	switch {
	case theirs.Base == ours.Base:
		base = ours.Base
		for epoch, bytes := range theirs.Added {
			merged[epoch] = bytes
		}
	case theirs.Base > ours.Base:
		base = ours.Base
		for epoch, bytes := range theirs.Added {
			merged[epoch] = bytes
		}
	default:
		return Flags{}, ErrDifferentBaseEpoch
	}

	for epoch, removed := range removedPerEpoch {
		if removed == 0 {
			continue
		}
		if epoch == base {
			// Base-epoch bytes are tracked by the stored element itself,
			// not by this map; nothing to subtract here.
			continue
		}
		current, ok := merged[epoch]
		if !ok || current < removed {
			return Flags{}, ErrNoAssociatedStorage
		}
		remaining := current - removed
		if remaining == 0 {
			delete(merged, epoch)
		} else {
			merged[epoch] = remaining
		}
	}

	if len(merged) == 0 {
		merged = nil
	}
	return Flags{Kind: ownedKind(owned), Base: base, Added: merged, Owner: owner}, nil
}
