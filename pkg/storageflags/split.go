package storageflags

import "github.com/platformdrive/drivecore/pkg/identifier"

// RemovalCredits attributes removed-byte counts to the owner whose section
// should be refunded and the epoch whose pool originally paid for them.
// Unowned removals are recorded under identifier.Nil, the all-zero default
// owner.
type RemovalCredits map[identifier.Identifier]map[uint16]uint64

func (rc RemovalCredits) add(owner identifier.Identifier, epoch uint16, bytes uint64) {
	if bytes == 0 {
		return
	}
	section, ok := rc[owner]
	if !ok {
		section = map[uint16]uint64{}
		rc[owner] = section
	}
	section[epoch] += bytes
}

// TotalBytes sums every credited byte count across all owners and epochs.
func (rc RemovalCredits) TotalBytes() uint64 {
	var total uint64
	for _, section := range rc {
		for _, bytes := range section {
			total += bytes
		}
	}
	return total
}

// SplitRemovedBytes allocates removedKeyBytes and removedValueBytes to the
// epochs that paid for them. Key bytes are always charged to the base
// epoch, since removing a key is a structural change independent of which
// epoch paid for the value's later growth. Value bytes are consumed from
// the Added map in descending (most-recent-first) epoch order — a LIFO
// allocation — falling through to the base epoch for any residual once the
// Added map is exhausted.
func (f Flags) SplitRemovedBytes(removedKeyBytes, removedValueBytes uint64) (keyRemoval, valueRemoval RemovalCredits) {
	owner := identifier.Nil
	if f.Kind.Owned() {
		owner = f.Owner
	}

	keyRemoval = RemovalCredits{}
	if removedKeyBytes > 0 {
		keyRemoval.add(owner, f.Base, removedKeyBytes)
	}

	valueRemoval = RemovalCredits{}
	remaining := removedValueBytes
	for _, epoch := range f.sortedEpochsDesc() {
		if remaining == 0 {
			break
		}
		available := f.Added[epoch]
		take := available
		if take > remaining {
			take = remaining
		}
		if take > 0 {
			valueRemoval.add(owner, epoch, take)
			remaining -= take
		}
	}
	if remaining > 0 {
		valueRemoval.add(owner, f.Base, remaining)
	}
	return keyRemoval, valueRemoval
}
