package grove

import (
	ics23 "github.com/cosmos/ics23/go"
)

// Query names a single (path, key) address to prove.
type Query struct {
	Path [][]byte
	Key  []byte
}

// ProofEntry pairs the flattened address with its ICS23 commitment proof —
// a membership proof if the key was present, a non-membership proof
// otherwise.
type ProofEntry struct {
	FlatKey    []byte
	Commitment *ics23.CommitmentProof
}

// Proof is the result of proving a set of queries against the tree's
// current root.
type Proof struct {
	RootHash []byte
	Entries  []ProofEntry
}

// Prove builds membership or non-membership proofs for every query, all
// anchored to the tree's current root hash.
func (s *Store) Prove(queries []Query) (Proof, error) {
	root, err := s.RootHash()
	if err != nil {
		return Proof{}, errorsWrap(err)
	}

	entries := make([]ProofEntry, 0, len(queries))
	for _, q := range queries {
		flat := encodePathKey(q.Path, q.Key)
		has, err := s.tree.Has(flat)
		if err != nil {
			return Proof{}, errorsWrap(err)
		}

		var commitment *ics23.CommitmentProof
		if has {
			commitment, err = s.tree.GetMembershipProof(flat)
		} else {
			commitment, err = s.tree.GetNonMembershipProof(flat)
		}
		if err != nil {
			return Proof{}, ErrInvalidProof
		}
		entries = append(entries, ProofEntry{FlatKey: flat, Commitment: commitment})
	}
	return Proof{RootHash: root, Entries: entries}, nil
}

// VerifyMembership checks that entry proves value was stored at its flat
// key under root.
func VerifyMembership(root []byte, entry ProofEntry, value []byte) bool {
	return ics23.VerifyMembership(ics23.IavlSpec, root, entry.Commitment, entry.FlatKey, value)
}

// VerifyNonMembership checks that entry proves no value is stored at its
// flat key under root.
func VerifyNonMembership(root []byte, entry ProofEntry) bool {
	return ics23.VerifyNonMembership(ics23.IavlSpec, root, entry.Commitment, entry.FlatKey)
}
