package epoch

import "github.com/platformdrive/drivecore/pkg/identifier"

// ProposerRecord is one masternode's unpaid block-proposal tally for a
// given epoch, as recorded in that epoch's proposer tree.
type ProposerRecord struct {
	ProTxHash      identifier.Identifier
	ProposedBlocks uint64
}

// MasternodeShare is a standing instruction a masternode operator has
// registered to split part of its block-reward payout to another identity.
type MasternodeShare struct {
	PayToID       identifier.Identifier
	PercentageBps uint32 // out of 10000
}

// Payout is one credit owed to an identity as a result of a payout tick.
type Payout struct {
	Recipient identifier.Identifier
	Amount    uint64
}

// State is the bookkeeping a caller carries across blocks to drive the
// payout loop: which epoch is current, which epoch is the oldest still
// owed a payout, and each epoch's accumulated fee-pool balance.
type State struct {
	CurrentEpoch     EpochIndex
	UnpaidEpochIndex EpochIndex
	CreditsPerEpoch  map[EpochIndex]int64
	EpochStartHeight map[EpochIndex]int64
}

// NewState returns an empty epoch state starting at genesis.
func NewState() *State {
	return &State{
		CreditsPerEpoch:  map[EpochIndex]int64{},
		EpochStartHeight: map[EpochIndex]int64{},
	}
}
