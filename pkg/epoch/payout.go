package epoch

import "github.com/platformdrive/drivecore/pkg/identifier"

// ProposersLimit scales the per-tick payout rate with how far the unpaid
// cursor has fallen behind: one point further behind processes fifty more
// proposers this tick, so an idle chain catches back up quickly.
func ProposersLimit(currentEpoch, unpaidEpochIndex EpochIndex) int {
	return int(currentEpoch-unpaidEpochIndex) * 50
}

// PayProposers pays out up to limit proposers from the front of proposers,
// each proposer's masternode reward computed from its share of
// epochTotalBlocks, split among its registered MasternodeShare documents,
// with the chunk's floor-rounding remainder credited to the last processed
// proposer. It returns the resulting payouts and the proposers left unpaid.
func PayProposers(totalFees, epochTotalBlocks uint64, proposers []ProposerRecord, shares map[identifier.Identifier][]MasternodeShare, limit int) ([]Payout, []ProposerRecord, error) {
	if limit < 0 {
		limit = 0
	}
	if limit > len(proposers) {
		limit = len(proposers)
	}
	chunk, remaining := proposers[:limit], proposers[limit:]

	payoutByRecipient := map[identifier.Identifier]uint64{}
	order := make([]identifier.Identifier, 0, limit+4)
	credit := func(id identifier.Identifier, amount uint64) {
		if _, seen := payoutByRecipient[id]; !seen {
			order = append(order, id)
		}
		payoutByRecipient[id] += amount
	}

	var accumulatedRemainder uint64
	for i, p := range chunk {
		reward, remainder, err := mulDivFloor(totalFees, p.ProposedBlocks, epochTotalBlocks)
		if err != nil {
			return nil, nil, ErrOverflow
		}
		accumulatedRemainder += remainder

		masternodeReward := reward
		for _, share := range shares[p.ProTxHash] {
			shareAmount, _, err := mulDivFloor(masternodeReward, uint64(share.PercentageBps), 10000)
			if err != nil {
				return nil, nil, ErrOverflow
			}
			credit(share.PayToID, shareAmount)
			masternodeReward -= shareAmount
		}

		if i == len(chunk)-1 {
			masternodeReward += accumulatedRemainder
		}
		credit(p.ProTxHash, masternodeReward)
	}

	payouts := make([]Payout, 0, len(order))
	for _, id := range order {
		payouts = append(payouts, Payout{Recipient: id, Amount: payoutByRecipient[id]})
	}
	return payouts, remaining, nil
}

// PayoutTick runs one block's worth of the proposer payout loop against
// state. cachedNextEpochStart supplies the end_block_height when the unpaid
// epoch is being paid out before the following epoch has recorded its own
// start height (the epoch-change edge case). It returns the payouts owed
// this tick and the proposers that remain unpaid for the epoch.
func PayoutTick(state *State, proposers []ProposerRecord, shares map[identifier.Identifier][]MasternodeShare, epochTotalBlocks uint64, cachedNextEpochStart int64) ([]Payout, []ProposerRecord, error) {
	unpaid := state.UnpaidEpochIndex
	if unpaid >= state.CurrentEpoch {
		return nil, proposers, nil
	}

	if _, ok := state.EpochStartHeight[unpaid+1]; !ok {
		state.EpochStartHeight[unpaid+1] = cachedNextEpochStart
	}

	limit := ProposersLimit(state.CurrentEpoch, unpaid)

	var totalFees uint64
	if credits := state.CreditsPerEpoch[unpaid]; credits > 0 {
		totalFees = uint64(credits)
	}

	payouts, remaining, err := PayProposers(totalFees, epochTotalBlocks, proposers, shares, limit)
	if err != nil {
		return nil, nil, err
	}

	if len(remaining) == 0 {
		state.UnpaidEpochIndex = unpaid + 1
	}
	return payouts, remaining, nil
}
