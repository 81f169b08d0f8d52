package fee

import "github.com/platformdrive/drivecore/pkg/epoch"

// Refund computes the amount owed back to a client when storageFee-priced
// bytes, originally paid starting at startEpoch, are freed at currentEpoch:
// refund_amount = storage_fee * (1 - already_consumed_fraction). The
// per-epoch table walk that reconstructs the consumed fraction lives in
// pkg/epoch (component F owns FEE_DISTRIBUTION_TABLE); this is the
// fee-accounting-facing entry point for it. The rounding leftover is
// returned separately and is not part of refundAmount.
// epoch.SubtractRefundsFromEpochCredits takes only refundAmount; it settles
// its own redistribution rounding against the current epoch's pool.
func Refund(storageFee uint64, startEpoch, currentEpoch epoch.EpochIndex) (refundAmount, leftovers uint64, err error) {
	return epoch.CalculateStorageFeeRefundAmountAndLeftovers(storageFee, startEpoch, currentEpoch)
}
