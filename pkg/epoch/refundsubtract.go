package epoch

import sdkmath "cosmossdk.io/math"

// OriginalRemovedCreditsMultiplierFrom reconstructs the multiplier needed to
// recover the originally-paid fee from a refund amount: fees are paid up
// front but credited per-epoch, so a removal at startRepaymentFromEpoch of
// bytes originally paid at startEpoch must account for the fraction of the
// (startEpoch, startEpoch+PerpetualStorageEpochs) window already consumed.
// The result is 1 divided by the sum of the table shares still owed over
// that remaining window.
func OriginalRemovedCreditsMultiplierFrom(startEpoch, startRepaymentFromEpoch EpochIndex) sdkmath.LegacyDec {
	paidEpochs := startRepaymentFromEpoch - startEpoch
	currentYear := paidEpochs / EpochsPerYear
	epochsPerYearDec := sdkmath.LegacyNewDec(int64(EpochsPerYear))

	ratioUsed := sdkmath.LegacyZeroDec()
	for year := EpochIndex(0); year < PerpetualStorageYears; year++ {
		switch {
		case year < currentYear:
			continue
		case year == currentYear:
			epochsLeftInYear := EpochsPerYear - paidEpochs%EpochsPerYear
			fraction := sdkmath.LegacyNewDec(int64(epochsLeftInYear)).Quo(epochsPerYearDec)
			ratioUsed = ratioUsed.Add(FeeDistributionTable[year].Mul(fraction))
		default:
			ratioUsed = ratioUsed.Add(FeeDistributionTable[year])
		}
	}
	return sdkmath.LegacyOneDec().Quo(ratioUsed)
}

// restoreOriginalRemovedCreditsAmount inflates refundAmount back to the
// shape of the original storage fee, so it can be redistributed across the
// same table/epoch layout the original payment used.
func restoreOriginalRemovedCreditsAmount(refundAmount sdkmath.LegacyDec, startEpoch, startRepaymentFromEpoch EpochIndex) sdkmath.LegacyDec {
	return refundAmount.Mul(OriginalRemovedCreditsMultiplierFrom(startEpoch, startRepaymentFromEpoch))
}

// refundStorageFeeToEpochsMap distributes a refund across the epochs from
// skipUntilEpoch through the end of the perpetual-storage window, using the
// restored (reinflated) amount so shares match the original per-epoch shape.
func refundStorageFeeToEpochsMap(refundAmount uint64, startEpoch, skipUntilEpoch EpochIndex, fn func(epochIndex EpochIndex, share uint64) error) (uint64, error) {
	if refundAmount == 0 {
		return 0, nil
	}

	refundDec := sdkmath.LegacyNewDecFromInt(sdkmath.NewIntFromUint64(refundAmount))
	estimated := restoreOriginalRemovedCreditsAmount(refundDec, startEpoch, skipUntilEpoch)
	epochsPerYearDec := sdkmath.LegacyNewDec(int64(EpochsPerYear))

	startYear := (skipUntilEpoch - startEpoch) / EpochsPerYear
	remaining := refundAmount

	for year := startYear; year < PerpetualStorageYears; year++ {
		epochShare, err := yearlyEpochShare(estimated, epochsPerYearDec, year)
		if err != nil {
			return 0, err
		}

		var yearStart EpochIndex
		if year == startYear {
			yearStart = skipUntilEpoch
		} else {
			yearStart = startEpoch + EpochsPerYear*year
		}
		yearEnd := startEpoch + (year+1)*EpochsPerYear

		for e := yearStart; e < yearEnd; e++ {
			if err := fn(e, epochShare); err != nil {
				return 0, err
			}
			if epochShare > remaining {
				return 0, ErrOverflow
			}
			remaining -= epochShare
		}
	}
	return remaining, nil
}

// SubtractRefundsFromEpochCredits charges refundAmount back against the
// epoch pools it was originally credited to, skipping epochs up to and
// including currentEpoch (already paid out to proposers), and settling the
// small rounding leftover against currentEpoch's own pool.
func SubtractRefundsFromEpochCredits(creditsPerEpoch map[EpochIndex]int64, refundAmount uint64, startEpoch, currentEpoch EpochIndex) error {
	leftovers, err := refundStorageFeeToEpochsMap(refundAmount, startEpoch, currentEpoch+1, func(epochIndex EpochIndex, share uint64) error {
		next, err := subInt64UintChecked(creditsPerEpoch[epochIndex], share, "epoch credits")
		if err != nil {
			return ErrOverflow
		}
		creditsPerEpoch[epochIndex] = next
		return nil
	})
	if err != nil {
		return err
	}

	next, err := subInt64UintChecked(creditsPerEpoch[currentEpoch], leftovers, "current epoch credits")
	if err != nil {
		return ErrOverflow
	}
	creditsPerEpoch[currentEpoch] = next
	return nil
}

// CalculateStorageFeeRefundAmountAndLeftovers computes how much of
// storageFee (originally paid starting at startEpoch) remains owed for the
// unconsumed window as of currentEpoch, and the small amount lost to
// floor-rounding during the original distribution.
func CalculateStorageFeeRefundAmountAndLeftovers(storageFee uint64, startEpoch, currentEpoch EpochIndex) (refundAmount, leftovers uint64, err error) {
	var skippedAmount uint64
	leftovers, err = DistributeStorageFee(storageFee, startEpoch, func(epochIndex EpochIndex, share uint64) error {
		if epochIndex < currentEpoch+1 {
			skippedAmount += share
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	if skippedAmount+leftovers > storageFee {
		return 0, 0, ErrOverflow
	}
	return storageFee - skippedAmount - leftovers, leftovers, nil
}
