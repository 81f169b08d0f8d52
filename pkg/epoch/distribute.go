package epoch

import sdkmath "cosmossdk.io/math"

// DistributeStorageFee walks storageFee across PerpetualStorageYears years
// starting at startEpoch, invoking fn once per epoch with that epoch's share,
// and returns the residual left over to floor-rounding. fn is never called
// for a zero storageFee.
func DistributeStorageFee(storageFee uint64, startEpoch EpochIndex, fn func(epochIndex EpochIndex, share uint64) error) (uint64, error) {
	if storageFee == 0 {
		return 0, nil
	}

	feeDec := sdkmath.LegacyNewDecFromInt(sdkmath.NewIntFromUint64(storageFee))
	epochsPerYearDec := sdkmath.LegacyNewDec(int64(EpochsPerYear))

	remaining := storageFee
	for year := EpochIndex(0); year < PerpetualStorageYears; year++ {
		epochShare, err := yearlyEpochShare(feeDec, epochsPerYearDec, year)
		if err != nil {
			return 0, err
		}

		yearStart := startEpoch + EpochsPerYear*year
		for e := yearStart; e < yearStart+EpochsPerYear; e++ {
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

// DistributeStorageFeeToEpochs is the collection-mutating form of
// DistributeStorageFee, crediting each epoch's share into creditsPerEpoch.
func DistributeStorageFeeToEpochs(creditsPerEpoch map[EpochIndex]int64, storageFee uint64, startEpoch EpochIndex) (uint64, error) {
	return DistributeStorageFee(storageFee, startEpoch, func(epochIndex EpochIndex, share uint64) error {
		next, err := addInt64UintChecked(creditsPerEpoch[epochIndex], share, "epoch credits")
		if err != nil {
			return ErrOverflow
		}
		creditsPerEpoch[epochIndex] = next
		return nil
	})
}

func yearlyEpochShare(feeDec, epochsPerYearDec sdkmath.LegacyDec, year EpochIndex) (uint64, error) {
	yearShare := feeDec.Mul(FeeDistributionTable[year])
	epochShareInt := yearShare.Quo(epochsPerYearDec).TruncateInt()
	if !epochShareInt.IsUint64() {
		return 0, ErrOverflow
	}
	return epochShareInt.Uint64(), nil
}
