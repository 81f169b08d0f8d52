package epoch

import sdkmath "cosmossdk.io/math"

// EpochIndex identifies an epoch by its sequential position since genesis.
type EpochIndex = uint32

const (
	// EpochsPerYear is the number of epochs a perpetual-storage year is split into.
	EpochsPerYear EpochIndex = 20
	// PerpetualStorageYears is the length, in years, of the payout window a storage fee funds.
	PerpetualStorageYears = 50
	// PerpetualStorageEpochs is PerpetualStorageYears expressed in epochs.
	PerpetualStorageEpochs = PerpetualStorageYears * EpochsPerYear
	// GenesisEpochIndex is the index of the first epoch.
	GenesisEpochIndex EpochIndex = 0
)

// FeeDistributionTable gives, for each of the PerpetualStorageYears years,
// the fraction of a storage fee paid out to masternodes during that year.
// It sums to exactly 1 (see TestFeeDistributionTableSumsToOne).
var FeeDistributionTable = [PerpetualStorageYears]sdkmath.LegacyDec{
	dec("0.05000"), dec("0.04800"), dec("0.04600"), dec("0.04400"), dec("0.04200"),
	dec("0.04000"), dec("0.03850"), dec("0.03700"), dec("0.03550"), dec("0.03400"),
	dec("0.03250"), dec("0.03100"), dec("0.02950"), dec("0.02850"), dec("0.02750"),
	dec("0.02650"), dec("0.02550"), dec("0.02450"), dec("0.02350"), dec("0.02250"),
	dec("0.02150"), dec("0.02050"), dec("0.01950"), dec("0.01875"), dec("0.01800"),
	dec("0.01725"), dec("0.01650"), dec("0.01575"), dec("0.01500"), dec("0.01425"),
	dec("0.01350"), dec("0.01275"), dec("0.01200"), dec("0.01125"), dec("0.01050"),
	dec("0.00975"), dec("0.00900"), dec("0.00825"), dec("0.00750"), dec("0.00675"),
	dec("0.00600"), dec("0.00525"), dec("0.00475"), dec("0.00425"), dec("0.00375"),
	dec("0.00325"), dec("0.00275"), dec("0.00225"), dec("0.00175"), dec("0.00125"),
}

func dec(s string) sdkmath.LegacyDec {
	return sdkmath.LegacyMustNewDecFromStr(s)
}

// TableSum adds every entry of FeeDistributionTable; callers use it to
// verify the table sums to exactly 1.
func TableSum() sdkmath.LegacyDec {
	sum := sdkmath.LegacyZeroDec()
	for _, share := range FeeDistributionTable {
		sum = sum.Add(share)
	}
	return sum
}
