package epoch

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestFeeDistributionTableSumsToOne(t *testing.T) {
	require.True(t, TableSum().Equal(sdkmath.LegacyOneDec()))
}

func TestFeeDistributionTableHasFiftyEntries(t *testing.T) {
	require.Len(t, FeeDistributionTable, PerpetualStorageYears)
}
