package fee

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/platformdrive/drivecore/pkg/epoch"
)

func TestRefundBoundaryScenario(t *testing.T) {
	refundAmount, leftovers, err := Refund(1_200_005, epoch.GenesisEpochIndex, 42)
	require.NoError(t, err)
	require.EqualValues(t, 1_074_120, refundAmount)
	require.EqualValues(t, 5, leftovers)
}
