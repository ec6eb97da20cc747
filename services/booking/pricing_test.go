package booking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeTotalFee(t *testing.T) {
	require.Equal(t, 20.0, ComputeTotalFee(20, 60))
	require.Equal(t, 10.0, ComputeTotalFee(20, 30))
	require.Equal(t, 16.88, ComputeTotalFee(22.50, 45)) // 16.875 rounds up
	require.Equal(t, 0.33, ComputeTotalFee(19.99, 1))
}

func TestSplitFee(t *testing.T) {
	platform, payout := SplitFee(100, 0.15)
	require.Equal(t, 15.0, platform)
	require.Equal(t, 85.0, payout)

	// Awkward totals: the payout is the remainder, so rounding the
	// platform cut can never make the parts disagree with the whole.
	totals := []float64{0.01, 0.03, 9.99, 16.88, 33.35, 41.67, 99.99, 123.45}
	for _, total := range totals {
		platform, payout := SplitFee(total, 0.15)
		sum := math.Round((platform + payout) * 100)
		require.Equal(t, math.Round(total*100), sum,
			"platform %.2f + payout %.2f must equal total %.2f to the cent", platform, payout, total)
		require.GreaterOrEqual(t, platform, 0.0)
		require.GreaterOrEqual(t, payout, 0.0)
	}
}

func TestSplitFeeZeroRate(t *testing.T) {
	platform, payout := SplitFee(42.50, 0)
	require.Equal(t, 0.0, platform)
	require.Equal(t, 42.50, payout)
}
