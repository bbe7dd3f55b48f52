package dex_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voi-labs/vqs/dex"
)

func TestSwapOutput(t *testing.T) {
	tests := map[string]struct {
		reserveIn  int64
		reserveOut int64
		amountIn   int64
		feeBps     uint64

		expectedOut int64
	}{
		"balanced pool, 30 bps fee": {
			reserveIn:  1_000_000,
			reserveOut: 1_000_000,
			amountIn:   10_000,
			feeBps:     30,

			expectedOut: 9_871,
		},
		"no fee": {
			reserveIn:  1_000_000,
			reserveOut: 1_000_000,
			amountIn:   10_000,
			feeBps:     0,

			// 1e6 * 1e4 / (1e6 + 1e4) truncated
			expectedOut: 9_900,
		},
		"zero amount in": {
			reserveIn:  1_000_000,
			reserveOut: 1_000_000,
			amountIn:   0,
			feeBps:     30,

			expectedOut: 0,
		},
		"zero reserves": {
			reserveIn:  0,
			reserveOut: 0,
			amountIn:   10_000,
			feeBps:     30,

			expectedOut: 0,
		},
		"fee at denominator": {
			reserveIn:  1_000_000,
			reserveOut: 1_000_000,
			amountIn:   10_000,
			feeBps:     10_000,

			expectedOut: 0,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			out := dex.SwapOutput(
				sdkmath.NewInt(tc.reserveIn),
				sdkmath.NewInt(tc.reserveOut),
				sdkmath.NewInt(tc.amountIn),
				tc.feeBps,
			)

			require.Equal(t, tc.expectedOut, out.Int64())
		})
	}
}

// For positive input, positive reserves and a fee below the denominator the
// output is strictly positive and strictly below the output reserve.
func TestSwapOutput_Bounds(t *testing.T) {
	reserves := []int64{1, 1_000, 1_000_000, 100_000_000}
	amounts := []int64{1, 500, 250_000}
	fees := []uint64{0, 30, 100, 9_999}

	for _, reserveIn := range reserves {
		for _, reserveOut := range reserves {
			for _, amountIn := range amounts {
				for _, fee := range fees {
					out := dex.SwapOutput(sdkmath.NewInt(reserveIn), sdkmath.NewInt(reserveOut), sdkmath.NewInt(amountIn), fee)

					require.True(t, out.GTE(sdkmath.ZeroInt()))
					require.True(t, out.LT(sdkmath.NewInt(reserveOut)), "out (%s) must stay below reserveOut (%d)", out, reserveOut)
				}
			}
		}
	}
}

// Holding reserves and fee fixed, the output is non-decreasing in the input.
func TestSwapOutput_Monotonic(t *testing.T) {
	reserveIn := sdkmath.NewInt(50_000_000)
	reserveOut := sdkmath.NewInt(75_000_000)

	prev := sdkmath.ZeroInt()
	for amountIn := int64(1); amountIn <= 1_000_000; amountIn += 7_919 {
		out := dex.SwapOutput(reserveIn, reserveOut, sdkmath.NewInt(amountIn), 30)

		require.True(t, out.GTE(prev), "output decreased at amountIn (%d)", amountIn)
		prev = out
	}
}

func TestMinOut(t *testing.T) {
	// 1% slippage on the scenario output.
	minOut := dex.MinOut(sdkmath.NewInt(9_871), 100)
	require.Equal(t, int64(9_772), minOut.Int64())

	// Zero slippage passes the amount through.
	require.Equal(t, int64(9_871), dex.MinOut(sdkmath.NewInt(9_871), 0).Int64())

	// Full slippage and non-positive amounts degrade to zero.
	require.True(t, dex.MinOut(sdkmath.NewInt(9_871), 10_000).IsZero())
	require.True(t, dex.MinOut(sdkmath.ZeroInt(), 100).IsZero())
}

func TestPriceImpact(t *testing.T) {
	reserveIn := sdkmath.NewInt(1_000_000)
	reserveOut := sdkmath.NewInt(1_000_000)
	amountIn := sdkmath.NewInt(10_000)
	amountOut := dex.SwapOutput(reserveIn, reserveOut, amountIn, 30)

	impact := dex.PriceImpact(reserveIn, reserveOut, amountIn, amountOut)

	// Spot moves from 1.0 to roughly 0.9803; about 2% impact.
	assert.InDelta(t, 0.0196, impact, 0.001)

	// A larger trade against the same pool moves the price further.
	largerOut := dex.SwapOutput(reserveIn, reserveOut, sdkmath.NewInt(100_000), 30)
	largerImpact := dex.PriceImpact(reserveIn, reserveOut, sdkmath.NewInt(100_000), largerOut)
	assert.Greater(t, largerImpact, impact)

	// Degenerate inputs report zero.
	assert.Zero(t, dex.PriceImpact(sdkmath.ZeroInt(), reserveOut, amountIn, amountOut))
	assert.Zero(t, dex.PriceImpact(reserveIn, reserveOut, sdkmath.ZeroInt(), sdkmath.ZeroInt()))
}
