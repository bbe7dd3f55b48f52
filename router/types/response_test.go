package types_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/router/types"
)

func directPlan() domain.SwapPlan {
	return domain.SwapPlan{
		Tokens:   []uint64{0, 6_779_767},
		AmountIn: sdkmath.NewInt(10_000),
		Hops: []domain.HopSplit{{
			FromToken: 0,
			ToToken:   6_779_767,
			AmountIn:  sdkmath.NewInt(10_000),
			Splits: []domain.SplitAllocation{{
				Pool:        domain.PoolConfig{PoolID: 395_553, Dex: domain.DexNomadex},
				AmountIn:    sdkmath.NewInt(10_000),
				ExpectedOut: sdkmath.NewInt(9_871),
				MinOut:      sdkmath.NewInt(9_772),
				PriceImpact: 0.0129,
			}},
		}},
		ExpectedOut: sdkmath.NewInt(9_871),
		MinOut:      sdkmath.NewInt(9_772),
		PriceImpact: 0.0129,
	}
}

func TestNewSwapQuoteResponse_Direct(t *testing.T) {
	quote := &domain.SwapQuote{
		Plan:         directPlan(),
		Transactions: []string{"dHhuMQ==", "dHhuMg=="},
		NetworkFee:   2_000,
	}

	response := types.NewSwapQuoteResponse(quote, 6, 6)

	require.Equal(t, "10000", response.Quote.InputAmount)
	require.Equal(t, "9871", response.Quote.OutputAmount)
	require.Equal(t, "9772", response.Quote.MinimumOutputAmount)
	require.InDelta(t, 0.9871, response.Quote.Rate, 1e-9)
	require.Equal(t, uint64(2_000), response.Quote.NetworkFee)

	require.Equal(t, "direct", response.Route.Type)
	require.Len(t, response.Route.Pools, 1)
	require.Empty(t, response.Route.Hops)
	require.Equal(t, uint64(395_553), response.Route.Pools[0].PoolID)

	require.NotNil(t, response.PoolID)
	require.Equal(t, uint64(395_553), *response.PoolID)
	require.Len(t, response.UnsignedTransactions, 2)
}

func TestNewSwapQuoteResponse_MultiHop(t *testing.T) {
	plan := domain.SwapPlan{
		Tokens:   []uint64{0, 10, 20},
		AmountIn: sdkmath.NewInt(100_000),
		Hops: []domain.HopSplit{
			{
				FromToken: 0,
				ToToken:   10,
				AmountIn:  sdkmath.NewInt(100_000),
				Splits: []domain.SplitAllocation{{
					Pool:        domain.PoolConfig{PoolID: 1, Dex: domain.DexNomadex},
					AmountIn:    sdkmath.NewInt(100_000),
					ExpectedOut: sdkmath.NewInt(99_600),
					MinOut:      sdkmath.NewInt(98_600),
				}},
			},
			{
				FromToken: 10,
				ToToken:   20,
				AmountIn:  sdkmath.NewInt(99_600),
				Splits: []domain.SplitAllocation{{
					Pool:        domain.PoolConfig{PoolID: 2, Dex: domain.DexHumble},
					AmountIn:    sdkmath.NewInt(99_600),
					ExpectedOut: sdkmath.NewInt(99_200),
					MinOut:      sdkmath.NewInt(98_200),
				}},
			},
		},
		ExpectedOut: sdkmath.NewInt(99_200),
		MinOut:      sdkmath.NewInt(98_200),
	}

	response := types.NewSwapQuoteResponse(&domain.SwapQuote{Plan: plan}, 6, 6)

	require.Equal(t, "multi-hop", response.Route.Type)
	require.Len(t, response.Route.Hops, 2)
	require.Empty(t, response.Route.Pools)

	// Two pool traversals: no single pool to pin.
	require.Nil(t, response.PoolID)

	// Quote-only responses still serialize an empty transactions array.
	require.NotNil(t, response.UnsignedTransactions)
	require.Empty(t, response.UnsignedTransactions)
}

// The rate is adjusted by the decimal gap between the tokens.
func TestDecimalAdjustedRate(t *testing.T) {
	quote := &domain.SwapQuote{Plan: directPlan()}

	// Input has 6 decimals, output 8: one base unit of input buys 100x more
	// output base units than the human rate suggests.
	response := types.NewSwapQuoteResponse(quote, 6, 8)
	require.InDelta(t, 0.009871, response.Quote.Rate, 1e-9)

	response = types.NewSwapQuoteResponse(quote, 8, 6)
	require.InDelta(t, 98.71, response.Quote.Rate, 1e-6)
}

func TestNewSwapQuoteResponse_BuildError(t *testing.T) {
	quote := &domain.SwapQuote{
		Plan:       directPlan(),
		BuildError: "missing balance box",
	}

	response := types.NewSwapQuoteResponse(quote, 6, 6)
	require.Equal(t, "missing balance box", response.Error)
	require.Empty(t, response.UnsignedTransactions)
}
