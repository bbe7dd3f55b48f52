package usecase

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/voi-labs/vqs/domain"
)

const quoteTokenC = 20

func chainPool(poolID uint64, tokenA, tokenB uint64) domain.PoolConfig {
	return domain.PoolConfig{
		PoolID: poolID,
		Dex:    domain.DexNomadex,
		Nomadex: &domain.NomadexPoolConfig{
			TokA: domain.NomadexToken{ID: tokenA, Kind: domain.TokenKindASA},
			TokB: domain.NomadexToken{ID: tokenB, Kind: domain.TokenKindASA},
		},
	}
}

func chainState(reserveA, reserveB int64, feeBps uint64, tokenA, tokenB uint64) domain.PoolState {
	return domain.PoolState{
		ReserveA: sdkmath.NewInt(reserveA),
		ReserveB: sdkmath.NewInt(reserveB),
		FeeBps:   feeBps,
		TokA:     tokenA,
		TokB:     tokenB,
	}
}

// Each hop's input is exactly the previous hop's total expected output.
func TestQuoteRoute_HopChaining(t *testing.T) {
	qc := &quoteContext{
		states: map[uint64]domain.PoolState{
			1: chainState(100_000_000, 100_000_000, 30, splitTokenA, splitTokenB),
			2: chainState(100_000_000, 100_000_000, 30, splitTokenB, quoteTokenC),
		},
		slippageBps: 100,
	}

	route := domain.Route{
		Tokens: []uint64{splitTokenA, splitTokenB, quoteTokenC},
		PoolOptions: [][]domain.PoolConfig{
			{chainPool(1, splitTokenA, splitTokenB)},
			{chainPool(2, splitTokenB, quoteTokenC)},
		},
	}

	plan, ok := qc.quoteRoute(route, sdkmath.NewInt(100_000))
	require.True(t, ok)
	require.Len(t, plan.Hops, 2)

	require.True(t, plan.Hops[0].TotalExpectedOut().Equal(plan.Hops[1].AmountIn),
		"second hop input (%s) must equal first hop output (%s)",
		plan.Hops[1].AmountIn, plan.Hops[0].TotalExpectedOut())

	require.True(t, plan.ExpectedOut.Equal(plan.Hops[1].TotalExpectedOut()))
	require.True(t, plan.MinOut.Equal(plan.Hops[1].TotalMinOut()))
	require.Greater(t, plan.PriceImpact, 0.0)
}

// A route whose middle hop has no usable pool is not quotable.
func TestQuoteRoute_BrokenHop(t *testing.T) {
	qc := &quoteContext{
		states: map[uint64]domain.PoolState{
			1: chainState(100_000_000, 100_000_000, 30, splitTokenA, splitTokenB),
		},
		slippageBps: 100,
	}

	route := domain.Route{
		Tokens: []uint64{splitTokenA, splitTokenB, quoteTokenC},
		PoolOptions: [][]domain.PoolConfig{
			{chainPool(1, splitTokenA, splitTokenB)},
			{chainPool(2, splitTokenB, quoteTokenC)},
		},
	}

	_, ok := qc.quoteRoute(route, sdkmath.NewInt(100_000))
	require.False(t, ok)
}

// The route impact accumulates across hops.
func TestQuoteRoute_ImpactAccumulates(t *testing.T) {
	qc := &quoteContext{
		states: map[uint64]domain.PoolState{
			1: chainState(1_000_000, 1_000_000, 30, splitTokenA, splitTokenB),
			2: chainState(1_000_000, 1_000_000, 30, splitTokenB, quoteTokenC),
		},
		slippageBps: 100,
	}

	direct := domain.Route{
		Tokens:      []uint64{splitTokenA, splitTokenB},
		PoolOptions: [][]domain.PoolConfig{{chainPool(1, splitTokenA, splitTokenB)}},
	}
	twoHop := domain.Route{
		Tokens: []uint64{splitTokenA, splitTokenB, quoteTokenC},
		PoolOptions: [][]domain.PoolConfig{
			{chainPool(1, splitTokenA, splitTokenB)},
			{chainPool(2, splitTokenB, quoteTokenC)},
		},
	}

	directPlan, ok := qc.quoteRoute(direct, sdkmath.NewInt(10_000))
	require.True(t, ok)
	twoHopPlan, ok := qc.quoteRoute(twoHop, sdkmath.NewInt(10_000))
	require.True(t, ok)

	require.Greater(t, twoHopPlan.PriceImpact, directPlan.PriceImpact)
}
