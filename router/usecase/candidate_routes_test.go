package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/router/usecase"
)

const (
	tokenVoi  = 0
	tokenUSDC = 10
	tokenWETH = 20
)

func graphOf(pools ...domain.PoolConfig) domain.PoolGraph {
	graph := make(domain.PoolGraph)
	for _, pool := range pools {
		a, b := pool.Underlying()
		graph[a] = append(graph[a], domain.PoolEdge{PoolID: pool.PoolID, OtherToken: b, Dex: pool.Dex, Pool: pool})
		graph[b] = append(graph[b], domain.PoolEdge{PoolID: pool.PoolID, OtherToken: a, Dex: pool.Dex, Pool: pool})
	}
	return graph
}

func nomadexPool(poolID uint64, tokenA, tokenB uint64) domain.PoolConfig {
	kind := func(token uint64) domain.TokenKind {
		if token == domain.NativeTokenID {
			return domain.TokenKindNative
		}
		return domain.TokenKindASA
	}
	return domain.PoolConfig{
		PoolID: poolID,
		Dex:    domain.DexNomadex,
		Nomadex: &domain.NomadexPoolConfig{
			TokA: domain.NomadexToken{ID: tokenA, Kind: kind(tokenA)},
			TokB: domain.NomadexToken{ID: tokenB, Kind: kind(tokenB)},
		},
	}
}

func humblePool(poolID uint64, tokenA, tokenB uint64) domain.PoolConfig {
	return domain.PoolConfig{
		PoolID: poolID,
		Dex:    domain.DexHumble,
		Humble: &domain.HumblePoolConfig{
			TokA: 1_000 + tokenA,
			TokB: 1_000 + tokenB,
			UnderlyingToWrapped: map[uint64]uint64{
				tokenA: 1_000 + tokenA,
				tokenB: 1_000 + tokenB,
			},
			Unwrap: []uint64{1_000 + tokenA, 1_000 + tokenB},
		},
	}
}

func TestFindCandidateRoutes(t *testing.T) {
	graph := graphOf(
		nomadexPool(1, tokenVoi, tokenUSDC),
		humblePool(2, tokenVoi, tokenUSDC),
		nomadexPool(3, tokenVoi, tokenWETH),
		nomadexPool(4, tokenWETH, tokenUSDC),
	)

	routes := usecase.FindCandidateRoutes(graph, tokenVoi, tokenUSDC, 2, "")
	require.Len(t, routes, 2)

	// Routes are sorted ascending by hop count: direct first.
	direct := routes[0]
	require.Equal(t, []uint64{tokenVoi, tokenUSDC}, direct.Tokens)
	require.Len(t, direct.PoolOptions, 1)

	// The direct hop is enriched with every pool covering the pair.
	require.Len(t, direct.PoolOptions[0], 2)

	twoHop := routes[1]
	require.Equal(t, []uint64{tokenVoi, tokenWETH, tokenUSDC}, twoHop.Tokens)
	require.Len(t, twoHop.PoolOptions, 2)
	require.Len(t, twoHop.PoolOptions[0], 1)
	require.Len(t, twoHop.PoolOptions[1], 1)
}

func TestFindCandidateRoutes_MaxHops(t *testing.T) {
	graph := graphOf(
		nomadexPool(3, tokenVoi, tokenWETH),
		nomadexPool(4, tokenWETH, tokenUSDC),
	)

	// Only the two-hop path exists; a one-hop bound excludes it.
	require.Empty(t, usecase.FindCandidateRoutes(graph, tokenVoi, tokenUSDC, 1, ""))
	require.Len(t, usecase.FindCandidateRoutes(graph, tokenVoi, tokenUSDC, 2, ""), 1)
}

func TestFindCandidateRoutes_NoRevisit(t *testing.T) {
	// A cycle back through the source token must not appear on any path.
	graph := graphOf(
		nomadexPool(1, tokenVoi, tokenWETH),
		nomadexPool(2, tokenWETH, tokenVoi),
		nomadexPool(3, tokenWETH, tokenUSDC),
	)

	routes := usecase.FindCandidateRoutes(graph, tokenVoi, tokenUSDC, 3, "")
	for _, route := range routes {
		seen := map[uint64]int{}
		for _, token := range route.Tokens {
			seen[token]++
			require.Equal(t, 1, seen[token], "token (%d) repeats on route %v", token, route.Tokens)
		}
	}
}

func TestFindCandidateRoutes_DexFilter(t *testing.T) {
	graph := graphOf(
		nomadexPool(1, tokenVoi, tokenUSDC),
		humblePool(2, tokenVoi, tokenUSDC),
	)

	routes := usecase.FindCandidateRoutes(graph, tokenVoi, tokenUSDC, 2, domain.DexHumble)
	require.Len(t, routes, 1)
	require.Len(t, routes[0].PoolOptions[0], 1)
	require.Equal(t, uint64(2), routes[0].PoolOptions[0][0].PoolID)
}

func TestFindCandidateRoutes_NoRoute(t *testing.T) {
	graph := graphOf(nomadexPool(1, tokenVoi, tokenWETH))

	require.Empty(t, usecase.FindCandidateRoutes(graph, tokenVoi, tokenUSDC, 2, ""))
	require.Empty(t, usecase.FindCandidateRoutes(graph, tokenVoi, tokenVoi, 2, ""))
}
