package usecase

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/voi-labs/vqs/domain"
)

// FindCandidateRoutes enumerates all simple paths of length 1..maxHops
// between two underlying tokens. Paths are grouped by their token sequence;
// each hop's pool options list every pool in the graph covering that edge,
// not merely the pool taken during the search. Routes are sorted ascending
// by hop count.
func FindCandidateRoutes(graph domain.PoolGraph, tokenIn, tokenOut uint64, maxHops int, dexFilter domain.DexID) []domain.Route {
	if tokenIn == tokenOut || maxHops < 1 {
		return nil
	}

	// Token sequences reaching tokenOut, deduplicated by the sequence itself.
	seen := make(map[string]struct{})
	var sequences [][]uint64

	queue := [][]uint64{{tokenIn}}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		current := path[len(path)-1]

		for _, edge := range graph.Neighbors(current, dexFilter) {
			next := edge.OtherToken

			// A token may not be visited twice on the same path.
			if slices.Contains(path, next) {
				continue
			}

			extended := make([]uint64, len(path), len(path)+1)
			copy(extended, path)
			extended = append(extended, next)

			if next == tokenOut {
				key := sequenceKey(extended)
				if _, ok := seen[key]; !ok {
					seen[key] = struct{}{}
					sequences = append(sequences, extended)
				}
				continue
			}

			if len(extended) <= maxHops {
				queue = append(queue, extended)
			}
		}
	}

	routes := make([]domain.Route, 0, len(sequences))
	for _, tokens := range sequences {
		poolOptions := make([][]domain.PoolConfig, 0, len(tokens)-1)
		for i := 0; i+1 < len(tokens); i++ {
			poolOptions = append(poolOptions, graph.PoolsForPair(tokens[i], tokens[i+1], dexFilter))
		}
		routes = append(routes, domain.Route{
			Tokens:      tokens,
			PoolOptions: poolOptions,
		})
	}

	slices.SortStableFunc(routes, func(a, b domain.Route) int {
		return a.Hops() - b.Hops()
	})

	return routes
}

func sequenceKey(tokens []uint64) string {
	parts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		parts = append(parts, strconv.FormatUint(token, 10))
	}
	return strings.Join(parts, "-")
}
