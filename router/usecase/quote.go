package usecase

import (
	"context"
	"sync"

	sdkmath "cosmossdk.io/math"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/voi-labs/vqs/domain"
)

// quoteRoute computes the cumulative quote along a route. Each hop's input is
// the sum of the previous hop's expected outputs; the overall price impact is
// the arithmetic sum of per-hop weighted impacts.
func (qc *quoteContext) quoteRoute(route domain.Route, amountIn sdkmath.Int) (domain.SwapPlan, bool) {
	hops := make([]domain.HopSplit, 0, route.Hops())

	hopIn := amountIn
	totalImpact := 0.0

	for i := 0; i < route.Hops(); i++ {
		hop, ok := qc.splitHop(route.PoolOptions[i], route.Tokens[i], route.Tokens[i+1], hopIn)
		if !ok {
			return domain.SwapPlan{}, false
		}

		hops = append(hops, hop)
		totalImpact += hopImpact(hop)
		hopIn = hop.TotalExpectedOut()
	}

	final := hops[len(hops)-1]

	return domain.SwapPlan{
		Tokens:      route.Tokens,
		Hops:        hops,
		AmountIn:    amountIn,
		ExpectedOut: final.TotalExpectedOut(),
		MinOut:      final.TotalMinOut(),
		PriceImpact: totalImpact,
	}, true
}

// hopImpact is the hop's price impact weighted by each leg's input share.
func hopImpact(hop domain.HopSplit) float64 {
	if !hop.AmountIn.IsPositive() {
		return 0
	}

	total := 0.0
	for _, split := range hop.Splits {
		weight := floatQuo(split.AmountIn, hop.AmountIn)
		total += split.PriceImpact * weight
	}
	return total
}

func floatQuo(numerator, denominator sdkmath.Int) float64 {
	if denominator.IsZero() {
		return 0
	}
	result, err := sdkmath.LegacyNewDecFromInt(numerator).Quo(sdkmath.LegacyNewDecFromInt(denominator)).Float64()
	if err != nil {
		return 0
	}
	return result
}

// fetchPoolStates concurrently reads the state of every pool reachable via
// the candidate routes, bounded by maxWorkers. A failed read demotes the pool
// to unusable for this request; it never fails the request.
func (r *routerUsecase) fetchPoolStates(ctx context.Context, routes []domain.Route, maxWorkers int) map[uint64]domain.PoolState {
	unique := make(map[uint64]domain.PoolConfig)
	for _, route := range routes {
		for _, options := range route.PoolOptions {
			for _, pool := range options {
				unique[pool.PoolID] = pool
			}
		}
	}

	var mu sync.Mutex
	states := make(map[uint64]domain.PoolState, len(unique))

	group, groupCtx := errgroup.WithContext(ctx)
	if maxWorkers > 0 {
		group.SetLimit(maxWorkers)
	}

	for _, pool := range unique {
		pool := pool
		group.Go(func() error {
			adapter, err := r.adapters.ForPool(pool)
			if err != nil {
				r.logger.Error("no adapter for pool", zap.Uint64("pool_id", pool.PoolID), zap.Error(err))
				return nil
			}

			state, err := adapter.FetchPoolState(groupCtx, pool)
			if err != nil {
				domain.VQSPoolStateFetchErrorCounter.WithLabelValues(string(pool.Dex)).Inc()
				r.logger.Error("pool state fetch failed, demoting pool for this request",
					zap.Uint64("pool_id", pool.PoolID), zap.Error(err))
				return nil
			}

			mu.Lock()
			states[pool.PoolID] = state
			mu.Unlock()
			return nil
		})
	}

	// Fetch goroutines never return an error; demotion is per pool.
	_ = group.Wait()

	return states
}
