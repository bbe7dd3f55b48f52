package usecase

import (
	"math/big"

	sdkmath "cosmossdk.io/math"

	"github.com/voi-labs/vqs/dex"
	"github.com/voi-labs/vqs/domain"
)

// cornerThresholdDivisor defines the dust floor for split legs: a leg below
// amountIn/1000 collapses into the neighboring pool.
const cornerThresholdDivisor = 1_000

// quoteContext carries the per-request pool state map. It is filled by the
// fan-out phase before any optimization reads begin and never mutated after.
type quoteContext struct {
	states      map[uint64]domain.PoolState
	slippageBps uint64
}

// quotePool computes a single-pool allocation. Returns false when the pool
// has no usable state for this request or does not trade the pair.
func (qc *quoteContext) quotePool(pool domain.PoolConfig, fromToken, toToken uint64, amountIn sdkmath.Int) (domain.SplitAllocation, bool) {
	state, ok := qc.states[pool.PoolID]
	if !ok {
		return domain.SplitAllocation{}, false
	}

	reserveIn, reserveOut, ok := state.OrientedReserves(fromToken, toToken)
	if !ok {
		return domain.SplitAllocation{}, false
	}

	amountOut := dex.SwapOutput(reserveIn, reserveOut, amountIn, state.FeeBps)

	return domain.SplitAllocation{
		Pool:        pool,
		State:       state,
		AmountIn:    amountIn,
		ExpectedOut: amountOut,
		MinOut:      dex.MinOut(amountOut, qc.slippageBps),
		PriceImpact: dex.PriceImpact(reserveIn, reserveOut, amountIn, amountOut),
	}, true
}

// splitHop assigns one hop's input among its pool options: no split for a
// single pool, the closed-form optimum for two, and a fixed candidate grid
// for three or more. Returns false when no option is usable.
func (qc *quoteContext) splitHop(pools []domain.PoolConfig, fromToken, toToken uint64, amountIn sdkmath.Int) (domain.HopSplit, bool) {
	usable := make([]domain.PoolConfig, 0, len(pools))
	for _, pool := range pools {
		if _, ok := qc.states[pool.PoolID]; ok {
			usable = append(usable, pool)
		}
	}
	if len(usable) == 0 || !amountIn.IsPositive() {
		return domain.HopSplit{}, false
	}

	var candidates [][]sdkmath.Int
	switch len(usable) {
	case 1:
		candidates = [][]sdkmath.Int{{amountIn}}
	case 2:
		candidates = qc.twoPoolCandidates(usable, fromToken, toToken, amountIn)
	default:
		candidates = gridCandidates(len(usable), amountIn)
	}

	best, ok := qc.pickBestCandidate(usable, fromToken, toToken, amountIn, candidates)
	if !ok {
		return domain.HopSplit{}, false
	}

	return domain.HopSplit{
		FromToken: fromToken,
		ToToken:   toToken,
		AmountIn:  amountIn,
		Splits:    best,
	}, true
}

// pickBestCandidate evaluates each allocation vector and keeps the maximum
// total output. Ties resolve toward lower total price impact, ultimately
// toward the lower leading pool ID.
func (qc *quoteContext) pickBestCandidate(pools []domain.PoolConfig, fromToken, toToken uint64, amountIn sdkmath.Int, candidates [][]sdkmath.Int) ([]domain.SplitAllocation, bool) {
	var (
		best       []domain.SplitAllocation
		bestOut    sdkmath.Int
		bestImpact float64
		bestLead   uint64
	)

	for _, amounts := range candidates {
		allocations, totalOut, totalImpact, ok := qc.evaluateCandidate(pools, fromToken, toToken, amounts)
		if !ok {
			continue
		}

		lead := allocations[0].Pool.PoolID

		better := best == nil ||
			totalOut.GT(bestOut) ||
			(totalOut.Equal(bestOut) && totalImpact < bestImpact) ||
			(totalOut.Equal(bestOut) && totalImpact == bestImpact && lead < bestLead)
		if better {
			best = allocations
			bestOut = totalOut
			bestImpact = totalImpact
			bestLead = lead
		}
	}

	if best == nil || !bestOut.IsPositive() {
		return nil, false
	}
	return best, true
}

// evaluateCandidate quotes one allocation vector. Zero legs are dropped; the
// hop impact is weighted by each leg's input share.
func (qc *quoteContext) evaluateCandidate(pools []domain.PoolConfig, fromToken, toToken uint64, amounts []sdkmath.Int) ([]domain.SplitAllocation, sdkmath.Int, float64, bool) {
	total := sdkmath.ZeroInt()
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	if !total.IsPositive() {
		return nil, sdkmath.Int{}, 0, false
	}

	allocations := make([]domain.SplitAllocation, 0, len(pools))
	totalOut := sdkmath.ZeroInt()
	totalImpact := 0.0

	for i, pool := range pools {
		if !amounts[i].IsPositive() {
			continue
		}

		allocation, ok := qc.quotePool(pool, fromToken, toToken, amounts[i])
		if !ok {
			return nil, sdkmath.Int{}, 0, false
		}

		weight, _ := new(big.Float).Quo(
			new(big.Float).SetInt(amounts[i].BigInt()),
			new(big.Float).SetInt(total.BigInt()),
		).Float64()

		allocations = append(allocations, allocation)
		totalOut = totalOut.Add(allocation.ExpectedOut)
		totalImpact += allocation.PriceImpact * weight
	}

	if len(allocations) == 0 {
		return nil, sdkmath.Int{}, 0, false
	}
	return allocations, totalOut, totalImpact, true
}

// twoPoolCandidates returns the two corners and, when it does not collapse
// into a corner, the closed-form interior optimum.
//
// With F_i = 10000 - fee_i, D_i = reserveIn_i * 10000 and
// K_i = reserveOut_i * F_i * D_i, the derivative of out1(x) + out2(T-x)
// vanishes at
//
//	x* = (sqrtK1*D2 + sqrtK1*T*F2 - sqrtK2*D1) / (sqrtK2*F1 + sqrtK1*F2)
func (qc *quoteContext) twoPoolCandidates(pools []domain.PoolConfig, fromToken, toToken uint64, amountIn sdkmath.Int) [][]sdkmath.Int {
	zero := sdkmath.ZeroInt()
	candidates := [][]sdkmath.Int{
		{amountIn, zero},
		{zero, amountIn},
	}

	interior, ok := qc.interiorOptimum(pools, fromToken, toToken, amountIn)
	if ok {
		candidates = append(candidates, interior)
	}

	return candidates
}

func (qc *quoteContext) interiorOptimum(pools []domain.PoolConfig, fromToken, toToken uint64, amountIn sdkmath.Int) ([]sdkmath.Int, bool) {
	state1 := qc.states[pools[0].PoolID]
	state2 := qc.states[pools[1].PoolID]

	reserveIn1, reserveOut1, ok := state1.OrientedReserves(fromToken, toToken)
	if !ok {
		return nil, false
	}
	reserveIn2, reserveOut2, ok := state2.OrientedReserves(fromToken, toToken)
	if !ok {
		return nil, false
	}
	if state1.FeeBps >= dex.BpsDenominator || state2.FeeBps >= dex.BpsDenominator {
		return nil, false
	}

	f1 := big.NewInt(int64(dex.BpsDenominator - state1.FeeBps))
	f2 := big.NewInt(int64(dex.BpsDenominator - state2.FeeBps))
	d1 := new(big.Int).Mul(reserveIn1.BigInt(), big.NewInt(dex.BpsDenominator))
	d2 := new(big.Int).Mul(reserveIn2.BigInt(), big.NewInt(dex.BpsDenominator))

	k1 := new(big.Int).Mul(reserveOut1.BigInt(), new(big.Int).Mul(f1, d1))
	k2 := new(big.Int).Mul(reserveOut2.BigInt(), new(big.Int).Mul(f2, d2))
	if k1.Sign() <= 0 || k2.Sign() <= 0 {
		return nil, false
	}

	sqrtK1 := new(big.Int).Sqrt(k1)
	sqrtK2 := new(big.Int).Sqrt(k2)

	total := amountIn.BigInt()

	numerator := new(big.Int).Mul(sqrtK1, d2)
	numerator.Add(numerator, new(big.Int).Mul(sqrtK1, new(big.Int).Mul(total, f2)))
	numerator.Sub(numerator, new(big.Int).Mul(sqrtK2, d1))

	denominator := new(big.Int).Add(
		new(big.Int).Mul(sqrtK2, f1),
		new(big.Int).Mul(sqrtK1, f2),
	)
	if denominator.Sign() <= 0 {
		return nil, false
	}

	x := new(big.Int).Quo(numerator, denominator)

	// Clamp to [0, T].
	if x.Sign() < 0 {
		x.SetInt64(0)
	}
	if x.Cmp(total) > 0 {
		x.Set(total)
	}

	first := sdkmath.NewIntFromBigInt(x)
	second := amountIn.Sub(first)

	// A leg below 0.1% of the input collapses into the corner.
	threshold := amountIn.QuoRaw(cornerThresholdDivisor)
	if first.LTE(threshold) || second.LTE(threshold) {
		return nil, false
	}

	return []sdkmath.Int{first, second}, true
}

// gridCandidates is the fixed allocation grid for three or more pools: the
// full amount to each pool, an even split over each unordered pair, and an
// equal split across all. Pair and equal splits below the dust floor are
// skipped. Explicitly a heuristic, not an optimum.
func gridCandidates(n int, amountIn sdkmath.Int) [][]sdkmath.Int {
	zero := sdkmath.ZeroInt()
	threshold := amountIn.QuoRaw(cornerThresholdDivisor)

	var candidates [][]sdkmath.Int

	for i := 0; i < n; i++ {
		amounts := make([]sdkmath.Int, n)
		for j := range amounts {
			amounts[j] = zero
		}
		amounts[i] = amountIn
		candidates = append(candidates, amounts)
	}

	half := amountIn.QuoRaw(2)
	if half.GT(threshold) {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				amounts := make([]sdkmath.Int, n)
				for k := range amounts {
					amounts[k] = zero
				}
				amounts[i] = half
				amounts[j] = amountIn.Sub(half)
				candidates = append(candidates, amounts)
			}
		}
	}

	share := amountIn.QuoRaw(int64(n))
	if share.GT(threshold) {
		amounts := make([]sdkmath.Int, n)
		used := sdkmath.ZeroInt()
		for i := 0; i < n-1; i++ {
			amounts[i] = share
			used = used.Add(share)
		}
		// The last leg absorbs the integer remainder.
		amounts[n-1] = amountIn.Sub(used)
		candidates = append(candidates, amounts)
	}

	return candidates
}
