package domain

import (
	"cosmossdk.io/math"
)

// SplitAllocation is the share of one hop's input routed through one pool.
// State is the pool state the quote was computed against; the group builder
// passes it through to the adapter.
type SplitAllocation struct {
	Pool        PoolConfig
	State       PoolState
	AmountIn    math.Int
	ExpectedOut math.Int
	MinOut      math.Int
	PriceImpact float64
}

// HopSplit assigns one hop's input among its pool options. The allocations
// sum to AmountIn exactly; the last allocation absorbs any integer remainder.
type HopSplit struct {
	FromToken uint64
	ToToken   uint64
	AmountIn  math.Int
	Splits    []SplitAllocation
}

// TotalExpectedOut sums the expected outputs of the hop's allocations.
func (h HopSplit) TotalExpectedOut() math.Int {
	total := math.ZeroInt()
	for _, split := range h.Splits {
		total = total.Add(split.ExpectedOut)
	}
	return total
}

// TotalMinOut sums the minimum outputs of the hop's allocations.
func (h HopSplit) TotalMinOut() math.Int {
	total := math.ZeroInt()
	for _, split := range h.Splits {
		total = total.Add(split.MinOut)
	}
	return total
}

// PlatformFee records the optional skim on aggregation gain.
type PlatformFee struct {
	// Gain is the improvement of the chosen plan over the best single-pool
	// baseline.
	Gain math.Int `json:"gain"`
	// FeeAmount is the skimmed amount, floor(gain * feeBps / 10000).
	FeeAmount  math.Int `json:"feeAmount"`
	FeeBps     uint64   `json:"feeBps"`
	FeeAddress string   `json:"feeAddress"`
	// Applied is true only when FeeAmount is positive and the skim was taken
	// from the final hop's outputs.
	Applied bool `json:"applied"`
}

// SwapPlan is the selected route with its per-hop splits, handed to the
// group builder. All amounts are in base units of their tokens.
type SwapPlan struct {
	// Tokens is the underlying token path, length hops+1.
	Tokens []uint64
	Hops   []HopSplit

	AmountIn    math.Int
	ExpectedOut math.Int
	MinOut      math.Int
	// PriceImpact is the arithmetic sum of per-hop impacts, weighted by input
	// share inside a split hop.
	PriceImpact float64

	PlatformFee *PlatformFee
}

// IsDirect reports whether the plan traverses a single hop.
func (p SwapPlan) IsDirect() bool {
	return len(p.Hops) == 1
}

// PoolCount returns the total number of pool traversals across all hops.
func (p SwapPlan) PoolCount() int {
	count := 0
	for _, hop := range p.Hops {
		count += len(hop.Splits)
	}
	return count
}

// SinglePoolID returns the pool ID when the whole plan executes on exactly
// one pool.
func (p SwapPlan) SinglePoolID() (uint64, bool) {
	if p.PoolCount() != 1 {
		return 0, false
	}
	return p.Hops[0].Splits[0].Pool.PoolID, true
}

// SwapQuoteParams are the planning inputs after request validation.
type SwapQuoteParams struct {
	// Sender is the swapping address. Empty means quote-only: no transaction
	// group is built.
	Sender      string
	TokenIn     uint64
	TokenOut    uint64
	AmountIn    math.Int
	SlippageBps uint64
	// PoolID restricts planning to a direct route through one pool when non-zero.
	PoolID uint64
	// Dex restricts the graph to one protocol when non-empty.
	Dex DexID
	// Degen widens ARC200 approvals to max-uint256.
	Degen bool
}

// SwapQuote is the planning result returned by the router usecase.
type SwapQuote struct {
	Plan SwapPlan
	// Transactions is the assembled unsigned group, msgpack-encoded and
	// base64-encoded, in execution order. Empty in quote-only mode and when
	// building failed.
	Transactions []string
	// NetworkFee is the sum of per-transaction flat fees in the group.
	NetworkFee uint64
	// BuildError carries the adapter failure when the quote is valid but the
	// group could not be assembled.
	BuildError string
}
