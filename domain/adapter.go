package domain

import (
	"context"

	"cosmossdk.io/math"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// SwapBuild carries everything an adapter needs to assemble the transaction
// sequence for one pool traversal. Suggested params are fetched once per
// group build and shared across all traversals.
type SwapBuild struct {
	Pool  PoolConfig
	State PoolState

	FromToken uint64
	ToToken   uint64
	AmountIn  math.Int
	MinOut    math.Int

	// Sender is the swapping address.
	Sender string

	// FirstHop and FinalHop locate the traversal within the plan.
	FirstHop bool
	FinalHop bool
	// SkipDeposit and SkipWithdraw are set by the group builder when the
	// wrapped form crossing this hop boundary matches on both sides.
	SkipDeposit  bool
	SkipWithdraw bool
	// SingleHopPlan enables beacon padding for short groups.
	SingleHopPlan bool
	// Degen widens ARC200 approvals to max-uint256 and skips them entirely
	// when the standing allowance already covers AmountIn.
	Degen bool

	Params types.SuggestedParams
}

// DexAdapter is the shared capability set of the DEX protocols: fetch pool
// state, compute an output amount, and build the swap transaction sequence.
type DexAdapter interface {
	// Dex returns the protocol tag the adapter serves.
	Dex() DexID
	// FetchPoolState reads and reconciles the pool's on-chain state.
	FetchPoolState(ctx context.Context, pool PoolConfig) (PoolState, error)
	// ComputeOutput quotes amountIn against the pool state via the
	// constant-product formula. Pure; never suspends.
	ComputeOutput(state PoolState, fromToken, toToken uint64, amountIn math.Int) (math.Int, error)
	// TokenForm returns the concrete form the pool consumes or produces for
	// an underlying token.
	TokenForm(pool PoolConfig, token uint64) (TokenForm, error)
	// BuildSwap assembles the unsigned transaction sequence executing the
	// traversal. No group IDs are assigned at this level.
	BuildSwap(ctx context.Context, build SwapBuild) ([]types.Transaction, error)
}

// AdapterRegistry resolves the adapter serving a pool's protocol.
type AdapterRegistry map[DexID]DexAdapter

// ForPool returns the adapter for the pool's DEX tag.
func (r AdapterRegistry) ForPool(pool PoolConfig) (DexAdapter, error) {
	adapter, ok := r[pool.Dex]
	if !ok {
		return nil, UnsupportedDexError{Dex: string(pool.Dex)}
	}
	return adapter, nil
}
