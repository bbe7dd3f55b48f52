package mocks

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/voi-labs/vqs/dex"
	"github.com/voi-labs/vqs/domain"
)

// DexAdapterMock is a mock implementation of the DexAdapter interface.
// ComputeOutput defaults to the real constant-product formula so that quote
// and split tests exercise the production math.
type DexAdapterMock struct {
	DexID domain.DexID

	FetchPoolStateFunc func(ctx context.Context, pool domain.PoolConfig) (domain.PoolState, error)
	ComputeOutputFunc  func(state domain.PoolState, fromToken, toToken uint64, amountIn sdkmath.Int) (sdkmath.Int, error)
	TokenFormFunc      func(pool domain.PoolConfig, token uint64) (domain.TokenForm, error)
	BuildSwapFunc      func(ctx context.Context, build domain.SwapBuild) ([]types.Transaction, error)
}

var _ domain.DexAdapter = &DexAdapterMock{}

func (m *DexAdapterMock) Dex() domain.DexID {
	return m.DexID
}

func (m *DexAdapterMock) FetchPoolState(ctx context.Context, pool domain.PoolConfig) (domain.PoolState, error) {
	if m.FetchPoolStateFunc != nil {
		return m.FetchPoolStateFunc(ctx, pool)
	}
	panic("unimplemented")
}

func (m *DexAdapterMock) ComputeOutput(state domain.PoolState, fromToken, toToken uint64, amountIn sdkmath.Int) (sdkmath.Int, error) {
	if m.ComputeOutputFunc != nil {
		return m.ComputeOutputFunc(state, fromToken, toToken, amountIn)
	}

	reserveIn, reserveOut, ok := state.OrientedReserves(fromToken, toToken)
	if !ok {
		return sdkmath.Int{}, domain.PoolPairMismatchError{TokenIn: fromToken, TokenOut: toToken}
	}
	return dex.SwapOutput(reserveIn, reserveOut, amountIn, state.FeeBps), nil
}

func (m *DexAdapterMock) TokenForm(pool domain.PoolConfig, token uint64) (domain.TokenForm, error) {
	if m.TokenFormFunc != nil {
		return m.TokenFormFunc(pool, token)
	}
	return pool.UnderlyingForm(token)
}

func (m *DexAdapterMock) BuildSwap(ctx context.Context, build domain.SwapBuild) ([]types.Transaction, error) {
	if m.BuildSwapFunc != nil {
		return m.BuildSwapFunc(ctx, build)
	}
	panic("unimplemented")
}
