// Package nomadex implements the DEX adapter for Nomadex constant-product
// pools. The pools trade native, ASA and ARC200 tokens directly; the deposit
// is the first transaction of the swap method call and is inspected by the
// pool contract.
package nomadex

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"go.uber.org/zap"

	"github.com/voi-labs/vqs/chain/arc200"
	"github.com/voi-labs/vqs/dex"
	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/log"
)

// Pool method signatures. The first argument is the deposit transaction,
// referenced by its group position.
const (
	methodSwapAForB = "swapAForB(txn,uint256)uint256"
	methodSwapBForA = "swapBForA(txn,uint256)uint256"
)

type adapter struct {
	gateway      domain.ChainGateway
	factoryAppID uint64
	logger       log.Logger
}

var _ domain.DexAdapter = &adapter{}

// NewAdapter creates the Nomadex adapter.
func NewAdapter(gateway domain.ChainGateway, factoryAppID uint64, logger log.Logger) domain.DexAdapter {
	return &adapter{
		gateway:      gateway,
		factoryAppID: factoryAppID,
		logger:       logger,
	}
}

// Dex implements domain.DexAdapter.
func (a *adapter) Dex() domain.DexID {
	return domain.DexNomadex
}

// FetchPoolState reads the pool's global state and reconciles the reserve
// slots against the balances observed on the pool account.
func (a *adapter) FetchPoolState(ctx context.Context, pool domain.PoolConfig) (domain.PoolState, error) {
	cfg := pool.Nomadex

	state, err := a.gateway.ApplicationGlobalState(ctx, pool.PoolID)
	if err != nil {
		return domain.PoolState{}, domain.PoolStateFetchError{PoolID: pool.PoolID, Err: err}
	}

	reserveAValue, ok := domain.ReadStateValue(state, domain.StateReserveA)
	if !ok {
		return domain.PoolState{}, domain.StateKeyNotFoundError{AppID: pool.PoolID, Semantic: string(domain.StateReserveA)}
	}
	reserveBValue, ok := domain.ReadStateValue(state, domain.StateReserveB)
	if !ok {
		return domain.PoolState{}, domain.StateKeyNotFoundError{AppID: pool.PoolID, Semantic: string(domain.StateReserveB)}
	}

	feeBps := pool.FeeBps
	if feeBps == 0 {
		fee, ok := domain.ReadStateValue(state, domain.StateFee)
		if !ok {
			return domain.PoolState{}, domain.StateKeyNotFoundError{AppID: pool.PoolID, Semantic: string(domain.StateFee)}
		}
		feeBps = fee.Uint
	}

	actualA, actualB := a.observeBalances(ctx, pool)

	reserveA, reserveB := reconcileReserves(reserveAValue.Int(), reserveBValue.Int(), actualA, actualB)

	return domain.PoolState{
		ReserveA: reserveA,
		ReserveB: reserveB,
		FeeBps:   feeBps,
		TokA:     cfg.TokA.ID,
		TokB:     cfg.TokB.ID,
	}, nil
}

// observeBalances derives the pool account's holdings of both legs. A nil
// result means the balance could not be observed; reconciliation then falls
// back to the state values for that slot.
func (a *adapter) observeBalances(ctx context.Context, pool domain.PoolConfig) (actualA, actualB *sdkmath.Int) {
	cfg := pool.Nomadex
	poolAddr := dex.AppAddress(pool.PoolID).String()

	var account *domain.AccountState
	if cfg.TokA.Kind != domain.TokenKindARC200 || cfg.TokB.Kind != domain.TokenKindARC200 {
		state, err := a.gateway.AccountState(ctx, poolAddr)
		if err != nil {
			a.logger.Debug("pool account read failed during reconciliation", zap.Uint64("pool_id", pool.PoolID), zap.Error(err))
		} else {
			account = &state
		}
	}

	return a.legBalance(ctx, pool.PoolID, cfg.TokA, poolAddr, account),
		a.legBalance(ctx, pool.PoolID, cfg.TokB, poolAddr, account)
}

func (a *adapter) legBalance(ctx context.Context, poolID uint64, leg domain.NomadexToken, poolAddr string, account *domain.AccountState) *sdkmath.Int {
	switch leg.Kind {
	case domain.TokenKindNative:
		if account == nil {
			return nil
		}
		balance := sdkmath.NewIntFromUint64(account.NativeBalance)
		return &balance
	case domain.TokenKindASA:
		if account == nil {
			return nil
		}
		balance := sdkmath.NewIntFromUint64(account.Assets[leg.ID])
		return &balance
	case domain.TokenKindARC200:
		raw, err := a.gateway.Arc200Balance(ctx, leg.ID, poolAddr)
		if err != nil {
			a.logger.Debug("pool arc200 balance read failed during reconciliation",
				zap.Uint64("pool_id", poolID), zap.Uint64("contract", leg.ID), zap.Error(err))
			return nil
		}
		balance := sdkmath.NewIntFromBigInt(raw.ToBig())
		return &balance
	default:
		return nil
	}
}

// ComputeOutput implements domain.DexAdapter.
func (a *adapter) ComputeOutput(state domain.PoolState, fromToken, toToken uint64, amountIn sdkmath.Int) (sdkmath.Int, error) {
	reserveIn, reserveOut, ok := state.OrientedReserves(fromToken, toToken)
	if !ok {
		return sdkmath.Int{}, domain.PoolPairMismatchError{TokenIn: fromToken, TokenOut: toToken}
	}

	return dex.SwapOutput(reserveIn, reserveOut, amountIn, state.FeeBps), nil
}

// TokenForm returns the leg's declared on-chain form.
func (a *adapter) TokenForm(pool domain.PoolConfig, token uint64) (domain.TokenForm, error) {
	return pool.UnderlyingForm(token)
}

// BuildSwap assembles the deposit transaction followed by the swap method
// call that inspects it. Nomadex consumes the input directly, so the
// chaining skip flags do not apply here.
func (a *adapter) BuildSwap(ctx context.Context, build domain.SwapBuild) ([]types.Transaction, error) {
	cfg := build.Pool.Nomadex

	fromLeg, toLeg, aForB, err := orientLegs(cfg, build.FromToken, build.ToToken)
	if err != nil {
		return nil, domain.PoolPairMismatchError{PoolID: build.Pool.PoolID, TokenIn: build.FromToken, TokenOut: build.ToToken}
	}

	sender, err := types.DecodeAddress(build.Sender)
	if err != nil {
		return nil, domain.InvalidAddressError{Address: build.Sender}
	}
	poolAddr := dex.AppAddress(build.Pool.PoolID)

	deposit, err := a.buildDeposit(build, fromLeg, sender, poolAddr)
	if err != nil {
		return nil, err
	}

	method := methodSwapAForB
	if !aForB {
		method = methodSwapBForA
	}

	appArgs := [][]byte{
		arc200.Selector(method),
		arc200.EncodeUint256(dex.Uint256FromInt(build.MinOut)),
	}

	foreignApps := []uint64{a.factoryAppID}
	var foreignAssets []uint64
	var boxes []types.AppBoxReference

	for _, leg := range []domain.NomadexToken{fromLeg, toLeg} {
		switch leg.Kind {
		case domain.TokenKindASA:
			foreignAssets = append(foreignAssets, leg.ID)
		case domain.TokenKindARC200:
			foreignApps = append(foreignApps, leg.ID)
			boxes = append(boxes, arc200.BalanceBoxRefs(leg.ID, sender, poolAddr)...)
		}
	}

	swap, err := dex.AppCall(sender, build.Pool.PoolID, appArgs, foreignApps, foreignAssets, boxes, dex.SwapCallFee, build.Params)
	if err != nil {
		return nil, err
	}

	return []types.Transaction{deposit, swap}, nil
}

// buildDeposit emits the input transfer the pool contract inspects: a native
// payment, an ASA transfer, or an ARC200 balance-updating call with the
// sender's and the pool's balance boxes declared explicitly.
func (a *adapter) buildDeposit(build domain.SwapBuild, fromLeg domain.NomadexToken, sender, poolAddr types.Address) (types.Transaction, error) {
	switch fromLeg.Kind {
	case domain.TokenKindNative:
		return dex.Payment(build.Sender, poolAddr, build.AmountIn.Uint64(), build.Params)
	case domain.TokenKindASA:
		return dex.AssetTransfer(build.Sender, poolAddr, fromLeg.ID, build.AmountIn.Uint64(), build.Params)
	case domain.TokenKindARC200:
		return dex.AppCall(
			sender,
			fromLeg.ID,
			[][]byte{arc200.Selector(arc200.MethodTransfer), arc200.EncodeAddress(poolAddr), arc200.EncodeUint256(dex.Uint256FromInt(build.AmountIn))},
			nil,
			nil,
			arc200.BalanceBoxRefs(fromLeg.ID, sender, poolAddr),
			dex.MinTxnFee,
			build.Params,
		)
	default:
		return types.Transaction{}, domain.InvalidPoolConfigError{PoolID: build.Pool.PoolID, Reason: "unknown token kind"}
	}
}

func orientLegs(cfg *domain.NomadexPoolConfig, fromToken, toToken uint64) (fromLeg, toLeg domain.NomadexToken, aForB bool, err error) {
	switch {
	case cfg.TokA.ID == fromToken && cfg.TokB.ID == toToken:
		return cfg.TokA, cfg.TokB, true, nil
	case cfg.TokB.ID == fromToken && cfg.TokA.ID == toToken:
		return cfg.TokB, cfg.TokA, false, nil
	default:
		return domain.NomadexToken{}, domain.NomadexToken{}, false, domain.PoolPairMismatchError{TokenIn: fromToken, TokenOut: toToken}
	}
}
