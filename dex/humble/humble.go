// Package humble implements the DEX adapter for HumbleSwap constant-product
// pools. The pools trade wrapped ARC200 contracts; the adapter shuttles the
// user's underlying tokens through deposit and withdraw calls around the swap.
package humble

import (
	"context"
	"encoding/binary"

	sdkmath "cosmossdk.io/math"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"go.uber.org/zap"

	"github.com/voi-labs/vqs/chain/arc200"
	"github.com/voi-labs/vqs/dex"
	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/log"
)

// Pool and wrapped-token method signatures.
const (
	methodSwapAForB = "Trader_swapAForB(uint64,uint256,uint256)(uint256,uint256)"
	methodSwapBForA = "Trader_swapBForA(uint64,uint256,uint256)(uint256,uint256)"

	methodDepositPay   = "deposit(pay)uint256"
	methodDepositAxfer = "deposit(axfer)uint256"
	methodExchange     = "exchange(axfer)uint256"
	methodWithdraw     = "withdraw(uint256)uint256"

	methodBeaconNop = "nop()void"
)

// minGroupTxns is the smallest group a single-hop plan pads up to; shorter
// groups do not carry enough resource slots for the pool's inner calls.
const minGroupTxns = 2

type adapter struct {
	gateway     domain.ChainGateway
	beaconAppID uint64
	logger      log.Logger
}

var _ domain.DexAdapter = &adapter{}

// NewAdapter creates the HumbleSwap adapter.
func NewAdapter(gateway domain.ChainGateway, beaconAppID uint64, logger log.Logger) domain.DexAdapter {
	return &adapter{
		gateway:     gateway,
		beaconAppID: beaconAppID,
		logger:      logger,
	}
}

// Dex implements domain.DexAdapter.
func (a *adapter) Dex() domain.DexID {
	return domain.DexHumble
}

// FetchPoolState reads the pool contract's global state. A locked pool is an
// error; the caller demotes it like any other fetch failure.
func (a *adapter) FetchPoolState(ctx context.Context, pool domain.PoolConfig) (domain.PoolState, error) {
	state, err := a.gateway.ApplicationGlobalState(ctx, pool.PoolID)
	if err != nil {
		return domain.PoolState{}, domain.PoolStateFetchError{PoolID: pool.PoolID, Err: err}
	}

	reserveA, ok := domain.ReadStateValue(state, domain.StateReserveA)
	if !ok {
		return domain.PoolState{}, domain.StateKeyNotFoundError{AppID: pool.PoolID, Semantic: string(domain.StateReserveA)}
	}
	reserveB, ok := domain.ReadStateValue(state, domain.StateReserveB)
	if !ok {
		return domain.PoolState{}, domain.StateKeyNotFoundError{AppID: pool.PoolID, Semantic: string(domain.StateReserveB)}
	}

	if locked, ok := domain.ReadStateValue(state, domain.StateLocked); ok && locked.Bool() {
		return domain.PoolState{}, domain.PoolLockedError{PoolID: pool.PoolID}
	}

	protoFee := readUint(state, domain.StateProtoFee)
	lpFee := readUint(state, domain.StateLPFee)

	feeBps := pool.FeeBps
	if feeBps == 0 {
		if fee, ok := domain.ReadStateValue(state, domain.StateFee); ok {
			feeBps = fee.Uint
		} else {
			feeBps = protoFee + lpFee
		}
	}
	if feeBps == 0 {
		return domain.PoolState{}, domain.StateKeyNotFoundError{AppID: pool.PoolID, Semantic: string(domain.StateFee)}
	}

	lpSupply := sdkmath.ZeroInt()
	if supply, ok := domain.ReadStateValue(state, domain.StateLPSupply); ok {
		lpSupply = supply.Int()
	}

	tokA, tokB := pool.Underlying()

	return domain.PoolState{
		ReserveA:    reserveA.Int(),
		ReserveB:    reserveB.Int(),
		FeeBps:      feeBps,
		TokA:        tokA,
		TokB:        tokB,
		ProtoFeeBps: protoFee,
		LPFeeBps:    lpFee,
		LPSupply:    lpSupply,
	}, nil
}

// ComputeOutput implements domain.DexAdapter.
func (a *adapter) ComputeOutput(state domain.PoolState, fromToken, toToken uint64, amountIn sdkmath.Int) (sdkmath.Int, error) {
	reserveIn, reserveOut, ok := state.OrientedReserves(fromToken, toToken)
	if !ok {
		return sdkmath.Int{}, domain.PoolPairMismatchError{TokenIn: fromToken, TokenOut: toToken}
	}

	return dex.SwapOutput(reserveIn, reserveOut, amountIn, state.FeeBps), nil
}

// TokenForm returns the wrapped ARC200 form the pool trades for the token.
func (a *adapter) TokenForm(pool domain.PoolConfig, token uint64) (domain.TokenForm, error) {
	wrapped, ok := pool.Humble.WrappedFor(token)
	if !ok {
		return domain.TokenForm{}, domain.PoolPairMismatchError{PoolID: pool.PoolID, TokenIn: token}
	}
	return domain.TokenForm{Kind: domain.TokenKindARC200, ID: wrapped}, nil
}

// BuildSwap assembles one pool traversal: deposit into the wrapped input,
// approve the pool, ensure the output balance box, pad short groups, swap,
// and withdraw the output unless chaining keeps it wrapped.
func (a *adapter) BuildSwap(ctx context.Context, build domain.SwapBuild) ([]types.Transaction, error) {
	cfg := build.Pool.Humble

	inWrapped, ok := cfg.WrappedFor(build.FromToken)
	if !ok {
		return nil, domain.PoolPairMismatchError{PoolID: build.Pool.PoolID, TokenIn: build.FromToken, TokenOut: build.ToToken}
	}
	outWrapped, ok := cfg.WrappedFor(build.ToToken)
	if !ok {
		return nil, domain.PoolPairMismatchError{PoolID: build.Pool.PoolID, TokenIn: build.FromToken, TokenOut: build.ToToken}
	}

	sender, err := types.DecodeAddress(build.Sender)
	if err != nil {
		return nil, domain.InvalidAddressError{Address: build.Sender}
	}
	poolAddr := dex.AppAddress(build.Pool.PoolID)

	var txns []types.Transaction

	txns, err = a.appendDeposit(ctx, txns, build, cfg, sender, inWrapped)
	if err != nil {
		return nil, err
	}

	txns, err = a.appendApproval(ctx, txns, build, sender, poolAddr, inWrapped)
	if err != nil {
		return nil, err
	}

	txns, err = a.appendOutputBoxEnsure(ctx, txns, build, sender, outWrapped)
	if err != nil {
		return nil, err
	}

	// Short single-hop groups are padded with beacon no-ops so the group
	// carries enough resource slots for the pool's inner calls.
	if build.SingleHopPlan {
		for len(txns) < minGroupTxns {
			nop, err := dex.AppCall(sender, a.beaconAppID, [][]byte{arc200.Selector(methodBeaconNop)}, nil, nil, nil, dex.MinTxnFee, build.Params)
			if err != nil {
				return nil, err
			}
			txns = append(txns, nop)
		}
	}

	swap, err := a.buildSwapCall(build, cfg, sender, poolAddr, inWrapped)
	if err != nil {
		return nil, err
	}
	txns = append(txns, swap)

	txns, err = a.appendWithdraw(ctx, txns, build, sender, outWrapped)
	if err != nil {
		return nil, err
	}

	return txns, nil
}

// appendDeposit wraps the user's input token. Already-wrapped and pure-ARC200
// inputs need no deposit, as do chained hops consuming the previous hop's
// wrapped output.
func (a *adapter) appendDeposit(ctx context.Context, txns []types.Transaction, build domain.SwapBuild, cfg *domain.HumblePoolConfig, sender types.Address, inWrapped uint64) ([]types.Transaction, error) {
	if build.SkipDeposit || inWrapped == build.FromToken {
		return txns, nil
	}

	wrappedAddr := dex.AppAddress(inWrapped)

	if build.FromToken == domain.NativeTokenID {
		hasBox, err := a.gateway.HasBalanceBox(ctx, inWrapped, build.Sender)
		if err != nil {
			return nil, err
		}
		if !hasBox {
			boxPay, err := dex.Payment(build.Sender, wrappedAddr, dex.BalanceBoxCost, build.Params)
			if err != nil {
				return nil, err
			}
			txns = append(txns, boxPay)
		}

		pay, err := dex.Payment(build.Sender, wrappedAddr, build.AmountIn.Uint64(), build.Params)
		if err != nil {
			return nil, err
		}
		call, err := dex.AppCall(sender, inWrapped, [][]byte{arc200.Selector(methodDepositPay)}, nil, nil, arc200.BalanceBoxRefs(inWrapped, sender), dex.MinTxnFee, build.Params)
		if err != nil {
			return nil, err
		}
		return append(txns, pay, call), nil
	}

	hasExchange, err := a.gateway.HasExchange(ctx, inWrapped)
	if err != nil {
		a.logger.Debug("exchange capability probe failed", zap.Uint64("wrapped", inWrapped), zap.Error(err))
		hasExchange = false
	}

	if hasExchange {
		// Redeem consumes the full ASA balance regardless of amountIn.
		account, err := a.gateway.AccountState(ctx, build.Sender)
		if err != nil {
			return nil, err
		}
		balance := account.Assets[build.FromToken]

		axfer, err := dex.AssetTransfer(build.Sender, wrappedAddr, build.FromToken, balance, build.Params)
		if err != nil {
			return nil, err
		}
		call, err := dex.AppCall(sender, inWrapped, [][]byte{arc200.Selector(methodExchange)}, nil, []uint64{build.FromToken}, arc200.BalanceBoxRefs(inWrapped, sender), dex.MinTxnFee, build.Params)
		if err != nil {
			return nil, err
		}
		return append(txns, axfer, call), nil
	}

	hasBox, err := a.gateway.HasBalanceBox(ctx, inWrapped, build.Sender)
	if err != nil {
		return nil, err
	}
	if !hasBox {
		boxPay, err := dex.Payment(build.Sender, wrappedAddr, dex.BalanceBoxCost, build.Params)
		if err != nil {
			return nil, err
		}
		txns = append(txns, boxPay)
	}

	axfer, err := dex.AssetTransfer(build.Sender, wrappedAddr, build.FromToken, build.AmountIn.Uint64(), build.Params)
	if err != nil {
		return nil, err
	}
	call, err := dex.AppCall(sender, inWrapped, [][]byte{arc200.Selector(methodDepositAxfer)}, nil, []uint64{build.FromToken}, arc200.BalanceBoxRefs(inWrapped, sender), dex.MinTxnFee, build.Params)
	if err != nil {
		return nil, err
	}
	return append(txns, axfer, call), nil
}

// appendApproval grants the pool an allowance over the wrapped input. Degen
// mode approves max-uint256 and skips the call entirely when a standing
// allowance already covers the amount.
func (a *adapter) appendApproval(ctx context.Context, txns []types.Transaction, build domain.SwapBuild, sender, poolAddr types.Address, inWrapped uint64) ([]types.Transaction, error) {
	allowance, err := a.gateway.Arc200Allowance(ctx, inWrapped, build.Sender, poolAddr.String())
	if err != nil {
		return nil, err
	}

	approveAmount := dex.Uint256FromInt(build.AmountIn)
	if build.Degen {
		if allowance.CmpBig(build.AmountIn.BigInt()) >= 0 {
			return txns, nil
		}
		approveAmount = arc200.MaxUint256()
	}

	// A first-time approval allocates the approval box.
	if allowance.IsZero() {
		boxPay, err := dex.Payment(build.Sender, dex.AppAddress(inWrapped), dex.BalanceBoxCost, build.Params)
		if err != nil {
			return nil, err
		}
		txns = append(txns, boxPay)
	}

	boxes := append(arc200.BalanceBoxRefs(inWrapped, sender),
		types.AppBoxReference{AppID: inWrapped, Name: arc200.ApprovalBoxName(sender, poolAddr)})

	call, err := dex.AppCall(
		sender,
		inWrapped,
		[][]byte{arc200.Selector(arc200.MethodApprove), arc200.EncodeAddress(poolAddr), arc200.EncodeUint256(approveAmount)},
		nil,
		nil,
		boxes,
		dex.MinTxnFee,
		build.Params,
	)
	if err != nil {
		return nil, err
	}
	return append(txns, call), nil
}

// appendOutputBoxEnsure creates the user's balance box on the output wrapped
// contract via a zero self-transfer when it does not exist yet.
func (a *adapter) appendOutputBoxEnsure(ctx context.Context, txns []types.Transaction, build domain.SwapBuild, sender types.Address, outWrapped uint64) ([]types.Transaction, error) {
	hasBox, err := a.gateway.HasBalanceBox(ctx, outWrapped, build.Sender)
	if err != nil {
		return nil, err
	}
	if hasBox {
		return txns, nil
	}

	boxPay, err := dex.Payment(build.Sender, dex.AppAddress(outWrapped), dex.BalanceBoxCost, build.Params)
	if err != nil {
		return nil, err
	}
	call, err := dex.AppCall(
		sender,
		outWrapped,
		[][]byte{arc200.Selector(arc200.MethodTransfer), arc200.EncodeAddress(sender), arc200.EncodeUint256(dex.Uint256FromInt(sdkmath.ZeroInt()))},
		nil,
		nil,
		arc200.BalanceBoxRefs(outWrapped, sender),
		dex.MinTxnFee,
		build.Params,
	)
	if err != nil {
		return nil, err
	}
	return append(txns, boxPay, call), nil
}

// buildSwapCall emits the pool's directional swap entry point with
// (0, amountIn, minOut) and a flat fee allowance for the inner transfers.
func (a *adapter) buildSwapCall(build domain.SwapBuild, cfg *domain.HumblePoolConfig, sender, poolAddr types.Address, inWrapped uint64) (types.Transaction, error) {
	method := methodSwapAForB
	if inWrapped == cfg.TokB {
		method = methodSwapBForA
	}

	var zeroArg [8]byte
	binary.BigEndian.PutUint64(zeroArg[:], 0)

	appArgs := [][]byte{
		arc200.Selector(method),
		zeroArg[:],
		arc200.EncodeUint256(dex.Uint256FromInt(build.AmountIn)),
		arc200.EncodeUint256(dex.Uint256FromInt(build.MinOut)),
	}

	foreignApps := []uint64{cfg.TokA, cfg.TokB, a.beaconAppID}

	boxes := append(
		arc200.BalanceBoxRefs(cfg.TokA, sender, poolAddr),
		arc200.BalanceBoxRefs(cfg.TokB, sender, poolAddr)...,
	)

	return dex.AppCall(sender, build.Pool.PoolID, appArgs, foreignApps, nil, boxes, dex.SwapCallFee, build.Params)
}

// appendWithdraw unwraps the output into its underlying token. The withdraw
// amount is MinOut, the only amount the group can guarantee; anything above
// it stays wrapped until the next interaction.
func (a *adapter) appendWithdraw(ctx context.Context, txns []types.Transaction, build domain.SwapBuild, sender types.Address, outWrapped uint64) ([]types.Transaction, error) {
	if build.SkipWithdraw || outWrapped == build.ToToken {
		return txns, nil
	}

	hasExchange, err := a.gateway.HasExchange(ctx, outWrapped)
	if err != nil {
		a.logger.Debug("exchange capability probe failed", zap.Uint64("wrapped", outWrapped), zap.Error(err))
		hasExchange = false
	}
	if hasExchange {
		// The contract auto-redeems to the underlying token on swap credit.
		return txns, nil
	}

	// The withdraw fee covers the inner payment or asset transfer the
	// contract issues to the user.
	call, err := dex.AppCall(
		sender,
		outWrapped,
		[][]byte{arc200.Selector(methodWithdraw), arc200.EncodeUint256(dex.Uint256FromInt(build.MinOut))},
		nil,
		withdrawForeignAssets(build.ToToken),
		arc200.BalanceBoxRefs(outWrapped, sender),
		2*dex.MinTxnFee,
		build.Params,
	)
	if err != nil {
		return nil, err
	}
	return append(txns, call), nil
}

func withdrawForeignAssets(toToken uint64) []uint64 {
	if toToken == domain.NativeTokenID {
		return nil
	}
	return []uint64{toToken}
}

func readUint(state map[string]domain.StateValue, semantic domain.StateSemantic) uint64 {
	if value, ok := domain.ReadStateValue(state, semantic); ok && !value.IsBytes {
		return value.Uint
	}
	return 0
}
