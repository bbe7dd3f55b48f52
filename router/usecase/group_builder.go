package usecase

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/voi-labs/vqs/chain/arc200"
	"github.com/voi-labs/vqs/dex"
	"github.com/voi-labs/vqs/domain"
)

// maxGroupTxns is the protocol limit on atomic group size.
const maxGroupTxns = 16

// buildGroup assembles the unsigned atomic group executing a plan: every pool
// traversal in hop order, splits within a hop in allocation order, and the
// platform-fee transfer last. Suggested params are fetched once and shared.
func (r *routerUsecase) buildGroup(ctx context.Context, plan domain.SwapPlan, params domain.SwapQuoteParams) ([]string, uint64, error) {
	suggested, err := r.gateway.SuggestedParams(ctx)
	if err != nil {
		return nil, 0, err
	}

	skipWithdraw, skipDeposit, err := r.boundarySkips(plan)
	if err != nil {
		return nil, 0, err
	}

	var txns []types.Transaction

	for hopIdx, hop := range plan.Hops {
		for _, split := range hop.Splits {
			adapter, err := r.adapters.ForPool(split.Pool)
			if err != nil {
				return nil, 0, err
			}

			build := domain.SwapBuild{
				Pool:          split.Pool,
				State:         split.State,
				FromToken:     hop.FromToken,
				ToToken:       hop.ToToken,
				AmountIn:      split.AmountIn,
				MinOut:        split.MinOut,
				Sender:        params.Sender,
				FirstHop:      hopIdx == 0,
				FinalHop:      hopIdx == len(plan.Hops)-1,
				SkipDeposit:   skipDeposit[hopIdx],
				SkipWithdraw:  skipWithdraw[hopIdx],
				SingleHopPlan: plan.IsDirect() && len(hop.Splits) == 1,
				Degen:         params.Degen,
				Params:        suggested,
			}

			built, err := adapter.BuildSwap(ctx, build)
			if err != nil {
				return nil, 0, domain.GroupBuildError{PoolID: split.Pool.PoolID, Err: err}
			}
			txns = append(txns, built...)
		}
	}

	txns, err = r.appendPlatformFeeTransfer(txns, plan, params.Sender, suggested)
	if err != nil {
		return nil, 0, err
	}

	if len(txns) > maxGroupTxns {
		return nil, 0, domain.GroupBuildError{
			Err: fmt.Errorf("plan requires %d transactions, exceeding the group limit of %d", len(txns), maxGroupTxns),
		}
	}

	return encodeGroup(txns)
}

// boundarySkips computes per-hop chaining flags. A hop boundary is elided when
// every pool on both sides of it agrees on the same ARC200 form for the token
// crossing it: the upstream hop skips its withdraw and the downstream hop
// skips its deposit, keeping the token wrapped across the boundary.
func (r *routerUsecase) boundarySkips(plan domain.SwapPlan) (skipWithdraw, skipDeposit []bool, err error) {
	skipWithdraw = make([]bool, len(plan.Hops))
	skipDeposit = make([]bool, len(plan.Hops))

	for i := 0; i+1 < len(plan.Hops); i++ {
		upstream := plan.Hops[i]
		downstream := plan.Hops[i+1]

		var forms []domain.TokenForm

		for _, split := range upstream.Splits {
			form, err := r.poolForm(split.Pool, upstream.ToToken)
			if err != nil {
				return nil, nil, err
			}
			forms = append(forms, form)
		}
		for _, split := range downstream.Splits {
			form, err := r.poolForm(split.Pool, downstream.FromToken)
			if err != nil {
				return nil, nil, err
			}
			forms = append(forms, form)
		}

		chained := forms[0].Kind == domain.TokenKindARC200
		for _, form := range forms[1:] {
			if !form.Matches(forms[0]) {
				chained = false
				break
			}
		}

		if chained {
			skipWithdraw[i] = true
			skipDeposit[i+1] = true
		}
	}

	return skipWithdraw, skipDeposit, nil
}

func (r *routerUsecase) poolForm(pool domain.PoolConfig, token uint64) (domain.TokenForm, error) {
	adapter, err := r.adapters.ForPool(pool)
	if err != nil {
		return domain.TokenForm{}, err
	}
	return adapter.TokenForm(pool, token)
}

// appendPlatformFeeTransfer adds the skim transfer as the group's final
// transaction, in whatever form the user receives the output token.
func (r *routerUsecase) appendPlatformFeeTransfer(txns []types.Transaction, plan domain.SwapPlan, sender string, suggested types.SuggestedParams) ([]types.Transaction, error) {
	fee := plan.PlatformFee
	if fee == nil || !fee.Applied {
		return txns, nil
	}

	feeAddr, err := types.DecodeAddress(fee.FeeAddress)
	if err != nil {
		return nil, domain.InvalidAddressError{Address: fee.FeeAddress}
	}
	senderAddr, err := types.DecodeAddress(sender)
	if err != nil {
		return nil, domain.InvalidAddressError{Address: sender}
	}

	finalHop := plan.Hops[len(plan.Hops)-1]
	form, err := finalHop.Splits[0].Pool.UnderlyingForm(finalHop.ToToken)
	if err != nil {
		return nil, err
	}

	switch form.Kind {
	case domain.TokenKindNative:
		pay, err := dex.Payment(sender, feeAddr, fee.FeeAmount.Uint64(), suggested)
		if err != nil {
			return nil, err
		}
		return append(txns, pay), nil

	case domain.TokenKindASA:
		axfer, err := dex.AssetTransfer(sender, feeAddr, form.ID, fee.FeeAmount.Uint64(), suggested)
		if err != nil {
			return nil, err
		}
		return append(txns, axfer), nil

	case domain.TokenKindARC200:
		call, err := dex.AppCall(
			senderAddr,
			form.ID,
			[][]byte{
				arc200.Selector(arc200.MethodTransfer),
				arc200.EncodeAddress(feeAddr),
				arc200.EncodeUint256(dex.Uint256FromInt(fee.FeeAmount)),
			},
			nil,
			nil,
			arc200.BalanceBoxRefs(form.ID, senderAddr, feeAddr),
			dex.MinTxnFee,
			suggested,
		)
		if err != nil {
			return nil, err
		}
		return append(txns, call), nil

	default:
		return nil, fmt.Errorf("platform fee transfer: token kind (%s) is not supported", form.Kind)
	}
}

// encodeGroup assigns the group ID and serializes each transaction into the
// msgpack-then-base64 wire form wallets consume.
func encodeGroup(txns []types.Transaction) ([]string, uint64, error) {
	for i := range txns {
		txns[i].Group = types.Digest{}
	}

	groupID, err := crypto.ComputeGroupID(txns)
	if err != nil {
		return nil, 0, err
	}

	encoded := make([]string, 0, len(txns))
	networkFee := uint64(0)

	for i := range txns {
		txns[i].Group = groupID
		networkFee += uint64(txns[i].Fee)
		encoded = append(encoded, base64.StdEncoding.EncodeToString(msgpack.Encode(&txns[i])))
	}

	return encoded, networkFee, nil
}
