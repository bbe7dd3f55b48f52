package usecase

import (
	"context"
	"encoding/base64"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/stretchr/testify/require"

	"github.com/voi-labs/vqs/dex"
	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/domain/mocks"
	"github.com/voi-labs/vqs/log"
)

func groupSender(t *testing.T) string {
	t.Helper()
	var addr types.Address
	addr[0] = 4
	return addr.String()
}

func decodeTxn(t *testing.T, encoded string) types.Transaction {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	var txn types.Transaction
	require.NoError(t, msgpack.Decode(raw, &txn))
	return txn
}

// wrapPool is a wrapped-token pool whose legs share ARC200 contracts, for
// exercising hop chaining.
func wrapPool(poolID uint64, tokenA, tokenB, wrappedA, wrappedB uint64) domain.PoolConfig {
	return domain.PoolConfig{
		PoolID: poolID,
		Dex:    domain.DexHumble,
		Humble: &domain.HumblePoolConfig{
			TokA: wrappedA,
			TokB: wrappedB,
			UnderlyingToWrapped: map[uint64]uint64{
				tokenA: wrappedA,
				tokenB: wrappedB,
			},
			Unwrap: []uint64{wrappedA, wrappedB},
		},
	}
}

// nativePool trades the native token against an ASA directly.
func nativePool(poolID uint64, asaToken uint64) domain.PoolConfig {
	return domain.PoolConfig{
		PoolID: poolID,
		Dex:    domain.DexNomadex,
		Nomadex: &domain.NomadexPoolConfig{
			TokA: domain.NomadexToken{ID: domain.NativeTokenID, Kind: domain.TokenKindNative},
			TokB: domain.NomadexToken{ID: asaToken, Kind: domain.TokenKindASA},
		},
	}
}

// wrappedTokenForm mirrors the HumbleSwap adapter: pool legs are wrapped
// ARC200 contracts.
func wrappedTokenForm(pool domain.PoolConfig, token uint64) (domain.TokenForm, error) {
	wrapped, ok := pool.Humble.WrappedFor(token)
	if !ok {
		return domain.TokenForm{}, domain.PoolPairMismatchError{PoolID: pool.PoolID, TokenIn: token}
	}
	return domain.TokenForm{Kind: domain.TokenKindARC200, ID: wrapped}, nil
}

func groupRouter(adapters domain.AdapterRegistry) *routerUsecase {
	return &routerUsecase{
		adapters: adapters,
		gateway:  &mocks.ChainGatewayMock{},
		logger:   &log.NoOpLogger{},
	}
}

// oneTxnPerSplit builds a single payment per traversal, tagged by the split's
// input amount.
func oneTxnPerSplit(sender string) func(ctx context.Context, build domain.SwapBuild) ([]types.Transaction, error) {
	return func(ctx context.Context, build domain.SwapBuild) ([]types.Transaction, error) {
		txn, err := dex.Payment(sender, dex.AppAddress(build.Pool.PoolID), build.AmountIn.Uint64(), build.Params)
		if err != nil {
			return nil, err
		}
		return []types.Transaction{txn}, nil
	}
}

// Every transaction in the group carries the same non-zero group ID, splits
// appear in plan order, and the platform-fee payment comes last.
func TestBuildGroup_OrderAndGroupID(t *testing.T) {
	sender := groupSender(t)

	var feeAddr types.Address
	feeAddr[0] = 9

	r := groupRouter(domain.AdapterRegistry{
		domain.DexNomadex: &mocks.DexAdapterMock{DexID: domain.DexNomadex, BuildSwapFunc: oneTxnPerSplit(sender)},
	})

	// Final hop pays out the native token, so the skim is a plain payment.
	plan := domain.SwapPlan{
		Tokens:   []uint64{splitTokenB, domain.NativeTokenID},
		AmountIn: sdkmath.NewInt(10_000),
		Hops: []domain.HopSplit{{
			FromToken: splitTokenB,
			ToToken:   domain.NativeTokenID,
			AmountIn:  sdkmath.NewInt(10_000),
			Splits: []domain.SplitAllocation{
				{Pool: nativePool(1, splitTokenB), AmountIn: sdkmath.NewInt(7_000), ExpectedOut: sdkmath.NewInt(6_900), MinOut: sdkmath.NewInt(6_800)},
				{Pool: nativePool(2, splitTokenB), AmountIn: sdkmath.NewInt(3_000), ExpectedOut: sdkmath.NewInt(2_950), MinOut: sdkmath.NewInt(2_900)},
			},
		}},
		ExpectedOut: sdkmath.NewInt(9_850),
		MinOut:      sdkmath.NewInt(9_700),
		PlatformFee: &domain.PlatformFee{
			Gain:       sdkmath.NewInt(500),
			FeeAmount:  sdkmath.NewInt(5),
			FeeBps:     100,
			FeeAddress: feeAddr.String(),
			Applied:    true,
		},
	}

	encoded, networkFee, err := r.buildGroup(context.Background(), plan, domain.SwapQuoteParams{Sender: sender})
	require.NoError(t, err)
	require.Len(t, encoded, 3)

	txns := make([]types.Transaction, 0, len(encoded))
	for _, e := range encoded {
		txns = append(txns, decodeTxn(t, e))
	}

	// Splits in allocation order.
	require.Equal(t, types.MicroAlgos(7_000), txns[0].Amount)
	require.Equal(t, types.MicroAlgos(3_000), txns[1].Amount)

	// Fee transfer last, to the fee address.
	last := txns[2]
	require.Equal(t, types.PaymentTx, last.Type)
	require.Equal(t, feeAddr, last.Receiver)
	require.Equal(t, types.MicroAlgos(5), last.Amount)

	// Uniform non-zero group ID.
	require.NotEqual(t, types.Digest{}, txns[0].Group)
	for _, txn := range txns[1:] {
		require.Equal(t, txns[0].Group, txn.Group)
	}

	total := uint64(0)
	for _, txn := range txns {
		total += uint64(txn.Fee)
	}
	require.Equal(t, total, networkFee)
}

// No fee transfer is appended when the skim was not applied.
func TestBuildGroup_NoFeeTransferWhenNotApplied(t *testing.T) {
	sender := groupSender(t)

	r := groupRouter(domain.AdapterRegistry{
		domain.DexNomadex: &mocks.DexAdapterMock{DexID: domain.DexNomadex, BuildSwapFunc: oneTxnPerSplit(sender)},
	})

	plan := domain.SwapPlan{
		Tokens:   []uint64{splitTokenA, splitTokenB},
		AmountIn: sdkmath.NewInt(10_000),
		Hops: []domain.HopSplit{{
			FromToken: splitTokenA,
			ToToken:   splitTokenB,
			AmountIn:  sdkmath.NewInt(10_000),
			Splits: []domain.SplitAllocation{
				{Pool: chainPool(1, splitTokenA, splitTokenB), AmountIn: sdkmath.NewInt(10_000), ExpectedOut: sdkmath.NewInt(9_871), MinOut: sdkmath.NewInt(9_772)},
			},
		}},
		ExpectedOut: sdkmath.NewInt(9_871),
		MinOut:      sdkmath.NewInt(9_772),
		PlatformFee: &domain.PlatformFee{Gain: sdkmath.NewInt(10), FeeAmount: sdkmath.ZeroInt()},
	}

	encoded, _, err := r.buildGroup(context.Background(), plan, domain.SwapQuoteParams{Sender: sender})
	require.NoError(t, err)
	require.Len(t, encoded, 1)
}

// A plan whose transactions exceed the protocol group limit is rejected.
func TestBuildGroup_SizeLimit(t *testing.T) {
	sender := groupSender(t)

	r := groupRouter(domain.AdapterRegistry{
		domain.DexNomadex: &mocks.DexAdapterMock{
			DexID: domain.DexNomadex,
			BuildSwapFunc: func(ctx context.Context, build domain.SwapBuild) ([]types.Transaction, error) {
				txn, err := dex.Payment(sender, dex.AppAddress(build.Pool.PoolID), 1, build.Params)
				if err != nil {
					return nil, err
				}
				// Six transactions per traversal; three traversals overflow.
				return []types.Transaction{txn, txn, txn, txn, txn, txn}, nil
			},
		},
	})

	splits := make([]domain.SplitAllocation, 0, 3)
	for poolID := uint64(1); poolID <= 3; poolID++ {
		splits = append(splits, domain.SplitAllocation{
			Pool:        chainPool(poolID, splitTokenA, splitTokenB),
			AmountIn:    sdkmath.NewInt(1_000),
			ExpectedOut: sdkmath.NewInt(990),
			MinOut:      sdkmath.NewInt(980),
		})
	}
	plan := domain.SwapPlan{
		Tokens:   []uint64{splitTokenA, splitTokenB},
		AmountIn: sdkmath.NewInt(3_000),
		Hops: []domain.HopSplit{{
			FromToken: splitTokenA,
			ToToken:   splitTokenB,
			AmountIn:  sdkmath.NewInt(3_000),
			Splits:    splits,
		}},
		ExpectedOut: sdkmath.NewInt(2_970),
		MinOut:      sdkmath.NewInt(2_940),
	}

	_, _, err := r.buildGroup(context.Background(), plan, domain.SwapQuoteParams{Sender: sender})
	require.ErrorAs(t, err, &domain.GroupBuildError{})
}

// Adjacent hops through pools sharing the same wrapped ARC200 contract elide
// the withdraw/deposit boundary between them.
func TestBoundarySkips_Chained(t *testing.T) {
	r := groupRouter(domain.AdapterRegistry{
		domain.DexHumble: &mocks.DexAdapterMock{DexID: domain.DexHumble, TokenFormFunc: wrappedTokenForm},
	})

	const wrappedMid = 500

	plan := domain.SwapPlan{
		Tokens: []uint64{0, splitTokenB, quoteTokenC},
		Hops: []domain.HopSplit{
			{
				FromToken: 0,
				ToToken:   splitTokenB,
				Splits: []domain.SplitAllocation{
					{Pool: wrapPool(1, 0, splitTokenB, 400, wrappedMid)},
				},
			},
			{
				FromToken: splitTokenB,
				ToToken:   quoteTokenC,
				Splits: []domain.SplitAllocation{
					{Pool: wrapPool(2, splitTokenB, quoteTokenC, wrappedMid, 600)},
				},
			},
		},
	}

	skipWithdraw, skipDeposit, err := r.boundarySkips(plan)
	require.NoError(t, err)

	require.Equal(t, []bool{true, false}, skipWithdraw)
	require.Equal(t, []bool{false, true}, skipDeposit)
}

// Pools that disagree on the wrapped contract, or hold the token as an ASA,
// keep the boundary.
func TestBoundarySkips_NotChained(t *testing.T) {
	r := groupRouter(domain.AdapterRegistry{
		domain.DexHumble:  &mocks.DexAdapterMock{DexID: domain.DexHumble, TokenFormFunc: wrappedTokenForm},
		domain.DexNomadex: &mocks.DexAdapterMock{DexID: domain.DexNomadex},
	})

	// Different wrapped contracts for the middle token.
	mismatched := domain.SwapPlan{
		Tokens: []uint64{0, splitTokenB, quoteTokenC},
		Hops: []domain.HopSplit{
			{
				FromToken: 0,
				ToToken:   splitTokenB,
				Splits:    []domain.SplitAllocation{{Pool: wrapPool(1, 0, splitTokenB, 400, 500)}},
			},
			{
				FromToken: splitTokenB,
				ToToken:   quoteTokenC,
				Splits:    []domain.SplitAllocation{{Pool: wrapPool(2, splitTokenB, quoteTokenC, 501, 600)}},
			},
		},
	}

	skipWithdraw, skipDeposit, err := r.boundarySkips(mismatched)
	require.NoError(t, err)
	require.Equal(t, []bool{false, false}, skipWithdraw)
	require.Equal(t, []bool{false, false}, skipDeposit)

	// A direct-token pool downstream holds the middle token as an ASA.
	asaDownstream := domain.SwapPlan{
		Tokens: []uint64{0, splitTokenB, quoteTokenC},
		Hops: []domain.HopSplit{
			{
				FromToken: 0,
				ToToken:   splitTokenB,
				Splits:    []domain.SplitAllocation{{Pool: wrapPool(1, 0, splitTokenB, 400, 500)}},
			},
			{
				FromToken: splitTokenB,
				ToToken:   quoteTokenC,
				Splits:    []domain.SplitAllocation{{Pool: chainPool(2, splitTokenB, quoteTokenC)}},
			},
		},
	}

	skipWithdraw, skipDeposit, err = r.boundarySkips(asaDownstream)
	require.NoError(t, err)
	require.Equal(t, []bool{false, false}, skipWithdraw)
	require.Equal(t, []bool{false, false}, skipDeposit)
}

// An ASA-denominated output pays the skim as an asset transfer.
func TestAppendPlatformFeeTransfer_ASA(t *testing.T) {
	sender := groupSender(t)

	var feeAddr types.Address
	feeAddr[0] = 9

	r := groupRouter(domain.AdapterRegistry{
		domain.DexNomadex: &mocks.DexAdapterMock{DexID: domain.DexNomadex, BuildSwapFunc: oneTxnPerSplit(sender)},
	})

	plan := domain.SwapPlan{
		Tokens:   []uint64{splitTokenA, splitTokenB},
		AmountIn: sdkmath.NewInt(10_000),
		Hops: []domain.HopSplit{{
			FromToken: splitTokenA,
			ToToken:   splitTokenB,
			AmountIn:  sdkmath.NewInt(10_000),
			Splits: []domain.SplitAllocation{
				{Pool: chainPool(1, splitTokenA, splitTokenB), AmountIn: sdkmath.NewInt(6_000), ExpectedOut: sdkmath.NewInt(5_900), MinOut: sdkmath.NewInt(5_800)},
				{Pool: chainPool(2, splitTokenA, splitTokenB), AmountIn: sdkmath.NewInt(4_000), ExpectedOut: sdkmath.NewInt(3_950), MinOut: sdkmath.NewInt(3_900)},
			},
		}},
		ExpectedOut: sdkmath.NewInt(9_850),
		MinOut:      sdkmath.NewInt(9_700),
		PlatformFee: &domain.PlatformFee{
			Gain:       sdkmath.NewInt(300),
			FeeAmount:  sdkmath.NewInt(3),
			FeeBps:     100,
			FeeAddress: feeAddr.String(),
			Applied:    true,
		},
	}

	encoded, _, err := r.buildGroup(context.Background(), plan, domain.SwapQuoteParams{Sender: sender})
	require.NoError(t, err)

	last := decodeTxn(t, encoded[len(encoded)-1])
	require.Equal(t, types.AssetTransferTx, last.Type)
	require.Equal(t, types.AssetIndex(splitTokenB), last.XferAsset)
	require.Equal(t, uint64(3), last.AssetAmount)
	require.Equal(t, feeAddr, last.AssetReceiver)
}
