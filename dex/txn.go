package dex

import (
	sdkmath "cosmossdk.io/math"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/holiman/uint256"
)

const (
	// BalanceBoxCost is the payment funding one per-address balance box on a
	// wrapped-token contract.
	BalanceBoxCost uint64 = 28_500

	// MinTxnFee is the flat fee of plain payments, asset transfers and simple
	// application calls.
	MinTxnFee uint64 = 1_000

	// SwapCallFee is the flat fee allowance of a pool swap call. The call
	// funds the inner transactions the pool contract issues.
	SwapCallFee uint64 = 5_000
)

// WithFlatFee pins the suggested params to a fixed per-transaction fee.
func WithFlatFee(params types.SuggestedParams, fee uint64) types.SuggestedParams {
	params.FlatFee = true
	params.Fee = types.MicroAlgos(fee)
	return params
}

// AppAddress is the escrow address of an application.
func AppAddress(appID uint64) types.Address {
	return crypto.GetApplicationAddress(appID)
}

// Payment builds a native-token payment with the minimum flat fee.
func Payment(sender string, receiver types.Address, amount uint64, params types.SuggestedParams) (types.Transaction, error) {
	return transaction.MakePaymentTxn(
		sender,
		receiver.String(),
		amount,
		nil,
		"",
		WithFlatFee(params, MinTxnFee),
	)
}

// AssetTransfer builds an ASA transfer with the minimum flat fee.
func AssetTransfer(sender string, receiver types.Address, assetID, amount uint64, params types.SuggestedParams) (types.Transaction, error) {
	return transaction.MakeAssetTransferTxn(
		sender,
		receiver.String(),
		amount,
		nil,
		WithFlatFee(params, MinTxnFee),
		"",
		assetID,
	)
}

// AppCall builds an application no-op call with explicit resource references.
func AppCall(
	sender types.Address,
	appID uint64,
	appArgs [][]byte,
	foreignApps []uint64,
	foreignAssets []uint64,
	boxes []types.AppBoxReference,
	fee uint64,
	params types.SuggestedParams,
) (types.Transaction, error) {
	return transaction.MakeApplicationNoOpTxWithBoxes(
		appID,
		appArgs,
		nil,
		foreignApps,
		foreignAssets,
		boxes,
		WithFlatFee(params, fee),
		sender,
		nil,
		types.Digest{},
		[32]byte{},
		types.Address{},
	)
}

// Uint256FromInt converts a non-negative math.Int into the 256-bit wire form.
func Uint256FromInt(value sdkmath.Int) *uint256.Int {
	result, overflow := uint256.FromBig(value.BigInt())
	if overflow {
		return new(uint256.Int).SetAllOne()
	}
	return result
}
