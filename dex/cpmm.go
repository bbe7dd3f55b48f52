// Package dex holds the pieces shared by the DEX adapters: the
// constant-product quote math and the low-level unsigned transaction
// constructors.
package dex

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
)

// BpsDenominator is the basis-point scale used by pool fees and slippage.
const BpsDenominator = 10_000

// SwapOutput computes the constant-product output with the fee in basis
// points:
//
//	amountOut = (reserveOut * amountIn * (10000 - fee)) / (reserveIn * 10000 + amountIn * (10000 - fee))
//
// Integer division truncates toward zero. Returns zero when any input is
// non-positive or the fee is not below 10000.
func SwapOutput(reserveIn, reserveOut, amountIn sdkmath.Int, feeBps uint64) sdkmath.Int {
	if feeBps >= BpsDenominator {
		return sdkmath.ZeroInt()
	}
	if amountIn.IsNil() || reserveIn.IsNil() || reserveOut.IsNil() {
		return sdkmath.ZeroInt()
	}
	if !amountIn.IsPositive() || !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return sdkmath.ZeroInt()
	}

	amountInWithFee := amountIn.MulRaw(int64(BpsDenominator - feeBps))
	numerator := reserveOut.Mul(amountInWithFee)
	denominator := reserveIn.MulRaw(BpsDenominator).Add(amountInWithFee)

	amountOut := numerator.Quo(denominator)
	if amountOut.GTE(reserveOut) {
		return sdkmath.ZeroInt()
	}

	return amountOut
}

// MinOut applies the slippage tolerance to an expected output:
// floor(amountOut * (10000 - slippageBps) / 10000).
func MinOut(amountOut sdkmath.Int, slippageBps uint64) sdkmath.Int {
	if amountOut.IsNil() || !amountOut.IsPositive() {
		return sdkmath.ZeroInt()
	}
	if slippageBps >= BpsDenominator {
		return sdkmath.ZeroInt()
	}

	return amountOut.MulRaw(int64(BpsDenominator - slippageBps)).QuoRaw(BpsDenominator)
}

// PriceImpact is the relative spot-price move of a trade,
// |spotAfter - spotBefore| / spotBefore with spot = reserveOut / reserveIn.
// Returns zero when the trade or the post-trade reserves are degenerate.
func PriceImpact(reserveIn, reserveOut, amountIn, amountOut sdkmath.Int) float64 {
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return 0
	}
	if !amountIn.IsPositive() || amountOut.IsNegative() {
		return 0
	}

	reserveInAfter := reserveIn.Add(amountIn)
	reserveOutAfter := reserveOut.Sub(amountOut)
	if !reserveInAfter.IsPositive() || !reserveOutAfter.IsPositive() {
		return 0
	}

	spotBefore := toFloat(reserveOut) / toFloat(reserveIn)
	spotAfter := toFloat(reserveOutAfter) / toFloat(reserveInAfter)
	if spotBefore == 0 {
		return 0
	}

	impact := (spotAfter - spotBefore) / spotBefore
	if impact < 0 {
		impact = -impact
	}
	return impact
}

func toFloat(value sdkmath.Int) float64 {
	result, _ := new(big.Float).SetInt(value.BigInt()).Float64()
	return result
}
