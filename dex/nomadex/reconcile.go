package nomadex

import (
	sdkmath "cosmossdk.io/math"
)

// reconcileReserves harmonizes the reserves read from global state with the
// balances actually observed on the pool account. Contracts deployed from
// different factory versions store the reserve slots in either order; the
// observed balances decide which slot is which.
//
// A nil actual means the balance could not be observed. The function is
// idempotent: reapplying it to its own result is a no-op.
func reconcileReserves(reserveA, reserveB sdkmath.Int, actualA, actualB *sdkmath.Int) (sdkmath.Int, sdkmath.Int) {
	switch {
	case actualA != nil && actualB != nil:
		if reserveA.Equal(*actualA) && reserveB.Equal(*actualB) {
			return reserveA, reserveB
		}
		if reserveA.Equal(*actualB) && reserveB.Equal(*actualA) {
			return reserveB, reserveA
		}
		return *actualA, *actualB

	case actualA != nil:
		if reserveA.Equal(*actualA) {
			return reserveA, reserveB
		}
		if reserveB.Equal(*actualA) {
			return reserveB, reserveA
		}
		return *actualA, reserveB

	case actualB != nil:
		if reserveB.Equal(*actualB) {
			return reserveA, reserveB
		}
		if reserveA.Equal(*actualB) {
			return reserveB, reserveA
		}
		return reserveA, *actualB

	default:
		// Neither side observable; trust the state values.
		return reserveA, reserveB
	}
}
