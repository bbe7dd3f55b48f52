// Package arc200 holds the wire-level helpers for ARC200 wrapped-token
// contracts: method selectors, argument encoding, and the balance-box naming
// scheme contracts use for per-address storage.
package arc200

import (
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/abi"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/holiman/uint256"
)

// Standard ARC200 method signatures.
const (
	MethodTransfer  = "arc200_transfer(address,uint256)bool"
	MethodApprove   = "arc200_approve(address,uint256)bool"
	MethodBalanceOf = "arc200_balanceOf(address)uint256"
	MethodAllowance = "arc200_allowance(address,address)uint256"
)

// Box name prefixes used by the wrapped-token contracts.
var (
	balancePrefix  = []byte("balances")
	approvalPrefix = []byte("approvals")
)

// Selector returns the 4-byte ARC4 selector of a method signature.
// Panics on a malformed signature; signatures are compile-time constants.
func Selector(signature string) []byte {
	method, err := abi.MethodFromSignature(signature)
	if err != nil {
		panic(fmt.Sprintf("invalid method signature %q: %s", signature, err))
	}
	return method.GetSelector()
}

// BalanceBoxName returns "balances" || public key, the box storing an
// address balance.
func BalanceBoxName(addr types.Address) []byte {
	name := make([]byte, 0, len(balancePrefix)+len(addr))
	name = append(name, balancePrefix...)
	return append(name, addr[:]...)
}

// ApprovalBoxName returns "approvals" || owner || spender, the box storing a
// standing allowance.
func ApprovalBoxName(owner, spender types.Address) []byte {
	name := make([]byte, 0, len(approvalPrefix)+2*len(owner))
	name = append(name, approvalPrefix...)
	name = append(name, owner[:]...)
	return append(name, spender[:]...)
}

// BalanceBoxRefs returns one balance-box reference per address on the given
// contract. Every ARC200 method call must declare the boxes it touches.
func BalanceBoxRefs(contractID uint64, addrs ...types.Address) []types.AppBoxReference {
	refs := make([]types.AppBoxReference, 0, len(addrs))
	for _, addr := range addrs {
		refs = append(refs, types.AppBoxReference{
			AppID: contractID,
			Name:  BalanceBoxName(addr),
		})
	}
	return refs
}

// EncodeUint256 encodes a value as the 32-byte big-endian ABI uint256.
func EncodeUint256(value *uint256.Int) []byte {
	encoded := value.Bytes32()
	return encoded[:]
}

// EncodeAddress encodes an address as the 32-byte ABI address.
func EncodeAddress(addr types.Address) []byte {
	encoded := addr
	return encoded[:]
}

// DecodeUint256 decodes a big-endian box value. Boxes shorter than 32 bytes
// decode as their big-endian value; an empty box decodes as zero.
func DecodeUint256(raw []byte) *uint256.Int {
	return new(uint256.Int).SetBytes(raw)
}

// MaxUint256 is the approval amount used in degen mode.
func MaxUint256() *uint256.Int {
	return new(uint256.Int).SetAllOne()
}
