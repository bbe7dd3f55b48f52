package domain

import (
	"context"

	"cosmossdk.io/math"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/holiman/uint256"
)

// StateValue is one decoded TEAL global-state value: either bytes or a uint.
type StateValue struct {
	Bytes   []byte
	Uint    uint64
	IsBytes bool
}

// Int converts the value to an integer. Byte values are interpreted as
// big-endian unsigned integers, which is how ARC200 contracts store uint256
// reserves.
func (v StateValue) Int() math.Int {
	if !v.IsBytes {
		return math.NewIntFromUint64(v.Uint)
	}
	return math.NewIntFromBigInt(new(uint256.Int).SetBytes(v.Bytes).ToBig())
}

// Bool converts the value to a flag. Byte values are true when non-empty and
// non-zero.
func (v StateValue) Bool() bool {
	if !v.IsBytes {
		return v.Uint != 0
	}
	for _, b := range v.Bytes {
		if b != 0 {
			return true
		}
	}
	return false
}

// StateSemantic names a global-state field independently of the key a
// contract stores it under.
type StateSemantic string

const (
	StateReserveA StateSemantic = "reserve_a"
	StateReserveB StateSemantic = "reserve_b"
	StateFee      StateSemantic = "fee"
	StateProtoFee StateSemantic = "proto_fee"
	StateLPFee    StateSemantic = "lp_fee"
	StateLPSupply StateSemantic = "lp_supply"
	StateLocked   StateSemantic = "locked"
	StateExchange StateSemantic = "exchange"
)

// stateKeyAliases is the declarative table of candidate global-state keys per
// field semantic, tried in order. Contracts deployed at different times use
// different key spellings.
var stateKeyAliases = map[StateSemantic][]string{
	StateReserveA: {"reserve_a", "reserveA", "r_a", "ra", "reserve0", "reserve_0"},
	StateReserveB: {"reserve_b", "reserveB", "r_b", "rb", "reserve1", "reserve_1"},
	StateFee:      {"fee", "tot_fee", "total_fee", "fee_bps"},
	StateProtoFee: {"proto_fee", "protocol_fee", "pf"},
	StateLPFee:    {"lp_fee", "lf"},
	StateLPSupply: {"lp_supply", "minted", "supply"},
	StateLocked:   {"locked", "lock", "paused"},
	StateExchange: {"exchange", "auto_exchange", "redeemable"},
}

// ReadStateValue returns the first global-state value matching the semantic's
// key aliases.
func ReadStateValue(state map[string]StateValue, semantic StateSemantic) (StateValue, bool) {
	for _, key := range stateKeyAliases[semantic] {
		if value, ok := state[key]; ok {
			return value, true
		}
	}
	return StateValue{}, false
}

// AccountState is the native and ASA holdings of one address.
type AccountState struct {
	Address       string
	NativeBalance uint64
	// Assets maps ASA ID to held amount. Unheld assets are absent.
	Assets map[uint64]uint64
}

// ChainGateway is the read-only chain interface the core consumes.
// Implementations are HTTP clients; every method honors the context deadline.
type ChainGateway interface {
	// AccountState returns the native balance and ASA holdings of an address.
	AccountState(ctx context.Context, address string) (AccountState, error)
	// ApplicationGlobalState returns the decoded global state of an application.
	ApplicationGlobalState(ctx context.Context, appID uint64) (map[string]StateValue, error)
	// AssetDecimals returns the decimals of an ASA. Native and unresolvable
	// assets report DefaultDecimals. Results are cached for the process
	// lifetime.
	AssetDecimals(ctx context.Context, assetID uint64) (uint64, error)
	// Arc200Balance reads an address balance from an ARC200 contract's
	// balance box. A missing box reads as zero.
	Arc200Balance(ctx context.Context, contractID uint64, address string) (*uint256.Int, error)
	// Arc200Allowance reads the standing approval from owner to spender.
	Arc200Allowance(ctx context.Context, contractID uint64, owner, spender string) (*uint256.Int, error)
	// HasBalanceBox reports whether the address has a balance box on the
	// contract; absent boxes require a funded box payment before first use.
	HasBalanceBox(ctx context.Context, contractID uint64, address string) (bool, error)
	// HasExchange probes whether a wrapped-token contract advertises the
	// auto-redeem exchange capability.
	HasExchange(ctx context.Context, contractID uint64) (bool, error)
	// SuggestedParams returns transaction validity and fee parameters.
	SuggestedParams(ctx context.Context) (types.SuggestedParams, error)
}
