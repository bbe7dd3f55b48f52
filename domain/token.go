package domain

import "fmt"

// NativeTokenID is the token ID of the native chain token (VOI).
const NativeTokenID uint64 = 0

// DefaultDecimals is assumed for the native token and any asset whose
// decimals cannot be resolved.
const DefaultDecimals uint64 = 6

// TokenKind classifies the on-chain form of a token.
type TokenKind string

const (
	TokenKindNative TokenKind = "native"
	TokenKindASA    TokenKind = "asa"
	TokenKindARC200 TokenKind = "arc200"
)

// Validate returns an error if the token kind is not one of the known kinds.
func (k TokenKind) Validate() error {
	switch k {
	case TokenKindNative, TokenKindASA, TokenKindARC200:
		return nil
	default:
		return fmt.Errorf("token kind (%s) is not supported", k)
	}
}

// Token is the catalog metadata for one token.
// Wrapped ARC200 shims appear as their own entries with Underlying pointing
// at the token they wrap.
type Token struct {
	ID       uint64 `json:"id"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals uint64 `json:"decimals"`
	// Underlying is the ID of the token this entry wraps, if any.
	Underlying *uint64 `json:"tokenId,omitempty"`
}

// TokenForm is the concrete on-chain representation a pool consumes or
// produces for an underlying token. Two adjacent hops can be chained without
// a withdraw/deposit boundary when their forms match.
type TokenForm struct {
	Kind TokenKind
	// ID is the ARC200 contract ID or ASA ID. Zero for native.
	ID uint64
}

// Matches reports whether two forms are the same on-chain representation.
func (f TokenForm) Matches(other TokenForm) bool {
	return f.Kind == other.Kind && f.ID == other.ID
}
