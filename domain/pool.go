package domain

import (
	"cosmossdk.io/math"
)

// DexID tags the protocol a pool belongs to.
type DexID string

const (
	DexHumble  DexID = "humble"
	DexNomadex DexID = "nomadex"
)

// Validate returns an error if the DEX tag is unknown.
func (d DexID) Validate() error {
	switch d {
	case DexHumble, DexNomadex:
		return nil
	default:
		return UnsupportedDexError{Dex: string(d)}
	}
}

// NomadexToken is one leg of a Nomadex pool: a token ID and its on-chain kind.
type NomadexToken struct {
	ID   uint64    `json:"id"`
	Kind TokenKind `json:"type"`
}

// HumblePoolConfig describes a HumbleSwap pool. The pool trades two wrapped
// ARC200 contracts; deposits and withdrawals shuttle between those and the
// underlying tokens.
type HumblePoolConfig struct {
	// TokA and TokB are the wrapped-token contract IDs in contract order.
	TokA uint64 `json:"tokA"`
	TokB uint64 `json:"tokB"`
	// UnderlyingToWrapped maps an underlying token ID to the wrapped contract
	// the pool trades for it.
	UnderlyingToWrapped map[uint64]uint64 `json:"underlyingToWrapped"`
	// Unwrap lists wrapped contracts that can be unwrapped back to their
	// underlying token.
	Unwrap []uint64 `json:"unwrap"`
}

// WrappedFor returns the wrapped contract trading the given underlying token.
// A wrapped contract with no underlying entry represents itself.
func (h HumblePoolConfig) WrappedFor(token uint64) (uint64, bool) {
	if wrapped, ok := h.UnderlyingToWrapped[token]; ok {
		return wrapped, true
	}
	if token == h.TokA || token == h.TokB {
		return token, true
	}
	return 0, false
}

// UnderlyingFor is the reverse of WrappedFor.
func (h HumblePoolConfig) UnderlyingFor(wrapped uint64) uint64 {
	for underlying, w := range h.UnderlyingToWrapped {
		if w == wrapped {
			return underlying
		}
	}
	return wrapped
}

// CanUnwrap reports whether the wrapped contract supports unwrapping.
func (h HumblePoolConfig) CanUnwrap(wrapped uint64) bool {
	for _, w := range h.Unwrap {
		if w == wrapped {
			return true
		}
	}
	return false
}

// NomadexPoolConfig describes a Nomadex pool trading two tokens directly.
type NomadexPoolConfig struct {
	TokA NomadexToken `json:"tokA"`
	TokB NomadexToken `json:"tokB"`
}

// PoolConfig is one immutable catalog entry.
type PoolConfig struct {
	PoolID uint64 `json:"poolId"`
	Dex    DexID  `json:"dex"`
	// FeeBps overrides the on-chain fee when non-zero.
	FeeBps uint64 `json:"fee,omitempty"`

	Humble  *HumblePoolConfig  `json:"humble,omitempty"`
	Nomadex *NomadexPoolConfig `json:"nomadex,omitempty"`
}

// Validate checks the entry is usable: known DEX tag and a matching section.
func (p PoolConfig) Validate() error {
	if err := p.Dex.Validate(); err != nil {
		return err
	}

	switch p.Dex {
	case DexHumble:
		if p.Humble == nil {
			return InvalidPoolConfigError{PoolID: p.PoolID, Reason: "missing humble section"}
		}
		if p.Humble.TokA == p.Humble.TokB {
			return InvalidPoolConfigError{PoolID: p.PoolID, Reason: "wrapped pair must differ"}
		}
	case DexNomadex:
		if p.Nomadex == nil {
			return InvalidPoolConfigError{PoolID: p.PoolID, Reason: "missing nomadex section"}
		}
		if err := p.Nomadex.TokA.Kind.Validate(); err != nil {
			return InvalidPoolConfigError{PoolID: p.PoolID, Reason: err.Error()}
		}
		if err := p.Nomadex.TokB.Kind.Validate(); err != nil {
			return InvalidPoolConfigError{PoolID: p.PoolID, Reason: err.Error()}
		}
	}

	return nil
}

// Underlying returns the pair of underlying token IDs the pool trades.
// For HumbleSwap the underlying tokens are derived by reversing
// UnderlyingToWrapped; a wrapped contract with no underlying is its own
// vertex.
func (p PoolConfig) Underlying() (uint64, uint64) {
	switch p.Dex {
	case DexHumble:
		return p.Humble.UnderlyingFor(p.Humble.TokA), p.Humble.UnderlyingFor(p.Humble.TokB)
	case DexNomadex:
		return p.Nomadex.TokA.ID, p.Nomadex.TokB.ID
	default:
		return 0, 0
	}
}

// CoversPair reports whether the pool trades the given underlying pair in
// either direction.
func (p PoolConfig) CoversPair(tokenA, tokenB uint64) bool {
	a, b := p.Underlying()
	return (a == tokenA && b == tokenB) || (a == tokenB && b == tokenA)
}

// UnderlyingForm returns the concrete form the user holds for an underlying
// token outside the pool: the form deposits consume and withdrawals produce.
// A HumbleSwap wrapped contract with no underlying stays ARC200 end to end.
func (p PoolConfig) UnderlyingForm(token uint64) (TokenForm, error) {
	switch p.Dex {
	case DexHumble:
		wrapped, ok := p.Humble.WrappedFor(token)
		if !ok {
			return TokenForm{}, PoolPairMismatchError{PoolID: p.PoolID, TokenIn: token}
		}
		if wrapped == token {
			return TokenForm{Kind: TokenKindARC200, ID: token}, nil
		}
		if token == NativeTokenID {
			return TokenForm{Kind: TokenKindNative}, nil
		}
		return TokenForm{Kind: TokenKindASA, ID: token}, nil
	case DexNomadex:
		switch token {
		case p.Nomadex.TokA.ID:
			return TokenForm{Kind: p.Nomadex.TokA.Kind, ID: legFormID(p.Nomadex.TokA)}, nil
		case p.Nomadex.TokB.ID:
			return TokenForm{Kind: p.Nomadex.TokB.Kind, ID: legFormID(p.Nomadex.TokB)}, nil
		default:
			return TokenForm{}, PoolPairMismatchError{PoolID: p.PoolID, TokenIn: token}
		}
	default:
		return TokenForm{}, UnsupportedDexError{Dex: string(p.Dex)}
	}
}

func legFormID(leg NomadexToken) uint64 {
	if leg.Kind == TokenKindNative {
		return 0
	}
	return leg.ID
}

// PoolState is the cached on-chain state of one pool, valid for a single
// planning call. ReserveA corresponds to TokA after reconciliation.
type PoolState struct {
	ReserveA math.Int
	ReserveB math.Int
	// FeeBps is the total swap fee in basis points.
	FeeBps uint64
	// TokA and TokB are underlying token IDs in canonical order.
	TokA uint64
	TokB uint64

	// HumbleSwap pools additionally expose the fee split, LP supply and a
	// lock flag from the pool contract.
	ProtoFeeBps uint64
	LPFeeBps    uint64
	LPSupply    math.Int
	Locked      bool
}

// OrientedReserves returns the reserves ordered by trade direction.
func (s PoolState) OrientedReserves(fromToken, toToken uint64) (reserveIn, reserveOut math.Int, ok bool) {
	switch {
	case fromToken == s.TokA && toToken == s.TokB:
		return s.ReserveA, s.ReserveB, true
	case fromToken == s.TokB && toToken == s.TokA:
		return s.ReserveB, s.ReserveA, true
	default:
		return math.Int{}, math.Int{}, false
	}
}

// PoolEdge is one graph edge: a pool connecting a token to a neighbor.
type PoolEdge struct {
	PoolID     uint64
	OtherToken uint64
	Dex        DexID
	Pool       PoolConfig
}

// PoolGraph is an undirected multigraph keyed by underlying token ID.
// Edges appear under both endpoints.
type PoolGraph map[uint64][]PoolEdge

// Neighbors returns the edges leaving a token, optionally restricted to one DEX.
func (g PoolGraph) Neighbors(token uint64, dexFilter DexID) []PoolEdge {
	edges := g[token]
	if dexFilter == "" {
		return edges
	}

	filtered := make([]PoolEdge, 0, len(edges))
	for _, edge := range edges {
		if edge.Dex == dexFilter {
			filtered = append(filtered, edge)
		}
	}
	return filtered
}

// PoolsForPair returns every pool covering the unordered pair, deduplicated
// by pool ID, in edge insertion order.
func (g PoolGraph) PoolsForPair(tokenA, tokenB uint64, dexFilter DexID) []PoolConfig {
	seen := make(map[uint64]struct{})
	var pools []PoolConfig
	for _, edge := range g.Neighbors(tokenA, dexFilter) {
		if edge.OtherToken != tokenB {
			continue
		}
		if _, ok := seen[edge.PoolID]; ok {
			continue
		}
		seen[edge.PoolID] = struct{}{}
		pools = append(pools, edge.Pool)
	}
	return pools
}

// Route is a candidate path between two underlying tokens. PoolOptions[i]
// lists every pool covering the edge (Tokens[i], Tokens[i+1]).
type Route struct {
	Tokens      []uint64
	PoolOptions [][]PoolConfig
}

// Hops returns the number of pool traversals on the route.
func (r Route) Hops() int {
	return len(r.PoolOptions)
}
