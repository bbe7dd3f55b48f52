package types

import (
	"math"
	"math/big"

	"github.com/voi-labs/vqs/domain"
)

// QuoteAmounts is the numeric summary of a swap quote. Amounts are decimal
// strings in base units; Rate is decimal-adjusted via token metadata.
type QuoteAmounts struct {
	InputAmount         string  `json:"inputAmount"`
	OutputAmount        string  `json:"outputAmount"`
	MinimumOutputAmount string  `json:"minimumOutputAmount"`
	Rate                float64 `json:"rate"`
	PriceImpact         float64 `json:"priceImpact"`
	NetworkFee          uint64  `json:"networkFee"`
}

// PoolAllocation is one pool traversal within a route.
type PoolAllocation struct {
	PoolID      uint64  `json:"poolId"`
	Dex         string  `json:"dex"`
	AmountIn    string  `json:"amountIn"`
	ExpectedOut string  `json:"expectedOut"`
	MinOut      string  `json:"minOut"`
	PriceImpact float64 `json:"priceImpact"`
}

// RouteHop is one hop of a multi-hop route with its split allocations.
type RouteHop struct {
	FromToken uint64           `json:"fromToken"`
	ToToken   uint64           `json:"toToken"`
	Pools     []PoolAllocation `json:"pools"`
}

// RouteDescription describes the selected route: Pools for a direct route,
// Hops for a multi-hop one.
type RouteDescription struct {
	Type  string           `json:"type"`
	Pools []PoolAllocation `json:"pools,omitempty"`
	Hops  []RouteHop       `json:"hops,omitempty"`
}

// SwapQuoteResponse is the /quote response body.
type SwapQuoteResponse struct {
	Quote                QuoteAmounts        `json:"quote"`
	UnsignedTransactions []string            `json:"unsignedTransactions"`
	Route                RouteDescription    `json:"route"`
	// PoolID is set only when the whole plan executes on exactly one pool.
	PoolID      *uint64             `json:"poolId"`
	PlatformFee *domain.PlatformFee `json:"platformFee,omitempty"`
	// Error carries the group assembly failure when the quote itself is valid.
	Error string `json:"error,omitempty"`
}

// NewSwapQuoteResponse converts a planning result into the response body.
// Token decimals adjust the quoted rate into human units.
func NewSwapQuoteResponse(quote *domain.SwapQuote, inDecimals, outDecimals uint64) SwapQuoteResponse {
	plan := quote.Plan

	response := SwapQuoteResponse{
		Quote: QuoteAmounts{
			InputAmount:         plan.AmountIn.String(),
			OutputAmount:        plan.ExpectedOut.String(),
			MinimumOutputAmount: plan.MinOut.String(),
			Rate:                decimalAdjustedRate(plan, inDecimals, outDecimals),
			PriceImpact:         plan.PriceImpact,
			NetworkFee:          quote.NetworkFee,
		},
		UnsignedTransactions: quote.Transactions,
		Route:                describeRoute(plan),
		PlatformFee:          plan.PlatformFee,
		Error:                quote.BuildError,
	}

	if response.UnsignedTransactions == nil {
		response.UnsignedTransactions = []string{}
	}

	if poolID, ok := plan.SinglePoolID(); ok {
		response.PoolID = &poolID
	}

	return response
}

func describeRoute(plan domain.SwapPlan) RouteDescription {
	if plan.IsDirect() {
		return RouteDescription{
			Type:  "direct",
			Pools: allocations(plan.Hops[0]),
		}
	}

	hops := make([]RouteHop, 0, len(plan.Hops))
	for _, hop := range plan.Hops {
		hops = append(hops, RouteHop{
			FromToken: hop.FromToken,
			ToToken:   hop.ToToken,
			Pools:     allocations(hop),
		})
	}

	return RouteDescription{
		Type: "multi-hop",
		Hops: hops,
	}
}

func allocations(hop domain.HopSplit) []PoolAllocation {
	pools := make([]PoolAllocation, 0, len(hop.Splits))
	for _, split := range hop.Splits {
		pools = append(pools, PoolAllocation{
			PoolID:      split.Pool.PoolID,
			Dex:         string(split.Pool.Dex),
			AmountIn:    split.AmountIn.String(),
			ExpectedOut: split.ExpectedOut.String(),
			MinOut:      split.MinOut.String(),
			PriceImpact: split.PriceImpact,
		})
	}
	return pools
}

// decimalAdjustedRate is output per unit of input in human units.
func decimalAdjustedRate(plan domain.SwapPlan, inDecimals, outDecimals uint64) float64 {
	if !plan.AmountIn.IsPositive() {
		return 0
	}

	ratio, _ := new(big.Float).Quo(
		new(big.Float).SetInt(plan.ExpectedOut.BigInt()),
		new(big.Float).SetInt(plan.AmountIn.BigInt()),
	).Float64()

	return ratio * math.Pow10(int(inDecimals)-int(outDecimals))
}
