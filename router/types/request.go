package types

import (
	sdkmath "cosmossdk.io/math"
	algotypes "github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/labstack/echo/v4"

	"github.com/voi-labs/vqs/domain"
)

// SwapQuoteRequest represents the swap quote request body for the /quote
// endpoint. Token IDs are pointers so the native token (ID zero) is
// distinguishable from an omitted field.
type SwapQuoteRequest struct {
	// Address is the swapping account. Omitted means quote-only.
	Address     string  `json:"address,omitempty"`
	InputToken  *uint64 `json:"inputToken"`
	OutputToken *uint64 `json:"outputToken"`
	// Amount is the input amount in base units, as a decimal string.
	Amount string `json:"amount"`
	// SlippageTolerance is in basis points. Omitted falls back to the server
	// default.
	SlippageTolerance *uint64 `json:"slippageTolerance,omitempty"`
	// PoolID restricts planning to a direct route through one pool.
	PoolID uint64 `json:"poolId,omitempty"`
	// Dex restricts planning to one protocol.
	Dex string `json:"dex,omitempty"`
	// Degen widens ARC200 approvals to max-uint256.
	Degen bool `json:"degen,omitempty"`

	amountIn sdkmath.Int
}

// UnmarshalHTTPRequest binds the JSON body.
func (r *SwapQuoteRequest) UnmarshalHTTPRequest(c echo.Context) error {
	if err := c.Bind(r); err != nil {
		return domain.ErrBadRequest
	}
	return nil
}

// Validate validates the SwapQuoteRequest.
func (r *SwapQuoteRequest) Validate() error {
	if r.InputToken == nil {
		return ErrInputTokenNotSpecified
	}
	if r.OutputToken == nil {
		return ErrOutputTokenNotSpecified
	}
	if *r.InputToken == *r.OutputToken {
		return ErrSameToken
	}

	amount, ok := sdkmath.NewIntFromString(r.Amount)
	if !ok || !amount.IsPositive() {
		return ErrAmountNotValid
	}
	r.amountIn = amount

	if r.SlippageTolerance != nil && *r.SlippageTolerance >= 10_000 {
		return ErrSlippageNotValid
	}

	if r.Dex != "" {
		if err := domain.DexID(r.Dex).Validate(); err != nil {
			return ErrDexNotValid
		}
	}

	if r.Address != "" {
		if _, err := algotypes.DecodeAddress(r.Address); err != nil {
			return ErrAddressNotValid
		}
	}

	return nil
}

// ToParams converts a validated request into planning parameters.
func (r *SwapQuoteRequest) ToParams(defaultSlippageBps uint64) domain.SwapQuoteParams {
	slippage := defaultSlippageBps
	if r.SlippageTolerance != nil {
		slippage = *r.SlippageTolerance
	}

	return domain.SwapQuoteParams{
		Sender:      r.Address,
		TokenIn:     *r.InputToken,
		TokenOut:    *r.OutputToken,
		AmountIn:    r.amountIn,
		SlippageBps: slippage,
		PoolID:      r.PoolID,
		Dex:         domain.DexID(r.Dex),
		Degen:       r.Degen,
	}
}
