package types

import "errors"

// Handler Errors
var (
	ErrInputTokenNotSpecified  = errors.New("inputToken is required")
	ErrOutputTokenNotSpecified = errors.New("outputToken is required")
	ErrSameToken               = errors.New("inputToken and outputToken must differ")
	ErrAmountNotValid          = errors.New("amount is invalid - must be a positive integer string")
	ErrSlippageNotValid        = errors.New("slippageTolerance is invalid - must be basis points in [0, 10000)")
	ErrDexNotValid             = errors.New("dex is invalid - must be one of humble, nomadex")
	ErrAddressNotValid         = errors.New("address is invalid - must be a checksummed chain address")
	ErrTokenIDNotValid         = errors.New("token ID must be a non-negative integer")
)
