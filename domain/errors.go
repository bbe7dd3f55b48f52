package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInternalServerError is returned when an invariant is violated while serving a request.
	ErrInternalServerError = errors.New("internal server error")
	// ErrNoRoute is returned when no direct pool and no multi-hop path connects the requested tokens.
	ErrNoRoute = errors.New("no viable route between the requested tokens")
	// ErrPoolStateUnavailable is returned when every candidate pool failed to read its on-chain state.
	ErrPoolStateUnavailable = errors.New("pool state unavailable for all candidate pools")
	// ErrBadRequest is returned when the request body or params are not valid.
	ErrBadRequest = errors.New("given request is not valid")
)

// GetStatusCode returns the HTTP status code for the given error.
func GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if errors.Is(err, ErrNoRoute) || errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}

	var poolNotFoundError PoolNotFoundError
	if errors.As(err, &poolNotFoundError) {
		return http.StatusNotFound
	}

	var invalidTokenError InvalidTokenError
	if errors.As(err, &invalidTokenError) {
		return http.StatusBadRequest
	}

	var pairMismatchError PoolPairMismatchError
	if errors.As(err, &pairMismatchError) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// ResponseError represents the response error struct.
type ResponseError struct {
	Message string `json:"message"`
}

type PoolNotFoundError struct {
	PoolID uint64
}

func (e PoolNotFoundError) Error() string {
	return fmt.Sprintf("pool with ID (%d) is not found", e.PoolID)
}

// UnsupportedDexError is an error type for a pool config carrying an unknown DEX tag.
type UnsupportedDexError struct {
	Dex string
}

func (e UnsupportedDexError) Error() string {
	return fmt.Sprintf("dex (%s) is not supported", e.Dex)
}

// InvalidTokenError is an error type for a token that does not exist in the catalog.
type InvalidTokenError struct {
	TokenID uint64
}

func (e InvalidTokenError) Error() string {
	return fmt.Sprintf("token with ID (%d) is not known", e.TokenID)
}

// InvalidPoolConfigError is an error type for a catalog entry that cannot be used.
type InvalidPoolConfigError struct {
	PoolID uint64
	Reason string
}

func (e InvalidPoolConfigError) Error() string {
	return fmt.Sprintf("pool (%d) config is invalid: %s", e.PoolID, e.Reason)
}

// PoolLockedError is an error type for a pool whose contract reports a lock flag.
type PoolLockedError struct {
	PoolID uint64
}

func (e PoolLockedError) Error() string {
	return fmt.Sprintf("pool (%d) is locked", e.PoolID)
}

// StateKeyNotFoundError is an error type for a global-state field that matched none of its key aliases.
type StateKeyNotFoundError struct {
	AppID    uint64
	Semantic string
}

func (e StateKeyNotFoundError) Error() string {
	return fmt.Sprintf("app (%d) global state has no key for (%s)", e.AppID, e.Semantic)
}

// PoolStateFetchError is an error type wrapping a per-pool state read failure.
type PoolStateFetchError struct {
	PoolID uint64
	Err    error
}

func (e PoolStateFetchError) Error() string {
	return fmt.Sprintf("failed to fetch state for pool (%d): %s", e.PoolID, e.Err)
}

func (e PoolStateFetchError) Unwrap() error {
	return e.Err
}

// PoolPairMismatchError is an error type for a quote against a pool that does not trade the pair.
type PoolPairMismatchError struct {
	PoolID   uint64
	TokenIn  uint64
	TokenOut uint64
}

func (e PoolPairMismatchError) Error() string {
	return fmt.Sprintf("pool (%d) does not trade the pair (%d, %d)", e.PoolID, e.TokenIn, e.TokenOut)
}

// InvalidAddressError is an error type for an address that fails checksum decoding.
type InvalidAddressError struct {
	Address string
}

func (e InvalidAddressError) Error() string {
	return fmt.Sprintf("address (%s) is not a valid chain address", e.Address)
}

// GroupBuildError wraps an adapter failure while assembling the transaction group.
// Handlers degrade it to a quote-only response rather than a failure status.
type GroupBuildError struct {
	PoolID uint64
	Err    error
}

func (e GroupBuildError) Error() string {
	return fmt.Sprintf("failed to build swap transactions for pool (%d): %s", e.PoolID, e.Err)
}

func (e GroupBuildError) Unwrap() error {
	return e.Err
}
