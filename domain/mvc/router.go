package mvc

import (
	"context"

	"github.com/voi-labs/vqs/domain"
)

// RouterUsecase represents the quote and route planning usecases.
type RouterUsecase interface {
	// GetSwapQuote plans the optimal swap for the given parameters: it
	// enumerates candidate routes, quotes them with per-hop splits, selects
	// the best plan, applies the platform-fee skim, and assembles the atomic
	// transaction group unless the request is quote-only.
	//
	// A quote with an empty transaction list and a non-empty BuildError is
	// returned when planning succeeded but assembly failed.
	GetSwapQuote(ctx context.Context, params domain.SwapQuoteParams) (*domain.SwapQuote, error)

	// GetCandidateRoutes enumerates the candidate routes between two tokens
	// without quoting them, sorted ascending by hop count.
	GetCandidateRoutes(ctx context.Context, tokenIn, tokenOut uint64, dexFilter domain.DexID) ([]domain.Route, error)
}
