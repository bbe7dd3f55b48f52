package mvc

import (
	"context"

	"github.com/voi-labs/vqs/domain"
)

// TokensUsecase represents the token metadata usecases.
type TokensUsecase interface {
	// GetAllTokens returns every token catalog entry in load order.
	GetAllTokens() []domain.Token

	// GetToken returns the catalog entry for one token ID.
	GetToken(tokenID uint64) (domain.Token, error)

	// GetDecimals resolves a token's decimals: catalog first, chain lookup
	// for uncataloged ASAs, DefaultDecimals otherwise.
	GetDecimals(ctx context.Context, tokenID uint64) (uint64, error)
}
