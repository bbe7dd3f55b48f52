package usecase

import (
	"context"
	"encoding/json"
	"os"

	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/domain/mvc"
)

type tokensUsecase struct {
	tokens    []domain.Token
	tokenByID map[uint64]domain.Token

	gateway domain.ChainGateway
}

var _ mvc.TokensUsecase = &tokensUsecase{}

// NewTokensUsecase creates the token metadata registry over the catalog.
func NewTokensUsecase(tokens []domain.Token, gateway domain.ChainGateway) mvc.TokensUsecase {
	tokenByID := make(map[uint64]domain.Token, len(tokens))
	for _, token := range tokens {
		tokenByID[token.ID] = token
	}

	return &tokensUsecase{
		tokens:    tokens,
		tokenByID: tokenByID,
		gateway:   gateway,
	}
}

// LoadTokensFile reads a token catalog from a JSON file.
func LoadTokensFile(path string) ([]domain.Token, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tokens []domain.Token
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return nil, err
	}

	return tokens, nil
}

// GetAllTokens implements mvc.TokensUsecase.
func (t *tokensUsecase) GetAllTokens() []domain.Token {
	return t.tokens
}

// GetToken implements mvc.TokensUsecase.
func (t *tokensUsecase) GetToken(tokenID uint64) (domain.Token, error) {
	token, ok := t.tokenByID[tokenID]
	if !ok {
		return domain.Token{}, domain.InvalidTokenError{TokenID: tokenID}
	}
	return token, nil
}

// GetDecimals implements mvc.TokensUsecase. Uncataloged tokens fall back to
// the chain lookup, which itself degrades to DefaultDecimals.
func (t *tokensUsecase) GetDecimals(ctx context.Context, tokenID uint64) (uint64, error) {
	if token, ok := t.tokenByID[tokenID]; ok {
		return token.Decimals, nil
	}

	return t.gateway.AssetDecimals(ctx, tokenID)
}
