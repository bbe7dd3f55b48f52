package mocks

import (
	"context"

	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/domain/mvc"
)

// TokensUsecaseMock is a mock implementation of the TokensUsecase interface.
type TokensUsecaseMock struct {
	Tokens []domain.Token

	GetDecimalsFunc func(ctx context.Context, tokenID uint64) (uint64, error)
}

var _ mvc.TokensUsecase = &TokensUsecaseMock{}

func (m *TokensUsecaseMock) GetAllTokens() []domain.Token {
	return m.Tokens
}

func (m *TokensUsecaseMock) GetToken(tokenID uint64) (domain.Token, error) {
	for _, token := range m.Tokens {
		if token.ID == tokenID {
			return token, nil
		}
	}
	return domain.Token{}, domain.InvalidTokenError{TokenID: tokenID}
}

func (m *TokensUsecaseMock) GetDecimals(ctx context.Context, tokenID uint64) (uint64, error) {
	if m.GetDecimalsFunc != nil {
		return m.GetDecimalsFunc(ctx, tokenID)
	}
	for _, token := range m.Tokens {
		if token.ID == tokenID {
			return token.Decimals, nil
		}
	}
	return domain.DefaultDecimals, nil
}
