package mocks

import (
	"context"

	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/domain/mvc"
)

// RouterUsecaseMock is a mock implementation of the RouterUsecase interface.
type RouterUsecaseMock struct {
	GetSwapQuoteFunc       func(ctx context.Context, params domain.SwapQuoteParams) (*domain.SwapQuote, error)
	GetCandidateRoutesFunc func(ctx context.Context, tokenIn, tokenOut uint64, dexFilter domain.DexID) ([]domain.Route, error)
}

var _ mvc.RouterUsecase = &RouterUsecaseMock{}

func (m *RouterUsecaseMock) GetSwapQuote(ctx context.Context, params domain.SwapQuoteParams) (*domain.SwapQuote, error) {
	if m.GetSwapQuoteFunc != nil {
		return m.GetSwapQuoteFunc(ctx, params)
	}
	panic("unimplemented")
}

func (m *RouterUsecaseMock) GetCandidateRoutes(ctx context.Context, tokenIn, tokenOut uint64, dexFilter domain.DexID) ([]domain.Route, error) {
	if m.GetCandidateRoutesFunc != nil {
		return m.GetCandidateRoutesFunc(ctx, tokenIn, tokenOut, dexFilter)
	}
	panic("unimplemented")
}
