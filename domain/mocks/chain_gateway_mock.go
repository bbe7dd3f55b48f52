package mocks

import (
	"context"

	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/holiman/uint256"

	"github.com/voi-labs/vqs/domain"
)

// ChainGatewayMock is a mock implementation of the ChainGateway interface.
type ChainGatewayMock struct {
	AccountStateFunc           func(ctx context.Context, address string) (domain.AccountState, error)
	ApplicationGlobalStateFunc func(ctx context.Context, appID uint64) (map[string]domain.StateValue, error)
	AssetDecimalsFunc          func(ctx context.Context, assetID uint64) (uint64, error)
	Arc200BalanceFunc          func(ctx context.Context, contractID uint64, address string) (*uint256.Int, error)
	Arc200AllowanceFunc        func(ctx context.Context, contractID uint64, owner, spender string) (*uint256.Int, error)
	HasBalanceBoxFunc          func(ctx context.Context, contractID uint64, address string) (bool, error)
	HasExchangeFunc            func(ctx context.Context, contractID uint64) (bool, error)
	SuggestedParamsFunc        func(ctx context.Context) (types.SuggestedParams, error)
}

var _ domain.ChainGateway = &ChainGatewayMock{}

func (m *ChainGatewayMock) AccountState(ctx context.Context, address string) (domain.AccountState, error) {
	if m.AccountStateFunc != nil {
		return m.AccountStateFunc(ctx, address)
	}
	return domain.AccountState{Address: address, Assets: map[uint64]uint64{}}, nil
}

func (m *ChainGatewayMock) ApplicationGlobalState(ctx context.Context, appID uint64) (map[string]domain.StateValue, error) {
	if m.ApplicationGlobalStateFunc != nil {
		return m.ApplicationGlobalStateFunc(ctx, appID)
	}
	panic("unimplemented")
}

func (m *ChainGatewayMock) AssetDecimals(ctx context.Context, assetID uint64) (uint64, error) {
	if m.AssetDecimalsFunc != nil {
		return m.AssetDecimalsFunc(ctx, assetID)
	}
	return domain.DefaultDecimals, nil
}

func (m *ChainGatewayMock) Arc200Balance(ctx context.Context, contractID uint64, address string) (*uint256.Int, error) {
	if m.Arc200BalanceFunc != nil {
		return m.Arc200BalanceFunc(ctx, contractID, address)
	}
	return uint256.NewInt(0), nil
}

func (m *ChainGatewayMock) Arc200Allowance(ctx context.Context, contractID uint64, owner, spender string) (*uint256.Int, error) {
	if m.Arc200AllowanceFunc != nil {
		return m.Arc200AllowanceFunc(ctx, contractID, owner, spender)
	}
	return uint256.NewInt(0), nil
}

func (m *ChainGatewayMock) HasBalanceBox(ctx context.Context, contractID uint64, address string) (bool, error) {
	if m.HasBalanceBoxFunc != nil {
		return m.HasBalanceBoxFunc(ctx, contractID, address)
	}
	return true, nil
}

func (m *ChainGatewayMock) HasExchange(ctx context.Context, contractID uint64) (bool, error) {
	if m.HasExchangeFunc != nil {
		return m.HasExchangeFunc(ctx, contractID)
	}
	return false, nil
}

func (m *ChainGatewayMock) SuggestedParams(ctx context.Context) (types.SuggestedParams, error) {
	if m.SuggestedParamsFunc != nil {
		return m.SuggestedParamsFunc(ctx)
	}
	return types.SuggestedParams{
		Fee:             1000,
		GenesisID:       "voimain-v1.0",
		GenesisHash:     make([]byte, 32),
		FirstRoundValid: 1000,
		LastRoundValid:  2000,
	}, nil
}
