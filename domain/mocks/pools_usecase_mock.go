package mocks

import (
	"context"

	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/domain/mvc"
)

// PoolsUsecaseMock is a mock implementation of the PoolsUsecase interface.
type PoolsUsecaseMock struct {
	Pools []domain.PoolConfig
	Graph domain.PoolGraph

	GetPoolFunc          func(poolID uint64) (domain.PoolConfig, error)
	GetPoolWithStateFunc func(ctx context.Context, poolID uint64) (domain.PoolConfig, domain.PoolState, error)
}

var _ mvc.PoolsUsecase = &PoolsUsecaseMock{}

func (m *PoolsUsecaseMock) GetAllPools() []domain.PoolConfig {
	return m.Pools
}

func (m *PoolsUsecaseMock) GetPool(poolID uint64) (domain.PoolConfig, error) {
	if m.GetPoolFunc != nil {
		return m.GetPoolFunc(poolID)
	}
	for _, pool := range m.Pools {
		if pool.PoolID == poolID {
			return pool, nil
		}
	}
	return domain.PoolConfig{}, domain.PoolNotFoundError{PoolID: poolID}
}

func (m *PoolsUsecaseMock) GetPoolWithState(ctx context.Context, poolID uint64) (domain.PoolConfig, domain.PoolState, error) {
	if m.GetPoolWithStateFunc != nil {
		return m.GetPoolWithStateFunc(ctx, poolID)
	}
	panic("unimplemented")
}

func (m *PoolsUsecaseMock) GetGraph() domain.PoolGraph {
	return m.Graph
}
