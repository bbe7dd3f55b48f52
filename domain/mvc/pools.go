package mvc

import (
	"context"

	"github.com/voi-labs/vqs/domain"
)

// PoolsUsecase represents the pool catalog usecases.
type PoolsUsecase interface {
	// GetAllPools returns every catalog entry in load order.
	GetAllPools() []domain.PoolConfig

	// GetPool returns the catalog entry with the given ID.
	GetPool(poolID uint64) (domain.PoolConfig, error)

	// GetPoolWithState returns the catalog entry together with its current
	// reconciled on-chain state.
	GetPoolWithState(ctx context.Context, poolID uint64) (domain.PoolConfig, domain.PoolState, error)

	// GetGraph returns the pool graph over underlying tokens built from the
	// catalog. The graph is immutable after load.
	GetGraph() domain.PoolGraph
}
