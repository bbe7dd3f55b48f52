package usecase

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/domain/mvc"
	"github.com/voi-labs/vqs/log"
)

type poolsUsecase struct {
	contextTimeout time.Duration

	pools    []domain.PoolConfig
	poolByID map[uint64]domain.PoolConfig
	graph    domain.PoolGraph

	adapters domain.AdapterRegistry
	logger   log.Logger
}

var _ mvc.PoolsUsecase = &poolsUsecase{}

// NewPoolsUsecase creates the pools usecase over a validated catalog. The
// catalog and the derived graph are immutable for the process lifetime.
func NewPoolsUsecase(timeout time.Duration, catalog []domain.PoolConfig, adapters domain.AdapterRegistry, logger log.Logger) (mvc.PoolsUsecase, error) {
	poolByID := make(map[uint64]domain.PoolConfig, len(catalog))
	for _, pool := range catalog {
		if err := pool.Validate(); err != nil {
			return nil, err
		}
		poolByID[pool.PoolID] = pool
	}

	graph := buildGraph(catalog)

	logger.Info("pool catalog loaded", zap.Int("pools", len(catalog)), zap.Int("tokens", len(graph)))

	return &poolsUsecase{
		contextTimeout: timeout,
		pools:          catalog,
		poolByID:       poolByID,
		graph:          graph,
		adapters:       adapters,
		logger:         logger,
	}, nil
}

// LoadCatalogFile reads a pool catalog from a JSON file.
func LoadCatalogFile(path string) ([]domain.PoolConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var catalog []domain.PoolConfig
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, err
	}

	return catalog, nil
}

// buildGraph adds one undirected edge per pool between the underlying tokens
// it trades. Edges appear under both endpoints.
func buildGraph(catalog []domain.PoolConfig) domain.PoolGraph {
	graph := make(domain.PoolGraph)

	for _, pool := range catalog {
		tokenA, tokenB := pool.Underlying()
		if tokenA == tokenB {
			continue
		}

		graph[tokenA] = append(graph[tokenA], domain.PoolEdge{
			PoolID:     pool.PoolID,
			OtherToken: tokenB,
			Dex:        pool.Dex,
			Pool:       pool,
		})
		graph[tokenB] = append(graph[tokenB], domain.PoolEdge{
			PoolID:     pool.PoolID,
			OtherToken: tokenA,
			Dex:        pool.Dex,
			Pool:       pool,
		})
	}

	return graph
}

// GetAllPools implements mvc.PoolsUsecase.
func (p *poolsUsecase) GetAllPools() []domain.PoolConfig {
	return p.pools
}

// GetPool implements mvc.PoolsUsecase.
func (p *poolsUsecase) GetPool(poolID uint64) (domain.PoolConfig, error) {
	pool, ok := p.poolByID[poolID]
	if !ok {
		return domain.PoolConfig{}, domain.PoolNotFoundError{PoolID: poolID}
	}
	return pool, nil
}

// GetPoolWithState implements mvc.PoolsUsecase.
func (p *poolsUsecase) GetPoolWithState(ctx context.Context, poolID uint64) (domain.PoolConfig, domain.PoolState, error) {
	ctx, cancel := context.WithTimeout(ctx, p.contextTimeout)
	defer cancel()

	pool, err := p.GetPool(poolID)
	if err != nil {
		return domain.PoolConfig{}, domain.PoolState{}, err
	}

	adapter, err := p.adapters.ForPool(pool)
	if err != nil {
		return domain.PoolConfig{}, domain.PoolState{}, err
	}

	state, err := adapter.FetchPoolState(ctx, pool)
	if err != nil {
		return domain.PoolConfig{}, domain.PoolState{}, err
	}

	return pool, state, nil
}

// GetGraph implements mvc.PoolsUsecase.
func (p *poolsUsecase) GetGraph() domain.PoolGraph {
	return p.graph
}
