package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/domain/mocks"
	"github.com/voi-labs/vqs/log"
	"github.com/voi-labs/vqs/pools/usecase"
)

func catalogOf() []domain.PoolConfig {
	return []domain.PoolConfig{
		{
			PoolID: 395_553,
			Dex:    domain.DexNomadex,
			Nomadex: &domain.NomadexPoolConfig{
				TokA: domain.NomadexToken{ID: domain.NativeTokenID, Kind: domain.TokenKindNative},
				TokB: domain.NomadexToken{ID: 6_779_767, Kind: domain.TokenKindASA},
			},
		},
		{
			PoolID: 395_510,
			Dex:    domain.DexHumble,
			Humble: &domain.HumblePoolConfig{
				TokA: 395_614,
				TokB: 395_615,
				UnderlyingToWrapped: map[uint64]uint64{
					domain.NativeTokenID: 395_614,
					6_779_767:            395_615,
				},
				Unwrap: []uint64{395_614, 395_615},
			},
		},
	}
}

func TestNewPoolsUsecase_GraphConstruction(t *testing.T) {
	pu, err := usecase.NewPoolsUsecase(30*time.Second, catalogOf(), domain.AdapterRegistry{}, &log.NoOpLogger{})
	require.NoError(t, err)

	graph := pu.GetGraph()

	// Both pools trade the same underlying pair; each endpoint sees two edges.
	require.Len(t, graph[domain.NativeTokenID], 2)
	require.Len(t, graph[6_779_767], 2)

	for _, edge := range graph[domain.NativeTokenID] {
		require.Equal(t, uint64(6_779_767), edge.OtherToken)
	}
}

func TestNewPoolsUsecase_InvalidCatalog(t *testing.T) {
	invalid := []domain.PoolConfig{{PoolID: 1, Dex: domain.DexHumble}}

	_, err := usecase.NewPoolsUsecase(30*time.Second, invalid, domain.AdapterRegistry{}, &log.NoOpLogger{})
	require.ErrorAs(t, err, &domain.InvalidPoolConfigError{})
}

func TestGetPool(t *testing.T) {
	pu, err := usecase.NewPoolsUsecase(30*time.Second, catalogOf(), domain.AdapterRegistry{}, &log.NoOpLogger{})
	require.NoError(t, err)

	pool, err := pu.GetPool(395_553)
	require.NoError(t, err)
	require.Equal(t, domain.DexNomadex, pool.Dex)

	_, err = pu.GetPool(42)
	require.ErrorAs(t, err, &domain.PoolNotFoundError{})
}

func TestGetPoolWithState(t *testing.T) {
	adapters := domain.AdapterRegistry{
		domain.DexNomadex: &mocks.DexAdapterMock{
			DexID: domain.DexNomadex,
			FetchPoolStateFunc: func(ctx context.Context, pool domain.PoolConfig) (domain.PoolState, error) {
				return domain.PoolState{
					ReserveA: sdkmath.NewInt(1_000_000),
					ReserveB: sdkmath.NewInt(2_000_000),
					FeeBps:   30,
					TokA:     domain.NativeTokenID,
					TokB:     6_779_767,
				}, nil
			},
		},
	}

	pu, err := usecase.NewPoolsUsecase(30*time.Second, catalogOf(), adapters, &log.NoOpLogger{})
	require.NoError(t, err)

	pool, state, err := pu.GetPoolWithState(context.Background(), 395_553)
	require.NoError(t, err)
	require.Equal(t, uint64(395_553), pool.PoolID)
	require.Equal(t, int64(1_000_000), state.ReserveA.Int64())
	require.Equal(t, uint64(30), state.FeeBps)
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{
			"poolId": 395553,
			"dex": "nomadex",
			"nomadex": {
				"tokA": {"id": 0, "type": "native"},
				"tokB": {"id": 6779767, "type": "asa"}
			}
		}
	]`), 0o600))

	catalog, err := usecase.LoadCatalogFile(path)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	require.Equal(t, uint64(395_553), catalog[0].PoolID)
	require.Equal(t, domain.TokenKindASA, catalog[0].Nomadex.TokB.Kind)

	_, err = usecase.LoadCatalogFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
