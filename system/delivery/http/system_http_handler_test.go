package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/domain/mocks"
	"github.com/voi-labs/vqs/log"
	systemHttp "github.com/voi-labs/vqs/system/delivery/http"
)

func healthBackend(t *testing.T, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server
}

func systemServer(nodeURL, indexerURL string, pools []domain.PoolConfig) *echo.Echo {
	e := echo.New()
	config := domain.Config{
		LoggerIsProduction: true,
		Chain: &domain.ChainConfig{
			NodeURL:    nodeURL,
			IndexerURL: indexerURL,
		},
	}
	systemHttp.NewSystemHandler(e, config, &log.NoOpLogger{}, &mocks.PoolsUsecaseMock{Pools: pools})
	return e
}

func TestGetHealthStatus(t *testing.T) {
	node := healthBackend(t, http.StatusOK)
	indexer := healthBackend(t, http.StatusOK)

	e := systemServer(node.URL, indexer.URL, []domain.PoolConfig{{PoolID: 1, Dex: domain.DexNomadex}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"pool_count":"1"`)
}

func TestGetHealthStatus_NodeDown(t *testing.T) {
	node := healthBackend(t, http.StatusInternalServerError)
	indexer := healthBackend(t, http.StatusOK)

	e := systemServer(node.URL, indexer.URL, []domain.PoolConfig{{PoolID: 1, Dex: domain.DexNomadex}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetHealthStatus_EmptyCatalog(t *testing.T) {
	node := healthBackend(t, http.StatusOK)
	indexer := healthBackend(t, http.StatusOK)

	e := systemServer(node.URL, indexer.URL, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetVersion(t *testing.T) {
	node := healthBackend(t, http.StatusOK)
	indexer := healthBackend(t, http.StatusOK)

	e := systemServer(node.URL, indexer.URL, nil)

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "version")
}
