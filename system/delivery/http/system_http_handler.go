package http

import (
	"fmt"
	"net/http"
	"net/http/pprof"
	"runtime"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/labstack/echo/v4"

	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/domain/mvc"
	"github.com/voi-labs/vqs/log"
)

type SystemHandler struct {
	logger   log.Logger
	config   domain.Config
	PUsecase mvc.PoolsUsecase

	httpClient *http.Client
}

// healthProbeTimeout bounds each endpoint probe so a hung node cannot stall
// the health check.
const healthProbeTimeout = 5 * time.Second

// NewSystemHandler will initialize the system resources endpoint
func NewSystemHandler(e *echo.Echo, config domain.Config, logger log.Logger, pu mvc.PoolsUsecase) {
	handler := &SystemHandler{
		logger:     logger,
		config:     config,
		PUsecase:   pu,
		httpClient: &http.Client{Timeout: healthProbeTimeout},
	}

	// if debug mode, enable additional profiles that are too intensive
	// for production.
	if !config.LoggerIsProduction {
		runtime.SetMutexProfileFraction(2)
		runtime.SetBlockProfileRate(2)
	}

	e.GET("/debug/pprof/*", echo.WrapHandler(http.DefaultServeMux))
	e.GET("/debug/pprof/cmdline", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	e.GET("/debug/pprof/profile", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	e.GET("/debug/pprof/symbol", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	e.GET("/debug/pprof/trace", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))

	e.GET("/health", handler.GetHealthStatus)
	e.GET("/version", handler.GetVersion)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

func (h *SystemHandler) GetVersion(c echo.Context) error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read build info")
	}

	version := buildInfo.Main.Version
	if version == "" {
		version = "(devel)"
	}

	return c.JSON(http.StatusOK, map[string]string{"version": version})
}

// GetHealthStatus probes the node and indexer REST endpoints and reports the
// catalog size. Either endpoint failing its health probe makes the service
// unhealthy.
func (h *SystemHandler) GetHealthStatus(c echo.Context) error {
	if err := h.probe(h.config.Chain.NodeURL); err != nil {
		h.logger.Error("node health probe failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Error connecting to the Voi node")
	}

	if err := h.probe(h.config.Chain.IndexerURL); err != nil {
		h.logger.Error("indexer health probe failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Error connecting to the Voi indexer")
	}

	poolCount := len(h.PUsecase.GetAllPools())
	if poolCount == 0 {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Pool catalog is empty")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"node_status":    "running",
		"indexer_status": "running",
		"pool_count":     fmt.Sprint(poolCount),
	})
}

// probe issues a GET against the endpoint's /health route.
func (h *SystemHandler) probe(baseURL string) error {
	resp, err := h.httpClient.Get(baseURL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health probe returned status (%d)", resp.StatusCode)
	}
	return nil
}
