package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/voi-labs/vqs/chain"
	"github.com/voi-labs/vqs/dex/humble"
	"github.com/voi-labs/vqs/dex/nomadex"
	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/domain/mvc"
	"github.com/voi-labs/vqs/log"
	"github.com/voi-labs/vqs/middleware"

	poolsHttpDelivery "github.com/voi-labs/vqs/pools/delivery/http"
	poolsUseCase "github.com/voi-labs/vqs/pools/usecase"
	routerHttpDelivery "github.com/voi-labs/vqs/router/delivery/http"
	routerUseCase "github.com/voi-labs/vqs/router/usecase"
	systemhttpdelivery "github.com/voi-labs/vqs/system/delivery/http"
	tokensUseCase "github.com/voi-labs/vqs/tokens/usecase"
)

// QuoteServer defines an interface for the Voi quote server (VQS).
// It wires the chain gateway, the DEX adapters and the planning usecases
// behind the HTTP surface.
type QuoteServer interface {
	GetPoolsUsecase() mvc.PoolsUsecase
	GetTokensUsecase() mvc.TokensUsecase
	GetRouterUsecase() mvc.RouterUsecase
	GetLogger() log.Logger
	Shutdown(context.Context) error
	Start(context.Context) error
}

type quoteServer struct {
	poolsUsecase  mvc.PoolsUsecase
	tokensUsecase mvc.TokensUsecase
	routerUsecase mvc.RouterUsecase

	e          *echo.Echo
	vqsAddress string
	logger     log.Logger
}

// GetPoolsUsecase implements QuoteServer.
func (vqs *quoteServer) GetPoolsUsecase() mvc.PoolsUsecase {
	return vqs.poolsUsecase
}

// GetTokensUsecase implements QuoteServer.
func (vqs *quoteServer) GetTokensUsecase() mvc.TokensUsecase {
	return vqs.tokensUsecase
}

// GetRouterUsecase implements QuoteServer.
func (vqs *quoteServer) GetRouterUsecase() mvc.RouterUsecase {
	return vqs.routerUsecase
}

// GetLogger implements QuoteServer.
func (vqs *quoteServer) GetLogger() log.Logger {
	return vqs.logger
}

// Shutdown implements QuoteServer.
func (vqs *quoteServer) Shutdown(ctx context.Context) error {
	return vqs.e.Shutdown(ctx)
}

// Start implements QuoteServer.
func (vqs *quoteServer) Start(context.Context) error {
	vqs.logger.Info("Starting quote server", zap.String("address", vqs.vqsAddress))
	return vqs.e.Start(vqs.vqsAddress)
}

// NewQuoteServer creates a new quote server (VQS).
func NewQuoteServer(config domain.Config, logger log.Logger) (QuoteServer, error) {
	// Setup echo server
	e := echo.New()
	middleware := middleware.InitMiddleware(config.CORS)
	e.Use(middleware.CORS)
	e.Use(middleware.InstrumentMiddleware)
	if config.OTEL != nil && config.OTEL.DSN != "" {
		e.Use(middleware.TraceWithParamsMiddleware("vqs"))
	}

	// Chain gateway over the node and indexer endpoints
	gateway, err := chain.NewClient(config.Chain, logger)
	if err != nil {
		return nil, err
	}

	// One adapter per DEX protocol
	adapters := domain.AdapterRegistry{
		domain.DexHumble:  humble.NewAdapter(gateway, config.Chain.BeaconAppID, logger),
		domain.DexNomadex: nomadex.NewAdapter(gateway, config.Chain.NomadexFactoryAppID, logger),
	}

	// Load the pool and token catalogs; both are immutable after this point.
	poolCatalog, err := poolsUseCase.LoadCatalogFile(config.Catalog.PoolsFile)
	if err != nil {
		return nil, err
	}
	tokenCatalog, err := tokensUseCase.LoadTokensFile(config.Catalog.TokensFile)
	if err != nil {
		return nil, err
	}

	// Every planning call inherits the configured server deadline, so a hung
	// node read fails the request instead of stalling it.
	timeoutDuration := time.Duration(config.ServerTimeoutDurationSecs) * time.Second

	poolsUsecase, err := poolsUseCase.NewPoolsUsecase(timeoutDuration, poolCatalog, adapters, logger)
	if err != nil {
		return nil, err
	}
	tokensUsecase := tokensUseCase.NewTokensUsecase(tokenCatalog, gateway)
	routerUsecase := routerUseCase.NewRouterUsecase(timeoutDuration, poolsUsecase, adapters, gateway, *config.Router, *config.PlatformFee, logger)

	// HTTP handlers
	routerHttpDelivery.NewRouterHandler(e, routerUsecase, tokensUsecase, config.Router.DefaultSlippageBps, logger)
	poolsHttpDelivery.NewPoolsHandler(e, poolsUsecase, tokensUsecase, logger)
	systemhttpdelivery.NewSystemHandler(e, config, logger, poolsUsecase)

	return &quoteServer{
		poolsUsecase:  poolsUsecase,
		tokensUsecase: tokensUsecase,
		routerUsecase: routerUsecase,
		e:             e,
		vqsAddress:    config.ServerAddress,
		logger:        logger,
	}, nil
}
