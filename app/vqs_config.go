package main

import (
	"github.com/voi-labs/vqs/domain"
)

// DefaultConfig defines the default config for the quote server.
var DefaultConfig = domain.Config{
	ServerAddress:             ":9092",
	ServerTimeoutDurationSecs: 20,

	LoggerFilename:     "vqs.log",
	LoggerIsProduction: true,
	LoggerLevel:        "info",

	Chain: &domain.ChainConfig{
		NodeURL:    "https://mainnet-api.voi.nodely.dev",
		IndexerURL: "https://mainnet-idx.voi.nodely.dev",
		ChainID:    "voimain-v1.0",
	},

	Catalog: &domain.CatalogConfig{
		PoolsFile:  "pools.json",
		TokensFile: "tokens.json",
	},

	Router: &domain.RouterConfig{
		MaxHops:              2,
		MaxStateFetchWorkers: 8,
		DefaultSlippageBps:   100,
	},

	PlatformFee: &domain.PlatformFeeConfig{
		Bps: 0,
	},

	CORS: &domain.CORSConfig{
		AllowedHeaders: "Origin, Accept, Content-Type, X-Requested-With",
		AllowedMethods: "GET, POST, OPTIONS",
		AllowedOrigin:  "*",
	},
}
