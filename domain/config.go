package domain

// Config defines the config for the quote server.
type Config struct {
	// ServerAddress is the address of the server.
	ServerAddress string `mapstructure:"server-address"`
	// ServerTimeoutDurationSecs is the timeout duration for the server, propagated
	// as the deadline of every planning call.
	ServerTimeoutDurationSecs int `mapstructure:"timeout-duration-secs"`

	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	Chain       *ChainConfig       `mapstructure:"chain"`
	Catalog     *CatalogConfig     `mapstructure:"catalog"`
	Router      *RouterConfig      `mapstructure:"router"`
	PlatformFee *PlatformFeeConfig `mapstructure:"platform-fee"`
	OTEL        *OTELConfig        `mapstructure:"otel"`
	CORS        *CORSConfig        `mapstructure:"cors"`
}

// ChainConfig defines the chain endpoints and chain-level constants.
type ChainConfig struct {
	// NodeURL is the algod REST endpoint.
	NodeURL string `mapstructure:"node-url"`
	// IndexerURL is the indexer REST endpoint used as an account-lookup fallback.
	IndexerURL string `mapstructure:"indexer-url"`
	// NodeToken is the API token for both endpoints. Empty for public nodes.
	NodeToken string `mapstructure:"node-token"`
	// ChainID is the genesis ID ("voimain-v1.0" for Voi mainnet).
	ChainID string `mapstructure:"chain-id"`
	// BeaconAppID is the no-op application used to pad short groups for
	// resource slots.
	BeaconAppID uint64 `mapstructure:"beacon-app-id"`
	// NomadexFactoryAppID is included in foreign apps of every Nomadex swap call.
	NomadexFactoryAppID uint64 `mapstructure:"nomadex-factory-app-id"`
}

// CatalogConfig points at the pool and token catalog files loaded at startup.
type CatalogConfig struct {
	PoolsFile  string `mapstructure:"pools-file"`
	TokensFile string `mapstructure:"tokens-file"`
}

// RouterConfig defines the config for the router.
type RouterConfig struct {
	// MaxHops is the maximum number of pool traversals on a route.
	MaxHops int `mapstructure:"max-hops"`
	// MaxStateFetchWorkers bounds the pool-state fan-out per planning call.
	MaxStateFetchWorkers int `mapstructure:"max-state-fetch-workers"`
	// DefaultSlippageBps is applied when the request carries no slippage tolerance.
	DefaultSlippageBps uint64 `mapstructure:"default-slippage-bps"`
}

// PlatformFeeConfig defines the optional fee skim on aggregation gain.
type PlatformFeeConfig struct {
	// Bps is the fee in basis points taken from the gain versus the best
	// single-pool baseline. Zero disables the skim.
	Bps uint64 `mapstructure:"bps"`
	// Address receives the fee transfer.
	Address string `mapstructure:"address"`
}

// OTELConfig defines the tracing and error-reporting config.
type OTELConfig struct {
	// DSN is the sentry DSN. Tracing and reporting are disabled when empty.
	DSN string `mapstructure:"dsn"`
	// SampleRate is the trace sample rate for quote endpoints.
	SampleRate float64 `mapstructure:"sample-rate"`
	// Environment tags emitted events ("production", "staging").
	Environment string `mapstructure:"environment"`
	// CustomSampleRate overrides SampleRate per endpoint path.
	CustomSampleRate map[string]float64 `mapstructure:"custom-sample-rate"`
}

// CORSConfig defines the CORS headers returned by the middleware.
type CORSConfig struct {
	AllowedHeaders string `mapstructure:"allowed-headers"`
	AllowedMethods string `mapstructure:"allowed-methods"`
	AllowedOrigin  string `mapstructure:"allowed-origin"`
}
