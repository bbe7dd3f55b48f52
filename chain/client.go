// Package chain implements the read-only chain gateway over the algod and
// indexer REST APIs.
package chain

import (
	"context"
	"strings"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/indexer"
	"github.com/algorand/go-algorand-sdk/v2/types"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/voi-labs/vqs/chain/arc200"
	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/domain/cache"
	"github.com/voi-labs/vqs/log"
)

type gatewayClient struct {
	algod   *algod.Client
	indexer *indexer.Client

	// decimalsCache is process-global and monotonic; decimals are immutable
	// so stale entries are never a concern.
	decimalsCache *lru.Cache[uint64, uint64]
	paramsCache   *cache.Cache

	logger log.Logger
}

var _ domain.ChainGateway = &gatewayClient{}

const (
	decimalsCacheSize = 1024

	// Suggested params change once per round. Caching briefly collapses the
	// repeated reads a planning call would otherwise issue.
	suggestedParamsTTL      = 2 * time.Second
	suggestedParamsCacheKey = "suggested-params"
)

// NewClient creates a chain gateway over the configured algod and indexer
// endpoints.
func NewClient(config *domain.ChainConfig, logger log.Logger) (domain.ChainGateway, error) {
	algodClient, err := algod.MakeClient(config.NodeURL, config.NodeToken)
	if err != nil {
		return nil, err
	}

	indexerClient, err := indexer.MakeClient(config.IndexerURL, config.NodeToken)
	if err != nil {
		return nil, err
	}

	decimalsCache, err := lru.New[uint64, uint64](decimalsCacheSize)
	if err != nil {
		return nil, err
	}

	return &gatewayClient{
		algod:         algodClient,
		indexer:       indexerClient,
		decimalsCache: decimalsCache,
		paramsCache:   cache.New(),
		logger:        logger,
	}, nil
}

// AccountState returns the native balance and ASA holdings of an address.
// The indexer is used as a fallback when the node read fails.
func (c *gatewayClient) AccountState(ctx context.Context, address string) (domain.AccountState, error) {
	account, err := c.algod.AccountInformation(address).Do(ctx)
	if err != nil {
		c.logger.Debug("node account read failed, falling back to indexer", zap.String("address", address), zap.Error(err))

		_, account, err = c.indexer.LookupAccountByID(address).Do(ctx)
		if err != nil {
			return domain.AccountState{}, err
		}
	}

	assets := make(map[uint64]uint64, len(account.Assets))
	for _, holding := range account.Assets {
		assets[holding.AssetId] = holding.Amount
	}

	return domain.AccountState{
		Address:       address,
		NativeBalance: account.Amount,
		Assets:        assets,
	}, nil
}

// ApplicationGlobalState returns the decoded global state of an application.
func (c *gatewayClient) ApplicationGlobalState(ctx context.Context, appID uint64) (map[string]domain.StateValue, error) {
	app, err := c.algod.GetApplicationByID(appID).Do(ctx)
	if err != nil {
		return nil, err
	}

	return decodeTealState(app.Params.GlobalState)
}

// AssetDecimals returns the decimals of an ASA, caching results for the
// process lifetime. Native and unresolvable assets report DefaultDecimals.
func (c *gatewayClient) AssetDecimals(ctx context.Context, assetID uint64) (uint64, error) {
	if assetID == domain.NativeTokenID {
		return domain.DefaultDecimals, nil
	}

	if decimals, ok := c.decimalsCache.Get(assetID); ok {
		return decimals, nil
	}

	asset, err := c.algod.GetAssetByID(assetID).Do(ctx)
	if err != nil {
		c.logger.Debug("asset decimals lookup failed", zap.Uint64("asset_id", assetID), zap.Error(err))
		return domain.DefaultDecimals, nil
	}

	c.decimalsCache.Add(assetID, asset.Params.Decimals)

	return asset.Params.Decimals, nil
}

// Arc200Balance reads an address balance from the contract's balance box.
// A missing box reads as zero.
func (c *gatewayClient) Arc200Balance(ctx context.Context, contractID uint64, address string) (*uint256.Int, error) {
	addr, err := types.DecodeAddress(address)
	if err != nil {
		return nil, domain.InvalidAddressError{Address: address}
	}

	box, err := c.algod.GetApplicationBoxByName(contractID, arc200.BalanceBoxName(addr)).Do(ctx)
	if err != nil {
		if isBoxNotFound(err) {
			return uint256.NewInt(0), nil
		}
		return nil, err
	}

	return arc200.DecodeUint256(box.Value), nil
}

// Arc200Allowance reads the standing approval from owner to spender.
// A missing approval box reads as zero.
func (c *gatewayClient) Arc200Allowance(ctx context.Context, contractID uint64, owner, spender string) (*uint256.Int, error) {
	ownerAddr, err := types.DecodeAddress(owner)
	if err != nil {
		return nil, domain.InvalidAddressError{Address: owner}
	}
	spenderAddr, err := types.DecodeAddress(spender)
	if err != nil {
		return nil, domain.InvalidAddressError{Address: spender}
	}

	box, err := c.algod.GetApplicationBoxByName(contractID, arc200.ApprovalBoxName(ownerAddr, spenderAddr)).Do(ctx)
	if err != nil {
		if isBoxNotFound(err) {
			return uint256.NewInt(0), nil
		}
		return nil, err
	}

	return arc200.DecodeUint256(box.Value), nil
}

// HasBalanceBox reports whether the address has a balance box on the contract.
func (c *gatewayClient) HasBalanceBox(ctx context.Context, contractID uint64, address string) (bool, error) {
	addr, err := types.DecodeAddress(address)
	if err != nil {
		return false, domain.InvalidAddressError{Address: address}
	}

	_, err = c.algod.GetApplicationBoxByName(contractID, arc200.BalanceBoxName(addr)).Do(ctx)
	if err != nil {
		if isBoxNotFound(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// HasExchange probes whether a wrapped-token contract advertises the
// auto-redeem exchange capability in its global state.
func (c *gatewayClient) HasExchange(ctx context.Context, contractID uint64) (bool, error) {
	state, err := c.ApplicationGlobalState(ctx, contractID)
	if err != nil {
		return false, err
	}

	value, ok := domain.ReadStateValue(state, domain.StateExchange)
	if !ok {
		return false, nil
	}

	return value.Bool(), nil
}

// SuggestedParams returns transaction validity and fee parameters, cached
// briefly.
func (c *gatewayClient) SuggestedParams(ctx context.Context) (types.SuggestedParams, error) {
	if cached, ok := c.paramsCache.Get(suggestedParamsCacheKey); ok {
		if params, ok := cached.(types.SuggestedParams); ok {
			return params, nil
		}
	}

	params, err := c.algod.SuggestedParams().Do(ctx)
	if err != nil {
		return types.SuggestedParams{}, err
	}

	c.paramsCache.Set(suggestedParamsCacheKey, params, suggestedParamsTTL)

	return params, nil
}

// isBoxNotFound matches the algod error for a box read against an absent box.
func isBoxNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "box not found") || strings.Contains(msg, "no box found") || strings.Contains(msg, "404")
}
