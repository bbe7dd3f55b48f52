package usecase

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"
	"go.uber.org/zap"

	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/domain/mvc"
	"github.com/voi-labs/vqs/log"
)

type routerUsecase struct {
	contextTimeout time.Duration

	poolsUsecase mvc.PoolsUsecase
	adapters     domain.AdapterRegistry
	gateway      domain.ChainGateway

	config    domain.RouterConfig
	feeConfig domain.PlatformFeeConfig

	logger log.Logger
}

var _ mvc.RouterUsecase = &routerUsecase{}

// NewRouterUsecase creates the router usecase: route planning, quoting with
// per-hop splits, route selection, the platform-fee skim and atomic group
// assembly.
func NewRouterUsecase(
	timeout time.Duration,
	poolsUsecase mvc.PoolsUsecase,
	adapters domain.AdapterRegistry,
	gateway domain.ChainGateway,
	config domain.RouterConfig,
	feeConfig domain.PlatformFeeConfig,
	logger log.Logger,
) mvc.RouterUsecase {
	return &routerUsecase{
		contextTimeout: timeout,
		poolsUsecase:   poolsUsecase,
		adapters:       adapters,
		gateway:        gateway,
		config:         config,
		feeConfig:      feeConfig,
		logger:         logger,
	}
}

// GetCandidateRoutes implements mvc.RouterUsecase.
func (r *routerUsecase) GetCandidateRoutes(ctx context.Context, tokenIn, tokenOut uint64, dexFilter domain.DexID) ([]domain.Route, error) {
	if tokenIn == tokenOut {
		return nil, domain.ErrBadRequest
	}

	return FindCandidateRoutes(r.poolsUsecase.GetGraph(), tokenIn, tokenOut, r.config.MaxHops, dexFilter), nil
}

// GetSwapQuote implements mvc.RouterUsecase.
func (r *routerUsecase) GetSwapQuote(ctx context.Context, params domain.SwapQuoteParams) (*domain.SwapQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, r.contextTimeout)
	defer cancel()

	if params.TokenIn == params.TokenOut || !params.AmountIn.IsPositive() {
		return nil, quoteError(domain.ErrBadRequest)
	}

	routes, err := r.candidateRoutes(params)
	if err != nil {
		return nil, quoteError(err)
	}
	if len(routes) == 0 {
		return nil, quoteError(domain.ErrNoRoute)
	}

	states := r.fetchPoolStates(ctx, routes, r.config.MaxStateFetchWorkers)
	if len(states) == 0 {
		return nil, quoteError(domain.ErrPoolStateUnavailable)
	}

	qc := &quoteContext{
		states:      states,
		slippageBps: params.SlippageBps,
	}

	plan, ok := r.selectBestPlan(qc, routes, params.AmountIn)
	if !ok {
		return nil, quoteError(domain.ErrNoRoute)
	}

	r.applyPlatformFee(qc, &plan, params)

	r.logger.Info("swap plan selected",
		zap.Uint64("token_in", params.TokenIn),
		zap.Uint64("token_out", params.TokenOut),
		zap.String("amount_in", plan.AmountIn.String()),
		zap.String("expected_out", plan.ExpectedOut.String()),
		zap.Int("hops", len(plan.Hops)),
		zap.Int("pools", plan.PoolCount()),
	)

	quote := &domain.SwapQuote{Plan: plan}

	if params.Sender != "" {
		transactions, networkFee, err := r.buildGroup(ctx, plan, params)
		if err != nil {
			domain.VQSGroupBuildErrorCounter.Inc()
			r.logger.Error("transaction group assembly failed, returning quote only", zap.Error(err))
			quote.BuildError = err.Error()
			domain.VQSQuotesCounter.WithLabelValues(routeTypeLabel(plan), "build_failed").Inc()
			return quote, nil
		}
		quote.Transactions = transactions
		quote.NetworkFee = networkFee
	}

	domain.VQSQuotesCounter.WithLabelValues(routeTypeLabel(plan), "ok").Inc()

	return quote, nil
}

// candidateRoutes enumerates routes for the request. A pinned pool restricts
// planning to a direct route through that pool.
func (r *routerUsecase) candidateRoutes(params domain.SwapQuoteParams) ([]domain.Route, error) {
	if params.PoolID != 0 {
		pool, err := r.poolsUsecase.GetPool(params.PoolID)
		if err != nil {
			return nil, err
		}
		if !pool.CoversPair(params.TokenIn, params.TokenOut) {
			return nil, domain.PoolPairMismatchError{PoolID: pool.PoolID, TokenIn: params.TokenIn, TokenOut: params.TokenOut}
		}

		return []domain.Route{{
			Tokens:      []uint64{params.TokenIn, params.TokenOut},
			PoolOptions: [][]domain.PoolConfig{{pool}},
		}}, nil
	}

	return FindCandidateRoutes(r.poolsUsecase.GetGraph(), params.TokenIn, params.TokenOut, r.config.MaxHops, params.Dex), nil
}

// selectBestPlan evaluates every candidate route and returns the one with
// maximum output. Ties between direct and multi-hop go to direct.
func (r *routerUsecase) selectBestPlan(qc *quoteContext, routes []domain.Route, amountIn sdkmath.Int) (domain.SwapPlan, bool) {
	var (
		best  domain.SwapPlan
		found bool
	)

	for _, route := range routes {
		plan, ok := qc.quoteRoute(route, amountIn)
		if !ok {
			r.logger.Debug("route not quotable for this request", zap.Any("tokens", route.Tokens))
			continue
		}

		better := !found ||
			plan.ExpectedOut.GT(best.ExpectedOut) ||
			// A direct plan wins ties against a multi-hop one.
			(plan.ExpectedOut.Equal(best.ExpectedOut) && plan.IsDirect() && !best.IsDirect())
		if better {
			best = plan
			found = true
		}
	}

	return best, found
}

// applyPlatformFee skims a share of the aggregation gain: the improvement of
// a multi-pool plan over the best single-pool baseline. The skim is taken
// proportionally from the final hop's outputs; the last split absorbs the
// integer remainder.
func (r *routerUsecase) applyPlatformFee(qc *quoteContext, plan *domain.SwapPlan, params domain.SwapQuoteParams) {
	if plan.PoolCount() <= 1 {
		return
	}

	baseline := r.bestSinglePoolOutput(qc, params)
	gain := plan.ExpectedOut.Sub(baseline)
	if !gain.IsPositive() {
		return
	}

	fee := &domain.PlatformFee{
		Gain:       gain,
		FeeAmount:  sdkmath.ZeroInt(),
		FeeBps:     r.feeConfig.Bps,
		FeeAddress: r.feeConfig.Address,
	}
	plan.PlatformFee = fee

	if r.feeConfig.Bps == 0 || r.feeConfig.Address == "" {
		return
	}

	feeAmount := gain.MulRaw(int64(r.feeConfig.Bps)).QuoRaw(10_000)
	if !feeAmount.IsPositive() {
		return
	}

	fee.FeeAmount = feeAmount
	fee.Applied = true

	finalHop := &plan.Hops[len(plan.Hops)-1]
	hopTotal := finalHop.TotalExpectedOut()

	skimmed := sdkmath.ZeroInt()
	for i := range finalHop.Splits {
		split := &finalHop.Splits[i]

		share := feeAmount.Mul(split.ExpectedOut).Quo(hopTotal)
		if i == len(finalHop.Splits)-1 {
			share = feeAmount.Sub(skimmed)
		}
		skimmed = skimmed.Add(share)

		split.ExpectedOut = split.ExpectedOut.Sub(share)
		split.MinOut = sdkmath.MaxInt(split.MinOut.Sub(share), sdkmath.ZeroInt())
	}

	plan.ExpectedOut = finalHop.TotalExpectedOut()
	plan.MinOut = finalHop.TotalMinOut()

	domain.VQSPlatformFeeAppliedCounter.Inc()
}

// bestSinglePoolOutput is the fee baseline: the best output achievable by
// pushing the full amount through one direct pool. Zero when no direct pool
// exists.
func (r *routerUsecase) bestSinglePoolOutput(qc *quoteContext, params domain.SwapQuoteParams) sdkmath.Int {
	best := sdkmath.ZeroInt()

	directPools := r.poolsUsecase.GetGraph().PoolsForPair(params.TokenIn, params.TokenOut, params.Dex)
	for _, pool := range directPools {
		allocation, ok := qc.quotePool(pool, params.TokenIn, params.TokenOut, params.AmountIn)
		if !ok {
			continue
		}
		if allocation.ExpectedOut.GT(best) {
			best = allocation.ExpectedOut
		}
	}

	return best
}

func routeTypeLabel(plan domain.SwapPlan) string {
	if plan.IsDirect() {
		return "direct"
	}
	return "multi-hop"
}

// quoteError records a planner failure in the quotes counter. No plan exists
// at that point, so the route type is "none".
func quoteError(err error) error {
	domain.VQSQuotesCounter.WithLabelValues("none", "error").Inc()
	return err
}
