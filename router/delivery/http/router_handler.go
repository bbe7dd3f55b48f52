package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/domain/mvc"
	"github.com/voi-labs/vqs/log"
	"github.com/voi-labs/vqs/router/types"
)

// RouterHandler represent the httphandler for the router
type RouterHandler struct {
	RUsecase mvc.RouterUsecase
	TUsecase mvc.TokensUsecase

	defaultSlippageBps uint64
	logger             log.Logger
}

// NewRouterHandler will initialize the quote and route endpoints
func NewRouterHandler(e *echo.Echo, us mvc.RouterUsecase, tu mvc.TokensUsecase, defaultSlippageBps uint64, logger log.Logger) {
	handler := &RouterHandler{
		RUsecase:           us,
		TUsecase:           tu,
		defaultSlippageBps: defaultSlippageBps,
		logger:             logger,
	}
	e.POST("/quote", handler.GetSwapQuote)
	e.GET("/routes", handler.GetCandidateRoutes)
}

// @Summary Swap Quote
// @Description plans the optimal swap between inputToken and outputToken,
// splitting across pools and hops where that improves the output, and returns
// the unsigned transaction group unless the address is omitted.
// @ID post-quote
// @Accept json
// @Produce json
// @Param request body types.SwapQuoteRequest true "Swap quote request"
// @Success 200 {object} types.SwapQuoteResponse "The planned quote with its unsigned transaction group"
// @Router /quote [post]
func (a *RouterHandler) GetSwapQuote(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.SwapQuoteRequest
	if err := req.UnmarshalHTTPRequest(c); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	quote, err := a.RUsecase.GetSwapQuote(ctx, req.ToParams(a.defaultSlippageBps))
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	inDecimals, err := a.TUsecase.GetDecimals(ctx, *req.InputToken)
	if err != nil {
		inDecimals = domain.DefaultDecimals
	}
	outDecimals, err := a.TUsecase.GetDecimals(ctx, *req.OutputToken)
	if err != nil {
		outDecimals = domain.DefaultDecimals
	}

	return c.JSON(http.StatusOK, types.NewSwapQuoteResponse(quote, inDecimals, outDecimals))
}

// @Summary Candidate Routes
// @Description returns all routes connecting the two tokens without quoting
// them, sorted ascending by hop count.
// @ID get-routes
// @Produce json
// @Param from query int true "Underlying input token ID"
// @Param to query int true "Underlying output token ID"
// @Param dex query string false "Restrict the graph to one protocol"
// @Success 200 {array} types.CandidateRoute "The candidate routes"
// @Router /routes [get]
func (a *RouterHandler) GetCandidateRoutes(c echo.Context) error {
	ctx := c.Request().Context()

	tokenIn, tokenOut, err := getValidTokenPair(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	dexFilter := domain.DexID(c.QueryParam("dex"))
	if dexFilter != "" {
		if err := dexFilter.Validate(); err != nil {
			return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: types.ErrDexNotValid.Error()})
		}
	}

	routes, err := a.RUsecase.GetCandidateRoutes(ctx, tokenIn, tokenOut, dexFilter)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, types.NewCandidateRoutes(routes))
}

// getValidTokenPair returns the from/to token IDs from the query string.
func getValidTokenPair(c echo.Context) (tokenIn, tokenOut uint64, err error) {
	fromStr := c.QueryParam("from")
	if len(fromStr) == 0 {
		return 0, 0, types.ErrInputTokenNotSpecified
	}
	toStr := c.QueryParam("to")
	if len(toStr) == 0 {
		return 0, 0, types.ErrOutputTokenNotSpecified
	}

	tokenIn, err = strconv.ParseUint(fromStr, 10, 64)
	if err != nil {
		return 0, 0, types.ErrTokenIDNotValid
	}
	tokenOut, err = strconv.ParseUint(toStr, 10, 64)
	if err != nil {
		return 0, 0, types.ErrTokenIDNotValid
	}

	return tokenIn, tokenOut, nil
}
