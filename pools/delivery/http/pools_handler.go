package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/voi-labs/vqs/domain"
	"github.com/voi-labs/vqs/domain/mvc"
	"github.com/voi-labs/vqs/log"
)

// PoolsHandler represent the httphandler for pools
type PoolsHandler struct {
	PUsecase mvc.PoolsUsecase
	TUsecase mvc.TokensUsecase
	logger   log.Logger
}

// PoolStateResponse is the live reconciled state of one pool.
type PoolStateResponse struct {
	ReserveA string `json:"reserveA"`
	ReserveB string `json:"reserveB"`
	FeeBps   uint64 `json:"feeBps"`
	TokA     uint64 `json:"tokA"`
	TokB     uint64 `json:"tokB"`
}

// PoolResponse is the /pool/:poolId response body.
type PoolResponse struct {
	Config domain.PoolConfig `json:"config"`
	State  PoolStateResponse `json:"state"`
}

// NewPoolsHandler will initialize the pools/ resources endpoint
func NewPoolsHandler(e *echo.Echo, pu mvc.PoolsUsecase, tu mvc.TokensUsecase, logger log.Logger) {
	handler := &PoolsHandler{
		PUsecase: pu,
		TUsecase: tu,
		logger:   logger,
	}
	e.GET("/pool/:poolId", handler.GetPool)
	e.GET("/config/pools", handler.GetPoolsConfig)
	e.GET("/config/tokens", handler.GetTokensConfig)
}

// @Summary Pool State
// @Description returns the catalog entry for one pool together with its
// current reconciled on-chain state.
// @ID get-pool
// @Produce json
// @Param poolId path int true "Pool ID"
// @Success 200 {object} PoolResponse "The pool config and live state"
// @Router /pool/{poolId} [get]
func (a *PoolsHandler) GetPool(c echo.Context) error {
	ctx := c.Request().Context()

	poolID, err := strconv.ParseUint(c.Param("poolId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: "poolId must be an integer"})
	}

	pool, state, err := a.PUsecase.GetPoolWithState(ctx, poolID)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, PoolResponse{
		Config: pool,
		State: PoolStateResponse{
			ReserveA: state.ReserveA.String(),
			ReserveB: state.ReserveB.String(),
			FeeBps:   state.FeeBps,
			TokA:     state.TokA,
			TokB:     state.TokB,
		},
	})
}

// @Summary Pool Catalog
// @Description returns every pool catalog entry in load order.
// @ID get-pools-config
// @Produce json
// @Success 200 {array} domain.PoolConfig "The pool catalog"
// @Router /config/pools [get]
func (a *PoolsHandler) GetPoolsConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, a.PUsecase.GetAllPools())
}

// @Summary Token Catalog
// @Description returns every token catalog entry in load order.
// @ID get-tokens-config
// @Produce json
// @Success 200 {array} domain.Token "The token catalog"
// @Router /config/tokens [get]
func (a *PoolsHandler) GetTokensConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, a.TUsecase.GetAllTokens())
}
