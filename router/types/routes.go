package types

import "github.com/voi-labs/vqs/domain"

// CandidateRoute is one unquoted route: the token path and, per hop, the IDs
// of every pool covering the edge.
type CandidateRoute struct {
	Tokens      []uint64   `json:"tokens"`
	PoolOptions [][]uint64 `json:"poolOptions"`
}

// NewCandidateRoutes converts planner routes into the response form.
func NewCandidateRoutes(routes []domain.Route) []CandidateRoute {
	response := make([]CandidateRoute, 0, len(routes))
	for _, route := range routes {
		options := make([][]uint64, 0, route.Hops())
		for _, pools := range route.PoolOptions {
			ids := make([]uint64, 0, len(pools))
			for _, pool := range pools {
				ids = append(ids, pool.PoolID)
			}
			options = append(options, ids)
		}
		response = append(response, CandidateRoute{
			Tokens:      route.Tokens,
			PoolOptions: options,
		})
	}
	return response
}
