package domain

import "github.com/prometheus/client_golang/prometheus"

var (
	// vqs_quotes_total
	//
	// counter that measures the number of served quotes
	//
	// Has the following labels:
	// * route_type - "direct", "multi-hop", or "none" when planning fails
	//   before a plan exists
	// * outcome - "ok", "build_failed" or "error"
	VQSQuotesMetricName = "vqs_quotes_total"

	// vqs_pool_state_fetch_error_total
	//
	// counter that measures the number of per-pool state read failures during
	// planning fan-out
	//
	// Has the following labels:
	// * dex - the DEX tag of the failing pool
	VQSPoolStateFetchErrorMetricName = "vqs_pool_state_fetch_error_total"

	// vqs_platform_fee_applied_total
	//
	// counter that measures the number of quotes with a platform-fee skim
	VQSPlatformFeeAppliedMetricName = "vqs_platform_fee_applied_total"

	// vqs_group_build_error_total
	//
	// counter that measures the number of quotes whose transaction group
	// could not be assembled
	VQSGroupBuildErrorMetricName = "vqs_group_build_error_total"

	VQSQuotesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: VQSQuotesMetricName,
			Help: "Total number of served quotes by route type and outcome",
		},
		[]string{"route_type", "outcome"},
	)

	VQSPoolStateFetchErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: VQSPoolStateFetchErrorMetricName,
			Help: "Total number of per-pool state read failures during planning",
		},
		[]string{"dex"},
	)

	VQSPlatformFeeAppliedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: VQSPlatformFeeAppliedMetricName,
			Help: "Total number of quotes with a platform-fee skim applied",
		},
	)

	VQSGroupBuildErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: VQSGroupBuildErrorMetricName,
			Help: "Total number of quotes whose transaction group failed to assemble",
		},
	)
)

func init() {
	prometheus.MustRegister(VQSQuotesCounter)
	prometheus.MustRegister(VQSPoolStateFetchErrorCounter)
	prometheus.MustRegister(VQSPlatformFeeAppliedCounter)
	prometheus.MustRegister(VQSGroupBuildErrorCounter)
}
