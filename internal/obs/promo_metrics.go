package obs

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	promoOnce sync.Once

	// CampaignRunsTotal counts campaign executions by outcome.
	CampaignRunsTotal *prometheus.CounterVec
	// CampaignDuration records campaign execution latency in milliseconds.
	CampaignDuration *prometheus.HistogramVec
	// LineItemsDiscountedTotal counts line items whose price a campaign changed.
	LineItemsDiscountedTotal *prometheus.CounterVec
	// DiscountCodeRejectionsTotal counts discount codes rejected by a campaign.
	DiscountCodeRejectionsTotal *prometheus.CounterVec
	// CartEvaluationsTotal counts cart evaluations by outcome.
	CartEvaluationsTotal *prometheus.CounterVec
	// QuoteCacheTotal counts quote cache lookups by outcome.
	QuoteCacheTotal *prometheus.CounterVec
	// BreakerState reports breaker state per target: 0=closed, 1=open, 2=half-open.
	BreakerState *prometheus.GaugeVec
	// BreakerTransitionsTotal counts breaker state transitions.
	BreakerTransitionsTotal *prometheus.CounterVec
)

// MustRegisterPromoMetrics initialises and registers the campaign engine
// collectors. Only the first call has an effect.
func MustRegisterPromoMetrics(namespace string, reg prometheus.Registerer) {
	promoOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		counter := func(name, help string, labels ...string) *prometheus.CounterVec {
			return register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      name,
				Help:      help,
			}, labels))
		}
		CampaignRunsTotal = counter("promo_campaign_runs_total", "Count of campaign runs by outcome.", "campaign", "result")
		LineItemsDiscountedTotal = counter("promo_line_items_discounted_total", "Count of line items discounted per campaign.", "campaign")
		DiscountCodeRejectionsTotal = counter("promo_discount_code_rejections_total", "Count of discount codes rejected per campaign.", "campaign")
		CartEvaluationsTotal = counter("promo_cart_evaluations_total", "Count of cart evaluations by outcome.", "result")
		QuoteCacheTotal = counter("promo_quote_cache_total", "Count of quote cache lookups by outcome.", "result")
		BreakerTransitionsTotal = counter("breaker_transition_total", "Count of breaker state transitions.", "target", "from", "to")
		CampaignDuration = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "promo_campaign_duration_ms",
			Help:      "Campaign run latency in milliseconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"campaign"}))
		BreakerState = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "breaker_state",
			Help:      "Current breaker state: 0=closed,1=open,2=half-open.",
		}, []string{"target"}))
	})
}

// ObserveCampaign records one campaign run. It is a no-op until the metrics are registered.
func ObserveCampaign(campaign string, err error, elapsed time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	if CampaignRunsTotal != nil {
		CampaignRunsTotal.WithLabelValues(campaign, result).Inc()
	}
	if CampaignDuration != nil {
		CampaignDuration.WithLabelValues(campaign).Observe(DurationMillis(elapsed))
	}
}

// AddDiscountedItems records n discounted line items for campaign.
func AddDiscountedItems(campaign string, n int) {
	if LineItemsDiscountedTotal != nil && n > 0 {
		LineItemsDiscountedTotal.WithLabelValues(campaign).Add(float64(n))
	}
}

// IncDiscountCodeRejection records a rejected discount code for campaign.
func IncDiscountCodeRejection(campaign string) {
	if DiscountCodeRejectionsTotal != nil {
		DiscountCodeRejectionsTotal.WithLabelValues(campaign).Inc()
	}
}

// IncCartEvaluation records a cart evaluation outcome.
func IncCartEvaluation(result string) {
	if CartEvaluationsTotal != nil {
		CartEvaluationsTotal.WithLabelValues(result).Inc()
	}
}

// IncQuoteCache records a quote cache lookup outcome.
func IncQuoteCache(result string) {
	if QuoteCacheTotal != nil {
		QuoteCacheTotal.WithLabelValues(result).Inc()
	}
}

// SetBreakerState records the current state gauge of a breaker target.
func SetBreakerState(target string, value float64) {
	if BreakerState != nil {
		BreakerState.WithLabelValues(target).Set(value)
	}
}

// IncBreakerTransition records a breaker moving between states.
func IncBreakerTransition(target, from, to string) {
	if BreakerTransitionsTotal != nil {
		BreakerTransitionsTotal.WithLabelValues(target, from, to).Inc()
	}
}
