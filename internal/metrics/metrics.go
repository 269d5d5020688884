package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewSessionsStartedTotal returns a Prometheus counter for the number of created order sessions
func NewSessionsStartedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sessions_started_total",
		Help: "Total number of created order sessions",
	})
}

// NewOrdersDeliveredTotal returns a Prometheus counter for the number of orders that reached the delivered state
func NewOrdersDeliveredTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_delivered_total",
		Help: "Total number of orders that reached the delivered state",
	})
}

// NewBroadcastsCancelledTotal returns a Prometheus counter for the number of rider broadcasts cancelled mid-search
func NewBroadcastsCancelledTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "broadcasts_cancelled_total",
		Help: "Total number of rider broadcasts cancelled mid-search",
	})
}

// NewPaymentsProcessedTotal returns a Prometheus counter for the number of successfully processed payments
func NewPaymentsProcessedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payments_processed_total",
		Help: "Total number of successfully processed payments",
	})
}

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by gateways
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}
