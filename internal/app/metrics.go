package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"jamjam-delivery/internal/metrics"
)

type metricsOut struct {
	dig.Out

	SessionsStarted     prometheus.Counter `name:"sessions_started_total"`
	OrdersDelivered     prometheus.Counter `name:"orders_delivered_total"`
	BroadcastsCancelled prometheus.Counter `name:"broadcasts_cancelled_total"`
	PaymentsProcessed   prometheus.Counter `name:"payments_processed_total"`
	NotifyRetries       prometheus.Counter `name:"gateway_retries_total"`
	RateLimitExceeded   prometheus.Counter `name:"rate_limit_exceeded_total"`
}

// provideMetrics registers every counter, reusing an existing collector when
// the registry already holds one (tests rebuild the container).
func provideMetrics() (metricsOut, error) {
	out := metricsOut{}

	register := func(name string, c prometheus.Counter) (prometheus.Counter, error) {
		if err := prometheus.DefaultRegisterer.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
					return existing, nil
				}
			}
			return nil, fmt.Errorf("register %s: %w", name, err)
		}
		return c, nil
	}

	var err error
	if out.SessionsStarted, err = register("sessions_started_total", metrics.NewSessionsStartedTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.OrdersDelivered, err = register("orders_delivered_total", metrics.NewOrdersDeliveredTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.BroadcastsCancelled, err = register("broadcasts_cancelled_total", metrics.NewBroadcastsCancelledTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.PaymentsProcessed, err = register("payments_processed_total", metrics.NewPaymentsProcessedTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.NotifyRetries, err = register("gateway_retries_total", metrics.NewGatewayRetriesTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.RateLimitExceeded, err = register("rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal()); err != nil {
		return metricsOut{}, err
	}
	return out, nil
}
