package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuotesComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotes_computed_total",
			Help: "Total number of quotes computed, by pricing source",
		},
		[]string{"source"}, // remote | fallback_table | fallback_default
	)

	QuotesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotes_failed_total",
			Help: "Total number of quote requests that could not be computed",
		},
		[]string{"error_code"},
	)

	CheckoutsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkouts_processed_total",
			Help: "Total number of checkout attempts, by outcome",
		},
		[]string{"outcome"}, // succeeded | degraded | declined
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"route", "method", "status"},
	)

	RateTableRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pricing_rate_table_rows",
			Help: "Number of rows in the currently uploaded rate table",
		},
	)
)
