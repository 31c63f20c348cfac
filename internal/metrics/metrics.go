package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "msituguard_predictions_total",
			Help: "Total survival predictions served",
		},
		[]string{"county", "species", "risk"},
	)

	PredictionLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "msituguard_prediction_latency_seconds",
			Help:    "Prediction request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"county"},
	)

	WeatherFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "msituguard_weather_fetches_total",
			Help: "Total weather provider fetches by outcome",
		},
		[]string{"outcome"},
	)

	WeatherCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "msituguard_weather_cache_hits_total",
			Help: "Total weather lookups served from cache",
		},
	)

	LLMCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "msituguard_llm_calls_total",
			Help: "Total chat adviser calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	AwardsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "msituguard_awards_total",
			Help: "Total verification awards granted",
		},
		[]string{"kind"},
	)

	CarbonTransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "msituguard_carbon_transactions_total",
			Help: "Total marketplace carbon transactions",
		},
		[]string{"kind"},
	)
)
