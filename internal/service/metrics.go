package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recipe provider metrics
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_upstream_requests_total",
			Help: "Total number of recipe provider requests",
		},
		[]string{"operation", "outcome"},
	)

	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipes_upstream_request_duration_seconds",
			Help:    "Recipe provider latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Language model metrics
	llmCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_llm_calls_total",
			Help: "Total number of language model calls",
		},
		[]string{"purpose", "outcome"},
	)

	llmCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipes_llm_call_duration_seconds",
			Help:    "Language model latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"purpose"},
	)
)
