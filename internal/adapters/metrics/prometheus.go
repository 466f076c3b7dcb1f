package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipegen_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipegen_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	GenerationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pipegen_generations_total",
		Help: "Total pipeline generations",
	})

	OptimizationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipegen_optimizations_total",
		Help: "Total optimization attempts by outcome",
	}, []string{"outcome"})

	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pipegen_sessions_active",
		Help: "Number of active pipeline sessions",
	})

	ModelRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipegen_model_request_duration_seconds",
		Help:    "Model service request duration",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"model"})
)
