package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobradar_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	ScoresComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobradar_scores_computed_total",
			Help: "Total number of scores computed by kind",
		},
		[]string{"kind"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobradar_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobradar_pipeline_runs_total",
			Help: "Total number of ingestion pipeline runs by status",
		},
		[]string{"status"},
	)

	JobsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobradar_jobs_ingested_total",
			Help: "Total number of job records fetched by source",
		},
		[]string{"source"},
	)

	SourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobradar_source_failures_total",
			Help: "Total number of failed source fetches",
		},
		[]string{"source"},
	)

	RetrainRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobradar_retrain_runs_total",
			Help: "Total number of salary model retrain runs by status",
		},
		[]string{"status"},
	)

	SalaryModelTrained = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "jobradar_salary_model_trained",
			Help: "1 when the salary estimator serves a trained model, 0 in baseline mode",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobradar_cache_lookups_total",
			Help: "Search cache lookups by result",
		},
		[]string{"result"},
	)
)
