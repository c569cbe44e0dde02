package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AccessDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ringback_access_decisions_total",
			Help: "Zone access decisions by outcome and denial reason",
		},
		[]string{"zone", "outcome", "reason"},
	)

	SetupClassifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ringback_setup_classifications_total",
			Help: "Onboarding setups classified as automatic or manual",
		},
		[]string{"verdict", "reason"},
	)

	OptIns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ringback_sms_opt_ins_total",
			Help: "Public SMS opt-in submissions by result",
		},
		[]string{"result"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ringback_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
