// Package metrics holds the Prometheus collectors for labelboard.
//
//	labelboard_renders_total{outcome}            Counter  render attempts by outcome
//	labelboard_fetch_duration_seconds{variant}   Hist     time spent fetching the record list
//	labelboard_http_requests_total{method,route,code}
//	                                             Counter  requests served by the page host
//	labelboard_ws_connections                    Gauge    open click-channel websockets
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Render outcomes.
const (
	OutcomeApplied    = "applied"
	OutcomeEmpty      = "empty"
	OutcomeFailed     = "failed"
	OutcomeSuperseded = "superseded"
)

var (
	RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labelboard_renders_total",
		Help: "Render attempts by outcome.",
	}, []string{"outcome"})

	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "labelboard_fetch_duration_seconds",
		Help:    "Duration of record label list requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"variant"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labelboard_http_requests_total",
		Help: "Requests served by the page host.",
	}, []string{"method", "route", "code"})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "labelboard_ws_connections",
		Help: "Open click-channel websocket connections.",
	})
)
