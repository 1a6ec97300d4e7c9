// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

// Package metrics exposes the Prometheus instrumentation for Engage:
// API request latency and throughput, interaction tracking volume, and
// recommendation pipeline behavior. All collectors register against the
// default registry and are served on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engage_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "engage_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engage_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Interaction tracking metrics.
	InteractionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engage_interactions_recorded_total",
			Help: "Total number of recorded interaction events",
		},
		[]string{"kind", "content_kind"},
	)

	InteractionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engage_interactions_rejected_total",
			Help: "Total number of rejected interaction requests",
		},
		[]string{"reason"}, // "invalid", "not_found", "error"
	)

	// Recommendation pipeline metrics.
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engage_recommendation_requests_total",
			Help: "Total number of recommendation requests by mode",
		},
		[]string{"mode"}, // "personalized", "cold_start", "similar"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "engage_recommendation_duration_seconds",
			Help:    "End-to-end recommendation pipeline duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	RecommendationItemsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "engage_recommendation_items_returned",
			Help:    "Number of items returned per recommendation response",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"mode"},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordInteraction records one accepted interaction event.
func RecordInteraction(kind, contentKind string) {
	InteractionsRecorded.WithLabelValues(kind, contentKind).Inc()
}

// RecordInteractionRejected records one rejected interaction request.
func RecordInteractionRejected(reason string) {
	InteractionsRejected.WithLabelValues(reason).Inc()
}

// RecordRecommendation records one served recommendation response.
func RecordRecommendation(mode string, items int, duration time.Duration) {
	RecommendationRequests.WithLabelValues(mode).Inc()
	RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	RecommendationItemsReturned.WithLabelValues(mode).Observe(float64(items))
}
