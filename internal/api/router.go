// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teapoio/engage/internal/auth"
	"github.com/teapoio/engage/internal/config"
	"github.com/teapoio/engage/internal/middleware"
)

// Router assembles the HTTP routes with their middleware stacks.
type Router struct {
	handlers   *Handlers
	jwtManager *auth.JWTManager
	security   config.SecurityConfig
}

// NewRouter creates a router over the given handlers.
func NewRouter(handlers *Handlers, jwtManager *auth.JWTManager, security config.SecurityConfig) *Router {
	return &Router{
		handlers:   handlers,
		jwtManager: jwtManager,
		security:   security,
	}
}

// Setup wires all routes. Interaction tracking and the personalized feed
// require a bearer token; stats, similar-content, health, and metrics are
// public.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.security.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/v1/health", rt.handlers.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(rt.security.RateLimitRequests, rt.security.RateLimitWindow))
		r.Use(middleware.PrometheusMetrics)

		// Public read endpoints.
		r.Get("/articles/{id}/stats", rt.handlers.GetArticleStats)
		r.Get("/activities/{id}/stats", rt.handlers.GetActivityStats)
		r.Get("/recommendations/articles/{id}", rt.handlers.GetSimilarArticles)
		r.Get("/recommendations/activities/{id}", rt.handlers.GetSimilarActivities)

		// Authenticated endpoints.
		r.Group(func(r chi.Router) {
			r.Use(rt.jwtManager.RequireUser)
			r.Post("/interactions", rt.handlers.TrackInteraction)
			r.Get("/recommendations", rt.handlers.GetRecommendations)
		})
	})

	return r
}
