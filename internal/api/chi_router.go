// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/cinemapulse/internal/auth"
	"github.com/tomtom215/cinemapulse/internal/authz"
	"github.com/tomtom215/cinemapulse/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	sessions      *auth.Middleware
	authz         *authz.Middleware
	loginLimiter  *auth.LoginLimiter
	chiMiddleware *ChiMiddleware
	logger        zerolog.Logger
}

// NewRouter creates a router.
func NewRouter(handler *Handler, sessions *auth.Middleware, az *authz.Middleware, loginLimiter *auth.LoginLimiter, mw *ChiMiddleware, logger zerolog.Logger) *Router {
	return &Router{
		handler:       handler,
		sessions:      sessions,
		authz:         az,
		loginLimiter:  loginLimiter,
		chiMiddleware: mw,
		logger:        logger,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(router.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Get("/ws/reviews", h.ReviewFeed)

	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(chimiddleware.Compress(5, "application/json"))
		r.Use(router.sessions.Authenticate)

		// Catalog
		r.Get("/movies", h.ListMovies)
		r.Get("/movies/{id}", h.GetMovie)
		r.Get("/movies/{id}/reviews", h.MovieReviews)
		r.Get("/search", h.SearchMovies)
		r.Get("/genres", h.Genres)

		// Accounts
		r.Route("/auth", func(r chi.Router) {
			r.With(router.loginLimiter.Middleware).Post("/register", h.Register)
			r.With(router.loginLimiter.Middleware).Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.With(router.sessions.RequireAuth, router.authz.AuthorizeRequest).Get("/me", h.Me)
		})

		// Signed-in endpoints, authorized by path and method
		r.Group(func(r chi.Router) {
			r.Use(router.sessions.RequireAuth)
			r.Use(router.authz.AuthorizeRequest)

			r.Post("/reviews", h.SubmitReview)
			r.Get("/recommendations", h.Recommendations)
			r.Get("/analytics", h.Analytics)
			r.Get("/user/reviews", h.UserReviews)
			r.Put("/admin/movies/{id}/active", h.SetMovieActive)
		})
	})

	return r
}
