// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vigortrack/vigor/internal/auth"
	"github.com/vigortrack/vigor/internal/config"
	"github.com/vigortrack/vigor/internal/middleware"
)

// NewRouter builds the chi router with all route groups:
//
//	/metrics                      Prometheus (no rate limit, no auth)
//	/api/v1/health*               health checks
//	/api/v1/auth/*                signup/login/logout (strict rate limit)
//	/api/v1/feedback              open feedback submission
//	/api/v1/profile               authenticated
//	/api/v1/logs/{kind}[/{id}]    authenticated
//	/api/v1/reports/*             authenticated
//	/api/v1/stats/*               authenticated
func NewRouter(h *Handler, jwtMgr *auth.JWTManager, sec config.SecurityConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   sec.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints with the standard rate limit.
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(sec.RateLimitReqs, sec.RateLimitWindow))

			r.Get("/health", h.HealthCheck)
			r.Get("/health/live", h.LivenessCheck)
			r.Get("/health/ready", h.ReadinessCheck)
			r.Post("/feedback", h.SubmitFeedback)
		})

		// Credential endpoints get a stricter budget.
		r.Route("/auth", func(r chi.Router) {
			r.Use(httprate.LimitByIP(sec.AuthRateLimitReqs, sec.RateLimitWindow))

			r.Post("/signup", h.SignUp)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
		})

		// Everything below requires a valid session token.
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(sec.RateLimitReqs, sec.RateLimitWindow))
			r.Use(jwtMgr.Authenticate)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", h.GetProfile)
				r.Patch("/", h.UpdateProfile)
			})

			r.Route("/logs/{kind}", func(r chi.Router) {
				r.Get("/", h.ListLogs)
				r.Post("/", h.AppendLog)
				r.Delete("/", h.ClearLogs)
				r.Delete("/{id}", h.DeleteLog)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/daily", h.DailyReport)
				r.Get("/weekly", h.WeeklyReport)
				r.Get("/monthly", h.MonthlyReport)
				r.Get("/progress", h.GoalProgress)
			})

			r.Route("/stats", func(r chi.Router) {
				r.Get("/exercise", h.ExerciseStats)
				r.Get("/sleep", h.SleepStats)
				r.Get("/water", h.WaterStats)
			})
		})
	})

	return r
}
