// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

// Package api implements the HTTP surface of the Vigor server: auth,
// profile, log collections, reports, statistics and feedback, all returning
// the standard APIResponse envelope.
package api

import (
	"net/http"

	"github.com/vigortrack/vigor/internal/auth"
	"github.com/vigortrack/vigor/internal/nutrition"
	"github.com/vigortrack/vigor/internal/store"
)

// Handler bundles the dependencies of all HTTP handlers.
type Handler struct {
	store     store.Gateway
	auth      *auth.Service
	nutrition nutrition.Resolver
}

// NewHandler creates the API handler set.
func NewHandler(gw store.Gateway, authSvc *auth.Service, resolver nutrition.Resolver) *Handler {
	return &Handler{
		store:     gw,
		auth:      authSvc,
		nutrition: resolver,
	}
}

// HealthCheck reports overall service health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "vigor",
	})
}

// LivenessCheck reports process liveness only.
func (h *Handler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ReadinessCheck reports whether the store answers.
func (h *Handler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	// A profile read exercises the full store path cheaply.
	if _, err := h.store.GetProfile(r.Context(), "readiness-probe"); err != nil {
		h.respondError(w, http.StatusServiceUnavailable, CodeStoreError, "store not ready", nil)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
