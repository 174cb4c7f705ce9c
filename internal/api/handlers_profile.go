// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

package api

import (
	"net/http"

	"github.com/vigortrack/vigor/internal/auth"
	"github.com/vigortrack/vigor/internal/logging"
	"github.com/vigortrack/vigor/internal/models"
)

// GetProfile returns the caller's profile document. A user who never saved
// a profile gets an empty document, not a 404.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserIDFromContext(r.Context())

	profile, err := h.store.GetProfile(r.Context(), uid)
	if err != nil {
		logging.Ctx(r.Context()).Err(err).Msg("Profile read failed")
		h.respondError(w, http.StatusInternalServerError, CodeStoreError, "failed to load profile", nil)
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// UpdateProfile merges the submitted fields into the stored profile.
// Fields absent from the request are left untouched.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserIDFromContext(r.Context())

	var req models.ProfileUpdateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	patch := &models.Profile{
		Name:             req.Name,
		Age:              req.Age,
		Weight:           req.Weight,
		DailyCalorieGoal: req.DailyCalorieGoal,
	}

	merged, err := h.store.UpsertProfile(r.Context(), uid, patch)
	if err != nil {
		logging.Ctx(r.Context()).Err(err).Msg("Profile upsert failed")
		h.respondError(w, http.StatusInternalServerError, CodeStoreError, "failed to save profile", nil)
		return
	}

	logging.Ctx(r.Context()).Info().Msg("Profile updated")
	h.respondJSON(w, http.StatusOK, merged)
}
