// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vigortrack/vigor/internal/logging"
	"github.com/vigortrack/vigor/internal/models"
)

// SubmitFeedback stores a feedback submission. No authentication required:
// feedback is open to anyone, including logged-out users.
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req models.FeedbackRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	fb := &models.Feedback{
		ID:       uuid.New().String(),
		Feedback: req.Feedback,
		Email:    req.Email,
		Date:     models.FormatDateTime(time.Now()),
	}
	if err := h.store.AppendFeedback(r.Context(), fb); err != nil {
		logging.Ctx(r.Context()).Err(err).Msg("Feedback append failed")
		h.respondError(w, http.StatusInternalServerError, CodeStoreError, "failed to store feedback", nil)
		return
	}

	logging.Ctx(r.Context()).Info().Str("feedback_id", fb.ID).Msg("Feedback received")
	h.respondJSON(w, http.StatusCreated, map[string]string{"id": fb.ID})
}
