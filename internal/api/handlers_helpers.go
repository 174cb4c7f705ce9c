// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/vigortrack/vigor/internal/logging"
	"github.com/vigortrack/vigor/internal/models"
	"github.com/vigortrack/vigor/internal/validation"
)

// respondJSON writes a success envelope.
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	h.respondJSONMeta(w, status, data, models.Metadata{Timestamp: time.Now().UTC()})
}

// respondJSONMeta writes a success envelope with caller-supplied metadata.
func (h *Handler) respondJSONMeta(w http.ResponseWriter, status int, data interface{}, meta models.Metadata) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now().UTC()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: meta,
	}); err != nil {
		logging.Err(err).Msg("Failed to encode response")
	}
}

// respondError writes an error envelope.
func (h *Handler) respondError(w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	}); err != nil {
		logging.Err(err).Msg("Failed to encode error response")
	}
}

// decodeAndValidate parses the JSON body into dst and runs struct
// validation. On failure it writes the error response and returns false.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, CodeValidationError, "invalid JSON body", nil)
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		h.respondError(w, http.StatusBadRequest, CodeValidationError, verr.Error(), verr.Details())
		return false
	}
	return true
}
