// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/vigortrack/vigor/internal/auth"
	"github.com/vigortrack/vigor/internal/logging"
	"github.com/vigortrack/vigor/internal/metrics"
	"github.com/vigortrack/vigor/internal/models"
	"github.com/vigortrack/vigor/internal/nutrition"
	"github.com/vigortrack/vigor/internal/store"
)

// logKindFromRequest parses the {kind} path segment; on failure it writes
// the error response and returns false.
func (h *Handler) logKindFromRequest(w http.ResponseWriter, r *http.Request) (models.LogKind, bool) {
	kind, err := models.ParseLogKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.respondError(w, http.StatusNotFound, CodeNotFound, "unknown log kind", map[string]interface{}{
			"kind": chi.URLParam(r, "kind"),
		})
		return "", false
	}
	return kind, true
}

// ListLogs returns every entry of one kind for the caller, unordered.
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.logKindFromRequest(w, r)
	if !ok {
		return
	}
	uid := auth.UserIDFromContext(r.Context())

	records, err := h.store.ListLogs(r.Context(), uid, kind)
	if err != nil {
		logging.Ctx(r.Context()).Err(err).Str("kind", string(kind)).Msg("Log list failed")
		h.respondError(w, http.StatusInternalServerError, CodeStoreError, "failed to list logs", nil)
		return
	}

	entries := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		entries = append(entries, json.RawMessage(rec.Doc))
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"kind":    kind,
		"count":   len(entries),
		"entries": entries,
	})
}

// AppendLog validates and appends one entry of the kind in the path.
// Entries are immutable once written. The server stamps ID and date.
func (h *Handler) AppendLog(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.logKindFromRequest(w, r)
	if !ok {
		return
	}

	var entry interface{}
	switch kind {
	case models.LogKindFood:
		entry = h.buildFoodEntry(w, r)
	case models.LogKindExercise:
		entry = h.buildExerciseEntry(w, r)
	case models.LogKindWater:
		entry = h.buildWaterEntry(w, r)
	case models.LogKindSleep:
		entry = h.buildSleepEntry(w, r)
	}
	if entry == nil {
		return // response already written
	}

	doc, err := json.Marshal(entry)
	if err != nil {
		logging.Ctx(r.Context()).Err(err).Msg("Entry marshal failed")
		h.respondError(w, http.StatusInternalServerError, CodeStoreError, "failed to encode entry", nil)
		return
	}

	uid := auth.UserIDFromContext(r.Context())
	id := entryID(entry)
	if err := h.store.AppendLog(r.Context(), uid, kind, id, doc); err != nil {
		logging.Ctx(r.Context()).Err(err).Str("kind", string(kind)).Msg("Log append failed")
		h.respondError(w, http.StatusInternalServerError, CodeStoreError, "failed to store entry", nil)
		return
	}

	metrics.LogEntriesWritten.WithLabelValues(string(kind)).Inc()
	h.respondJSON(w, http.StatusCreated, entry)
}

func entryID(entry interface{}) string {
	switch e := entry.(type) {
	case *models.FoodEntry:
		return e.ID
	case *models.ExerciseEntry:
		return e.ID
	case *models.WaterEntry:
		return e.ID
	case *models.SleepEntry:
		return e.ID
	}
	return ""
}

// buildFoodEntry decodes a food request and resolves calories when asked.
// On nutrition failure nothing is written and the client gets the upstream
// error; a nil return means the response was already sent.
func (h *Handler) buildFoodEntry(w http.ResponseWriter, r *http.Request) interface{} {
	var req models.FoodLogRequest
	if !h.decodeAndValidate(w, r, &req) {
		return nil
	}

	var calories float64
	switch {
	case req.Resolve && req.Calories == nil:
		resolved, err := h.nutrition.ResolveCalories(r.Context(), req.Food)
		if err != nil {
			switch {
			case errors.Is(err, nutrition.ErrNoMatch):
				h.respondError(w, http.StatusNotFound, CodeNoMatch, "no food matched the query", nil)
			case errors.Is(err, nutrition.ErrUpstreamUnavailable):
				h.respondError(w, http.StatusBadGateway, CodeUpstreamUnavailable, "calorie lookup unavailable", nil)
			default:
				logging.Ctx(r.Context()).Err(err).Msg("Calorie lookup failed")
				h.respondError(w, http.StatusBadGateway, CodeUpstreamUnavailable, "calorie lookup failed", nil)
			}
			return nil
		}
		calories = resolved
	case req.Calories != nil:
		calories = *req.Calories
	default:
		h.respondError(w, http.StatusBadRequest, CodeValidationError,
			"calories is required unless resolve is true", map[string]interface{}{"field": "calories"})
		return nil
	}

	return &models.FoodEntry{
		ID:       uuid.New().String(),
		Food:     req.Food,
		Calories: calories,
		Date:     models.FormatDateTime(time.Now()),
	}
}

func (h *Handler) buildExerciseEntry(w http.ResponseWriter, r *http.Request) interface{} {
	var req models.ExerciseLogRequest
	if !h.decodeAndValidate(w, r, &req) {
		return nil
	}
	return &models.ExerciseEntry{
		ID:              uuid.New().String(),
		Type:            req.Type,
		DurationMinutes: req.DurationMinutes,
		Intensity:       req.Intensity,
		Date:            models.FormatDateTime(time.Now()),
	}
}

func (h *Handler) buildWaterEntry(w http.ResponseWriter, r *http.Request) interface{} {
	var req models.WaterLogRequest
	if !h.decodeAndValidate(w, r, &req) {
		return nil
	}
	return &models.WaterEntry{
		ID:       uuid.New().String(),
		AmountML: req.AmountML,
		Date:     models.FormatDateTime(time.Now()),
	}
}

func (h *Handler) buildSleepEntry(w http.ResponseWriter, r *http.Request) interface{} {
	var req models.SleepLogRequest
	if !h.decodeAndValidate(w, r, &req) {
		return nil
	}
	return &models.SleepEntry{
		ID:            uuid.New().String(),
		DurationHours: req.DurationHours,
		Quality:       req.Quality,
		Date:          models.FormatDateTime(time.Now()),
	}
}

// DeleteLog removes one entry by ID.
func (h *Handler) DeleteLog(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.logKindFromRequest(w, r)
	if !ok {
		return
	}
	uid := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteLog(r.Context(), uid, kind, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, CodeNotFound, "log entry not found", nil)
			return
		}
		logging.Ctx(r.Context()).Err(err).Str("kind", string(kind)).Msg("Log delete failed")
		h.respondError(w, http.StatusInternalServerError, CodeStoreError, "failed to delete entry", nil)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// ClearLogs removes every entry of one kind for the caller, atomically.
func (h *Handler) ClearLogs(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.logKindFromRequest(w, r)
	if !ok {
		return
	}
	uid := auth.UserIDFromContext(r.Context())

	count, err := h.store.ClearLogs(r.Context(), uid, kind)
	if err != nil {
		logging.Ctx(r.Context()).Err(err).Str("kind", string(kind)).Msg("Log clear failed")
		h.respondError(w, http.StatusInternalServerError, CodeStoreError, "failed to clear logs", nil)
		return
	}

	logging.Ctx(r.Context()).Info().Str("kind", string(kind)).Int("count", count).Msg("Logs cleared")
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"kind":    kind,
		"cleared": count,
	})
}
