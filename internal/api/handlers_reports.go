// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/vigortrack/vigor/internal/auth"
	"github.com/vigortrack/vigor/internal/logging"
	"github.com/vigortrack/vigor/internal/models"
	"github.com/vigortrack/vigor/internal/report"
)

// foodEntries loads and decodes the caller's food log. Undecodable
// documents are counted as skipped rather than failing the report.
func (h *Handler) foodEntries(w http.ResponseWriter, r *http.Request) ([]models.FoodEntry, int, bool) {
	uid := auth.UserIDFromContext(r.Context())

	records, err := h.store.ListLogs(r.Context(), uid, models.LogKindFood)
	if err != nil {
		logging.Ctx(r.Context()).Err(err).Msg("Food log list failed")
		h.respondError(w, http.StatusInternalServerError, CodeStoreError, "failed to load food logs", nil)
		return nil, 0, false
	}

	entries := make([]models.FoodEntry, 0, len(records))
	undecodable := 0
	for _, rec := range records {
		var entry models.FoodEntry
		if err := json.Unmarshal(rec.Doc, &entry); err != nil {
			logging.Ctx(r.Context()).Warn().Str("id", rec.ID).Msg("Skipping undecodable food record")
			undecodable++
			continue
		}
		entries = append(entries, entry)
	}
	return entries, undecodable, true
}

// reportResponse writes a calorie summary with the skipped-record count in
// the response metadata.
func (h *Handler) reportResponse(w http.ResponseWriter, r *http.Request, period string, totals map[string]float64, skipped []report.RecordError, undecodable int) {
	for _, re := range skipped {
		logging.Ctx(r.Context()).Warn().
			Str("record_id", re.ID).
			Str("date", re.Date).
			Msg("Skipping record with malformed date")
	}

	h.respondJSONMeta(w, http.StatusOK, map[string]interface{}{
		"period": period,
		"totals": totals,
	}, models.Metadata{
		Timestamp: time.Now().UTC(),
		Skipped:   len(skipped) + undecodable,
	})
}

// DailyReport returns calories per day.
func (h *Handler) DailyReport(w http.ResponseWriter, r *http.Request) {
	entries, undecodable, ok := h.foodEntries(w, r)
	if !ok {
		return
	}
	totals, skipped := report.Daily(entries)
	h.reportResponse(w, r, "daily", totals, skipped, undecodable)
}

// WeeklyReport returns calories per ISO week.
func (h *Handler) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	entries, undecodable, ok := h.foodEntries(w, r)
	if !ok {
		return
	}
	totals, skipped := report.Weekly(entries)
	h.reportResponse(w, r, "weekly", totals, skipped, undecodable)
}

// MonthlyReport returns calories per month.
func (h *Handler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	entries, undecodable, ok := h.foodEntries(w, r)
	if !ok {
		return
	}
	totals, skipped := report.Monthly(entries)
	h.reportResponse(w, r, "monthly", totals, skipped, undecodable)
}

// GoalProgress returns today's calories as a percentage of the daily goal,
// capped at 100.
func (h *Handler) GoalProgress(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserIDFromContext(r.Context())

	profile, err := h.store.GetProfile(r.Context(), uid)
	if err != nil {
		logging.Ctx(r.Context()).Err(err).Msg("Profile read failed")
		h.respondError(w, http.StatusInternalServerError, CodeStoreError, "failed to load profile", nil)
		return
	}

	entries, undecodable, ok := h.foodEntries(w, r)
	if !ok {
		return
	}
	totals, skipped := report.Daily(entries)

	today := time.Now().Format("2006-01-02")
	consumed := totals[today]

	var goal float64
	if profile.DailyCalorieGoal != nil {
		goal = *profile.DailyCalorieGoal
	}

	h.respondJSONMeta(w, http.StatusOK, map[string]interface{}{
		"date":     today,
		"consumed": consumed,
		"goal":     goal,
		"percent":  report.Progress(consumed, goal),
	}, models.Metadata{
		Timestamp: time.Now().UTC(),
		Skipped:   len(skipped) + undecodable,
	})
}

// ExerciseStats returns descriptive statistics over the exercise log.
func (h *Handler) ExerciseStats(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserIDFromContext(r.Context())

	records, err := h.store.ListLogs(r.Context(), uid, models.LogKindExercise)
	if err != nil {
		logging.Ctx(r.Context()).Err(err).Msg("Exercise log list failed")
		h.respondError(w, http.StatusInternalServerError, CodeStoreError, "failed to load exercise logs", nil)
		return
	}

	entries := make([]models.ExerciseEntry, 0, len(records))
	for _, rec := range records {
		var entry models.ExerciseEntry
		if err := json.Unmarshal(rec.Doc, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	h.respondJSON(w, http.StatusOK, report.ExerciseStats(entries))
}

// SleepStats returns descriptive statistics over the sleep log.
func (h *Handler) SleepStats(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserIDFromContext(r.Context())

	records, err := h.store.ListLogs(r.Context(), uid, models.LogKindSleep)
	if err != nil {
		logging.Ctx(r.Context()).Err(err).Msg("Sleep log list failed")
		h.respondError(w, http.StatusInternalServerError, CodeStoreError, "failed to load sleep logs", nil)
		return
	}

	entries := make([]models.SleepEntry, 0, len(records))
	for _, rec := range records {
		var entry models.SleepEntry
		if err := json.Unmarshal(rec.Doc, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	h.respondJSON(w, http.StatusOK, report.SleepStats(entries))
}

// WaterStats returns descriptive statistics over the water intake log.
func (h *Handler) WaterStats(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserIDFromContext(r.Context())

	records, err := h.store.ListLogs(r.Context(), uid, models.LogKindWater)
	if err != nil {
		logging.Ctx(r.Context()).Err(err).Msg("Water log list failed")
		h.respondError(w, http.StatusInternalServerError, CodeStoreError, "failed to load water logs", nil)
		return
	}

	entries := make([]models.WaterEntry, 0, len(records))
	for _, rec := range records {
		var entry models.WaterEntry
		if err := json.Unmarshal(rec.Doc, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	h.respondJSON(w, http.StatusOK, report.WaterStats(entries))
}
