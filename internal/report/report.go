// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

// Package report aggregates log entries into calorie summaries and
// descriptive statistics. All functions are pure: they take entry slices
// and return results without touching the store.
//
// Record timestamps are strings in "YYYY-MM-DD HH:MM:SS" form. Aggregation
// uses only the date half. A record whose date cannot be parsed is skipped
// and reported in the returned RecordError slice; one bad record never
// aborts a summary.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/vigortrack/vigor/internal/models"
)

const dateLayout = "2006-01-02"

// RecordError describes a record skipped during aggregation.
type RecordError struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Err  string `json:"error"`
}

// parseDate extracts and parses the date half of a record timestamp.
func parseDate(raw string) (time.Time, error) {
	datePart := raw
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		datePart = raw[:i]
	}
	t, err := time.Parse(dateLayout, datePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed record date %q: %w", raw, err)
	}
	return t, nil
}

// Daily sums calories per calendar day, keyed "YYYY-MM-DD".
func Daily(entries []models.FoodEntry) (map[string]float64, []RecordError) {
	totals := make(map[string]float64)
	var skipped []RecordError

	for _, e := range entries {
		day, err := parseDate(e.Date)
		if err != nil {
			skipped = append(skipped, RecordError{ID: e.ID, Date: e.Date, Err: err.Error()})
			continue
		}
		totals[day.Format(dateLayout)] += e.Calories
	}
	return totals, skipped
}

// Weekly sums calories per ISO 8601 week, keyed "{week-year}-W{week}".
// The week number is not zero-padded ("2024-W1"), and the year is the ISO
// week-year: 2023-01-01 belongs to "2022-W52".
func Weekly(entries []models.FoodEntry) (map[string]float64, []RecordError) {
	totals := make(map[string]float64)
	var skipped []RecordError

	for _, e := range entries {
		day, err := parseDate(e.Date)
		if err != nil {
			skipped = append(skipped, RecordError{ID: e.ID, Date: e.Date, Err: err.Error()})
			continue
		}
		year, week := day.ISOWeek()
		totals[fmt.Sprintf("%d-W%d", year, week)] += e.Calories
	}
	return totals, skipped
}

// Monthly sums calories per calendar month, keyed "YYYY-MM".
func Monthly(entries []models.FoodEntry) (map[string]float64, []RecordError) {
	totals := make(map[string]float64)
	var skipped []RecordError

	for _, e := range entries {
		day, err := parseDate(e.Date)
		if err != nil {
			skipped = append(skipped, RecordError{ID: e.ID, Date: e.Date, Err: err.Error()})
			continue
		}
		totals[day.Format("2006-01")] += e.Calories
	}
	return totals, skipped
}

// ExerciseSummary holds descriptive statistics over exercise entries.
type ExerciseSummary struct {
	Count                int     `json:"count"`
	TotalDurationMinutes float64 `json:"total_duration_minutes"`
	MeanIntensity        float64 `json:"mean_intensity"`
	ModeType             string  `json:"mode_type"`
}

// ExerciseStats computes totals, mean intensity and the most frequent
// exercise type. Ties on frequency are broken by first occurrence.
// Empty input yields a zero summary, never an error.
func ExerciseStats(entries []models.ExerciseEntry) ExerciseSummary {
	summary := ExerciseSummary{Count: len(entries)}
	if len(entries) == 0 {
		return summary
	}

	var intensitySum float64
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for i, e := range entries {
		summary.TotalDurationMinutes += e.DurationMinutes
		intensitySum += e.Intensity
		counts[e.Type]++
		if _, ok := firstSeen[e.Type]; !ok {
			firstSeen[e.Type] = i
		}
	}
	summary.MeanIntensity = intensitySum / float64(len(entries))

	bestCount := -1
	bestIndex := len(entries)
	for typ, n := range counts {
		if n > bestCount || (n == bestCount && firstSeen[typ] < bestIndex) {
			bestCount = n
			bestIndex = firstSeen[typ]
			summary.ModeType = typ
		}
	}
	return summary
}

// SleepSummary holds descriptive statistics over sleep entries.
type SleepSummary struct {
	Count          int     `json:"count"`
	TotalHours     float64 `json:"total_hours"`
	MeanQuality    float64 `json:"mean_quality"`
	MeanHoursNight float64 `json:"mean_hours_per_night"`
}

// SleepStats computes sleep duration and quality statistics.
func SleepStats(entries []models.SleepEntry) SleepSummary {
	summary := SleepSummary{Count: len(entries)}
	if len(entries) == 0 {
		return summary
	}

	var qualitySum float64
	for _, e := range entries {
		summary.TotalHours += e.DurationHours
		qualitySum += e.Quality
	}
	summary.MeanQuality = qualitySum / float64(len(entries))
	summary.MeanHoursNight = summary.TotalHours / float64(len(entries))
	return summary
}

// WaterSummary holds descriptive statistics over water intake entries.
type WaterSummary struct {
	Count   int     `json:"count"`
	TotalML float64 `json:"total_ml"`
	MeanML  float64 `json:"mean_ml"`
}

// WaterStats computes water intake statistics.
func WaterStats(entries []models.WaterEntry) WaterSummary {
	summary := WaterSummary{Count: len(entries)}
	if len(entries) == 0 {
		return summary
	}

	for _, e := range entries {
		summary.TotalML += e.AmountML
	}
	summary.MeanML = summary.TotalML / float64(len(entries))
	return summary
}

// Progress returns consumed as a percentage of goal, capped at 100.
// A non-positive goal yields 0: no goal, no progress bar.
func Progress(consumed, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	pct := consumed / goal * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
