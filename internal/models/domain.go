// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

// Package models defines the domain entities, request DTOs, and the API
// response envelope shared across packages.
package models

import (
	"fmt"
	"time"
)

// DateTimeLayout is the wire format for record timestamps. Timestamps are
// produced in server-local time at write time; aggregation reads only the
// date half (everything before the first space).
const DateTimeLayout = "2006-01-02 15:04:05"

// FormatDateTime renders t in the record wire format.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// LogKind identifies one of the four log collections.
type LogKind string

const (
	LogKindFood     LogKind = "food"
	LogKindExercise LogKind = "exercise"
	LogKindWater    LogKind = "water"
	LogKindSleep    LogKind = "sleep"
)

// ParseLogKind validates a log kind from a URL path segment.
func ParseLogKind(s string) (LogKind, error) {
	switch LogKind(s) {
	case LogKindFood, LogKindExercise, LogKindWater, LogKindSleep:
		return LogKind(s), nil
	}
	return "", fmt.Errorf("unknown log kind %q", s)
}

// Profile is a user's profile document. Pointer fields distinguish "absent"
// from zero so updates merge instead of overwrite: a nil field is left
// untouched in the stored document.
//
// The JSON keys (including "Daily Calorie Goal" with spaces) are a stored
// compatibility surface; do not rename them.
type Profile struct {
	Name             *string  `json:"Name,omitempty"`
	Age              *int     `json:"Age,omitempty"`
	Weight           *float64 `json:"Weight,omitempty"`
	DailyCalorieGoal *float64 `json:"Daily Calorie Goal,omitempty"`
}

// Merge applies non-nil fields of patch on top of p.
func (p *Profile) Merge(patch *Profile) {
	if patch.Name != nil {
		p.Name = patch.Name
	}
	if patch.Age != nil {
		p.Age = patch.Age
	}
	if patch.Weight != nil {
		p.Weight = patch.Weight
	}
	if patch.DailyCalorieGoal != nil {
		p.DailyCalorieGoal = patch.DailyCalorieGoal
	}
}

// FoodEntry is one food log record.
type FoodEntry struct {
	ID       string  `json:"id"`
	Food     string  `json:"food"`
	Calories float64 `json:"calories"`
	Date     string  `json:"date"`
}

// ExerciseEntry is one exercise log record.
type ExerciseEntry struct {
	ID              string  `json:"id"`
	Type            string  `json:"exercise_type"`
	DurationMinutes float64 `json:"duration_minutes"`
	Intensity       float64 `json:"intensity"`
	Date            string  `json:"date"`
}

// WaterEntry is one water intake record.
type WaterEntry struct {
	ID       string  `json:"id"`
	AmountML float64 `json:"amount_ml"`
	Date     string  `json:"date"`
}

// SleepEntry is one sleep log record.
type SleepEntry struct {
	ID            string  `json:"id"`
	DurationHours float64 `json:"duration_hours"`
	Quality       float64 `json:"quality"`
	Date          string  `json:"date"`
}

// Feedback is a feedback submission. Feedback is global, not per-user, and
// requires no authentication.
type Feedback struct {
	ID       string `json:"id"`
	Feedback string `json:"feedback"`
	Email    string `json:"email"`
	Date     string `json:"date"`
}
