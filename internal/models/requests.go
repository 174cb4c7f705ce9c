// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

package models

// SignUpRequest creates a new account. Password strength is checked by the
// identity service, not here, so the client gets WEAK_CREDENTIAL instead of
// a generic validation error.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInRequest authenticates an existing account.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by signup and login.
type TokenResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	ExpiresAt string `json:"expires_at"`
}

// ProfileUpdateRequest patches the caller's profile. Absent fields are left
// untouched.
type ProfileUpdateRequest struct {
	Name             *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Age              *int     `json:"age" validate:"omitempty,gte=0,lte=150"`
	Weight           *float64 `json:"weight" validate:"omitempty,gte=0"`
	DailyCalorieGoal *float64 `json:"daily_calorie_goal" validate:"omitempty,gte=0"`
}

// FoodLogRequest appends a food entry. When Resolve is true and Calories is
// absent, calories are filled via the nutrition lookup before the entry is
// written; on lookup failure nothing is written.
type FoodLogRequest struct {
	Food     string   `json:"food" validate:"required,min=1,max=500"`
	Calories *float64 `json:"calories" validate:"omitempty,gte=0"`
	Resolve  bool     `json:"resolve"`
}

// ExerciseLogRequest appends an exercise entry.
type ExerciseLogRequest struct {
	Type            string  `json:"exercise_type" validate:"required,min=1,max=200"`
	DurationMinutes float64 `json:"duration_minutes" validate:"required,gte=1"`
	Intensity       float64 `json:"intensity" validate:"required,gte=1,lte=10"`
}

// WaterLogRequest appends a water intake entry.
type WaterLogRequest struct {
	AmountML float64 `json:"amount_ml" validate:"required,gte=1"`
}

// SleepLogRequest appends a sleep entry.
type SleepLogRequest struct {
	DurationHours float64 `json:"duration_hours" validate:"required,gte=1,lte=24"`
	Quality       float64 `json:"quality" validate:"required,gte=1,lte=10"`
}

// FeedbackRequest submits feedback.
type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required,min=1,max=5000"`
	Email    string `json:"email" validate:"required,email"`
}
