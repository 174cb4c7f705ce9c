// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

package models

import "time"

// Account is a stored user account. The password is kept only as a bcrypt
// hash; the account document is never returned over the API.
type Account struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`

	// FailedLogins counts consecutive failed sign-ins; reset on success.
	FailedLogins int `json:"failed_logins"`

	// LockedUntil is the lockout expiry. Zero when not locked.
	LockedUntil time.Time `json:"locked_until,omitempty"`
}

// Locked reports whether the account is locked out at time now.
func (a *Account) Locked(now time.Time) bool {
	return !a.LockedUntil.IsZero() && now.Before(a.LockedUntil)
}
