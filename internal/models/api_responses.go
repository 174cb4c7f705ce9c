// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints, for both successful and error responses.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "intensity must be between 1 and 10",
//	    "details": {"field": "intensity"}
//	  },
//	  "metadata": {"timestamp": "2026-08-31T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// Skipped counts how many stored records a report endpoint could not
// include (malformed dates); omitted when zero.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Skipped   int       `json:"skipped,omitempty"`
}

// APIError carries structured error details.
//
// Error codes:
//   - VALIDATION_ERROR: invalid input
//   - AUTHENTICATION_ERROR: missing or invalid token
//   - EMAIL_IN_USE: sign-up with an already registered email
//   - WEAK_CREDENTIAL: password fails the minimum policy
//   - INVALID_CREDENTIAL: wrong password (or locked account)
//   - ACCOUNT_NOT_FOUND: sign-in with an unknown email
//   - UPSTREAM_UNAVAILABLE: nutrition lookup provider failed
//   - NO_MATCH: nutrition lookup found no food
//   - STORE_ERROR: document store failure
//   - NOT_FOUND: resource doesn't exist
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
