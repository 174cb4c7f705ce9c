// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

package api

// Machine-readable error codes returned in the API error envelope.
const (
	CodeValidationError     = "VALIDATION_ERROR"
	CodeAuthenticationError = "AUTHENTICATION_ERROR"
	CodeEmailInUse          = "EMAIL_IN_USE"
	CodeWeakCredential      = "WEAK_CREDENTIAL"
	CodeInvalidCredential   = "INVALID_CREDENTIAL"
	CodeAccountNotFound     = "ACCOUNT_NOT_FOUND"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeNoMatch             = "NO_MATCH"
	CodeStoreError          = "STORE_ERROR"
	CodeNotFound            = "NOT_FOUND"
)
