// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/vigortrack/vigor/internal/auth"
	"github.com/vigortrack/vigor/internal/logging"
	"github.com/vigortrack/vigor/internal/metrics"
	"github.com/vigortrack/vigor/internal/models"
)

// SignUp creates a new account and returns a session token.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "failure").Inc()
		switch {
		case errors.Is(err, auth.ErrEmailInUse):
			h.respondError(w, http.StatusConflict, CodeEmailInUse, "email is already registered", nil)
		case errors.Is(err, auth.ErrWeakCredential):
			h.respondError(w, http.StatusBadRequest, CodeWeakCredential, "password must be at least 8 characters", nil)
		default:
			logging.Ctx(r.Context()).Err(err).Msg("Sign-up failed")
			h.respondError(w, http.StatusInternalServerError, CodeStoreError, "failed to create account", nil)
		}
		return
	}

	metrics.AuthAttemptsTotal.WithLabelValues("signup", "success").Inc()
	h.issueToken(w, r, account, http.StatusCreated)
}

// Login verifies credentials and returns a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		switch {
		case errors.Is(err, auth.ErrAccountNotFound):
			h.respondError(w, http.StatusNotFound, CodeAccountNotFound, "no account for that email", nil)
		case errors.Is(err, auth.ErrInvalidCredential):
			h.respondError(w, http.StatusUnauthorized, CodeInvalidCredential, "wrong email or password", nil)
		case errors.Is(err, auth.ErrAccountLocked):
			h.respondError(w, http.StatusUnauthorized, CodeInvalidCredential, "account temporarily locked, try again later", nil)
		default:
			logging.Ctx(r.Context()).Err(err).Msg("Sign-in failed")
			h.respondError(w, http.StatusInternalServerError, CodeStoreError, "failed to sign in", nil)
		}
		return
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	h.issueToken(w, r, account, http.StatusOK)
}

// Logout acknowledges a logout. Tokens are stateless, so the client
// discards its copy; there is nothing to revoke server-side.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	logging.Ctx(r.Context()).Info().Msg("Logout")
	h.respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, account *models.Account, status int) {
	token, expiresAt, err := h.auth.JWT().Generate(account.UID, account.Email)
	if err != nil {
		logging.Ctx(r.Context()).Err(err).Msg("Token generation failed")
		h.respondError(w, http.StatusInternalServerError, CodeAuthenticationError, "failed to issue token", nil)
		return
	}

	h.respondJSON(w, status, models.TokenResponse{
		Token:     token,
		UserID:    account.UID,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}
