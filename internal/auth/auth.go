// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

// Package auth implements the identity gateway: email/password accounts
// with bcrypt hashes, JWT session tokens, and the HTTP authentication
// middleware.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vigortrack/vigor/internal/config"
	"github.com/vigortrack/vigor/internal/logging"
	"github.com/vigortrack/vigor/internal/models"
	"github.com/vigortrack/vigor/internal/store"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

var (
	// ErrEmailInUse is returned on sign-up with a registered email.
	ErrEmailInUse = errors.New("email already in use")

	// ErrWeakCredential is returned when the password fails the policy.
	ErrWeakCredential = errors.New("password does not meet the minimum policy")

	// ErrAccountNotFound is returned on sign-in with an unknown email.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidCredential is returned on sign-in with a wrong password.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrAccountLocked is returned while a lockout window is active.
	ErrAccountLocked = errors.New("account temporarily locked")
)

// Service is the identity gateway over the account store.
type Service struct {
	store            store.Gateway
	jwt              *JWTManager
	lockoutThreshold int
	lockoutDuration  time.Duration
}

// NewService creates the identity service.
func NewService(gw store.Gateway, jwtMgr *JWTManager, cfg config.SecurityConfig) *Service {
	return &Service{
		store:            gw,
		jwt:              jwtMgr,
		lockoutThreshold: cfg.LockoutThreshold,
		lockoutDuration:  cfg.LockoutDuration,
	}
}

// JWT returns the token manager used by this service.
func (s *Service) JWT() *JWTManager {
	return s.jwt
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates a new account and returns it.
func (s *Service) SignUp(ctx context.Context, email, password string) (*models.Account, error) {
	email = normalizeEmail(email)
	if len(password) < MinPasswordLength {
		return nil, ErrWeakCredential
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		UID:          uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	logging.Ctx(ctx).Info().Str("uid", account.UID).Msg("Account created")
	return account, nil
}

// SignIn verifies the credentials and returns the account. Repeated
// failures lock the account for the configured duration.
func (s *Service) SignIn(ctx context.Context, email, password string) (*models.Account, error) {
	email = normalizeEmail(email)

	account, err := s.store.GetAccount(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	now := time.Now().UTC()
	if account.Locked(now) {
		return nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		s.recordFailure(ctx, account, now)
		return nil, ErrInvalidCredential
	}

	if account.FailedLogins > 0 || !account.LockedUntil.IsZero() {
		account.FailedLogins = 0
		account.LockedUntil = time.Time{}
		if err := s.store.UpdateAccount(ctx, account); err != nil {
			logging.Ctx(ctx).Err(err).Msg("Failed to reset lockout counter")
		}
	}
	return account, nil
}

// recordFailure bumps the failed-login counter and locks the account once
// the threshold is reached. Counter updates are best-effort: a store error
// here never masks the credential failure.
func (s *Service) recordFailure(ctx context.Context, account *models.Account, now time.Time) {
	account.FailedLogins++
	if account.FailedLogins >= s.lockoutThreshold {
		account.LockedUntil = now.Add(s.lockoutDuration)
		account.FailedLogins = 0
		logging.Ctx(ctx).Warn().
			Str("uid", account.UID).
			Time("locked_until", account.LockedUntil).
			Msg("Account locked after repeated failed sign-ins")
	}
	if err := s.store.UpdateAccount(ctx, account); err != nil {
		logging.Ctx(ctx).Err(err).Msg("Failed to record sign-in failure")
	}
}
