// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

// Package store persists profiles, log entries, accounts and feedback.
//
// Two implementations exist behind the Gateway interface: a BadgerDB-backed
// store for production and an in-memory store for tests and development.
// The backend is selected by configuration (STORE_BACKEND).
//
// Key layout (badger):
//
//	user:<uid>:profile        profile document
//	log:<uid>:<kind>:<id>     one log entry
//	feedback:<id>             one feedback submission
//	account:<email>           one account document
//
// All values are JSON documents.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/vigortrack/vigor/internal/config"
	"github.com/vigortrack/vigor/internal/models"
)

var (
	// ErrNotFound is returned when the requested document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrConflict is returned when a create collides with an existing key.
	ErrConflict = errors.New("document already exists")
)

// Record is one stored log entry: its ID and raw JSON document.
type Record struct {
	ID  string
	Doc []byte
}

// Gateway is the persistence interface consumed by handlers and auth.
//
// Log entries are immutable once written; the only mutations are
// whole-entry delete and whole-collection clear. ClearLogs is atomic from
// the caller's perspective. ListLogs returns entries in no particular
// order.
type Gateway interface {
	// GetProfile returns the stored profile, or an empty profile when the
	// user has never saved one.
	GetProfile(ctx context.Context, uid string) (*models.Profile, error)

	// UpsertProfile merges patch into the stored profile and returns the
	// merged document. Fields absent from patch are left untouched.
	UpsertProfile(ctx context.Context, uid string, patch *models.Profile) (*models.Profile, error)

	AppendLog(ctx context.Context, uid string, kind models.LogKind, id string, doc []byte) error
	ListLogs(ctx context.Context, uid string, kind models.LogKind) ([]Record, error)
	DeleteLog(ctx context.Context, uid string, kind models.LogKind, id string) error

	// ClearLogs removes every entry of the given kind for the user and
	// returns the number of entries removed.
	ClearLogs(ctx context.Context, uid string, kind models.LogKind) (int, error)

	AppendFeedback(ctx context.Context, fb *models.Feedback) error
	ListFeedback(ctx context.Context) ([]models.Feedback, error)

	// CreateAccount stores a new account; ErrConflict if the email is taken.
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccount(ctx context.Context, email string) (*models.Account, error)
	UpdateAccount(ctx context.Context, account *models.Account) error

	Close() error
}

// New creates a Gateway for the configured backend.
func New(cfg config.StoreConfig) (Gateway, error) {
	switch cfg.Backend {
	case "badger":
		return NewBadgerStore(cfg.Path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func profileKey(uid string) []byte {
	return []byte("user:" + uid + ":profile")
}

func logKey(uid string, kind models.LogKind, id string) []byte {
	return []byte("log:" + uid + ":" + string(kind) + ":" + id)
}

func logPrefix(uid string, kind models.LogKind) []byte {
	return []byte("log:" + uid + ":" + string(kind) + ":")
}

func feedbackKey(id string) []byte {
	return []byte("feedback:" + id)
}

func accountKey(email string) []byte {
	return []byte("account:" + email)
}
