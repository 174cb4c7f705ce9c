// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

package store

import (
	"context"
	"sync"

	"github.com/vigortrack/vigor/internal/models"
)

// MemoryStore is the in-memory Gateway implementation for tests and
// development. Data is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]models.Profile
	logs     map[string]map[string][]byte // uid:kind -> id -> doc
	feedback []models.Feedback
	accounts map[string]models.Account // email -> account
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]models.Profile),
		logs:     make(map[string]map[string][]byte),
		accounts: make(map[string]models.Account),
	}
}

// Close is a no-op for the memory backend.
func (s *MemoryStore) Close() error {
	return nil
}

func logBucket(uid string, kind models.LogKind) string {
	return uid + ":" + string(kind)
}

// GetProfile returns the stored profile, or an empty profile when absent.
func (s *MemoryStore) GetProfile(_ context.Context, uid string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile := s.profiles[uid]
	return &profile, nil
}

// UpsertProfile merges patch into the stored profile.
func (s *MemoryStore) UpsertProfile(_ context.Context, uid string, patch *models.Profile) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := s.profiles[uid]
	profile.Merge(patch)
	s.profiles[uid] = profile

	merged := profile
	return &merged, nil
}

// AppendLog stores one log entry document.
func (s *MemoryStore) AppendLog(_ context.Context, uid string, kind models.LogKind, id string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := logBucket(uid, kind)
	if s.logs[bucket] == nil {
		s.logs[bucket] = make(map[string][]byte)
	}
	cp := make([]byte, len(doc))
	copy(cp, doc)
	s.logs[bucket][id] = cp
	return nil
}

// ListLogs returns all entries of the given kind for the user, unordered.
func (s *MemoryStore) ListLogs(_ context.Context, uid string, kind models.LogKind) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.logs[logBucket(uid, kind)]
	records := make([]Record, 0, len(bucket))
	for id, doc := range bucket {
		cp := make([]byte, len(doc))
		copy(cp, doc)
		records = append(records, Record{ID: id, Doc: cp})
	}
	return records, nil
}

// DeleteLog removes a single entry; ErrNotFound when it does not exist.
func (s *MemoryStore) DeleteLog(_ context.Context, uid string, kind models.LogKind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.logs[logBucket(uid, kind)]
	if _, ok := bucket[id]; !ok {
		return ErrNotFound
	}
	delete(bucket, id)
	return nil
}

// ClearLogs removes all entries of the given kind for the user.
func (s *MemoryStore) ClearLogs(_ context.Context, uid string, kind models.LogKind) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := logBucket(uid, kind)
	count := len(s.logs[bucket])
	delete(s.logs, bucket)
	return count, nil
}

// AppendFeedback stores one feedback submission.
func (s *MemoryStore) AppendFeedback(_ context.Context, fb *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.feedback = append(s.feedback, *fb)
	return nil
}

// ListFeedback returns all feedback submissions.
func (s *MemoryStore) ListFeedback(_ context.Context) ([]models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Feedback, len(s.feedback))
	copy(out, s.feedback)
	return out, nil
}

// CreateAccount stores a new account; ErrConflict when the email is taken.
func (s *MemoryStore) CreateAccount(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.Email]; ok {
		return ErrConflict
	}
	s.accounts[account.Email] = *account
	return nil
}

// GetAccount returns the account for email; ErrNotFound when unknown.
func (s *MemoryStore) GetAccount(_ context.Context, email string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &account, nil
}

// UpdateAccount overwrites an existing account document.
func (s *MemoryStore) UpdateAccount(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.Email]; !ok {
		return ErrNotFound
	}
	s.accounts[account.Email] = *account
	return nil
}
