// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/vigortrack/vigor/internal/logging"
	"github.com/vigortrack/vigor/internal/metrics"
	"github.com/vigortrack/vigor/internal/models"
)

// BadgerStore is the persistent Gateway implementation on BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a badger database at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil) // badger's logger is too chatty; we log ops ourselves

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store at %s: %w", path, err)
	}

	logging.Info().Str("path", path).Msg("Badger store opened")
	return &BadgerStore{db: db}, nil
}

// Close flushes and closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// RunGC runs one badger value-log garbage collection cycle. Returns nil
// when there was nothing to rewrite.
func (s *BadgerStore) RunGC(discardRatio float64) error {
	err := s.db.RunValueLogGC(discardRatio)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return fmt.Errorf("badger value log GC failed: %w", err)
	}
	return nil
}

// view runs a read-only transaction and records the operation metric.
func (s *BadgerStore) view(op string, fn func(txn *badger.Txn) error) error {
	start := time.Now()
	err := s.db.View(fn)
	metrics.ObserveStoreOperation(op, time.Since(start), err)
	return err
}

// update runs a read-write transaction and records the operation metric.
func (s *BadgerStore) update(op string, fn func(txn *badger.Txn) error) error {
	start := time.Now()
	err := s.db.Update(fn)
	metrics.ObserveStoreOperation(op, time.Since(start), err)
	return err
}

// GetProfile returns the stored profile, or an empty profile when absent.
func (s *BadgerStore) GetProfile(_ context.Context, uid string) (*models.Profile, error) {
	profile := &models.Profile{}
	err := s.view("get_profile", func(txn *badger.Txn) error {
		item, err := txn.Get(profileKey(uid))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, profile)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return profile, nil
}

// UpsertProfile merges patch into the stored profile inside one transaction.
func (s *BadgerStore) UpsertProfile(_ context.Context, uid string, patch *models.Profile) (*models.Profile, error) {
	merged := &models.Profile{}
	err := s.update("upsert_profile", func(txn *badger.Txn) error {
		item, err := txn.Get(profileKey(uid))
		if err == nil {
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, merged)
			}); err != nil {
				return err
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		merged.Merge(patch)
		doc, err := json.Marshal(merged)
		if err != nil {
			return err
		}
		return txn.Set(profileKey(uid), doc)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return merged, nil
}

// AppendLog writes one log entry document.
func (s *BadgerStore) AppendLog(_ context.Context, uid string, kind models.LogKind, id string, doc []byte) error {
	err := s.update("append_log", func(txn *badger.Txn) error {
		return txn.Set(logKey(uid, kind, id), doc)
	})
	if err != nil {
		return fmt.Errorf("failed to append %s log: %w", kind, err)
	}
	return nil
}

// ListLogs returns all entries of the given kind for the user, unordered.
func (s *BadgerStore) ListLogs(_ context.Context, uid string, kind models.LogKind) ([]Record, error) {
	prefix := logPrefix(uid, kind)
	var records []Record

	err := s.view("list_logs", func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			doc, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			records = append(records, Record{
				ID:  string(item.Key()[len(prefix):]),
				Doc: doc,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s logs: %w", kind, err)
	}
	return records, nil
}

// DeleteLog removes a single entry; ErrNotFound when it does not exist.
func (s *BadgerStore) DeleteLog(_ context.Context, uid string, kind models.LogKind, id string) error {
	key := logKey(uid, kind, id)
	err := s.update("delete_log", func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s log entry: %w", kind, err)
	}
	return nil
}

// ClearLogs removes all entries of the given kind in one transaction, so
// readers never observe a partially cleared collection.
func (s *BadgerStore) ClearLogs(_ context.Context, uid string, kind models.LogKind) (int, error) {
	prefix := logPrefix(uid, kind)
	count := 0

	err := s.update("clear_logs", func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)

		var keys [][]byte
		for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		count = len(keys)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to clear %s logs: %w", kind, err)
	}
	return count, nil
}

// AppendFeedback stores one feedback submission.
func (s *BadgerStore) AppendFeedback(_ context.Context, fb *models.Feedback) error {
	doc, err := json.Marshal(fb)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback: %w", err)
	}
	err = s.update("append_feedback", func(txn *badger.Txn) error {
		return txn.Set(feedbackKey(fb.ID), doc)
	})
	if err != nil {
		return fmt.Errorf("failed to append feedback: %w", err)
	}
	return nil
}

// ListFeedback returns all feedback submissions, unordered.
func (s *BadgerStore) ListFeedback(_ context.Context) ([]models.Feedback, error) {
	prefix := []byte("feedback:")
	var out []models.Feedback

	err := s.view("list_feedback", func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
			var fb models.Feedback
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &fb)
			}); err != nil {
				return err
			}
			out = append(out, fb)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return out, nil
}

// CreateAccount stores a new account; ErrConflict when the email is taken.
func (s *BadgerStore) CreateAccount(_ context.Context, account *models.Account) error {
	doc, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}

	err = s.update("create_account", func(txn *badger.Txn) error {
		_, err := txn.Get(accountKey(account.Email))
		if err == nil {
			return ErrConflict
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(accountKey(account.Email), doc)
	})
	if errors.Is(err, ErrConflict) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAccount returns the account for email; ErrNotFound when unknown.
func (s *BadgerStore) GetAccount(_ context.Context, email string) (*models.Account, error) {
	account := &models.Account{}
	err := s.view("get_account", func(txn *badger.Txn) error {
		item, err := txn.Get(accountKey(email))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, account)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read account: %w", err)
	}
	return account, nil
}

// UpdateAccount overwrites an existing account document.
func (s *BadgerStore) UpdateAccount(_ context.Context, account *models.Account) error {
	doc, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}
	err = s.update("update_account", func(txn *badger.Txn) error {
		if _, err := txn.Get(accountKey(account.Email)); err != nil {
			return err
		}
		return txn.Set(accountKey(account.Email), doc)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

// GCService runs periodic badger value-log garbage collection. It
// implements suture.Service.
type GCService struct {
	store    *BadgerStore
	interval time.Duration
}

// NewGCService creates a GC service for the given store.
func NewGCService(store *BadgerStore, interval time.Duration) *GCService {
	return &GCService{store: store, interval: interval}
}

// Serve runs the GC loop until the context is canceled.
func (g *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := g.store.RunGC(0.5); err != nil {
				logging.Err(err).Msg("Badger GC cycle failed")
			}
		}
	}
}

// String identifies the service in supervisor logs.
func (g *GCService) String() string {
	return "store-gc"
}
