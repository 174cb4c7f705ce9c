// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/vigortrack/vigor/internal/config"
	"github.com/vigortrack/vigor/internal/models"
)

// runBackends executes fn against both Gateway implementations.
func runBackends(t *testing.T, fn func(t *testing.T, s Gateway)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		s := NewMemoryStore()
		defer s.Close()
		fn(t, s)
	})

	t.Run("badger", func(t *testing.T) {
		s, err := NewBadgerStore(t.TempDir())
		if err != nil {
			t.Fatalf("failed to open badger store: %v", err)
		}
		defer s.Close()
		fn(t, s)
	})
}

func strPtr(s string) *string   { return &s }
func intPtr(i int) *int         { return &i }
func f64Ptr(f float64) *float64 { return &f }

func TestGetProfileAbsent(t *testing.T) {
	runBackends(t, func(t *testing.T, s Gateway) {
		p, err := s.GetProfile(context.Background(), "nobody")
		if err != nil {
			t.Fatalf("GetProfile: %v", err)
		}
		if p.Name != nil || p.Age != nil || p.Weight != nil || p.DailyCalorieGoal != nil {
			t.Errorf("expected empty profile, got %+v", p)
		}
	})
}

func TestUpsertProfileMerges(t *testing.T) {
	runBackends(t, func(t *testing.T, s Gateway) {
		ctx := context.Background()

		if _, err := s.UpsertProfile(ctx, "u1", &models.Profile{
			Name: strPtr("Alice"),
			Age:  intPtr(30),
		}); err != nil {
			t.Fatalf("first upsert: %v", err)
		}

		merged, err := s.UpsertProfile(ctx, "u1", &models.Profile{
			Weight: f64Ptr(61.2),
		})
		if err != nil {
			t.Fatalf("second upsert: %v", err)
		}

		if merged.Name == nil || *merged.Name != "Alice" {
			t.Error("merge dropped Name")
		}
		if merged.Weight == nil || *merged.Weight != 61.2 {
			t.Error("merge did not apply Weight")
		}

		// Re-read to confirm persistence of the merged document.
		stored, err := s.GetProfile(ctx, "u1")
		if err != nil {
			t.Fatalf("GetProfile: %v", err)
		}
		if stored.Age == nil || *stored.Age != 30 {
			t.Error("stored profile lost Age after merge")
		}
	})
}

func TestProfileIsolatedPerUser(t *testing.T) {
	runBackends(t, func(t *testing.T, s Gateway) {
		ctx := context.Background()

		if _, err := s.UpsertProfile(ctx, "u1", &models.Profile{Name: strPtr("Alice")}); err != nil {
			t.Fatalf("upsert: %v", err)
		}

		other, err := s.GetProfile(ctx, "u2")
		if err != nil {
			t.Fatalf("GetProfile: %v", err)
		}
		if other.Name != nil {
			t.Error("u2 sees u1's profile")
		}
	})
}

func TestAppendListDeleteLogs(t *testing.T) {
	runBackends(t, func(t *testing.T, s Gateway) {
		ctx := context.Background()

		entry := models.FoodEntry{ID: "e1", Food: "apple", Calories: 95, Date: "2024-03-01 08:00:00"}
		doc, _ := json.Marshal(entry)
		if err := s.AppendLog(ctx, "u1", models.LogKindFood, entry.ID, doc); err != nil {
			t.Fatalf("AppendLog: %v", err)
		}

		records, err := s.ListLogs(ctx, "u1", models.LogKindFood)
		if err != nil {
			t.Fatalf("ListLogs: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if records[0].ID != "e1" {
			t.Errorf("record ID = %q, want e1", records[0].ID)
		}

		var got models.FoodEntry
		if err := json.Unmarshal(records[0].Doc, &got); err != nil {
			t.Fatalf("unmarshal record: %v", err)
		}
		if got.Food != "apple" || got.Calories != 95 {
			t.Errorf("record = %+v", got)
		}

		if err := s.DeleteLog(ctx, "u1", models.LogKindFood, "e1"); err != nil {
			t.Fatalf("DeleteLog: %v", err)
		}
		records, err = s.ListLogs(ctx, "u1", models.LogKindFood)
		if err != nil {
			t.Fatalf("ListLogs after delete: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected empty list after delete, got %d", len(records))
		}
	})
}

func TestDeleteLogNotFound(t *testing.T) {
	runBackends(t, func(t *testing.T, s Gateway) {
		err := s.DeleteLog(context.Background(), "u1", models.LogKindFood, "missing")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestLogsScopedByUserAndKind(t *testing.T) {
	runBackends(t, func(t *testing.T, s Gateway) {
		ctx := context.Background()

		if err := s.AppendLog(ctx, "u1", models.LogKindFood, "a", []byte(`{"id":"a"}`)); err != nil {
			t.Fatal(err)
		}
		if err := s.AppendLog(ctx, "u1", models.LogKindWater, "b", []byte(`{"id":"b"}`)); err != nil {
			t.Fatal(err)
		}
		if err := s.AppendLog(ctx, "u2", models.LogKindFood, "c", []byte(`{"id":"c"}`)); err != nil {
			t.Fatal(err)
		}

		records, err := s.ListLogs(ctx, "u1", models.LogKindFood)
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != 1 || records[0].ID != "a" {
			t.Errorf("u1 food logs = %+v, want only entry a", records)
		}
	})
}

func TestClearLogs(t *testing.T) {
	runBackends(t, func(t *testing.T, s Gateway) {
		ctx := context.Background()

		for _, id := range []string{"a", "b", "c"} {
			if err := s.AppendLog(ctx, "u1", models.LogKindExercise, id, []byte(`{}`)); err != nil {
				t.Fatal(err)
			}
		}
		// An entry of another kind must survive the clear.
		if err := s.AppendLog(ctx, "u1", models.LogKindSleep, "keep", []byte(`{}`)); err != nil {
			t.Fatal(err)
		}

		count, err := s.ClearLogs(ctx, "u1", models.LogKindExercise)
		if err != nil {
			t.Fatalf("ClearLogs: %v", err)
		}
		if count != 3 {
			t.Errorf("ClearLogs count = %d, want 3", count)
		}

		records, err := s.ListLogs(ctx, "u1", models.LogKindExercise)
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != 0 {
			t.Errorf("expected empty collection after clear, got %d", len(records))
		}

		kept, err := s.ListLogs(ctx, "u1", models.LogKindSleep)
		if err != nil {
			t.Fatal(err)
		}
		if len(kept) != 1 {
			t.Errorf("sleep logs affected by exercise clear: %d", len(kept))
		}
	})
}

func TestClearLogsEmptyCollection(t *testing.T) {
	runBackends(t, func(t *testing.T, s Gateway) {
		count, err := s.ClearLogs(context.Background(), "u1", models.LogKindFood)
		if err != nil {
			t.Fatalf("ClearLogs on empty: %v", err)
		}
		if count != 0 {
			t.Errorf("count = %d, want 0", count)
		}
	})
}

func TestFeedback(t *testing.T) {
	runBackends(t, func(t *testing.T, s Gateway) {
		ctx := context.Background()

		fb := models.Feedback{ID: "f1", Feedback: "great app", Email: "a@example.com", Date: "2024-03-01 10:00:00"}
		if err := s.AppendFeedback(ctx, &fb); err != nil {
			t.Fatalf("AppendFeedback: %v", err)
		}

		list, err := s.ListFeedback(ctx)
		if err != nil {
			t.Fatalf("ListFeedback: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("expected 1 feedback, got %d", len(list))
		}
		if list[0].Feedback != "great app" || list[0].Email != "a@example.com" {
			t.Errorf("feedback = %+v", list[0])
		}
	})
}

func TestAccountLifecycle(t *testing.T) {
	runBackends(t, func(t *testing.T, s Gateway) {
		ctx := context.Background()

		account := &models.Account{
			UID:          "u1",
			Email:        "a@example.com",
			PasswordHash: []byte("hash"),
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.CreateAccount(ctx, account); err != nil {
			t.Fatalf("CreateAccount: %v", err)
		}

		// Duplicate email must conflict.
		if err := s.CreateAccount(ctx, account); !errors.Is(err, ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}

		got, err := s.GetAccount(ctx, "a@example.com")
		if err != nil {
			t.Fatalf("GetAccount: %v", err)
		}
		if got.UID != "u1" {
			t.Errorf("UID = %q", got.UID)
		}

		got.FailedLogins = 2
		if err := s.UpdateAccount(ctx, got); err != nil {
			t.Fatalf("UpdateAccount: %v", err)
		}
		again, err := s.GetAccount(ctx, "a@example.com")
		if err != nil {
			t.Fatal(err)
		}
		if again.FailedLogins != 2 {
			t.Errorf("FailedLogins = %d, want 2", again.FailedLogins)
		}
	})
}

func TestGetAccountNotFound(t *testing.T) {
	runBackends(t, func(t *testing.T, s Gateway) {
		if _, err := s.GetAccount(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestUpdateAccountNotFound(t *testing.T) {
	runBackends(t, func(t *testing.T, s Gateway) {
		err := s.UpdateAccount(context.Background(), &models.Account{Email: "ghost@example.com"})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestBadgerPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewBadgerStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.UpsertProfile(ctx, "u1", &models.Profile{Name: strPtr("Alice")}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = NewBadgerStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	p, err := s.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name == nil || *p.Name != "Alice" {
		t.Error("profile did not survive reopen")
	}
}

func TestNewFactorySelectsBackend(t *testing.T) {
	mem, err := New(config.StoreConfig{Backend: "memory"})
	if err != nil {
		t.Fatalf("memory backend: %v", err)
	}
	if _, ok := mem.(*MemoryStore); !ok {
		t.Errorf("expected *MemoryStore, got %T", mem)
	}
	_ = mem.Close()

	bdg, err := New(config.StoreConfig{Backend: "badger", Path: t.TempDir()})
	if err != nil {
		t.Fatalf("badger backend: %v", err)
	}
	if _, ok := bdg.(*BadgerStore); !ok {
		t.Errorf("expected *BadgerStore, got %T", bdg)
	}
	_ = bdg.Close()

	if _, err := New(config.StoreConfig{Backend: "cloud"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}
