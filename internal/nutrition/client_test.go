// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

package nutrition

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/vigortrack/vigor/internal/config"
)

func testConfig(url string) config.NutritionixConfig {
	return config.NutritionixConfig{
		URL:               url,
		AppID:             "test-id",
		AppKey:            "test-key",
		Timeout:           2 * time.Second,
		RequestsPerSecond: 1000, // effectively unlimited in tests
	}
}

func TestResolveCalories(t *testing.T) {
	var gotAppID, gotAppKey, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAppID = r.Header.Get("x-app-id")
		gotAppKey = r.Header.Get("x-app-key")

		var req nutrientsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		gotQuery = req.Query

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck
		w.Write([]byte(`{"foods":[{"nf_calories":215.5},{"nf_calories":90}]}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	calories, err := c.ResolveCalories(context.Background(), "2 eggs and toast")
	if err != nil {
		t.Fatalf("ResolveCalories: %v", err)
	}

	// Only the first food's calories are used.
	if calories != 215.5 {
		t.Errorf("calories = %v, want 215.5", calories)
	}
	if gotAppID != "test-id" || gotAppKey != "test-key" {
		t.Errorf("credential headers = %q/%q", gotAppID, gotAppKey)
	}
	if gotQuery != "2 eggs and toast" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestResolveCaloriesNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		//nolint:errcheck
		w.Write([]byte(`{"foods":[]}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	_, err := c.ResolveCalories(context.Background(), "xyzzy")
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
}

func TestResolveCaloriesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	_, err := c.ResolveCalories(context.Background(), "apple")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestResolveCaloriesUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	_, err := c.ResolveCalories(context.Background(), "apple")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable for 401, got %v", err)
	}
}

func TestResolveCaloriesUndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		//nolint:errcheck
		w.Write([]byte(`{"foods": [`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	_, err := c.ResolveCalories(context.Background(), "apple")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := c.ResolveCalories(ctx, "apple"); !errors.Is(err, ErrUpstreamUnavailable) {
			t.Fatalf("attempt %d: expected ErrUpstreamUnavailable, got %v", i, err)
		}
	}

	if c.BreakerState() != "open" {
		t.Fatalf("breaker state = %q, want open", c.BreakerState())
	}

	hitsBefore := hits
	if _, err := c.ResolveCalories(ctx, "apple"); !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable while open, got %v", err)
	}
	if hits != hitsBefore {
		t.Error("open breaker still reached upstream")
	}
}

func TestNoMatchDoesNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		//nolint:errcheck
		w.Write([]byte(`{"foods":[]}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := c.ResolveCalories(ctx, "xyzzy"); !errors.Is(err, ErrNoMatch) {
			t.Fatalf("attempt %d: expected ErrNoMatch, got %v", i, err)
		}
	}
	if c.BreakerState() != "closed" {
		t.Errorf("breaker state = %q, want closed after no-match answers", c.BreakerState())
	}
}

func TestResolveCaloriesContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server watches the connection and cancels
		// the request context when the client disconnects.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := c.ResolveCalories(ctx, "apple"); err == nil {
		t.Error("expected error on canceled context")
	}
}
