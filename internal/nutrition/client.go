// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

// Package nutrition resolves free-text food descriptions to calorie values
// via the Nutritionix natural-language API.
//
// The upstream call is guarded by a circuit breaker and a client-side rate
// limiter. Callers see exactly two failure modes: ErrUpstreamUnavailable
// (provider down, non-2xx, breaker open, rate limit exceeded) and
// ErrNoMatch (provider answered but recognized no food).
package nutrition

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/vigortrack/vigor/internal/config"
	"github.com/vigortrack/vigor/internal/logging"
	"github.com/vigortrack/vigor/internal/metrics"
)

var (
	// ErrUpstreamUnavailable means the lookup provider could not answer.
	ErrUpstreamUnavailable = errors.New("nutrition provider unavailable")

	// ErrNoMatch means the provider recognized no food in the query.
	ErrNoMatch = errors.New("no food matched the query")
)

// Resolver is the calorie lookup interface consumed by handlers.
type Resolver interface {
	ResolveCalories(ctx context.Context, foodText string) (float64, error)
}

// Client calls the Nutritionix natural/nutrients endpoint.
type Client struct {
	httpClient *http.Client
	url        string
	appID      string
	appKey     string
	breaker    *gobreaker.CircuitBreaker[float64]
	limiter    *rate.Limiter
}

// nutrientsRequest is the upstream request body.
type nutrientsRequest struct {
	Query string `json:"query"`
}

// nutrientsResponse is the subset of the upstream response we read.
type nutrientsResponse struct {
	Foods []struct {
		Calories float64 `json:"nf_calories"`
	} `json:"foods"`
}

// NewClient creates a nutrition client from configuration.
func NewClient(cfg config.NutritionixConfig) *Client {
	settings := gobreaker.Settings{
		Name:        "nutritionix",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A clean "no match" answer is a healthy upstream.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNoMatch)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.Set(stateToFloat(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("Circuit breaker state changed")
		},
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		url:        cfg.URL,
		appID:      cfg.AppID,
		appKey:     cfg.AppKey,
		breaker:    gobreaker.NewCircuitBreaker[float64](settings),
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// ResolveCalories looks up the calorie value for a free-text food query.
func (c *Client) ResolveCalories(ctx context.Context, foodText string) (float64, error) {
	start := time.Now()

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.NutritionLookupsTotal.WithLabelValues("rejected").Inc()
		return 0, fmt.Errorf("%w: rate limit wait canceled: %w", ErrUpstreamUnavailable, err)
	}

	calories, err := c.breaker.Execute(func() (float64, error) {
		return c.lookup(ctx, foodText)
	})
	metrics.NutritionLookupDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.NutritionLookupsTotal.WithLabelValues("ok").Inc()
		return calories, nil
	case errors.Is(err, ErrNoMatch):
		metrics.NutritionLookupsTotal.WithLabelValues("no_match").Inc()
		return 0, err
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.NutritionLookupsTotal.WithLabelValues("rejected").Inc()
		return 0, fmt.Errorf("%w: circuit breaker open", ErrUpstreamUnavailable)
	default:
		metrics.NutritionLookupsTotal.WithLabelValues("upstream_error").Inc()
		if errors.Is(err, ErrUpstreamUnavailable) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
}

// lookup performs one upstream request without breaker involvement.
func (c *Client) lookup(ctx context.Context, foodText string) (float64, error) {
	body, err := json.Marshal(nutrientsRequest{Query: foodText})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-app-id", c.appID)
	req.Header.Set("x-app-key", c.appKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return 0, fmt.Errorf("%w: upstream returned status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var parsed nutrientsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("%w: undecodable response: %w", ErrUpstreamUnavailable, err)
	}
	if len(parsed.Foods) == 0 {
		return 0, ErrNoMatch
	}
	return parsed.Foods[0].Calories, nil
}

// BreakerState returns the current breaker state for health reporting.
func (c *Client) BreakerState() string {
	return stateToString(c.breaker.State())
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
