// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gatherFamily(t *testing.T, name string) *dto.MetricFamily {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

// counterValue finds the counter with the given label values, in order.
func counterValue(mf *dto.MetricFamily, labels ...string) (float64, bool) {
	if mf == nil {
		return 0, false
	}
outer:
	for _, m := range mf.GetMetric() {
		if len(m.GetLabel()) != len(labels) {
			continue
		}
		for i, lp := range m.GetLabel() {
			if lp.GetValue() != labels[i] {
				continue outer
			}
		}
		return m.GetCounter().GetValue(), true
	}
	return 0, false
}

func TestObserveAPIRequest(t *testing.T) {
	ObserveAPIRequest("GET", "/api/v1/logs/{kind}", 200, 5*time.Millisecond)
	ObserveAPIRequest("GET", "/api/v1/logs/{kind}", 200, 7*time.Millisecond)

	mf := gatherFamily(t, "vigor_api_requests_total")
	got, ok := counterValue(mf, "GET", "/api/v1/logs/{kind}", "200")
	if !ok {
		t.Fatal("counter with expected labels not found")
	}
	if got < 2 {
		t.Errorf("requests total = %v, want >= 2", got)
	}

	durations := gatherFamily(t, "vigor_api_request_duration_seconds")
	if durations == nil {
		t.Fatal("duration histogram not registered")
	}
}

func TestObserveStoreOperationErrorCounting(t *testing.T) {
	ObserveStoreOperation("test_op_ok", time.Millisecond, nil)
	ObserveStoreOperation("test_op_fail", time.Millisecond, errors.New("boom"))

	mf := gatherFamily(t, "vigor_store_operation_errors_total")
	if _, ok := counterValue(mf, "test_op_ok"); ok {
		t.Error("successful operation counted as error")
	}
	got, ok := counterValue(mf, "test_op_fail")
	if !ok || got < 1 {
		t.Errorf("failed operation not counted: value=%v found=%v", got, ok)
	}
}

func TestCircuitBreakerGauge(t *testing.T) {
	CircuitBreakerState.Set(2)

	mf := gatherFamily(t, "vigor_nutrition_circuit_breaker_state")
	if mf == nil {
		t.Fatal("gauge not registered")
	}
	if v := mf.GetMetric()[0].GetGauge().GetValue(); v != 2 {
		t.Errorf("gauge = %v, want 2", v)
	}
}
