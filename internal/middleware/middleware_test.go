package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type checkerFunc func(ctx context.Context) error

func (f checkerFunc) Check(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_AllHealthy(t *testing.T) {
	h := HealthHandler(map[string]HealthChecker{
		"provider": ProviderConfigChecker{Provider: "openai", Configured: true},
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "healthy" || body.Checks["provider"].Status != "healthy" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestHealthHandler_FailingCheckIs503(t *testing.T) {
	h := HealthHandler(map[string]HealthChecker{
		"provider": ProviderConfigChecker{Provider: "yandex"},
		"storage":  checkerFunc(func(ctx context.Context) error { return errors.New("bucket missing") }),
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var body HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Checks["provider"].Message != "yandex credentials not configured" {
		t.Fatalf("unexpected provider check %+v", body.Checks["provider"])
	}
	if body.Checks["storage"].Message != "bucket missing" {
		t.Fatalf("unexpected storage check %+v", body.Checks["storage"])
	}
}

func TestMetricsMiddleware_CountsOutcomes(t *testing.T) {
	before := GetMetrics()
	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/good", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bad", nil))
	after := GetMetrics()

	if d := after["requests_total"].(uint64) - before["requests_total"].(uint64); d != 2 {
		t.Fatalf("expected 2 requests counted, got %d", d)
	}
	if d := after["requests_success"].(uint64) - before["requests_success"].(uint64); d != 1 {
		t.Fatalf("expected 1 success, got %d", d)
	}
	if d := after["requests_failed"].(uint64) - before["requests_failed"].(uint64); d != 1 {
		t.Fatalf("expected 1 failure, got %d", d)
	}
	if after["requests_in_progress"].(uint64) != before["requests_in_progress"].(uint64) {
		t.Fatalf("in-progress counter not restored")
	}
}

func TestStartAnalysis(t *testing.T) {
	before := GetMetrics()
	done := StartAnalysis()
	if after := GetMetrics(); after["analyses_running"].(uint64) != before["analyses_running"].(uint64)+1 {
		t.Fatalf("running counter not incremented")
	}
	done(true, false)
	after := GetMetrics()
	if after["analyses_running"].(uint64) != before["analyses_running"].(uint64) {
		t.Fatalf("running counter not restored")
	}
	if after["analyses_failed"].(uint64) != before["analyses_failed"].(uint64)+1 {
		t.Fatalf("failure not counted")
	}
}

func TestLoggingMiddleware_PassesThroughStatus(t *testing.T) {
	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
}
