package httpcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestInitHTTPCheck_Success(t *testing.T) {
	var method atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method.Store(r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	instance, err := InitHTTPCheck(context.Background(), &Settings{URL: server.URL})
	if err != nil {
		t.Fatalf("InitHTTPCheck() returned an unexpected error: %v", err)
	}
	if method.Load() != http.MethodGet {
		t.Errorf("method = %v, want GET by default", method.Load())
	}
	if _, ok := instance.(*Probe); !ok {
		t.Fatalf("instance type = %T, want *Probe", instance)
	}
}

func TestInitHTTPCheck_Non2xxFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := InitHTTPCheck(context.Background(), &Settings{URL: server.URL})
	if err == nil {
		t.Fatal("expected a 503 response to fail the probe")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error %q does not mention the status code", err)
	}
}

func TestInitHTTPCheck_ExpectStatusOverridesDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	if _, err := InitHTTPCheck(context.Background(), &Settings{
		URL:          server.URL,
		ExpectStatus: http.StatusNoContent,
	}); err != nil {
		t.Fatalf("expected 204 to match expect_status: %v", err)
	}

	if _, err := InitHTTPCheck(context.Background(), &Settings{
		URL:          server.URL,
		ExpectStatus: http.StatusOK,
	}); err == nil {
		t.Fatal("expected a 204 response to fail an expect_status of 200")
	}
}

func TestHealthHTTPCheck_ReprobesServer(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if healthy.Load() {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	instance, err := InitHTTPCheck(context.Background(), &Settings{URL: server.URL})
	if err != nil {
		t.Fatalf("InitHTTPCheck() returned an unexpected error: %v", err)
	}

	if err := HealthHTTPCheck(context.Background(), instance); err != nil {
		t.Errorf("health check failed against a healthy server: %v", err)
	}

	healthy.Store(false)
	if err := HealthHTTPCheck(context.Background(), instance); err == nil {
		t.Error("health check passed against an unhealthy server")
	}
}
