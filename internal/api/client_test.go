package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(srv *httptest.Server) *Client {
	c := NewClient("test-key")
	c.BaseURL = srv.URL
	return c
}

func TestClient_ListApps_SetsHeadersAndUnwrapsEnvelope(t *testing.T) {
	var gotKey, gotAccept, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-SCOUT-API")
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": map[string]any{
				"apps": []any{
					map[string]any{"id": float64(1), "name": "Shop"},
					map[string]any{"id": float64(2), "name": "Billing"},
				},
			},
		})
	}))
	defer srv.Close()

	apps, err := newTestClient(srv).ListApps(context.Background(), "")
	if err != nil {
		t.Fatalf("ListApps: %v", err)
	}
	if gotKey != "test-key" {
		t.Fatalf("missing api key header, got %q", gotKey)
	}
	if gotAccept != "application/json" {
		t.Fatalf("unexpected accept header: %q", gotAccept)
	}
	if gotPath != "/apps" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2 apps, got %d", len(apps))
	}
}

func TestClient_ListApps_ActiveSinceFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": map[string]any{
				"apps": []any{
					map[string]any{"id": float64(1), "name": "old", "last_reported_at": "2024-01-01T00:00:00Z"},
					map[string]any{"id": float64(2), "name": "new", "last_reported_at": "2025-06-01T00:00:00Z"},
					map[string]any{"id": float64(3), "name": "never"},
				},
			},
		})
	}))
	defer srv.Close()

	apps, err := newTestClient(srv).ListApps(context.Background(), "2025-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("ListApps: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("expected 1 app after filtering, got %d", len(apps))
	}
	if name, _ := stringAt(apps[0], "name"); name != "new" {
		t.Fatalf("unexpected surviving app: %q", name)
	}
}

func TestClient_Unauthorized_ReturnsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).ListApps(context.Background(), "")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
}

func TestClient_ErrorStatus_ReturnsAPIErrorWithEnvelopeMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"header": map[string]any{
				"status": map[string]any{"code": float64(500), "message": "boom"},
			},
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetApp(context.Background(), 7)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "boom" || apiErr.StatusCode != 500 {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestClient_EnvelopeErrorCodeInsideOKBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"header": map[string]any{
				"status": map[string]any{"code": float64(404), "message": "App not found"},
			},
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetApp(context.Background(), 999)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != 404 {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
}

func TestClient_GetMetric_RejectsUnknownType(t *testing.T) {
	c := NewClient("k")
	if _, err := c.GetMetric(context.Background(), 1, "bogus", "", "", "7days"); err == nil {
		t.Fatal("expected validation error for unknown metric type")
	}
}

func TestClient_ListEndpoints_DefaultsWindowAndSendsRange(t *testing.T) {
	var gotFrom, gotTo string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFrom = r.URL.Query().Get("from")
		gotTo = r.URL.Query().Get("to")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": map[string]any{"endpoints": []any{}},
		})
	}))
	defer srv.Close()

	if _, err := newTestClient(srv).ListEndpoints(context.Background(), 1, "", "", ""); err != nil {
		t.Fatalf("ListEndpoints: %v", err)
	}
	if gotFrom == "" || gotTo == "" {
		t.Fatalf("expected default 7-day window, got from=%q to=%q", gotFrom, gotTo)
	}
}

func TestClient_RangeTooWideRejected(t *testing.T) {
	c := NewClient("k")
	_, err := c.ListEndpoints(context.Background(), 1, "2025-01-01T00:00:00Z", "2025-02-01T00:00:00Z", "")
	if err == nil {
		t.Fatal("expected 2-week cap violation")
	}
}

func TestClient_ListMetrics_ExtractsNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": map[string]any{
				"availableMetrics": []any{"response_time", "throughput", float64(3)},
			},
		})
	}))
	defer srv.Close()

	list, err := newTestClient(srv).ListMetrics(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListMetrics: %v", err)
	}
	if len(list) != 2 || list[0] != "response_time" || list[1] != "throughput" {
		t.Fatalf("unexpected metric list: %v", list)
	}
}
