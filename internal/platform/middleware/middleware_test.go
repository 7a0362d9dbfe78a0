package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityHeadersSet(t *testing.T) {
	handler := Security()(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	expected := map[string]string{
		"Cache-Control":                "no-store",
		"Content-Security-Policy":      "frame-ancestors 'none'",
		"Cross-Origin-Opener-Policy":   "same-origin",
		"Cross-Origin-Resource-Policy": "same-origin",
		"Referrer-Policy":              "strict-origin-when-cross-origin",
		"X-Content-Type-Options":       "nosniff",
		"X-Frame-Options":              "DENY",
	}
	for name, want := range expected {
		if got := resp.Header().Get(name); got != want {
			t.Errorf("header %s = %q, want %q", name, got, want)
		}
	}
}

func TestSecuritySkipsConfiguredPaths(t *testing.T) {
	handler := Security("/api-docs")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api-docs", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if got := resp.Header().Get("Content-Security-Policy"); got != "" {
		t.Errorf("expected no CSP on skipped path, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if got := resp.Header().Get("Content-Security-Policy"); got == "" {
		t.Error("expected CSP on non-skipped path")
	}
}

func TestVaryAddsAccept(t *testing.T) {
	handler := Vary()(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	found := false
	for _, v := range resp.Header().Values("Vary") {
		if strings.Contains(v, "Accept") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Vary: Accept, got %v", resp.Header().Values("Vary"))
	}
}

func TestRequestIDGenerated(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = chimiddleware.GetReqID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen == "" {
		t.Fatal("expected request ID in context")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected generated ID to be a UUID, got %q", seen)
	}
	if got := resp.Header().Get(chimiddleware.RequestIDHeader); got != seen {
		t.Fatalf("response header %q should match context ID %q", got, seen)
	}
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	handler := RequestID()(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "client-req-42")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if got := resp.Header().Get(chimiddleware.RequestIDHeader); got != "client-req-42" {
		t.Fatalf("expected client request ID to be reused, got %q", got)
	}
}

func TestRequestIDReplacesInvalidHeader(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"control characters", "bad\nid"},
		{"non-ascii", "идентификатор"},
		{"too long", strings.Repeat("a", maxRequestIDLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequestID()(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(chimiddleware.RequestIDHeader, tt.id)
			resp := httptest.NewRecorder()
			handler.ServeHTTP(resp, req)

			got := resp.Header().Get(chimiddleware.RequestIDHeader)
			if got == tt.id {
				t.Fatalf("invalid ID %q should be replaced", tt.id)
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("replacement should be a UUID, got %q", got)
			}
		})
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://zipparents.com"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/profile", nil)
	req.Header.Set("Origin", "https://zipparents.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://zipparents.com" {
		t.Fatalf("expected origin to be allowed, got %q", got)
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	handler := CORS([]string{"https://zipparents.com"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/profile", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected unknown origin to be rejected, got %q", got)
	}
}

func TestCORSDefaultsToWildcard(t *testing.T) {
	handler := CORS(nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin for empty config, got %q", got)
	}
}

func TestRequestIDValidation(t *testing.T) {
	if !isValidRequestID("abc-123") {
		t.Error("plain ASCII ID should be valid")
	}
	if isValidRequestID("") {
		t.Error("empty ID should be invalid")
	}
	if isValidRequestID("tab\tid") {
		t.Error("control characters should be invalid")
	}
}
