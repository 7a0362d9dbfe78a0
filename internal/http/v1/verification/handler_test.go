package verification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/zipparents/backend/internal/platform/auth"
	applog "github.com/zipparents/backend/internal/platform/logging"
	appmiddleware "github.com/zipparents/backend/internal/platform/middleware"
	"github.com/zipparents/backend/internal/platform/respond"
	usersvc "github.com/zipparents/backend/internal/service/user"
)

func newTestRouter(users usersvc.Service, verifier auth.Verifier) chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("VerificationTest", "test"))
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))
	Register(api, users)
	return router
}

func seededUser(t *testing.T, status usersvc.VerificationStatus) *usersvc.MockService {
	t.Helper()
	users := usersvc.NewMockService()
	users.Put(&usersvc.User{
		UID:                "test-user-123",
		Email:              "test@example.com",
		DisplayName:        "Jane D.",
		ZipCode:            "11201",
		VerificationStatus: status,
		Privacy:            usersvc.DefaultPrivacySettings(),
	})
	return users
}

func authedPost(target string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	return req
}

func TestRequestVerification(t *testing.T) {
	users := seededUser(t, usersvc.VerificationUnverified)
	router := newTestRouter(users, &auth.MockVerifier{User: auth.TestUser()})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedPost("/verification"))

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", resp.Code, resp.Body.String())
	}

	var out struct {
		VerificationStatus string `json:"verificationStatus"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if out.VerificationStatus != "pending" {
		t.Errorf("expected pending, got %s", out.VerificationStatus)
	}

	record, err := users.Get(context.Background(), "test-user-123")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if record.VerificationStatus != usersvc.VerificationPending {
		t.Errorf("status not persisted, got %s", record.VerificationStatus)
	}
}

func TestRequestVerificationRejectedMayRetry(t *testing.T) {
	users := seededUser(t, usersvc.VerificationRejected)
	router := newTestRouter(users, &auth.MockVerifier{User: auth.TestUser()})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedPost("/verification"))

	if resp.Code != http.StatusAccepted {
		t.Fatalf("rejected user should be able to retry, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRequestVerificationAlreadyVerified(t *testing.T) {
	users := seededUser(t, usersvc.VerificationVerified)
	router := newTestRouter(users, &auth.MockVerifier{User: auth.TestUser()})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedPost("/verification"))

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRequestVerificationAlreadyPending(t *testing.T) {
	users := seededUser(t, usersvc.VerificationPending)
	router := newTestRouter(users, &auth.MockVerifier{User: auth.TestUser()})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedPost("/verification"))

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRequestVerificationNoProfile(t *testing.T) {
	router := newTestRouter(usersvc.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedPost("/verification"))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRequestVerificationUnauthorized(t *testing.T) {
	router := newTestRouter(usersvc.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	req := httptest.NewRequest(http.MethodPost, "/verification", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}
