package connections

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/zipparents/backend/internal/platform/auth"
	applog "github.com/zipparents/backend/internal/platform/logging"
	appmiddleware "github.com/zipparents/backend/internal/platform/middleware"
	"github.com/zipparents/backend/internal/platform/respond"
	connsvc "github.com/zipparents/backend/internal/service/connections"
)

func newTestRouter(svc connsvc.Service, verifier auth.Verifier) chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("ConnectionsTest", "test"))
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))
	Register(api, svc, "")
	return router
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer valid-token")
	return req
}

func TestRequestConnection(t *testing.T) {
	svc := connsvc.NewMockService()
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	body := `{"recipientUid":"neighbor-456"}`
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/connections", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var conn Connection
	if err := json.Unmarshal(resp.Body.Bytes(), &conn); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if conn.RequesterUID != "test-user-123" || conn.RecipientUID != "neighbor-456" {
		t.Errorf("unexpected participants: %+v", conn)
	}
	if conn.Status != "pending" {
		t.Errorf("new request should be pending, got %s", conn.Status)
	}
	if loc := resp.Header().Get("Location"); loc != "/connections/"+conn.ID {
		t.Errorf("expected Location header, got %q", loc)
	}
}

func TestRequestConnectionToSelf(t *testing.T) {
	router := newTestRouter(connsvc.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	body := `{"recipientUid":"test-user-123"}`
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/connections", body))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRequestConnectionDuplicate(t *testing.T) {
	svc := connsvc.NewMockService()
	svc.Seed(&connsvc.Connection{
		RequesterUID: "neighbor-456",
		RecipientUID: "test-user-123",
		Status:       connsvc.StatusPending,
	})
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	// Same pair in the other direction still conflicts.
	body := `{"recipientUid":"neighbor-456"}`
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/connections", body))

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAcceptConnection(t *testing.T) {
	svc := connsvc.NewMockService()
	svc.Seed(&connsvc.Connection{
		RequesterUID: "neighbor-456",
		RecipientUID: "test-user-123",
		Status:       connsvc.StatusPending,
	})
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	id := connsvc.PairID("neighbor-456", "test-user-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/connections/"+id+"/accept", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var conn Connection
	if err := json.Unmarshal(resp.Body.Bytes(), &conn); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if conn.Status != "accepted" {
		t.Errorf("expected accepted, got %s", conn.Status)
	}

	connected, err := svc.Connected(context.Background(), "neighbor-456", "test-user-123")
	if err != nil || !connected {
		t.Errorf("pair should be connected after accept: %v %v", connected, err)
	}
}

func TestDeclineConnection(t *testing.T) {
	svc := connsvc.NewMockService()
	svc.Seed(&connsvc.Connection{
		RequesterUID: "neighbor-456",
		RecipientUID: "test-user-123",
		Status:       connsvc.StatusPending,
	})
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	id := connsvc.PairID("neighbor-456", "test-user-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/connections/"+id+"/decline", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var conn Connection
	if err := json.Unmarshal(resp.Body.Bytes(), &conn); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if conn.Status != "declined" {
		t.Errorf("expected declined, got %s", conn.Status)
	}
}

func TestRespondOnlyRecipient(t *testing.T) {
	svc := connsvc.NewMockService()
	// The caller is the requester here, not the recipient.
	svc.Seed(&connsvc.Connection{
		RequesterUID: "test-user-123",
		RecipientUID: "neighbor-456",
		Status:       connsvc.StatusPending,
	})
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	id := connsvc.PairID("test-user-123", "neighbor-456")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/connections/"+id+"/accept", ""))

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRespondNotPending(t *testing.T) {
	svc := connsvc.NewMockService()
	svc.Seed(&connsvc.Connection{
		RequesterUID: "neighbor-456",
		RecipientUID: "test-user-123",
		Status:       connsvc.StatusAccepted,
	})
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	id := connsvc.PairID("neighbor-456", "test-user-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/connections/"+id+"/accept", ""))

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestListConnections(t *testing.T) {
	svc := connsvc.NewMockService()
	svc.Seed(&connsvc.Connection{
		RequesterUID: "test-user-123",
		RecipientUID: "friend-1",
		Status:       connsvc.StatusAccepted,
	})
	svc.Seed(&connsvc.Connection{
		RequesterUID: "friend-2",
		RecipientUID: "test-user-123",
		Status:       connsvc.StatusPending,
	})
	svc.Seed(&connsvc.Connection{
		RequesterUID: "alice",
		RecipientUID: "bob",
		Status:       connsvc.StatusAccepted,
	})
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodGet, "/connections", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var data ConnectionListData
	if err := json.Unmarshal(resp.Body.Bytes(), &data); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if data.Total != 2 {
		t.Fatalf("expected 2 connections for the caller, got %d", data.Total)
	}
	for _, c := range data.Connections {
		if c.RequesterUID != "test-user-123" && c.RecipientUID != "test-user-123" {
			t.Errorf("stranger's connection leaked: %+v", c)
		}
	}
}

func TestRemoveConnection(t *testing.T) {
	svc := connsvc.NewMockService()
	svc.Seed(&connsvc.Connection{
		RequesterUID: "test-user-123",
		RecipientUID: "friend-1",
		Status:       connsvc.StatusAccepted,
	})
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	id := connsvc.PairID("test-user-123", "friend-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodDelete, "/connections/"+id, ""))

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", resp.Code, resp.Body.String())
	}

	if _, err := svc.Get(context.Background(), id); err == nil {
		t.Error("expected connection gone after removal")
	}
}

func TestRemoveConnectionOutsider(t *testing.T) {
	svc := connsvc.NewMockService()
	svc.Seed(&connsvc.Connection{
		RequesterUID: "alice",
		RecipientUID: "bob",
		Status:       connsvc.StatusAccepted,
	})
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	id := connsvc.PairID("alice", "bob")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodDelete, "/connections/"+id, ""))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("outsider removal should read as 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestConnectionsUnauthorized(t *testing.T) {
	router := newTestRouter(connsvc.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	req := httptest.NewRequest(http.MethodGet, "/connections", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}
