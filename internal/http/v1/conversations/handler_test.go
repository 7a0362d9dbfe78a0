package conversations

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
	messagingsvc "github.com/zipparents/backend/internal/service/messaging"
)

func newTestRouter(svc messagingsvc.Service, verifier auth.Verifier) chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("ConversationsTest", "test"))
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))
	Register(api, svc, "")
	return router
}

// connectedMessaging builds a messaging mock where the caller is connected to
// each of the given uids.
func connectedMessaging(uids ...string) *messagingsvc.MockService {
	conns := connsvc.NewMockService()
	for _, uid := range uids {
		conns.Seed(&connsvc.Connection{
			RequesterUID: "test-user-123",
			RecipientUID: uid,
			Status:       connsvc.StatusAccepted,
		})
	}
	return messagingsvc.NewMockService(conns)
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

func TestSendMessage(t *testing.T) {
	svc := connectedMessaging("friend-456")
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	body := `{"recipientUid":"friend-456","body":"See you at the playground!"}`
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/conversations/messages", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var msg Message
	if err := json.Unmarshal(resp.Body.Bytes(), &msg); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if msg.SenderUID != "test-user-123" {
		t.Errorf("expected caller as sender, got %s", msg.SenderUID)
	}
	if msg.ConversationID != messagingsvc.ConversationID("test-user-123", "friend-456") {
		t.Errorf("unexpected conversation ID %s", msg.ConversationID)
	}
	if msg.Body != "See you at the playground!" {
		t.Errorf("unexpected body %q", msg.Body)
	}
}

func TestSendMessageNotConnected(t *testing.T) {
	svc := messagingsvc.NewMockService(connsvc.NewMockService())
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	body := `{"recipientUid":"stranger-789","body":"hello"}`
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/conversations/messages", body))

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without connection, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSendMessagePendingConnection(t *testing.T) {
	conns := connsvc.NewMockService()
	conns.Seed(&connsvc.Connection{
		RequesterUID: "test-user-123",
		RecipientUID: "maybe-456",
		Status:       connsvc.StatusPending,
	})
	svc := messagingsvc.NewMockService(conns)
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	body := `{"recipientUid":"maybe-456","body":"hello"}`
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/conversations/messages", body))

	if resp.Code != http.StatusForbidden {
		t.Fatalf("pending connection must not allow messaging, got %d", resp.Code)
	}
}

func TestSendMessageToSelf(t *testing.T) {
	svc := connectedMessaging()
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	body := `{"recipientUid":"test-user-123","body":"hello me"}`
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/conversations/messages", body))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSendMessageBlockedContent(t *testing.T) {
	svc := connectedMessaging("friend-456")
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	body := `{"recipientUid":"friend-456","body":"what an asshole"}`
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/conversations/messages", body))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for blocked content, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestListConversations(t *testing.T) {
	svc := connectedMessaging("friend-456", "friend-789")
	ctx := context.Background()
	if _, err := svc.Send(ctx, "test-user-123", "friend-456", "first thread"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.Send(ctx, "test-user-123", "friend-789", "second thread"); err != nil {
		t.Fatalf("send: %v", err)
	}
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodGet, "/conversations", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var data ConversationListData
	if err := json.Unmarshal(resp.Body.Bytes(), &data); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if data.Total != 2 {
		t.Fatalf("expected 2 conversations, got %d", data.Total)
	}
	// Most recently active first.
	if data.Conversations[0].LastMessage != "second thread" {
		t.Errorf("expected newest conversation first, got %q", data.Conversations[0].LastMessage)
	}
}

func TestListMessages(t *testing.T) {
	svc := connectedMessaging("friend-456")
	ctx := context.Background()
	for _, body := range []string{"one", "two", "three"} {
		if _, err := svc.Send(ctx, "test-user-123", "friend-456", body); err != nil {
			t.Fatalf("send: %v", err)
		}
	}
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	convID := messagingsvc.ConversationID("test-user-123", "friend-456")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodGet, "/conversations/"+convID+"/messages", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var data MessageListData
	if err := json.Unmarshal(resp.Body.Bytes(), &data); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if data.Total != 3 {
		t.Fatalf("expected 3 messages, got %d", data.Total)
	}
	if data.Messages[0].Body != "three" {
		t.Errorf("expected newest message first, got %q", data.Messages[0].Body)
	}
}

func TestListMessagesNotParticipant(t *testing.T) {
	conns := connsvc.NewMockService()
	conns.Seed(&connsvc.Connection{
		RequesterUID: "alice",
		RecipientUID: "bob",
		Status:       connsvc.StatusAccepted,
	})
	svc := messagingsvc.NewMockService(conns)
	if _, err := svc.Send(context.Background(), "alice", "bob", "private"); err != nil {
		t.Fatalf("send: %v", err)
	}
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	convID := messagingsvc.ConversationID("alice", "bob")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodGet, "/conversations/"+convID+"/messages", ""))

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for outsider, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestListMessagesUnknownConversation(t *testing.T) {
	svc := connectedMessaging()
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodGet, "/conversations/nobody_nowhere/messages", ""))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestConversationsUnauthorized(t *testing.T) {
	router := newTestRouter(connectedMessaging(), &auth.MockVerifier{User: auth.TestUser()})

	req := httptest.NewRequest(http.MethodGet, "/conversations", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}
