package messaging

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zipparents/backend/internal/service/connections"
	"github.com/zipparents/backend/internal/service/moderation"
)

// MockService implements Service in memory for unit tests.
type MockService struct {
	mu            sync.Mutex
	conversations map[string]*Conversation
	messages      map[string][]*Message
	connections   connections.Service

	// FailWith forces every call to return this error when set.
	FailWith error
}

// NewMockService creates a new mock messaging service. conns may be a
// connections.MockService seeded with accepted pairs.
func NewMockService(conns connections.Service) *MockService {
	return &MockService{
		conversations: make(map[string]*Conversation),
		messages:      make(map[string][]*Message),
		connections:   conns,
	}
}

func (m *MockService) Send(ctx context.Context, senderUID, recipientUID, body string) (*Message, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	body, err := validateBody(senderUID, recipientUID, body)
	if err != nil {
		return nil, err
	}

	connected, err := m.connections.Connected(ctx, senderUID, recipientUID)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, ErrNotConnected
	}
	if res := moderation.ScreenMessage(body); !res.Clean {
		return nil, ErrBlockedContent
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	convID := ConversationID(senderUID, recipientUID)
	now := time.Now().UTC()
	conv, ok := m.conversations[convID]
	if !ok {
		conv = &Conversation{
			ID:           convID,
			Participants: participants(senderUID, recipientUID),
			CreatedAt:    now,
		}
		m.conversations[convID] = conv
	}
	conv.LastMessage = body
	conv.LastSender = senderUID
	conv.UpdatedAt = now

	msg := &Message{
		ID:             uuid.NewString(),
		ConversationID: convID,
		SenderUID:      senderUID,
		Body:           body,
		CreatedAt:      now,
	}
	m.messages[convID] = append(m.messages[convID], msg)
	cp := *msg
	return &cp, nil
}

func (m *MockService) ListConversations(_ context.Context, uid string, limit int) ([]*Conversation, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*Conversation
	for _, c := range m.conversations {
		if c.HasParticipant(uid) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockService) ListMessages(_ context.Context, conversationID, uid string, limit int) ([]*Message, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.conversations[conversationID]
	if !ok {
		return nil, ErrNotFound
	}
	if !conv.HasParticipant(uid) {
		return nil, ErrNotParticipant
	}

	msgs := m.messages[conversationID]
	out := make([]*Message, 0, len(msgs))
	for i := len(msgs) - 1; i >= 0; i-- {
		cp := *msgs[i]
		out = append(out, &cp)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
