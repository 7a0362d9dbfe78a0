package messaging

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/zipparents/backend/internal/platform/logging"
	"github.com/zipparents/backend/internal/service/connections"
	"github.com/zipparents/backend/internal/service/moderation"
)

const (
	conversationsCollection = "conversations"
	messagesSubcollection   = "messages"

	defaultListLimit = 50
)

type firestoreConversation struct {
	Participants []string  `firestore:"participants"`
	LastMessage  string    `firestore:"last_message"`
	LastSender   string    `firestore:"last_sender"`
	UpdatedAt    time.Time `firestore:"updated_at"`
	CreatedAt    time.Time `firestore:"created_at"`
}

func (fc *firestoreConversation) decode(id string) *Conversation {
	return &Conversation{
		ID:           id,
		Participants: fc.Participants,
		LastMessage:  fc.LastMessage,
		LastSender:   fc.LastSender,
		UpdatedAt:    fc.UpdatedAt,
		CreatedAt:    fc.CreatedAt,
	}
}

type firestoreMessage struct {
	SenderUID string    `firestore:"sender_uid"`
	Body      string    `firestore:"body"`
	CreatedAt time.Time `firestore:"created_at"`
}

// FirestoreStore implements Service using Firestore. Messages live in a
// subcollection under their conversation document.
type FirestoreStore struct {
	client      *firestore.Client
	connections connections.Service
}

// NewFirestoreStore creates a new Firestore-backed messaging service.
func NewFirestoreStore(client *firestore.Client, conns connections.Service) *FirestoreStore {
	return &FirestoreStore{client: client, connections: conns}
}

// Send delivers a message. The conversation document and the message are
// written in one transaction so the metadata never lags behind.
func (s *FirestoreStore) Send(ctx context.Context, senderUID, recipientUID, body string) (*Message, error) {
	body, err := validateBody(senderUID, recipientUID, body)
	if err != nil {
		return nil, err
	}

	connected, err := s.connections.Connected(ctx, senderUID, recipientUID)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, ErrNotConnected
	}

	if res := moderation.ScreenMessage(body); !res.Clean {
		applog.LogAuditEvent(ctx, "message_blocked", senderUID, "conversation",
			ConversationID(senderUID, recipientUID), "failure",
			map[string]any{"matches": len(res.Matches)})
		return nil, ErrBlockedContent
	}

	convID := ConversationID(senderUID, recipientUID)
	convRef := s.client.Collection(conversationsCollection).Doc(convID)
	msgRef := convRef.Collection(messagesSubcollection).Doc(uuid.NewString())
	now := time.Now().UTC()

	msg := &Message{
		ID:             msgRef.ID,
		ConversationID: convID,
		SenderUID:      senderUID,
		Body:           body,
		CreatedAt:      now,
	}

	err = s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(convRef)
		conv := firestoreConversation{
			Participants: participants(senderUID, recipientUID),
			CreatedAt:    now,
		}
		switch {
		case err == nil:
			if err := doc.DataTo(&conv); err != nil {
				return err
			}
		case status.Code(err) == codes.NotFound:
			// first message between this pair; conversation created below
		default:
			return err
		}

		conv.LastMessage = body
		conv.LastSender = senderUID
		conv.UpdatedAt = now

		if err := tx.Set(convRef, conv); err != nil {
			return err
		}
		return tx.Set(msgRef, firestoreMessage{
			SenderUID: senderUID,
			Body:      body,
			CreatedAt: now,
		})
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "message_send", senderUID, "conversation", convID, "failure", nil)
		return nil, err
	}

	applog.LogAuditEvent(ctx, "message_send", senderUID, "conversation", convID, "success", nil)
	return msg, nil
}

// ListConversations returns the user's conversations, most recently active
// first.
func (s *FirestoreStore) ListConversations(ctx context.Context, uid string, limit int) ([]*Conversation, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	iter := s.client.Collection(conversationsCollection).
		Where("participants", "array-contains", uid).
		OrderBy("updated_at", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var out []*Conversation
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var fc firestoreConversation
		if err := doc.DataTo(&fc); err != nil {
			return nil, err
		}
		out = append(out, fc.decode(doc.Ref.ID))
	}
	return out, nil
}

// ListMessages returns messages in a conversation, newest first. The caller
// must be a participant.
func (s *FirestoreStore) ListMessages(ctx context.Context, conversationID, uid string, limit int) ([]*Message, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	convRef := s.client.Collection(conversationsCollection).Doc(conversationID)
	doc, err := convRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var fc firestoreConversation
	if err := doc.DataTo(&fc); err != nil {
		return nil, err
	}
	if !fc.decode(conversationID).HasParticipant(uid) {
		return nil, ErrNotParticipant
	}

	iter := convRef.Collection(messagesSubcollection).
		OrderBy("created_at", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var out []*Message
	for {
		mdoc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var fm firestoreMessage
		if err := mdoc.DataTo(&fm); err != nil {
			return nil, err
		}
		out = append(out, &Message{
			ID:             mdoc.Ref.ID,
			ConversationID: conversationID,
			SenderUID:      fm.SenderUID,
			Body:           fm.Body,
			CreatedAt:      fm.CreatedAt,
		})
	}
	return out, nil
}

func participants(a, b string) []string {
	if a > b {
		a, b = b, a
	}
	return []string{a, b}
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
