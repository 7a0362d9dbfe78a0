// Package messaging implements direct messages between connected parents.
// Conversations are keyed by the sorted uid pair, so the first message
// between two people creates the one conversation they will ever have.
package messaging

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxBodyLen caps message length.
const MaxBodyLen = 2000

// Service errors
var (
	ErrNotFound       = errors.New("conversation not found")
	ErrNotParticipant = errors.New("not a participant in this conversation")
	ErrNotConnected   = errors.New("users are not connected")
	ErrSelfMessage    = errors.New("cannot message yourself")
	ErrEmptyBody      = errors.New("message body is empty")
	ErrBodyTooLong    = errors.New("message body too long")
	ErrBlockedContent = errors.New("message contains blocked content")
)

// Conversation is the pair-level metadata document.
type Conversation struct {
	ID           string
	Participants []string // both uids, sorted
	LastMessage  string
	LastSender   string
	UpdatedAt    time.Time
	CreatedAt    time.Time
}

// HasParticipant reports whether uid is one of the two participants.
func (c *Conversation) HasParticipant(uid string) bool {
	for _, p := range c.Participants {
		if p == uid {
			return true
		}
	}
	return false
}

// Message is one direct message inside a conversation.
type Message struct {
	ID             string
	ConversationID string
	SenderUID      string
	Body           string
	CreatedAt      time.Time
}

// ConversationID builds the deterministic conversation ID for two uids.
func ConversationID(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + "_" + b
}

// Service defines messaging operations.
//
// Implementations must enforce: sending requires an accepted connection
// between the parties, bodies pass the moderation message screen, and
// conversation metadata is updated atomically with the message write.
type Service interface {
	Send(ctx context.Context, senderUID, recipientUID, body string) (*Message, error)
	// ListConversations returns the user's conversations, most recently
	// active first.
	ListConversations(ctx context.Context, uid string, limit int) ([]*Conversation, error)
	// ListMessages returns messages newest first. uid must be a participant.
	ListMessages(ctx context.Context, conversationID, uid string, limit int) ([]*Message, error)
}

// validateBody runs the local checks shared by every implementation.
func validateBody(senderUID, recipientUID, body string) (string, error) {
	if senderUID == recipientUID {
		return "", ErrSelfMessage
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return "", ErrEmptyBody
	}
	if len(body) > MaxBodyLen {
		return "", ErrBodyTooLong
	}
	return body, nil
}
