package conversations

import (
	"github.com/zipparents/backend/internal/platform/timeutil"
	messagingsvc "github.com/zipparents/backend/internal/service/messaging"
)

// Conversation is the pair-level metadata for a message thread.
type Conversation struct {
	ID           string        `json:"id"           doc:"Conversation ID, derived from the uid pair" example:"user-123_user-456"`
	Participants []string      `json:"participants" doc:"Both participant user IDs"`
	LastMessage  string        `json:"lastMessage"  doc:"Most recent message body"                   example:"See you at the playground!"`
	LastSender   string        `json:"lastSender"   doc:"Who sent the most recent message"           example:"user-123"`
	UpdatedAt    timeutil.Time `json:"updatedAt"    doc:"Last activity timestamp"                    example:"2024-01-15T10:30:00.000Z"`
	CreatedAt    timeutil.Time `json:"createdAt"    doc:"When the first message was sent"            example:"2024-01-10T09:00:00.000Z"`
}

// Message is one direct message.
type Message struct {
	ID             string        `json:"id"             doc:"Message ID"`
	ConversationID string        `json:"conversationId" doc:"Conversation this belongs to" example:"user-123_user-456"`
	SenderUID      string        `json:"senderUid"      doc:"Who sent it"                  example:"user-123"`
	Body           string        `json:"body"           doc:"Message text"                 example:"See you at the playground!"`
	CreatedAt      timeutil.Time `json:"createdAt"      doc:"Send timestamp"               example:"2024-01-15T10:30:00.000Z"`
}

func toConversation(c *messagingsvc.Conversation) Conversation {
	return Conversation{
		ID:           c.ID,
		Participants: c.Participants,
		LastMessage:  c.LastMessage,
		LastSender:   c.LastSender,
		UpdatedAt:    timeutil.Time{Time: c.UpdatedAt},
		CreatedAt:    timeutil.Time{Time: c.CreatedAt},
	}
}

func toMessage(m *messagingsvc.Message) Message {
	return Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderUID:      m.SenderUID,
		Body:           m.Body,
		CreatedAt:      timeutil.Time{Time: m.CreatedAt},
	}
}
