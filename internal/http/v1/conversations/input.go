package conversations

import (
	"github.com/zipparents/backend/internal/platform/pagination"
)

// MessageSendInput for POST /conversations/messages
type MessageSendInput struct {
	Body struct {
		RecipientUID string `json:"recipientUid" minLength:"1" maxLength:"128"  required:"true" doc:"Who to message"  example:"user-456"`
		Body         string `json:"body"         minLength:"1" maxLength:"2000" required:"true" doc:"Message text"    example:"See you at the playground!"`
	}
}

// ConversationListInput for GET /conversations
type ConversationListInput struct {
	pagination.Params
}

// MessageListInput for GET /conversations/{id}/messages
type MessageListInput struct {
	ID string `path:"id" minLength:"3" maxLength:"260" doc:"Conversation ID" example:"user-123_user-456"`
	pagination.Params
}
