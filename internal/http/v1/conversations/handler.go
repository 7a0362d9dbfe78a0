package conversations

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/zipparents/backend/internal/platform/auth"
	"github.com/zipparents/backend/internal/platform/pagination"
	messagingsvc "github.com/zipparents/backend/internal/service/messaging"
)

const (
	conversationCursorType = "conversation"
	messageCursorType      = "message"
)

// Register registers messaging endpoints.
func Register(api huma.API, svc messagingsvc.Service, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID:   "send-message",
		Method:        http.MethodPost,
		Path:          "/conversations/messages",
		Summary:       "Send a direct message",
		Description:   "Delivers a message to a connected parent, creating the conversation on first contact. Requires an accepted connection.",
		Tags:          []string{"Messaging"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *MessageSendInput) (*MessageSendOutput, error) {
		user := auth.UserFromContext(ctx)

		msg, err := svc.Send(ctx, user.UID, input.Body.RecipientUID, input.Body.Body)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &MessageSendOutput{Body: toMessage(msg)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-conversations",
		Method:      http.MethodGet,
		Path:        "/conversations",
		Summary:     "List conversations",
		Description: "Returns the authenticated user's conversations, most recently active first.",
		Tags:        []string{"Messaging"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ConversationListInput) (*ConversationListOutput, error) {
		user := auth.UserFromContext(ctx)

		cursor, err := pagination.DecodeCursor(input.Cursor)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor format")
		}
		if cursor.Type != "" && cursor.Type != conversationCursorType {
			return nil, huma.Error400BadRequest("cursor type mismatch")
		}

		list, err := svc.ListConversations(ctx, user.UID, 200)
		if err != nil {
			return nil, mapServiceError(err)
		}

		page := pagination.Paginate(
			list,
			cursor,
			input.DefaultLimit(),
			conversationCursorType,
			func(c *messagingsvc.Conversation) string { return c.ID },
			prefix+"/conversations",
			url.Values{},
		)

		out := make([]Conversation, len(page.Items))
		for i, c := range page.Items {
			out[i] = toConversation(c)
		}
		return &ConversationListOutput{
			Link: page.LinkHeader,
			Body: ConversationListData{Conversations: out, Total: page.Total},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-messages",
		Method:      http.MethodGet,
		Path:        "/conversations/{id}/messages",
		Summary:     "List messages in a conversation",
		Description: "Returns messages newest first. Only participants may read a conversation.",
		Tags:        []string{"Messaging"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *MessageListInput) (*MessageListOutput, error) {
		user := auth.UserFromContext(ctx)

		cursor, err := pagination.DecodeCursor(input.Cursor)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor format")
		}
		if cursor.Type != "" && cursor.Type != messageCursorType {
			return nil, huma.Error400BadRequest("cursor type mismatch")
		}

		list, err := svc.ListMessages(ctx, input.ID, user.UID, 200)
		if err != nil {
			return nil, mapServiceError(err)
		}

		page := pagination.Paginate(
			list,
			cursor,
			input.DefaultLimit(),
			messageCursorType,
			func(m *messagingsvc.Message) string { return m.ID },
			prefix+"/conversations/"+input.ID+"/messages",
			url.Values{},
		)

		out := make([]Message, len(page.Items))
		for i, m := range page.Items {
			out[i] = toMessage(m)
		}
		return &MessageListOutput{
			Link: page.LinkHeader,
			Body: MessageListData{Messages: out, Total: page.Total},
		}, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, messagingsvc.ErrNotFound):
		return huma.Error404NotFound("conversation not found")
	case errors.Is(err, messagingsvc.ErrNotParticipant):
		return huma.Error403Forbidden("not a participant in this conversation")
	case errors.Is(err, messagingsvc.ErrNotConnected):
		return huma.Error403Forbidden("messaging requires an accepted connection")
	case errors.Is(err, messagingsvc.ErrSelfMessage):
		return huma.Error422UnprocessableEntity("cannot message yourself")
	case errors.Is(err, messagingsvc.ErrEmptyBody):
		return huma.Error422UnprocessableEntity("message body is empty")
	case errors.Is(err, messagingsvc.ErrBodyTooLong):
		return huma.Error422UnprocessableEntity("message body too long")
	case errors.Is(err, messagingsvc.ErrBlockedContent):
		return huma.Error422UnprocessableEntity("message contains blocked content")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
