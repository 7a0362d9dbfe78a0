package conversations

// MessageSendOutput for POST /conversations/messages (201 Created)
type MessageSendOutput struct {
	Body Message
}

// ConversationListData is the body for GET /conversations.
type ConversationListData struct {
	Conversations []Conversation `json:"conversations" doc:"Conversations, most recently active first"`
	Total         int            `json:"total"         doc:"Total before pagination" example:"5"`
}

// ConversationListOutput for GET /conversations
type ConversationListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body ConversationListData
}

// MessageListData is the body for GET /conversations/{id}/messages.
type MessageListData struct {
	Messages []Message `json:"messages" doc:"Messages, newest first"`
	Total    int       `json:"total"    doc:"Total before pagination" example:"40"`
}

// MessageListOutput for GET /conversations/{id}/messages
type MessageListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body MessageListData
}
