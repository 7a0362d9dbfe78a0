package connections

import (
	"github.com/zipparents/backend/internal/platform/pagination"
)

// ConnectionRequestInput for POST /connections
type ConnectionRequestInput struct {
	Body struct {
		RecipientUID string `json:"recipientUid" minLength:"1" maxLength:"128" required:"true" doc:"User to connect with" example:"user-456"`
	}
}

// ConnectionListInput for GET /connections
type ConnectionListInput struct {
	pagination.Params
}

// ConnectionRespondInput for POST /connections/{id}/accept and /decline
type ConnectionRespondInput struct {
	ID string `path:"id" minLength:"3" maxLength:"260" doc:"Connection ID" example:"user-123_user-456"`
}

// ConnectionRemoveInput for DELETE /connections/{id}
type ConnectionRemoveInput struct {
	ID string `path:"id" minLength:"3" maxLength:"260" doc:"Connection ID" example:"user-123_user-456"`
}
