package connections

import (
	"github.com/zipparents/backend/internal/platform/timeutil"
	connsvc "github.com/zipparents/backend/internal/service/connections"
)

// Connection links two parents.
type Connection struct {
	ID           string        `json:"id"           doc:"Connection ID, derived from the uid pair" example:"user-123_user-456"`
	RequesterUID string        `json:"requesterUid" doc:"Who sent the request"                     example:"user-123"`
	RecipientUID string        `json:"recipientUid" doc:"Who received the request"                 example:"user-456"`
	Status       string        `json:"status"       doc:"Connection status"                        example:"pending" enum:"pending,accepted,declined"`
	CreatedAt    timeutil.Time `json:"createdAt"    doc:"When the request was sent"                example:"2024-01-15T10:30:00.000Z"`
	RespondedAt  timeutil.Time `json:"respondedAt"  doc:"When the recipient responded"             example:"2024-01-16T08:00:00.000Z"`
}

func toConnection(c *connsvc.Connection) Connection {
	return Connection{
		ID:           c.ID,
		RequesterUID: c.RequesterUID,
		RecipientUID: c.RecipientUID,
		Status:       string(c.Status),
		CreatedAt:    timeutil.Time{Time: c.CreatedAt},
		RespondedAt:  timeutil.Time{Time: c.RespondedAt},
	}
}
