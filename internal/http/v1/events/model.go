package events

import (
	"github.com/zipparents/backend/internal/platform/timeutil"
	eventsvc "github.com/zipparents/backend/internal/service/events"
)

// Event is one hosted meetup.
type Event struct {
	ID          string        `json:"id"          doc:"Event ID"                       example:"b2f7c9d0-1a2b-4c3d-8e9f-0a1b2c3d4e5f"`
	HostUID     string        `json:"hostUid"     doc:"Host's user ID"                 example:"user-123"`
	Title       string        `json:"title"       doc:"Event title"                    example:"Saturday playground meetup"`
	Description string        `json:"description" doc:"Longer description"`
	ZipCode     string        `json:"zipCode"     doc:"Five-digit zip code"            example:"11201"`
	Location    string        `json:"location"    doc:"Human-readable location"        example:"Pierrepont Playground"`
	StartsAt    timeutil.Time `json:"startsAt"    doc:"Start time"                     example:"2024-06-15T14:00:00.000Z"`
	EndsAt      timeutil.Time `json:"endsAt"      doc:"End time"                       example:"2024-06-15T16:00:00.000Z"`
	Capacity    int           `json:"capacity"    doc:"Maximum attendees, 0 unlimited" example:"12"`
	Attendees   []string      `json:"attendees"   doc:"Attendee user IDs, host included"`
	Canceled    bool          `json:"canceled"    doc:"Whether the host canceled"      example:"false"`
	CreatedAt   timeutil.Time `json:"createdAt"   doc:"Creation timestamp"             example:"2024-06-01T10:30:00.000Z"`
	UpdatedAt   timeutil.Time `json:"updatedAt"   doc:"Last update timestamp"          example:"2024-06-01T10:30:00.000Z"`
}

func toEvent(e *eventsvc.Event) Event {
	return Event{
		ID:          e.ID,
		HostUID:     e.HostUID,
		Title:       e.Title,
		Description: e.Description,
		ZipCode:     e.ZipCode,
		Location:    e.Location,
		StartsAt:    timeutil.Time{Time: e.StartsAt},
		EndsAt:      timeutil.Time{Time: e.EndsAt},
		Capacity:    e.Capacity,
		Attendees:   e.Attendees,
		Canceled:    e.Canceled,
		CreatedAt:   timeutil.Time{Time: e.CreatedAt},
		UpdatedAt:   timeutil.Time{Time: e.UpdatedAt},
	}
}
