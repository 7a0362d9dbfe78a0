package events

import (
	"github.com/zipparents/backend/internal/platform/pagination"
	"github.com/zipparents/backend/internal/platform/timeutil"
)

// EventCreateInput for POST /events
type EventCreateInput struct {
	Body struct {
		Title       string        `json:"title"       minLength:"3" maxLength:"100" required:"true" doc:"Event title"             example:"Saturday playground meetup"`
		Description string        `json:"description" maxLength:"2000"                              doc:"Longer description"`
		ZipCode     string        `json:"zipCode"     pattern:"^\\d{5}$"            required:"true" doc:"Five-digit zip code"     example:"11201"`
		Location    string        `json:"location"    maxLength:"200"               required:"true" doc:"Human-readable location" example:"Pierrepont Playground"`
		StartsAt    timeutil.Time `json:"startsAt"                                  required:"true" doc:"Start time"              example:"2024-06-15T14:00:00.000Z"`
		EndsAt      timeutil.Time `json:"endsAt"                                    required:"true" doc:"End time"                example:"2024-06-15T16:00:00.000Z"`
		Capacity    int           `json:"capacity"    minimum:"0" maximum:"500"                     doc:"Maximum attendees, 0 for unlimited" example:"12"`
	}
}

// EventListInput for GET /events
type EventListInput struct {
	Zip string `query:"zip" required:"true" pattern:"^\\d{5}$" doc:"Zip code to search around" example:"11201"`
	pagination.Params
}

// EventGetInput for GET /events/{id}
type EventGetInput struct {
	ID string `path:"id" format:"uuid" doc:"Event ID"`
}

// EventJoinInput for POST /events/{id}/join
type EventJoinInput struct {
	ID string `path:"id" format:"uuid" doc:"Event ID"`
}

// EventLeaveInput for POST /events/{id}/leave
type EventLeaveInput struct {
	ID string `path:"id" format:"uuid" doc:"Event ID"`
}

// EventCancelInput for POST /events/{id}/cancel
type EventCancelInput struct {
	ID string `path:"id" format:"uuid" doc:"Event ID"`
}
