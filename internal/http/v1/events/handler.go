package events

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/zipparents/backend/internal/platform/auth"
	"github.com/zipparents/backend/internal/platform/pagination"
	eventsvc "github.com/zipparents/backend/internal/service/events"
)

const cursorType = "event"

// zipPrefixLen matches the discovery search area.
const zipPrefixLen = 3

// Register registers event endpoints.
func Register(api huma.API, svc eventsvc.Service, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-event",
		Method:        http.MethodPost,
		Path:          "/events",
		Summary:       "Create an event",
		Description:   "Creates a meetup hosted by the authenticated user. The host is the first attendee.",
		Tags:          []string{"Events"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *EventCreateInput) (*EventCreateOutput, error) {
		user := auth.UserFromContext(ctx)

		event, err := svc.Create(ctx, user.UID, eventsvc.CreateParams{
			Title:       input.Body.Title,
			Description: input.Body.Description,
			ZipCode:     input.Body.ZipCode,
			Location:    input.Body.Location,
			StartsAt:    input.Body.StartsAt.Time,
			EndsAt:      input.Body.EndsAt.Time,
			Capacity:    input.Body.Capacity,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &EventCreateOutput{
			Location: prefix + "/events/" + event.ID,
			Body:     toEvent(event),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-events",
		Method:      http.MethodGet,
		Path:        "/events",
		Summary:     "List upcoming events near a zip code",
		Description: "Returns non-canceled events in the zip area that have not ended yet, soonest first.",
		Tags:        []string{"Events"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *EventListInput) (*EventListOutput, error) {
		cursor, err := pagination.DecodeCursor(input.Cursor)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor format")
		}
		if cursor.Type != "" && cursor.Type != cursorType {
			return nil, huma.Error400BadRequest("cursor type mismatch")
		}

		// Pull a bounded window and paginate in memory, same as discovery.
		list, err := svc.ListUpcoming(ctx, input.Zip[:zipPrefixLen], 200)
		if err != nil {
			return nil, mapServiceError(err)
		}

		query := url.Values{}
		query.Set("zip", input.Zip)

		page := pagination.Paginate(
			list,
			cursor,
			input.DefaultLimit(),
			cursorType,
			func(e *eventsvc.Event) string { return e.ID },
			prefix+"/events",
			query,
		)

		out := make([]Event, len(page.Items))
		for i, e := range page.Items {
			out[i] = toEvent(e)
		}
		return &EventListOutput{
			Link: page.LinkHeader,
			Body: EventListData{Events: out, Total: page.Total},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-event",
		Method:      http.MethodGet,
		Path:        "/events/{id}",
		Summary:     "Get an event",
		Tags:        []string{"Events"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *EventGetInput) (*EventGetOutput, error) {
		event, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &EventGetOutput{Body: toEvent(event)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "join-event",
		Method:      http.MethodPost,
		Path:        "/events/{id}/join",
		Summary:     "Join an event",
		Description: "Adds the authenticated user to the attendee list if there is room.",
		Tags:        []string{"Events"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *EventJoinInput) (*EventJoinOutput, error) {
		user := auth.UserFromContext(ctx)

		event, err := svc.Join(ctx, input.ID, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &EventJoinOutput{Body: toEvent(event)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "leave-event",
		Method:      http.MethodPost,
		Path:        "/events/{id}/leave",
		Summary:     "Leave an event",
		Tags:        []string{"Events"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *EventLeaveInput) (*EventLeaveOutput, error) {
		user := auth.UserFromContext(ctx)

		event, err := svc.Leave(ctx, input.ID, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &EventLeaveOutput{Body: toEvent(event)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "cancel-event",
		Method:        http.MethodPost,
		Path:          "/events/{id}/cancel",
		Summary:       "Cancel an event",
		Description:   "Marks the event canceled. Only the host may cancel.",
		Tags:          []string{"Events"},
		DefaultStatus: http.StatusNoContent,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *EventCancelInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if err := svc.Cancel(ctx, input.ID, user.UID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, eventsvc.ErrNotFound):
		return huma.Error404NotFound("event not found")
	case errors.Is(err, eventsvc.ErrInvalidZip):
		return huma.Error422UnprocessableEntity("zip code must be exactly 5 digits")
	case errors.Is(err, eventsvc.ErrInvalidTime):
		return huma.Error422UnprocessableEntity("event must end after it starts")
	case errors.Is(err, eventsvc.ErrEventFull):
		return huma.Error409Conflict("event is at capacity")
	case errors.Is(err, eventsvc.ErrAlreadyJoined):
		return huma.Error409Conflict("already attending this event")
	case errors.Is(err, eventsvc.ErrNotAttending):
		return huma.Error409Conflict("not attending this event")
	case errors.Is(err, eventsvc.ErrNotHost):
		return huma.Error403Forbidden("only the host may do this")
	case errors.Is(err, eventsvc.ErrHostLeaving):
		return huma.Error409Conflict("the host cannot leave; cancel the event instead")
	case errors.Is(err, eventsvc.ErrCanceled):
		return huma.Error409Conflict("event is canceled")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
