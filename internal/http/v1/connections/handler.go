package connections

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/zipparents/backend/internal/platform/auth"
	"github.com/zipparents/backend/internal/platform/pagination"
	connsvc "github.com/zipparents/backend/internal/service/connections"
)

const cursorType = "connection"

// Register registers connection endpoints.
func Register(api huma.API, svc connsvc.Service, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID:   "request-connection",
		Method:        http.MethodPost,
		Path:          "/connections",
		Summary:       "Request a connection",
		Description:   "Sends a connection request to another parent. A declined connection may be re-requested.",
		Tags:          []string{"Connections"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ConnectionRequestInput) (*ConnectionRequestOutput, error) {
		user := auth.UserFromContext(ctx)

		conn, err := svc.Request(ctx, user.UID, input.Body.RecipientUID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ConnectionRequestOutput{
			Location: prefix + "/connections/" + conn.ID,
			Body:     toConnection(conn),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-connections",
		Method:      http.MethodGet,
		Path:        "/connections",
		Summary:     "List connections",
		Description: "Returns the authenticated user's connections, newest activity first.",
		Tags:        []string{"Connections"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ConnectionListInput) (*ConnectionListOutput, error) {
		user := auth.UserFromContext(ctx)

		cursor, err := pagination.DecodeCursor(input.Cursor)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor format")
		}
		if cursor.Type != "" && cursor.Type != cursorType {
			return nil, huma.Error400BadRequest("cursor type mismatch")
		}

		list, err := svc.ListForUser(ctx, user.UID, 200)
		if err != nil {
			return nil, mapServiceError(err)
		}

		page := pagination.Paginate(
			list,
			cursor,
			input.DefaultLimit(),
			cursorType,
			func(c *connsvc.Connection) string { return c.ID },
			prefix+"/connections",
			url.Values{},
		)

		out := make([]Connection, len(page.Items))
		for i, c := range page.Items {
			out[i] = toConnection(c)
		}
		return &ConnectionListOutput{
			Link: page.LinkHeader,
			Body: ConnectionListData{Connections: out, Total: page.Total},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "accept-connection",
		Method:      http.MethodPost,
		Path:        "/connections/{id}/accept",
		Summary:     "Accept a connection request",
		Tags:        []string{"Connections"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ConnectionRespondInput) (*ConnectionRespondOutput, error) {
		user := auth.UserFromContext(ctx)

		conn, err := svc.Respond(ctx, input.ID, user.UID, true)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ConnectionRespondOutput{Body: toConnection(conn)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "decline-connection",
		Method:      http.MethodPost,
		Path:        "/connections/{id}/decline",
		Summary:     "Decline a connection request",
		Tags:        []string{"Connections"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ConnectionRespondInput) (*ConnectionRespondOutput, error) {
		user := auth.UserFromContext(ctx)

		conn, err := svc.Respond(ctx, input.ID, user.UID, false)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ConnectionRespondOutput{Body: toConnection(conn)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "remove-connection",
		Method:        http.MethodDelete,
		Path:          "/connections/{id}",
		Summary:       "Remove a connection",
		Description:   "Deletes the connection entirely. Either participant may remove it.",
		Tags:          []string{"Connections"},
		DefaultStatus: http.StatusNoContent,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ConnectionRemoveInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if err := svc.Remove(ctx, input.ID, user.UID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, connsvc.ErrNotFound):
		return huma.Error404NotFound("connection not found")
	case errors.Is(err, connsvc.ErrSelfConnection):
		return huma.Error422UnprocessableEntity("cannot connect with yourself")
	case errors.Is(err, connsvc.ErrAlreadyExists):
		return huma.Error409Conflict("connection already exists")
	case errors.Is(err, connsvc.ErrNotRecipient):
		return huma.Error403Forbidden("only the recipient may respond")
	case errors.Is(err, connsvc.ErrNotPending):
		return huma.Error409Conflict("connection is not pending")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
