package discovery

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/zipparents/backend/internal/http/v1/profiles"
	"github.com/zipparents/backend/internal/platform/auth"
	"github.com/zipparents/backend/internal/platform/pagination"
	discoverysvc "github.com/zipparents/backend/internal/service/discovery"
	usersvc "github.com/zipparents/backend/internal/service/user"
)

const cursorType = "profile"

// Register registers the discovery endpoint.
func Register(api huma.API, svc *discoverysvc.Service, users usersvc.Service, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "search-profiles",
		Method:      http.MethodGet,
		Path:        "/discovery",
		Summary:     "Find parents near a zip code",
		Description: "Returns profiles visible to the viewer, ranked ascending by distance with unknown distances last. Use the cursor from the Link header to navigate between pages.",
		Tags:        []string{"Discovery"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
		viewer := auth.UserFromContext(ctx)

		cursor, err := pagination.DecodeCursor(input.Cursor)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor format")
		}
		if cursor.Type != "" && cursor.Type != cursorType {
			return nil, huma.Error400BadRequest("cursor type mismatch")
		}

		viewerRecord, err := users.Get(ctx, viewer.UID)
		if err != nil && !errors.Is(err, usersvc.ErrNotFound) {
			return nil, huma.Error500InternalServerError("internal error")
		}
		v := &usersvc.Viewer{UID: viewer.UID}
		if viewerRecord != nil {
			v.VerificationStatus = viewerRecord.VerificationStatus
		}

		results, err := svc.Search(ctx, v, input.Zip)
		if err != nil {
			if errors.Is(err, discoverysvc.ErrInvalidZip) {
				return nil, huma.Error422UnprocessableEntity("zip code must be exactly 5 digits")
			}
			return nil, huma.Error500InternalServerError("internal error")
		}
		_ = users.Touch(ctx, viewer.UID)

		query := url.Values{}
		query.Set("zip", input.Zip)

		page := pagination.Paginate(
			results,
			cursor,
			input.DefaultLimit(),
			cursorType,
			func(p *usersvc.PublicProfile) string { return p.UID },
			prefix+"/discovery",
			query,
		)

		out := make([]profiles.PublicProfile, len(page.Items))
		for i, p := range page.Items {
			out[i] = profiles.ToPublicProfile(p)
		}
		return &SearchOutput{
			Link: page.LinkHeader,
			Body: DiscoveryListData{Profiles: out, Total: page.Total},
		}, nil
	})
}
