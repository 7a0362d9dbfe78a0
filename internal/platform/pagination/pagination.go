package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidCursor indicates the cursor could not be decoded.
var ErrInvalidCursor = errors.New("invalid cursor format")

// Cursor represents a pagination position.
type Cursor struct {
	Type  string // resource type identifier ("profile", "event", "message")
	Value string // last seen document ID
}

// Encode returns a URL-safe opaque Base64 representation.
func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(c.Type + ":" + c.Value))
}

// DecodeCursor parses a URL-safe Base64 cursor string. An empty string decodes
// to the zero cursor (first page).
func DecodeCursor(s string) (Cursor, error) {
	if s == "" {
		return Cursor{}, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	parts := strings.SplitN(string(b), ":", 2)
	if len(parts) != 2 {
		return Cursor{}, ErrInvalidCursor
	}
	return Cursor{Type: parts[0], Value: parts[1]}, nil
}

// Params embeds into Huma input structs for paginated endpoints.
type Params struct {
	Cursor string `query:"cursor" doc:"Opaque pagination cursor from previous response"`
	Limit  int    `query:"limit"  doc:"Maximum items per page"                          default:"20" minimum:"1" maximum:"100"`
}

// DefaultLimit returns the limit, defaulting to 20 if zero.
func (p Params) DefaultLimit() int {
	if p.Limit <= 0 {
		return 20
	}
	return p.Limit
}

// Result holds one page of items plus navigation metadata.
type Result[T any] struct {
	Items      []T
	Total      int
	LinkHeader string
	NextCursor string
	PrevCursor string
}

// Paginate applies cursor-based pagination to an already-ordered slice.
// getID extracts the stable ID a cursor points at; baseURL and query feed the
// RFC 8288 Link header.
func Paginate[T any](
	items []T,
	cursor Cursor,
	limit int,
	cursorType string,
	getID func(T) string,
	baseURL string,
	query url.Values,
) Result[T] {
	total := len(items)

	startIdx := 0
	if cursor.Value != "" {
		for i, item := range items {
			if getID(item) == cursor.Value {
				startIdx = i + 1
				break
			}
		}
	}

	endIdx := min(startIdx+limit, total)
	pageItems := items[startIdx:endIdx]

	var nextCursor, prevCursor string
	if endIdx < total && len(pageItems) > 0 {
		nextCursor = Cursor{Type: cursorType, Value: getID(pageItems[len(pageItems)-1])}.Encode()
	}
	if startIdx > 0 {
		if startIdx <= limit {
			prevCursor = Cursor{Type: cursorType, Value: ""}.Encode()
		} else {
			prevCursor = Cursor{Type: cursorType, Value: getID(items[startIdx-1-limit])}.Encode()
		}
	}

	q := cloneValues(query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	return Result[T]{
		Items:      pageItems,
		Total:      total,
		LinkHeader: BuildLinkHeader(baseURL, q, nextCursor, prevCursor),
		NextCursor: nextCursor,
		PrevCursor: prevCursor,
	}
}

// BuildLinkHeader constructs an RFC 8288 Link header, preserving existing
// query params.
func BuildLinkHeader(baseURL string, query url.Values, nextCursor, prevCursor string) string {
	var links []string
	if nextCursor != "" {
		q := cloneValues(query)
		q.Set("cursor", nextCursor)
		links = append(links, fmt.Sprintf("<%s?%s>; rel=\"next\"", baseURL, q.Encode()))
	}
	if prevCursor != "" {
		q := cloneValues(query)
		q.Set("cursor", prevCursor)
		links = append(links, fmt.Sprintf("<%s?%s>; rel=\"prev\"", baseURL, q.Encode()))
	}
	return strings.Join(links, ", ")
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return make(url.Values)
	}
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
