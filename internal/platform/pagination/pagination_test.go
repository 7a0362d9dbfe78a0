package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
)

type testProfile struct {
	UID  string
	Name string
}

func makeProfiles(count int) []testProfile {
	items := make([]testProfile, count)
	for i := range count {
		items[i] = testProfile{
			UID:  fmt.Sprintf("uid-%03d", i+1),
			Name: fmt.Sprintf("Parent %03d", i+1),
		}
	}
	return items
}

func paginate(items []testProfile, cursor Cursor, limit int, query url.Values) Result[testProfile] {
	return Paginate(
		items,
		cursor,
		limit,
		"profile",
		func(p testProfile) string { return p.UID },
		"/v1/discovery",
		query,
	)
}

func TestCursorRoundTrip(t *testing.T) {
	c := Cursor{Type: "profile", Value: "uid-042"}
	decoded, err := DecodeCursor(c.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != c {
		t.Fatalf("expected %+v, got %+v", c, decoded)
	}
}

func TestDecodeCursorEmpty(t *testing.T) {
	c, err := DecodeCursor("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != (Cursor{}) {
		t.Fatalf("empty cursor should decode to zero value, got %+v", c)
	}
}

func TestDecodeCursorInvalid(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"no separator", "bm9zZXBhcmF0b3I"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeCursor(tt.cursor); !errors.Is(err, ErrInvalidCursor) {
				t.Fatalf("expected ErrInvalidCursor, got %v", err)
			}
		})
	}
}

func TestPaginateFirstPage(t *testing.T) {
	result := paginate(makeProfiles(30), Cursor{}, 10, nil)

	if len(result.Items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(result.Items))
	}
	if result.Total != 30 {
		t.Fatalf("expected total 30, got %d", result.Total)
	}
	if result.Items[0].UID != "uid-001" {
		t.Fatalf("expected first item uid-001, got %s", result.Items[0].UID)
	}
	if result.NextCursor == "" {
		t.Fatal("expected next cursor")
	}
	if result.PrevCursor != "" {
		t.Fatalf("expected no prev cursor, got %s", result.PrevCursor)
	}
}

func TestPaginateMiddlePage(t *testing.T) {
	cursor := Cursor{Type: "profile", Value: "uid-010"}
	result := paginate(makeProfiles(30), cursor, 10, nil)

	if len(result.Items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(result.Items))
	}
	if result.Items[0].UID != "uid-011" {
		t.Fatalf("expected first item uid-011, got %s", result.Items[0].UID)
	}
	if result.NextCursor == "" {
		t.Fatal("expected next cursor")
	}
	if result.PrevCursor == "" {
		t.Fatal("expected prev cursor")
	}

	// Going back from page 2 lands on page 1, encoded as an empty value.
	prev, err := DecodeCursor(result.PrevCursor)
	if err != nil {
		t.Fatalf("decode prev: %v", err)
	}
	if prev.Value != "" {
		t.Fatalf("expected empty prev value for page 1, got %s", prev.Value)
	}
}

func TestPaginateLastPage(t *testing.T) {
	cursor := Cursor{Type: "profile", Value: "uid-020"}
	result := paginate(makeProfiles(30), cursor, 10, nil)

	if len(result.Items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(result.Items))
	}
	if result.NextCursor != "" {
		t.Fatalf("expected no next cursor, got %s", result.NextCursor)
	}

	prev, err := DecodeCursor(result.PrevCursor)
	if err != nil {
		t.Fatalf("decode prev: %v", err)
	}
	if prev.Value != "uid-010" {
		t.Fatalf("expected prev cursor uid-010, got %s", prev.Value)
	}
}

func TestPaginateEmptyItems(t *testing.T) {
	result := paginate(nil, Cursor{}, 10, nil)

	if len(result.Items) != 0 || result.Total != 0 {
		t.Fatalf("expected empty result, got %d items total %d", len(result.Items), result.Total)
	}
	if result.NextCursor != "" || result.PrevCursor != "" {
		t.Fatal("expected no cursors for empty input")
	}
}

func TestPaginateCursorNotFound(t *testing.T) {
	cursor := Cursor{Type: "profile", Value: "deleted-uid"}
	result := paginate(makeProfiles(10), cursor, 10, nil)

	// A stale cursor (the document was deleted) restarts from the beginning.
	if len(result.Items) != 10 || result.Items[0].UID != "uid-001" {
		t.Fatalf("stale cursor should restart from the beginning, got %d items starting %s",
			len(result.Items), result.Items[0].UID)
	}
}

func TestPaginateLimitLargerThanItems(t *testing.T) {
	result := paginate(makeProfiles(5), Cursor{}, 20, nil)

	if len(result.Items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(result.Items))
	}
	if result.NextCursor != "" || result.PrevCursor != "" {
		t.Fatal("single page should have no cursors")
	}
}

func TestLinkHeaderPreservesQuery(t *testing.T) {
	query := url.Values{}
	query.Set("zip", "11201")

	result := paginate(makeProfiles(30), Cursor{}, 10, query)

	if result.LinkHeader == "" {
		t.Fatal("expected link header")
	}
	if !strings.Contains(result.LinkHeader, "zip=11201") {
		t.Fatalf("expected zip in link header, got %s", result.LinkHeader)
	}
	if !strings.Contains(result.LinkHeader, "limit=10") {
		t.Fatalf("expected limit in link header, got %s", result.LinkHeader)
	}
	if !strings.Contains(result.LinkHeader, `rel="next"`) {
		t.Fatalf("expected next relation, got %s", result.LinkHeader)
	}
}

func TestBuildLinkHeaderBothDirections(t *testing.T) {
	header := BuildLinkHeader("/v1/events", nil, "next-cur", "prev-cur")
	if !strings.Contains(header, `rel="next"`) || !strings.Contains(header, `rel="prev"`) {
		t.Fatalf("expected both relations, got %s", header)
	}
	if BuildLinkHeader("/v1/events", nil, "", "") != "" {
		t.Fatal("no cursors should produce an empty header")
	}
}

func TestParamsDefaultLimit(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, 20},
		{-5, 20},
		{1, 1},
		{100, 100},
	}
	for _, tt := range tests {
		p := Params{Limit: tt.limit}
		if got := p.DefaultLimit(); got != tt.want {
			t.Errorf("DefaultLimit(%d) = %d, want %d", tt.limit, got, tt.want)
		}
	}
}
