package discovery

import (
	"testing"
	"time"

	"github.com/zipparents/backend/internal/service/user"
)

func dist(v float64) *float64 { return &v }

func profile(uid string, d *float64, lastActive time.Time) *user.PublicProfile {
	return &user.PublicProfile{UID: uid, Distance: d, LastActive: lastActive}
}

func uids(ps []*user.PublicProfile) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.UID
	}
	return out
}

func TestRankByDistanceAscending(t *testing.T) {
	now := time.Now()
	ps := []*user.PublicProfile{
		profile("far", dist(10), now),
		profile("near", dist(1), now),
		profile("mid", dist(5), now),
	}
	RankByDistance(ps)

	want := []string{"near", "mid", "far"}
	for i, w := range want {
		if ps[i].UID != w {
			t.Fatalf("order = %v, want %v", uids(ps), want)
		}
	}
}

func TestRankByDistanceNilsLast(t *testing.T) {
	now := time.Now()
	ps := []*user.PublicProfile{
		profile("unknown-a", nil, now),
		profile("near", dist(1), now),
		profile("unknown-b", nil, now),
		profile("far", dist(20), now),
	}
	RankByDistance(ps)

	if ps[0].UID != "near" || ps[1].UID != "far" {
		t.Fatalf("known distances must come first, got %v", uids(ps))
	}
	if ps[2].Distance != nil || ps[3].Distance != nil {
		t.Fatalf("nil distances must be last, got %v", uids(ps))
	}
}

func TestRankByDistanceTieBreaksOnLastActive(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	ps := []*user.PublicProfile{
		profile("stale", dist(5), older),
		profile("fresh", dist(5), newer),
	}
	RankByDistance(ps)

	if ps[0].UID != "fresh" {
		t.Fatalf("equal distance should rank recent activity first, got %v", uids(ps))
	}
}

func TestRankByDistanceNilTieBreaksOnLastActive(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	ps := []*user.PublicProfile{
		profile("stale", nil, older),
		profile("fresh", nil, newer),
	}
	RankByDistance(ps)

	if ps[0].UID != "fresh" {
		t.Fatalf("nil distances should still rank by lastActive, got %v", uids(ps))
	}
}

func TestRankByDistanceStable(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ps := []*user.PublicProfile{
		profile("first", dist(5), now),
		profile("second", dist(5), now),
		profile("third", dist(5), now),
	}
	RankByDistance(ps)

	want := []string{"first", "second", "third"}
	for i, w := range want {
		if ps[i].UID != w {
			t.Fatalf("fully tied profiles must keep input order, got %v", uids(ps))
		}
	}
}

func TestRankByDistanceEmpty(t *testing.T) {
	RankByDistance(nil)
	RankByDistance([]*user.PublicProfile{})
}
