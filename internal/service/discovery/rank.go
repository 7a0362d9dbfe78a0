package discovery

import (
	"sort"

	"github.com/zipparents/backend/internal/service/user"
)

// RankByDistance orders profiles ascending by distance. Profiles without a
// distance sort last, keeping their original relative order; ties break by
// lastActive, most recent first. The sort is stable throughout so equal
// entries never swap.
func RankByDistance(profiles []*user.PublicProfile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		di, dj := profiles[i].Distance, profiles[j].Distance
		switch {
		case di == nil && dj != nil:
			return false
		case di != nil && dj == nil:
			return true
		case di != nil && dj != nil && *di != *dj:
			return *di < *dj
		}
		return profiles[i].LastActive.After(profiles[j].LastActive)
	})
}
