// Package discovery finds parents near a zip code and ranks them for a
// given viewer.
package discovery

import (
	"context"
	"errors"

	"github.com/zipparents/backend/internal/service/user"
)

// ErrInvalidZip indicates the search zip is not five digits.
var ErrInvalidZip = errors.New("search zip code must be exactly 5 digits")

// areaPrefixLen is how many leading zip digits define the search area. Three
// digits is a USPS sectional center, the same granularity redacted profiles
// expose.
const areaPrefixLen = 3

// maxCandidates caps how many records one search pulls from the store before
// projection filters and pagination apply.
const maxCandidates = 200

// Distancer supplies the distance in miles between two zip codes. Geocoding
// is an external collaborator; implementations may return nil when they do
// not know.
type Distancer interface {
	Distance(fromZip, toZip string) *float64
}

// Service searches user records and produces viewer-appropriate projections.
type Service struct {
	users     user.Service
	distancer Distancer
}

// NewService wires a discovery service. distancer may be nil; results then
// carry no distances and rank by lastActive alone.
func NewService(users user.Service, distancer Distancer) *Service {
	return &Service{users: users, distancer: distancer}
}

// Search returns profiles near the given zip, visible to the viewer, ranked
// ascending by distance with unknown distances last. The viewer's own record
// is excluded. viewer may be nil for anonymous browsing: only public
// profiles survive projection then.
func (s *Service) Search(ctx context.Context, viewer *user.Viewer, zip string) ([]*user.PublicProfile, error) {
	if !user.IsValidZip(zip) {
		return nil, ErrInvalidZip
	}

	candidates, err := s.users.ListByZipPrefix(ctx, zip[:areaPrefixLen], maxCandidates)
	if err != nil {
		return nil, err
	}

	profiles := make([]*user.PublicProfile, 0, len(candidates))
	for _, u := range candidates {
		if viewer != nil && u.UID == viewer.UID {
			continue
		}
		p := user.Project(u, viewer)
		if p == nil {
			continue
		}
		if s.distancer != nil {
			p.Distance = s.distancer.Distance(zip, u.ZipCode)
		}
		profiles = append(profiles, p)
	}

	RankByDistance(profiles)
	return profiles, nil
}
