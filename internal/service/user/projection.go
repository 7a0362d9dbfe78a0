package user

import (
	"slices"
	"time"
)

// zipPrefixLen is how many leading digits of a zip code remain visible when
// the owner hides their exact location.
const zipPrefixLen = 3

// Viewer identifies who is requesting a projection. A nil Viewer means an
// unauthenticated or anonymous request.
type Viewer struct {
	UID                string
	VerificationStatus VerificationStatus
}

// PublicProfile is the redacted view of a User appropriate for a given
// viewer. It is never persisted; it is recomputed per request.
type PublicProfile struct {
	UID                 string
	DisplayName         string
	PhotoURL            string
	Bio                 string
	AgeRange            AgeRange
	Interests           []string
	ChildrenAgeRanges   []ChildAgeRange
	RelationshipStatus  RelationshipStatus
	VerificationStatus  VerificationStatus
	ProfileCompleteness int
	LastActive          time.Time

	// Conditionally included per privacy settings. Empty when withheld.
	Email       string
	PhoneNumber string
	// ZipCode is the full five digits for the owner or when the owner shows
	// exact location; otherwise the first three digits.
	ZipCode string

	// Distance in miles from the viewer's location, when a collaborator
	// supplied one. Nil means unknown.
	Distance *float64
}

// Project maps a full user record onto the view the given viewer may see.
//
// Returns nil when the profile is not visible to the viewer: private profiles
// for anyone but the owner, and verified-only profiles for viewers who are
// absent or not verified. A nil result is "no profile visible", not an error.
//
// Pure: no I/O, and the input User is never mutated (slices are copied, not
// aliased).
func Project(u *User, viewer *Viewer) *PublicProfile {
	if u == nil {
		return nil
	}

	self := viewer != nil && viewer.UID == u.UID

	switch u.Privacy.ProfileVisibility {
	case VisibilityPrivate:
		if !self {
			return nil
		}
	case VisibilityVerifiedOnly:
		if !self && (viewer == nil || viewer.VerificationStatus != VerificationVerified) {
			return nil
		}
	}

	p := &PublicProfile{
		UID:                 u.UID,
		DisplayName:         u.DisplayName,
		PhotoURL:            u.PhotoURL,
		Bio:                 u.Bio,
		AgeRange:            u.AgeRange,
		Interests:           slices.Clone(u.Interests),
		ChildrenAgeRanges:   slices.Clone(u.ChildrenAgeRanges),
		RelationshipStatus:  u.RelationshipStatus,
		VerificationStatus:  u.VerificationStatus,
		ProfileCompleteness: u.ProfileCompleteness,
		LastActive:          u.LastActive,
	}

	if u.Privacy.ShowEmail || self {
		p.Email = u.Email
	}
	if u.Privacy.ShowPhone || self {
		p.PhoneNumber = u.PhoneNumber
	}
	if u.Privacy.ShowExactLocation || self {
		p.ZipCode = u.ZipCode
	} else if len(u.ZipCode) >= zipPrefixLen {
		p.ZipCode = u.ZipCode[:zipPrefixLen]
	} else {
		p.ZipCode = u.ZipCode
	}

	return p
}
