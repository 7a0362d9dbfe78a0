package user

import (
	"regexp"
	"slices"
	"strings"
)

// AgeRange buckets a parent's own age.
type AgeRange string

const (
	AgeRange18To25 AgeRange = "18-25"
	AgeRange26To35 AgeRange = "26-35"
	AgeRange36To45 AgeRange = "36-45"
	AgeRange46To55 AgeRange = "46-55"
	AgeRange56Plus AgeRange = "56+"
)

// AgeRanges lists all valid age ranges in display order.
var AgeRanges = []AgeRange{
	AgeRange18To25, AgeRange26To35, AgeRange36To45, AgeRange46To55, AgeRange56Plus,
}

// IsValid reports whether the value is a defined age range.
func (a AgeRange) IsValid() bool {
	return slices.Contains(AgeRanges, a)
}

// ChildAgeRange buckets a child's age.
type ChildAgeRange string

const (
	ChildExpecting  ChildAgeRange = "expecting"
	ChildAge0To1    ChildAgeRange = "0-1"
	ChildAge1To3    ChildAgeRange = "1-3"
	ChildAge3To5    ChildAgeRange = "3-5"
	ChildAge5To8    ChildAgeRange = "5-8"
	ChildAge8To12   ChildAgeRange = "8-12"
	ChildAge12To15  ChildAgeRange = "12-15"
	ChildAge15To18  ChildAgeRange = "15-18"
)

// ChildAgeRanges lists all valid child age ranges in display order.
var ChildAgeRanges = []ChildAgeRange{
	ChildExpecting, ChildAge0To1, ChildAge1To3, ChildAge3To5,
	ChildAge5To8, ChildAge8To12, ChildAge12To15, ChildAge15To18,
}

// IsValid reports whether the value is a defined child age range.
func (c ChildAgeRange) IsValid() bool {
	return slices.Contains(ChildAgeRanges, c)
}

// RelationshipStatus is optional profile metadata.
type RelationshipStatus string

const (
	RelationshipSingle    RelationshipStatus = "single"
	RelationshipPartnered RelationshipStatus = "partnered"
	RelationshipMarried   RelationshipStatus = "married"
	RelationshipDivorced  RelationshipStatus = "divorced"
	RelationshipWidowed   RelationshipStatus = "widowed"
	RelationshipOther     RelationshipStatus = "other"
)

// RelationshipStatuses lists all valid relationship statuses.
var RelationshipStatuses = []RelationshipStatus{
	RelationshipSingle, RelationshipPartnered, RelationshipMarried,
	RelationshipDivorced, RelationshipWidowed, RelationshipOther,
}

// IsValid reports whether the value is a defined relationship status.
// The empty value is not valid; callers treat the field as optional.
func (r RelationshipStatus) IsValid() bool {
	return slices.Contains(RelationshipStatuses, r)
}

// VerificationStatus is the moderation-assigned trust level gating
// verified-only profile visibility.
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
	VerificationRejected   VerificationStatus = "rejected"
)

// IsValid reports whether the value is a defined verification status.
func (v VerificationStatus) IsValid() bool {
	switch v {
	case VerificationUnverified, VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}

// ProfileVisibility controls who may view a projected public profile.
type ProfileVisibility string

const (
	VisibilityPublic       ProfileVisibility = "public"
	VisibilityVerifiedOnly ProfileVisibility = "verified-only"
	VisibilityPrivate      ProfileVisibility = "private"
)

// IsValid reports whether the value is a defined visibility level.
func (p ProfileVisibility) IsValid() bool {
	switch p {
	case VisibilityPublic, VisibilityVerifiedOnly, VisibilityPrivate:
		return true
	}
	return false
}

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// IsValidZip reports whether s is exactly five digits.
func IsValidZip(s string) bool {
	return zipPattern.MatchString(s)
}

// NormalizeSet trims, drops empties, and deduplicates while preserving first
// occurrence order. interests and childrenAgeRanges are sets; this is the one
// place that invariant is enforced.
func NormalizeSet[T ~string](values []T) []T {
	seen := make(map[T]struct{}, len(values))
	out := make([]T, 0, len(values))
	for _, raw := range values {
		v := T(strings.TrimSpace(string(raw)))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
