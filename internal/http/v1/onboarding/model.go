package onboarding

import (
	onboardingsvc "github.com/zipparents/backend/internal/service/onboarding"
	usersvc "github.com/zipparents/backend/internal/service/user"
)

// Fields is the wizard's accumulated input as stored so far.
type Fields struct {
	DisplayName        string       `json:"displayName"                  doc:"Display name"`
	ZipCode            string       `json:"zipCode"                      doc:"Five-digit zip code"`
	AgeRange           string       `json:"ageRange"                     doc:"Age bracket"`
	Bio                string       `json:"bio"                          doc:"Short bio"`
	RelationshipStatus string       `json:"relationshipStatus"           doc:"Relationship status"`
	ChildrenAgeRanges  []string     `json:"childrenAgeRanges"            doc:"Children's age brackets"`
	Interests          []string     `json:"interests"                    doc:"Interest tags"`
	Privacy            *PrivacyBody `json:"privacy,omitempty"            doc:"Privacy settings, once touched"`
}

// State describes where the wizard stands for the authenticated user.
type State struct {
	Step      int    `json:"step"      doc:"Step the user should be on"    example:"2"`
	Completed bool   `json:"completed" doc:"Whether onboarding is finished" example:"false"`
	Fields    Fields `json:"fields"    doc:"Accumulated wizard input"`
}

func toFields(f onboardingsvc.Fields) Fields {
	out := Fields{
		DisplayName:        f.DisplayName,
		ZipCode:            f.ZipCode,
		AgeRange:           string(f.AgeRange),
		Bio:                f.Bio,
		RelationshipStatus: string(f.RelationshipStatus),
		Interests:          f.Interests,
	}
	for _, c := range f.ChildrenAgeRanges {
		out.ChildrenAgeRanges = append(out.ChildrenAgeRanges, string(c))
	}
	if f.Privacy != nil {
		out.Privacy = &PrivacyBody{
			ShowEmail:         f.Privacy.ShowEmail,
			ShowPhone:         f.Privacy.ShowPhone,
			ShowExactLocation: f.Privacy.ShowExactLocation,
			ProfileVisibility: string(f.Privacy.ProfileVisibility),
		}
	}
	return out
}

// fieldsFromUser rebuilds the wizard fields from the stored record. Privacy
// always carries over; it is defaulted at account creation.
func fieldsFromUser(u *usersvc.User) onboardingsvc.Fields {
	privacy := u.Privacy
	return onboardingsvc.Fields{
		DisplayName:        u.DisplayName,
		ZipCode:            u.ZipCode,
		AgeRange:           u.AgeRange,
		Bio:                u.Bio,
		RelationshipStatus: u.RelationshipStatus,
		ChildrenAgeRanges:  append([]usersvc.ChildAgeRange(nil), u.ChildrenAgeRanges...),
		Interests:          append([]string(nil), u.Interests...),
		Privacy:            &privacy,
	}
}
