package profiles

import (
	"github.com/zipparents/backend/internal/platform/timeutil"
	usersvc "github.com/zipparents/backend/internal/service/user"
)

// PrivacySettings mirrors the stored privacy settings.
type PrivacySettings struct {
	ShowEmail         bool   `json:"showEmail"         doc:"Expose email on the public profile"        example:"false"`
	ShowPhone         bool   `json:"showPhone"         doc:"Expose phone number on the public profile" example:"false"`
	ShowExactLocation bool   `json:"showExactLocation" doc:"Expose the full zip code"                  example:"false"`
	ProfileVisibility string `json:"profileVisibility" doc:"Who can see the profile"                   example:"public" enum:"public,verified-only,private"`
}

// Profile is the owner's full account record.
type Profile struct {
	UID                 string          `json:"uid"                 doc:"Firebase user ID"                 example:"user-123"`
	Email               string          `json:"email"               doc:"Email address"                    example:"jane@example.com"`
	DisplayName         string          `json:"displayName"         doc:"Display name"                     example:"Jane D."`
	Bio                 string          `json:"bio"                 doc:"Short bio"                        example:"Mom of two in Brooklyn"`
	ZipCode             string          `json:"zipCode"             doc:"Five-digit zip code"              example:"11201"`
	PhoneNumber         string          `json:"phoneNumber"         doc:"Phone number"                     example:"+12125551234"`
	PhotoURL            string          `json:"photoUrl"            doc:"Profile photo URL"`
	AgeRange            string          `json:"ageRange"            doc:"Age bracket"                      example:"26-35"`
	Interests           []string        `json:"interests"           doc:"Interest tags"`
	ChildrenAgeRanges   []string        `json:"childrenAgeRanges"   doc:"Children's age brackets"`
	RelationshipStatus  string          `json:"relationshipStatus"  doc:"Relationship status"              example:"married"`
	EmailVerified       bool            `json:"emailVerified"       doc:"Email verified via Firebase"      example:"true"`
	VerificationStatus  string          `json:"verificationStatus"  doc:"Age verification status"          example:"unverified"`
	Privacy             PrivacySettings `json:"privacy"             doc:"Privacy settings"`
	OnboardingCompleted bool            `json:"onboardingCompleted" doc:"Whether the wizard was finished"  example:"true"`
	ProfileCompleteness int             `json:"profileCompleteness" doc:"Percent of optional fields set"   example:"75"`
	LastActive          timeutil.Time   `json:"lastActive"          doc:"Last activity timestamp"          example:"2024-01-15T10:30:00.000Z"`
	CreatedAt           timeutil.Time   `json:"createdAt"           doc:"Creation timestamp"               example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt           timeutil.Time   `json:"updatedAt"           doc:"Last update timestamp"            example:"2024-01-15T10:30:00.000Z"`
}

// PublicProfile is the redacted view another parent sees.
type PublicProfile struct {
	UID                 string        `json:"uid"                   doc:"Firebase user ID"               example:"user-456"`
	DisplayName         string        `json:"displayName"           doc:"Display name"                   example:"Sam P."`
	PhotoURL            string        `json:"photoUrl"              doc:"Profile photo URL"`
	Bio                 string        `json:"bio"                   doc:"Short bio"`
	AgeRange            string        `json:"ageRange"              doc:"Age bracket"                    example:"36-45"`
	Interests           []string      `json:"interests"             doc:"Interest tags"`
	ChildrenAgeRanges   []string      `json:"childrenAgeRanges"     doc:"Children's age brackets"`
	RelationshipStatus  string        `json:"relationshipStatus"    doc:"Relationship status"`
	VerificationStatus  string        `json:"verificationStatus"    doc:"Age verification status"        example:"verified"`
	ProfileCompleteness int           `json:"profileCompleteness"   doc:"Percent of optional fields set" example:"50"`
	LastActive          timeutil.Time `json:"lastActive"            doc:"Last activity timestamp"        example:"2024-01-15T10:30:00.000Z"`
	Email               string        `json:"email,omitempty"       doc:"Email, when the owner shares it"`
	PhoneNumber         string        `json:"phoneNumber,omitempty" doc:"Phone, when the owner shares it"`
	ZipCode             string        `json:"zipCode"               doc:"Full zip, or first three digits when redacted" example:"112"`
	Distance            *float64      `json:"distance,omitempty"    doc:"Distance in miles, when known"  example:"2.4"`
}

// ToProfile maps the domain record to the HTTP model.
func ToProfile(u *usersvc.User) Profile {
	return Profile{
		UID:                 u.UID,
		Email:               u.Email,
		DisplayName:         u.DisplayName,
		Bio:                 u.Bio,
		ZipCode:             u.ZipCode,
		PhoneNumber:         u.PhoneNumber,
		PhotoURL:            u.PhotoURL,
		AgeRange:            string(u.AgeRange),
		Interests:           u.Interests,
		ChildrenAgeRanges:   childAges(u.ChildrenAgeRanges),
		RelationshipStatus:  string(u.RelationshipStatus),
		EmailVerified:       u.EmailVerified,
		VerificationStatus:  string(u.VerificationStatus),
		Privacy:             toPrivacy(u.Privacy),
		OnboardingCompleted: u.OnboardingCompleted,
		ProfileCompleteness: u.ProfileCompleteness,
		LastActive:          timeutil.Time{Time: u.LastActive},
		CreatedAt:           timeutil.Time{Time: u.CreatedAt},
		UpdatedAt:           timeutil.Time{Time: u.UpdatedAt},
	}
}

// ToPublicProfile maps a projection to the HTTP model.
func ToPublicProfile(p *usersvc.PublicProfile) PublicProfile {
	return PublicProfile{
		UID:                 p.UID,
		DisplayName:         p.DisplayName,
		PhotoURL:            p.PhotoURL,
		Bio:                 p.Bio,
		AgeRange:            string(p.AgeRange),
		Interests:           p.Interests,
		ChildrenAgeRanges:   childAges(p.ChildrenAgeRanges),
		RelationshipStatus:  string(p.RelationshipStatus),
		VerificationStatus:  string(p.VerificationStatus),
		ProfileCompleteness: p.ProfileCompleteness,
		LastActive:          timeutil.Time{Time: p.LastActive},
		Email:               p.Email,
		PhoneNumber:         p.PhoneNumber,
		ZipCode:             p.ZipCode,
		Distance:            p.Distance,
	}
}

func toPrivacy(p usersvc.PrivacySettings) PrivacySettings {
	return PrivacySettings{
		ShowEmail:         p.ShowEmail,
		ShowPhone:         p.ShowPhone,
		ShowExactLocation: p.ShowExactLocation,
		ProfileVisibility: string(p.ProfileVisibility),
	}
}

func childAges(in []usersvc.ChildAgeRange) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
