package profiles

// ProfileGetInput for GET /profile (no body needed)
type ProfileGetInput struct{}

// ProfileUpdateInput for PATCH /profile
type ProfileUpdateInput struct {
	Body struct {
		DisplayName        *string  `json:"displayName,omitempty"        minLength:"2" maxLength:"50"  doc:"Display name"            example:"Jane D."`
		Bio                *string  `json:"bio,omitempty"                maxLength:"500"               doc:"Short bio"               example:"Mom of two in Brooklyn"`
		ZipCode            *string  `json:"zipCode,omitempty"            pattern:"^\\d{5}$"            doc:"Five-digit zip code"     example:"11201"`
		PhoneNumber        *string  `json:"phoneNumber,omitempty"        pattern:"^\\+?[\\d\\s()-]{7,20}$" doc:"Phone number"        example:"+12125551234"`
		AgeRange           *string  `json:"ageRange,omitempty"           enum:"18-25,26-35,36-45,46-55,56+" doc:"Age bracket"        example:"26-35"`
		Interests          []string `json:"interests,omitempty"          maxItems:"25"                 doc:"Interest tags"`
		ChildrenAgeRanges  []string `json:"childrenAgeRanges,omitempty"  maxItems:"10"                 doc:"Children's age brackets"`
		RelationshipStatus *string  `json:"relationshipStatus,omitempty" enum:"single,partnered,married,divorced,widowed,other" doc:"Relationship status"`
	}
}

// PrivacyUpdateInput for PUT /profile/privacy
type PrivacyUpdateInput struct {
	Body struct {
		ShowEmail         bool   `json:"showEmail"                         doc:"Expose email on the public profile"        example:"false"`
		ShowPhone         bool   `json:"showPhone"                         doc:"Expose phone number on the public profile" example:"false"`
		ShowExactLocation bool   `json:"showExactLocation"                 doc:"Expose the full zip code"                  example:"false"`
		ProfileVisibility string `json:"profileVisibility" required:"true" doc:"Who can see the profile"                   example:"public" enum:"public,verified-only,private"`
	}
}

// PublicProfileGetInput for GET /profiles/{uid}
type PublicProfileGetInput struct {
	UID string `path:"uid" minLength:"1" maxLength:"128" doc:"Firebase user ID" example:"user-456"`
}

// PhotoUploadInput for PUT /profile/photo. The request body is the raw image.
type PhotoUploadInput struct {
	ContentType string `header:"Content-Type" doc:"Image MIME type" example:"image/jpeg"`
	RawBody     []byte
}
