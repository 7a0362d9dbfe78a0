package onboarding

// StateGetInput for GET /onboarding (no body needed)
type StateGetInput struct{}

// PrivacyBody mirrors the wizard's privacy step.
type PrivacyBody struct {
	ShowEmail         bool   `json:"showEmail"                         doc:"Expose email on the public profile"        example:"false"`
	ShowPhone         bool   `json:"showPhone"                         doc:"Expose phone number on the public profile" example:"false"`
	ShowExactLocation bool   `json:"showExactLocation"                 doc:"Expose the full zip code"                  example:"false"`
	ProfileVisibility string `json:"profileVisibility" required:"true" doc:"Who can see the profile"                   example:"public" enum:"public,verified-only,private"`
}

// StepSubmitInput for POST /onboarding/steps/{step}. Each step reads its own
// fields and ignores the rest.
type StepSubmitInput struct {
	Step int `path:"step" minimum:"1" maximum:"4" doc:"Wizard step number" example:"1"`
	Body struct {
		DisplayName        *string      `json:"displayName,omitempty"        maxLength:"50"  doc:"Display name"            example:"Jane D."`
		ZipCode            *string      `json:"zipCode,omitempty"            maxLength:"10"  doc:"Five-digit zip code"     example:"11201"`
		AgeRange           *string      `json:"ageRange,omitempty"           maxLength:"10"  doc:"Age bracket"             example:"26-35"`
		Bio                *string      `json:"bio,omitempty"                maxLength:"1000" doc:"Short bio"              example:"Mom of two in Brooklyn"`
		RelationshipStatus *string      `json:"relationshipStatus,omitempty" maxLength:"20"  doc:"Relationship status"     example:"married"`
		ChildrenAgeRanges  []string     `json:"childrenAgeRanges,omitempty"  maxItems:"10"   doc:"Children's age brackets"`
		Interests          []string     `json:"interests,omitempty"          maxItems:"25"   doc:"Interest tags"`
		Privacy            *PrivacyBody `json:"privacy,omitempty"                            doc:"Privacy settings (step 4)"`
	}
}

// CompleteInput for POST /onboarding/complete. The photo is optional and
// validated locally before any upload.
type CompleteInput struct {
	Body struct {
		Photo *struct {
			ContentType string `json:"contentType" required:"true" doc:"Image MIME type"        example:"image/jpeg" enum:"image/jpeg,image/png,image/webp"`
			Data        []byte `json:"data"        required:"true" doc:"Base64-encoded image data"`
		} `json:"photo,omitempty" doc:"Optional profile photo"`
	}
}
