package profiles

// ProfileGetOutput for GET /profile
type ProfileGetOutput struct {
	Body Profile
}

// ProfileUpdateOutput for PATCH /profile
type ProfileUpdateOutput struct {
	Body Profile
}

// PrivacyUpdateOutput for PUT /profile/privacy
type PrivacyUpdateOutput struct {
	Body Profile
}

// PublicProfileGetOutput for GET /profiles/{uid}
type PublicProfileGetOutput struct {
	Body PublicProfile
}

// PhotoUploadOutput for PUT /profile/photo
type PhotoUploadOutput struct {
	Body struct {
		PhotoURL string `json:"photoUrl" doc:"Stable download URL of the stored photo"`
	}
}
