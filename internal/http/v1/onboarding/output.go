package onboarding

import (
	"github.com/zipparents/backend/internal/http/v1/profiles"
)

// StateGetOutput for GET /onboarding
type StateGetOutput struct {
	Body State
}

// StepSubmitOutput for POST /onboarding/steps/{step}
type StepSubmitOutput struct {
	Body State
}

// CompleteOutput for POST /onboarding/complete
type CompleteOutput struct {
	Body profiles.Profile
}
