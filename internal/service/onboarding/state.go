// Package onboarding implements the four-step profile wizard as an explicit
// finite-state machine: a State value advanced by pure transition functions,
// testable without any HTTP or storage in play.
package onboarding

import (
	"github.com/zipparents/backend/internal/service/user"
)

// Wizard steps. Complete is terminal and only reachable through a successful
// submission from StepPrivacy.
const (
	StepBasicInfo = 1 // display name, zip code, age range
	StepAboutYou  = 2 // bio, relationship status, children age ranges
	StepInterests = 3 // interest tags
	StepPrivacy   = 4 // privacy settings and optional photo
	Complete      = 5
)

// Photo is a staged photo upload, validated locally before any network call.
type Photo struct {
	ContentType string
	Data        []byte
}

// Fields accumulates wizard input across steps. Zero values mean "not
// entered yet"; NewState pre-populates them from any existing partial record.
type Fields struct {
	DisplayName        string
	ZipCode            string
	AgeRange           user.AgeRange
	Bio                string
	RelationshipStatus user.RelationshipStatus
	ChildrenAgeRanges  []user.ChildAgeRange
	Interests          []string
	// Privacy is nil until the user touches step 4; Advance applies
	// defaults then.
	Privacy *user.PrivacySettings
	Photo   *Photo
}

// State is the wizard's full condition: current step, accumulated fields, and
// the per-field error map from the last failed validation.
type State struct {
	Step   int
	Fields Fields
	Errors map[string]string
}

// Config tunes validation thresholds.
type Config struct {
	// MinInterests is the minimum number of interests required at step 3.
	MinInterests int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{MinInterests: 3}
}

func (c Config) minInterests() int {
	if c.MinInterests <= 0 {
		return 3
	}
	return c.MinInterests
}

// NewState starts the wizard at step 1, pre-populated from any existing
// partial user record.
func NewState(existing *user.User) State {
	s := State{Step: StepBasicInfo}
	if existing == nil {
		return s
	}
	s.Fields = Fields{
		DisplayName:        existing.DisplayName,
		ZipCode:            existing.ZipCode,
		AgeRange:           existing.AgeRange,
		Bio:                existing.Bio,
		RelationshipStatus: existing.RelationshipStatus,
		ChildrenAgeRanges:  append([]user.ChildAgeRange(nil), existing.ChildrenAgeRanges...),
		Interests:          append([]string(nil), existing.Interests...),
	}
	if existing.OnboardingCompleted {
		s.Fields.Privacy = &existing.Privacy
	}
	return s
}

// ResumeStep returns the step a returning user should land on, given which
// fields their record already holds.
func ResumeStep(s State, cfg Config) int {
	for step := StepBasicInfo; step <= StepPrivacy; step++ {
		if len(validateStep(step, s.Fields, cfg)) > 0 {
			return step
		}
	}
	return StepPrivacy
}

// Advance runs the current step's validator. On failure it returns the same
// step with the error map populated; on success it clears errors and moves
// forward, landing on Complete after step 4. Pure: the receiver state is not
// mutated.
func Advance(s State, cfg Config) State {
	if s.Step < StepBasicInfo || s.Step > StepPrivacy {
		return s
	}
	errs := validateStep(s.Step, s.Fields, cfg)
	if len(errs) > 0 {
		s.Errors = errs
		return s
	}
	s.Errors = nil
	if s.Step == StepPrivacy {
		if s.Fields.Privacy == nil {
			defaults := user.DefaultPrivacySettings()
			s.Fields.Privacy = &defaults
		}
		s.Step = Complete
		return s
	}
	s.Step++
	return s
}

// Back returns to the previous step without validating or discarding
// anything. A no-op at step 1.
func Back(s State) State {
	if s.Step > StepBasicInfo && s.Step <= StepPrivacy {
		s.Step--
	}
	s.Errors = nil
	return s
}

// Valid reports whether every step's fields pass validation.
func Valid(s State, cfg Config) bool {
	for step := StepBasicInfo; step <= StepPrivacy; step++ {
		if len(validateStep(step, s.Fields, cfg)) > 0 {
			return false
		}
	}
	return true
}
