package onboarding

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/zipparents/backend/internal/service/user"
)

const (
	minDisplayNameLen = 2
	maxBioLen         = 500
	minChildren       = 1

	// MaxPhotoBytes is the photo size ceiling, checked before any upload
	// is attempted.
	MaxPhotoBytes = 5 << 20
)

// allowedPhotoTypes are the accepted photo MIME types.
var allowedPhotoTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// ValidatePhoto checks a staged photo locally. nil is fine: the photo is
// optional.
func ValidatePhoto(p *Photo) map[string]string {
	if p == nil {
		return nil
	}
	errs := make(map[string]string)
	if _, ok := allowedPhotoTypes[strings.ToLower(p.ContentType)]; !ok {
		errs["photo"] = "photo must be a JPEG, PNG, or WebP image"
	}
	if len(p.Data) == 0 {
		errs["photo"] = "photo data is empty"
	} else if len(p.Data) > MaxPhotoBytes {
		errs["photo"] = "photo must be 5MB or smaller"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateStep dispatches to the step's validator. Returned maps are keyed by
// field name; an empty result means the step passes.
func validateStep(step int, f Fields, cfg Config) map[string]string {
	switch step {
	case StepBasicInfo:
		return validateBasicInfo(f)
	case StepAboutYou:
		return validateAboutYou(f)
	case StepInterests:
		return validateInterests(f, cfg)
	case StepPrivacy:
		return validatePrivacy(f)
	}
	return nil
}

func validateBasicInfo(f Fields) map[string]string {
	errs := make(map[string]string)
	if utf8.RuneCountInString(strings.TrimSpace(f.DisplayName)) < minDisplayNameLen {
		errs["displayName"] = fmt.Sprintf("display name must be at least %d characters", minDisplayNameLen)
	}
	if !user.IsValidZip(f.ZipCode) {
		errs["zipCode"] = "zip code must be exactly 5 digits"
	}
	if !f.AgeRange.IsValid() {
		errs["ageRange"] = "select an age range"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateAboutYou(f Fields) map[string]string {
	errs := make(map[string]string)
	if utf8.RuneCountInString(f.Bio) > maxBioLen {
		errs["bio"] = fmt.Sprintf("bio must be %d characters or fewer", maxBioLen)
	}
	if f.RelationshipStatus != "" && !f.RelationshipStatus.IsValid() {
		errs["relationshipStatus"] = "unknown relationship status"
	}
	children := user.NormalizeSet(f.ChildrenAgeRanges)
	if len(children) < minChildren {
		errs["childrenAgeRanges"] = "select at least one child age range"
	}
	for _, c := range children {
		if !c.IsValid() {
			errs["childrenAgeRanges"] = "unknown child age range"
			break
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateInterests(f Fields, cfg Config) map[string]string {
	interests := user.NormalizeSet(f.Interests)
	if len(interests) < cfg.minInterests() {
		return map[string]string{
			"interests": fmt.Sprintf("select at least %d interests", cfg.minInterests()),
		}
	}
	return nil
}

func validatePrivacy(f Fields) map[string]string {
	// Privacy settings default if untouched, so only an explicit bad
	// visibility value or a bad staged photo can fail this step.
	if f.Privacy != nil && !f.Privacy.ProfileVisibility.IsValid() {
		return map[string]string{"profileVisibility": "unknown visibility level"}
	}
	return ValidatePhoto(f.Photo)
}
