// Package moderation screens user-generated text and tracks abuse reports
// for the admin panel.
package moderation

import (
	"regexp"
	"strings"
)

// blockedTerms are matched as whole words, case-insensitively. The list is
// deliberately short; the point is catching obvious abuse, not building a
// censorship engine.
var blockedTerms = []string{
	"bitch",
	"asshole",
	"bastard",
	"fuck",
	"shit",
	"slut",
	"whore",
}

var (
	blockedPattern = regexp.MustCompile(`(?i)\b(` + strings.Join(blockedTerms, "|") + `)\b`)
	phonePattern   = regexp.MustCompile(`\+?\d[\d\s().-]{8,}\d`)
	emailPattern   = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	urlPattern     = regexp.MustCompile(`(?i)\bhttps?://\S+|\bwww\.\S+`)
)

const redactionMark = "***"

// Result is the outcome of screening one piece of text.
type Result struct {
	// Clean is true when nothing matched.
	Clean bool
	// Matches lists what was found, in document order, deduplicated.
	Matches []string
	// Redacted is the input with every match replaced by "***".
	Redacted string
}

// Screen checks text for blocked terms and contact-information leakage
// (phone numbers, email addresses, links). Pure string matching; no I/O.
func Screen(text string) Result {
	r := Result{Clean: true, Redacted: text}
	if text == "" {
		return r
	}

	for _, pattern := range []*regexp.Regexp{blockedPattern, emailPattern, phonePattern, urlPattern} {
		found := pattern.FindAllString(r.Redacted, -1)
		if len(found) == 0 {
			continue
		}
		r.Clean = false
		for _, f := range found {
			if !contains(r.Matches, f) {
				r.Matches = append(r.Matches, f)
			}
		}
		r.Redacted = pattern.ReplaceAllString(r.Redacted, redactionMark)
	}
	return r
}

// ScreenMessage checks only for blocked terms. Contact details are left
// alone: connected parents may share numbers in private messages.
func ScreenMessage(text string) Result {
	r := Result{Clean: true, Redacted: text}
	found := blockedPattern.FindAllString(text, -1)
	if len(found) == 0 {
		return r
	}
	r.Clean = false
	for _, f := range found {
		if !contains(r.Matches, f) {
			r.Matches = append(r.Matches, f)
		}
	}
	r.Redacted = blockedPattern.ReplaceAllString(text, redactionMark)
	return r
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
