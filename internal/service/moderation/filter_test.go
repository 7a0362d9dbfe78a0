package moderation

import "testing"

func TestScreen(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		clean bool
	}{
		{"empty", "", true},
		{"clean text", "Looking for playdates near the park!", true},
		{"profanity", "what an asshole", false},
		{"profanity case insensitive", "ASShole behavior", false},
		{"profanity inside a word is fine", "classic passhole typo", true},
		{"email", "reach me at jane@example.com", false},
		{"phone", "text 555-123-4567 anytime", false},
		{"phone with country code", "call +1 (212) 555-0199", false},
		{"url", "check https://example.com/group", false},
		{"bare www", "see www.example.com for details", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Screen(tc.text)
			if res.Clean != tc.clean {
				t.Errorf("Screen(%q).Clean = %v, want %v (matches %v)", tc.text, res.Clean, tc.clean, res.Matches)
			}
		})
	}
}

func TestScreenRedaction(t *testing.T) {
	res := Screen("email me at jane@example.com you bastard")
	if res.Clean {
		t.Fatal("expected matches")
	}
	if res.Redacted != "email me at *** you ***" {
		t.Errorf("unexpected redaction: %q", res.Redacted)
	}
	if len(res.Matches) != 2 {
		t.Errorf("expected 2 matches, got %v", res.Matches)
	}
}

func TestScreenDeduplicatesMatches(t *testing.T) {
	res := Screen("shit shit shit")
	if len(res.Matches) != 1 {
		t.Errorf("repeated match should be listed once, got %v", res.Matches)
	}
}

func TestScreenMessageAllowsContactInfo(t *testing.T) {
	res := ScreenMessage("my number is 555-123-4567, email jane@example.com")
	if !res.Clean {
		t.Errorf("contact info in a direct message should pass, matches %v", res.Matches)
	}

	res = ScreenMessage("you absolute bastard")
	if res.Clean {
		t.Error("profanity should still be blocked in direct messages")
	}
	if res.Redacted != "you absolute ***" {
		t.Errorf("unexpected redaction: %q", res.Redacted)
	}
}
