package chat

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FACorreiaa/tripmate-api/internal/types"
)

var (
	bestTimePattern = regexp.MustCompile(`(?i)\bbest\s+time\s+to\s+(?:visit|go\s+to)\s+(.+)`)
	thingsPattern   = regexp.MustCompile(`(?i)\b(?:things\s+to\s+do|what\s+to\s+do|things\s+to\s+see|things)\s+in\s+(.+)`)
	aboutPattern    = regexp.MustCompile(`(?i)^\s*(?:tell\s+me\s+about|what\s+about|info\s+on|show\s+me)\s+(.+)`)
	pleasePattern   = regexp.MustCompile(`(?i)[\s,]*\bplease\b[\s.!?]*$`)
)

// Intent is the subject of a message plus the aspect the user asked about.
type Intent struct {
	Focus   types.Focus
	Subject string
}

// ParseIntent extracts "best time to visit X", "things to do in X" and
// "tell me about X". Anything else is returned unchanged with no focus.
func ParseIntent(text string) Intent {
	text = strings.TrimSpace(text)
	if m := bestTimePattern.FindStringSubmatch(text); m != nil {
		return Intent{Focus: types.FocusBestTime, Subject: cleanSubject(m[1])}
	}
	if m := thingsPattern.FindStringSubmatch(text); m != nil {
		return Intent{Focus: types.FocusThings, Subject: cleanSubject(m[1])}
	}
	if m := aboutPattern.FindStringSubmatch(text); m != nil {
		return Intent{Focus: types.FocusNone, Subject: cleanSubject(m[1])}
	}
	return Intent{Focus: types.FocusNone, Subject: cleanSubject(text)}
}

// cleanSubject drops a trailing "please" and sentence punctuation.
func cleanSubject(s string) string {
	s = pleasePattern.ReplaceAllString(s, "")
	s = strings.TrimRight(strings.TrimSpace(s), ".!?,;:")
	return strings.TrimSpace(s)
}

// placeName title-cases subjects typed entirely in lower case and leaves
// anything the user capitalised alone.
func placeName(subject string) string {
	for _, r := range subject {
		if unicode.IsUpper(r) {
			return subject
		}
	}
	return cases.Title(language.English).String(subject)
}
