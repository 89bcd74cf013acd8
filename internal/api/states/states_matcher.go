// Package states recognises US state names in free text.
package states

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FuzzyThreshold is the minimum similarity ratio for a typo to count as a state.
// It is strict enough to reject city names ("sedona") while still accepting
// "californi" or "masachusetts".
const FuzzyThreshold = 0.82

var punctuation = strings.NewReplacer(
	".", "", ",", "", "!", "", "?", "", ";", "", ":", "",
	"'", "", "\"", "", "(", "", ")", "",
)

// Normalize trims, lowercases, strips punctuation and collapses whitespace.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = punctuation.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// IsGreeting reports whether text is only a greeting.
func IsGreeting(text string) bool {
	_, ok := Greetings[Normalize(text)]
	return ok
}

// Identify returns the canonical state token named by text, if any.
func Identify(text string) (string, bool) {
	s := Normalize(text)
	if s == "" {
		return "", false
	}
	if _, ok := Greetings[s]; ok {
		return "", false
	}

	if token, ok := lookup(s, true); ok {
		return token, true
	}

	if words := strings.Fields(s); len(words) > 1 {
		if token, ok := scan(words); ok {
			return token, true
		}
	}

	return closest(s)
}

// IdentifyExact is Identify without the sentence scan: the whole text must
// name the state, allowing for typos. "Kansas City" is not Kansas.
func IdentifyExact(text string) (string, bool) {
	s := Normalize(text)
	if s == "" {
		return "", false
	}
	if _, ok := Greetings[s]; ok {
		return "", false
	}
	if token, ok := lookup(s, true); ok {
		return token, true
	}
	return closest(s)
}

// lookup resolves aliases and exact names. Postal codes and ambiguous short
// forms only count when s is the whole input.
func lookup(s string, whole bool) (string, bool) {
	collapsed := strings.ReplaceAll(s, " ", "")
	if whole {
		if token, ok := PostalCodes[collapsed]; ok {
			return token, true
		}
		if token, ok := shortForms[collapsed]; ok {
			return token, true
		}
	}
	if token, ok := sentenceForms[collapsed]; ok {
		return token, true
	}
	if _, ok := nameSet[s]; ok {
		return s, true
	}
	return "", false
}

// scan looks for a state inside a sentence. Bigrams go first so that
// "west virginia" wins over "virginia".
func scan(words []string) (string, bool) {
	for i := 0; i+1 < len(words); i++ {
		if token, ok := lookup(words[i]+" "+words[i+1], false); ok {
			return token, true
		}
	}
	for _, w := range words {
		if _, ok := Greetings[w]; ok {
			continue
		}
		if token, ok := lookup(w, false); ok {
			return token, true
		}
	}
	return "", false
}

func closest(s string) (string, bool) {
	best, bestRatio := "", 0.0
	a := strings.Split(s, "")
	for _, name := range Names {
		m := difflib.NewMatcher(a, strings.Split(name, ""))
		if r := m.Ratio(); r > bestRatio {
			best, bestRatio = name, r
		}
	}
	if bestRatio >= FuzzyThreshold {
		return best, true
	}
	return "", false
}

// DisplayName title-cases a token ("new york" -> "New York").
func DisplayName(token string) string {
	return cases.Title(language.English).String(strings.TrimSpace(token))
}
