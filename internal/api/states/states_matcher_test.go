package states

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentify_CanonicalNames(t *testing.T) {
	require.Len(t, Names, 50)

	for _, name := range Names {
		variants := []string{
			name,
			strings.ToUpper(name),
			DisplayName(name),
			"  " + name + ".  ",
			name + ",",
			name + "!",
		}
		for _, v := range variants {
			got, ok := Identify(v)
			assert.True(t, ok, "expected %q to identify", v)
			assert.Equal(t, name, got, "input %q", v)
		}
	}
}

func TestIdentify_PostalCodes(t *testing.T) {
	for code, name := range PostalCodes {
		if _, greeting := Greetings[code]; greeting {
			continue
		}
		got, ok := Identify(strings.ToUpper(code))
		assert.True(t, ok, "code %q", code)
		assert.Equal(t, name, got, "code %q", code)

		got, ok = Identify(code + ".")
		assert.True(t, ok, "code %q with punctuation", code)
		assert.Equal(t, name, got)
	}
}

func TestIdentify_EveryStateHasAnAlias(t *testing.T) {
	covered := map[string]bool{}
	for code, name := range PostalCodes {
		if _, greeting := Greetings[code]; !greeting {
			covered[name] = true
		}
	}
	for _, name := range shortForms {
		covered[name] = true
	}
	for _, name := range sentenceForms {
		covered[name] = true
	}
	// hawaii's postal code doubles as a greeting
	got, ok := Identify("Hawai'i")
	require.True(t, ok)
	assert.Equal(t, "hawaii", got)
	covered["hawaii"] = true

	for _, name := range Names {
		assert.True(t, covered[name], "no alias for %s", name)
	}
}

func TestIdentify_ShortForms(t *testing.T) {
	tests := map[string]string{
		"Cali":     "california",
		"newyork":  "new york",
		"New York": "new york",
		"NYC":      "new york",
		"mass":     "massachusetts",
		"N.Y.":     "new york",
		"D.E.":     "delaware",
	}
	for in, want := range tests {
		got, ok := Identify(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
}

func TestIdentify_Greetings(t *testing.T) {
	for _, g := range []string{"hi", "Hi!", "hello", "HELLO", "hey", "howdy", "yo"} {
		_, ok := Identify(g)
		assert.False(t, ok, "greeting %q must not match", g)
	}
	assert.True(t, IsGreeting("Hello!"))
	assert.False(t, IsGreeting("hello arizona"))
}

func TestIdentify_Typos(t *testing.T) {
	tests := map[string]string{
		"Californi":    "california",
		"Masachusetts": "massachusetts",
		"Tennesee":     "tennessee",
		"pensylvania":  "pennsylvania",
		"Missisippi":   "mississippi",
	}
	for in, want := range tests {
		got, ok := Identify(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
}

func TestIdentify_RejectsPlaces(t *testing.T) {
	for _, place := range []string{"Sedona", "Yosemite", "Chicago", "Portland", "Grand Canyon", "Austin", ""} {
		got, ok := Identify(place)
		assert.False(t, ok, "%q matched %q", place, got)
	}
}

func TestIdentify_Sentences(t *testing.T) {
	tests := map[string]string{
		"tell me about arizona please":       "arizona",
		"what should I see in West Virginia": "west virginia",
		"top spots in new mexico?":           "new mexico",
		"road trip through cali":             "california",
		"hi there, texas":                    "texas",
	}
	for in, want := range tests {
		got, ok := Identify(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
}

func TestIdentify_PostalCodesIgnoredInsideSentences(t *testing.T) {
	// "me" and "in" would otherwise resolve to Maine and Indiana
	_, ok := Identify("tell me about sedona")
	assert.False(t, ok)
	_, ok = Identify("things to do in yosemite")
	assert.False(t, ok)
}

func TestIdentifyExact(t *testing.T) {
	tests := map[string]string{
		"AZ":       "arizona",
		"New York": "new york",
		"Tennesee": "tennessee",
		"cali":     "california",
	}
	for in, want := range tests {
		got, ok := IdentifyExact(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, place := range []string{"Kansas City", "Virginia Beach", "new york city", "Washington Monument", "hi", ""} {
		got, ok := IdentifyExact(place)
		assert.False(t, ok, "%q matched %q", place, got)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "new york", Normalize("  New   York. "))
	assert.Equal(t, "st louis", Normalize("St. Louis,"))
	assert.Equal(t, "", Normalize("   "))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "New York", DisplayName("new york"))
	assert.Equal(t, "Arizona", DisplayName("arizona"))
}
