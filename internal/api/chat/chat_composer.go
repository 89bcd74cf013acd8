package chat

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/tripmate-api/internal/types"
)

const (
	minSuggestions   = 3
	maxSuggestions   = 5
	maxListedInReply = 10
)

// FallbackSuggestions are offered whenever there is nothing better to say.
var FallbackSuggestions = []string{"Arizona", "Sedona", "Yosemite"}

const (
	promptMessage  = "Tell me a US state, city, or landmark and I'll help plan."
	welcomeMessage = "Hey! Tell me a US state, city, or famous place and I'll suggest highlights and tips."
)

// suggestionSet collects unique follow-up prompts, compared without case.
type suggestionSet struct {
	items   []string
	seen    map[string]struct{}
	exclude map[string]struct{}
}

func newSuggestionSet(exclude ...string) *suggestionSet {
	s := &suggestionSet{seen: map[string]struct{}{}, exclude: map[string]struct{}{}}
	for _, e := range exclude {
		s.exclude[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return s
}

func (s *suggestionSet) add(items ...string) {
	for _, it := range items {
		it = strings.TrimSpace(it)
		key := strings.ToLower(it)
		if it == "" || len(s.items) >= maxSuggestions {
			continue
		}
		if _, ok := s.exclude[key]; ok {
			continue
		}
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.seen[key] = struct{}{}
		s.items = append(s.items, it)
	}
}

// list tops up with the fixed fallbacks so there are always a few prompts.
func (s *suggestionSet) list() []string {
	if len(s.items) < minSuggestions {
		s.add(FallbackSuggestions...)
	}
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func bulletList(names []string) string {
	return "- " + strings.Join(names, "\n- ")
}

// PromptReply answers an empty message.
func PromptReply() types.ChatReply {
	return types.ChatReply{Message: promptMessage, Suggestions: newSuggestionSet().list()}
}

// GreetingReply answers a bare greeting.
func GreetingReply() types.ChatReply {
	s := newSuggestionSet()
	s.add("Arizona", "Sedona", "Best time to visit Grand Canyon")
	return types.ChatReply{Message: welcomeMessage, Suggestions: s.list()}
}

// ApologyReply is used when no data could be found for subject.
func ApologyReply(subject string) types.ChatReply {
	s := newSuggestionSet(subject)
	return types.ChatReply{
		Message:     fmt.Sprintf("Sorry, I couldn't find anything about %s right now. Try another state or a well-known place.", subject),
		Suggestions: s.list(),
	}
}

// StateReply lists a state's top attractions.
func StateReply(state string, attractions types.AttractionList) types.ChatReply {
	if len(attractions) == 0 {
		s := newSuggestionSet(state)
		return types.ChatReply{
			Message:     fmt.Sprintf("Sorry, I couldn't fetch attractions for %s right now.", state),
			Suggestions: s.list(),
		}
	}

	top := attractions
	if len(top) > maxListedInReply {
		top = top[:maxListedInReply]
	}
	s := newSuggestionSet(state)
	s.add(
		"Tell me about "+top[0],
		"Things to do in "+top[0],
		"Best time to visit "+state,
	)
	if len(top) > 1 {
		s.add("Tell me about " + top[1])
	}

	return types.ChatReply{
		Message:     fmt.Sprintf("Here are a few great spots in %s:\n%s", state, bulletList(top)),
		Suggestions: s.list(),
	}
}

// PlaceReply describes a place, leaning on the requested focus.
func PlaceReply(details types.PlaceDetails, focus types.Focus) types.ChatReply {
	name := details.Name
	parts := make([]string, 0, 3)
	weatherUsed := false

	switch {
	case focus == types.FocusBestTime && details.Weather != "":
		parts = append(parts, fmt.Sprintf("Planning a trip to %s? Here is the current outlook. %s", name, details.Weather))
		weatherUsed = true
	case focus == types.FocusThings && len(details.Nearby) > 0:
		top := details.Nearby
		if len(top) > maxListedInReply {
			top = top[:maxListedInReply]
		}
		parts = append(parts, fmt.Sprintf("Things to do in and around %s:\n%s", name, bulletList(top)))
	case details.Summary != "":
		parts = append(parts, details.Summary)
	default:
		return ApologyReply(name)
	}

	if details.Weather != "" && !weatherUsed {
		parts = append(parts, details.Weather)
	}
	if details.MapsURL != "" {
		parts = append(parts, "Map: "+details.MapsURL)
	}

	focused := ""
	switch focus {
	case types.FocusBestTime:
		focused = "Best time to visit " + name
	case types.FocusThings:
		focused = "Things to do in " + name
	}
	s := newSuggestionSet(focused, name)
	s.add("Best time to visit "+name, "Things to do in "+name)
	if focus != types.FocusNone {
		s.add("Tell me about " + name)
	}
	if len(details.Nearby) > 0 {
		s.add("Tell me about " + details.Nearby[0])
	}

	return types.ChatReply{Message: strings.Join(parts, "\n\n"), Suggestions: s.list()}
}
