package types

// Focus narrows a place reply to one aspect of the visit.
type Focus string

const (
	FocusNone     Focus = ""
	FocusBestTime Focus = "best_time"
	FocusThings   Focus = "things"
)

// ParseFocus maps free text onto a known focus, ignoring anything else.
func ParseFocus(s string) Focus {
	switch Focus(s) {
	case FocusBestTime, FocusThings:
		return Focus(s)
	default:
		return FocusNone
	}
}

// Enrichment is what the encyclopedia knows about a title.
type Enrichment struct {
	Summary    string
	ImageURL   string
	Coordinate *Coordinate
}

// PlaceDetails is the canonical detail shape for a place.
type PlaceDetails struct {
	Name        string      `json:"name"`
	Summary     string      `json:"summary"`
	ImageURL    string      `json:"image_url,omitempty"`
	Weather     string      `json:"weather,omitempty"`
	MapsURL     string      `json:"maps_url"`
	Coordinates *Coordinate `json:"coordinates,omitempty"`
	// Nearby is only filled when the caller asked for things to do.
	Nearby AttractionList `json:"nearby,omitempty"`
}

// DestinationDetail is the compact form used by the destinations_full listing.
type DestinationDetail struct {
	Name     string `json:"name"`
	Summary  string `json:"summary"`
	ImageURL string `json:"image_url,omitempty"`
	MapsURL  string `json:"maps_url"`
}

// StateDestinationDetails is the destinations_full response.
type StateDestinationDetails struct {
	State   string              `json:"state"`
	Results []DestinationDetail `json:"results"`
}
