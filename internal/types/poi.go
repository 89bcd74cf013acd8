package types

// Quality is the ordinal popularity rating of a point of interest (0-3).
type Quality int

const (
	QualityAny    Quality = 0
	QualityLow    Quality = 1
	QualityMedium Quality = 2
	QualityHigh   Quality = 3
)

// MaxAttractions caps every AttractionList.
const MaxAttractions = 12

// DefaultAttractionCount is used when callers do not ask for a size.
const DefaultAttractionCount = 10

// PointOfInterest is a named attraction candidate returned by a directory.
type PointOfInterest struct {
	Name       string     `json:"name"`
	Rating     Quality    `json:"rating"`
	Kinds      []string   `json:"kinds,omitempty"`
	CrossRef   string     `json:"cross_ref,omitempty"` // wikidata id or similar
	Location   Coordinate `json:"location"`
	DistanceKm float64    `json:"distance_km"`
}

// RadiusQuery describes one directory search around a centre.
type RadiusQuery struct {
	Center     Coordinate
	RadiusKm   float64
	MinQuality Quality
	Kinds      []string // empty means no category filter
	Limit      int
}

// AttractionList is an ordered list of unique display names.
type AttractionList []string

// StateAttractions is the result of a "top destinations" query.
type StateAttractions struct {
	State        string         `json:"state"`
	Token        string         `json:"token,omitempty"`
	Destinations AttractionList `json:"destinations"`
}
