package poi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/serjvanilla/go-overpass"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/FACorreiaa/tripmate-api/internal/types"
)

var _ Directory = (*OverpassDirectory)(nil)

// OverpassDirectory answers radius queries from OpenStreetMap through an
// Overpass API endpoint. It needs no key.
type OverpassDirectory struct {
	client *overpass.Client
	logger *slog.Logger
}

func NewOverpassDirectory(endpoint string, httpClient *http.Client, logger *slog.Logger) *OverpassDirectory {
	client := overpass.NewWithSettings(endpoint, 2, httpClient)
	return &OverpassDirectory{client: &client, logger: logger}
}

func (d *OverpassDirectory) Name() string { return "overpass" }

func (d *OverpassDirectory) Configured() bool { return d.client != nil }

// osmFilters select the tagged features that map onto curated kinds.
var osmFilters = []string{
	`["tourism"~"^(attraction|museum|zoo|theme_park|aquarium|gallery)$"]`,
	`["historic"]`,
	`["natural"~"^(peak|waterfall|beach|arch|cave_entrance|volcano|glacier|hot_spring)$"]`,
	`["leisure"~"^(park|nature_reserve|garden)$"]`,
	`["boundary"="national_park"]`,
}

// radiusQuery builds an Overpass QL query for named features around a point.
// Quality filters need a wikidata link, which is how OSM marks notable places.
func radiusQuery(q types.RadiusQuery) string {
	around := fmt.Sprintf("(around:%d,%f,%f)", int(q.RadiusKm*1000), q.Center.Lat, q.Center.Lon)
	notable := ""
	if q.MinQuality > types.QualityAny {
		notable = `["wikidata"]`
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n(\n")
	for _, f := range osmFilters {
		for _, el := range []string{"node", "way"} {
			fmt.Fprintf(&b, "  %s[\"name\"]%s%s%s;\n", el, f, notable, around)
		}
	}
	fmt.Fprintf(&b, ");\nout body %d;\n>;\nout skel qt;\n", limit)
	return b.String()
}

func (d *OverpassDirectory) Radius(ctx context.Context, q types.RadiusQuery) ([]types.PointOfInterest, error) {
	_, span := otel.Tracer("OverpassDirectory").Start(ctx, "Radius")
	defer span.End()

	result, err := d.client.Query(radiusQuery(q))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("overpass query failed: %w", err)
	}

	pois := convertResult(q.Center, result)
	pois = filterPOIs(pois, q.MinQuality, q.Kinds)
	span.SetAttributes(attribute.Int("radius.results", len(pois)))
	return pois, nil
}

// US bounding box for name suggestions.
const usBBox = "24.4,-125.0,49.5,-66.9"

func (d *OverpassDirectory) Suggest(ctx context.Context, text string, limit int) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, types.ErrEmptyInput
	}
	if limit <= 0 {
		limit = 8
	}
	pattern := strings.ReplaceAll(regexp.QuoteMeta(text), `"`, `\"`)
	query := fmt.Sprintf(
		"[out:json][timeout:25];\n(\n  node[\"name\"~\"^%s\",i][\"tourism\"](%s);\n  node[\"name\"~\"^%s\",i][\"place\"~\"^(city|town)$\"](%s);\n);\nout body %d;\n",
		pattern, usBBox, pattern, usBBox, limit*3,
	)

	result, err := d.client.Query(query)
	if err != nil {
		return nil, fmt.Errorf("overpass suggest failed: %w", err)
	}
	pois := convertResult(types.Coordinate{}, result)
	sort.SliceStable(pois, func(i, j int) bool { return Score(pois[i]) > Score(pois[j]) })
	names := make([]string, 0, len(pois))
	for _, p := range pois {
		names = append(names, p.Name)
	}
	return uniqueNames(names, limit), nil
}

// convertResult flattens named nodes and ways into points of interest.
// A way's location is the mean of its member nodes.
func convertResult(center types.Coordinate, result overpass.Result) []types.PointOfInterest {
	pois := make([]types.PointOfInterest, 0, len(result.Nodes)+len(result.Ways))

	for _, node := range result.Nodes {
		if node == nil || node.Tags["name"] == "" {
			continue
		}
		pois = append(pois, fromTags(center, node.Tags, types.Coordinate{Lat: node.Lat, Lon: node.Lon}))
	}

	for _, way := range result.Ways {
		if way == nil || way.Tags["name"] == "" {
			continue
		}
		var lat, lon float64
		var count int
		for _, n := range way.Nodes {
			if n == nil {
				continue
			}
			lat += n.Lat
			lon += n.Lon
			count++
		}
		if count == 0 {
			continue
		}
		pois = append(pois, fromTags(center, way.Tags, types.Coordinate{Lat: lat / float64(count), Lon: lon / float64(count)}))
	}

	// map iteration order is random
	sort.Slice(pois, func(i, j int) bool {
		if pois[i].DistanceKm != pois[j].DistanceKm {
			return pois[i].DistanceKm < pois[j].DistanceKm
		}
		return pois[i].Name < pois[j].Name
	})
	return pois
}

func fromTags(center types.Coordinate, tags map[string]string, loc types.Coordinate) types.PointOfInterest {
	p := types.PointOfInterest{
		Name:     strings.TrimSpace(tags["name"]),
		Rating:   qualityFromTags(tags),
		Kinds:    kindsFromTags(tags),
		CrossRef: tags["wikidata"],
		Location: loc,
	}
	if center.Valid() && (center != types.Coordinate{}) {
		p.DistanceKm = center.DistanceKm(loc)
	}
	return p
}

// qualityFromTags counts notability markers: a wikidata link, a wikipedia
// article and a heritage designation.
func qualityFromTags(tags map[string]string) types.Quality {
	q := 0
	for _, k := range []string{"wikidata", "wikipedia", "heritage"} {
		if tags[k] != "" {
			q++
		}
	}
	return types.Quality(q)
}

func kindsFromTags(tags map[string]string) []string {
	var kinds []string
	add := func(k string) {
		for _, existing := range kinds {
			if existing == k {
				return
			}
		}
		kinds = append(kinds, k)
	}

	switch tags["tourism"] {
	case "museum", "gallery":
		add("museums")
	case "zoo", "theme_park", "aquarium":
		add("amusements")
	case "attraction":
		add("interesting_places")
	}
	if h := tags["historic"]; h != "" {
		if h == "memorial" || h == "monument" {
			add("monuments_and_memorials")
		} else {
			add("historic")
		}
	}
	if n := tags["natural"]; n != "" {
		if n == "beach" {
			add("beaches")
		}
		add("natural")
	}
	switch tags["leisure"] {
	case "park", "garden":
		add("gardens_and_parks")
	case "nature_reserve":
		add("natural")
	}
	if tags["boundary"] == "national_park" {
		add("national_parks")
	}
	return kinds
}

func filterPOIs(pois []types.PointOfInterest, minQuality types.Quality, kinds []string) []types.PointOfInterest {
	wanted := toSet(kinds)
	out := pois[:0]
	for _, p := range pois {
		if p.Rating < minQuality {
			continue
		}
		if len(wanted) > 0 && !anyIn(p.Kinds, wanted) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func anyIn(items []string, set map[string]struct{}) bool {
	for _, it := range items {
		if _, ok := set[it]; ok {
			return true
		}
	}
	return false
}
