package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/tripmate-api/internal/types"
)

var _ Directory = (*OpenTripMapDirectory)(nil)

// Directory is a source of named points of interest around a coordinate.
type Directory interface {
	Name() string
	// Configured reports whether the directory can be called at all.
	Configured() bool
	Radius(ctx context.Context, q types.RadiusQuery) ([]types.PointOfInterest, error)
	Suggest(ctx context.Context, text string, limit int) ([]string, error)
}

// The continental US centre and a radius that covers it, used to bias
// autosuggest towards US results.
var usCenter = types.Coordinate{Lat: 39.8283, Lon: -98.5795}

const usSuggestRadiusM = 3_000_000

// OpenTripMapDirectory queries the OpenTripMap places API.
type OpenTripMapDirectory struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewOpenTripMapDirectory(baseURL, apiKey string, httpClient *http.Client, logger *slog.Logger) *OpenTripMapDirectory {
	return &OpenTripMapDirectory{
		logger:     logger,
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(apiKey),
	}
}

func (d *OpenTripMapDirectory) Name() string { return "opentripmap" }

func (d *OpenTripMapDirectory) Configured() bool { return d.apiKey != "" }

type otmPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type otmPlace struct {
	XID      string   `json:"xid"`
	Name     string   `json:"name"`
	Dist     float64  `json:"dist"`
	Rate     int      `json:"rate"`
	Wikidata string   `json:"wikidata"`
	Kinds    string   `json:"kinds"`
	Point    otmPoint `json:"point"`
}

// rateParam maps a minimum quality onto the OpenTripMap "rate" filter.
func rateParam(q types.Quality) string {
	switch {
	case q >= types.QualityHigh:
		return "3"
	case q == types.QualityMedium:
		return "2"
	case q == types.QualityLow:
		return "1"
	default:
		return ""
	}
}

// qualityFromRate folds the heritage variants (1h..3h, sent as 5..7) onto 1..3.
func qualityFromRate(rate int) types.Quality {
	if rate > 3 {
		rate -= 4
	}
	if rate < 0 {
		rate = 0
	}
	if rate > 3 {
		rate = 3
	}
	return types.Quality(rate)
}

func (d *OpenTripMapDirectory) Radius(ctx context.Context, q types.RadiusQuery) ([]types.PointOfInterest, error) {
	if !d.Configured() {
		return nil, types.ErrNotConfigured
	}
	ctx, span := otel.Tracer("OpenTripMapDirectory").Start(ctx, "Radius", trace.WithAttributes(
		attribute.Float64("radius.km", q.RadiusKm),
		attribute.Int("radius.min_quality", int(q.MinQuality)),
	))
	defer span.End()

	params := url.Values{}
	params.Set("apikey", d.apiKey)
	params.Set("lat", strconv.FormatFloat(q.Center.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(q.Center.Lon, 'f', -1, 64))
	params.Set("radius", strconv.Itoa(int(q.RadiusKm*1000)))
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if rate := rateParam(q.MinQuality); rate != "" {
		params.Set("rate", rate)
	}
	if len(q.Kinds) > 0 {
		params.Set("kinds", strings.Join(q.Kinds, ","))
	}
	params.Set("format", "json")

	var rows []otmPlace
	if err := d.getJSON(ctx, "/radius", params, &rows); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "radius query failed")
		return nil, err
	}

	out := make([]types.PointOfInterest, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		out = append(out, types.PointOfInterest{
			Name:       name,
			Rating:     qualityFromRate(row.Rate),
			Kinds:      splitKinds(row.Kinds),
			CrossRef:   row.Wikidata,
			Location:   types.Coordinate{Lat: row.Point.Lat, Lon: row.Point.Lon},
			DistanceKm: row.Dist / 1000,
		})
	}
	span.SetAttributes(attribute.Int("radius.results", len(out)))
	span.SetStatus(codes.Ok, "radius query done")
	return out, nil
}

func (d *OpenTripMapDirectory) Suggest(ctx context.Context, text string, limit int) ([]string, error) {
	if !d.Configured() {
		return nil, types.ErrNotConfigured
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, types.ErrEmptyInput
	}

	params := url.Values{}
	params.Set("apikey", d.apiKey)
	params.Set("name", text)
	params.Set("lat", strconv.FormatFloat(usCenter.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(usCenter.Lon, 'f', -1, 64))
	params.Set("radius", strconv.Itoa(usSuggestRadiusM))
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	params.Set("format", "json")

	var rows []otmPlace
	if err := d.getJSON(ctx, "/autosuggest", params, &rows); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
	}
	return uniqueNames(names, limit), nil
}

func (d *OpenTripMapDirectory) getJSON(ctx context.Context, path string, params url.Values, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build opentripmap request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("opentripmap request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: opentripmap %s status %d", types.ErrBadStatus, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode opentripmap response: %w", err)
	}
	return nil
}

// Check makes a minimal radius call so diagnostics can see the key works.
func (d *OpenTripMapDirectory) Check(ctx context.Context) error {
	_, err := d.Radius(ctx, types.RadiusQuery{Center: usCenter, RadiusKm: 1, Limit: 1})
	return err
}

func splitKinds(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	kinds := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kinds = append(kinds, p)
		}
	}
	return kinds
}
