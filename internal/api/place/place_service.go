package place

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/tripmate-api/internal/api/geocoder"
	"github.com/FACorreiaa/tripmate-api/internal/api/poi"
	"github.com/FACorreiaa/tripmate-api/internal/cache"
	"github.com/FACorreiaa/tripmate-api/internal/types"
)

// detailWorkers bounds concurrent place lookups for a destinations listing.
const detailWorkers = 4

var _ PlaceService = (*PlaceServiceImpl)(nil)

// PlaceService builds place detail bundles.
type PlaceService interface {
	// ResolvePlace always returns a usable record for a non-empty name: the
	// summary falls back to a generated sentence and the maps link is always
	// set. The bool is false only for blank input.
	ResolvePlace(ctx context.Context, name string, focus types.Focus) (types.PlaceDetails, bool)
	DestinationsWithDetails(ctx context.Context, state string) types.StateDestinationDetails
}

type PlaceServiceImpl struct {
	logger       *slog.Logger
	encyclopedia Encyclopedia
	forecast     Forecaster
	geocoder     geocoder.Geocoder
	poiService   poi.POIService
	cache        *cache.Namespace[types.PlaceDetails]
}

func NewServiceImpl(
	encyclopedia Encyclopedia,
	forecast Forecaster,
	geo geocoder.Geocoder,
	poiService poi.POIService,
	placeCache *cache.Namespace[types.PlaceDetails],
	logger *slog.Logger,
) *PlaceServiceImpl {
	return &PlaceServiceImpl{
		logger:       logger,
		encyclopedia: encyclopedia,
		forecast:     forecast,
		geocoder:     geo,
		poiService:   poiService,
		cache:        placeCache,
	}
}

// MapsURL is the search link for a place name.
func MapsURL(name string) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("query", name)
	return "https://www.google.com/maps/search/?" + q.Encode()
}

// FallbackSummary is used when the encyclopedia knows nothing about a place.
func FallbackSummary(name string) string {
	return name + " is a notable destination."
}

func (s *PlaceServiceImpl) ResolvePlace(ctx context.Context, name string, focus types.Focus) (types.PlaceDetails, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.PlaceDetails{}, false
	}
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "ResolvePlace", trace.WithAttributes(
		attribute.String("place.name", name),
		attribute.String("place.focus", string(focus)),
	))
	defer span.End()

	details := s.details(ctx, name)
	if focus == types.FocusThings && details.Coordinates != nil {
		details.Nearby = s.poiService.Nearby(ctx, *details.Coordinates, types.DefaultAttractionCount)
	}
	span.SetStatus(codes.Ok, "place resolved")
	return details, true
}

// details returns the cached bundle for name or assembles a fresh one.
// Bundles without encyclopedia data are not cached.
func (s *PlaceServiceImpl) details(ctx context.Context, name string) types.PlaceDetails {
	l := s.logger.With(slog.String("place", name))
	if hit, ok := s.cache.Get(name); ok {
		l.DebugContext(ctx, "Place served from cache")
		return hit
	}

	details := types.PlaceDetails{
		Name:    name,
		Summary: FallbackSummary(name),
		MapsURL: MapsURL(name),
	}

	enrichment, enriched := s.encyclopedia.Summary(ctx, name)
	if enriched {
		if enrichment.Summary != "" {
			details.Summary = enrichment.Summary
		}
		details.ImageURL = enrichment.ImageURL
		details.Coordinates = enrichment.Coordinate
	}
	if details.Coordinates == nil {
		if coord, ok := s.geocoder.Geocode(ctx, name); ok {
			details.Coordinates = &coord
		}
	}
	if details.Coordinates != nil {
		if brief, ok := s.forecast.Brief(ctx, *details.Coordinates); ok {
			details.Weather = brief
		}
	}

	if enriched {
		s.cache.Set(name, details)
	}
	l.InfoContext(ctx, "Place resolved", slog.Bool("enriched", enriched), slog.Bool("has_weather", details.Weather != ""))
	return details
}

func (s *PlaceServiceImpl) DestinationsWithDetails(ctx context.Context, state string) types.StateDestinationDetails {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "DestinationsWithDetails")
	defer span.End()

	attractions := s.poiService.ResolveState(ctx, state)
	out := types.StateDestinationDetails{
		State:   attractions.State,
		Results: make([]types.DestinationDetail, len(attractions.Destinations)),
	}

	// Once the request deadline passes the remaining entries get the
	// fallback summary instead of an upstream lookup.
	var g errgroup.Group
	g.SetLimit(detailWorkers)
	for i, name := range attractions.Destinations {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				out.Results[i] = types.DestinationDetail{Name: name, Summary: FallbackSummary(name), MapsURL: MapsURL(name)}
				return err
			}
			d := s.details(ctx, name)
			out.Results[i] = types.DestinationDetail{
				Name:     d.Name,
				Summary:  d.Summary,
				ImageURL: d.ImageURL,
				MapsURL:  d.MapsURL,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.WarnContext(ctx, "Destination details cut short", slog.String("state", out.State), slog.Any("error", err))
		span.RecordError(err)
	}

	span.SetAttributes(attribute.Int("destinations.count", len(out.Results)))
	return out
}
