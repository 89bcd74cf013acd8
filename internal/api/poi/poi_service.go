package poi

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/tripmate-api/internal/api/geocoder"
	"github.com/FACorreiaa/tripmate-api/internal/api/states"
	"github.com/FACorreiaa/tripmate-api/internal/cache"
	"github.com/FACorreiaa/tripmate-api/internal/types"
)

const defaultSuggestLimit = 8

var _ POIService = (*POIServiceImpl)(nil)

// POIService answers attraction questions for states and places.
type POIService interface {
	// ResolveState returns the top attractions for free text naming a state.
	// Text that is not a state is geocoded as-is. Destinations is empty,
	// never nil, when nothing could be found.
	ResolveState(ctx context.Context, text string) types.StateAttractions
	Nearby(ctx context.Context, center types.Coordinate, targetCount int) types.AttractionList
	Search(ctx context.Context, query string) []string
}

type POIServiceImpl struct {
	logger      *slog.Logger
	geocoder    geocoder.Geocoder
	directory   Directory
	ranker      *Ranker
	cache       *cache.Namespace[types.StateAttractions]
	targetCount int
}

func NewServiceImpl(geo geocoder.Geocoder, dir Directory, destCache *cache.Namespace[types.StateAttractions], targetCount int, logger *slog.Logger) *POIServiceImpl {
	return &POIServiceImpl{
		logger:      logger,
		geocoder:    geo,
		directory:   dir,
		ranker:      NewRanker(dir, logger),
		cache:       destCache,
		targetCount: clampTarget(targetCount),
	}
}

func (s *POIServiceImpl) ResolveState(ctx context.Context, text string) types.StateAttractions {
	ctx, span := otel.Tracer("POIService").Start(ctx, "ResolveState", trace.WithAttributes(
		attribute.String("state.input", text),
	))
	defer span.End()

	result := types.StateAttractions{State: strings.TrimSpace(text), Destinations: types.AttractionList{}}
	if result.State == "" {
		span.SetStatus(codes.Error, "empty input")
		return result
	}

	query := result.State
	if token, ok := states.Identify(text); ok {
		result.Token = token
		result.State = states.DisplayName(token)
		query = result.State
	}
	l := s.logger.With(slog.String("state", result.State))

	if hit, ok := s.cache.Get(query); ok {
		l.DebugContext(ctx, "Destinations served from cache")
		return hit
	}

	center, ok := s.geocoder.Geocode(ctx, query)
	if !ok {
		l.InfoContext(ctx, "Could not geocode state")
		span.SetStatus(codes.Error, "geocode miss")
		return result
	}

	result.Destinations = s.ranker.Rank(ctx, center, StatePasses, s.targetCount)
	if len(result.Destinations) > 0 {
		s.cache.Set(query, result)
	}
	l.InfoContext(ctx, "Destinations resolved", slog.Int("count", len(result.Destinations)))
	span.SetAttributes(attribute.Int("state.destinations", len(result.Destinations)))
	span.SetStatus(codes.Ok, "destinations resolved")
	return result
}

func (s *POIServiceImpl) Nearby(ctx context.Context, center types.Coordinate, targetCount int) types.AttractionList {
	ctx, span := otel.Tracer("POIService").Start(ctx, "Nearby")
	defer span.End()
	if !center.Valid() {
		return types.AttractionList{}
	}
	return s.ranker.Rank(ctx, center, NearbyPasses, targetCount)
}

func (s *POIServiceImpl) Search(ctx context.Context, query string) []string {
	ctx, span := otel.Tracer("POIService").Start(ctx, "Search")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" || !s.directory.Configured() {
		return []string{}
	}
	names, err := s.directory.Suggest(ctx, query, defaultSuggestLimit)
	if err != nil {
		if !errors.Is(err, types.ErrNotConfigured) {
			s.logger.WarnContext(ctx, "Directory suggest failed", slog.String("query", query), slog.Any("error", err))
			span.RecordError(err)
		}
		return []string{}
	}
	return names
}
