package poi

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/tripmate-api/app/observability/metrics"
	"github.com/FACorreiaa/tripmate-api/internal/types"
)

// Pass is one directory search in a widen-on-failure sequence.
type Pass struct {
	Name       string
	RadiusKm   float64
	MinQuality types.Quality
	Kinds      []string
	MinResults int // stop here once this many names survive; 0 on the last pass
	Limit      int // raw rows requested from the directory
}

// StatePasses search around a state's centroid, widening the radius and
// relaxing quality until enough attractions turn up.
var StatePasses = []Pass{
	{Name: "state-high", RadiusKm: 250, MinQuality: types.QualityHigh, Kinds: CuratedKinds, MinResults: 8, Limit: 60},
	{Name: "state-medium", RadiusKm: 350, MinQuality: types.QualityMedium, Kinds: CuratedKinds, MinResults: 6, Limit: 80},
	{Name: "state-any", RadiusKm: 550, MinQuality: types.QualityAny, Limit: 100},
}

// NearbyPasses look for things to do around a single place.
var NearbyPasses = []Pass{
	{Name: "nearby-10km", RadiusKm: 10, MinQuality: types.QualityMedium, Kinds: CuratedKinds, MinResults: 5, Limit: 40},
	{Name: "nearby-30km", RadiusKm: 30, MinQuality: types.QualityLow, Kinds: CuratedKinds, MinResults: 5, Limit: 60},
	{Name: "nearby-60km", RadiusKm: 60, MinQuality: types.QualityAny, Limit: 80},
}

func (p Pass) query(center types.Coordinate) types.RadiusQuery {
	return types.RadiusQuery{
		Center:     center,
		RadiusKm:   p.RadiusKm,
		MinQuality: p.MinQuality,
		Kinds:      p.Kinds,
		Limit:      p.Limit,
	}
}

// Ranker turns directory results into a short, ordered attraction list.
type Ranker struct {
	dir    Directory
	logger *slog.Logger
}

func NewRanker(dir Directory, logger *slog.Logger) *Ranker {
	return &Ranker{dir: dir, logger: logger}
}

// Rank runs passes in order and returns the first list that satisfies its
// pass. When the final pass finds nothing the largest earlier partial list is
// returned. Directory errors are logged and count as an empty pass.
func (r *Ranker) Rank(ctx context.Context, center types.Coordinate, passes []Pass, targetCount int) types.AttractionList {
	best := types.AttractionList{}
	if !r.dir.Configured() {
		r.logger.DebugContext(ctx, "Directory not configured, skipping ranking", slog.String("directory", r.dir.Name()))
		return best
	}

	ctx, span := otel.Tracer("POIRanker").Start(ctx, "Rank")
	defer span.End()

	target := clampTarget(targetCount)
	m := metrics.Get()

	for i, p := range passes {
		l := r.logger.With(slog.String("pass", p.Name), slog.Float64("radius_km", p.RadiusKm))
		last := i == len(passes)-1

		// Some directories cannot take a context, so the deadline is checked here.
		if err := ctx.Err(); err != nil {
			l.WarnContext(ctx, "Ranking stopped early", slog.Any("error", err))
			break
		}

		pois, err := r.dir.Radius(ctx, p.query(center))
		if err != nil {
			l.WarnContext(ctx, "Directory pass failed", slog.Any("error", err))
			pois = nil
		}

		list := Select(center, pois, target)
		enough := len(list) > 0 && (last || len(list) >= min(p.MinResults, target))
		outcome := "short"
		switch {
		case err != nil:
			outcome = "error"
		case enough:
			outcome = "accepted"
		}
		m.RankerPassesTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("pass", p.Name),
			attribute.String("outcome", outcome),
		))
		l.DebugContext(ctx, "Ranking pass done", slog.Int("results", len(list)), slog.String("outcome", outcome))

		if enough {
			span.SetAttributes(attribute.String("rank.pass", p.Name), attribute.Int("rank.results", len(list)))
			return list
		}
		if len(list) > len(best) {
			best = list
		}
	}

	span.SetAttributes(attribute.Int("rank.results", len(best)))
	return best
}
