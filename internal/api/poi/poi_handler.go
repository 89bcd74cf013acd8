package poi

import (
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/tripmate-api/internal/api"
)

type POIHandler struct {
	poiService POIService
	logger     *slog.Logger
}

func NewPOIHandler(poiService POIService, logger *slog.Logger) *POIHandler {
	return &POIHandler{
		poiService: poiService,
		logger:     logger,
	}
}

// GetDestinations lists the top attractions of a state.
// GET /destinations?state=Arizona
func (h *POIHandler) GetDestinations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("POIHandler").Start(r.Context(), "GetDestinations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/destinations"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetDestinations"))

	state := strings.TrimSpace(r.URL.Query().Get("state"))
	if state == "" {
		l.WarnContext(ctx, "Missing state parameter")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Missing required query param: state")
		return
	}

	result := h.poiService.ResolveState(ctx, state)
	l.InfoContext(ctx, "Destinations fetched", slog.String("state", result.State), slog.Int("count", len(result.Destinations)))
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// Search returns directory name suggestions.
// GET /search?q=Sedona
func (h *POIHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("POIHandler").Start(r.Context(), "Search", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/search"),
	))
	defer span.End()

	results := h.poiService.Search(ctx, r.URL.Query().Get("q"))
	api.WriteJSONResponse(w, r, http.StatusOK, map[string][]string{"results": results})
}
