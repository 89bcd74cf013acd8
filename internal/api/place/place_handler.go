package place

import (
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/tripmate-api/internal/api"
	"github.com/FACorreiaa/tripmate-api/internal/types"
)

type PlaceHandler struct {
	placeService PlaceService
	logger       *slog.Logger
}

func NewPlaceHandler(placeService PlaceService, logger *slog.Logger) *PlaceHandler {
	return &PlaceHandler{
		placeService: placeService,
		logger:       logger,
	}
}

// GetPlace returns details for a place.
// GET /place?name=Sedona&focus=things
func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlaceHandler").Start(r.Context(), "GetPlace", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/place"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetPlace"))

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		l.WarnContext(ctx, "Missing name parameter")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Missing required query param: name")
		return
	}
	focus := types.ParseFocus(r.URL.Query().Get("focus"))

	details, ok := h.placeService.ResolvePlace(ctx, name, focus)
	if !ok {
		api.ErrorResponse(w, r, http.StatusNotFound, "No details found for "+name)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, details)
}

// GetDestinationsFull lists a state's destinations with compact details.
// GET /destinations_full?state=Arizona
func (h *PlaceHandler) GetDestinationsFull(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlaceHandler").Start(r.Context(), "GetDestinationsFull", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/destinations_full"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetDestinationsFull"))

	state := strings.TrimSpace(r.URL.Query().Get("state"))
	if state == "" {
		l.WarnContext(ctx, "Missing state parameter")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Missing required query param: state")
		return
	}

	result := h.placeService.DestinationsWithDetails(ctx, state)
	l.InfoContext(ctx, "Destinations with details fetched", slog.String("state", result.State), slog.Int("count", len(result.Results)))
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}
