package diag

import (
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/tripmate-api/internal/api"
)

const appName = "tripmate"

type DiagHandler struct {
	diagService *DiagService
	version     string
	logger      *slog.Logger
}

func NewDiagHandler(diagService *DiagService, version string, logger *slog.Logger) *DiagHandler {
	return &DiagHandler{
		diagService: diagService,
		version:     version,
		logger:      logger,
	}
}

func (h *DiagHandler) Home(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{
		"message": "Welcome to TripMate API",
		"available_endpoints": map[string]string{
			"/health":                          "Check API health",
			"/version":                         "Build information",
			"/diag":                            "Run outbound call diagnostics",
			"/search?q=Sedona":                 "Search places by name",
			"/destinations?state=Arizona":      "Top destinations for a state",
			"/destinations_full?state=Arizona": "Destinations + compact details",
			"/place?name=Sedona":               "Details for a place",
			"/chat":                            "POST {message, session_id} to chat",
		},
	})
}

func (h *DiagHandler) Health(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DiagHandler) Version(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"app": appName, "commit": h.version})
}

// Diag always answers 200; failures are reported inside the body.
func (h *DiagHandler) Diag(w http.ResponseWriter, r *http.Request) {
	report := h.diagService.Run(r.Context())
	h.logger.InfoContext(r.Context(), "Diagnostics run", slog.Bool("ok", report.OK))
	api.WriteJSONResponse(w, r, http.StatusOK, report)
}
