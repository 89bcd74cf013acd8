package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/tripmate-api/config"
	"github.com/FACorreiaa/tripmate-api/internal/container"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	t.Setenv("OPEN_TRIPMAP_KEY", "")
	cfg, err := config.InitConfig()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := container.NewContainer(&cfg, logger)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	return SetupRouter(&Config{
		POIHandler:         c.POIHandler,
		PlaceHandler:       c.PlaceHandler,
		ChatHandler:        c.ChatHandler,
		DiagHandler:        c.DiagHandler,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
		RateLimitPerMinute: 1000,
		MetricsEnabled:     true,
	})
}

func TestRouter_ServiceEndpoints(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var version map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &version))
	assert.Equal(t, "tripmate", version["app"])
	assert.NotEmpty(t, version["commit"])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_MissingParams(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/destinations", "/destinations_full", "/place", "/place?name="} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":""}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty_message")
}

func TestRouter_SearchWithoutDirectoryKey(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=Sedona", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"results":[]}`, rec.Body.String())
}

func TestRouter_CORS(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "https://apex.oracle.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "https://apex.oracle.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_ChatGreetingNeedsNoUpstream(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hello","session_id":"s-1"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var reply map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, "s-1", reply["session_id"])
	assert.NotEmpty(t, reply["message"])
}
