package diag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/tripmate-api/internal/types"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                  { return s.name }
func (s stubChecker) Check(_ context.Context) error { return s.err }

func TestRun_AllHealthy(t *testing.T) {
	svc := NewDiagService([]Checker{stubChecker{name: "wikipedia"}, stubChecker{name: "nominatim"}}, true, discardLogger)

	report := svc.Run(context.Background())

	assert.True(t, report.OK)
	assert.Equal(t, true, report.Checks["wikipedia_ok"])
	assert.Equal(t, true, report.Checks["nominatim_ok"])
	assert.Equal(t, true, report.Checks["opentripmap_key_present"])
}

func TestRun_FailureIsReported(t *testing.T) {
	svc := NewDiagService([]Checker{
		stubChecker{name: "wikipedia"},
		stubChecker{name: "nominatim", err: fmt.Errorf("%w: geocoder status 503", types.ErrBadStatus)},
		stubChecker{name: "opentripmap", err: types.ErrNotConfigured},
	}, false, discardLogger)

	report := svc.Run(context.Background())

	assert.False(t, report.OK)
	assert.Equal(t, true, report.Checks["wikipedia_ok"])
	assert.Equal(t, false, report.Checks["nominatim_ok"])
	assert.Contains(t, report.Checks["nominatim_err"], "503")
	assert.Equal(t, "not configured", report.Checks["opentripmap_err"])
	assert.Equal(t, false, report.Checks["opentripmap_key_present"])
}

func TestHandlers(t *testing.T) {
	svc := NewDiagService([]Checker{stubChecker{name: "wikipedia", err: errors.New("dial tcp: timeout")}}, false, discardLogger)
	h := NewDiagHandler(svc, "abc123", discardLogger)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, body map[string]any)
	}{
		{"home", h.Home, func(t *testing.T, body map[string]any) {
			assert.Equal(t, "Welcome to TripMate API", body["message"])
			assert.Contains(t, body["available_endpoints"], "/chat")
		}},
		{"health", h.Health, func(t *testing.T, body map[string]any) {
			assert.Equal(t, "ok", body["status"])
		}},
		{"version", h.Version, func(t *testing.T, body map[string]any) {
			assert.Equal(t, "tripmate", body["app"])
			assert.Equal(t, "abc123", body["commit"])
		}},
		{"diag", h.Diag, func(t *testing.T, body map[string]any) {
			assert.Equal(t, false, body["ok"])
			checks, ok := body["checks"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "dial tcp: timeout", checks["wikipedia_err"])
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, http.StatusOK, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			tt.check(t, body)
		})
	}
}
