package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Message string `json:"message"`
}

func TestDecodeJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr string
	}{
		{"valid", `{"message":"hi"}`, "hi", ""},
		{"unknown keys ignored", `{"message":"hi","extra":1}`, "hi", ""},
		{"empty", ``, "", "body must not be empty"},
		{"malformed", `{"message":`, "", "badly-formed JSON"},
		{"wrong type", `{"message":5}`, "", `incorrect JSON type for field "message"`},
		{"trailing value", `{"message":"hi"}{}`, "hi", "single JSON value"},
		{"too large", `{"message":"` + strings.Repeat("x", MaxBodyBytes) + `"}`, "", "must not be larger than"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst payload
			err := DecodeJSONBody(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)), &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
			assert.Equal(t, tt.want, dst.Message)
		})
	}
}

func TestErrorResponseWithHint(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorResponseWithHint(rec, httptest.NewRequest(http.MethodPost, "/chat", nil), http.StatusBadRequest, "empty_message", "Say something")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "empty_message", body["error"])
	assert.Equal(t, "Say something", body["message"])
}
