package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okCheck(name string) readinessCheck {
	return readinessCheck{name: name, ping: func(context.Context) error { return nil }}
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestRouter_Ready(t *testing.T) {
	tests := []struct {
		name       string
		checks     []readinessCheck
		wantStatus int
		wantFailed []string
	}{
		{
			name:       "all dependencies up",
			checks:     []readinessCheck{okCheck("zeebe"), okCheck("postgres")},
			wantStatus: http.StatusOK,
		},
		{
			name: "redis down",
			checks: []readinessCheck{
				okCheck("zeebe"),
				{name: "redis", ping: func(context.Context) error { return errors.New("connection refused") }},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantFailed: []string{"redis"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(tt.checks).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body struct {
				Status   string            `json:"status"`
				Failures map[string]string `json:"failures"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			for _, name := range tt.wantFailed {
				assert.Contains(t, body.Failures, name)
			}
			assert.Len(t, body.Failures, len(tt.wantFailed))
		})
	}
}

func TestRouter_MetricsAndMethods(t *testing.T) {
	r := newRouter(nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandler_RecoversPanickingCheck(t *testing.T) {
	h := newHandler([]readinessCheck{{name: "broken", ping: func(context.Context) error { panic("boom") }}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
