package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourlovestory/story-gateway/internal/services"
)

func TestHealthHandlerHealthy(t *testing.T) {
	handler := NewHealthHandler(services.NewMockStore(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "story-gateway", resp.Service)
	assert.Equal(t, "healthy", resp.Components["storage"])
	assert.False(t, resp.Timestamp.IsZero())
}

func TestHealthHandlerDegraded(t *testing.T) {
	store := services.NewMockStore()
	store.PingErr = errors.New("connection refused")
	handler := NewHealthHandler(store, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unhealthy", resp.Components["storage"])
}
