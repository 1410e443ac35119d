package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourlovestory/story-gateway/internal/services"
	"github.com/yourlovestory/story-gateway/pkg/archive"
)

const testIssuer = "https://accounts.example.com"

func signedToken(t *testing.T, issuer, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  issuer,
		Subject: subject,
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func postSync(t *testing.T, handler http.Handler, req SyncRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, "/sync", strings.NewReader(string(body)))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func TestSyncMergesAndPersists(t *testing.T) {
	store := services.NewMockStore()
	require.NoError(t, store.SaveArchive(context.Background(), "user-1",
		[]archive.Record{{ID: "a", Title: "server copy", Timestamp: 200}}))
	handler := NewSyncHandler(store, testIssuer, testLogger())

	w := postSync(t, handler, SyncRequest{
		UserID: "user-1",
		Archive: []archive.Record{
			{ID: "a", Title: "device copy", Timestamp: 999},
			{ID: "b", Title: "new on device", Timestamp: 100},
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp SyncResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Archive, 2)
	assert.Equal(t, "server copy", resp.Archive[0].Title)
	assert.Equal(t, "b", resp.Archive[1].ID)

	stored, err := store.LoadArchive(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, resp.Archive, stored)
}

func TestSyncFirstDevice(t *testing.T) {
	store := services.NewMockStore()
	handler := NewSyncHandler(store, testIssuer, testLogger())

	w := postSync(t, handler, SyncRequest{
		UserID:  "fresh",
		Archive: []archive.Record{{ID: "x", Timestamp: 1}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	stored, err := store.LoadArchive(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestSyncAcceptsMatchingToken(t *testing.T) {
	store := services.NewMockStore()
	handler := NewSyncHandler(store, testIssuer, testLogger())

	w := postSync(t, handler, SyncRequest{
		UserID: "user-1",
		Token:  signedToken(t, testIssuer, "user-1"),
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSyncRejectsWrongSubject(t *testing.T) {
	store := services.NewMockStore()
	handler := NewSyncHandler(store, testIssuer, testLogger())

	w := postSync(t, handler, SyncRequest{
		UserID: "user-1",
		Token:  signedToken(t, testIssuer, "someone-else"),
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSyncRejectsWrongIssuer(t *testing.T) {
	store := services.NewMockStore()
	handler := NewSyncHandler(store, testIssuer, testLogger())

	w := postSync(t, handler, SyncRequest{
		UserID: "user-1",
		Token:  signedToken(t, "https://evil.example.com", "user-1"),
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSyncRejectsGarbageToken(t *testing.T) {
	store := services.NewMockStore()
	handler := NewSyncHandler(store, testIssuer, testLogger())

	w := postSync(t, handler, SyncRequest{UserID: "user-1", Token: "not.a.jwt"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSyncRequiresUserID(t *testing.T) {
	handler := NewSyncHandler(services.NewMockStore(), testIssuer, testLogger())

	w := postSync(t, handler, SyncRequest{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncStorageFailure(t *testing.T) {
	store := services.NewMockStore()
	store.LoadErr = assert.AnError
	handler := NewSyncHandler(store, testIssuer, testLogger())

	w := postSync(t, handler, SyncRequest{UserID: "user-1"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
