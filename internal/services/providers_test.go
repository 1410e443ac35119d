package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroqGenerate(t *testing.T) {
	var gotAuth string
	var gotBody groqRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		assert.Equal(t, "/chat/completions", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"story\":\"hi\"}"}}]}`))
	}))
	defer server.Close()

	p := NewGroqProvider(5 * time.Second)
	p.baseURL = server.URL

	raw, err := p.Generate(context.Background(), "gsk_test", "system", "user")

	require.NoError(t, err)
	assert.Equal(t, `{"story":"hi"}`, raw)
	assert.Equal(t, "Bearer gsk_test", gotAuth)
	assert.Equal(t, groqModel, gotBody.Model)
	assert.Equal(t, "json_object", gotBody.ResponseFormat.Type)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, ChatRoleSystem, gotBody.Messages[0].Role)
}

func TestGroqGenerateRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limit exceeded"))
	}))
	defer server.Close()

	p := NewGroqProvider(5 * time.Second)
	p.baseURL = server.URL

	_, err := p.Generate(context.Background(), "gsk_test", "s", "u")

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.True(t, pe.RateLimited())
	assert.Equal(t, ProviderGroq, pe.Provider)
	assert.Contains(t, pe.Message, "rate limit")
}

func TestGroqValidCredential(t *testing.T) {
	p := NewGroqProvider(time.Second)
	assert.True(t, p.ValidCredential("gsk_abc123"))
	assert.False(t, p.ValidCredential("AIzaXYZ"))
	assert.False(t, p.ValidCredential(""))
}

func TestGeminiGenerate(t *testing.T) {
	var gotBody geminiRequest
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"story\":\"hi\"}"}]}}]}`))
	}))
	defer server.Close()

	p := NewGeminiProvider(5 * time.Second)
	p.baseURL = server.URL

	raw, err := p.Generate(context.Background(), "AIzaTest", "system", "user")

	require.NoError(t, err)
	assert.Equal(t, `{"story":"hi"}`, raw)
	assert.Equal(t, "/models/"+geminiModel+":generateContent", gotPath)
	assert.Equal(t, "AIzaTest", gotKey)
	assert.Equal(t, "application/json", gotBody.GenerationConfig.ResponseMimeType)
	require.Len(t, gotBody.Contents, 1)
	text := gotBody.Contents[0].Parts[0].Text
	assert.True(t, strings.Contains(text, "system") && strings.Contains(text, "user"))
	assert.Contains(t, text, "EXACTLY 4 options")
}

func TestGeminiGenerateEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	p := NewGeminiProvider(5 * time.Second)
	p.baseURL = server.URL

	_, err := p.Generate(context.Background(), "AIzaTest", "s", "u")
	assert.Error(t, err)
}

func TestGeminiValidCredential(t *testing.T) {
	p := NewGeminiProvider(time.Second)
	assert.True(t, p.ValidCredential("AIzaSyExample"))
	assert.False(t, p.ValidCredential("gsk_abc"))
}

func TestPollinationsGenerate(t *testing.T) {
	var gotBody pollinationsRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"story":"raw text response"}`))
	}))
	defer server.Close()

	p := NewPollinationsProvider(5 * time.Second)
	p.baseURL = server.URL

	raw, err := p.Generate(context.Background(), "", "system", "user")

	require.NoError(t, err)
	assert.Equal(t, `{"story":"raw text response"}`, raw)
	assert.Equal(t, "openai", gotBody.Model)
	assert.True(t, gotBody.JSONMode)
	assert.False(t, p.NeedsCredential())
}

func TestPollinationsGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("overloaded"))
	}))
	defer server.Close()

	p := NewPollinationsProvider(5 * time.Second)
	p.baseURL = server.URL

	_, err := p.Generate(context.Background(), "", "s", "u")

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.False(t, pe.RateLimited())
}
