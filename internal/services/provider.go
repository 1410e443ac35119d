// Package services holds the text-generation providers and the orchestrator
// that drives them, plus the archive storage backend.
package services

import (
	"context"
	"fmt"
)

// Provider kinds, in fallback-chain order.
const (
	ProviderGroq         = "groq"
	ProviderGemini       = "gemini"
	ProviderPollinations = "pollinations"
)

// Chat roles used by the OpenAI-compatible providers.
const (
	ChatRoleSystem = "system"
	ChatRoleUser   = "user"
)

// ChatMessage is one turn of an OpenAI-style conversation payload.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Credential is one API key bound to the provider it belongs to. Keys are
// loaded from the environment at startup; the pool for a provider may hold
// several.
type Credential struct {
	Provider string
	Key      string
}

// ProviderError is a non-success response from a provider's API.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
}

// RateLimited reports whether the provider refused the call for quota
// reasons. Rate limits rotate to the next key; other errors skip the
// provider entirely.
func (e *ProviderError) RateLimited() bool {
	return e.StatusCode == 429
}

// Provider generates raw narrative text from a prompt pair. Implementations
// wrap one upstream text API each and do no parsing of the model output.
type Provider interface {
	// Kind returns the provider identifier used in logs and errors.
	Kind() string

	// NeedsCredential reports whether Generate requires an API key.
	NeedsCredential() bool

	// ValidCredential reports whether the key has this provider's shape.
	// A key that fails the check is skipped without spending a request.
	ValidCredential(key string) bool

	// Generate performs one completion call and returns the raw model text.
	Generate(ctx context.Context, key, systemPrompt, userPrompt string) (string, error)
}
