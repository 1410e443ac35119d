package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const pollinationsURL = "https://text.pollinations.ai/"

// PollinationsProvider calls the keyless pollinations.ai text endpoint. It
// is the tail of the fallback chain: free, unauthenticated, best effort.
type PollinationsProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewPollinationsProvider creates a pollinations provider with the given
// request timeout.
func NewPollinationsProvider(timeout time.Duration) *PollinationsProvider {
	return &PollinationsProvider{
		baseURL:    pollinationsURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *PollinationsProvider) Kind() string {
	return ProviderPollinations
}

func (p *PollinationsProvider) NeedsCredential() bool {
	return false
}

func (p *PollinationsProvider) ValidCredential(string) bool {
	return true
}

type pollinationsRequest struct {
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	JSONMode  bool          `json:"jsonMode"`
	MaxTokens int           `json:"max_tokens"`
}

func (p *PollinationsProvider) Generate(ctx context.Context, _ string, systemPrompt, userPrompt string) (string, error) {
	reqBody := pollinationsRequest{
		Model: "openai",
		Messages: []ChatMessage{
			{Role: ChatRoleSystem, Content: systemPrompt},
			{Role: ChatRoleUser, Content: userPrompt},
		},
		JSONMode:  true,
		MaxTokens: 1500,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal pollinations request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create pollinations request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("pollinations request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read pollinations response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Provider:   ProviderPollinations,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(respBody)),
		}
	}

	// The endpoint returns the completion text directly, not an envelope.
	return string(respBody), nil
}
