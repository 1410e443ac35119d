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

const (
	groqBaseURL   = "https://api.groq.com/openai/v1"
	groqModel     = "llama-3.1-70b-versatile"
	groqKeyPrefix = "gsk_"
)

// GroqProvider calls Groq's OpenAI-compatible chat completions API.
type GroqProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewGroqProvider creates a Groq provider with the given request timeout.
func NewGroqProvider(timeout time.Duration) *GroqProvider {
	return &GroqProvider{
		baseURL:    groqBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *GroqProvider) Kind() string {
	return ProviderGroq
}

func (p *GroqProvider) NeedsCredential() bool {
	return true
}

func (p *GroqProvider) ValidCredential(key string) bool {
	return strings.HasPrefix(key, groqKeyPrefix)
}

type groqRequest struct {
	Model          string             `json:"model"`
	Messages       []ChatMessage      `json:"messages"`
	ResponseFormat groqResponseFormat `json:"response_format"`
	MaxTokens      int                `json:"max_tokens"`
	Temperature    float64            `json:"temperature"`
}

type groqResponseFormat struct {
	Type string `json:"type"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *GroqProvider) Generate(ctx context.Context, key, systemPrompt, userPrompt string) (string, error) {
	reqBody := groqRequest{
		Model: groqModel,
		Messages: []ChatMessage{
			{Role: ChatRoleSystem, Content: systemPrompt},
			{Role: ChatRoleUser, Content: userPrompt},
		},
		ResponseFormat: groqResponseFormat{Type: "json_object"},
		MaxTokens:      1024,
		Temperature:    0.7,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal groq request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create groq request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read groq response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Provider:   ProviderGroq,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(respBody)),
		}
	}

	var parsed groqResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse groq response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("groq response contained no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
