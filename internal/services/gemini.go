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
	geminiBaseURL   = "https://generativelanguage.googleapis.com/v1beta"
	geminiModel     = "gemini-1.5-flash"
	geminiKeyPrefix = "AIza"
)

// GeminiProvider calls Google's Gemini generateContent API.
type GeminiProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewGeminiProvider creates a Gemini provider with the given request timeout.
func NewGeminiProvider(timeout time.Duration) *GeminiProvider {
	return &GeminiProvider{
		baseURL:    geminiBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *GeminiProvider) Kind() string {
	return ProviderGemini
}

func (p *GeminiProvider) NeedsCredential() bool {
	return true
}

func (p *GeminiProvider) ValidCredential(key string) bool {
	return strings.HasPrefix(key, geminiKeyPrefix)
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	Temperature      float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiProvider) Generate(ctx context.Context, key, systemPrompt, userPrompt string) (string, error) {
	// Gemini has no system role here; the prompts are concatenated into one
	// part, with a trailing nudge because this model under-delivers options.
	combined := systemPrompt + "\n\n" + userPrompt +
		"\n\nIMPORTANT: Return EXACTLY 4 options in the options array."

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: combined}}},
		},
		GenerationConfig: geminiGenConfig{
			ResponseMimeType: "application/json",
			MaxOutputTokens:  2048,
			Temperature:      0.8,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, geminiModel, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Provider:   ProviderGemini,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(respBody)),
		}
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response contained no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
