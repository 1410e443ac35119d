package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yourlovestory/story-gateway/pkg/archive"
	"github.com/yourlovestory/story-gateway/pkg/story"
)

// Retries for one generation call before giving up.
const maxGenerateAttempts = 3

// Backoff cap between retries.
const maxBackoff = 8 * time.Second

type apiClient struct {
	client  *http.Client
	baseURL string
}

func newAPIClient(baseURL string, timeout time.Duration) *apiClient {
	return &apiClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (a *apiClient) healthy() bool {
	resp, err := a.client.Get(a.baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// generateStory calls POST /generate with exponential backoff. The gateway
// answers 200 even when it serves its fallback scene, so retries here only
// cover transport failures and malformed responses.
func (a *apiClient) generateStory(req *story.StoryRequest) (*story.GenerationResult, error) {
	var lastErr error
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Second << (attempt - 1)
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			time.Sleep(backoff)
		}

		result, err := a.postGenerate(req)
		if err != nil {
			lastErr = err
			continue
		}
		if result.Story == "" {
			lastErr = fmt.Errorf("generation had no story text")
			continue
		}
		return result, nil
	}
	return nil, lastErr
}

func (a *apiClient) postGenerate(req *story.StoryRequest) (*story.GenerationResult, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := a.client.Post(a.baseURL+"/generate", "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to generate story: %s", errorResp.Error)
	}

	var result story.GenerationResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse generation response: %w", err)
	}
	return &result, nil
}

// SyncRequest matches the API request structure
type SyncRequest struct {
	UserID  string           `json:"user_id"`
	Archive []archive.Record `json:"archive"`
	Token   string           `json:"token,omitempty"`
}

// SyncResponse matches the API response structure
type SyncResponse struct {
	Archive []archive.Record `json:"archive"`
}

func (a *apiClient) syncArchive(userID string, records []archive.Record, token string) ([]archive.Record, error) {
	jsonData, err := json.Marshal(SyncRequest{UserID: userID, Archive: records, Token: token})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := a.client.Post(a.baseURL+"/sync", "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to sync archive: %s", errorResp.Error)
	}

	var syncResp SyncResponse
	if err := json.Unmarshal(body, &syncResp); err != nil {
		return nil, fmt.Errorf("failed to parse sync response: %w", err)
	}
	return syncResp.Archive, nil
}
