package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yourlovestory/story-gateway/internal/services"
	"github.com/yourlovestory/story-gateway/pkg/story"
)

// GenerateHandler serves POST /generate. A malformed request is the only
// client error; once a request is accepted the response is always 200,
// with the fallback scene standing in when no provider delivers.
type GenerateHandler struct {
	generator services.Generator
	logger    *slog.Logger
}

// NewGenerateHandler creates the generation endpoint handler.
func NewGenerateHandler(generator services.Generator, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
		logger:    logger,
	}
}

func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req story.StoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("malformed generate request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.generator.Generate(r.Context(), &req)
	writeJSON(w, http.StatusOK, result)
}
