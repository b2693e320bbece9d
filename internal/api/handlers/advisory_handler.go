package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/healthflow/backend/internal/domain/entities"
)

// AdvisoryAnswerer defines the handler dependency for grounded AI answers.
type AdvisoryAnswerer interface {
	Configured() bool
	Answer(ctx context.Context, pathway *entities.Pathway, question string) string
}

// AdvisoryHandler serves grounded AI advisory questions
type AdvisoryHandler struct {
	advisory AdvisoryAnswerer
}

// NewAdvisoryHandler creates a new advisory handler
func NewAdvisoryHandler(advisory AdvisoryAnswerer) *AdvisoryHandler {
	return &AdvisoryHandler{
		advisory: advisory,
	}
}

type askAIRequest struct {
	Question    string            `json:"question"`
	ContextData *entities.Pathway `json:"contextData"`
}

// AskAI handles POST /api/ask-ai
func (h *AdvisoryHandler) AskAI(w http.ResponseWriter, r *http.Request) {
	if !h.advisory.Configured() {
		respondWithError(w, http.StatusServiceUnavailable, "advisory service is not configured")
		return
	}

	var req askAIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Question == "" {
		respondWithError(w, http.StatusBadRequest, "question is required")
		return
	}
	if req.ContextData == nil {
		respondWithError(w, http.StatusBadRequest, "contextData is required")
		return
	}

	answer := h.advisory.Answer(r.Context(), req.ContextData, req.Question)

	respondWithJSON(w, http.StatusOK, map[string]string{
		"answer": answer,
	})
}
