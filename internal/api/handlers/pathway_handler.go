package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/healthflow/backend/internal/domain/entities"
	"github.com/healthflow/backend/internal/infrastructure/observability"
	apperrors "github.com/healthflow/backend/pkg/errors"
)

// PathwayHandler serves pathway resolution requests
type PathwayHandler struct {
	resolver PathwayResolver
}

// NewPathwayHandler creates a new pathway handler
func NewPathwayHandler(resolver PathwayResolver) *PathwayHandler {
	return &PathwayHandler{
		resolver: resolver,
	}
}

type checkPathwayRequest struct {
	Procedure   string `json:"procedure"`
	Country     string `json:"country"`
	State       string `json:"state"`
	IncomeLevel string `json:"income_level"`
}

// CheckPathway handles POST /check-pathway
func (h *PathwayHandler) CheckPathway(w http.ResponseWriter, r *http.Request) {
	var req checkPathwayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Procedure == "" || req.Country == "" || req.State == "" {
		respondWithError(w, http.StatusBadRequest, "procedure, country and state are required")
		return
	}

	income := entities.ParseIncomeLevel(req.IncomeLevel)

	pathway, err := h.resolver.Resolve(r.Context(), req.Procedure, req.Country, req.State, income)
	if err != nil {
		logger := observability.LoggerFromContext(r.Context())
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeNotFound:
				respondWithError(w, http.StatusNotFound, appErr.Message)
			case apperrors.ErrorTypeValidation:
				respondWithError(w, http.StatusBadRequest, appErr.Message)
			default:
				logger.Error().Err(err).Msg("pathway resolution failed")
				respondWithError(w, http.StatusInternalServerError, "failed to resolve care pathway")
			}
			return
		}
		logger.Error().Err(err).Msg("pathway resolution failed")
		respondWithError(w, http.StatusInternalServerError, "failed to resolve care pathway")
		return
	}

	respondWithJSON(w, http.StatusOK, pathway)
}
