package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/healthflow/backend/internal/catalog"
	"github.com/healthflow/backend/internal/domain/entities"
	apperrors "github.com/healthflow/backend/pkg/errors"
)

// degradedEstimateNote flags a tier-3 estimate to API consumers.
const degradedEstimateNote = "State-specific data missing, showing national average."

// PathwayResolver defines the handler dependency for pathway resolution.
type PathwayResolver interface {
	Resolve(ctx context.Context, query, country, state string, income entities.IncomeLevel) (*entities.Pathway, error)
}

// CatalogHandler serves the reference-catalog endpoints and cost estimates
type CatalogHandler struct {
	catalog  *catalog.Catalog
	resolver PathwayResolver
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cat *catalog.Catalog, resolver PathwayResolver) *CatalogHandler {
	return &CatalogHandler{
		catalog:  cat,
		resolver: resolver,
	}
}

// ListCountries handles GET /api/countries
func (h *CatalogHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog.Countries())
}

// ListStates handles GET /api/states/{country}
func (h *CatalogHandler) ListStates(w http.ResponseWriter, r *http.Request) {
	country := r.PathValue("country")
	if country == "" {
		respondWithError(w, http.StatusBadRequest, "country is required")
		return
	}

	states, ok := h.catalog.States(country)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Country not found")
		return
	}

	respondWithJSON(w, http.StatusOK, states)
}

// GetEstimate handles GET /api/estimate
func (h *CatalogHandler) GetEstimate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	country := query.Get("country")
	state := query.Get("state")
	procedure := query.Get("procedure")

	if country == "" || state == "" || procedure == "" {
		respondWithError(w, http.StatusBadRequest, "country, state and procedure are required")
		return
	}

	pathway, err := h.resolver.Resolve(r.Context(), procedure, country, state, entities.IncomeUnspecified)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeNotFound:
				respondWithError(w, http.StatusNotFound, appErr.Message)
			case apperrors.ErrorTypeValidation:
				respondWithError(w, http.StatusBadRequest, appErr.Message)
			default:
				respondWithError(w, http.StatusInternalServerError, "failed to compute estimate")
			}
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to compute estimate")
		return
	}

	if pathway.Degraded() {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"note":         degradedEstimateNote,
			"avg_cost":     pathway.Procedure.AvgPrivateCost,
			"currency":     pathway.CurrencySymbol,
			"hidden_costs": pathway.HiddenCosts,
		})
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"currency":     pathway.CurrencySymbol,
		"data":         pathway.Procedure,
		"hidden_costs": pathway.HiddenCosts,
		"hospitals":    pathway.Hospitals,
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
