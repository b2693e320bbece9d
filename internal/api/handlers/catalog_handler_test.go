package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthflow/backend/internal/catalog"
	"github.com/healthflow/backend/internal/domain/entities"
	apperrors "github.com/healthflow/backend/pkg/errors"
)

// stubResolver implements PathwayResolver for handler tests
type stubResolver struct {
	pathway *entities.Pathway
	err     error

	gotQuery   string
	gotCountry string
	gotState   string
	gotIncome  entities.IncomeLevel
}

func (s *stubResolver) Resolve(ctx context.Context, query, country, state string, income entities.IncomeLevel) (*entities.Pathway, error) {
	s.gotQuery = query
	s.gotCountry = country
	s.gotState = state
	s.gotIncome = income
	return s.pathway, s.err
}

func handlerTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse([]byte(`[
		{
			"country": "India",
			"currency_symbol": "₹",
			"states": [
				{"state_name": "Maharashtra"},
				{"state_name": "Karnataka"}
			]
		}
	]`))
	require.NoError(t, err)
	return cat
}

func newTestMux(h *CatalogHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/countries", h.ListCountries)
	mux.HandleFunc("GET /api/states/{country}", h.ListStates)
	mux.HandleFunc("GET /api/estimate", h.GetEstimate)
	return mux
}

func TestListCountries(t *testing.T) {
	handler := NewCatalogHandler(handlerTestCatalog(t), &stubResolver{})

	req := httptest.NewRequest(http.MethodGet, "/api/countries", nil)
	w := httptest.NewRecorder()
	newTestMux(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var countries []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &countries))
	assert.Equal(t, []string{"India"}, countries)
}

func TestListStates(t *testing.T) {
	handler := NewCatalogHandler(handlerTestCatalog(t), &stubResolver{})

	req := httptest.NewRequest(http.MethodGet, "/api/states/India", nil)
	w := httptest.NewRecorder()
	newTestMux(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var states []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &states))
	assert.Equal(t, []string{"Maharashtra", "Karnataka"}, states)
}

func TestListStatesUnknownCountry(t *testing.T) {
	handler := NewCatalogHandler(handlerTestCatalog(t), &stubResolver{})

	req := httptest.NewRequest(http.MethodGet, "/api/states/Atlantis", nil)
	w := httptest.NewRecorder()
	newTestMux(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEstimateMissingParams(t *testing.T) {
	handler := NewCatalogHandler(handlerTestCatalog(t), &stubResolver{})

	req := httptest.NewRequest(http.MethodGet, "/api/estimate?country=India&state=Maharashtra", nil)
	w := httptest.NewRecorder()
	newTestMux(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetEstimateResolvedTier(t *testing.T) {
	resolver := &stubResolver{
		pathway: &entities.Pathway{
			Procedure: entities.ResolvedProcedure{
				Name:           "Knee Replacement Surgery",
				AvgPrivateCost: 350000,
				PmjayRate:      80000,
				RecoveryDays:   14,
			},
			HiddenCosts:    []entities.HiddenCost{{ItemName: "Physiotherapy Sessions", AvgCost: 15000}},
			Hospitals:      []*entities.Hospital{{Name: "Tata Memorial Hospital"}},
			CurrencySymbol: "₹",
			IncomeLevel:    entities.IncomeUnspecified,
			ResolutionTier: entities.TierStore,
		},
	}
	handler := NewCatalogHandler(handlerTestCatalog(t), resolver)

	req := httptest.NewRequest(http.MethodGet, "/api/estimate?country=India&state=Maharashtra&procedure=knee", nil)
	w := httptest.NewRecorder()
	newTestMux(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "knee", resolver.gotQuery)
	assert.Equal(t, entities.IncomeUnspecified, resolver.gotIncome)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "data")
	assert.Contains(t, body, "hidden_costs")
	assert.Contains(t, body, "hospitals")
	assert.NotContains(t, body, "note")
}

func TestGetEstimateNationalAverageCarriesNote(t *testing.T) {
	resolver := &stubResolver{
		pathway: &entities.Pathway{
			Procedure:      entities.ResolvedProcedure{Name: "appendectomy", AvgPrivateCost: 200000},
			HiddenCosts:    []entities.HiddenCost{},
			Hospitals:      []*entities.Hospital{},
			CurrencySymbol: "₹",
			ResolutionTier: entities.TierNationalAverage,
		},
	}
	handler := NewCatalogHandler(handlerTestCatalog(t), resolver)

	req := httptest.NewRequest(http.MethodGet, "/api/estimate?country=India&state=Maharashtra&procedure=appendectomy", nil)
	w := httptest.NewRecorder()
	newTestMux(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Note        string                `json:"note"`
		AvgCost     float64               `json:"avg_cost"`
		Currency    string                `json:"currency"`
		HiddenCosts []entities.HiddenCost `json:"hidden_costs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, degradedEstimateNote, body.Note)
	assert.Equal(t, float64(200000), body.AvgCost)
	assert.Equal(t, "₹", body.Currency)
	assert.NotNil(t, body.HiddenCosts)
	assert.Empty(t, body.HiddenCosts)
}

func TestGetEstimateNotFoundMapsTo404(t *testing.T) {
	resolver := &stubResolver{err: apperrors.NewNotFoundError("Country not found")}
	handler := NewCatalogHandler(handlerTestCatalog(t), resolver)

	req := httptest.NewRequest(http.MethodGet, "/api/estimate?country=Atlantis&state=X&procedure=knee", nil)
	w := httptest.NewRecorder()
	newTestMux(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEstimateStoreFailureMapsTo500(t *testing.T) {
	resolver := &stubResolver{err: apperrors.NewInternalError("connection reset", nil)}
	handler := NewCatalogHandler(handlerTestCatalog(t), resolver)

	req := httptest.NewRequest(http.MethodGet, "/api/estimate?country=India&state=Maharashtra&procedure=knee", nil)
	w := httptest.NewRecorder()
	newTestMux(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
