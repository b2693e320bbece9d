package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthflow/backend/internal/domain/entities"
	apperrors "github.com/healthflow/backend/pkg/errors"
)

func postCheckPathway(handler *PathwayHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/check-pathway", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.CheckPathway(w, req)
	return w
}

func TestCheckPathwayReturnsResolvedPathway(t *testing.T) {
	resolver := &stubResolver{
		pathway: &entities.Pathway{
			Procedure: entities.ResolvedProcedure{
				Name:           "Knee Replacement Surgery",
				AvgPrivateCost: 350000,
				PmjayRate:      80000,
				RecoveryDays:   14,
			},
			HiddenCosts:    []entities.HiddenCost{{ItemName: "Physiotherapy Sessions", AvgCost: 15000, IsAvoidable: true}},
			Hospitals:      []*entities.Hospital{{Name: "Tata Memorial Hospital", IsPmjayEmpaneled: true, Rating: 4.6}},
			CurrencySymbol: "₹",
			IncomeLevel:    entities.IncomeLow,
			ResolutionTier: entities.TierStore,
		},
	}
	handler := NewPathwayHandler(resolver)

	w := postCheckPathway(handler, `{"procedure":"knee","country":"India","state":"Maharashtra","income_level":"low"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "knee", resolver.gotQuery)
	assert.Equal(t, "India", resolver.gotCountry)
	assert.Equal(t, "Maharashtra", resolver.gotState)
	assert.Equal(t, entities.IncomeLow, resolver.gotIncome)

	var pathway entities.Pathway
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pathway))
	assert.Equal(t, "Knee Replacement Surgery", pathway.Procedure.Name)
	assert.Equal(t, entities.TierStore, pathway.ResolutionTier)
	assert.Equal(t, entities.IncomeLow, pathway.IncomeLevel)
	require.Len(t, pathway.Hospitals, 1)
}

func TestCheckPathwayUnknownIncomeBecomesUnspecified(t *testing.T) {
	resolver := &stubResolver{pathway: &entities.Pathway{ResolutionTier: entities.TierNationalAverage}}
	handler := NewPathwayHandler(resolver)

	w := postCheckPathway(handler, `{"procedure":"knee","country":"India","state":"Maharashtra","income_level":"billionaire"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.IncomeUnspecified, resolver.gotIncome)
}

func TestCheckPathwayInvalidBody(t *testing.T) {
	handler := NewPathwayHandler(&stubResolver{})

	w := postCheckPathway(handler, `{not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckPathwayMissingFields(t *testing.T) {
	handler := NewPathwayHandler(&stubResolver{})

	w := postCheckPathway(handler, `{"procedure":"knee","country":"India"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckPathwayNotFoundMapsTo404(t *testing.T) {
	handler := NewPathwayHandler(&stubResolver{err: apperrors.NewNotFoundError("State not found")})

	w := postCheckPathway(handler, `{"procedure":"knee","country":"India","state":"Kerala"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "State not found", body["error"])
}

func TestCheckPathwayStoreFailureMapsTo500(t *testing.T) {
	handler := NewPathwayHandler(&stubResolver{err: apperrors.NewInternalError("connection reset", nil)})

	w := postCheckPathway(handler, `{"procedure":"knee","country":"India","state":"Maharashtra"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
