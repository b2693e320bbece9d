package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCountries() []Country {
	return []Country{
		{
			Name:           "India",
			CurrencySymbol: "₹",
			States: []State{
				{
					Name: "Maharashtra",
					Hospitals: []Hospital{
						{Name: "Tata Memorial Hospital", City: "Mumbai", Type: "Government", Rating: 4.6},
						{Name: "Lilavati Hospital", City: "Mumbai", Type: "Private", Rating: 4.4},
					},
					Procedures: []Procedure{
						{Name: "Knee Replacement Surgery", AvgCostPrivate: 350000, AvgCostGovt: 80000},
						{Name: "Partial Knee Replacement", AvgCostPrivate: 250000, AvgCostGovt: 60000},
						{Name: "Cataract Surgery", AvgCostPrivate: 45000, AvgCostGovt: 8000},
					},
				},
				{Name: "Karnataka"},
			},
		},
		{
			Name:           "Bangladesh",
			CurrencySymbol: "৳",
		},
	}
}

func TestCountriesPreservesDocumentOrder(t *testing.T) {
	cat := newCatalog(testCountries())

	assert.Equal(t, []string{"India", "Bangladesh"}, cat.Countries())
}

func TestCountryLookupIsCaseInsensitive(t *testing.T) {
	cat := newCatalog(testCountries())

	country, ok := cat.Country("  iNdIa ")
	require.True(t, ok)
	assert.Equal(t, "India", country.Name)
	assert.Equal(t, "₹", country.CurrencySymbol)

	_, ok = cat.Country("France")
	assert.False(t, ok)
}

func TestStatesForUnknownCountry(t *testing.T) {
	cat := newCatalog(testCountries())

	states, ok := cat.States("India")
	require.True(t, ok)
	assert.Equal(t, []string{"Maharashtra", "Karnataka"}, states)

	_, ok = cat.States("Atlantis")
	assert.False(t, ok)
}

func TestStateLookupIsCaseInsensitive(t *testing.T) {
	cat := newCatalog(testCountries())
	country, _ := cat.Country("India")

	state, ok := country.State("maharashtra")
	require.True(t, ok)
	assert.Equal(t, "Maharashtra", state.Name)

	_, ok = country.State("Kerala")
	assert.False(t, ok)
}

func TestFindProcedureFirstSubstringMatchWins(t *testing.T) {
	cat := newCatalog(testCountries())
	country, _ := cat.Country("India")
	state, _ := country.State("Maharashtra")

	// "knee" matches two procedures; document order decides
	proc, ok := state.FindProcedure("knee")
	require.True(t, ok)
	assert.Equal(t, "Knee Replacement Surgery", proc.Name)

	proc, ok = state.FindProcedure("CATARACT")
	require.True(t, ok)
	assert.Equal(t, "Cataract Surgery", proc.Name)

	_, ok = state.FindProcedure("appendectomy")
	assert.False(t, ok)

	_, ok = state.FindProcedure("   ")
	assert.False(t, ok)
}

func TestEmptyCatalog(t *testing.T) {
	cat := Empty()

	assert.True(t, cat.IsEmpty())
	assert.Empty(t, cat.Countries())
	_, ok := cat.Country("India")
	assert.False(t, ok)
}

func TestIsEmptyWithLoadedData(t *testing.T) {
	assert.False(t, newCatalog(testCountries()).IsEmpty())
}
