package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	apperrors "github.com/healthflow/backend/pkg/errors"
)

// Load reads and parses the reference pricing document from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewMalformedDataError("failed to read reference data file", err)
	}
	return Parse(data)
}

// Parse parses a reference pricing document and validates the hierarchy.
// Malformed entries fail the whole load; the caller decides whether to run
// degraded with an empty catalog.
func Parse(data []byte) (*Catalog, error) {
	var countries []Country
	if err := json.Unmarshal(data, &countries); err != nil {
		return nil, apperrors.NewMalformedDataError("failed to parse reference data", err)
	}

	if err := validate(countries); err != nil {
		return nil, apperrors.NewMalformedDataError("reference data failed validation", err)
	}

	return newCatalog(countries), nil
}

func validate(countries []Country) error {
	seen := make(map[string]struct{}, len(countries))

	for i, country := range countries {
		if country.Name == "" {
			return fmt.Errorf("country at index %d: missing name", i)
		}
		if _, dup := seen[country.Name]; dup {
			return fmt.Errorf("country at index %d: duplicate name %q", i, country.Name)
		}
		seen[country.Name] = struct{}{}

		if country.CurrencySymbol == "" {
			return fmt.Errorf("country %q: missing currency symbol", country.Name)
		}

		for _, state := range country.States {
			if state.Name == "" {
				return fmt.Errorf("country %q: state with missing name", country.Name)
			}
			for _, proc := range state.Procedures {
				if proc.Name == "" {
					return fmt.Errorf("state %q: procedure with missing name", state.Name)
				}
				if proc.AvgCostPrivate < 0 || proc.AvgCostGovt < 0 {
					return fmt.Errorf("procedure %q: negative cost", proc.Name)
				}
				for _, hc := range proc.HiddenCosts {
					if hc.Item == "" {
						return fmt.Errorf("procedure %q: hidden cost with missing item", proc.Name)
					}
					if hc.Cost < 0 {
						return fmt.Errorf("procedure %q: hidden cost %q has negative cost", proc.Name, hc.Item)
					}
				}
			}
			for _, hosp := range state.Hospitals {
				if hosp.Name == "" {
					return fmt.Errorf("state %q: hospital with missing name", state.Name)
				}
			}
		}
	}

	return nil
}
