// Package catalog holds the bundled reference pricing hierarchy
// (country → state → procedures/hospitals). It is loaded once at process
// start, is immutable afterwards, and serves only as a fallback when the
// relational store has no match.
package catalog

import (
	"strings"
)

// HiddenCostItem is a hidden-cost line embedded in a catalog procedure.
type HiddenCostItem struct {
	Item string  `json:"item"`
	Cost float64 `json:"cost"`
	Note string  `json:"note"`
}

// Procedure is a state-level reference procedure with embedded hidden costs.
type Procedure struct {
	Name           string           `json:"name"`
	AvgCostPrivate float64          `json:"avg_cost_private"`
	AvgCostGovt    float64          `json:"avg_cost_govt"`
	HiddenCosts    []HiddenCostItem `json:"hidden_costs"`
}

// Hospital is a reference hospital entry. Government type implies scheme
// empanelment, mirroring the seeding rule for the relational store.
type Hospital struct {
	Name   string  `json:"name"`
	City   string  `json:"city"`
	Type   string  `json:"type"`
	Rating float64 `json:"rating"`
}

// State groups procedures and hospitals under one state.
type State struct {
	Name       string      `json:"state_name"`
	Hospitals  []Hospital  `json:"hospitals"`
	Procedures []Procedure `json:"procedures"`
}

// Country is the top of the reference hierarchy.
type Country struct {
	Name           string  `json:"country"`
	CurrencySymbol string  `json:"currency_symbol"`
	States         []State `json:"states"`
}

// Catalog is the immutable in-memory index over the reference document.
type Catalog struct {
	countries []Country
	byName    map[string]*Country
}

// Empty returns a catalog with no countries. Used when loading the reference
// document failed and the service runs in degraded mode.
func Empty() *Catalog {
	return &Catalog{byName: map[string]*Country{}}
}

func newCatalog(countries []Country) *Catalog {
	c := &Catalog{
		countries: countries,
		byName:    make(map[string]*Country, len(countries)),
	}
	for i := range c.countries {
		c.byName[strings.ToLower(c.countries[i].Name)] = &c.countries[i]
	}
	return c
}

// IsEmpty reports whether the catalog holds no reference data, either because
// Empty was used or the loaded document had no countries.
func (c *Catalog) IsEmpty() bool {
	return len(c.countries) == 0
}

// All returns the full country hierarchy in document order. Callers must not
// mutate the returned slice.
func (c *Catalog) All() []Country {
	return c.countries
}

// Countries returns country names in document order.
func (c *Catalog) Countries() []string {
	names := make([]string, 0, len(c.countries))
	for i := range c.countries {
		names = append(names, c.countries[i].Name)
	}
	return names
}

// Country looks up a country by name, case-insensitive.
func (c *Catalog) Country(name string) (*Country, bool) {
	country, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return country, ok
}

// States returns the state names for a country, or false if the country is
// absent from the catalog.
func (c *Catalog) States(country string) ([]string, bool) {
	entry, ok := c.Country(country)
	if !ok {
		return nil, false
	}
	names := make([]string, 0, len(entry.States))
	for i := range entry.States {
		names = append(names, entry.States[i].Name)
	}
	return names, true
}

// State looks up a state within the country by name, case-insensitive.
func (c *Country) State(name string) (*State, bool) {
	target := strings.ToLower(strings.TrimSpace(name))
	for i := range c.States {
		if strings.ToLower(c.States[i].Name) == target {
			return &c.States[i], true
		}
	}
	return nil, false
}

// FindProcedure returns the first procedure whose name contains the query,
// case-insensitive, in document order. No secondary ranking is applied.
func (s *State) FindProcedure(query string) (*Procedure, bool) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, false
	}
	for i := range s.Procedures {
		if strings.Contains(strings.ToLower(s.Procedures[i].Name), needle) {
			return &s.Procedures[i], true
		}
	}
	return nil, false
}
