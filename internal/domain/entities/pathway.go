package entities

// IncomeLevel classifies a patient household for scheme eligibility.
type IncomeLevel string

const (
	IncomeLow         IncomeLevel = "low"
	IncomeMiddle      IncomeLevel = "middle"
	IncomeHigh        IncomeLevel = "high"
	IncomeUnspecified IncomeLevel = "unspecified"
)

// ParseIncomeLevel normalizes a free-form income value. Unknown values map to
// unspecified rather than failing; eligibility then retains all hospitals.
func ParseIncomeLevel(s string) IncomeLevel {
	switch IncomeLevel(s) {
	case IncomeLow, IncomeMiddle, IncomeHigh:
		return IncomeLevel(s)
	default:
		return IncomeUnspecified
	}
}

// SchemeGated reports whether only scheme-empaneled hospitals are eligible.
func (l IncomeLevel) SchemeGated() bool {
	return l == IncomeLow || l == IncomeMiddle
}

// ResolutionTier is the fallback level at which a procedure was resolved.
// It is carried on the Pathway as a confidence signal, never hidden.
type ResolutionTier string

const (
	TierStore           ResolutionTier = "store-exact"
	TierCatalog         ResolutionTier = "catalog"
	TierNationalAverage ResolutionTier = "national-average"
)

// ResolvedProcedure is the cost summary carried by a Pathway regardless of
// which tier produced it.
type ResolvedProcedure struct {
	Name           string  `json:"name"`
	AvgPrivateCost float64 `json:"avg_private_cost"`
	PmjayRate      float64 `json:"pmjay_rate,omitempty"`
	RecoveryDays   int     `json:"recovery_days,omitempty"`
}

// Pathway is the resolved bundle of procedure cost, hidden costs, and eligible
// hospitals returned for one request. Constructed per request, never shared.
type Pathway struct {
	Procedure      ResolvedProcedure `json:"procedure"`
	HiddenCosts    []HiddenCost      `json:"hidden_costs"`
	Hospitals      []*Hospital       `json:"hospitals"`
	CurrencySymbol string            `json:"currency_symbol"`
	IncomeLevel    IncomeLevel       `json:"income_level"`
	ResolutionTier ResolutionTier    `json:"resolution_tier"`
}

// Degraded reports whether the pathway fell through to the national average.
func (p *Pathway) Degraded() bool {
	return p.ResolutionTier == TierNationalAverage
}
