package services

import (
	"sort"
	"strings"

	"github.com/healthflow/backend/internal/domain/entities"
)

// EligibilityFilter narrows a candidate hospital list by income classification
// and an optional location hint, then orders it by rating. It is pure: the
// input slice is never mutated.
type EligibilityFilter struct{}

// NewEligibilityFilter creates a new eligibility filter
func NewEligibilityFilter() *EligibilityFilter {
	return &EligibilityFilter{}
}

// Filter retains only scheme-empaneled hospitals for low/middle income,
// everything otherwise. A non-empty locationHint keeps hospitals whose
// location contains it, case-insensitive. The result is sorted by rating
// descending; ties keep input order so repeated calls are deterministic.
func (f *EligibilityFilter) Filter(hospitals []*entities.Hospital, income entities.IncomeLevel, locationHint string) []*entities.Hospital {
	hint := strings.ToLower(strings.TrimSpace(locationHint))

	eligible := make([]*entities.Hospital, 0, len(hospitals))
	for _, hospital := range hospitals {
		if income.SchemeGated() && !hospital.IsPmjayEmpaneled {
			continue
		}
		if hint != "" && !strings.Contains(strings.ToLower(hospital.Location), hint) {
			continue
		}
		eligible = append(eligible, hospital)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Rating > eligible[j].Rating
	})

	return eligible
}
